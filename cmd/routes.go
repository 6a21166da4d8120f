package cmd

import (
	"apiversions/app"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Prints the mounted versions and their routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		parent, err := buildVersionedApp()
		if err != nil {
			return fmt.Errorf("assembling versioned app: %w", err)
		}
		printRoutes(os.Stdout, parent)
		return nil
	},
}

func printRoutes(out io.Writer, parent *app.App) {
	writer := new(tabwriter.Writer)
	writer.Init(out, 0, 8, 1, '\t', 0)
	fmt.Fprintln(writer, "MOUNT\tVERSION\tMETHOD\tPATH\tNAME")
	fmt.Fprintln(writer, "-----\t-------\t------\t----\t----")
	for _, r := range parent.Routes() {
		fmt.Fprintf(writer, "/\t-\t%s\t%s\t%s\n", r.Method, r.Path, r.Name)
	}
	for _, m := range parent.Mounts() {
		for _, r := range m.App.Routes() {
			fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\n", m.Prefix, m.App.Version, r.Method, m.Prefix+r.Path, r.Name)
		}
	}
	writer.Flush()

	prefixes := make([]string, 0, len(parent.Mounts()))
	for _, m := range parent.Mounts() {
		prefixes = append(prefixes, m.Prefix)
	}
	fmt.Fprintf(out, "---\n%d mounts: %s\n", len(prefixes), strings.Join(prefixes, ", "))
}

func init() {
	rootCmd.AddCommand(routesCmd)
}
