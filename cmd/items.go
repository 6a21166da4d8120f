package cmd

import (
	"apiversions/database"
	"apiversions/logger"
	"apiversions/models"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	itemName        string
	itemDescription string
	itemListPage    int
	itemListLimit   int
)

var itemsCmd = &cobra.Command{
	Use:   "items",
	Short: "Manage stored items",
}

var itemsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored items",
	RunE: func(cmd *cobra.Command, args []string) error {
		if itemListPage < 1 {
			itemListPage = 1
		}
		if itemListLimit < 1 {
			itemListLimit = 25
		}
		items, total, err := database.ListItemsPaginated(itemListLimit, (itemListPage-1)*itemListLimit)
		if err != nil {
			return fmt.Errorf("listing items: %w", err)
		}
		if len(items) == 0 {
			fmt.Println("No items found in the database.")
			return nil
		}

		writer := new(tabwriter.Writer)
		writer.Init(os.Stdout, 0, 8, 1, '\t', 0)
		fmt.Fprintln(writer, "ID\tNAME\tCREATED_AT\tDESCRIPTION")
		fmt.Fprintln(writer, "--\t----\t----------\t-----------")
		for _, it := range items {
			fmt.Fprintf(writer, "%s\t%s\t%s\t%s\n", it.ID, it.Name, it.CreatedAt.Format("2006-01-02 15:04:05"), it.Description.String)
		}
		writer.Flush()

		totalPages := (total + int64(itemListLimit) - 1) / int64(itemListLimit)
		fmt.Println("---")
		fmt.Printf("Page %d / %d (%d total items)\n", itemListPage, totalPages, total)
		logger.Info("Listed %d items", len(items))
		return nil
	},
}

var itemsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an item",
	RunE: func(cmd *cobra.Command, args []string) error {
		itemName = strings.TrimSpace(itemName)
		if itemName == "" {
			return fmt.Errorf("--name flag is required and cannot be empty")
		}
		item, err := database.CreateItem(models.CreateItemRequest{Name: itemName, Description: itemDescription})
		if err != nil {
			return fmt.Errorf("adding item: %w", err)
		}
		fmt.Printf("Successfully added item: ID %s, Name '%s'\n", item.ID, item.Name)
		return nil
	},
}

func init() {
	itemsListCmd.Flags().IntVar(&itemListPage, "page", 1, "Page number")
	itemsListCmd.Flags().IntVar(&itemListLimit, "limit", 25, "Items per page")
	itemsAddCmd.Flags().StringVarP(&itemName, "name", "n", "", "Item name (required)")
	itemsAddCmd.Flags().StringVarP(&itemDescription, "description", "d", "", "Item description")
	itemsCmd.AddCommand(itemsListCmd, itemsAddCmd)
	rootCmd.AddCommand(itemsCmd)
}
