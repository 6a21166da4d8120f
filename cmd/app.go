package cmd

import (
	"apiversions/api"
	"apiversions/app"
	"apiversions/config"
	"apiversions/versioning"
	"net/http"

	"github.com/andybalholm/brotli"
	"github.com/go-chi/chi/v5/middleware"
)

// buildVersionedApp assembles the served tree from the configured options.
func buildVersionedApp() (*app.App, error) {
	mws := []func(http.Handler) http.Handler{middleware.RequestID, middleware.Recoverer, app.AccessLog}
	if config.AppConfig.Server.Compress {
		mws = append(mws, app.Compress(brotli.DefaultCompression))
	}

	opts := append(config.VersioningOptions(),
		versioning.WithAppOptions(app.WithMiddleware(mws...)),
		versioning.WithSubAppOptions(app.WithInstrumentation()),
	)
	return versioning.New(api.NewApp(), opts...)
}
