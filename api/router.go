package api

import (
	"apiversions/api/router/handlers"
	"apiversions/app"
	"apiversions/database"
	"apiversions/logger"
	"context"
)

// NewApp builds the unversioned items application. Handlers carry version
// tags; versioning.New turns the result into the served tree.
func NewApp() *app.App {
	a := app.New(
		app.WithTitle("Items API"),
		app.WithDescription("Versioned demo API for managing items."),
		app.WithShutdown(closeDatabase),
	)

	handlers.RegisterHealthRoutes(a)
	handlers.RegisterItemRoutes(a)

	logger.Debug("api.NewApp: registered %d routes", len(a.Routes()))
	return a
}

func closeDatabase(ctx context.Context) error {
	logger.Info("Closing database connection.")
	return database.CloseDB()
}
