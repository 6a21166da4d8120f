package handlers

import (
	"apiversions/app"
	"apiversions/models"
	"apiversions/versioning"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterHealthRoutes registers the routes that stay outside every version
// mount.
func RegisterHealthRoutes(a *app.App) {
	a.Get("/health", versioning.UnversionFunc(healthCheckHandler), app.WithName("health"), app.WithTags("System"))
	a.Get("/metrics", versioning.Unversion()(promhttp.Handler()), app.WithName("metrics"), app.WithTags("System"))
}

// healthCheckHandler reports that the server is up.
// @Summary Health check
// @Tags System
// @Produce json
// @Success 200 {object} models.HealthResponse
// @Router /health [get]
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.HealthResponse{OK: true})
}
