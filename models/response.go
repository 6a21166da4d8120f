package models

// ErrorResponse is a generic error response structure for API
type ErrorResponse struct {
	Message string `json:"message" example:"Error message describing the issue"`
}

// HealthResponse is returned by the unversioned health check.
type HealthResponse struct {
	OK bool `json:"ok"`
}
