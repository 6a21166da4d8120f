package api

// @title Items API
// @version 1.0
// @description Versioned demo API for managing items. Each API version is mounted under its own prefix.

// @contact.name API Support
// @contact.url http://example.com/support

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8000
// @BasePath /
// @schemes http
// @query.collection.format multi
