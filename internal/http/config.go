package http

import (
	"github.com/mrlokans/qotd/internal/auth"
	"github.com/mrlokans/qotd/internal/dataclient"
	"github.com/mrlokans/qotd/internal/tasks"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Client   dataclient.DataClient
	Database HealthChecker

	// Optional features; nil disables the related endpoints
	Picker     DailyPicker
	TaskClient *tasks.Client

	// Authentication; nil serves the API unauthenticated
	AuthMiddleware *auth.Middleware

	// Send Strict-Transport-Security (only behind TLS)
	HSTS bool

	// Reject writes to the question bank
	ReadOnly bool

	Version string
}
