package server

import (
	"github.com/egisf/egisf/internal/app"
	"github.com/egisf/egisf/internal/logging"
)

type Config struct {
	// App supplies the orchestrator, portfolio and gate configuration.
	App *app.Application

	// Logger defaults to a stdout logger named "server".
	Logger logging.Logger

	// AllowedOrigins restricts WebSocket upgrades. Empty allows any origin.
	AllowedOrigins []string
}
