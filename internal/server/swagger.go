package server

//go:generate swag init --parseInternal -g internal/server/swagger.go -d ../../ -o ../../docs/swagger

// @title EGISF Gate API
// @version 0.1
// @description Feasibility gate evaluation for public investment projects: SFM scoring, gate checks, webhook notification, portfolio decisions and the evaluation ledger.
// @contact.name EGISF Maintainers
// @BasePath /
