// Command demoserver starts a local webhook sink standing in for the
// automation workflow that receives gate decisions.
// Usage: go run ./cmd/demoserver [port]
// Default port: 5678
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/egisf/egisf/internal/demoserver"
	"github.com/egisf/egisf/internal/logging"
)

func main() {
	cfg := demoserver.DefaultConfig()

	// Optional: custom port from command line
	if len(os.Args) > 1 {
		port, err := strconv.Atoi(os.Args[1])
		if err != nil || port < 1 || port > 65535 {
			log.Fatalf("Invalid port: %s", os.Args[1])
		}
		cfg.Port = port
	}

	fmt.Println("===========================================")
	fmt.Println("   EGISF Demo Webhook Sink")
	fmt.Println("===========================================")
	fmt.Println()
	fmt.Println("Point the gate service at this sink with")
	fmt.Printf("  EGISF_WEBHOOK_URL=http://localhost:%d%s\n", cfg.Port, demoserver.WebhookPath)
	fmt.Println()
	fmt.Println("Modes (switch at /demo/control):")
	fmt.Println("  - ok     acknowledge with 200")
	fmt.Println("  - error  answer 500")
	fmt.Println("  - slow   stall past the webhook timeout")
	fmt.Println()

	logger := logging.NewStdoutLogger("demoserver")
	defer logger.Sync()

	server := demoserver.NewDemoServer(cfg, logger)
	if err := server.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
