package demoserver

import "time"

// Config holds configuration for the demo webhook sink.
type Config struct {
	// Port is the port on which the demo server listens.
	Port int

	// Workflow is echoed back in every acknowledgement.
	Workflow string

	// SlowDelay is how long the sink stalls in ModeSlow. It should exceed
	// the gate service's webhook timeout.
	SlowDelay time.Duration

	// MaxRecorded caps the number of payloads kept in memory.
	MaxRecorded int
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Port:        5678,
		Workflow:    "egisf-gate-check",
		SlowDelay:   15 * time.Second,
		MaxRecorded: 100,
	}
}
