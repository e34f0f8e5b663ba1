package app

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/egisf/egisf/internal/gate"
	"github.com/egisf/egisf/internal/logging"
	"github.com/egisf/egisf/internal/notify"
	"github.com/egisf/egisf/internal/webclient"
)

// EnvPrefix is prepended to every environment override, e.g.
// EGISF_WEBHOOK_URL or EGISF_GATE_WEIGHT_ECONOMIC.
const EnvPrefix = "EGISF_"

// ServerConfig controls the HTTP API listener.
type ServerConfig struct {
	Addr            string        `json:"addr" yaml:"addr" env:"ADDR"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`
}

// Config is the runtime configuration. It is loaded once at start-up.
type Config struct {
	Server ServerConfig `json:"server" yaml:"server" envPrefix:"SERVER_"`

	// StorageRoot is where the ledger database lives. A leading ~ expands to
	// the user's home directory.
	StorageRoot string `json:"storage_root" yaml:"storage_root" env:"STORAGE_ROOT"`

	LogLevel string `json:"log_level" yaml:"log_level" env:"LOG_LEVEL"`

	Gate      gate.Config      `json:"gate" yaml:"gate" envPrefix:"GATE_"`
	Webhook   notify.Config    `json:"webhook" yaml:"webhook" envPrefix:"WEBHOOK_"`
	WebClient webclient.Config `json:"web_client" yaml:"web_client" envPrefix:"WEBCLIENT_"`
}

// DefaultConfig returns a Config populated with development defaults. The
// webhook is left unset, so decisions are only recorded locally.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            "localhost:8080",
			ShutdownTimeout: 15 * time.Second,
		},
		StorageRoot: "~/.config/egisf",
		LogLevel:    "info",
		Gate:        gate.DefaultConfig(),
		Webhook: notify.Config{
			Timeout: notify.DefaultTimeout,
		},
		WebClient: webclient.Config{
			Client:  webclient.ClientNetHTTP,
			Timeout: webclient.DefaultTimeout,
		},
	}
}

// LoadConfig starts from DefaultConfig, overlays the YAML file at path (if
// path is non-empty) and then EGISF_* environment variables, and validates
// the result.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("reading environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the service cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if err := c.Gate.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("gate: %w", err))
	}
	if strings.TrimSpace(c.Server.Addr) == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	if c.Server.ShutdownTimeout < 0 {
		errs = append(errs, errors.New("server.shutdown_timeout must not be negative"))
	}
	if strings.TrimSpace(c.StorageRoot) == "" {
		errs = append(errs, errors.New("storage_root is required"))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.Webhook.Timeout <= 0 {
		errs = append(errs, errors.New("webhook.timeout must be positive"))
	}
	if c.Webhook.URL != "" {
		if err := validateWebhookURL(c.Webhook.URL); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// validateWebhookURL accepts absolute http(s) URLs with a host.
func validateWebhookURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("webhook.url is not a valid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("webhook.url must be an http(s) URL, got %q", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("webhook.url has no host: %q", raw)
	}
	return nil
}

// LedgerPath is the SQLite file holding the evaluation ledger.
func (c *Config) LedgerPath() (string, error) {
	root, err := expandPath(c.StorageRoot)
	if err != nil {
		return "", err
	}
	return filepath.Join(root, "ledger.db"), nil
}

func expandPath(p string) (string, error) {
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expanding %s: %w", p, err)
		}
		return filepath.Join(home, strings.TrimPrefix(p, "~")), nil
	}
	return p, nil
}
