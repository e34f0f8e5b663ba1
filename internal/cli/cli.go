// Package cli wires the egisf command tree: serve the API, evaluate a
// single project, decide on pending projects, report on the ledger and
// inspect configuration.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/egisf/egisf/internal/app"
	"github.com/egisf/egisf/internal/logging"
)

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	configPath string
	logLevel   string
}

// NewRootCommand builds the egisf command tree.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "egisf",
		Short: "Feasibility gate evaluation for public investment projects",
		Long: `egisf scores projects on the economic, social and environmental axes,
combines them into the SFM composite score and checks the result against
the gate-2 admission thresholds. Decisions are recorded in a local ledger
and, when a webhook is configured, sent to the automation workflow.

Configuration is read from --config (YAML) and EGISF_* environment
variables, e.g. EGISF_WEBHOOK_URL or EGISF_GATE_MIN_SFM_SCORE.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "path to a YAML config file")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override the configured log level (debug, info, warn, error)")

	root.AddCommand(
		newServeCommand(opts),
		newEvaluateCommand(opts),
		newReportCommand(opts),
		newPortfolioCommand(opts),
		newDecideCommand(opts),
		newConfigCommand(opts),
	)
	return root
}

// Execute runs the command tree against os.Args.
func Execute() error {
	return NewRootCommand().Execute()
}

// loadConfig applies the global flag overrides on top of app.LoadConfig.
func (o *globalOptions) loadConfig() (*app.Config, error) {
	cfg, err := app.LoadConfig(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.logLevel != "" {
		if _, err := logging.ParseLevel(o.logLevel); err != nil {
			return nil, err
		}
		cfg.LogLevel = o.logLevel
	}
	return cfg, nil
}

// openApplication builds the application for one-shot commands. Logs go to
// w so they never mix with command output.
func (o *globalOptions) openApplication(w io.Writer) (*app.Application, *logging.StdoutLogger, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.NewWriterLogger(w, "egisf", cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	a, err := app.NewApplication(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return a, logger, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	return nil
}
