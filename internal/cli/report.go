package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/egisf/egisf/internal/ledger"
)

func newReportCommand(opts *globalOptions) *cobra.Command {
	var (
		asJSON bool
		recent int
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarise every recorded evaluation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, logger, err := opts.openApplication(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer logger.Sync()
			defer a.Shutdown(context.Background())

			sum, err := a.Orch.Summary(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), sum)
			}
			printSummary(cmd.OutOrStdout(), sum)

			if recent <= 0 {
				return nil
			}
			evs, err := a.Orch.ListEvaluations(cmd.Context(), ledger.Filter{Limit: recent})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out)
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "EVALUATED\tPROJECT\tSECTOR\tSFM\tGATE\tNOTIFICATION")
			for _, ev := range evs {
				gate := "passed"
				if !ev.Decision.Passed {
					gate = "failed"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%.2f\t%s\t%s\n",
					ev.EvaluatedAt.Format("2006-01-02 15:04"), ev.Project.Name, ev.Project.Sector,
					ev.Decision.CompositeScore, gate, ev.Notification.Kind)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the summary as JSON")
	cmd.Flags().IntVar(&recent, "recent", 0, "also list the N most recent evaluations")
	return cmd
}

func printSummary(w io.Writer, s *ledger.Summary) {
	fmt.Fprintf(w, "Evaluations:            %d\n", s.Total)
	fmt.Fprintf(w, "Passed / failed:        %d / %d\n", s.Passed, s.Failed)
	fmt.Fprintf(w, "Pass rate:              %.2f%%\n", s.PassRate)
	fmt.Fprintf(w, "Average SFM score:      %.2f\n", s.AverageComposite)
	fmt.Fprintf(w, "Notification failures:  %d\n", s.NotificationFailures)
	if len(s.Sectors) == 0 {
		return
	}

	fmt.Fprintln(w)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SECTOR\tTOTAL\tPASSED\tAVG SFM")
	for _, sec := range s.Sectors {
		name := sec.Sector
		if name == "" {
			name = "(none)"
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.2f\n", name, sec.Total, sec.Passed, sec.AverageComposite)
	}
	_ = tw.Flush()
}

func newPortfolioCommand(opts *globalOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "portfolio",
		Short: "List projects awaiting a decision",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, logger, err := opts.openApplication(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer logger.Sync()
			defer a.Shutdown(context.Background())

			projects := a.Portfolio.List()
			if asJSON {
				return printJSON(cmd.OutOrStdout(), projects)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tPROJECT\tCOST (M)\tSTATUS\tSFM\tRISK\tISSUE")
			for _, p := range projects {
				fmt.Fprintf(tw, "%s\t%s\t%.0f\t%s\t%.0f\t%.0f (%s)\t%s\n",
					p.ID, p.Name, p.Cost, p.Status, p.SFMScore, p.Risk, p.RiskLabel, p.Issue)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}

func newConfigCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(cfg); err != nil {
				return fmt.Errorf("encoding config: %w", err)
			}
			return enc.Close()
		},
	}
}
