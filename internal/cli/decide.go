package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/egisf/egisf/internal/app"
	"github.com/egisf/egisf/internal/model"
)

func newDecideCommand(opts *globalOptions) *cobra.Command {
	var (
		action   string
		scenario string
		urgency  int
		note     string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "decide [project-id]",
		Short: "Approve, hold or reject a pending project, or record a quick scenario decision",
		Long: `decide records a decision in the ledger.

With a project id it acts on a pending portfolio project:
  egisf decide PRJ-2025-00234 --action hold --urgency 9 --note "await audit"

Without one it records a quick decision for a scenario:
  egisf decide --scenario disaster-recovery --urgency 10

Urgency 8 or above escalates the decision to daily follow-up.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && scenario == "" {
				return errors.New("either a project id or --scenario is required")
			}
			if len(args) == 1 && scenario != "" {
				return errors.New("--scenario cannot be combined with a project id")
			}
			if len(args) == 1 && action == "" {
				return errors.New("--action is required for a project decision")
			}

			a, logger, err := opts.openApplication(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer logger.Sync()
			defer a.Shutdown(context.Background())

			var rec *model.DecisionRecord
			if len(args) == 1 {
				rec, err = a.Decisions.DecideProject(cmd.Context(), args[0], app.ProjectDecisionRequest{
					Action:  model.DecisionAction(action),
					Urgency: urgency,
					Note:    note,
				})
			} else {
				rec, err = a.Decisions.RecordQuick(cmd.Context(), app.QuickDecisionRequest{
					Scenario: model.Scenario(scenario),
					Urgency:  urgency,
					Note:     note,
				})
			}
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), rec)
			}
			printDecision(cmd.OutOrStdout(), rec)
			return nil
		},
	}

	cmd.Flags().StringVar(&action, "action", "", "approve, hold or reject")
	cmd.Flags().StringVar(&scenario, "scenario", "", "quick decision scenario (disaster-recovery, time-limited-investment, national-security, underserved-region)")
	cmd.Flags().IntVar(&urgency, "urgency", 0, "urgency 1-10 (default 7)")
	cmd.Flags().StringVar(&note, "note", "", "decision note")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the recorded decision as JSON")
	cmd.MarkFlagsMutuallyExclusive("action", "scenario")
	return cmd
}

func printDecision(w io.Writer, rec *model.DecisionRecord) {
	if rec.ProjectID != "" {
		fmt.Fprintf(w, "Decision:   %s %s (%s)\n", rec.Action, rec.ProjectID, rec.ProjectName)
	} else {
		fmt.Fprintf(w, "Decision:   quick, %s\n", rec.Scenario)
	}
	fmt.Fprintf(w, "Urgency:    %d/%d\n", rec.Urgency, model.MaxUrgency)
	fmt.Fprintf(w, "Follow-up:  %s\n", rec.FollowUp)
	if rec.Escalated {
		fmt.Fprintln(w, "Escalated:  yes")
	}
	if rec.Note != "" {
		fmt.Fprintf(w, "Note:       %s\n", rec.Note)
	}
	fmt.Fprintf(w, "ID:         %s\n", rec.ID)
}
