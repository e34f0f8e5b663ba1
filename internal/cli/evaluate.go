package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/egisf/egisf/internal/app"
	"github.com/egisf/egisf/internal/model"
)

// requestFlags describe the request inline and cannot be combined with --file.
var requestFlags = []string{
	"name", "sector", "location", "budget", "duration",
	"economic", "social", "environmental", "risk", "sustainability", "npv",
}

type evaluateOptions struct {
	file     string
	asJSON   bool
	noNotify bool
	req      app.EvaluationRequest
}

func newEvaluateCommand(opts *globalOptions) *cobra.Command {
	eo := &evaluateOptions{}

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate one project against the feasibility gate",
		Long: `Runs a single gate evaluation, records it in the ledger and notifies the
webhook when one is configured.

Either pass the scores as flags or a JSON request with --file (- for stdin):

  egisf evaluate --name "Northern Hospital" --sector health --budget 20 \
    --economic 75 --social 65 --environmental 55 --risk 45 \
    --sustainability 60 --npv 8.5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := eo.req
			if eo.file != "" {
				r, err := readRequest(eo.file, cmd.InOrStdin())
				if err != nil {
					return err
				}
				req = r
			}
			if eo.noNotify {
				req.SkipNotification = true
			}

			a, logger, err := opts.openApplication(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer logger.Sync()
			defer a.Shutdown(context.Background())

			ev, err := a.Orch.Evaluate(cmd.Context(), req, nil)
			if err != nil {
				return err
			}
			if eo.asJSON {
				return printJSON(cmd.OutOrStdout(), ev)
			}
			printEvaluation(cmd.OutOrStdout(), ev)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&eo.file, "file", "f", "", "read the evaluation request from a JSON file")
	f.BoolVar(&eo.asJSON, "json", false, "print the full evaluation as JSON")
	f.BoolVar(&eo.noNotify, "no-notify", false, "do not call the webhook")

	f.StringVar(&eo.req.Project.Name, "name", "", "project name")
	f.StringVar(&eo.req.Project.Sector, "sector", "", "project sector")
	f.StringVar(&eo.req.Project.Location, "location", "", "project location")
	f.Float64Var(&eo.req.Project.Budget, "budget", 0, "budget in millions")
	f.IntVar(&eo.req.Project.DurationMonths, "duration", 0, "duration in months")

	f.Float64Var(&eo.req.Scores.Economic, "economic", 0, "economic score (0-100)")
	f.Float64Var(&eo.req.Scores.Social, "social", 0, "social score (0-100)")
	f.Float64Var(&eo.req.Scores.Environmental, "environmental", 0, "environmental score (0-100)")
	f.Float64Var(&eo.req.Scores.Risk, "risk", 0, "risk score (0-100)")
	f.Float64Var(&eo.req.Scores.Sustainability, "sustainability", 0, "sustainability score (0-100)")
	f.Float64Var(&eo.req.Scores.NPV, "npv", 0, "net present value in millions")

	for _, name := range requestFlags {
		cmd.MarkFlagsMutuallyExclusive("file", name)
	}
	return cmd
}

func readRequest(path string, stdin io.Reader) (app.EvaluationRequest, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return app.EvaluationRequest{}, fmt.Errorf("reading request: %w", err)
	}

	var req app.EvaluationRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return app.EvaluationRequest{}, fmt.Errorf("decoding request: %w", err)
	}
	return req, nil
}

func printEvaluation(w io.Writer, ev *model.Evaluation) {
	verdict := "PASSED"
	if !ev.Decision.Passed {
		verdict = "FAILED"
	}

	fmt.Fprintf(w, "Project:        %s", ev.Project.Name)
	if ev.Project.Sector != "" {
		fmt.Fprintf(w, " (%s)", ev.Project.Sector)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "SFM score:      %.2f (%s)\n", ev.Decision.CompositeScore, ev.Bands.SFM)
	fmt.Fprintf(w, "Gate 2:         %s\n", verdict)
	fmt.Fprintln(w)
	fmt.Fprintln(w, ev.Decision.Summary)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Next steps:")
	for _, g := range ev.Guidance {
		fmt.Fprintf(w, "  - %s\n", g)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Notification:   %s", ev.Notification.Kind)
	if detail := notificationDetail(ev.Notification); detail != "" {
		fmt.Fprintf(w, " (%s)", detail)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Evaluation ID:  %s\n", ev.ID)
}

func notificationDetail(n model.Notification) string {
	parts := make([]string, 0, 2)
	if n.Error != "" {
		parts = append(parts, n.Error)
	}
	if n.Message != "" {
		parts = append(parts, n.Message)
	}
	return strings.Join(parts, "; ")
}
