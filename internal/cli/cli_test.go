package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/egisf/egisf/internal/ledger"
	"github.com/egisf/egisf/internal/model"
)

// run executes the command tree with an isolated storage root.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCommand()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("EGISF_STORAGE_ROOT", t.TempDir())
	t.Setenv("EGISF_WEBHOOK_URL", "")
}

var hospitalFlags = []string{
	"evaluate",
	"--name", "Northern Hospital", "--sector", "health", "--budget", "20",
	"--economic", "75", "--social", "65", "--environmental", "55",
	"--risk", "45", "--sustainability", "60", "--npv", "8.5",
}

func TestEvaluate_Flags(t *testing.T) {
	isolate(t)

	out, _, err := run(t, "", hospitalFlags...)
	require.NoError(t, err)
	assert.Contains(t, out, "Northern Hospital (health)")
	assert.Contains(t, out, "SFM score:      66.00 (strong)")
	assert.Contains(t, out, "Gate 2:         PASSED")
	assert.Contains(t, out, "Notification:   skipped")
}

func TestEvaluate_FileFromStdinAsJSON(t *testing.T) {
	isolate(t)

	req := `{"project":{"name":"Coastal Road","sector":"infrastructure","budget":120},
		"scores":{"economic":40,"social":40,"environmental":40,"risk":80,"sustainability":20,"npv":-5}}`

	out, _, err := run(t, req, "evaluate", "--file", "-", "--json")
	require.NoError(t, err)

	var ev model.Evaluation
	require.NoError(t, json.Unmarshal([]byte(out), &ev))
	assert.False(t, ev.Decision.Passed)
	assert.Len(t, ev.Decision.Violations, 4)
	assert.Equal(t, 40.0, ev.Decision.CompositeScore)
}

func TestEvaluate_InvalidInput(t *testing.T) {
	isolate(t)

	_, _, err := run(t, "", "evaluate", "--name", "", "--risk", "150")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "project.name")
	assert.Contains(t, err.Error(), "risk")
}

func TestReport_CountsRecordedEvaluations(t *testing.T) {
	isolate(t)

	_, _, err := run(t, "", hospitalFlags...)
	require.NoError(t, err)

	out, _, err := run(t, "", "report", "--json")
	require.NoError(t, err)

	var sum ledger.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &sum))
	assert.Equal(t, 1, sum.Total)
	assert.Equal(t, 100.0, sum.PassRate)

	out, _, err = run(t, "", "report", "--recent", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "Pass rate:              100.00%")
	assert.Contains(t, out, "Northern Hospital")
}

func TestPortfolio(t *testing.T) {
	isolate(t)

	out, _, err := run(t, "", "portfolio")
	require.NoError(t, err)
	assert.Contains(t, out, "PRJ-2025-00234")
	assert.Contains(t, out, "72 (high)")
}

func TestConfig_PrintsEffectiveValues(t *testing.T) {
	isolate(t)
	t.Setenv("EGISF_GATE_MIN_SFM_SCORE", "65")

	out, _, err := run(t, "", "config")
	require.NoError(t, err)
	assert.Contains(t, out, "min_sfm_score: 65")
	assert.Contains(t, out, "max_risk: 60")
}

func TestGlobalLogLevelIsValidated(t *testing.T) {
	isolate(t)

	_, _, err := run(t, "", "config", "--log-level", "chatty")
	assert.Error(t, err)
}

func TestEvaluate_FileExcludesInlineFlags(t *testing.T) {
	isolate(t)

	req := `{"project":{"name":"Coastal Road"},"scores":{"economic":40,"social":40,"environmental":40,"risk":80,"sustainability":20,"npv":-5}}`

	for _, flag := range []string{"--name", "--risk", "--economic", "--npv", "--sector"} {
		t.Run(flag, func(t *testing.T) {
			_, _, err := run(t, req, "evaluate", "--file", "-", flag, "10")
			require.Error(t, err)
			assert.Contains(t, err.Error(), "file")
		})
	}
}

func TestDecide_ProjectDecision(t *testing.T) {
	isolate(t)

	out, _, err := run(t, "", "decide", "PRJ-2025-00234", "--action", "hold", "--urgency", "9", "--note", " await audit ")
	require.NoError(t, err)
	assert.Contains(t, out, "Decision:   hold PRJ-2025-00234")
	assert.Contains(t, out, "Follow-up:  daily")
	assert.Contains(t, out, "Escalated:  yes")
	assert.Contains(t, out, "Note:       await audit")
}

func TestDecide_QuickDecisionAsJSON(t *testing.T) {
	isolate(t)

	out, _, err := run(t, "", "decide", "--scenario", "disaster-recovery", "--json")
	require.NoError(t, err)

	var rec model.DecisionRecord
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	assert.Equal(t, model.ScenarioDisasterRecovery, rec.Scenario)
	assert.Equal(t, model.DefaultUrgency, rec.Urgency)
	assert.False(t, rec.Escalated)
	assert.Equal(t, model.FollowUpStandard, rec.FollowUp)
}

func TestDecide_Errors(t *testing.T) {
	cases := []struct {
		name string
		args []string
		want string
	}{
		{"nothing to decide", []string{"decide"}, "--scenario"},
		{"missing action", []string{"decide", "PRJ-2025-00234"}, "--action"},
		{"unknown project", []string{"decide", "PRJ-0000", "--action", "approve"}, "PRJ-0000"},
		{"bad action", []string{"decide", "PRJ-2025-00234", "--action", "defer"}, "action"},
		{"urgency out of range", []string{"decide", "--scenario", "national-security", "--urgency", "11"}, "urgency"},
		{"unknown scenario", []string{"decide", "--scenario", "flood"}, "scenario"},
		{"scenario with project", []string{"decide", "PRJ-2025-00234", "--scenario", "disaster-recovery"}, "--scenario"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			isolate(t)
			_, _, err := run(t, "", tc.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}
