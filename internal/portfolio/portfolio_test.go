package portfolio_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/egisf/egisf/internal/portfolio"
)

func TestLoad_EmbeddedSeed(t *testing.T) {
	p, err := portfolio.Load()
	require.NoError(t, err)

	list := p.List()
	require.Len(t, list, 3)
	assert.Equal(t, "PRJ-2025-00234", list[0].ID)
	assert.Equal(t, portfolio.StatusCritical, list[0].Status)
	assert.Equal(t, "high", list[0].RiskLabel)
	assert.Equal(t, "medium", list[1].RiskLabel)
	assert.Equal(t, "2027-03-31", list[2].Finish)

	o := p.Overview()
	assert.Equal(t, 487, o.ActiveProjects)
	assert.Equal(t, 28500.0, o.TotalValue)
	assert.Equal(t, 87.0, o.SuccessRate)
	assert.Len(t, o.StatusDistribution, 4)
	assert.Len(t, o.Sectors, 5)
}

func TestGet(t *testing.T) {
	p, err := portfolio.Load()
	require.NoError(t, err)

	pr, err := p.Get("PRJ-2025-00156")
	require.NoError(t, err)
	assert.Equal(t, 82.0, pr.SFMScore)

	_, err = p.Get("PRJ-0000")
	assert.True(t, errors.Is(err, portfolio.ErrProjectNotFound))
}

func TestList_ReturnsCopy(t *testing.T) {
	p, err := portfolio.Load()
	require.NoError(t, err)

	list := p.List()
	list[0].Name = "changed"
	again, _ := p.Get(list[0].ID)
	assert.NotEqual(t, "changed", again.Name)
}

func TestRiskLabel_Boundary(t *testing.T) {
	assert.Equal(t, "medium", portfolio.RiskLabel(60))
	assert.Equal(t, "high", portfolio.RiskLabel(60.01))
}

func TestParse_Errors(t *testing.T) {
	_, err := portfolio.Parse([]byte("pending: [{name: x}]"))
	assert.Error(t, err)

	_, err = portfolio.Parse([]byte("pending: [{id: a}, {id: a}]"))
	assert.Error(t, err)

	_, err = portfolio.Parse([]byte("pending: ["))
	assert.Error(t, err)
}

func TestLiveReport_EmbeddedSeed(t *testing.T) {
	p, err := portfolio.Load()
	require.NoError(t, err)

	o := p.Overview()
	assert.Equal(t, 68.0, o.CompletionRate)
	assert.Equal(t, 180.0, o.Savings)

	live := p.LiveReport()
	require.Len(t, live.TopPerformers, 5)
	assert.Equal(t, "Southern Hospital", live.TopPerformers[0].Name)
	assert.Equal(t, 92.0, live.TopPerformers[0].SFMScore)

	require.Len(t, live.Interventions, 5)
	assert.Equal(t, portfolio.PriorityUrgent, live.Interventions[0].Priority)
	assert.Equal(t, portfolio.PriorityLow, live.Interventions[4].Priority)

	require.Len(t, live.Monthly, 12)
	assert.Equal(t, "2024-10", live.Monthly[0].Month)
	assert.Equal(t, "2025-09", live.Monthly[11].Month)

	live.TopPerformers[0].Name = "changed"
	assert.Equal(t, "Southern Hospital", p.LiveReport().TopPerformers[0].Name)
}

func TestParse_LiveReportIsNormalised(t *testing.T) {
	doc := `
live:
  top_performers:
    - {name: a, sfm_score: 70}
    - {name: b, sfm_score: 95}
    - {name: c, sfm_score: 80}
    - {name: d, sfm_score: 60}
    - {name: e, sfm_score: 85}
    - {name: f, sfm_score: 90}
  interventions:
    - {name: x, priority: low}
    - {name: y, priority: urgent}
    - {name: z, priority: medium}
  monthly:
    - {month: "2025-02"}
    - {month: "2025-01"}
`
	p, err := portfolio.Parse([]byte(doc))
	require.NoError(t, err)

	live := p.LiveReport()
	names := make([]string, 0, len(live.TopPerformers))
	for _, pf := range live.TopPerformers {
		names = append(names, pf.Name)
	}
	assert.Equal(t, []string{"b", "f", "e", "c", "a"}, names)
	assert.Equal(t, "y", live.Interventions[0].Name)
	assert.Equal(t, "z", live.Interventions[1].Name)
	assert.Equal(t, "x", live.Interventions[2].Name)
	assert.Equal(t, "2025-01", live.Monthly[0].Month)
}

func TestParse_RejectsBadLiveReport(t *testing.T) {
	_, err := portfolio.Parse([]byte("live:\n  interventions:\n    - {name: x, priority: someday}\n"))
	assert.ErrorContains(t, err, "unknown priority")

	_, err = portfolio.Parse([]byte("live:\n  monthly:\n    - {month: \"September\"}\n"))
	assert.ErrorContains(t, err, "monthly performance month")
}

func TestLiveReport_EmptyListsAreNotNil(t *testing.T) {
	p, err := portfolio.Parse([]byte("pending: []\n"))
	require.NoError(t, err)

	live := p.LiveReport()
	assert.NotNil(t, live.TopPerformers)
	assert.NotNil(t, live.Interventions)
	assert.NotNil(t, live.Monthly)
}
