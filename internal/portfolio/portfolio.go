// Package portfolio serves the read-only project portfolio shown next to the
// gate: projects waiting for a decision and the national headline figures.
package portfolio

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed portfolio.yaml
var seed []byte

var ErrProjectNotFound = errors.New("project not found")

// Status of a pending project.
type Status string

const (
	StatusCritical Status = "critical"
	StatusWarning  Status = "warning"
	StatusPending  Status = "pending"
)

// riskLabelThreshold separates "high" from "medium" risk labels.
const riskLabelThreshold = 60

// PendingProject is a project awaiting a gate decision. Cost is in millions;
// Start and Finish are ISO dates.
type PendingProject struct {
	ID        string  `json:"id" yaml:"id"`
	Name      string  `json:"name" yaml:"name"`
	Sector    string  `json:"sector" yaml:"sector"`
	Cost      float64 `json:"cost" yaml:"cost"`
	Status    Status  `json:"status" yaml:"status"`
	SFMScore  float64 `json:"sfm_score" yaml:"sfm_score"`
	Risk      float64 `json:"risk" yaml:"risk"`
	RiskLabel string  `json:"risk_label" yaml:"-"`
	Issue     string  `json:"issue" yaml:"issue"`
	Start     string  `json:"start" yaml:"start"`
	Finish    string  `json:"finish" yaml:"finish"`
}

type StatusCount struct {
	Status string `json:"status" yaml:"status"`
	Label  string `json:"label" yaml:"label"`
	Count  int    `json:"count" yaml:"count"`
}

type SectorShare struct {
	Sector   string  `json:"sector" yaml:"sector"`
	Projects int     `json:"projects" yaml:"projects"`
	Value    float64 `json:"value" yaml:"value"`
}

// Overview holds the national headline metrics. Values are in millions and
// SuccessRate is a percentage.
type Overview struct {
	ActiveProjects     int           `json:"active_projects" yaml:"active_projects"`
	TotalValue         float64       `json:"total_value" yaml:"total_value"`
	CriticalProjects   int           `json:"critical_projects" yaml:"critical_projects"`
	SuccessRate        float64       `json:"success_rate" yaml:"success_rate"`
	CompletionRate     float64       `json:"completion_rate" yaml:"completion_rate"`
	Savings            float64       `json:"savings" yaml:"savings"`
	StatusDistribution []StatusCount `json:"status_distribution" yaml:"status_distribution"`
	Sectors            []SectorShare `json:"sectors" yaml:"sectors"`
}

// Priority of a project that needs intervention.
type Priority string

const (
	PriorityUrgent Priority = "urgent"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Performer is one of the best-performing projects.
type Performer struct {
	Name       string  `json:"name" yaml:"name"`
	SFMScore   float64 `json:"sfm_score" yaml:"sfm_score"`
	Completion float64 `json:"completion" yaml:"completion"`
}

// Intervention is an active project that needs attention.
type Intervention struct {
	Name     string   `json:"name" yaml:"name"`
	Issue    string   `json:"issue" yaml:"issue"`
	Priority Priority `json:"priority" yaml:"priority"`
}

// MonthlyPerformance is one point of the performance series. Month is
// YYYY-MM.
type MonthlyPerformance struct {
	Month       string `json:"month" yaml:"month"`
	NewProjects int    `json:"new_projects" yaml:"new_projects"`
	Completed   int    `json:"completed" yaml:"completed"`
	Deviations  int    `json:"deviations" yaml:"deviations"`
}

// LiveReport holds the lists shown on the live performance report.
// Interventions are ordered by priority, most urgent first.
type LiveReport struct {
	TopPerformers []Performer          `json:"top_performers" yaml:"top_performers"`
	Interventions []Intervention       `json:"interventions" yaml:"interventions"`
	Monthly       []MonthlyPerformance `json:"monthly" yaml:"monthly"`
}

// topPerformerCount is how many performers the report keeps.
const topPerformerCount = 5

type document struct {
	Overview Overview         `yaml:"overview"`
	Live     LiveReport       `yaml:"live"`
	Pending  []PendingProject `yaml:"pending"`
}

// Portfolio is immutable after construction and safe for concurrent use.
type Portfolio struct {
	overview Overview
	live     LiveReport
	pending  []PendingProject
	byID     map[string]int
}

// Load returns the embedded portfolio.
func Load() (*Portfolio, error) {
	return Parse(seed)
}

// Parse builds a Portfolio from a YAML document.
func Parse(data []byte) (*Portfolio, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode portfolio: %w", err)
	}

	live, err := normaliseLive(doc.Live)
	if err != nil {
		return nil, err
	}

	p := &Portfolio{
		overview: doc.Overview,
		live:     live,
		pending:  make([]PendingProject, 0, len(doc.Pending)),
		byID:     make(map[string]int, len(doc.Pending)),
	}
	for _, pr := range doc.Pending {
		if pr.ID == "" {
			return nil, fmt.Errorf("portfolio project %q has no id", pr.Name)
		}
		if _, dup := p.byID[pr.ID]; dup {
			return nil, fmt.Errorf("duplicate portfolio project id %q", pr.ID)
		}
		pr.RiskLabel = RiskLabel(pr.Risk)
		p.byID[pr.ID] = len(p.pending)
		p.pending = append(p.pending, pr)
	}
	return p, nil
}

// normaliseLive sorts performers by SFM score (keeping the top five) and
// interventions by priority, and rejects unknown priorities or months.
func normaliseLive(l LiveReport) (LiveReport, error) {
	for _, in := range l.Interventions {
		if priorityRank(in.Priority) < 0 {
			return LiveReport{}, fmt.Errorf("intervention %q has unknown priority %q", in.Name, in.Priority)
		}
	}
	for _, m := range l.Monthly {
		if _, err := time.Parse("2006-01", m.Month); err != nil {
			return LiveReport{}, fmt.Errorf("monthly performance month %q: %w", m.Month, err)
		}
	}

	sort.SliceStable(l.TopPerformers, func(i, j int) bool {
		return l.TopPerformers[i].SFMScore > l.TopPerformers[j].SFMScore
	})
	if len(l.TopPerformers) > topPerformerCount {
		l.TopPerformers = l.TopPerformers[:topPerformerCount]
	}
	sort.SliceStable(l.Interventions, func(i, j int) bool {
		return priorityRank(l.Interventions[i].Priority) < priorityRank(l.Interventions[j].Priority)
	})
	sort.SliceStable(l.Monthly, func(i, j int) bool {
		return l.Monthly[i].Month < l.Monthly[j].Month
	})
	return l, nil
}

func priorityRank(p Priority) int {
	switch p {
	case PriorityUrgent:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	}
	return -1
}

// RiskLabel is "high" above 60 and "medium" otherwise.
func RiskLabel(risk float64) string {
	if risk > riskLabelThreshold {
		return "high"
	}
	return "medium"
}

// List returns a copy of the pending projects in file order.
func (p *Portfolio) List() []PendingProject {
	out := make([]PendingProject, len(p.pending))
	copy(out, p.pending)
	return out
}

func (p *Portfolio) Get(id string) (PendingProject, error) {
	i, ok := p.byID[id]
	if !ok {
		return PendingProject{}, fmt.Errorf("%w: %s", ErrProjectNotFound, id)
	}
	return p.pending[i], nil
}

// Overview returns the headline metrics. Slices are copied.
func (p *Portfolio) Overview() Overview {
	o := p.overview
	o.StatusDistribution = append([]StatusCount(nil), p.overview.StatusDistribution...)
	o.Sectors = append([]SectorShare(nil), p.overview.Sectors...)
	return o
}

// LiveReport returns the live report lists. Slices are copied and never nil.
func (p *Portfolio) LiveReport() LiveReport {
	return LiveReport{
		TopPerformers: append([]Performer{}, p.live.TopPerformers...),
		Interventions: append([]Intervention{}, p.live.Interventions...),
		Monthly:       append([]MonthlyPerformance{}, p.live.Monthly...),
	}
}
