package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/egisf/egisf/internal/gate"
	"github.com/egisf/egisf/internal/ledger"
	"github.com/egisf/egisf/internal/logging"
	"github.com/egisf/egisf/internal/model"
	"github.com/egisf/egisf/internal/portfolio"
)

// ProjectDecisionRequest acts on one pending portfolio project. Urgency 0
// means model.DefaultUrgency.
type ProjectDecisionRequest struct {
	Action  model.DecisionAction `json:"action" example:"approve"`
	Urgency int                  `json:"urgency,omitempty" example:"6"`
	Note    string               `json:"note,omitempty"`
}

func (r ProjectDecisionRequest) Validate() error {
	ve := &gate.ValidationError{}
	if !r.Action.Valid() {
		ve.Problems = append(ve.Problems, gate.FieldError{
			Field:   "action",
			Message: fmt.Sprintf("must be one of approve, hold, reject, got %q", r.Action),
		})
	}
	return gate.MergeValidation(ve, model.ValidateDecisionFields(r.Urgency, r.Note))
}

// QuickDecisionRequest records an urgent decision taken on a scenario
// rather than a pending project.
type QuickDecisionRequest struct {
	Scenario model.Scenario `json:"scenario" example:"disaster-recovery"`
	Urgency  int            `json:"urgency,omitempty" example:"9"`
	Note     string         `json:"note,omitempty"`
}

func (r QuickDecisionRequest) Validate() error {
	ve := &gate.ValidationError{}
	if !r.Scenario.Valid() {
		known := make([]string, 0, len(model.Scenarios))
		for _, s := range model.Scenarios {
			known = append(known, string(s))
		}
		ve.Problems = append(ve.Problems, gate.FieldError{
			Field:   "scenario",
			Message: fmt.Sprintf("must be one of %s, got %q", strings.Join(known, ", "), r.Scenario),
		})
	}
	return gate.MergeValidation(ve, model.ValidateDecisionFields(r.Urgency, r.Note))
}

// DecisionStore persists decisions.
type DecisionStore interface {
	RecordDecision(ctx context.Context, d model.DecisionRecord) error
	ListDecisions(ctx context.Context, f ledger.DecisionFilter) ([]model.DecisionRecord, error)
	DecisionSummary(ctx context.Context) (*ledger.DecisionSummary, error)
}

// DecisionDesk records approve/hold/reject decisions on pending projects and
// quick scenario decisions. Unlike evaluations a decision exists only once it
// is stored, so store failures are returned to the caller.
type DecisionDesk struct {
	portfolio *portfolio.Portfolio
	store     DecisionStore
	logger    logging.Logger

	now   func() time.Time
	newID func() string
}

func NewDecisionDesk(pf *portfolio.Portfolio, store DecisionStore, logger logging.Logger) *DecisionDesk {
	return &DecisionDesk{
		portfolio: pf,
		store:     store,
		logger:    logger.With(logging.Field{Key: "component", Value: "decisions"}),
		now:       func() time.Time { return time.Now().UTC() },
		newID:     func() string { return uuid.New().String() },
	}
}

// DecideProject records an action on a pending project. It returns
// portfolio.ErrProjectNotFound for unknown ids and a *gate.ValidationError
// for bad input.
func (d *DecisionDesk) DecideProject(ctx context.Context, projectID string, req ProjectDecisionRequest) (*model.DecisionRecord, error) {
	if d.portfolio == nil {
		return nil, fmt.Errorf("%w: %s", portfolio.ErrProjectNotFound, projectID)
	}
	project, err := d.portfolio.Get(projectID)
	if err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	rec := d.newRecord(req.Urgency, req.Note)
	rec.ProjectID = project.ID
	rec.ProjectName = project.Name
	rec.Action = req.Action
	return d.record(ctx, rec)
}

// RecordQuick records a scenario decision.
func (d *DecisionDesk) RecordQuick(ctx context.Context, req QuickDecisionRequest) (*model.DecisionRecord, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	rec := d.newRecord(req.Urgency, req.Note)
	rec.Scenario = req.Scenario
	return d.record(ctx, rec)
}

func (d *DecisionDesk) newRecord(urgency int, note string) model.DecisionRecord {
	if urgency == 0 {
		urgency = model.DefaultUrgency
	}
	return model.DecisionRecord{
		ID:        d.newID(),
		Urgency:   urgency,
		Note:      strings.TrimSpace(note),
		Escalated: urgency >= model.EscalationUrgency,
		FollowUp:  model.FollowUpFor(urgency),
		DecidedAt: d.now(),
	}
}

func (d *DecisionDesk) record(ctx context.Context, rec model.DecisionRecord) (*model.DecisionRecord, error) {
	if d.store == nil {
		return nil, ErrNoLedger
	}
	if err := d.store.RecordDecision(ctx, rec); err != nil {
		d.logger.Error("recording decision",
			logging.Field{Key: "decision_id", Value: rec.ID},
			logging.Field{Key: "error", Value: err.Error()})
		return nil, err
	}

	fields := []logging.Field{
		{Key: "decision_id", Value: rec.ID},
		{Key: "urgency", Value: rec.Urgency},
	}
	if rec.ProjectID != "" {
		fields = append(fields,
			logging.Field{Key: "project_id", Value: rec.ProjectID},
			logging.Field{Key: "action", Value: string(rec.Action)})
	} else {
		fields = append(fields, logging.Field{Key: "scenario", Value: string(rec.Scenario)})
	}
	if rec.Escalated {
		d.logger.Warn("decision escalated to daily follow-up", fields...)
	} else {
		d.logger.Info("decision recorded", fields...)
	}
	return &rec, nil
}

// List returns recorded decisions, newest first.
func (d *DecisionDesk) List(ctx context.Context, f ledger.DecisionFilter) ([]model.DecisionRecord, error) {
	if d.store == nil {
		return nil, ErrNoLedger
	}
	return d.store.ListDecisions(ctx, f)
}

// Summary counts recorded decisions.
func (d *DecisionDesk) Summary(ctx context.Context) (*ledger.DecisionSummary, error) {
	if d.store == nil {
		return nil, ErrNoLedger
	}
	return d.store.DecisionSummary(ctx)
}
