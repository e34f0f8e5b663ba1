package app

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/egisf/egisf/internal/gate"
	"github.com/egisf/egisf/internal/ledger"
	"github.com/egisf/egisf/internal/logging"
	"github.com/egisf/egisf/internal/model"
	"github.com/egisf/egisf/internal/notify"
)

// ErrNoLedger is returned by ledger reads when the orchestrator runs without
// persistence.
var ErrNoLedger = errors.New("evaluation ledger is not configured")

type EventStage string

const (
	StageEvaluating EventStage = "evaluating"
	StageDecided    EventStage = "decided"
	StageNotifying  EventStage = "notifying"
	StageNotified   EventStage = "notified"
	StageRecorded   EventStage = "recorded"
)

// EvaluationEvent reports progress through one evaluation. Decision is set
// from StageDecided on; Notification from StageNotified on.
type EvaluationEvent struct {
	EvaluationID string              `json:"evaluation_id"`
	Stage        EventStage          `json:"stage"`
	Decision     *gate.Decision      `json:"decision,omitempty"`
	Notification *model.Notification `json:"notification,omitempty"`
	Error        string              `json:"error,omitempty"`
	At           time.Time           `json:"at"`
}

// Observer receives stage events synchronously. It must not block.
type Observer func(EvaluationEvent)

// EvaluationRequest is one gate run as submitted by a caller.
type EvaluationRequest struct {
	Project model.ProjectInfo `json:"project"`
	Scores  gate.ScoreInputs  `json:"scores"`

	// SkipNotification keeps the decision local even when a webhook is set.
	SkipNotification bool `json:"skip_notification,omitempty"`
}

// Validate checks the project descriptor and the scores together so callers
// see every problem at once.
func (r EvaluationRequest) Validate() error {
	return gate.MergeValidation(r.Project.Validate(), r.Scores.Validate())
}

// Notifier delivers a decision to the outside world.
type Notifier interface {
	Enabled() bool
	Dispatch(ctx context.Context, p notify.Payload) model.Notification
}

// Store persists evaluations and answers report queries.
type Store interface {
	Record(ctx context.Context, ev model.Evaluation) error
	Get(ctx context.Context, id string) (*model.Evaluation, error)
	List(ctx context.Context, f ledger.Filter) ([]model.Evaluation, error)
	Summary(ctx context.Context) (*ledger.Summary, error)
}

// Orchestrator runs evaluations end to end: validate, decide, notify, record.
// It is safe for concurrent use.
type Orchestrator struct {
	evaluator *gate.Evaluator
	notifier  Notifier
	store     Store
	logger    logging.Logger

	now   func() time.Time
	newID func() string
}

// NewOrchestrator wires the evaluator with its collaborators. notifier and
// store may be nil: evaluations are then neither delivered nor persisted.
func NewOrchestrator(evaluator *gate.Evaluator, notifier Notifier, store Store, logger logging.Logger) *Orchestrator {
	if evaluator == nil {
		evaluator = gate.NewEvaluator(gate.DefaultConfig())
	}
	return &Orchestrator{
		evaluator: evaluator,
		notifier:  notifier,
		store:     store,
		logger:    logger.With(logging.Field{Key: "component", Value: "orchestrator"}),
		now:       func() time.Time { return time.Now().UTC() },
		newID:     func() string { return uuid.New().String() },
	}
}

// Evaluator returns the gate evaluator in use.
func (o *Orchestrator) Evaluator() *gate.Evaluator {
	return o.evaluator
}

// NotificationsEnabled reports whether decisions are sent to a webhook.
func (o *Orchestrator) NotificationsEnabled() bool {
	return o.notifier != nil && o.notifier.Enabled()
}

// Evaluate runs one gate evaluation. Only invalid input produces an error
// (a *gate.ValidationError); webhook and ledger failures are reported in the
// returned Evaluation and the log and never change the decision. observer
// may be nil.
func (o *Orchestrator) Evaluate(ctx context.Context, req EvaluationRequest, observer Observer) (*model.Evaluation, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	emit := func(ev EvaluationEvent) {
		if observer == nil {
			return
		}
		ev.At = o.now()
		observer(ev)
	}

	id := o.newID()
	emit(EvaluationEvent{EvaluationID: id, Stage: StageEvaluating})

	decision := o.evaluator.Evaluate(req.Scores)
	w := o.evaluator.Config().Weights

	ev := model.Evaluation{
		ID:        id,
		Project:   req.Project,
		Inputs:    req.Scores,
		Decision:  decision,
		Breakdown: gate.Breakdown(req.Scores.Economic, req.Scores.Social, req.Scores.Environmental, w),
		Bands: model.Bands{
			Risk:           gate.RiskBand(req.Scores.Risk),
			Sustainability: gate.SustainabilityBand(req.Scores.Sustainability),
			SFM:            gate.SFMBand(decision.CompositeScore),
		},
		Guidance:    gate.Guidance(decision),
		EvaluatedAt: o.now(),
	}

	o.logger.Info("gate decision",
		logging.Field{Key: "evaluation_id", Value: id},
		logging.Field{Key: "project", Value: req.Project.Name},
		logging.Field{Key: "composite", Value: decision.CompositeScore},
		logging.Field{Key: "passed", Value: decision.Passed},
		logging.Field{Key: "violations", Value: len(decision.Violations)})
	emit(EvaluationEvent{EvaluationID: id, Stage: StageDecided, Decision: &decision})

	ev.Notification = o.notify(ctx, ev, req.SkipNotification, emit)
	notification := ev.Notification
	emit(EvaluationEvent{EvaluationID: id, Stage: StageNotified, Decision: &decision, Notification: &notification})

	recorded := EvaluationEvent{EvaluationID: id, Stage: StageRecorded, Decision: &decision, Notification: &notification}
	if err := o.record(ctx, ev); err != nil {
		recorded.Error = err.Error()
	}
	emit(recorded)

	return &ev, nil
}

func (o *Orchestrator) notify(ctx context.Context, ev model.Evaluation, skip bool, emit func(EvaluationEvent)) model.Notification {
	if skip || !o.NotificationsEnabled() {
		return model.Notification{Kind: model.NotificationSkipped, Message: "decision recorded locally only"}
	}
	emit(EvaluationEvent{EvaluationID: ev.ID, Stage: StageNotifying, Decision: &ev.Decision})
	return o.notifier.Dispatch(ctx, notify.NewPayload(ev))
}

// record stores ev detached from request cancellation.
func (o *Orchestrator) record(ctx context.Context, ev model.Evaluation) error {
	if o.store == nil {
		return nil
	}
	if err := o.store.Record(context.WithoutCancel(ctx), ev); err != nil {
		o.logger.Error("recording evaluation",
			logging.Field{Key: "evaluation_id", Value: ev.ID},
			logging.Field{Key: "error", Value: err.Error()})
		return err
	}
	return nil
}

// GetEvaluation returns a recorded evaluation.
func (o *Orchestrator) GetEvaluation(ctx context.Context, id string) (*model.Evaluation, error) {
	if o.store == nil {
		return nil, ErrNoLedger
	}
	return o.store.Get(ctx, id)
}

// ListEvaluations returns recorded evaluations, newest first.
func (o *Orchestrator) ListEvaluations(ctx context.Context, f ledger.Filter) ([]model.Evaluation, error) {
	if o.store == nil {
		return nil, ErrNoLedger
	}
	return o.store.List(ctx, f)
}

// Summary aggregates the ledger.
func (o *Orchestrator) Summary(ctx context.Context) (*ledger.Summary, error) {
	if o.store == nil {
		return nil, ErrNoLedger
	}
	return o.store.Summary(ctx)
}
