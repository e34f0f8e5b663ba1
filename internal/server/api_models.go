package server

import (
	"github.com/egisf/egisf/internal/app"
	"github.com/egisf/egisf/internal/gate"
	"github.com/egisf/egisf/internal/ledger"
	"github.com/egisf/egisf/internal/model"
	"github.com/egisf/egisf/internal/portfolio"
)

// EvaluateRequest is the body of POST /gates/sfm/evaluate and the first
// message sent over /ws/evaluate.
type EvaluateRequest = app.EvaluationRequest

// CompositeRequest carries the three feasibility sub-scores, each in [0,100].
type CompositeRequest struct {
	Economic      float64 `json:"economic" example:"75"`
	Social        float64 `json:"social" example:"65"`
	Environmental float64 `json:"environmental" example:"55"`
}

// CompositeResponse is the SFM score with its per-axis breakdown.
type CompositeResponse struct {
	CompositeScore float64                 `json:"composite_score" example:"66"`
	Band           gate.Band               `json:"band" example:"strong"`
	Breakdown      []gate.AxisContribution `json:"breakdown"`
	Weights        gate.Weights            `json:"weights"`
}

// WebhookStatus describes the notification target without exposing it.
type WebhookStatus struct {
	Enabled bool   `json:"enabled" example:"true"`
	Timeout string `json:"timeout" example:"10s"`
}

// ConfigResponse reports the effective gate configuration.
type ConfigResponse struct {
	Weights    gate.Weights    `json:"weights"`
	Thresholds gate.Thresholds `json:"thresholds"`
	Webhook    WebhookStatus   `json:"webhook"`
}

// ProjectDecisionRequest is the body of POST /portfolio/{id}/decision.
type ProjectDecisionRequest = app.ProjectDecisionRequest

// QuickDecisionRequest is the body of POST /decisions/quick.
type QuickDecisionRequest = app.QuickDecisionRequest

// ReportResponse combines the live ledger and decision summaries with the
// portfolio headline metrics and live report lists.
type ReportResponse struct {
	Ledger    *ledger.Summary         `json:"ledger"`
	Decisions *ledger.DecisionSummary `json:"decisions"`
	Portfolio portfolio.Overview      `json:"portfolio"`
	Live      portfolio.LiveReport    `json:"live"`
}

// HealthResponse is returned by /healthz.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

// ErrorResponse is a uniform error payload returned by the API.
type ErrorResponse struct {
	Error string `json:"error" example:"not found"`
}

// ValidationErrorResponse lists every rejected field of a request.
type ValidationErrorResponse struct {
	Error    string            `json:"error" example:"invalid input: risk: must be between 0 and 100, got 140"`
	Problems []gate.FieldError `json:"problems"`
}

type wsMessageType string

const (
	wsEvent  wsMessageType = "event"
	wsResult wsMessageType = "result"
	wsError  wsMessageType = "error"
)

// WSMessage is one frame written on /ws/evaluate: a stage event, the final
// evaluation, or an error.
type WSMessage struct {
	Type       wsMessageType        `json:"type" example:"event"`
	Event      *app.EvaluationEvent `json:"event,omitempty"`
	Evaluation *model.Evaluation    `json:"evaluation,omitempty"`
	Error      string               `json:"error,omitempty"`
	Problems   []gate.FieldError    `json:"problems,omitempty"`
}
