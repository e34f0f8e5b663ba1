package model

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/egisf/egisf/internal/gate"
)

// DecisionAction is what a decision maker did with a pending project.
type DecisionAction string

const (
	ActionApprove DecisionAction = "approve"
	ActionHold    DecisionAction = "hold"
	ActionReject  DecisionAction = "reject"
)

// Valid reports whether a is one of the known actions.
func (a DecisionAction) Valid() bool {
	switch a {
	case ActionApprove, ActionHold, ActionReject:
		return true
	}
	return false
}

// Scenario is the situation behind a quick decision taken outside the
// pending-project queue.
type Scenario string

const (
	ScenarioDisasterRecovery  Scenario = "disaster-recovery"
	ScenarioTimeLimitedInvest Scenario = "time-limited-investment"
	ScenarioNationalSecurity  Scenario = "national-security"
	ScenarioUnderservedRegion Scenario = "underserved-region"
)

// Scenarios lists every accepted quick-decision scenario.
var Scenarios = []Scenario{
	ScenarioDisasterRecovery,
	ScenarioTimeLimitedInvest,
	ScenarioNationalSecurity,
	ScenarioUnderservedRegion,
}

func (s Scenario) Valid() bool {
	for _, known := range Scenarios {
		if s == known {
			return true
		}
	}
	return false
}

// Urgency bounds. Decisions at EscalationUrgency or above need daily
// follow-up.
const (
	MinUrgency        = 1
	MaxUrgency        = 10
	DefaultUrgency    = 7
	EscalationUrgency = 8
	MaxNoteLength     = 2000
)

// FollowUp is the review cadence a decision commits to.
type FollowUp string

const (
	FollowUpDaily    FollowUp = "daily"
	FollowUpStandard FollowUp = "standard"
)

// FollowUpFor maps an urgency to its review cadence.
func FollowUpFor(urgency int) FollowUp {
	if urgency >= EscalationUrgency {
		return FollowUpDaily
	}
	return FollowUpStandard
}

// DecisionRecord is one audited decision. Project decisions carry
// ProjectID and Action; quick decisions carry Scenario instead.
type DecisionRecord struct {
	ID          string         `json:"id"`
	ProjectID   string         `json:"project_id,omitempty" example:"PRJ-2025-00234"`
	ProjectName string         `json:"project_name,omitempty"`
	Action      DecisionAction `json:"action,omitempty" example:"hold"`
	Scenario    Scenario       `json:"scenario,omitempty"`
	Urgency     int            `json:"urgency" example:"9"`
	Note        string         `json:"note,omitempty"`
	Escalated   bool           `json:"escalated"`
	FollowUp    FollowUp       `json:"follow_up" example:"daily"`
	DecidedAt   time.Time      `json:"decided_at"`
}

// ValidateDecisionFields checks the urgency (0 means unset) and the note.
func ValidateDecisionFields(urgency int, note string) error {
	ve := &gate.ValidationError{}
	if urgency != 0 && (urgency < MinUrgency || urgency > MaxUrgency) {
		ve.Problems = append(ve.Problems, gate.FieldError{
			Field:   "urgency",
			Message: fmt.Sprintf("must be between %d and %d, got %d", MinUrgency, MaxUrgency, urgency),
		})
	}
	if utf8.RuneCountInString(strings.TrimSpace(note)) > MaxNoteLength {
		ve.Problems = append(ve.Problems, gate.FieldError{
			Field:   "note",
			Message: fmt.Sprintf("must be at most %d characters", MaxNoteLength),
		})
	}
	if len(ve.Problems) == 0 {
		return nil
	}
	return ve
}
