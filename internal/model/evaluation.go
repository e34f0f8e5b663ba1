package model

import (
	"time"

	"github.com/egisf/egisf/internal/gate"
)

// Bands are the dashboard labels for an evaluation's key scores.
type Bands struct {
	Risk           gate.Band `json:"risk"`
	Sustainability gate.Band `json:"sustainability"`
	SFM            gate.Band `json:"sfm"`
}

// Evaluation is the full result of one gate run: the decision, the inputs
// that produced it, and how the notification went.
type Evaluation struct {
	ID           string                  `json:"id"`
	Project      ProjectInfo             `json:"project"`
	Inputs       gate.ScoreInputs        `json:"inputs"`
	Decision     gate.Decision           `json:"decision"`
	Breakdown    []gate.AxisContribution `json:"breakdown"`
	Bands        Bands                   `json:"bands"`
	Guidance     []string                `json:"guidance"`
	Notification Notification            `json:"notification"`
	EvaluatedAt  time.Time               `json:"evaluated_at"`
}
