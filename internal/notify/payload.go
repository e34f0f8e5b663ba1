package notify

import (
	"time"

	"github.com/egisf/egisf/internal/model"
)

// Payload is the JSON body posted to the automation webhook.
type Payload struct {
	EvaluationID        string   `json:"evaluation_id"`
	ProjectName         string   `json:"project_name"`
	ProjectCost         float64  `json:"project_cost"`
	ProjectLocation     string   `json:"project_location,omitempty"`
	ProjectSector       string   `json:"project_sector"`
	ProjectDuration     int      `json:"project_duration,omitempty"`
	NPV                 float64  `json:"npv"`
	EconomicScore       float64  `json:"economic_score"`
	SocialScore         float64  `json:"social_score"`
	EnvironmentalScore  float64  `json:"environmental_score"`
	SFMScore            float64  `json:"sfm_score"`
	RiskScore           float64  `json:"risk_score"`
	SustainabilityScore float64  `json:"sustainability_score"`
	Gate2Passed         bool     `json:"gate_2_passed"`
	Violations          []string `json:"violations"`
	Timestamp           string   `json:"timestamp"`
}

// NewPayload flattens an evaluation into the webhook body. The timestamp is
// ISO-8601 in UTC.
func NewPayload(ev model.Evaluation) Payload {
	return Payload{
		EvaluationID:        ev.ID,
		ProjectName:         ev.Project.Name,
		ProjectCost:         ev.Project.Budget,
		ProjectLocation:     ev.Project.Location,
		ProjectSector:       ev.Project.Sector,
		ProjectDuration:     ev.Project.DurationMonths,
		NPV:                 ev.Inputs.NPV,
		EconomicScore:       ev.Inputs.Economic,
		SocialScore:         ev.Inputs.Social,
		EnvironmentalScore:  ev.Inputs.Environmental,
		SFMScore:            ev.Decision.CompositeScore,
		RiskScore:           ev.Inputs.Risk,
		SustainabilityScore: ev.Inputs.Sustainability,
		Gate2Passed:         ev.Decision.Passed,
		Violations:          ev.Decision.Messages(),
		Timestamp:           ev.EvaluatedAt.UTC().Format(time.RFC3339),
	}
}
