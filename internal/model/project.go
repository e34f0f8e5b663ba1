package model

import (
	"math"
	"strings"

	"github.com/egisf/egisf/internal/gate"
)

// ProjectInfo describes the project under evaluation. It is carried along
// with a decision and never stored as a managed entity.
type ProjectInfo struct {
	Name           string  `json:"name" example:"Northern Specialist Hospital"`
	Sector         string  `json:"sector" example:"health"`
	Location       string  `json:"location,omitempty" example:"Northern Region"`
	Budget         float64 `json:"budget" example:"20"` // millions
	DurationMonths int     `json:"duration_months,omitempty" example:"24"`
}

// Validate rejects a blank name, a negative or non-finite budget and a
// negative duration.
func (p ProjectInfo) Validate() error {
	ve := &gate.ValidationError{}
	if strings.TrimSpace(p.Name) == "" {
		ve.Problems = append(ve.Problems, gate.FieldError{Field: "project.name", Message: "is required"})
	}
	if math.IsNaN(p.Budget) || math.IsInf(p.Budget, 0) || p.Budget < 0 {
		ve.Problems = append(ve.Problems, gate.FieldError{Field: "project.budget", Message: "must be a non-negative number"})
	}
	if p.DurationMonths < 0 {
		ve.Problems = append(ve.Problems, gate.FieldError{Field: "project.duration_months", Message: "must not be negative"})
	}
	if len(ve.Problems) == 0 {
		return nil
	}
	return ve
}
