package gate

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// weightSumTolerance is how far the weights may drift from 1.0.
const weightSumTolerance = 0.001

// FieldError is a single rejected field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every problem found in one value.
type ValidationError struct {
	Problems []FieldError `json:"problems"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		parts = append(parts, p.Field+": "+p.Message)
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, format string, args ...any) {
	e.Problems = append(e.Problems, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

func (e *ValidationError) orNil() error {
	if len(e.Problems) == 0 {
		return nil
	}
	return e
}

// Validate rejects out-of-range or non-finite inputs. The evaluator itself
// accepts anything; this is applied at the API boundary.
func (in ScoreInputs) Validate() error {
	ve := &ValidationError{}
	bounded := []struct {
		name string
		v    float64
	}{
		{"economic", in.Economic},
		{"social", in.Social},
		{"environmental", in.Environmental},
		{"risk", in.Risk},
		{"sustainability", in.Sustainability},
	}
	for _, b := range bounded {
		switch {
		case !finite(b.v):
			ve.add(b.name, "must be a finite number")
		case b.v < 0 || b.v > 100:
			ve.add(b.name, "must be between 0 and 100, got %s", num(b.v))
		}
	}
	if !finite(in.NPV) {
		ve.add("npv", "must be a finite number")
	}
	return ve.orNil()
}

// Validate checks that the weights are non-negative and sum to 1.
func (w Weights) Validate() error {
	ve := &ValidationError{}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"weights.economic", w.Economic},
		{"weights.social", w.Social},
		{"weights.environmental", w.Environmental},
	} {
		if !finite(f.v) || f.v < 0 {
			ve.add(f.name, "must be a non-negative number")
		}
	}
	if len(ve.Problems) == 0 && math.Abs(w.Sum()-1) > weightSumTolerance {
		ve.add("weights", "must sum to 1.0, got %s", num(w.Sum()))
	}
	return ve.orNil()
}

// Validate checks that every threshold is a finite number.
func (t Thresholds) Validate() error {
	ve := &ValidationError{}
	if !finite(t.MaxRisk) {
		ve.add("thresholds.max_risk", "must be a finite number")
	}
	if !finite(t.MinSustainability) {
		ve.add("thresholds.min_sustainability", "must be a finite number")
	}
	if !finite(t.MinNPV) {
		ve.add("thresholds.min_npv", "must be a finite number")
	}
	if !finite(t.MinSFMScore) {
		ve.add("thresholds.min_sfm_score", "must be a finite number")
	}
	return ve.orNil()
}

// Validate checks both weights and thresholds.
func (c Config) Validate() error {
	return MergeValidation(c.Weights.Validate(), c.Thresholds.Validate())
}

// MergeValidation folds the problems of several validation errors into one.
// Nil errors are skipped; any error that is not a *ValidationError is
// returned unchanged.
func MergeValidation(errs ...error) error {
	ve := &ValidationError{}
	for _, err := range errs {
		if err == nil {
			continue
		}
		var v *ValidationError
		if !errors.As(err, &v) {
			return err
		}
		ve.Problems = append(ve.Problems, v.Problems...)
	}
	return ve.orNil()
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
