// Package gate implements the feasibility (SFM) admission gate: a weighted
// composite score and four independent threshold checks.
package gate

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	passedSummary = "project satisfies every condition of the feasibility gate"
	failedHeading = "project failed the following feasibility gate conditions:"
)

// Evaluator applies a fixed Config to score inputs. It holds no mutable
// state and is safe for concurrent use.
type Evaluator struct {
	cfg Config
}

// NewEvaluator returns an Evaluator bound to cfg.
func NewEvaluator(cfg Config) *Evaluator {
	return &Evaluator{cfg: cfg}
}

// Config returns the evaluator's configuration.
func (e *Evaluator) Config() Config {
	return e.cfg
}

// Composite computes the SFM score for the three sub-scores.
func (e *Evaluator) Composite(economic, social, environmental float64) float64 {
	return CompositeScore(economic, social, environmental, e.cfg.Weights)
}

// Evaluate computes the composite score and runs every admission check.
func (e *Evaluator) Evaluate(in ScoreInputs) Decision {
	composite := e.Composite(in.Economic, in.Social, in.Environmental)
	return Check(in.Risk, in.Sustainability, in.NPV, composite, e.cfg.Thresholds)
}

// CompositeScore returns the weighted sum of the sub-scores rounded to two
// decimals, half away from zero. Inputs are not range checked.
func CompositeScore(economic, social, environmental float64, w Weights) float64 {
	sum := economic*w.Economic + social*w.Social + environmental*w.Environmental
	return round2(sum)
}

// Check runs all four admission checks against t. Every failing check is
// reported; a value equal to its bound passes.
func Check(risk, sustainability, npv, composite float64, t Thresholds) Decision {
	var violations []Violation

	if risk > t.MaxRisk {
		violations = append(violations, Violation{
			Check:     CheckRisk,
			Actual:    risk,
			Threshold: t.MaxRisk,
			Message:   fmt.Sprintf("risk score (%s%%) exceeds the allowed maximum (%s%%)", num(risk), num(t.MaxRisk)),
		})
	}

	if sustainability < t.MinSustainability {
		violations = append(violations, Violation{
			Check:     CheckSustainability,
			Actual:    sustainability,
			Threshold: t.MinSustainability,
			Message:   fmt.Sprintf("sustainability score (%s%%) is below the minimum (%s%%)", num(sustainability), num(t.MinSustainability)),
		})
	}

	if npv < t.MinNPV {
		violations = append(violations, Violation{
			Check:     CheckNPV,
			Actual:    npv,
			Threshold: t.MinNPV,
			Message:   fmt.Sprintf("net present value (%s million) is below the required minimum (%s million)", num(npv), num(t.MinNPV)),
		})
	}

	if composite < t.MinSFMScore {
		violations = append(violations, Violation{
			Check:     CheckSFMScore,
			Actual:    composite,
			Threshold: t.MinSFMScore,
			Message:   fmt.Sprintf("composite feasibility score (%s) is below the minimum (%s)", num(composite), num(t.MinSFMScore)),
		})
	}

	if len(violations) == 0 {
		return Decision{
			Passed:         true,
			CompositeScore: composite,
			Violations:     []Violation{},
			Summary:        passedSummary,
		}
	}

	d := Decision{
		Passed:         false,
		CompositeScore: composite,
		Violations:     violations,
	}
	d.Summary = failedHeading + "\n" + strings.Join(d.Messages(), "\n")
	return d
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// num formats v with the fewest digits that round-trip, so 80 prints as
// "80" and 8.5 as "8.5".
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
