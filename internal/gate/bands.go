package gate

// Band is a coarse label for a score, used by dashboards to colour values.
type Band string

const (
	BandLow        Band = "low"
	BandMedium     Band = "medium"
	BandHigh       Band = "high"
	BandWeak       Band = "weak"
	BandAcceptable Band = "acceptable"
	BandExcellent  Band = "excellent"
	BandBorderline Band = "borderline"
	BandStrong     Band = "strong"
)

// RiskBand labels a risk score: below 40 is low, below 60 medium, else high.
func RiskBand(risk float64) Band {
	switch {
	case risk < 40:
		return BandLow
	case risk < 60:
		return BandMedium
	default:
		return BandHigh
	}
}

// SustainabilityBand labels a sustainability score: below 40 is weak,
// below 70 acceptable, else excellent.
func SustainabilityBand(s float64) Band {
	switch {
	case s < 40:
		return BandWeak
	case s < 70:
		return BandAcceptable
	default:
		return BandExcellent
	}
}

// SFMBand labels a composite score using the gauge steps 0-40-60-100.
func SFMBand(score float64) Band {
	switch {
	case score < 40:
		return BandLow
	case score < 60:
		return BandBorderline
	default:
		return BandStrong
	}
}

// AxisContribution is one row of the composite score breakdown.
type AxisContribution struct {
	Axis          string  `json:"axis"`
	Score         float64 `json:"score"`
	WeightPercent float64 `json:"weight_percent"`
	Contribution  float64 `json:"contribution"`
}

// Breakdown returns the per-axis share of the composite score in
// economic, social, environmental order.
func Breakdown(economic, social, environmental float64, w Weights) []AxisContribution {
	row := func(axis string, score, weight float64) AxisContribution {
		return AxisContribution{
			Axis:          axis,
			Score:         score,
			WeightPercent: round2(weight * 100),
			Contribution:  round2(score * weight),
		}
	}
	return []AxisContribution{
		row("economic", economic, w.Economic),
		row("social", social, w.Social),
		row("environmental", environmental, w.Environmental),
	}
}

// Guidance returns follow-up actions for a decision: the next lifecycle
// steps when the gate passed, remediation advice when it did not.
func Guidance(d Decision) []string {
	if d.Passed {
		return []string{
			"proceed to gate 3 (approved design)",
			"prepare a BIM model at LOD 300",
			"run an advanced GIS analysis of the site",
			"prepare the tender documents",
		}
	}

	out := []string{"revisit the feasibility study and strengthen the weak axes"}
	for _, v := range d.Violations {
		switch v.Check {
		case CheckRisk:
			out = append(out, "redesign the project to reduce its risk exposure")
		case CheckSustainability:
			out = append(out, "improve the sustainability criteria")
		case CheckNPV:
			out = append(out, "rework the financial model until the net present value is positive")
		}
	}
	return append(out, "consult the exceptions committee where the project is strictly necessary")
}
