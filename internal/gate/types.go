package gate

// ScoreInputs are the raw numbers a project is judged on. Economic, Social,
// Environmental, Risk and Sustainability are nominally in [0,100]; NPV is in
// millions and may be negative.
type ScoreInputs struct {
	Economic       float64 `json:"economic" yaml:"economic"`
	Social         float64 `json:"social" yaml:"social"`
	Environmental  float64 `json:"environmental" yaml:"environmental"`
	Risk           float64 `json:"risk" yaml:"risk"`
	Sustainability float64 `json:"sustainability" yaml:"sustainability"`
	NPV            float64 `json:"npv" yaml:"npv"`
}

// Weights combine the three feasibility axes into the SFM score.
type Weights struct {
	Economic      float64 `json:"economic" yaml:"economic" env:"ECONOMIC"`
	Social        float64 `json:"social" yaml:"social" env:"SOCIAL"`
	Environmental float64 `json:"environmental" yaml:"environmental" env:"ENVIRONMENTAL"`
}

// Sum returns the total of all three weights.
func (w Weights) Sum() float64 {
	return w.Economic + w.Social + w.Environmental
}

// Thresholds are the admission bounds of the feasibility gate.
// MaxRisk is an upper bound; the rest are lower bounds. Equality passes.
type Thresholds struct {
	MaxRisk           float64 `json:"max_risk" yaml:"max_risk" env:"MAX_RISK"`
	MinSustainability float64 `json:"min_sustainability" yaml:"min_sustainability" env:"MIN_SUSTAINABILITY"`
	MinNPV            float64 `json:"min_npv" yaml:"min_npv" env:"MIN_NPV"`
	MinSFMScore       float64 `json:"min_sfm_score" yaml:"min_sfm_score" env:"MIN_SFM_SCORE"`
}

// Config is the evaluator configuration. It is read once at start-up and
// never mutated afterwards.
type Config struct {
	Weights    Weights    `json:"weights" yaml:"weights" envPrefix:"WEIGHT_"`
	Thresholds Thresholds `json:"thresholds" yaml:"thresholds"`
}

// DefaultWeights returns the 40/30/30 economic/social/environmental split.
func DefaultWeights() Weights {
	return Weights{
		Economic:      0.40,
		Social:        0.30,
		Environmental: 0.30,
	}
}

// DefaultThresholds returns the gate-2 admission bounds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MaxRisk:           60,
		MinSustainability: 40,
		MinNPV:            0,
		MinSFMScore:       60,
	}
}

// DefaultConfig returns DefaultWeights and DefaultThresholds together.
func DefaultConfig() Config {
	return Config{
		Weights:    DefaultWeights(),
		Thresholds: DefaultThresholds(),
	}
}

// CheckName identifies one of the four admission checks.
type CheckName string

const (
	CheckRisk           CheckName = "risk"
	CheckSustainability CheckName = "sustainability"
	CheckNPV            CheckName = "npv"
	CheckSFMScore       CheckName = "sfm_score"
)

// Violation is a single failed admission check.
type Violation struct {
	Check     CheckName `json:"check"`
	Actual    float64   `json:"actual"`
	Threshold float64   `json:"threshold"`
	Message   string    `json:"message"`
}

// Decision is the outcome of one gate evaluation. Violations is empty
// exactly when Passed is true.
type Decision struct {
	Passed         bool        `json:"passed"`
	CompositeScore float64     `json:"composite_score"`
	Violations     []Violation `json:"violations"`
	Summary        string      `json:"summary"`
}

// Messages returns the violation messages in check order.
func (d Decision) Messages() []string {
	out := make([]string, 0, len(d.Violations))
	for _, v := range d.Violations {
		out = append(out, v.Message)
	}
	return out
}
