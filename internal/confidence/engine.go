package confidence

import (
	"strings"

	"github.com/homelens/inspect-agent/internal/models"
)

// Policy holds the penalty constants and routing threshold. The defaults
// are fixed operational values; they are configurable, not derived.
type Policy struct {
	LowImageQualityPenalty int `yaml:"lowImageQualityPenalty"`
	AnglePenalty           int `yaml:"anglePenalty"`
	LabelCuePenalty        int `yaml:"labelCuePenalty"`
	CodeSensitivePenalty   int `yaml:"codeSensitivePenalty"`
	MinScore               int `yaml:"minScore"`
	MaxScore               int `yaml:"maxScore"`
	ReviewThreshold        int `yaml:"reviewThreshold"`
}

func DefaultPolicy() Policy {
	return Policy{
		LowImageQualityPenalty: 20,
		AnglePenalty:           15,
		LabelCuePenalty:        10,
		CodeSensitivePenalty:   10,
		MinScore:               5,
		MaxScore:               95,
		ReviewThreshold:        70,
	}
}

// Cue terms that indicate the photo itself limits what can be concluded.
var angleCues = []string{"angle", "lighting", "obstruction"}

// Cue terms that indicate the finding hinges on reading a label or plate.
var labelCues = []string{"label", "nameplate", "plate", "date code"}

// Terms in the finding text that make it code-sensitive regardless of flags.
var codeSensitiveTerms = []string{
	"bonding", "clearance", "gfci", "afci", "disconnect",
	"separation", "lug", "neutral", "ground", "trap", "slope",
}

// Engine recomputes an adjusted confidence per finding from heuristic
// penalty rules and derives the binary review-routing decision.
type Engine struct {
	policy Policy
}

func NewEngine(policy Policy) *Engine {
	return &Engine{policy: policy}
}

// Adjust applies the additive penalties to the finding's confidence base
// and clamps the score to the policy range. Penalties stack.
func (e *Engine) Adjust(finding models.Finding) int {
	score := finding.ConfidenceBase

	cues := strings.ToLower(strings.Join(finding.RiskCues, " "))
	text := strings.ToLower(finding.Label + " " + finding.Detail)

	if finding.Flags.LowImageQuality {
		score -= e.policy.LowImageQualityPenalty
	}
	if finding.Flags.NeedsAlternateAngle || containsAny(cues, angleCues) {
		score -= e.policy.AnglePenalty
	}
	if containsAny(cues, labelCues) {
		score -= e.policy.LabelCuePenalty
	}
	if finding.Flags.CodeSensitive || containsAny(text, codeSensitiveTerms) {
		score -= e.policy.CodeSensitivePenalty
	}

	if score < e.policy.MinScore {
		score = e.policy.MinScore
	}
	if score > e.policy.MaxScore {
		score = e.policy.MaxScore
	}

	return score
}

// Action routes scores below the threshold to a human.
func (e *Engine) Action(score int) models.ReviewAction {
	if score < e.policy.ReviewThreshold {
		return models.ReviewActionManual
	}
	return models.ReviewActionAutoOK
}

// AdjustAll derives the full adjusted view without mutating the findings.
func (e *Engine) AdjustAll(findings []models.Finding) []models.AdjustedFinding {
	adjusted := make([]models.AdjustedFinding, 0, len(findings))
	for _, f := range findings {
		score := e.Adjust(f)
		adjusted = append(adjusted, models.AdjustedFinding{
			Finding:            f,
			AdjustedConfidence: score,
			ReviewAction:       e.Action(score),
		})
	}
	return adjusted
}

func containsAny(haystack string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(haystack, term) {
			return true
		}
	}
	return false
}
