package report

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/homelens/inspect-agent/internal/confidence"
	"github.com/homelens/inspect-agent/internal/models"
)

const (
	remedyLine       = "  Remedy: have a licensed professional evaluate and correct as needed."
	noFindingsLine   = "No findings were reported for this photo."
	bathroomReminder = "Reminder: verify the bathroom exhaust fan runs and vents to the outdoors."
)

// Renderer turns a validated result into the line-oriented human report.
// Output is purely a function of the result; stable for display or logging.
type Renderer struct {
	engine *confidence.Engine
}

func NewRenderer(engine *confidence.Engine) *Renderer {
	return &Renderer{engine: engine}
}

func (r *Renderer) Render(result models.EvaluationResult) string {
	var lines []string

	lines = append(lines, fmt.Sprintf("Photo assessment: %s", capitalize(result.Area)))
	lines = append(lines, "")

	if len(result.Findings) == 0 {
		lines = append(lines, noFindingsLine)
	}

	for _, adjusted := range r.engine.AdjustAll(result.Findings) {
		lines = append(lines, fmt.Sprintf("[%s] %s", strings.ToUpper(string(adjusted.Severity)), adjusted.Label))
		lines = append(lines, "  "+adjusted.Detail)
		lines = append(lines, remedyLine)

		confidenceLine := fmt.Sprintf("  Confidence: %d/100", adjusted.AdjustedConfidence)
		if len(adjusted.Evidence) > 0 {
			confidenceLine += " | evidence: " + strings.Join(adjusted.Evidence, "; ")
		}
		if len(adjusted.RiskCues) > 0 {
			confidenceLine += " | cues: " + strings.Join(adjusted.RiskCues, "; ")
		}
		lines = append(lines, confidenceLine)

		if adjusted.ReviewAction == models.ReviewActionManual {
			lines = append(lines, "  Routing: flagged for manual review.")
		} else {
			lines = append(lines, "  Routing: accepted automatically.")
		}
	}

	if len(result.QuickChecks) > 0 {
		lines = append(lines, "", "Quick checks:")
		for _, check := range result.QuickChecks {
			lines = append(lines, "  - "+check)
		}
	}

	if len(result.Cautions) > 0 {
		lines = append(lines, "", "Cautions:")
		for _, caution := range result.Cautions {
			lines = append(lines, "  - "+caution)
		}
	}

	if strings.Contains(strings.ToLower(result.Area), "bathroom") {
		lines = append(lines, "", bathroomReminder)
	}

	lines = append(lines, "", "Ref: "+result.ID)

	return strings.Join(lines, "\n")
}

func capitalize(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
