package report

import (
	"strings"
	"testing"

	"github.com/homelens/inspect-agent/internal/confidence"
	"github.com/homelens/inspect-agent/internal/models"
)

func newTestRenderer() *Renderer {
	return NewRenderer(confidence.NewEngine(confidence.DefaultPolicy()))
}

func sampleResult() models.EvaluationResult {
	return models.EvaluationResult{
		ID:    "asm-abc123",
		Area:  "bathroom",
		Model: "primary",
		Findings: []models.Finding{
			{
				Label:          "Missing GFCI protection",
				Severity:       models.SeverityCaution,
				Detail:         "Outlet within reach of the sink has no visible GFCI.",
				ConfidenceBase: 85,
				Evidence:       []string{"standard outlet face", "no reset button"},
				RiskCues:       []string{"tight angle"},
			},
		},
		QuickChecks: []string{"press test on any GFCI outlets"},
		Cautions:    []string{"do not probe the outlet"},
	}
}

func TestRenderer_Render_FullReport(t *testing.T) {
	r := newTestRenderer()

	out := r.Render(sampleResult())

	wantLines := []string{
		"Photo assessment: Bathroom",
		"[CAUTION] Missing GFCI protection",
		"  Outlet within reach of the sink has no visible GFCI.",
		remedyLine,
		// 85 - 15 (angle cue) - 10 (gfci term) = 60
		"  Confidence: 60/100 | evidence: standard outlet face; no reset button | cues: tight angle",
		"  Routing: flagged for manual review.",
		"Quick checks:",
		"  - press test on any GFCI outlets",
		"Cautions:",
		"  - do not probe the outlet",
		bathroomReminder,
		"Ref: asm-abc123",
	}

	for _, line := range wantLines {
		if !strings.Contains(out, line) {
			t.Errorf("Report missing line %q\n---\n%s", line, out)
		}
	}
}

func TestRenderer_Render_IsDeterministic(t *testing.T) {
	r := newTestRenderer()
	result := sampleResult()

	if r.Render(result) != r.Render(result) {
		t.Error("Render must be a pure function of the result")
	}
}

func TestRenderer_Render_NoFindings(t *testing.T) {
	r := newTestRenderer()

	out := r.Render(models.EvaluationResult{
		ID:          "asm-empty",
		Area:        "garage",
		Model:       "m",
		Findings:    []models.Finding{},
		QuickChecks: []string{},
		Cautions:    []string{},
	})

	if !strings.Contains(out, noFindingsLine) {
		t.Error("Expected placeholder line when there are no findings")
	}
	if strings.Contains(out, "Quick checks:") || strings.Contains(out, "Cautions:") {
		t.Error("Empty lists must be omitted")
	}
	if strings.Contains(out, bathroomReminder) {
		t.Error("Non-bathroom areas must not get the exhaust fan reminder")
	}
	if !strings.HasSuffix(out, "Ref: asm-empty") {
		t.Error("Expected Ref trailer as the last line")
	}
}

func TestRenderer_Render_BathroomReminderIsSubstringMatch(t *testing.T) {
	r := newTestRenderer()

	out := r.Render(models.EvaluationResult{
		ID:       "asm-1",
		Area:     "Master Bathroom",
		Model:    "m",
		Findings: []models.Finding{},
	})

	if !strings.Contains(out, bathroomReminder) {
		t.Error("Expected reminder for any area containing 'bathroom'")
	}
}

func TestRenderer_Render_AutoOKRouting(t *testing.T) {
	r := newTestRenderer()

	out := r.Render(models.EvaluationResult{
		ID:    "asm-2",
		Area:  "bedroom",
		Model: "m",
		Findings: []models.Finding{
			{Label: "Tidy closet", Severity: models.SeverityInfo, Detail: "Nothing notable.", ConfidenceBase: 90},
		},
	})

	if !strings.Contains(out, "  Routing: accepted automatically.") {
		t.Errorf("Expected auto-ok routing sentence, got:\n%s", out)
	}
	if !strings.Contains(out, "  Confidence: 90/100") {
		t.Errorf("Expected unpenalized confidence, got:\n%s", out)
	}
}
