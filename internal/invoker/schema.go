package invoker

import "github.com/homelens/inspect-agent/internal/llm"

// assessmentSchema is the machine-checkable contract attached to calls
// against schema-capable models. Shape mirrors models.EvaluationResult.
func assessmentSchema() *llm.SchemaConstraint {
	severity := map[string]any{
		"type": "string",
		"enum": []string{"info", "note", "caution", "alert"},
	}

	stringList := func(maxItems int) map[string]any {
		s := map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		}
		if maxItems > 0 {
			s["maxItems"] = maxItems
		}
		return s
	}

	finding := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"label":          map[string]any{"type": "string"},
			"severity":       severity,
			"detail":         map[string]any{"type": "string"},
			"confidenceBase": map[string]any{"type": "integer", "minimum": 0, "maximum": 100},
			"evidence":       stringList(5),
			"riskCues":       stringList(5),
			"flags": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"codeSensitive":       map[string]any{"type": "boolean"},
					"needsAlternateAngle": map[string]any{"type": "boolean"},
					"lowImageQuality":     map[string]any{"type": "boolean"},
				},
			},
		},
		"required": []string{"label", "severity", "detail", "confidenceBase"},
	}

	return &llm.SchemaConstraint{
		Name: "record_assessment",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"findings": map[string]any{
					"type":  "array",
					"items": finding,
				},
				"quickChecks": stringList(0),
				"cautions":    stringList(0),
			},
			"required": []string{"findings"},
		},
	}
}
