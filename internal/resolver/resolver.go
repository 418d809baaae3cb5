package resolver

import (
	"encoding/json"

	"github.com/homelens/inspect-agent/internal/llm"
	"github.com/homelens/inspect-agent/internal/models"
	"github.com/rs/zerolog"
)

const (
	unstructuredLabel  = "Unstructured model output"
	unstructuredDetail = "The model reply could not be parsed as structured JSON."

	defaultConfidenceBase = 60
)

// Resolver turns whatever the model returned into a valid EvaluationResult.
// It never fails: unparseable output degrades to a single canned finding.
type Resolver struct {
	logger *zerolog.Logger
}

func NewResolver(logger *zerolog.Logger) *Resolver {
	return &Resolver{logger: logger}
}

// Resolve guarantees the EvaluationResult invariants on every path:
// id/area/model non-empty, findings/quickChecks/cautions non-nil.
func (r *Resolver) Resolve(raw *llm.RawOutput, fallbackID, fallbackArea, model string) models.EvaluationResult {
	payload := r.extract(raw)

	obj, ok := payload.(map[string]any)
	if !ok || obj == nil {
		return r.synthesize(fallbackID, fallbackArea, model)
	}
	if _, hasFindings := obj["findings"]; !hasFindings {
		r.logger.Warn().Str("id", fallbackID).Msg("model output has no findings field, synthesizing fallback result")
		return r.synthesize(fallbackID, fallbackArea, model)
	}

	backfill(obj, fallbackID, fallbackArea, model)

	// Round-trip through JSON to get the typed result. A shape so broken
	// it cannot decode gets the same canned fallback.
	encoded, err := json.Marshal(obj)
	if err != nil {
		return r.synthesize(fallbackID, fallbackArea, model)
	}

	var result models.EvaluationResult
	if err := json.Unmarshal(encoded, &result); err != nil {
		r.logger.Warn().Err(err).Str("id", fallbackID).Msg("model output did not decode, synthesizing fallback result")
		return r.synthesize(fallbackID, fallbackArea, model)
	}

	ensureSlices(&result)
	return result
}

// extract produces the candidate JSON value: structured output as-is, text
// parsed directly, then via brace matching. Returns nil when nothing parses.
func (r *Resolver) extract(raw *llm.RawOutput) any {
	if raw == nil {
		return nil
	}

	var payload any
	if raw.IsStructured() {
		if err := json.Unmarshal(raw.Structured, &payload); err != nil {
			return nil
		}
	} else {
		payload = raw.Text
	}

	payload = unwrapResponse(payload)

	// The unwrapped value may itself be a JSON string; parse until we
	// land on a non-string value (bounded: envelope, then its payload).
	for range 2 {
		text, isText := payload.(string)
		if !isText {
			return payload
		}
		payload = unwrapResponse(parseText(text))
	}

	if _, isText := payload.(string); isText {
		return nil
	}
	return payload
}

// parseText tries a direct JSON parse, then brace-span extraction.
func parseText(text string) any {
	var parsed any
	if err := json.Unmarshal([]byte(text), &parsed); err == nil {
		return parsed
	}

	if span, ok := extractBraceSpan(text); ok {
		if err := json.Unmarshal([]byte(span), &parsed); err == nil {
			return parsed
		}
	}

	return nil
}

// unwrapResponse lifts a provider-style {"response": ...} envelope.
func unwrapResponse(v any) any {
	if obj, ok := v.(map[string]any); ok {
		if inner, ok := obj["response"]; ok {
			return inner
		}
	}
	return v
}

// extractBraceSpan finds the first '{' and walks forward tracking nesting
// depth; the span ending where depth returns to zero is the candidate.
// No repair is attempted beyond this boundary extraction.
func extractBraceSpan(text string) (string, bool) {
	start := -1
	depth := 0

	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '{':
			if start == -1 {
				start = i
			}
			depth++
		case '}':
			if start == -1 {
				continue
			}
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}

	return "", false
}

func (r *Resolver) synthesize(id, area, model string) models.EvaluationResult {
	return models.EvaluationResult{
		ID:    id,
		Area:  area,
		Model: model,
		Findings: []models.Finding{
			{
				Label:          unstructuredLabel,
				Severity:       models.SeverityNote,
				Detail:         unstructuredDetail,
				ConfidenceBase: defaultConfidenceBase,
				Evidence:       []string{},
				RiskCues:       []string{},
			},
		},
		QuickChecks: []string{},
		Cautions:    []string{},
	}
}

// backfill fills required fields the model omitted, including the
// per-finding confidence base.
func backfill(obj map[string]any, id, area, model string) {
	if s, ok := obj["id"].(string); !ok || s == "" {
		obj["id"] = id
	}
	if s, ok := obj["area"].(string); !ok || s == "" {
		obj["area"] = area
	}
	if s, ok := obj["model"].(string); !ok || s == "" {
		obj["model"] = model
	}

	for _, key := range []string{"findings", "quickChecks", "cautions"} {
		if _, ok := obj[key].([]any); !ok {
			obj[key] = []any{}
		}
	}

	findings, _ := obj["findings"].([]any)
	for _, f := range findings {
		finding, ok := f.(map[string]any)
		if !ok {
			continue
		}
		if _, isNum := finding["confidenceBase"].(float64); !isNum {
			finding["confidenceBase"] = defaultConfidenceBase
		}
	}
}

func ensureSlices(result *models.EvaluationResult) {
	if result.Findings == nil {
		result.Findings = []models.Finding{}
	}
	if result.QuickChecks == nil {
		result.QuickChecks = []string{}
	}
	if result.Cautions == nil {
		result.Cautions = []string{}
	}
	for i := range result.Findings {
		if result.Findings[i].Evidence == nil {
			result.Findings[i].Evidence = []string{}
		}
		if result.Findings[i].RiskCues == nil {
			result.Findings[i].RiskCues = []string{}
		}
	}
}
