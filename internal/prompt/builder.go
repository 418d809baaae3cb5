package prompt

import (
	"bytes"
	"fmt"
	"strconv"
	"text/template"

	"github.com/homelens/inspect-agent/internal/models"
)

const userTemplate = `Assess the attached photo of a home.

Context:
- Area: {{.Area}}
- Bedrooms: {{.Bedrooms}}
- Manufactured home: {{.Manufactured}}
- Notes: {{.Notes}}
{{if .Knowledge}}
Reference material:
{{.Knowledge}}
{{end}}{{if .Sources}}
Consulted sources:
{{range .Sources}}- {{.}}
{{end}}{{end}}
Report your observations as findings. Each finding has a label, a severity
(info, note, caution or alert), a detail sentence, a confidenceBase integer
from 0 to 100, up to five evidence strings, up to five riskCues strings, and
flags (codeSensitive, needsAlternateAngle, lowImageQuality). Also include
quickChecks (short steps the occupant can do now) and cautions (things not
to touch without a professional).

Return strictly a single JSON object matching the assessment schema, with
keys findings, quickChecks and cautions. No prose outside the JSON.`

// Builder turns the request context and the knowledge block into the exact
// user instruction text sent to the model. Pure and deterministic.
type Builder struct {
	tmpl *template.Template
}

func NewBuilder() (*Builder, error) {
	tmpl, err := template.New("assessment").Parse(userTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse assessment prompt template: %w", err)
	}
	return &Builder{tmpl: tmpl}, nil
}

type templateData struct {
	Area         string
	Bedrooms     string
	Manufactured string
	Notes        string
	Knowledge    string
	Sources      []string
}

func (b *Builder) Build(evalCtx models.EvaluationContext, knowledgeText string, knowledgeSources []string) (string, error) {
	data := templateData{
		Area:         "unspecified",
		Bedrooms:     "n/a",
		Manufactured: "no",
		Notes:        "n/a",
		Knowledge:    knowledgeText,
		Sources:      knowledgeSources,
	}

	if evalCtx.Area != "" {
		data.Area = evalCtx.Area
	}
	if evalCtx.Bedrooms != nil {
		data.Bedrooms = strconv.Itoa(*evalCtx.Bedrooms)
	}
	if evalCtx.ManufacturedHome != nil && *evalCtx.ManufacturedHome {
		data.Manufactured = "yes"
	}
	if evalCtx.Notes != "" {
		data.Notes = evalCtx.Notes
	}

	var buf bytes.Buffer
	if err := b.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("template execution failed: %w", err)
	}

	return buf.String(), nil
}
