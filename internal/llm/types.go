package llm

import "encoding/json"

// ImagePayload is the raw photo handed to the vision model.
type ImagePayload struct {
	MediaType string
	Data      []byte
}

// SchemaConstraint asks the provider to force its reply into the named
// JSON shape. Providers that cannot honor it must be called without one.
type SchemaConstraint struct {
	Name       string
	Definition map[string]any
}

type InferRequest struct {
	Model       string
	System      string
	Prompt      string
	Image       ImagePayload
	Schema      *SchemaConstraint
	MaxTokens   int
	Temperature float64
}

// RawOutput is what the model actually returned: either schema-conformant
// JSON or free text. Exactly one of the two is set.
type RawOutput struct {
	Structured json.RawMessage
	Text       string
	StopReason string
}

// IsStructured reports whether the provider honored the schema constraint.
func (o *RawOutput) IsStructured() bool {
	return len(o.Structured) > 0
}
