package mcpadapter

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/homelens/inspect-agent/internal/executor"
	"github.com/homelens/inspect-agent/internal/llm"
	"github.com/homelens/inspect-agent/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// AssessPhotoInput is the MCP tool input schema (matches HTTP API semantics).
type AssessPhotoInput struct {
	ImageB64         string `json:"image_b64" jsonschema:"base64-encoded photo bytes"`
	MediaType        string `json:"media_type" jsonschema:"photo MIME type, e.g. image/jpeg"`
	Area             string `json:"area,omitempty" jsonschema:"room or area shown in the photo"`
	Bedrooms         *int   `json:"bedrooms,omitempty" jsonschema:"bedroom count of the home"`
	ManufacturedHome *bool  `json:"manufactured_home,omitempty" jsonschema:"whether the home is manufactured"`
	Notes            string `json:"notes,omitempty" jsonschema:"free-text notes for the assessor"`
	Model            string `json:"model,omitempty" jsonschema:"model id override"`
}

// NewAssessPhotoHandler returns a tool handler that uses the given evaluator.
// Pass the returned function to mcp.AddTool.
func NewAssessPhotoHandler(eval *executor.Evaluator) func(context.Context, *mcp.CallToolRequest, AssessPhotoInput) (*mcp.CallToolResult, models.EvaluationResult, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input AssessPhotoInput) (*mcp.CallToolResult, models.EvaluationResult, error) {
		return AssessPhoto(ctx, eval, req, input)
	}
}

// AssessPhoto runs the assessment pipeline and returns the result.
func AssessPhoto(
	ctx context.Context,
	eval *executor.Evaluator,
	req *mcp.CallToolRequest,
	input AssessPhotoInput,
) (*mcp.CallToolResult, models.EvaluationResult, error) {
	photo, err := base64.StdEncoding.DecodeString(input.ImageB64)
	if err != nil {
		return nil, models.EvaluationResult{}, fmt.Errorf("invalid image_b64: %w", err)
	}
	if len(photo) == 0 {
		return nil, models.EvaluationResult{}, fmt.Errorf("image_b64 is required")
	}

	evalCtx := models.EvaluationContext{
		Area:             input.Area,
		Bedrooms:         input.Bedrooms,
		ManufacturedHome: input.ManufacturedHome,
		Notes:            input.Notes,
	}

	result, err := eval.Execute(ctx, evalCtx, llm.ImagePayload{
		MediaType: input.MediaType,
		Data:      photo,
	}, input.Model)
	if err != nil {
		return nil, models.EvaluationResult{}, err
	}

	return nil, result, nil
}
