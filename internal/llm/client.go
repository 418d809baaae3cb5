package llm

import (
	"context"
)

// VisionClient is an interface for invoking vision-capable models.
// This allows mocking in tests without making real API calls.
type VisionClient interface {
	Infer(ctx context.Context, request InferRequest) (*RawOutput, error)
}
