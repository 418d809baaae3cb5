package invoker

import (
	"context"
	"fmt"
	"time"

	"github.com/homelens/inspect-agent/internal/llm"
	"github.com/rs/zerolog"
)

// ModelCapabilities describes what a given model id can be asked for.
type ModelCapabilities struct {
	SupportsSchema bool
}

// Invoker calls the vision model with a schema constraint where supported,
// and retries exactly once against the fallback model (without the schema)
// when the first call fails. Both calls failing is fatal for the request.
type Invoker struct {
	client        llm.VisionClient
	system        string
	fallbackModel string
	capabilities  map[string]ModelCapabilities
	logger        *zerolog.Logger
}

func NewInvoker(
	client llm.VisionClient,
	system string,
	fallbackModel string,
	capabilities map[string]ModelCapabilities,
	logger *zerolog.Logger,
) *Invoker {
	return &Invoker{
		client:        client,
		system:        system,
		fallbackModel: fallbackModel,
		capabilities:  capabilities,
		logger:        logger,
	}
}

func (i *Invoker) Invoke(ctx context.Context, model string, image llm.ImagePayload, userPrompt string) (*llm.RawOutput, error) {
	var schema *llm.SchemaConstraint
	if i.capabilities[model].SupportsSchema {
		schema = assessmentSchema()
		i.warmUp(ctx, model)
	}

	raw, err := i.client.Infer(ctx, llm.InferRequest{
		Model:  model,
		System: i.system,
		Prompt: userPrompt,
		Image:  image,
		Schema: schema,
	})
	if err == nil {
		return raw, nil
	}

	if model == i.fallbackModel {
		return nil, fmt.Errorf("model %s failed with no fallback left: %w", model, err)
	}

	i.logger.Warn().
		Err(err).
		Str("model", model).
		Str("fallback_model", i.fallbackModel).
		Msg("primary model failed, retrying on fallback")

	raw, fbErr := i.client.Infer(ctx, llm.InferRequest{
		Model:  i.fallbackModel,
		System: i.system,
		Prompt: userPrompt,
		Image:  image,
	})
	if fbErr != nil {
		return nil, fmt.Errorf("fallback model %s failed after %s: %w", i.fallbackModel, model, fbErr)
	}

	return raw, nil
}

// warmUp fires a tiny request at the model and forgets about it. Failures
// are swallowed; the main call never waits on this.
func (i *Invoker) warmUp(ctx context.Context, model string) {
	warmCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	go func() {
		defer cancel()
		_, err := i.client.Infer(warmCtx, llm.InferRequest{
			Model:     model,
			Prompt:    "ping",
			MaxTokens: 1,
		})
		if err != nil {
			i.logger.Debug().Err(err).Str("model", model).Msg("warm-up call failed")
		}
	}()
}
