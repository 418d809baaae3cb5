package executor

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/homelens/inspect-agent/internal/llm"
	"github.com/homelens/inspect-agent/internal/models"
	"github.com/rs/zerolog"
)

// KnowledgeLoader loads and concatenates reference documents.
type KnowledgeLoader interface {
	Load(ctx context.Context, sources []string) (string, []string)
}

// PromptBuilder builds the user instruction text for the model.
type PromptBuilder interface {
	Build(evalCtx models.EvaluationContext, knowledgeText string, knowledgeSources []string) (string, error)
}

// ModelInvoker calls the vision model with fallback handling.
type ModelInvoker interface {
	Invoke(ctx context.Context, model string, image llm.ImagePayload, userPrompt string) (*llm.RawOutput, error)
}

// ResultResolver recovers a valid EvaluationResult from raw model output.
type ResultResolver interface {
	Resolve(raw *llm.RawOutput, fallbackID, fallbackArea, model string) models.EvaluationResult
}

// Evaluator runs the full assessment pipeline for one photo.
type Evaluator struct {
	knowledge        KnowledgeLoader
	prompts          PromptBuilder
	invoker          ModelInvoker
	resolver         ResultResolver
	knowledgeSources []string
	defaultModel     string
	logger           *zerolog.Logger
}

func NewEvaluator(
	knowledge KnowledgeLoader,
	prompts PromptBuilder,
	invoker ModelInvoker,
	resolver ResultResolver,
	knowledgeSources []string,
	defaultModel string,
	logger *zerolog.Logger,
) *Evaluator {
	return &Evaluator{
		knowledge:        knowledge,
		prompts:          prompts,
		invoker:          invoker,
		resolver:         resolver,
		knowledgeSources: knowledgeSources,
		defaultModel:     defaultModel,
		logger:           logger,
	}
}

// Execute runs knowledge load, prompt build, model invocation and
// resolution. The only fatal path is both model calls failing; everything
// else degrades into a valid result.
func (e *Evaluator) Execute(ctx context.Context, evalCtx models.EvaluationContext, image llm.ImagePayload, model string) (models.EvaluationResult, error) {
	id := newAssessmentID()

	if model == "" {
		model = e.defaultModel
	}

	area := evalCtx.Area
	if area == "" {
		area = "unspecified"
	}

	e.logger.Info().
		Str("assessment_id", id).
		Str("area", area).
		Str("model", model).
		Msg("starting assessment")

	knowledgeText, knowledgeSources := e.knowledge.Load(ctx, e.knowledgeSources)

	userPrompt, err := e.prompts.Build(evalCtx, knowledgeText, knowledgeSources)
	if err != nil {
		return models.EvaluationResult{}, fmt.Errorf("failed to build prompt: %w", err)
	}

	raw, err := e.invoker.Invoke(ctx, model, image, userPrompt)
	if err != nil {
		return models.EvaluationResult{}, fmt.Errorf("model invocation failed: %w", err)
	}

	result := e.resolver.Resolve(raw, id, area, model)

	e.logger.Info().
		Str("assessment_id", result.ID).
		Int("findings", len(result.Findings)).
		Msg("assessment complete")

	return result, nil
}

func newAssessmentID() string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "asm-00000000"
	}
	return "asm-" + hex.EncodeToString(buf)
}
