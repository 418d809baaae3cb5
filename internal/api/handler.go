package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/emicklei/go-restful/v3"
	"github.com/homelens/inspect-agent/internal/api/middleware"
	"github.com/homelens/inspect-agent/internal/archive"
	"github.com/homelens/inspect-agent/internal/llm"
	"github.com/homelens/inspect-agent/internal/models"
	"github.com/homelens/inspect-agent/internal/report"
	"github.com/rs/zerolog"
)

const maxUploadBytes = 12 << 20 // 12 MiB

const tokenHeader = "X-Assess-Token"

var allowedMediaTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/heic": true,
	"image/heif": true,
}

// Assessor runs the evaluation pipeline for one photo.
type Assessor interface {
	Execute(ctx context.Context, evalCtx models.EvaluationContext, image llm.ImagePayload, model string) (models.EvaluationResult, error)
}

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type Handler struct {
	assessor Assessor
	renderer *report.Renderer
	archiver archive.Archiver
	apiToken string
	logger   *zerolog.Logger
}

func NewHandler(assessor Assessor, renderer *report.Renderer, archiver archive.Archiver, apiToken string, logger *zerolog.Logger) *Handler {
	return &Handler{
		assessor: assessor,
		renderer: renderer,
		archiver: archiver,
		apiToken: apiToken,
		logger:   logger,
	}
}

// POST /api/v1/assessments
// Multipart: photo (required image), context (optional JSON), model, format.
// Returns: plain-text report (default) or the EvaluationResult JSON.
func (h *Handler) Assess(req *restful.Request, resp *restful.Response) {
	r := req.Request
	r.Body = http.MaxBytesReader(resp, r.Body, maxUploadBytes)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.logger.Error().Err(err).Msg("Failed to parse multipart request")
		middleware.HandleError(resp, fmt.Errorf("invalid multipart request: %w", err), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		middleware.HandleError(resp, fmt.Errorf("photo part is required"), http.StatusBadRequest)
		return
	}
	defer file.Close()

	mediaType := header.Header.Get("Content-Type")
	if !allowedMediaTypes[mediaType] {
		middleware.HandleError(resp, fmt.Errorf("unsupported photo type %q", mediaType), http.StatusBadRequest)
		return
	}

	photo, err := io.ReadAll(file)
	if err != nil || len(photo) == 0 {
		middleware.HandleError(resp, fmt.Errorf("unable to read photo"), http.StatusBadRequest)
		return
	}

	var evalCtx models.EvaluationContext
	if raw := r.FormValue("context"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &evalCtx); err != nil {
			middleware.HandleError(resp, fmt.Errorf("invalid context JSON: %w", err), http.StatusBadRequest)
			return
		}
		if evalCtx.Bedrooms != nil && *evalCtx.Bedrooms < 0 {
			middleware.HandleError(resp, fmt.Errorf("bedrooms must be non-negative"), http.StatusBadRequest)
			return
		}
	}

	format := r.FormValue("format")
	if format == "" {
		format = "report"
	}
	if format == "json" && h.apiToken != "" && req.HeaderParameter(tokenHeader) != h.apiToken {
		middleware.HandleError(resp, fmt.Errorf("forbidden"), http.StatusForbidden)
		return
	}

	model := r.FormValue("model")

	h.logger.Info().
		Str("area", evalCtx.Area).
		Str("format", format).
		Str("media_type", mediaType).
		Int("photo_bytes", len(photo)).
		Msg("Start photo assessment")

	// Archive the original photo off the critical path. The result is
	// joined, error discarded, right before the response is written.
	archiveKey := fmt.Sprintf("%d-%s", time.Now().UnixNano(), header.Filename)
	archiveCtx := context.WithoutCancel(r.Context())
	archiveDone := make(chan struct{})
	go func() {
		defer close(archiveDone)
		if err := h.archiver.Store(archiveCtx, archiveKey, photo); err != nil {
			h.logger.Warn().Err(err).Str("key", archiveKey).Msg("photo archival failed")
		}
	}()

	result, err := h.assessor.Execute(r.Context(), evalCtx, llm.ImagePayload{
		MediaType: mediaType,
		Data:      photo,
	}, model)

	<-archiveDone

	if err != nil {
		h.logger.Error().Err(err).Msg("Assessment failed")
		middleware.HandleError(resp, fmt.Errorf("assessment failed: %w", err), http.StatusBadGateway)
		return
	}

	h.logger.Info().
		Str("assessment_id", result.ID).
		Int("findings", len(result.Findings)).
		Msg("Assessment complete")

	if format == "json" {
		_ = resp.WriteHeaderAndEntity(http.StatusOK, result)
		return
	}

	resp.Header().Set("Content-Type", "text/plain; charset=utf-8")
	resp.WriteHeader(http.StatusOK)
	_, _ = resp.Write([]byte(h.renderer.Render(result)))
}

// Health handler GET /api/v1/health
func (h *Handler) Health(req *restful.Request, resp *restful.Response) {
	healthResponse := HealthResponse{
		Status:  "ok",
		Version: "1.0.0",
	}

	_ = resp.WriteHeaderAndEntity(http.StatusOK, healthResponse)
}
