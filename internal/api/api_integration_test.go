package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/emicklei/go-restful/v3"
	"github.com/homelens/inspect-agent/internal/api"
	"github.com/homelens/inspect-agent/internal/api/middleware"
	"github.com/homelens/inspect-agent/internal/archive"
	"github.com/homelens/inspect-agent/internal/confidence"
	"github.com/homelens/inspect-agent/internal/executor"
	"github.com/homelens/inspect-agent/internal/invoker"
	"github.com/homelens/inspect-agent/internal/knowledge"
	"github.com/homelens/inspect-agent/internal/llm"
	"github.com/homelens/inspect-agent/internal/models"
	"github.com/homelens/inspect-agent/internal/prompt"
	"github.com/homelens/inspect-agent/internal/report"
	"github.com/homelens/inspect-agent/internal/resolver"
	"github.com/rs/zerolog"
)

// stubVisionClient plays the externally supplied reasoning capability.
type stubVisionClient struct {
	output *llm.RawOutput
	err    error
}

func (s *stubVisionClient) Infer(ctx context.Context, request llm.InferRequest) (*llm.RawOutput, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.output, nil
}

type emptyFetcher struct{}

func (emptyFetcher) Fetch(ctx context.Context, source string) ([]byte, error) {
	return nil, errors.New("no knowledge in tests")
}

// setupTestAPI builds the real pipeline around a stubbed vision client.
func setupTestAPI(t *testing.T, client llm.VisionClient, apiToken string) *restful.Container {
	t.Helper()
	logger := zerolog.Nop()

	store := knowledge.NewStore(emptyFetcher{}, emptyFetcher{}, 0, &logger)

	builder, err := prompt.NewBuilder()
	if err != nil {
		t.Fatalf("Failed to build prompt template: %v", err)
	}

	capabilities := map[string]invoker.ModelCapabilities{
		"primary": {SupportsSchema: true},
	}
	modelInvoker := invoker.NewInvoker(client, prompt.SystemRules, "fallback", capabilities, &logger)

	eval := executor.NewEvaluator(
		store,
		builder,
		modelInvoker,
		resolver.NewResolver(&logger),
		nil,
		"primary",
		&logger,
	)

	renderer := report.NewRenderer(confidence.NewEngine(confidence.DefaultPolicy()))

	handler := api.NewHandler(eval, renderer, archive.NoopArchiver{}, apiToken, &logger)
	container := restful.NewContainer()
	container.Filter(middleware.Logger)
	container.Filter(middleware.RecoverPanic)
	api.RegisterRoutes(container, handler)

	return container
}

func buildMultipart(t *testing.T, photo []byte, mediaType string, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if photo != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="photo"; filename="photo.jpg"`)
		h.Set("Content-Type", mediaType)
		part, err := w.CreatePart(h)
		if err != nil {
			t.Fatalf("Failed to create photo part: %v", err)
		}
		if _, err := part.Write(photo); err != nil {
			t.Fatalf("Failed to write photo part: %v", err)
		}
	}

	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			t.Fatalf("Failed to write field %s: %v", name, err)
		}
	}

	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close multipart writer: %v", err)
	}

	return &buf, w.FormDataContentType()
}

func structuredOutput(t *testing.T, result any) *llm.RawOutput {
	t.Helper()
	encoded, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("Failed to marshal stub output: %v", err)
	}
	return &llm.RawOutput{Structured: encoded}
}

func TestAPI_Health(t *testing.T) {
	container := setupTestAPI(t, &stubVisionClient{output: &llm.RawOutput{Text: "{}"}}, "")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	recorder := httptest.NewRecorder()

	container.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", recorder.Code)
	}

	var response api.HealthResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}

	if response.Status != "ok" {
		t.Errorf("Expected status 'ok', got '%s'", response.Status)
	}
}

func TestAPI_Assess_BathroomReport(t *testing.T) {
	stub := &stubVisionClient{
		output: structuredOutput(t, map[string]any{
			"findings": []map[string]any{
				{
					"label":          "No visible exhaust fan",
					"severity":       "caution",
					"detail":         "No fan grille is visible on the ceiling.",
					"confidenceBase": 75,
				},
			},
			"quickChecks": []string{"run the fan and listen"},
		}),
	}
	container := setupTestAPI(t, stub, "")

	body, contentType := buildMultipart(t, []byte("fake-jpeg-bytes"), "image/jpeg", map[string]string{
		"context": `{"area":"bathroom"}`,
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/assessments", body)
	req.Header.Set("Content-Type", contentType)
	recorder := httptest.NewRecorder()

	container.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d. Body: %s", recorder.Code, recorder.Body.String())
	}

	text := recorder.Body.String()
	if !strings.Contains(text, "exhaust fan") {
		t.Errorf("Expected exhaust-fan reminder in report:\n%s", text)
	}
	if !strings.Contains(text, "Ref: ") {
		t.Errorf("Expected Ref trailer in report:\n%s", text)
	}
	if !strings.Contains(text, "[CAUTION] No visible exhaust fan") {
		t.Errorf("Expected finding line in report:\n%s", text)
	}
}

func TestAPI_Assess_JSONFormat(t *testing.T) {
	stub := &stubVisionClient{
		output: structuredOutput(t, map[string]any{
			"findings": []map[string]any{},
		}),
	}
	container := setupTestAPI(t, stub, "")

	body, contentType := buildMultipart(t, []byte("fake"), "image/png", map[string]string{
		"context": `{"area":"kitchen"}`,
		"format":  "json",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/assessments", body)
	req.Header.Set("Content-Type", contentType)
	recorder := httptest.NewRecorder()

	container.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d. Body: %s", recorder.Code, recorder.Body.String())
	}

	var result models.EvaluationResult
	if err := json.Unmarshal(recorder.Body.Bytes(), &result); err != nil {
		t.Fatalf("Failed to parse result: %v", err)
	}

	if result.ID == "" || result.Area != "kitchen" || result.Model != "primary" {
		t.Errorf("Result invariants violated: %+v", result)
	}
	if result.Findings == nil || result.QuickChecks == nil || result.Cautions == nil {
		t.Errorf("Expected non-nil slices: %+v", result)
	}

	// Exactly the declared fields, nothing extra.
	var asMap map[string]any
	if err := json.Unmarshal(recorder.Body.Bytes(), &asMap); err != nil {
		t.Fatalf("Failed to parse result as map: %v", err)
	}
	for key := range asMap {
		switch key {
		case "id", "area", "model", "findings", "quickChecks", "cautions":
		default:
			t.Errorf("Unexpected field %q in JSON output", key)
		}
	}
}

func TestAPI_Assess_JSONFormatTokenGate(t *testing.T) {
	stub := &stubVisionClient{output: structuredOutput(t, map[string]any{"findings": []any{}})}
	container := setupTestAPI(t, stub, "sekrit")

	post := func(token string) *httptest.ResponseRecorder {
		body, contentType := buildMultipart(t, []byte("fake"), "image/jpeg", map[string]string{
			"format": "json",
		})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/assessments", body)
		req.Header.Set("Content-Type", contentType)
		if token != "" {
			req.Header.Set("X-Assess-Token", token)
		}
		recorder := httptest.NewRecorder()
		container.ServeHTTP(recorder, req)
		return recorder
	}

	if rec := post(""); rec.Code != http.StatusForbidden {
		t.Errorf("Expected 403 without token, got %d", rec.Code)
	}
	if rec := post("wrong"); rec.Code != http.StatusForbidden {
		t.Errorf("Expected 403 with wrong token, got %d", rec.Code)
	}
	if rec := post("sekrit"); rec.Code != http.StatusOK {
		t.Errorf("Expected 200 with correct token, got %d. Body: %s", rec.Code, rec.Body.String())
	}

	// The report format stays open even when a token is configured.
	body, contentType := buildMultipart(t, []byte("fake"), "image/jpeg", nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/assessments", body)
	req.Header.Set("Content-Type", contentType)
	recorder := httptest.NewRecorder()
	container.ServeHTTP(recorder, req)
	if recorder.Code != http.StatusOK {
		t.Errorf("Expected 200 for report format without token, got %d", recorder.Code)
	}
}

func TestAPI_Assess_ValidationErrors(t *testing.T) {
	stub := &stubVisionClient{output: structuredOutput(t, map[string]any{"findings": []any{}})}
	container := setupTestAPI(t, stub, "")

	tests := []struct {
		name      string
		photo     []byte
		mediaType string
		fields    map[string]string
	}{
		{"missing photo", nil, "", nil},
		{"disallowed mime", []byte("gif"), "image/gif", nil},
		{"malformed context", []byte("x"), "image/jpeg", map[string]string{"context": `{not json`}},
		{"negative bedrooms", []byte("x"), "image/jpeg", map[string]string{"context": `{"bedrooms": -2}`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, contentType := buildMultipart(t, tt.photo, tt.mediaType, tt.fields)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/assessments", body)
			req.Header.Set("Content-Type", contentType)
			recorder := httptest.NewRecorder()

			container.ServeHTTP(recorder, req)

			if recorder.Code != http.StatusBadRequest {
				t.Errorf("Expected 400, got %d. Body: %s", recorder.Code, recorder.Body.String())
			}

			var errResp middleware.ErrorResponse
			if err := json.Unmarshal(recorder.Body.Bytes(), &errResp); err != nil {
				t.Fatalf("Failed to parse error body: %v", err)
			}
			if errResp.Error == "" {
				t.Error("Expected error message in body")
			}
		})
	}
}

func TestAPI_Assess_ModelFailureIs502(t *testing.T) {
	stub := &stubVisionClient{err: errors.New("all models down")}
	container := setupTestAPI(t, stub, "")

	body, contentType := buildMultipart(t, []byte("fake"), "image/jpeg", nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/assessments", body)
	req.Header.Set("Content-Type", contentType)
	recorder := httptest.NewRecorder()

	container.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusBadGateway {
		t.Errorf("Expected 502 when both models fail, got %d", recorder.Code)
	}
}

func TestAPI_Assess_UnstructuredOutputStillSucceeds(t *testing.T) {
	stub := &stubVisionClient{output: &llm.RawOutput{Text: "I really cannot tell."}}
	container := setupTestAPI(t, stub, "")

	body, contentType := buildMultipart(t, []byte("fake"), "image/jpeg", map[string]string{
		"context": `{"area":"hallway"}`,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/assessments", body)
	req.Header.Set("Content-Type", contentType)
	recorder := httptest.NewRecorder()

	container.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected 200 for unparseable model output, got %d", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), "Unstructured model output") {
		t.Errorf("Expected synthesized fallback finding in report:\n%s", recorder.Body.String())
	}
}
