package api

import (
	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	"github.com/emicklei/go-restful/v3"
	"github.com/homelens/inspect-agent/internal/api/middleware"
	"github.com/homelens/inspect-agent/internal/models"
)

func RegisterRoutes(container *restful.Container, handler *Handler) {
	ws := new(restful.WebService)

	ws.
		Path("/api/v1").
		Produces(restful.MIME_JSON)

	// Health endpoint
	ws.
		Route(ws.GET("health").
			To(handler.Health).
			Doc("Health check").
			Metadata(restfulspec.KeyOpenAPITags, []string{"health"}).
			Writes(HealthResponse{}).
			Returns(200, "OK", HealthResponse{}))

	ws.
		Route(ws.POST("/assessments").
			To(handler.Assess).
			Doc("Assess a single home photo").
			Metadata(restfulspec.KeyOpenAPITags, []string{"assessments"}).
			Consumes("multipart/form-data").
			Param(ws.FormParameter("photo", "Photo file (jpeg, png, webp, heic, heif; max 12 MiB)").DataType("file").Required(true)).
			Param(ws.FormParameter("context", "JSON evaluation context (area, bedrooms, manufacturedHome, notes)").DataType("string").Required(false)).
			Param(ws.FormParameter("model", "Model id override").DataType("string").Required(false)).
			Param(ws.FormParameter("format", "Output format: report (default) or json").DataType("string").Required(false)).
			Writes(models.EvaluationResult{}).
			Returns(200, "OK", models.EvaluationResult{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(403, "Forbidden", middleware.ErrorResponse{}).
			Returns(502, "Model Invocation Failed", middleware.ErrorResponse{}))

	container.Add(ws)
}
