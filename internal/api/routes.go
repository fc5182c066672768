package api

import (
	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	"github.com/emicklei/go-restful/v3"
	"github.com/socialpulse/postfilter/internal/api/middleware"
	"github.com/socialpulse/postfilter/internal/models"
)

func RegisterRoutes(container *restful.Container, handler *Handler) {
	ws := new(restful.WebService)

	ws.
		Path("/api/v1").
		Consumes(restful.MIME_JSON).
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
		Route(ws.POST("/filter").
			To(handler.Filter).
			Doc("Filter a batch of posts").
			Metadata(restfulspec.KeyOpenAPITags, []string{"filter"}).
			Reads(FilterRequest{}).
			Writes(FilterResponse{}).
			Returns(200, "OK", FilterResponse{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	ws.
		Route(ws.POST("/check").
			To(handler.Check).
			Doc("Run the rule stage over a single post").
			Metadata(restfulspec.KeyOpenAPITags, []string{"filter"}).
			Reads(CheckRequest{}).
			Writes(models.FilterResult{}).
			Returns(200, "OK", models.FilterResult{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	container.Add(ws)
}
