package api

import (
	"context"
	"net/http"

	"github.com/emicklei/go-restful/v3"
	"github.com/rs/zerolog"
	"github.com/socialpulse/postfilter/internal/api/middleware"
	"github.com/socialpulse/postfilter/internal/models"
)

// Filter runs the full two-stage pipeline.
type Filter interface {
	FilterBatch(ctx context.Context, posts []models.Post) (passed, filtered []models.Post)
}

// RuleChecker runs just the deterministic rule stage.
type RuleChecker interface {
	Check(post models.Post) models.FilterResult
}

type Handler struct {
	filter Filter
	rules  RuleChecker
	logger *zerolog.Logger
}

func NewHandler(filter Filter, rules RuleChecker, logger *zerolog.Logger) *Handler {
	return &Handler{
		filter: filter,
		rules:  rules,
		logger: logger,
	}
}

// POST /api/v1/filter
// Body: FilterRequest
// Returns: FilterResponse
func (h *Handler) Filter(req *restful.Request, resp *restful.Response) {
	var filterRequest FilterRequest
	if err := req.ReadEntity(&filterRequest); err != nil {
		h.logger.Error().Err(err).Msg("Failed to parse request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	h.logger.Info().
		Int("posts", len(filterRequest.Posts)).
		Msg("Start filtering")

	ctx := req.Request.Context()
	passed, filtered := h.filter.FilterBatch(ctx, filterRequest.Posts)

	h.logger.Info().
		Int("passed", len(passed)).
		Int("filtered", len(filtered)).
		Msg("Filtering complete")

	resp.WriteHeaderAndEntity(http.StatusOK, FilterResponse{
		Passed:   passed,
		Filtered: filtered,
	})
}

// POST /api/v1/check
// Runs only the rule stage for one post; useful for interactive threshold
// tuning without spending scoring calls.
func (h *Handler) Check(req *restful.Request, resp *restful.Response) {
	var checkRequest CheckRequest
	if err := req.ReadEntity(&checkRequest); err != nil {
		h.logger.Error().Err(err).Msg("Failed to parse request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	result := h.rules.Check(checkRequest.Post)

	h.logger.Info().
		Str("post_id", checkRequest.Post.ID).
		Bool("passed", result.Passed).
		Strs("issues", result.Issues).
		Msg("Rule check complete")

	resp.WriteHeaderAndEntity(http.StatusOK, result)
}

// Health handler GET /api/v1/health
func (h *Handler) Health(req *restful.Request, resp *restful.Response) {
	healthResponse := HealthResponse{
		Status:  "ok",
		Version: "1.0.0",
	}

	resp.WriteHeaderAndEntity(http.StatusOK, healthResponse)
}
