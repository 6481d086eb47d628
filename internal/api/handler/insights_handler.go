package handler

import (
	"encoding/json"
	"net/http"

	"github.com/blaisecz/flare-tracker/internal/api/validation"
	"github.com/blaisecz/flare-tracker/internal/langfuse"
	"github.com/blaisecz/flare-tracker/internal/logger"
	"github.com/blaisecz/flare-tracker/internal/service"
	"github.com/blaisecz/flare-tracker/pkg/problem"
	"go.opentelemetry.io/otel/trace"
)

// InsightsHandler handles flare insights endpoints.
type InsightsHandler struct {
	insightsService service.InsightsService
	langfuseClient  langfuse.Client
	log             *logger.Logger
}

// NewInsightsHandler creates a new InsightsHandler.
func NewInsightsHandler(
	insightsService service.InsightsService,
	langfuseClient langfuse.Client,
	log *logger.Logger,
) *InsightsHandler {
	if log == nil {
		log = logger.NewNop()
	}
	return &InsightsHandler{
		insightsService: insightsService,
		langfuseClient:  langfuseClient,
		log:             log,
	}
}

// GetInsights handles GET /v1/users/{userId}/insights
// @Summary Get LLM-powered flare insights
// @Description Summarise recent statistics and trigger patterns with an LLM. Percentages are co-occurrence rates, not causes.
// @Tags insights
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Success 200 {object} domain.InsightsResponse "Flare insights with LLM analysis"
// @Failure 400 {object} problem.Problem "Invalid user ID"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Failure 502 {object} problem.Problem "LLM request failed"
// @Failure 503 {object} problem.Problem "LLM service unavailable"
// @Router /users/{userId}/insights [get]
func (h *InsightsHandler) GetInsights(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	result, err := h.insightsService.Generate(r.Context(), userID)
	if err != nil {
		h.log.Warnw("insights generation failed", "user_id", userID, "error", err)
		writeServiceError(w, err, "User", "Failed to generate insights")
		return
	}

	// Fall back to the request span for feedback linking
	if result.TraceID == "" {
		span := trace.SpanFromContext(r.Context())
		if span.SpanContext().IsValid() {
			result.TraceID = span.SpanContext().TraceID().String()
		}
	}

	writeJSON(w, http.StatusOK, result)
}

// FeedbackRequest is the request body for insights feedback.
// @Description Request body for submitting feedback on insights.
type FeedbackRequest struct {
	// Trace ID from the insights response
	TraceID string `json:"trace_id" validate:"required,max=128" example:"550e8400-e29b-41d4-a716-446655440000"`
	// Rating score (1-5)
	Score int `json:"score" validate:"min=1,max=5" example:"4" minimum:"1" maximum:"5"`
	// Optional comment
	Comment string `json:"comment,omitempty" validate:"max=2000" example:"The insights were helpful!"`
}

// PostFeedback handles POST /v1/users/{userId}/insights/feedback
// @Summary Submit feedback on flare insights
// @Description Submit a user rating and optional comment for a previous insights response.
// @Tags insights
// @Accept json
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Param body body FeedbackRequest true "Feedback request"
// @Success 204 "Feedback submitted"
// @Failure 400 {object} problem.Problem "Invalid request"
// @Failure 422 {object} problem.Problem "Validation error"
// @Router /users/{userId}/insights/feedback [post]
func (h *InsightsHandler) PostFeedback(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	var req FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid request body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	// Feedback is accepted even when Langfuse is down or disabled
	err := h.langfuseClient.CreateScore(r.Context(), langfuse.ScoreInput{
		TraceID: req.TraceID,
		Name:    "user_rating",
		Value:   float64(req.Score),
		Comment: req.Comment,
	})
	if err != nil {
		h.log.Warnw("feedback score not recorded", "user_id", userID, "trace_id", req.TraceID, "error", err)
	} else {
		h.log.Infow("feedback received", "user_id", userID, "trace_id", req.TraceID, "score", req.Score,
			"langfuse", h.langfuseClient.IsEnabled())
	}

	w.WriteHeader(http.StatusNoContent)
}
