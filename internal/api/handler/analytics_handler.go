package handler

import (
	"net/http"

	"github.com/blaisecz/flare-tracker/internal/service"
	"github.com/blaisecz/flare-tracker/pkg/problem"
)

// AnalyticsHandler exposes the flare analytics.
type AnalyticsHandler struct {
	service service.AnalyticsService
}

func NewAnalyticsHandler(service service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// parsePatternParams reads delay_days and threshold.
func parsePatternParams(w http.ResponseWriter, r *http.Request) (service.PatternParams, bool) {
	delay, err := parseIntParam(r, "delay_days", MinDelayDays, MaxDelayDays)
	if err != nil {
		problem.BadRequest(err.Error()).Write(w)
		return service.PatternParams{}, false
	}
	threshold, err := parseIntParam(r, "threshold", MinThreshold, MaxThreshold)
	if err != nil {
		problem.BadRequest(err.Error()).Write(w)
		return service.PatternParams{}, false
	}
	return service.PatternParams{DelayDays: delay, Threshold: threshold}, true
}

// GetStatistics handles GET /v1/users/{userId}/analytics/statistics
// @Summary Aggregate statistics
// @Description Severity distribution, good/bad days, top foods, food correlations, weekly and weekday averages and streaks.
// @Tags analytics
// @Produce json
// @Param userId path string true "User ID" format(uuid)
// @Param days query integer false "Only the last N days (all history when absent)" minimum(1) maximum(3650)
// @Success 200 {object} domain.Statistics
// @Failure 400 {object} problem.Problem
// @Failure 404 {object} problem.Problem
// @Failure 500 {object} problem.Problem
// @Router /users/{userId}/analytics/statistics [get]
func (h *AnalyticsHandler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}
	days, err := parseIntParam(r, "days", MinWindowDays, MaxWindowDays)
	if err != nil {
		problem.BadRequest(err.Error()).Write(w)
		return
	}

	result, err := h.service.Statistics(r.Context(), userID, intOr(days, 0))
	if err != nil {
		writeServiceError(w, err, "User", "Failed to compute statistics")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// GetTriggers handles GET /v1/users/{userId}/analytics/triggers
// @Summary Delayed trigger patterns
// @Description For every food and enabled trigger module, the share of occurrences followed by a flare within the lag window. Needs at least 5 entries.
// @Tags analytics
// @Produce json
// @Param userId path string true "User ID" format(uuid)
// @Param delay_days query integer false "Lag window length in days" default(2) minimum(0) maximum(14)
// @Param threshold query integer false "Severity counted as a flare" default(4) minimum(1) maximum(5)
// @Success 200 {array} domain.PatternResult
// @Failure 400 {object} problem.Problem
// @Failure 404 {object} problem.Problem
// @Failure 500 {object} problem.Problem
// @Router /users/{userId}/analytics/triggers [get]
func (h *AnalyticsHandler) GetTriggers(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}
	params, ok := parsePatternParams(w, r)
	if !ok {
		return
	}

	result, err := h.service.Triggers(r.Context(), userID, params)
	if err != nil {
		writeServiceError(w, err, "User", "Failed to detect trigger patterns")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// GetFoodPatterns handles GET /v1/users/{userId}/analytics/food-patterns
// @Summary Food-only delayed patterns
// @Description Food trigger patterns looking only at the days after eating (offsets 1..delay_days).
// @Tags analytics
// @Produce json
// @Param userId path string true "User ID" format(uuid)
// @Param delay_days query integer false "Lag window length in days" default(2) minimum(0) maximum(14)
// @Param threshold query integer false "Severity counted as a flare" default(4) minimum(1) maximum(5)
// @Success 200 {array} domain.PatternResult
// @Failure 400 {object} problem.Problem
// @Failure 404 {object} problem.Problem
// @Failure 500 {object} problem.Problem
// @Router /users/{userId}/analytics/food-patterns [get]
func (h *AnalyticsHandler) GetFoodPatterns(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}
	params, ok := parsePatternParams(w, r)
	if !ok {
		return
	}

	result, err := h.service.FoodPatterns(r.Context(), userID, params)
	if err != nil {
		writeServiceError(w, err, "User", "Failed to detect food patterns")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// GetFungal handles GET /v1/users/{userId}/analytics/fungal
// @Summary Fungal onset analysis
// @Tags analytics
// @Produce json
// @Param userId path string true "User ID" format(uuid)
// @Param look_ahead_days query integer false "Days observed after each onset" default(14) minimum(1) maximum(60)
// @Success 200 {object} domain.FungalAnalysis
// @Failure 400 {object} problem.Problem
// @Failure 404 {object} problem.Problem
// @Failure 409 {object} problem.Problem "Fungal module disabled"
// @Failure 500 {object} problem.Problem
// @Router /users/{userId}/analytics/fungal [get]
func (h *AnalyticsHandler) GetFungal(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}
	lookAhead, err := parseIntParam(r, "look_ahead_days", MinLookAheadDays, MaxLookAheadDays)
	if err != nil {
		problem.BadRequest(err.Error()).Write(w)
		return
	}

	result, err := h.service.Fungal(r.Context(), userID, intOr(lookAhead, 0))
	if err != nil {
		writeServiceError(w, err, "User", "Failed to analyze fungal onsets")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// GetStress handles GET /v1/users/{userId}/analytics/stress
// @Summary Stress impact
// @Tags analytics
// @Produce json
// @Param userId path string true "User ID" format(uuid)
// @Param delay_days query integer false "Lag window length in days" default(2) minimum(0) maximum(14)
// @Param threshold query integer false "Severity counted as a flare" default(4) minimum(1) maximum(5)
// @Success 200 {object} domain.StressAnalysis
// @Failure 400 {object} problem.Problem
// @Failure 404 {object} problem.Problem
// @Failure 409 {object} problem.Problem "Stress module disabled"
// @Failure 500 {object} problem.Problem
// @Router /users/{userId}/analytics/stress [get]
func (h *AnalyticsHandler) GetStress(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}
	params, ok := parsePatternParams(w, r)
	if !ok {
		return
	}

	result, err := h.service.Stress(r.Context(), userID, params)
	if err != nil {
		writeServiceError(w, err, "User", "Failed to analyze stress")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// GetSleep handles GET /v1/users/{userId}/analytics/sleep
// @Summary Sleep quality impact
// @Tags analytics
// @Produce json
// @Param userId path string true "User ID" format(uuid)
// @Success 200 {object} domain.SleepAnalysis
// @Failure 400 {object} problem.Problem
// @Failure 404 {object} problem.Problem
// @Failure 409 {object} problem.Problem "Sleep module disabled"
// @Failure 500 {object} problem.Problem
// @Router /users/{userId}/analytics/sleep [get]
func (h *AnalyticsHandler) GetSleep(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	result, err := h.service.Sleep(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err, "User", "Failed to analyze sleep")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// GetWeather handles GET /v1/users/{userId}/analytics/weather
// @Summary Weather impact
// @Tags analytics
// @Produce json
// @Param userId path string true "User ID" format(uuid)
// @Success 200 {array} domain.WeatherImpact
// @Failure 400 {object} problem.Problem
// @Failure 404 {object} problem.Problem
// @Failure 409 {object} problem.Problem "Weather module disabled"
// @Failure 500 {object} problem.Problem
// @Router /users/{userId}/analytics/weather [get]
func (h *AnalyticsHandler) GetWeather(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	result, err := h.service.Weather(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err, "User", "Failed to analyze weather")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// GetNickel handles GET /v1/users/{userId}/analytics/nickel
// @Summary Nickel load
// @Tags analytics
// @Produce json
// @Param userId path string true "User ID" format(uuid)
// @Success 200 {object} domain.NickelAnalysis
// @Failure 400 {object} problem.Problem
// @Failure 404 {object} problem.Problem
// @Failure 500 {object} problem.Problem
// @Router /users/{userId}/analytics/nickel [get]
func (h *AnalyticsHandler) GetNickel(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	result, err := h.service.Nickel(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err, "User", "Failed to analyze nickel load")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// GetFoods handles GET /v1/users/{userId}/analytics/foods
// @Summary Potential trigger or safe foods
// @Description Foods eaten on at least 3 days whose average same-day severity is at least 3.5 (triggers) or at most 2.5 (safe).
// @Tags analytics
// @Produce json
// @Param userId path string true "User ID" format(uuid)
// @Param kind query string false "List to return" Enums(triggers, safe) default(triggers)
// @Success 200 {array} domain.FoodCorrelation
// @Failure 400 {object} problem.Problem
// @Failure 404 {object} problem.Problem
// @Failure 500 {object} problem.Problem
// @Router /users/{userId}/analytics/foods [get]
func (h *AnalyticsHandler) GetFoods(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	kind := service.FoodKind(r.URL.Query().Get("kind"))
	switch kind {
	case "", service.FoodKindTriggers, service.FoodKindSafe:
	default:
		problem.BadRequest("kind must be one of: triggers, safe").Write(w)
		return
	}

	result, err := h.service.Foods(r.Context(), userID, kind)
	if err != nil {
		writeServiceError(w, err, "User", "Failed to list foods")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// GetCompare handles GET /v1/users/{userId}/analytics/compare
// @Summary Compare recent and previous period
// @Description Average severity of the last recent_days days against the previous_days days before them.
// @Tags analytics
// @Produce json
// @Param userId path string true "User ID" format(uuid)
// @Param recent_days query integer false "Recent period length" default(7) minimum(1) maximum(3650)
// @Param previous_days query integer false "Previous period length" default(7) minimum(1) maximum(3650)
// @Success 200 {object} domain.PeriodComparison
// @Failure 400 {object} problem.Problem
// @Failure 404 {object} problem.Problem
// @Failure 500 {object} problem.Problem
// @Router /users/{userId}/analytics/compare [get]
func (h *AnalyticsHandler) GetCompare(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}
	recent, err := parseIntParam(r, "recent_days", MinWindowDays, MaxWindowDays)
	if err != nil {
		problem.BadRequest(err.Error()).Write(w)
		return
	}
	previous, err := parseIntParam(r, "previous_days", MinWindowDays, MaxWindowDays)
	if err != nil {
		problem.BadRequest(err.Error()).Write(w)
		return
	}

	result, err := h.service.Compare(r.Context(), userID,
		intOr(recent, service.DefaultRecentDays), intOr(previous, service.DefaultPreviousDays))
	if err != nil {
		writeServiceError(w, err, "User", "Failed to compare periods")
		return
	}
	writeJSON(w, http.StatusOK, result)
}
