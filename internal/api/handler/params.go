package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/blaisecz/flare-tracker/internal/domain"
	"github.com/blaisecz/flare-tracker/internal/llm"
	"github.com/blaisecz/flare-tracker/pkg/problem"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Query parameter bounds.
const (
	MinDelayDays     = 0
	MaxDelayDays     = 14
	MinThreshold     = domain.MinRating
	MaxThreshold     = domain.MaxRating
	MinLookAheadDays = 1
	MaxLookAheadDays = 60
	MinWindowDays    = 1
	MaxWindowDays    = 3650
)

// parseUserID reads the userId path parameter and writes a problem on failure.
func parseUserID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return uuid.Nil, false
	}
	return userID, true
}

// parseDateParam reads a YYYY-MM-DD path parameter.
func parseDateParam(w http.ResponseWriter, r *http.Request, name string) (time.Time, bool) {
	date, err := domain.ParseDate(chi.URLParam(r, name))
	if err != nil {
		problem.BadRequest("Invalid date, expected YYYY-MM-DD").Write(w)
		return time.Time{}, false
	}
	return date, true
}

// parseIntParam parses an optional integer query parameter within [lo, hi].
// It returns nil when the parameter is absent.
func parseIntParam(r *http.Request, name string, lo, hi int) (*int, error) {
	val := r.URL.Query().Get(name)
	if val == "" {
		return nil, nil
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed < lo || parsed > hi {
		return nil, fmt.Errorf("%s must be an integer between %d and %d", name, lo, hi)
	}
	return &parsed, nil
}

// intOr dereferences v or returns def.
func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

// writeServiceError maps service errors to problems. what names the resource
// for not-found responses.
func writeServiceError(w http.ResponseWriter, err error, what, fallback string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		problem.NotFound(what + " not found").Write(w)
	case errors.Is(err, domain.ErrInvalidDate), errors.Is(err, domain.ErrInvalidInput):
		problem.BadRequest(err.Error()).Write(w)
	case errors.Is(err, domain.ErrModuleDisabled):
		problem.ModuleDisabled(err.Error()).Write(w)
	case errors.Is(err, domain.ErrConflict):
		problem.Conflict(err.Error()).Write(w)
	case errors.Is(err, llm.ErrOpenAIUnavailable):
		problem.ServiceUnavailable("OpenAI service is not configured").Write(w)
	case errors.Is(err, llm.ErrOpenAIRequest), errors.Is(err, llm.ErrOpenAIResponse):
		problem.BadGateway("Failed to generate insights from LLM").Write(w)
	default:
		problem.InternalError(fallback).Write(w)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
