package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/blaisecz/flare-tracker/internal/api/validation"
	"github.com/blaisecz/flare-tracker/internal/domain"
	"github.com/blaisecz/flare-tracker/internal/service"
	"github.com/blaisecz/flare-tracker/pkg/pagination"
	"github.com/blaisecz/flare-tracker/pkg/problem"
)

// EntryHandler handles day entry endpoints.
type EntryHandler struct {
	service service.EntryService
}

func NewEntryHandler(service service.EntryService) *EntryHandler {
	return &EntryHandler{service: service}
}

// Upsert handles PUT /v1/users/{userId}/entries/{date}
// @Summary Record a day
// @Description Create the entry for a calendar day or replace all of its recorded values.
// @Description Foods and contact exposures are de-duplicated keeping first-seen order.
// @Tags entries
// @Accept json
// @Produce json
// @Param userId path string true "User ID" format(uuid)
// @Param date path string true "Calendar day" format(date) example(2024-03-14)
// @Param request body domain.UpsertDayEntryRequest true "Day entry"
// @Success 200 {object} domain.DayEntryResponse "Entry replaced"
// @Success 201 {object} domain.DayEntryResponse "Entry created"
// @Failure 400 {object} problem.Problem "Invalid date or body"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 409 {object} problem.Problem "Concurrent write"
// @Failure 422 {object} problem.Problem "Validation error"
// @Failure 500 {object} problem.Problem
// @Router /users/{userId}/entries/{date} [put]
func (h *EntryHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}
	date, ok := parseDateParam(w, r, "date")
	if !ok {
		return
	}

	var req domain.UpsertDayEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	entry, created, err := h.service.Upsert(r.Context(), userID, date, &req)
	if err != nil {
		writeServiceError(w, err, "User", "Failed to save entry")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, entry.ToResponse())
}

// Get handles GET /v1/users/{userId}/entries/{date}
// @Summary Get a day
// @Tags entries
// @Produce json
// @Param userId path string true "User ID" format(uuid)
// @Param date path string true "Calendar day" format(date) example(2024-03-14)
// @Success 200 {object} domain.DayEntryResponse
// @Failure 400 {object} problem.Problem
// @Failure 404 {object} problem.Problem "User or entry not found"
// @Failure 500 {object} problem.Problem
// @Router /users/{userId}/entries/{date} [get]
func (h *EntryHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}
	date, ok := parseDateParam(w, r, "date")
	if !ok {
		return
	}

	entry, err := h.service.Get(r.Context(), userID, date)
	if err != nil {
		writeServiceError(w, err, "Entry", "Failed to get entry")
		return
	}

	writeJSON(w, http.StatusOK, entry.ToResponse())
}

// Delete handles DELETE /v1/users/{userId}/entries/{date}
// @Summary Delete a day
// @Tags entries
// @Param userId path string true "User ID" format(uuid)
// @Param date path string true "Calendar day" format(date) example(2024-03-14)
// @Success 204 "Entry deleted"
// @Failure 400 {object} problem.Problem
// @Failure 404 {object} problem.Problem "User or entry not found"
// @Failure 500 {object} problem.Problem
// @Router /users/{userId}/entries/{date} [delete]
func (h *EntryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}
	date, ok := parseDateParam(w, r, "date")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), userID, date); err != nil {
		writeServiceError(w, err, "Entry", "Failed to delete entry")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// List handles GET /v1/users/{userId}/entries
// @Summary List days
// @Description Paginated list of day entries, newest first.
// @Tags entries
// @Produce json
// @Param userId path string true "User ID" format(uuid)
// @Param from query string false "First day (inclusive)" format(date)
// @Param to query string false "Last day (inclusive)" format(date)
// @Param limit query integer false "Page size" default(31) minimum(1) maximum(366)
// @Param cursor query string false "Cursor from a previous page"
// @Success 200 {object} domain.DayEntryListResponse
// @Failure 400 {object} problem.Problem
// @Failure 404 {object} problem.Problem
// @Failure 422 {object} problem.Problem
// @Failure 500 {object} problem.Problem
// @Router /users/{userId}/entries [get]
func (h *EntryHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	filter, fieldErrors := parseListFilter(r)
	if fieldErrors != nil {
		problem.ValidationError("Invalid query parameters", fieldErrors).Write(w)
		return
	}

	response, err := h.service.List(r.Context(), userID, filter)
	if err != nil {
		writeServiceError(w, err, "User", "Failed to list entries")
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func parseListFilter(r *http.Request) (domain.DayEntryFilter, []problem.FieldError) {
	var filter domain.DayEntryFilter
	var fieldErrors []problem.FieldError
	q := r.URL.Query()

	for _, p := range []struct {
		name string
		dst  **time.Time
	}{{"from", &filter.From}, {"to", &filter.To}} {
		raw := q.Get(p.name)
		if raw == "" {
			continue
		}
		d, err := domain.ParseDate(raw)
		if err != nil {
			fieldErrors = append(fieldErrors, problem.FieldError{
				Field:   p.name,
				Message: "must be a date in YYYY-MM-DD format",
			})
			continue
		}
		*p.dst = &d
	}

	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		fieldErrors = append(fieldErrors, problem.FieldError{
			Field:   "to",
			Message: "must not be before from",
		})
	}

	if limitStr := q.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 || limit > pagination.MaxLimit {
			fieldErrors = append(fieldErrors, problem.FieldError{
				Field:   "limit",
				Message: "must be an integer between 1 and " + strconv.Itoa(pagination.MaxLimit),
			})
		} else {
			filter.Limit = limit
		}
	}

	filter.Cursor = q.Get("cursor")

	if len(fieldErrors) > 0 {
		return filter, fieldErrors
	}

	return filter, nil
}
