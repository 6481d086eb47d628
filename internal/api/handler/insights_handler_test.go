package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/blaisecz/flare-tracker/internal/domain"
	"github.com/blaisecz/flare-tracker/internal/llm"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

func newInsightsRouter(h *InsightsHandler) http.Handler {
	r := chi.NewRouter()
	r.Get("/users/{userId}/insights", h.GetInsights)
	r.Post("/users/{userId}/insights/feedback", h.PostFeedback)
	return r
}

func TestGetInsights_IncludesTraceID(t *testing.T) {
	userID := uuid.New()
	handler := NewInsightsHandler(&mockInsightsService{}, &mockLangfuseClient{enabled: true}, nil)

	// Attach a span context with a valid TraceID so the handler can pick it up.
	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	sc := trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: spanID, TraceFlags: trace.FlagsSampled})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	req := httptest.NewRequest(http.MethodGet, "/users/"+userID.String()+"/insights", nil).WithContext(ctx)
	w := httptest.NewRecorder()

	newInsightsRouter(handler).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var response domain.InsightsResponse
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if response.TraceID != traceID.String() {
		t.Errorf("trace_id = %q, want %q", response.TraceID, traceID.String())
	}
}

func TestGetInsights_KeepsServiceTraceID(t *testing.T) {
	handler := NewInsightsHandler(&mockInsightsService{traceID: "lf-trace"}, &mockLangfuseClient{enabled: true}, nil)

	req := httptest.NewRequest(http.MethodGet, "/users/"+uuid.New().String()+"/insights", nil)
	w := httptest.NewRecorder()
	newInsightsRouter(handler).ServeHTTP(w, req)

	var response domain.InsightsResponse
	json.NewDecoder(w.Body).Decode(&response)
	if response.TraceID != "lf-trace" {
		t.Errorf("trace_id = %q, want lf-trace", response.TraceID)
	}
}

func TestGetInsights_NoTraceIDWhenDisabled(t *testing.T) {
	handler := NewInsightsHandler(&mockInsightsService{}, &mockLangfuseClient{enabled: false}, nil)

	req := httptest.NewRequest(http.MethodGet, "/users/"+uuid.New().String()+"/insights", nil)
	w := httptest.NewRecorder()

	newInsightsRouter(handler).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	// Check raw JSON - trace_id should be omitted (omitempty)
	if strings.Contains(w.Body.String(), `"trace_id"`) {
		t.Error("expected trace_id to be omitted without tracing")
	}
}

func TestGetInsights_Errors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"unknown user", domain.ErrNotFound, http.StatusNotFound},
		{"llm not configured", llm.ErrOpenAIUnavailable, http.StatusServiceUnavailable},
		{"llm request failed", llm.ErrOpenAIRequest, http.StatusBadGateway},
		{"llm bad answer", llm.ErrOpenAIResponse, http.StatusBadGateway},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewInsightsHandler(&mockInsightsService{err: tt.err}, &mockLangfuseClient{}, nil)
			req := httptest.NewRequest(http.MethodGet, "/users/"+uuid.New().String()+"/insights", nil)
			w := httptest.NewRecorder()
			newInsightsRouter(handler).ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestPostFeedback_Success(t *testing.T) {
	mockLangfuse := &mockLangfuseClient{enabled: true}
	handler := NewInsightsHandler(&mockInsightsService{}, mockLangfuse, nil)

	body := `{"trace_id": "trace-123", "score": 4, "comment": "Helpful!"}`
	req := httptest.NewRequest(http.MethodPost, "/users/"+uuid.New().String()+"/insights/feedback", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	newInsightsRouter(handler).ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("expected status 204, got %d: %s", w.Code, w.Body.String())
	}
	if mockLangfuse.scoreCalls != 1 {
		t.Errorf("expected 1 CreateScore call, got %d", mockLangfuse.scoreCalls)
	}
	if mockLangfuse.lastScore.TraceID != "trace-123" || mockLangfuse.lastScore.Value != 4 {
		t.Errorf("score = %+v", mockLangfuse.lastScore)
	}
}

func TestPostFeedback_LangfuseFailureStillAccepted(t *testing.T) {
	mockLangfuse := &mockLangfuseClient{enabled: true, err: errors.New("langfuse down")}
	handler := NewInsightsHandler(&mockInsightsService{}, mockLangfuse, nil)

	req := httptest.NewRequest(http.MethodPost, "/users/"+uuid.New().String()+"/insights/feedback",
		strings.NewReader(`{"trace_id": "t", "score": 5}`))
	w := httptest.NewRecorder()
	newInsightsRouter(handler).ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("expected status 204, got %d", w.Code)
	}
}

func TestPostFeedback_ValidationErrors(t *testing.T) {
	handler := NewInsightsHandler(&mockInsightsService{}, &mockLangfuseClient{enabled: true}, nil)
	router := newInsightsRouter(handler)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"missing trace_id", `{"score": 4}`, http.StatusUnprocessableEntity},
		{"score too low", `{"trace_id": "abc", "score": 0}`, http.StatusUnprocessableEntity},
		{"score too high", `{"trace_id": "abc", "score": 6}`, http.StatusUnprocessableEntity},
		{"invalid JSON", `{invalid}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/users/"+uuid.New().String()+"/insights/feedback", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != tt.want {
				t.Errorf("expected status %d, got %d", tt.want, w.Code)
			}
		})
	}
}
