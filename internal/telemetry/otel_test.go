package telemetry

import (
	"context"
	"testing"

	"github.com/blaisecz/flare-tracker/internal/config"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestEnabled(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
		want bool
	}{
		{"empty", config.Config{}, false},
		{"missing secret", config.Config{LangfuseBaseURL: "http://lf", LangfusePublicKey: "pk"}, false},
		{"complete", config.Config{LangfuseBaseURL: "http://lf", LangfusePublicKey: "pk", LangfuseSecretKey: "sk"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Enabled(&tt.cfg); got != tt.want {
				t.Errorf("Enabled() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInitTracer_DisabledWithoutLangfuse(t *testing.T) {
	shutdown, err := InitTracer(context.Background(), &config.Config{}, ServiceName)
	if err != nil {
		t.Fatalf("InitTracer() error = %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("shutdown() error = %v", err)
	}
}

func TestSetInputOutput(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	_, span := tp.Tracer(ScopeAnalytics).Start(context.Background(), "test")
	SetInput(span, map[string]int{"days": 7})
	SetOutput(span, []string{"Milch"})
	SetOutput(span, make(chan int)) // not marshallable, ignored
	span.End()

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	attrs := make(map[attribute.Key]string)
	for _, kv := range spans[0].Attributes() {
		attrs[kv.Key] = kv.Value.AsString()
	}
	if got := attrs[AttrObservationInput]; got != `{"days":7}` {
		t.Errorf("input = %q", got)
	}
	if got := attrs[AttrObservationOutput]; got != `["Milch"]` {
		t.Errorf("output = %q", got)
	}
}
