// Package telemetry configures OpenTelemetry tracing. Spans are exported to
// Langfuse's OTLP endpoint, which renders the JSON input and output attributes
// as observation payloads.
package telemetry

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"strings"

	"github.com/blaisecz/flare-tracker/internal/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// Instrumentation scopes used across the API.
const (
	ServiceName    = "flare-tracker-api"
	ScopeHTTP      = ServiceName + "/http"
	ScopeAnalytics = ServiceName + "/analytics"
	ScopeInsights  = ServiceName + "/insights"
)

// Span attribute keys understood by Langfuse.
const (
	AttrObservationInput  = "langfuse.observation.input"
	AttrObservationOutput = "langfuse.observation.output"
	AttrEnvironment       = "langfuse.environment"
	AttrUserID            = "user.id"
)

const otlpTracesPath = "/api/public/otel/v1/traces"

// Enabled reports whether spans are exported.
func Enabled(cfg *config.Config) bool {
	return cfg.LangfuseBaseURL != "" && cfg.LangfusePublicKey != "" && cfg.LangfuseSecretKey != ""
}

// InitTracer installs the global tracer provider and W3C propagator. Without
// Langfuse credentials the default no-op provider stays in place.
func InitTracer(ctx context.Context, cfg *config.Config, serviceName string) (func(context.Context) error, error) {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	if !Enabled(cfg) {
		return func(context.Context) error { return nil }, nil
	}

	auth := base64.StdEncoding.EncodeToString([]byte(cfg.LangfusePublicKey + ":" + cfg.LangfuseSecretKey))
	exporter, err := otlptracehttp.New(
		ctx,
		otlptracehttp.WithEndpointURL(strings.TrimSuffix(cfg.LangfuseBaseURL, "/")+otlpTracesPath),
		otlptracehttp.WithHeaders(map[string]string{
			"Authorization": "Basic " + auth,
		}),
	)
	if err != nil {
		return nil, err
	}

	res, err := resource.New(
		ctx,
		resource.WithAttributes(
			attribute.String("service.name", serviceName),
			attribute.String(AttrEnvironment, cfg.LangfuseEnv),
		),
	)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	return tp.Shutdown, nil
}

// SetInput records v as the observation input of span. Values that cannot be
// marshalled are skipped.
func SetInput(span trace.Span, v any) {
	setJSON(span, AttrObservationInput, v)
}

// SetOutput records v as the observation output of span.
func SetOutput(span trace.Span, v any) {
	setJSON(span, AttrObservationOutput, v)
}

func setJSON(span trace.Span, key string, v any) {
	if !span.IsRecording() {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	span.SetAttributes(attribute.String(key, string(data)))
}
