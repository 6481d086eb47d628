package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/blaisecz/flare-tracker/internal/domain"
	"github.com/blaisecz/flare-tracker/internal/langfuse"
	"github.com/blaisecz/flare-tracker/internal/llm"
	"github.com/blaisecz/flare-tracker/internal/logger"
	"github.com/blaisecz/flare-tracker/internal/telemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	// Window sizes for insights
	HistoryWindowDays = 30
	RecentWindowDays  = 7

	// MaxInsightTriggers caps the triggers sent to the LLM and returned.
	MaxInsightTriggers = 8
)

// InsightsService generates narrative flare insights.
type InsightsService interface {
	// Generate creates flare insights for a user.
	Generate(ctx context.Context, userID uuid.UUID) (*domain.InsightsResponse, error)
}

type insightsService struct {
	analytics AnalyticsService
	users     UserService
	llmClient llm.InsightsLLM
	langfuse  langfuse.Client
	log       *logger.Logger
}

// NewInsightsService creates a new InsightsService.
func NewInsightsService(
	analytics AnalyticsService,
	users UserService,
	llmClient llm.InsightsLLM,
	langfuseClient langfuse.Client,
	log *logger.Logger,
) InsightsService {
	if log == nil {
		log = logger.NewNop()
	}
	return &insightsService{
		analytics: analytics,
		users:     users,
		llmClient: llmClient,
		langfuse:  langfuseClient,
		log:       log,
	}
}

func (s *insightsService) Generate(ctx context.Context, userID uuid.UUID) (*domain.InsightsResponse, error) {
	tracer := otel.Tracer(telemetry.ScopeInsights)
	ctx, span := tracer.Start(ctx, "InsightsService.Generate",
		trace.WithAttributes(attribute.String(telemetry.AttrUserID, userID.String())),
	)
	defer span.End()

	if s.llmClient == nil {
		return nil, llm.ErrOpenAIUnavailable
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	insightsCtx, err := s.buildContext(ctx, user)
	if err != nil {
		return nil, err
	}

	telemetry.SetInput(span, insightsCtx)

	output, err := s.llmClient.GenerateInsights(ctx, insightsCtx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	telemetry.SetOutput(span, output)

	response := &domain.InsightsResponse{
		Statistics:  insightsCtx.Recent,
		TopTriggers: insightsCtx.Triggers,
		Insights:    *output,
	}

	if span.SpanContext().IsValid() {
		response.TraceID = span.SpanContext().TraceID().String()
	}
	if s.langfuse != nil && s.langfuse.IsEnabled() {
		traceID, err := s.langfuse.CreateTrace(ctx, langfuse.TraceInput{
			ID:     response.TraceID,
			UserID: userID.String(),
			Name:   "flare-insights",
			Input:  insightsCtx,
			Output: output,
			Tags:   []string{"insights"},
		})
		if err != nil {
			s.log.Warnw("langfuse trace failed", "user_id", userID, "error", err)
		} else {
			response.TraceID = traceID
		}
	}

	return response, nil
}

// buildContext gathers the analyses the LLM sees. Disabled modules are left out.
func (s *insightsService) buildContext(ctx context.Context, user *domain.User) (*domain.InsightsContext, error) {
	recent, err := s.analytics.Statistics(ctx, user.ID, RecentWindowDays)
	if err != nil {
		return nil, fmt.Errorf("recent statistics: %w", err)
	}
	history, err := s.analytics.Statistics(ctx, user.ID, HistoryWindowDays)
	if err != nil {
		return nil, fmt.Errorf("history statistics: %w", err)
	}
	triggers, err := s.analytics.Triggers(ctx, user.ID, PatternParams{})
	if err != nil {
		return nil, fmt.Errorf("triggers: %w", err)
	}
	if len(triggers) > MaxInsightTriggers {
		triggers = triggers[:MaxInsightTriggers]
	}
	nickel, err := s.analytics.Nickel(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("nickel: %w", err)
	}
	compare, err := s.analytics.Compare(ctx, user.ID, RecentWindowDays, RecentWindowDays)
	if err != nil {
		return nil, fmt.Errorf("compare: %w", err)
	}

	insightsCtx := &domain.InsightsContext{
		Recent:   *recent,
		History:  *history,
		Triggers: triggers,
		Nickel:   *nickel,
		Compare:  *compare,
	}

	if user.Modules.Fungal {
		if insightsCtx.Fungal, err = optional[domain.FungalAnalysis](s.analytics.Fungal(ctx, user.ID, 0)); err != nil {
			return nil, fmt.Errorf("fungal: %w", err)
		}
	}
	if user.Modules.Stress {
		if insightsCtx.Stress, err = optional[domain.StressAnalysis](s.analytics.Stress(ctx, user.ID, PatternParams{})); err != nil {
			return nil, fmt.Errorf("stress: %w", err)
		}
	}
	if user.Modules.Sleep {
		if insightsCtx.Sleep, err = optional[domain.SleepAnalysis](s.analytics.Sleep(ctx, user.ID)); err != nil {
			return nil, fmt.Errorf("sleep: %w", err)
		}
	}
	if user.Modules.Weather {
		weather, err := s.analytics.Weather(ctx, user.ID)
		if err != nil && !errors.Is(err, domain.ErrModuleDisabled) {
			return nil, fmt.Errorf("weather: %w", err)
		}
		insightsCtx.Weather = weather
	}

	return insightsCtx, nil
}

// optional drops results of modules switched off between the user lookup and
// the analysis.
func optional[T any](v *T, err error) (*T, error) {
	if errors.Is(err, domain.ErrModuleDisabled) {
		return nil, nil
	}
	return v, err
}
