package handler

import (
	"context"
	"time"

	"github.com/blaisecz/flare-tracker/internal/domain"
	"github.com/blaisecz/flare-tracker/internal/langfuse"
	"github.com/blaisecz/flare-tracker/internal/service"
	"github.com/google/uuid"
)

// MockUserService is a mock implementation of UserService
type MockUserService struct {
	createFunc        func(ctx context.Context, req *domain.CreateUserRequest) (*domain.User, error)
	getByIDFunc       func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	updateModulesFunc func(ctx context.Context, id uuid.UUID, modules domain.ModuleSet) (*domain.User, error)
}

func (m *MockUserService) Create(ctx context.Context, req *domain.CreateUserRequest) (*domain.User, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, req)
	}
	return &domain.User{ID: uuid.New(), Timezone: req.Timezone, Modules: domain.AllModules()}, nil
}

func (m *MockUserService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *MockUserService) UpdateModules(ctx context.Context, id uuid.UUID, modules domain.ModuleSet) (*domain.User, error) {
	if m.updateModulesFunc != nil {
		return m.updateModulesFunc(ctx, id, modules)
	}
	return &domain.User{ID: id, Timezone: "UTC", Modules: modules}, nil
}

// MockEntryService is a mock implementation of EntryService
type MockEntryService struct {
	upsertFunc func(ctx context.Context, userID uuid.UUID, date time.Time, req *domain.UpsertDayEntryRequest) (*domain.DayEntry, bool, error)
	getFunc    func(ctx context.Context, userID uuid.UUID, date time.Time) (*domain.DayEntry, error)
	deleteFunc func(ctx context.Context, userID uuid.UUID, date time.Time) error
	listFunc   func(ctx context.Context, userID uuid.UUID, filter domain.DayEntryFilter) (*domain.DayEntryListResponse, error)
}

func (m *MockEntryService) Upsert(ctx context.Context, userID uuid.UUID, date time.Time, req *domain.UpsertDayEntryRequest) (*domain.DayEntry, bool, error) {
	if m.upsertFunc != nil {
		return m.upsertFunc(ctx, userID, date, req)
	}
	return &domain.DayEntry{
		ID:       uuid.New(),
		UserID:   userID,
		Date:     date,
		Severity: req.Severity,
		Foods:    domain.NewStringSet(req.Foods),
	}, true, nil
}

func (m *MockEntryService) Get(ctx context.Context, userID uuid.UUID, date time.Time) (*domain.DayEntry, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, userID, date)
	}
	return nil, domain.ErrNotFound
}

func (m *MockEntryService) Delete(ctx context.Context, userID uuid.UUID, date time.Time) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, userID, date)
	}
	return nil
}

func (m *MockEntryService) List(ctx context.Context, userID uuid.UUID, filter domain.DayEntryFilter) (*domain.DayEntryListResponse, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, userID, filter)
	}
	return &domain.DayEntryListResponse{Data: []domain.DayEntryResponse{}}, nil
}

// MockAnalyticsService returns canned results and records the last call.
type MockAnalyticsService struct {
	err error

	lastDays      int
	lastParams    service.PatternParams
	lastLookAhead int
	lastKind      service.FoodKind
	lastRecent    int
	lastPrevious  int
}

func (m *MockAnalyticsService) Statistics(ctx context.Context, userID uuid.UUID, days int) (*domain.Statistics, error) {
	m.lastDays = days
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Statistics{TotalEntries: 3, SeverityDistribution: map[int]int{1: 1, 2: 0, 3: 1, 4: 1, 5: 0}}, nil
}

func (m *MockAnalyticsService) Triggers(ctx context.Context, userID uuid.UUID, params service.PatternParams) ([]domain.PatternResult, error) {
	m.lastParams = params
	if m.err != nil {
		return nil, m.err
	}
	return []domain.PatternResult{{TriggerLabel: "Milch", TriggerType: domain.TriggerFood, TotalOccurrences: 3, TriggeredReactions: 3, Probability: 100}}, nil
}

func (m *MockAnalyticsService) FoodPatterns(ctx context.Context, userID uuid.UUID, params service.PatternParams) ([]domain.PatternResult, error) {
	m.lastParams = params
	if m.err != nil {
		return nil, m.err
	}
	return []domain.PatternResult{}, nil
}

func (m *MockAnalyticsService) Fungal(ctx context.Context, userID uuid.UUID, lookAheadDays int) (*domain.FungalAnalysis, error) {
	m.lastLookAhead = lookAheadDays
	if m.err != nil {
		return nil, m.err
	}
	return &domain.FungalAnalysis{InsufficientData: true}, nil
}

func (m *MockAnalyticsService) Stress(ctx context.Context, userID uuid.UUID, params service.PatternParams) (*domain.StressAnalysis, error) {
	m.lastParams = params
	if m.err != nil {
		return nil, m.err
	}
	return &domain.StressAnalysis{}, nil
}

func (m *MockAnalyticsService) Sleep(ctx context.Context, userID uuid.UUID) (*domain.SleepAnalysis, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &domain.SleepAnalysis{}, nil
}

func (m *MockAnalyticsService) Weather(ctx context.Context, userID uuid.UUID) ([]domain.WeatherImpact, error) {
	if m.err != nil {
		return nil, m.err
	}
	return []domain.WeatherImpact{{Weather: "humid", AverageSeverity: 3.5, Count: 2}}, nil
}

func (m *MockAnalyticsService) Nickel(ctx context.Context, userID uuid.UUID) (*domain.NickelAnalysis, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &domain.NickelAnalysis{}, nil
}

func (m *MockAnalyticsService) Foods(ctx context.Context, userID uuid.UUID, kind service.FoodKind) ([]domain.FoodCorrelation, error) {
	m.lastKind = kind
	if m.err != nil {
		return nil, m.err
	}
	return []domain.FoodCorrelation{}, nil
}

func (m *MockAnalyticsService) Compare(ctx context.Context, userID uuid.UUID, recentDays, previousDays int) (*domain.PeriodComparison, error) {
	m.lastRecent, m.lastPrevious = recentDays, previousDays
	if m.err != nil {
		return nil, m.err
	}
	return &domain.PeriodComparison{Improved: true}, nil
}

type mockInsightsService struct {
	traceID string
	err     error
}

func (m *mockInsightsService) Generate(ctx context.Context, userID uuid.UUID) (*domain.InsightsResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &domain.InsightsResponse{
		Insights: domain.LLMInsightsOutput{
			Summary:      "Your skin has been calmer.",
			Observations: []string{"Milch was followed by flares"},
			Guidance:     []string{"Keep logging"},
		},
		TraceID: m.traceID,
	}, nil
}

// mockLangfuseClient for testing
type mockLangfuseClient struct {
	enabled    bool
	scoreCalls int
	lastScore  langfuse.ScoreInput
	err        error
}

func (m *mockLangfuseClient) IsEnabled() bool {
	return m.enabled
}

func (m *mockLangfuseClient) CreateTrace(ctx context.Context, in langfuse.TraceInput) (string, error) {
	return in.ID, nil
}

func (m *mockLangfuseClient) CreateScore(ctx context.Context, in langfuse.ScoreInput) error {
	m.scoreCalls++
	m.lastScore = in
	return m.err
}
