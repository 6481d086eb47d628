package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/blaisecz/flare-tracker/internal/analytics"
	"github.com/blaisecz/flare-tracker/internal/domain"
	"github.com/blaisecz/flare-tracker/internal/logger"
	"github.com/blaisecz/flare-tracker/internal/repository"
	"github.com/blaisecz/flare-tracker/internal/telemetry"
	"github.com/google/uuid"
	"github.com/maypok86/otter/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	DefaultRecentDays   = 7
	DefaultPreviousDays = 7

	DefaultCacheTTL  = 5 * time.Minute
	DefaultCacheSize = 10_000
)

// FoodKind selects which food correlation list is returned.
type FoodKind string

const (
	FoodKindTriggers FoodKind = "triggers"
	FoodKindSafe     FoodKind = "safe"
)

// PatternParams are the optional lag window and flare threshold of a request.
// Nil values fall back to the service settings.
type PatternParams struct {
	DelayDays *int
	Threshold *int
}

// AnalyticsSettings are the service-wide analysis defaults.
type AnalyticsSettings struct {
	DelayDays           int
	Threshold           int
	FungalLookAheadDays int
	NickelRichFoods     []string
	CacheTTL            time.Duration
	CacheSize           int
}

// AnalyticsService runs the analytics engine over a user's stored entries.
type AnalyticsService interface {
	// Statistics summarises the last days days, or all entries when days is 0.
	Statistics(ctx context.Context, userID uuid.UUID, days int) (*domain.Statistics, error)
	Triggers(ctx context.Context, userID uuid.UUID, params PatternParams) ([]domain.PatternResult, error)
	FoodPatterns(ctx context.Context, userID uuid.UUID, params PatternParams) ([]domain.PatternResult, error)
	Fungal(ctx context.Context, userID uuid.UUID, lookAheadDays int) (*domain.FungalAnalysis, error)
	Stress(ctx context.Context, userID uuid.UUID, params PatternParams) (*domain.StressAnalysis, error)
	Sleep(ctx context.Context, userID uuid.UUID) (*domain.SleepAnalysis, error)
	Weather(ctx context.Context, userID uuid.UUID) ([]domain.WeatherImpact, error)
	Nickel(ctx context.Context, userID uuid.UUID) (*domain.NickelAnalysis, error)
	Foods(ctx context.Context, userID uuid.UUID, kind FoodKind) ([]domain.FoodCorrelation, error)
	Compare(ctx context.Context, userID uuid.UUID, recentDays, previousDays int) (*domain.PeriodComparison, error)
}

type analyticsService struct {
	entryRepo repository.DayEntryRepository
	userRepo  repository.UserRepository
	settings  AnalyticsSettings
	nickel    analytics.NickelSet
	cache     *otter.Cache[string, any]
	log       *logger.Logger
	now       func() time.Time
}

// NewAnalyticsService creates a new AnalyticsService. Results are cached per
// user and keyed by the entry snapshot version, so any write invalidates them.
func NewAnalyticsService(
	entryRepo repository.DayEntryRepository,
	userRepo repository.UserRepository,
	settings AnalyticsSettings,
	log *logger.Logger,
) AnalyticsService {
	if settings.Threshold <= 0 {
		settings.Threshold = analytics.DefaultSeverityThreshold
	}
	if settings.DelayDays < 0 {
		settings.DelayDays = analytics.DefaultDelayDays
	}
	if settings.FungalLookAheadDays <= 0 {
		settings.FungalLookAheadDays = analytics.DefaultFungalLookAheadDays
	}
	if settings.CacheTTL <= 0 {
		settings.CacheTTL = DefaultCacheTTL
	}
	if settings.CacheSize <= 0 {
		settings.CacheSize = DefaultCacheSize
	}
	if log == nil {
		log = logger.NewNop()
	}

	cache := otter.Must(&otter.Options[string, any]{
		MaximumSize:      settings.CacheSize,
		InitialCapacity:  min(settings.CacheSize, 256),
		ExpiryCalculator: otter.ExpiryWriting[string, any](settings.CacheTTL),
	})

	return &analyticsService{
		entryRepo: entryRepo,
		userRepo:  userRepo,
		settings:  settings,
		nickel:    analytics.NewNickelSet(settings.NickelRichFoods),
		cache:     cache,
		log:       log,
		now:       time.Now,
	}
}

// snapshotRequest describes one cached analysis.
type snapshotRequest struct {
	op     string
	userID uuid.UUID
	params map[string]any
	// rng limits the snapshot to a date range; nil loads every entry.
	rng func(today time.Time) analytics.DateRange
}

// run loads the user, checks the cache and otherwise computes the result from
// a fresh snapshot.
func run[T any](ctx context.Context, s *analyticsService, req snapshotRequest, compute func(user *domain.User, entries []domain.DayEntry, today time.Time) T) (T, error) {
	var zero T

	tracer := otel.Tracer(telemetry.ScopeAnalytics)
	ctx, span := tracer.Start(ctx, "AnalyticsService."+req.op,
		trace.WithAttributes(attribute.String(telemetry.AttrUserID, req.userID.String())),
	)
	defer span.End()

	inputPayload := map[string]any{"user_id": req.userID.String()}
	for k, v := range req.params {
		inputPayload[k] = v
	}
	telemetry.SetInput(span, inputPayload)

	user, err := s.userRepo.GetByID(ctx, req.userID)
	if err != nil {
		return zero, err
	}
	version, err := s.entryRepo.Version(ctx, req.userID)
	if err != nil {
		return zero, err
	}

	today := user.Today(s.now())
	key := cacheKey(req, user, version, today)

	if v, ok := s.cache.GetIfPresent(key); ok {
		if result, ok := v.(T); ok {
			span.SetAttributes(attribute.Bool("cache.hit", true))
			return result, nil
		}
	}
	span.SetAttributes(
		attribute.Bool("cache.hit", false),
		attribute.Int64("snapshot.entries", version.Entries),
	)

	var entries []domain.DayEntry
	if req.rng != nil {
		r := req.rng(today)
		entries, err = s.entryRepo.ListInRange(ctx, req.userID, r.From, r.To)
	} else {
		entries, err = s.entryRepo.ListAll(ctx, req.userID)
	}
	if err != nil {
		return zero, err
	}

	start := time.Now()
	result := compute(user, entries, today)
	s.log.Debugw("analytics computed",
		"op", req.op,
		"user_id", req.userID,
		"entries", len(entries),
		"duration", time.Since(start),
	)

	s.cache.Set(key, result)

	telemetry.SetOutput(span, result)

	return result, nil
}

// cacheKey includes the module toggles and the user's current day because both
// change results without touching the entries.
func cacheKey(req snapshotRequest, user *domain.User, version domain.SnapshotVersion, today time.Time) string {
	params, _ := json.Marshal(req.params)
	return fmt.Sprintf("%s|%s|%s|%s|%+v|%s",
		req.userID, req.op, params, version.Key(), user.Modules, domain.FormatDate(today))
}

func (s *analyticsService) patternParams(p PatternParams) (delayDays, threshold int) {
	delayDays, threshold = s.settings.DelayDays, s.settings.Threshold
	if p.DelayDays != nil {
		delayDays = *p.DelayDays
	}
	if p.Threshold != nil {
		threshold = *p.Threshold
	}
	return delayDays, threshold
}

func (s *analyticsService) Statistics(ctx context.Context, userID uuid.UUID, days int) (*domain.Statistics, error) {
	req := snapshotRequest{op: "Statistics", userID: userID, params: map[string]any{"days": days}}
	if days > 0 {
		req.rng = func(today time.Time) analytics.DateRange { return analytics.RecentRange(today, days) }
	}
	stats, err := run(ctx, s, req, func(_ *domain.User, entries []domain.DayEntry, _ time.Time) domain.Statistics {
		return analytics.CalculateAll(entries)
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *analyticsService) Triggers(ctx context.Context, userID uuid.UUID, params PatternParams) ([]domain.PatternResult, error) {
	delayDays, threshold := s.patternParams(params)
	req := snapshotRequest{
		op:     "Triggers",
		userID: userID,
		params: map[string]any{"delay_days": delayDays, "threshold": threshold},
	}
	return run(ctx, s, req, func(user *domain.User, entries []domain.DayEntry, _ time.Time) []domain.PatternResult {
		return analytics.DetectAllTriggerPatterns(entries, analytics.PatternOptions{
			DelayDays:       delayDays,
			Threshold:       threshold,
			Modules:         user.Modules,
			NickelRichFoods: s.nickel,
		})
	})
}

func (s *analyticsService) FoodPatterns(ctx context.Context, userID uuid.UUID, params PatternParams) ([]domain.PatternResult, error) {
	delayDays, threshold := s.patternParams(params)
	req := snapshotRequest{
		op:     "FoodPatterns",
		userID: userID,
		params: map[string]any{"delay_days": delayDays, "threshold": threshold},
	}
	return run(ctx, s, req, func(_ *domain.User, entries []domain.DayEntry, _ time.Time) []domain.PatternResult {
		return analytics.DetectFoodPatterns(entries, delayDays, threshold, s.nickel)
	})
}

func (s *analyticsService) Fungal(ctx context.Context, userID uuid.UUID, lookAheadDays int) (*domain.FungalAnalysis, error) {
	if lookAheadDays <= 0 {
		lookAheadDays = s.settings.FungalLookAheadDays
	}
	if err := s.requireModule(ctx, userID, domain.ModuleFungal); err != nil {
		return nil, err
	}
	req := snapshotRequest{op: "Fungal", userID: userID, params: map[string]any{"look_ahead_days": lookAheadDays}}
	result, err := run(ctx, s, req, func(_ *domain.User, entries []domain.DayEntry, _ time.Time) domain.FungalAnalysis {
		return analytics.DetectFungalOnsets(entries, lookAheadDays)
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *analyticsService) Stress(ctx context.Context, userID uuid.UUID, params PatternParams) (*domain.StressAnalysis, error) {
	if err := s.requireModule(ctx, userID, domain.ModuleStress); err != nil {
		return nil, err
	}
	delayDays, threshold := s.patternParams(params)
	req := snapshotRequest{
		op:     "Stress",
		userID: userID,
		params: map[string]any{"delay_days": delayDays, "threshold": threshold},
	}
	result, err := run(ctx, s, req, func(_ *domain.User, entries []domain.DayEntry, _ time.Time) domain.StressAnalysis {
		return analytics.AnalyzeStress(entries, delayDays, threshold)
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *analyticsService) Sleep(ctx context.Context, userID uuid.UUID) (*domain.SleepAnalysis, error) {
	if err := s.requireModule(ctx, userID, domain.ModuleSleep); err != nil {
		return nil, err
	}
	result, err := run(ctx, s, snapshotRequest{op: "Sleep", userID: userID},
		func(_ *domain.User, entries []domain.DayEntry, _ time.Time) domain.SleepAnalysis {
			return analytics.AnalyzeSleep(entries)
		})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *analyticsService) Weather(ctx context.Context, userID uuid.UUID) ([]domain.WeatherImpact, error) {
	if err := s.requireModule(ctx, userID, domain.ModuleWeather); err != nil {
		return nil, err
	}
	return run(ctx, s, snapshotRequest{op: "Weather", userID: userID},
		func(_ *domain.User, entries []domain.DayEntry, _ time.Time) []domain.WeatherImpact {
			return analytics.AnalyzeWeather(entries)
		})
}

func (s *analyticsService) Nickel(ctx context.Context, userID uuid.UUID) (*domain.NickelAnalysis, error) {
	result, err := run(ctx, s, snapshotRequest{op: "Nickel", userID: userID},
		func(_ *domain.User, entries []domain.DayEntry, _ time.Time) domain.NickelAnalysis {
			return analytics.AnalyzeNickel(entries, s.nickel)
		})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *analyticsService) Foods(ctx context.Context, userID uuid.UUID, kind FoodKind) ([]domain.FoodCorrelation, error) {
	var pick func([]domain.DayEntry) []domain.FoodCorrelation
	switch kind {
	case FoodKindTriggers, "":
		kind = FoodKindTriggers
		pick = func(entries []domain.DayEntry) []domain.FoodCorrelation {
			return analytics.PotentialTriggers(entries, analytics.DefaultTriggerAverage, analytics.DefaultMinFoodDays)
		}
	case FoodKindSafe:
		pick = func(entries []domain.DayEntry) []domain.FoodCorrelation {
			return analytics.SafeFoods(entries, analytics.DefaultSafeAverage, analytics.DefaultMinFoodDays)
		}
	default:
		return nil, fmt.Errorf("%w: unknown food kind %q", domain.ErrInvalidInput, kind)
	}

	req := snapshotRequest{op: "Foods", userID: userID, params: map[string]any{"kind": kind}}
	return run(ctx, s, req, func(_ *domain.User, entries []domain.DayEntry, _ time.Time) []domain.FoodCorrelation {
		return pick(entries)
	})
}

func (s *analyticsService) Compare(ctx context.Context, userID uuid.UUID, recentDays, previousDays int) (*domain.PeriodComparison, error) {
	if recentDays <= 0 {
		recentDays = DefaultRecentDays
	}
	if previousDays <= 0 {
		previousDays = DefaultPreviousDays
	}

	req := snapshotRequest{
		op:     "Compare",
		userID: userID,
		params: map[string]any{"recent_days": recentDays, "previous_days": previousDays},
		rng: func(today time.Time) analytics.DateRange {
			recent, previous := analytics.ComparisonRanges(today, recentDays, previousDays)
			return analytics.DateRange{From: previous.From, To: recent.To}
		},
	}
	result, err := run(ctx, s, req, func(_ *domain.User, entries []domain.DayEntry, today time.Time) domain.PeriodComparison {
		recent, previous := analytics.ComparisonRanges(today, recentDays, previousDays)
		return analytics.ComparePeriods(
			analytics.InRange(entries, recent), recent,
			analytics.InRange(entries, previous), previous,
		)
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *analyticsService) requireModule(ctx context.Context, userID uuid.UUID, m domain.Module) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !user.Modules.Enabled(m) {
		return fmt.Errorf("%w: %s", domain.ErrModuleDisabled, m)
	}
	return nil
}
