package service

import (
	"context"
	"strings"
	"time"

	"github.com/blaisecz/flare-tracker/internal/domain"
	"github.com/blaisecz/flare-tracker/internal/repository"
	"github.com/blaisecz/flare-tracker/pkg/pagination"
	"github.com/google/uuid"
)

// EntryService records and reads day entries.
type EntryService interface {
	// Upsert creates or replaces the entry for date. The bool is true when a new
	// entry was created.
	Upsert(ctx context.Context, userID uuid.UUID, date time.Time, req *domain.UpsertDayEntryRequest) (*domain.DayEntry, bool, error)
	Get(ctx context.Context, userID uuid.UUID, date time.Time) (*domain.DayEntry, error)
	Delete(ctx context.Context, userID uuid.UUID, date time.Time) error
	List(ctx context.Context, userID uuid.UUID, filter domain.DayEntryFilter) (*domain.DayEntryListResponse, error)
}

type entryService struct {
	repo     repository.DayEntryRepository
	userRepo repository.UserRepository
}

func NewEntryService(repo repository.DayEntryRepository, userRepo repository.UserRepository) EntryService {
	return &entryService{
		repo:     repo,
		userRepo: userRepo,
	}
}

func (s *entryService) Upsert(ctx context.Context, userID uuid.UUID, date time.Time, req *domain.UpsertDayEntryRequest) (*domain.DayEntry, bool, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, false, err
	}

	entry := &domain.DayEntry{
		UserID:           userID,
		Date:             domain.CalendarDay(date),
		Severity:         req.Severity,
		Foods:            domain.NewStringSet(req.Foods),
		StressLevel:      req.StressLevel,
		FungalActive:     req.FungalActive,
		SleepQuality:     req.SleepQuality,
		Weather:          normalizeWeather(req.Weather),
		Sweating:         req.Sweating,
		ContactExposures: domain.NewStringSet(req.ContactExposures),
		Notes:            strings.TrimSpace(req.Notes),
	}

	created, err := s.repo.Upsert(ctx, entry)
	if err != nil {
		return nil, false, err
	}
	return entry, created, nil
}

func (s *entryService) Get(ctx context.Context, userID uuid.UUID, date time.Time) (*domain.DayEntry, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.repo.GetByDate(ctx, userID, domain.CalendarDay(date))
}

func (s *entryService) Delete(ctx context.Context, userID uuid.UUID, date time.Time) error {
	if err := s.requireUser(ctx, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, userID, domain.CalendarDay(date))
}

func (s *entryService) List(ctx context.Context, userID uuid.UUID, filter domain.DayEntryFilter) (*domain.DayEntryListResponse, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	entries, err := s.repo.List(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	limit := pagination.NormalizeLimit(filter.Limit)
	hasMore := len(entries) > limit

	// Trim to actual limit
	if hasMore {
		entries = entries[:limit]
	}

	response := &domain.DayEntryListResponse{
		Data: make([]domain.DayEntryResponse, len(entries)),
		Pagination: domain.PaginationResponse{
			HasMore: hasMore,
		},
	}

	for i := range entries {
		response.Data[i] = entries[i].ToResponse()
	}

	if hasMore && len(entries) > 0 {
		last := entries[len(entries)-1]
		response.Pagination.NextCursor = pagination.NewCursor(last.Date, last.ID).Encode()
	}

	return response, nil
}

func (s *entryService) requireUser(ctx context.Context, userID uuid.UUID) error {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrNotFound
	}
	return nil
}

// normalizeWeather lower-cases the category so "Humid" and "humid" group together.
func normalizeWeather(w *string) *string {
	if w == nil {
		return nil
	}
	v := strings.ToLower(strings.TrimSpace(*w))
	if v == "" {
		return nil
	}
	return &v
}
