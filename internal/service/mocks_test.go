package service

import (
	"context"
	"sort"
	"time"

	"github.com/blaisecz/flare-tracker/internal/domain"
	"github.com/blaisecz/flare-tracker/internal/langfuse"
	"github.com/google/uuid"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	users map[uuid.UUID]*domain.User
	err   error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[uuid.UUID]*domain.User),
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.err != nil {
		return m.err
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	user, ok := m.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	u := *user
	return &u, nil
}

func (m *MockUserRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.users[id]
	return ok, nil
}

func (m *MockUserRepository) UpdateModules(ctx context.Context, id uuid.UUID, modules domain.ModuleSet) error {
	if m.err != nil {
		return m.err
	}
	user, ok := m.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	user.Modules = modules
	return nil
}

func (m *MockUserRepository) SetError(err error) {
	m.err = err
}

// MockDayEntryRepository keeps entries in memory keyed by user and date.
type MockDayEntryRepository struct {
	entries map[string]*domain.DayEntry
	// listResult overrides List when set
	listResult []domain.DayEntry
	err        error
	// listAllCalls counts snapshot loads
	listAllCalls int
	version      int64
}

func NewMockDayEntryRepository() *MockDayEntryRepository {
	return &MockDayEntryRepository{
		entries: make(map[string]*domain.DayEntry),
	}
}

func entryKey(userID uuid.UUID, date time.Time) string {
	return userID.String() + "|" + domain.FormatDate(date)
}

func (m *MockDayEntryRepository) Upsert(ctx context.Context, entry *domain.DayEntry) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	m.version++
	key := entryKey(entry.UserID, entry.Date)
	if existing, ok := m.entries[key]; ok {
		entry.ID = existing.ID
		entry.CreatedAt = existing.CreatedAt
		entry.UpdatedAt = time.Now()
		m.entries[key] = entry
		return false, nil
	}
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	entry.CreatedAt = time.Now()
	entry.UpdatedAt = entry.CreatedAt
	m.entries[key] = entry
	return true, nil
}

func (m *MockDayEntryRepository) GetByDate(ctx context.Context, userID uuid.UUID, date time.Time) (*domain.DayEntry, error) {
	if m.err != nil {
		return nil, m.err
	}
	e, ok := m.entries[entryKey(userID, date)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return e, nil
}

func (m *MockDayEntryRepository) Delete(ctx context.Context, userID uuid.UUID, date time.Time) error {
	if m.err != nil {
		return m.err
	}
	key := entryKey(userID, date)
	if _, ok := m.entries[key]; !ok {
		return domain.ErrNotFound
	}
	m.version++
	delete(m.entries, key)
	return nil
}

func (m *MockDayEntryRepository) List(ctx context.Context, userID uuid.UUID, filter domain.DayEntryFilter) ([]domain.DayEntry, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.listResult != nil {
		result := make([]domain.DayEntry, len(m.listResult))
		copy(result, m.listResult)
		return result, nil
	}
	all := m.forUser(userID)
	sort.SliceStable(all, func(i, j int) bool { return all[i].Date.After(all[j].Date) })
	return all, nil
}

func (m *MockDayEntryRepository) ListAll(ctx context.Context, userID uuid.UUID) ([]domain.DayEntry, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.listAllCalls++
	return m.forUser(userID), nil
}

func (m *MockDayEntryRepository) ListInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.DayEntry, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []domain.DayEntry
	for _, e := range m.forUser(userID) {
		if !e.Date.Before(from) && !e.Date.After(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *MockDayEntryRepository) Version(ctx context.Context, userID uuid.UUID) (domain.SnapshotVersion, error) {
	if m.err != nil {
		return domain.SnapshotVersion{}, m.err
	}
	return domain.SnapshotVersion{Entries: m.version}, nil
}

func (m *MockDayEntryRepository) forUser(userID uuid.UUID) []domain.DayEntry {
	var out []domain.DayEntry
	for _, e := range m.entries {
		if e.UserID == userID {
			out = append(out, *e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// MockInsightsLLM returns a fixed output and records the context it saw.
type MockInsightsLLM struct {
	output *domain.LLMInsightsOutput
	err    error
	seen   *domain.InsightsContext
}

func (m *MockInsightsLLM) GenerateInsights(ctx context.Context, insightsCtx *domain.InsightsContext) (*domain.LLMInsightsOutput, error) {
	m.seen = insightsCtx
	if m.err != nil {
		return nil, m.err
	}
	return m.output, nil
}

// MockLangfuseClient records traces.
type MockLangfuseClient struct {
	enabled bool
	traces  []langfuse.TraceInput
	err     error
}

func (m *MockLangfuseClient) IsEnabled() bool { return m.enabled }

func (m *MockLangfuseClient) CreateTrace(ctx context.Context, in langfuse.TraceInput) (string, error) {
	m.traces = append(m.traces, in)
	id := in.ID
	if id == "" {
		id = "trace-1"
	}
	return id, m.err
}

func (m *MockLangfuseClient) CreateScore(ctx context.Context, in langfuse.ScoreInput) error {
	return m.err
}

func intPtr(v int) *int { return &v }

func boolPtr(v bool) *bool { return &v }

func strPtr(v string) *string { return &v }

func mustDate(s string) time.Time {
	d, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}
