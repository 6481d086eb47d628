package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/blaisecz/flare-tracker/internal/domain"
	"github.com/blaisecz/flare-tracker/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DayEntryRepository is the entry store. Snapshot reads return entries ordered
// by date ascending.
type DayEntryRepository interface {
	Upsert(ctx context.Context, entry *domain.DayEntry) (created bool, err error)
	GetByDate(ctx context.Context, userID uuid.UUID, date time.Time) (*domain.DayEntry, error)
	Delete(ctx context.Context, userID uuid.UUID, date time.Time) error
	List(ctx context.Context, userID uuid.UUID, filter domain.DayEntryFilter) ([]domain.DayEntry, error)
	ListAll(ctx context.Context, userID uuid.UUID) ([]domain.DayEntry, error)
	ListInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.DayEntry, error)
	Version(ctx context.Context, userID uuid.UUID) (domain.SnapshotVersion, error)
}

type dayEntryRepository struct {
	db    *gorm.DB
	newID func() uuid.UUID
}

func NewDayEntryRepository(db *gorm.DB) DayEntryRepository {
	return &dayEntryRepository{db: db, newID: uuid.New}
}

// upsertColumns are overwritten when an entry for the same (user, date) exists.
var upsertColumns = []string{
	"severity", "foods", "stress_level", "fungal_active", "sleep_quality",
	"weather", "sweating", "contact_exposures", "notes", "updated_at",
}

// Upsert creates the entry for its (user, date) or replaces the recorded values
// of the existing one in a single statement, keeping its id and creation time.
// The returned id tells the two apart.
func (r *dayEntryRepository) Upsert(ctx context.Context, entry *domain.DayEntry) (bool, error) {
	candidate := r.newID()
	entry.ID = candidate

	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(
			clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}, {Name: "entry_date"}},
				DoUpdates: clause.AssignmentColumns(upsertColumns),
			},
			clause.Returning{Columns: []clause.Column{{Name: "id"}, {Name: "created_at"}}},
		).
		Create(entry).Error
	if err != nil {
		return false, err
	}
	return entry.ID == candidate, nil
}

func (r *dayEntryRepository) GetByDate(ctx context.Context, userID uuid.UUID, date time.Time) (*domain.DayEntry, error) {
	var entry domain.DayEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND entry_date = ?", userID, date).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

func (r *dayEntryRepository) Delete(ctx context.Context, userID uuid.UUID, date time.Time) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND entry_date = ?", userID, date).
		Delete(&domain.DayEntry{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List returns one page of entries, newest first, plus one extra row when more
// pages follow.
func (r *dayEntryRepository) List(ctx context.Context, userID uuid.UUID, filter domain.DayEntryFilter) ([]domain.DayEntry, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("entry_date DESC, id DESC")

	if filter.From != nil {
		query = query.Where("entry_date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("entry_date <= ?", *filter.To)
	}

	if filter.Cursor != "" {
		cursor, err := pagination.DecodeCursor(filter.Cursor)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		query = query.Where(
			"(entry_date < ?) OR (entry_date = ? AND id < ?)",
			cursor.Date, cursor.Date, cursor.ID,
		)
	}

	limit := pagination.NormalizeLimit(filter.Limit)
	query = query.Limit(limit + 1)

	var entries []domain.DayEntry
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *dayEntryRepository) ListAll(ctx context.Context, userID uuid.UUID) ([]domain.DayEntry, error) {
	var entries []domain.DayEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("entry_date ASC").
		Find(&entries).Error
	return entries, err
}

// ListInRange returns entries with from <= date <= to.
func (r *dayEntryRepository) ListInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.DayEntry, error) {
	var entries []domain.DayEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND entry_date BETWEEN ? AND ?", userID, from, to).
		Order("entry_date ASC").
		Find(&entries).Error
	return entries, err
}

func (r *dayEntryRepository) Version(ctx context.Context, userID uuid.UUID) (domain.SnapshotVersion, error) {
	var row struct {
		Entries     int64
		LastUpdated *time.Time
	}
	err := r.db.WithContext(ctx).
		Model(&domain.DayEntry{}).
		Select("count(*) AS entries, max(updated_at) AS last_updated").
		Where("user_id = ?", userID).
		Scan(&row).Error
	if err != nil {
		return domain.SnapshotVersion{}, err
	}
	return domain.SnapshotVersion{Entries: row.Entries, LastUpdated: row.LastUpdated}, nil
}
