package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the wire and storage layout of a calendar day.
const DateLayout = "2006-01-02"

// Severity bounds shared by every rated field (severity, stress, sleep quality).
const (
	MinRating = 1
	MaxRating = 5
)

// StringSet is an ordered, de-duplicated list of labels stored as a JSON array.
type StringSet []string

// NewStringSet trims, drops empty values and removes duplicates, keeping the
// first occurrence of each label.
func NewStringSet(values []string) StringSet {
	if len(values) == 0 {
		return StringSet{}
	}
	seen := make(map[string]struct{}, len(values))
	out := make(StringSet, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// Contains reports whether label is in the set.
func (s StringSet) Contains(label string) bool {
	for _, v := range s {
		if v == label {
			return true
		}
	}
	return false
}

// Value implements driver.Valuer.
func (s StringSet) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	data, err := json.Marshal([]string(s))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner.
func (s *StringSet) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*s = StringSet{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("scan StringSet: unsupported type %T", src)
	}
	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("scan StringSet: %w", err)
	}
	*s = StringSet(values)
	return nil
}

// DayEntry is one day of recorded severity and trigger data for a user.
// Optional fields are nil when the user did not record them that day.
type DayEntry struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID           uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_day_entries_user_date" json:"user_id"`
	Date             time.Time `gorm:"column:entry_date;type:date;not null;uniqueIndex:idx_day_entries_user_date" json:"date"`
	Severity         *int      `gorm:"type:smallint" json:"severity,omitempty"`
	Foods            StringSet `gorm:"type:jsonb;not null;default:'[]'" json:"foods"`
	StressLevel      *int      `gorm:"type:smallint" json:"stress_level,omitempty"`
	FungalActive     *bool     `json:"fungal_active,omitempty"`
	SleepQuality     *int      `gorm:"type:smallint" json:"sleep_quality,omitempty"`
	Weather          *string   `gorm:"type:varchar(50)" json:"weather,omitempty"`
	Sweating         *bool     `json:"sweating,omitempty"`
	ContactExposures StringSet `gorm:"type:jsonb;not null;default:'[]'" json:"contact_exposures"`
	Notes            string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Associations
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (DayEntry) TableName() string {
	return "day_entries"
}

// HasSeverity reports whether the severity was recorded.
func (e *DayEntry) HasSeverity() bool {
	return e.Severity != nil
}

// IsFungalActive treats an absent flag as inactive.
func (e *DayEntry) IsFungalActive() bool {
	return e.FungalActive != nil && *e.FungalActive
}

// IsSweating treats an absent flag as false.
func (e *DayEntry) IsSweating() bool {
	return e.Sweating != nil && *e.Sweating
}

// WeatherCategory returns the weather label or "" when none was recorded.
func (e *DayEntry) WeatherCategory() string {
	if e.Weather == nil {
		return ""
	}
	return *e.Weather
}

// ParseDate parses a YYYY-MM-DD calendar date into midnight UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// CalendarDay drops the clock part of t, keeping its calendar date in t's location.
func CalendarDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// FormatDate renders a calendar day as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// UpsertDayEntryRequest is the request body for recording a day.
// @Description Request payload for creating or replacing a day entry.
type UpsertDayEntryRequest struct {
	// Symptom severity from 1 (very good) to 5 (very bad)
	Severity *int `json:"severity,omitempty" validate:"omitempty,min=1,max=5" example:"3" minimum:"1" maximum:"5"`
	// Foods eaten that day
	Foods []string `json:"foods,omitempty" validate:"omitempty,max=100,dive,max=100" example:"Milch,Brot"`
	// Stress level from 1 (calm) to 5 (extreme)
	StressLevel *int `json:"stress_level,omitempty" validate:"omitempty,min=1,max=5" example:"2" minimum:"1" maximum:"5"`
	// Whether a fungal infection was active
	FungalActive *bool `json:"fungal_active,omitempty" example:"false"`
	// Sleep quality from 1 (bad) to 5 (very good)
	SleepQuality *int `json:"sleep_quality,omitempty" validate:"omitempty,min=1,max=5" example:"4" minimum:"1" maximum:"5"`
	// Weather category
	Weather *string `json:"weather,omitempty" validate:"omitempty,max=50" example:"humid"`
	// Whether there was heavy sweating
	Sweating *bool `json:"sweating,omitempty" example:"false"`
	// Contact exposures (detergents, metals, ...)
	ContactExposures []string `json:"contact_exposures,omitempty" validate:"omitempty,max=50,dive,max=100" example:"Nickel"`
	// Free-form notes
	Notes string `json:"notes,omitempty" validate:"max=2000"`
}

// DayEntryResponse is the response body for entry endpoints.
// @Description One recorded day.
type DayEntryResponse struct {
	ID               uuid.UUID `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	UserID           uuid.UUID `json:"user_id" example:"660e8400-e29b-41d4-a716-446655440001"`
	Date             string    `json:"date" example:"2024-03-14"`
	Severity         *int      `json:"severity,omitempty" example:"3"`
	Foods            []string  `json:"foods"`
	StressLevel      *int      `json:"stress_level,omitempty" example:"2"`
	FungalActive     *bool     `json:"fungal_active,omitempty"`
	SleepQuality     *int      `json:"sleep_quality,omitempty" example:"4"`
	Weather          *string   `json:"weather,omitempty" example:"humid"`
	Sweating         *bool     `json:"sweating,omitempty"`
	ContactExposures []string  `json:"contact_exposures"`
	Notes            string    `json:"notes,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (e *DayEntry) ToResponse() DayEntryResponse {
	foods := []string(e.Foods)
	if foods == nil {
		foods = []string{}
	}
	contacts := []string(e.ContactExposures)
	if contacts == nil {
		contacts = []string{}
	}
	return DayEntryResponse{
		ID:               e.ID,
		UserID:           e.UserID,
		Date:             FormatDate(e.Date),
		Severity:         e.Severity,
		Foods:            foods,
		StressLevel:      e.StressLevel,
		FungalActive:     e.FungalActive,
		SleepQuality:     e.SleepQuality,
		Weather:          e.Weather,
		Sweating:         e.Sweating,
		ContactExposures: contacts,
		Notes:            e.Notes,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
}

// DayEntryListResponse is the response body for listing entries.
// @Description Paginated list of day entries.
type DayEntryListResponse struct {
	Data       []DayEntryResponse `json:"data"`
	Pagination PaginationResponse `json:"pagination"`
}

// PaginationResponse contains pagination metadata.
// @Description Cursor-based pagination info.
type PaginationResponse struct {
	// Cursor for fetching the next page (empty if no more pages)
	NextCursor string `json:"next_cursor,omitempty"`
	// True if more results are available
	HasMore bool `json:"has_more" example:"true"`
}

// DayEntryFilter contains filter parameters for listing entries.
type DayEntryFilter struct {
	From   *time.Time
	To     *time.Time
	Limit  int
	Cursor string
}

// SnapshotVersion identifies the state of a user's entries. It changes whenever
// an entry is created, updated or deleted.
type SnapshotVersion struct {
	Entries     int64
	LastUpdated *time.Time
}

// Key renders the version for use in cache keys.
func (v SnapshotVersion) Key() string {
	if v.LastUpdated == nil {
		return fmt.Sprintf("%d", v.Entries)
	}
	return fmt.Sprintf("%d@%d", v.Entries, v.LastUpdated.UnixNano())
}
