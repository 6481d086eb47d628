// Package report renders a terminal summary of a flare diary export.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/blaisecz/flare-tracker/internal/domain"
)

// exportEntry is one day in an export file. The date is the object key.
type exportEntry struct {
	Severity         *int     `json:"severity"`
	Foods            []string `json:"foods"`
	StressLevel      *int     `json:"stress_level"`
	FungalActive     *bool    `json:"fungal_active"`
	SleepQuality     *int     `json:"sleep_quality"`
	Weather          *string  `json:"weather"`
	Sweating         *bool    `json:"sweating"`
	ContactExposures []string `json:"contact_exposures"`
	Notes            string   `json:"notes"`
}

// LoadExport decodes an export keyed by YYYY-MM-DD into entries sorted by date.
// A key that is not a calendar date fails with domain.ErrInvalidDate, a rating
// outside domain.MinRating..MaxRating with domain.ErrInvalidInput.
func LoadExport(r io.Reader) ([]domain.DayEntry, error) {
	var raw map[string]exportEntry
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode export: %w", err)
	}

	entries := make([]domain.DayEntry, 0, len(raw))
	for key, e := range raw {
		date, err := domain.ParseDate(key)
		if err != nil {
			return nil, err
		}
		if err := checkRatings(key, e); err != nil {
			return nil, err
		}
		entries = append(entries, domain.DayEntry{
			Date:             date,
			Severity:         e.Severity,
			Foods:            domain.NewStringSet(e.Foods),
			StressLevel:      e.StressLevel,
			FungalActive:     e.FungalActive,
			SleepQuality:     e.SleepQuality,
			Weather:          e.Weather,
			Sweating:         e.Sweating,
			ContactExposures: domain.NewStringSet(e.ContactExposures),
			Notes:            e.Notes,
		})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Date.Before(entries[j].Date) })
	return entries, nil
}

func checkRatings(key string, e exportEntry) error {
	for _, r := range []struct {
		field string
		value *int
	}{
		{"severity", e.Severity},
		{"stress_level", e.StressLevel},
		{"sleep_quality", e.SleepQuality},
	} {
		if r.value != nil && (*r.value < domain.MinRating || *r.value > domain.MaxRating) {
			return fmt.Errorf("%w: %s %s must be between %d and %d, got %d",
				domain.ErrInvalidInput, key, r.field, domain.MinRating, domain.MaxRating, *r.value)
		}
	}
	return nil
}
