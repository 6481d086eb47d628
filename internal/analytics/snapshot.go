// Package analytics computes flare statistics and delayed trigger patterns from
// an in-memory snapshot of day entries.
//
// Every exported function is a pure function of its arguments: the entries are
// never mutated, nothing is cached between calls, and insufficient data yields
// empty or sentinel results instead of errors.
package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/blaisecz/flare-tracker/internal/domain"
)

const (
	// MinEntriesForPatterns is the snapshot size below which pattern detection
	// and fungal onset analysis report nothing.
	MinEntriesForPatterns = 5

	// DefaultDelayDays is the default lag window length.
	DefaultDelayDays = 2

	// DefaultSeverityThreshold is the severity from which a day counts as a flare.
	DefaultSeverityThreshold = 4

	// GoodDayMaxSeverity and BadDayMinSeverity split days into good and bad.
	GoodDayMaxSeverity = 2
	BadDayMinSeverity  = 4
)

// snapshot is a date-sorted view over the caller's entries with a day index.
type snapshot struct {
	entries []*domain.DayEntry
	byDate  map[string]*domain.DayEntry
}

func newSnapshot(entries []domain.DayEntry) *snapshot {
	sorted := make([]*domain.DayEntry, len(entries))
	for i := range entries {
		sorted[i] = &entries[i]
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return domain.CalendarDay(sorted[i].Date).Before(domain.CalendarDay(sorted[j].Date))
	})

	byDate := make(map[string]*domain.DayEntry, len(sorted))
	for _, e := range sorted {
		byDate[dayKey(e.Date)] = e
	}

	return &snapshot{entries: sorted, byDate: byDate}
}

// at returns the entry offset days after day, or nil.
func (s *snapshot) at(day time.Time, offset int) *domain.DayEntry {
	return s.byDate[dayKey(domain.CalendarDay(day).AddDate(0, 0, offset))]
}

func dayKey(t time.Time) string {
	return domain.FormatDate(domain.CalendarDay(t))
}

// severities returns the recorded severities of entries matching keep.
func (s *snapshot) severities(keep func(e *domain.DayEntry) bool) []int {
	var out []int
	for _, e := range s.entries {
		if e.Severity != nil && (keep == nil || keep(e)) {
			out = append(out, *e.Severity)
		}
	}
	return out
}

// mean returns the average rounded to two decimals, or 0 for no values.
func mean(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return round2(float64(sum) / float64(len(values)))
}

// percentage returns part/total*100 with one decimal, or 0 when total is 0.
func percentage(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return round1(float64(part) / float64(total) * 100)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// meansByKey averages each bucket.
func meansByKey[K comparable](buckets map[K][]int) map[K]float64 {
	out := make(map[K]float64, len(buckets))
	for k, values := range buckets {
		out[k] = mean(values)
	}
	return out
}
