package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/blaisecz/flare-tracker/internal/domain"
)

// MaxWeeklyBuckets is how many of the most recent weeks are reported.
const MaxWeeklyBuckets = 8

// weekStart returns the Monday of the week containing day.
func weekStart(day time.Time) time.Time {
	d := domain.CalendarDay(day)
	return d.AddDate(0, 0, -((int(d.Weekday()) + 6) % 7))
}

// weekLabel renders "4.-10. Mar 2024", or "26. Feb - 3. Mar 2024" across months.
func weekLabel(start time.Time) string {
	end := start.AddDate(0, 0, 6)
	if start.Month() == end.Month() {
		return fmt.Sprintf("%d.-%d. %s %d", start.Day(), end.Day(), start.Format("Jan"), end.Year())
	}
	return fmt.Sprintf("%d. %s - %d. %s %d", start.Day(), start.Format("Jan"), end.Day(), end.Format("Jan"), end.Year())
}

func (s *snapshot) weeklyAverages() []domain.WeeklyAverage {
	buckets := make(map[time.Time][]int)
	for _, e := range s.entries {
		if e.Severity == nil {
			continue
		}
		ws := weekStart(e.Date)
		buckets[ws] = append(buckets[ws], *e.Severity)
	}

	starts := make([]time.Time, 0, len(buckets))
	for ws := range buckets {
		starts = append(starts, ws)
	}
	sort.Slice(starts, func(i, j int) bool { return starts[i].Before(starts[j]) })
	if len(starts) > MaxWeeklyBuckets {
		starts = starts[len(starts)-MaxWeeklyBuckets:]
	}

	weeks := make([]domain.WeeklyAverage, 0, len(starts))
	for _, ws := range starts {
		weeks = append(weeks, domain.WeeklyAverage{
			WeekStart: domain.FormatDate(ws),
			WeekLabel: weekLabel(ws),
			Average:   mean(buckets[ws]),
			Count:     len(buckets[ws]),
		})
	}
	return weeks
}

// dayOfWeekAverages indexes Monday as 0.
func (s *snapshot) dayOfWeekAverages() [7]float64 {
	var days [7][]int
	for _, e := range s.entries {
		if e.Severity == nil {
			continue
		}
		wd := (int(domain.CalendarDay(e.Date).Weekday()) + 6) % 7
		days[wd] = append(days[wd], *e.Severity)
	}

	var out [7]float64
	for i, values := range days {
		out[i] = mean(values)
	}
	return out
}
