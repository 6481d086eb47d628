package analytics

import (
	"time"

	"github.com/blaisecz/flare-tracker/internal/domain"
)

// DateRange is an inclusive range of calendar days.
type DateRange struct {
	From time.Time
	To   time.Time
}

// Contains reports whether day falls inside the range.
func (r DateRange) Contains(day time.Time) bool {
	d := domain.CalendarDay(day)
	return !d.Before(domain.CalendarDay(r.From)) && !d.After(domain.CalendarDay(r.To))
}

// RecentRange covers today and the days before it.
func RecentRange(today time.Time, days int) DateRange {
	t := domain.CalendarDay(today)
	return DateRange{From: t.AddDate(0, 0, -days), To: t}
}

// ComparisonRanges returns the recent range ending today and the previous range
// ending the day before it starts.
func ComparisonRanges(today time.Time, recentDays, previousDays int) (recent, previous DateRange) {
	recent = RecentRange(today, recentDays)
	end := recent.From.AddDate(0, 0, -1)
	previous = DateRange{From: end.AddDate(0, 0, -previousDays), To: end}
	return recent, previous
}

// ComparePeriods compares the average severity of two periods. A negative
// change means the recent period was milder.
func ComparePeriods(recent []domain.DayEntry, recentRange DateRange, previous []domain.DayEntry, previousRange DateRange) domain.PeriodComparison {
	p1 := summarize(recent, recentRange)
	p2 := summarize(previous, previousRange)
	return domain.PeriodComparison{
		Period1:  p1,
		Period2:  p2,
		Change:   round2(p1.AverageSeverity - p2.AverageSeverity),
		Improved: p1.AverageSeverity < p2.AverageSeverity,
	}
}

func summarize(entries []domain.DayEntry, r DateRange) domain.PeriodSummary {
	return domain.PeriodSummary{
		Start:           domain.FormatDate(r.From),
		End:             domain.FormatDate(r.To),
		Entries:         len(entries),
		AverageSeverity: newSnapshot(entries).averageSeverity(),
	}
}

func (s *snapshot) averageSeverity() float64 {
	return mean(s.severities(nil))
}

// InRange keeps the entries whose date falls inside r.
func InRange(entries []domain.DayEntry, r DateRange) []domain.DayEntry {
	out := make([]domain.DayEntry, 0, len(entries))
	for _, e := range entries {
		if r.Contains(e.Date) {
			out = append(out, e)
		}
	}
	return out
}
