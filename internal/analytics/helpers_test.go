package analytics

import (
	"time"

	"github.com/blaisecz/flare-tracker/internal/domain"
)

type entryOpt func(*domain.DayEntry)

func day(s string) time.Time {
	t, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

func dayAfter(s string, offset int) string {
	return domain.FormatDate(day(s).AddDate(0, 0, offset))
}

func entry(date string, opts ...entryOpt) domain.DayEntry {
	e := domain.DayEntry{Date: day(date)}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

func sev(v int) entryOpt { return func(e *domain.DayEntry) { e.Severity = &v } }

func foods(f ...string) entryOpt {
	return func(e *domain.DayEntry) { e.Foods = domain.NewStringSet(f) }
}

func stress(v int) entryOpt { return func(e *domain.DayEntry) { e.StressLevel = &v } }

func sleepQuality(v int) entryOpt { return func(e *domain.DayEntry) { e.SleepQuality = &v } }

func fungal(active bool) entryOpt { return func(e *domain.DayEntry) { e.FungalActive = &active } }

func weather(w string) entryOpt { return func(e *domain.DayEntry) { e.Weather = &w } }

func sweating() entryOpt {
	return func(e *domain.DayEntry) {
		v := true
		e.Sweating = &v
	}
}

func contacts(c ...string) entryOpt {
	return func(e *domain.DayEntry) { e.ContactExposures = domain.NewStringSet(c) }
}

func findPattern(results []domain.PatternResult, label string) (domain.PatternResult, bool) {
	for _, r := range results {
		if r.TriggerLabel == label {
			return r, true
		}
	}
	return domain.PatternResult{}, false
}
