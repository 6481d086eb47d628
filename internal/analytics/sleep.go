package analytics

import "github.com/blaisecz/flare-tracker/internal/domain"

// AnalyzeSleep averages severity per sleep quality on the same day and on the
// following day, with a correlation for each.
func AnalyzeSleep(entries []domain.DayEntry) domain.SleepAnalysis {
	s := newSnapshot(entries)

	sameDay := make(map[int][]int)
	nextDay := make(map[int][]int)
	var samePairs, nextPairs []Pair

	for _, e := range s.entries {
		if e.SleepQuality == nil {
			continue
		}
		q := *e.SleepQuality
		if e.Severity != nil {
			sameDay[q] = append(sameDay[q], *e.Severity)
			samePairs = append(samePairs, Pair{X: float64(q), Y: float64(*e.Severity)})
		}
		if tomorrow := s.at(e.Date, 1); tomorrow != nil && tomorrow.Severity != nil {
			nextDay[q] = append(nextDay[q], *tomorrow.Severity)
			nextPairs = append(nextPairs, Pair{X: float64(q), Y: float64(*tomorrow.Severity)})
		}
	}

	return domain.SleepAnalysis{
		SameDay:            meansByKey(sameDay),
		NextDay:            meansByKey(nextDay),
		Correlation:        correlation(samePairs),
		NextDayCorrelation: correlation(nextPairs),
	}
}
