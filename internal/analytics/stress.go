package analytics

import "github.com/blaisecz/flare-tracker/internal/domain"

// MaxStressPatterns caps the delayed stress patterns returned.
const MaxStressPatterns = 10

// AnalyzeStress relates stress levels to severity: the same-day average per
// level, the flare rate after high-stress days within offsets 0..delayDays and
// the stress/severity correlation.
func AnalyzeStress(entries []domain.DayEntry, delayDays, threshold int) domain.StressAnalysis {
	s := newSnapshot(entries)

	byLevel := make(map[int][]int)
	var pairs []Pair
	for _, e := range s.entries {
		if e.StressLevel == nil || e.Severity == nil {
			continue
		}
		byLevel[*e.StressLevel] = append(byLevel[*e.StressLevel], *e.Severity)
		pairs = append(pairs, Pair{X: float64(*e.StressLevel), Y: float64(*e.Severity)})
	}

	total, hits := s.scan(func(e *domain.DayEntry) bool {
		return e.StressLevel != nil && *e.StressLevel >= HighStressLevel
	}, LagWindow(delayDays), threshold)

	patterns := make([]domain.StressPattern, 0, min(len(hits), MaxStressPatterns))
	for _, h := range hits {
		if len(patterns) == MaxStressPatterns {
			break
		}
		patterns = append(patterns, domain.StressPattern{
			StressDate:   dayKey(h.trigger.Date),
			StressLevel:  *h.trigger.StressLevel,
			ReactionDate: dayKey(h.reaction.Date),
			Delay:        h.offset,
			Severity:     *h.reaction.Severity,
		})
	}

	return domain.StressAnalysis{
		SeverityByLevel:            meansByKey(byLevel),
		HighStressEvents:           total,
		HighStressFlareProbability: percentage(len(hits), total),
		Correlation:                correlation(pairs),
		DelayedPatterns:            patterns,
	}
}
