package analytics

import (
	"sort"

	"github.com/blaisecz/flare-tracker/internal/domain"
)

const (
	// TopFoodsLimit caps the most frequent foods listed in statistics.
	TopFoodsLimit = 10

	// MinCorrelationOccurrences is how often a food must appear to get an
	// average severity.
	MinCorrelationOccurrences = 2

	DefaultTriggerAverage = 3.5
	DefaultSafeAverage    = 2.5
	DefaultMinFoodDays    = 3
)

func (s *snapshot) topFoods() []domain.FoodCount {
	counts := s.foodCounts(nil)
	if len(counts) > TopFoodsLimit {
		counts = counts[:TopFoodsLimit]
	}
	return counts
}

// foodCorrelations averages the same-day severity of every food eaten at least
// MinCorrelationOccurrences times. Days without severity count towards the
// occurrences but not the average; foods never seen with a severity are left out.
func (s *snapshot) foodCorrelations() []domain.FoodCorrelation {
	var order []string
	counts := make(map[string]int)
	severities := make(map[string][]int)
	for _, e := range s.entries {
		for _, f := range e.Foods {
			if _, ok := counts[f]; !ok {
				order = append(order, f)
			}
			counts[f]++
			if e.Severity != nil {
				severities[f] = append(severities[f], *e.Severity)
			}
		}
	}

	out := make([]domain.FoodCorrelation, 0)
	for _, f := range order {
		if counts[f] < MinCorrelationOccurrences || len(severities[f]) == 0 {
			continue
		}
		out = append(out, domain.FoodCorrelation{
			Food:            f,
			Count:           counts[f],
			AverageSeverity: mean(severities[f]),
			Severities:      severities[f],
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AverageSeverity > out[j].AverageSeverity
	})
	return out
}

// PotentialTriggers lists foods whose average same-day severity is at least
// threshold over at least minOccurrences days, worst first.
func PotentialTriggers(entries []domain.DayEntry, threshold float64, minOccurrences int) []domain.FoodCorrelation {
	out := make([]domain.FoodCorrelation, 0)
	for _, c := range newSnapshot(entries).foodCorrelations() {
		if c.AverageSeverity >= threshold && c.Count >= minOccurrences {
			out = append(out, c)
		}
	}
	return out
}

// SafeFoods lists foods whose average same-day severity is at most threshold
// over at least minOccurrences days, best first.
func SafeFoods(entries []domain.DayEntry, threshold float64, minOccurrences int) []domain.FoodCorrelation {
	out := make([]domain.FoodCorrelation, 0)
	for _, c := range newSnapshot(entries).foodCorrelations() {
		if c.AverageSeverity <= threshold && c.Count >= minOccurrences {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AverageSeverity < out[j].AverageSeverity
	})
	return out
}
