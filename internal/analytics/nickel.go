package analytics

import (
	"sort"

	"github.com/blaisecz/flare-tracker/internal/domain"
)

// HighNickelLoad is the nickel-rich food count from which a day is high-nickel.
const HighNickelLoad = 2

// nickelWindow and nickelThreshold are fixed, independent of user settings.
var nickelWindow = Window{From: 0, To: 2}

const nickelThreshold = BadDayMinSeverity

// AnalyzeNickel buckets severity by the number of nickel-rich foods eaten per
// day and measures how often a high-nickel day is followed by a flare.
func AnalyzeNickel(entries []domain.DayEntry, nickel NickelSet) domain.NickelAnalysis {
	if nickel == nil {
		nickel = NewNickelSet(nil)
	}
	s := newSnapshot(entries)

	load := func(e *domain.DayEntry) int {
		n := 0
		for _, f := range e.Foods {
			if nickel.Has(f) {
				n++
			}
		}
		return n
	}

	byLoad := make(map[int][]int)
	for _, e := range s.entries {
		if e.Severity != nil {
			l := load(e)
			byLoad[l] = append(byLoad[l], *e.Severity)
		}
	}

	total, hits := s.scan(func(e *domain.DayEntry) bool {
		return load(e) >= HighNickelLoad
	}, nickelWindow, nickelThreshold)

	return domain.NickelAnalysis{
		AvgSeverityByNickelLoad:    meansByKey(byLoad),
		HighNickelEvents:           total,
		HighNickelFlareProbability: percentage(len(hits), total),
		NickelFoodFrequencies:      s.foodCounts(nickel.Has),
	}
}

// foodCounts counts the days each food was eaten, most frequent first with ties
// in first-seen order. keep filters foods when non-nil.
func (s *snapshot) foodCounts(keep func(food string) bool) []domain.FoodCount {
	var order []string
	counts := make(map[string]int)
	for _, e := range s.entries {
		for _, f := range e.Foods {
			if keep != nil && !keep(f) {
				continue
			}
			if _, ok := counts[f]; !ok {
				order = append(order, f)
			}
			counts[f]++
		}
	}

	out := make([]domain.FoodCount, 0, len(order))
	for _, f := range order {
		out = append(out, domain.FoodCount{Food: f, Count: counts[f]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}
