package analytics

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sourcegraph/conc/iter"

	"github.com/blaisecz/flare-tracker/internal/domain"
)

// Minimum occurrences before a trigger is reported.
const (
	MinFoodOccurrences     = 3
	MinFactorOccurrences   = 2
	MinCategoryOccurrences = 3
)

// Rating cut-offs used by the built-in trigger definitions.
const (
	HighStressLevel    = 4
	ExtremeStressLevel = 5
	BadSleepMax        = 2
	GoodSleepMin       = 4
)

// DefaultNickelRichFoods is the reference list of foods with a high nickel content.
var DefaultNickelRichFoods = []string{
	"Schokolade", "Kakao", "Haferflocken", "Nüsse", "Erdnüsse", "Haselnüsse",
	"Walnüsse", "Mandeln", "Cashews", "Soja", "Tofu", "Hülsenfrüchte", "Linsen",
	"Bohnen", "Erbsen", "Kichererbsen", "Vollkorn", "Buchweizen", "Hirse",
	"Sonnenblumenkerne", "Leinsamen", "Tee", "Spinat", "Grünkohl", "Tomaten",
}

// NickelSet is a lookup of nickel-rich food labels.
type NickelSet map[string]struct{}

// NewNickelSet builds a set from labels, falling back to DefaultNickelRichFoods
// when labels is empty.
func NewNickelSet(labels []string) NickelSet {
	if len(labels) == 0 {
		labels = DefaultNickelRichFoods
	}
	set := make(NickelSet, len(labels))
	for _, l := range labels {
		if l = strings.TrimSpace(l); l != "" {
			set[l] = struct{}{}
		}
	}
	return set
}

// Has reports whether food is nickel-rich.
func (n NickelSet) Has(food string) bool {
	_, ok := n[food]
	return ok
}

// PatternOptions parameterises DetectAllTriggerPatterns.
type PatternOptions struct {
	DelayDays int
	Threshold int
	// Modules selects which non-food trigger families are evaluated.
	Modules domain.ModuleSet
	// NickelRichFoods marks food patterns; nil uses DefaultNickelRichFoods.
	NickelRichFoods NickelSet
}

// DefaultPatternOptions evaluates every module with the default window.
func DefaultPatternOptions() PatternOptions {
	return PatternOptions{
		DelayDays: DefaultDelayDays,
		Threshold: DefaultSeverityThreshold,
		Modules:   domain.AllModules(),
	}
}

// DetectAllTriggerPatterns runs the lagged analyzer for every trigger candidate
// found in entries and returns the surviving patterns by probability, highest
// first. Fewer than MinEntriesForPatterns entries yield an empty list.
func DetectAllTriggerPatterns(entries []domain.DayEntry, opts PatternOptions) []domain.PatternResult {
	if len(entries) < MinEntriesForPatterns {
		return []domain.PatternResult{}
	}
	if opts.NickelRichFoods == nil {
		opts.NickelRichFoods = NewNickelSet(nil)
	}

	s := newSnapshot(entries)
	return s.evaluate(s.triggerDefs(opts), LagWindow(opts.DelayDays), opts.Threshold)
}

// DetectFoodPatterns is the food-only detector. It searches offsets 1..delayDays,
// so a flare on the day the food was eaten does not count.
func DetectFoodPatterns(entries []domain.DayEntry, delayDays, threshold int, nickel NickelSet) []domain.PatternResult {
	if len(entries) < MinEntriesForPatterns {
		return []domain.PatternResult{}
	}
	if nickel == nil {
		nickel = NewNickelSet(nil)
	}

	s := newSnapshot(entries)
	return s.evaluate(s.foodDefs(nickel), NextDaysWindow(delayDays), threshold)
}

type outcome struct {
	result domain.PatternResult
	ok     bool
}

// evaluate analyzes defs concurrently against the read-only snapshot and merges
// the survivors in definition order before sorting.
func (s *snapshot) evaluate(defs []TriggerDef, w Window, threshold int) []domain.PatternResult {
	outcomes := iter.Map(defs, func(def *TriggerDef) outcome {
		r, ok := s.analyze(*def, w, threshold)
		return outcome{result: r, ok: ok}
	})

	results := make([]domain.PatternResult, 0, len(outcomes))
	for _, o := range outcomes {
		if o.ok {
			results = append(results, o.result)
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Probability > results[j].Probability
	})
	return results
}

// triggerDefs lists candidates in a fixed order: foods, stress, fungal, sleep,
// weather, sweating, contacts. Labels within a family keep first-seen order.
func (s *snapshot) triggerDefs(opts PatternOptions) []TriggerDef {
	defs := s.foodDefs(opts.NickelRichFoods)
	m := opts.Modules

	if m.Stress {
		defs = append(defs,
			TriggerDef{
				Label:          fmt.Sprintf("High stress (≥%d)", HighStressLevel),
				Type:           domain.TriggerStress,
				MinOccurrences: MinFactorOccurrences,
				Match: func(e *domain.DayEntry) bool {
					return e.StressLevel != nil && *e.StressLevel >= HighStressLevel
				},
			},
			TriggerDef{
				Label:          fmt.Sprintf("Extreme stress (%d)", ExtremeStressLevel),
				Type:           domain.TriggerStress,
				MinOccurrences: MinFactorOccurrences,
				Match: func(e *domain.DayEntry) bool {
					return e.StressLevel != nil && *e.StressLevel == ExtremeStressLevel
				},
			},
		)
	}

	if m.Fungal {
		defs = append(defs, TriggerDef{
			Label:          "Fungal infection active",
			Type:           domain.TriggerFungal,
			MinOccurrences: MinFactorOccurrences,
			Match:          (*domain.DayEntry).IsFungalActive,
		})
	}

	if m.Sleep {
		defs = append(defs,
			TriggerDef{
				Label:          fmt.Sprintf("Bad sleep (≤%d)", BadSleepMax),
				Type:           domain.TriggerSleep,
				MinOccurrences: MinFactorOccurrences,
				Match: func(e *domain.DayEntry) bool {
					return e.SleepQuality != nil && *e.SleepQuality <= BadSleepMax
				},
			},
			// Uses the flare math unchanged: for a protective factor the
			// probability reads as a coincidence rate.
			TriggerDef{
				Label:          fmt.Sprintf("Good sleep (≥%d)", GoodSleepMin),
				Type:           domain.TriggerSleep,
				MinOccurrences: MinFactorOccurrences,
				Match: func(e *domain.DayEntry) bool {
					return e.SleepQuality != nil && *e.SleepQuality >= GoodSleepMin
				},
			},
		)
	}

	if m.Weather {
		for _, w := range s.labels(func(e *domain.DayEntry) []string {
			if c := e.WeatherCategory(); c != "" {
				return []string{c}
			}
			return nil
		}) {
			defs = append(defs, TriggerDef{
				Label:          "Weather: " + w,
				Type:           domain.TriggerWeather,
				MinOccurrences: MinCategoryOccurrences,
				Match: func(e *domain.DayEntry) bool {
					return e.WeatherCategory() == w
				},
			})
		}
	}

	if m.Sweating {
		defs = append(defs, TriggerDef{
			Label:          "Heavy sweating",
			Type:           domain.TriggerSweating,
			MinOccurrences: MinFactorOccurrences,
			Match:          (*domain.DayEntry).IsSweating,
		})
	}

	if m.Contact {
		for _, c := range s.labels(func(e *domain.DayEntry) []string { return e.ContactExposures }) {
			defs = append(defs, TriggerDef{
				Label:          "Contact: " + c,
				Type:           domain.TriggerContact,
				MinOccurrences: MinCategoryOccurrences,
				Match: func(e *domain.DayEntry) bool {
					return e.ContactExposures.Contains(c)
				},
			})
		}
	}

	return defs
}

func (s *snapshot) foodDefs(nickel NickelSet) []TriggerDef {
	foods := s.labels(func(e *domain.DayEntry) []string { return e.Foods })
	defs := make([]TriggerDef, 0, len(foods))
	for _, food := range foods {
		defs = append(defs, TriggerDef{
			Label:          food,
			Type:           domain.TriggerFood,
			MinOccurrences: MinFoodOccurrences,
			Match: func(e *domain.DayEntry) bool {
				return e.Foods.Contains(food)
			},
			NickelRich: nickel.Has(food),
		})
	}
	return defs
}

// labels collects the distinct values of field across the snapshot in
// first-seen order.
func (s *snapshot) labels(field func(e *domain.DayEntry) []string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, e := range s.entries {
		for _, v := range field(e) {
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}
