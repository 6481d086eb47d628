package analytics

import (
	"github.com/blaisecz/flare-tracker/internal/domain"
)

// MaxPatternDetails caps the detail records kept per pattern.
const MaxPatternDetails = 5

// Window is an inclusive range of day offsets searched after a trigger day.
type Window struct {
	From int
	To   int
}

// LagWindow searches the trigger day itself and the delayDays that follow.
func LagWindow(delayDays int) Window {
	return Window{From: 0, To: delayDays}
}

// NextDaysWindow skips the trigger day. Used by the food-only detector.
func NextDaysWindow(delayDays int) Window {
	return Window{From: 1, To: delayDays}
}

// Predicate reports whether a trigger is present on an entry.
type Predicate func(e *domain.DayEntry) bool

// TriggerDef describes one candidate trigger for the lagged analyzer.
type TriggerDef struct {
	Label          string
	Type           domain.TriggerType
	MinOccurrences int
	Match          Predicate
	NickelRich     bool
}

// lagHit is a trigger day followed by a flare inside the window.
type lagHit struct {
	trigger  *domain.DayEntry
	reaction *domain.DayEntry
	offset   int
}

// scan counts the entries matching match and, for each, looks for the first
// offset in w whose entry reaches threshold.
func (s *snapshot) scan(match Predicate, w Window, threshold int) (total int, hits []lagHit) {
	for _, e := range s.entries {
		if !match(e) {
			continue
		}
		total++
		for offset := w.From; offset <= w.To; offset++ {
			future := s.at(e.Date, offset)
			if future == nil || future.Severity == nil {
				continue
			}
			if *future.Severity >= threshold {
				hits = append(hits, lagHit{trigger: e, reaction: future, offset: offset})
				break
			}
		}
	}
	return total, hits
}

func (s *snapshot) analyze(def TriggerDef, w Window, threshold int) (domain.PatternResult, bool) {
	total, hits := s.scan(def.Match, w, threshold)
	if total == 0 || total < def.MinOccurrences {
		return domain.PatternResult{}, false
	}

	details := make([]domain.PatternDetail, 0, min(len(hits), MaxPatternDetails))
	for _, h := range hits {
		if len(details) == MaxPatternDetails {
			break
		}
		details = append(details, domain.PatternDetail{
			TriggerDate:  dayKey(h.trigger.Date),
			ReactionDate: dayKey(h.reaction.Date),
			Delay:        h.offset,
			Severity:     *h.reaction.Severity,
		})
	}

	return domain.PatternResult{
		TriggerLabel:       def.Label,
		TriggerType:        def.Type,
		TotalOccurrences:   total,
		TriggeredReactions: len(hits),
		Probability:        percentage(len(hits), total),
		Details:            details,
		IsNickelRich:       def.NickelRich,
	}, true
}

// AnalyzeTrigger measures how often a flare of at least threshold follows a day
// matching def within w. ok is false when def occurred fewer than
// def.MinOccurrences times (or never).
func AnalyzeTrigger(entries []domain.DayEntry, def TriggerDef, w Window, threshold int) (domain.PatternResult, bool) {
	return newSnapshot(entries).analyze(def, w, threshold)
}
