package analytics

import "github.com/blaisecz/flare-tracker/internal/domain"

// DefaultFungalLookAheadDays is how far after an onset severity is followed.
const DefaultFungalLookAheadDays = 14

// DetectFungalOnsets finds days where a fungal infection became active and
// follows severity over offsets 0..lookAheadDays. The peak of each window is
// its highest severity, the earliest offset winning ties; a peak of at least
// BadDayMinSeverity counts as a flare. Onsets without any severity in their
// window are not recorded.
func DetectFungalOnsets(entries []domain.DayEntry, lookAheadDays int) domain.FungalAnalysis {
	if len(entries) < MinEntriesForPatterns {
		return domain.FungalAnalysis{InsufficientData: true}
	}

	s := newSnapshot(entries)
	baseline := s.severities(func(e *domain.DayEntry) bool { return !e.IsFungalActive() })
	active := s.severities((*domain.DayEntry).IsFungalActive)

	onsets := make([]domain.OnsetEvent, 0)
	prev := false
	for _, e := range s.entries {
		current := e.IsFungalActive()
		if current && !prev {
			if ev, ok := s.onset(e, lookAheadDays); ok {
				onsets = append(onsets, ev)
			}
		}
		prev = current
	}

	result := domain.FungalAnalysis{
		OnsetEvents:             onsets,
		TotalOnsets:             len(onsets),
		AvgBaselineSeverity:     mean(baseline),
		AvgFungalActiveSeverity: mean(active),
	}

	if len(onsets) > 0 {
		delays, flares := 0, 0
		for _, ev := range onsets {
			delays += ev.PeakDelayDays
			if ev.FlareTriggered {
				flares++
			}
		}
		avg := round1(float64(delays) / float64(len(onsets)))
		result.AvgPeakDelayDays = &avg
		result.FlareProbability = percentage(flares, len(onsets))
	}

	return result
}

func (s *snapshot) onset(e *domain.DayEntry, lookAheadDays int) (domain.OnsetEvent, bool) {
	var window []domain.SeverityPoint
	for offset := 0; offset <= lookAheadDays; offset++ {
		future := s.at(e.Date, offset)
		if future == nil || future.Severity == nil {
			continue
		}
		window = append(window, domain.SeverityPoint{Offset: offset, Severity: *future.Severity})
	}
	if len(window) == 0 {
		return domain.OnsetEvent{}, false
	}

	peak := window[0]
	for _, p := range window[1:] {
		if p.Severity > peak.Severity {
			peak = p
		}
	}

	return domain.OnsetEvent{
		OnsetDate:      dayKey(e.Date),
		PeakDelayDays:  peak.Offset,
		PeakSeverity:   peak.Severity,
		FlareTriggered: peak.Severity >= BadDayMinSeverity,
		Window:         window,
	}, true
}
