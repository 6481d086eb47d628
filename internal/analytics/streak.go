package analytics

import "github.com/blaisecz/flare-tracker/internal/domain"

// streaks computes the streak info over date-sorted entries. The best good
// streak counts adjacent list entries, not calendar days: a gap between two
// recorded days does not break it, an entry without a severity does. The
// current streak skips entries without a severity.
func (s *snapshot) streaks() domain.StreakInfo {
	info := domain.StreakInfo{StreakType: domain.StreakNone}

	run := 0
	for _, e := range s.entries {
		if e.Severity != nil && *e.Severity <= GoodDayMaxSeverity {
			run++
			info.BestGoodStreak = max(info.BestGoodStreak, run)
		} else {
			run = 0
		}
	}

	for i := len(s.entries) - 1; i >= 0; i-- {
		e := s.entries[i]
		if e.Severity == nil {
			continue
		}
		kind := domain.StreakBad
		if *e.Severity <= GoodDayMaxSeverity {
			kind = domain.StreakGood
		}
		if info.CurrentStreak == 0 {
			info.StreakType = kind
		} else if kind != info.StreakType {
			break
		}
		info.CurrentStreak++
	}

	return info
}
