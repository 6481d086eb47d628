package analytics

import "github.com/blaisecz/flare-tracker/internal/domain"

// CalculateAll returns the descriptive statistics for entries. Entries without
// a severity count towards TotalEntries only.
func CalculateAll(entries []domain.DayEntry) domain.Statistics {
	s := newSnapshot(entries)

	dist := make(map[int]int, domain.MaxRating)
	for r := domain.MinRating; r <= domain.MaxRating; r++ {
		dist[r] = 0
	}

	var (
		severities []int
		stress     []int
		sleep      []int
		good, bad  int
		fungal     int
		sweating   int
	)
	weather := make(map[string]int)

	for _, e := range s.entries {
		if e.Severity != nil {
			sev := *e.Severity
			severities = append(severities, sev)
			if _, ok := dist[sev]; ok {
				dist[sev]++
			}
			if sev <= GoodDayMaxSeverity {
				good++
			}
			if sev >= BadDayMinSeverity {
				bad++
			}
		}
		if e.StressLevel != nil {
			stress = append(stress, *e.StressLevel)
		}
		if e.SleepQuality != nil {
			sleep = append(sleep, *e.SleepQuality)
		}
		if e.IsFungalActive() {
			fungal++
		}
		if e.IsSweating() {
			sweating++
		}
		if w := e.WeatherCategory(); w != "" {
			weather[w]++
		}
	}

	return domain.Statistics{
		TotalEntries:         len(entries),
		AverageSeverity:      mean(severities),
		SeverityDistribution: dist,
		GoodDays:             good,
		BadDays:              bad,
		TopFoods:             s.topFoods(),
		FoodCorrelations:     s.foodCorrelations(),
		WeeklyAverages:       s.weeklyAverages(),
		DayOfWeekAverages:    s.dayOfWeekAverages(),
		StreakInfo:           s.streaks(),
		AverageStress:        mean(stress),
		AverageSleep:         mean(sleep),
		FungalDays:           fungal,
		SweatingDays:         sweating,
		WeatherDistribution:  weather,
	}
}
