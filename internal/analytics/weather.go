package analytics

import (
	"sort"

	"github.com/blaisecz/flare-tracker/internal/domain"
)

// AnalyzeWeather reports the mean severity of every weather category seen with
// at least one severity, worst first. There is no minimum sample size.
func AnalyzeWeather(entries []domain.DayEntry) []domain.WeatherImpact {
	s := newSnapshot(entries)

	var order []string
	byWeather := make(map[string][]int)
	for _, e := range s.entries {
		w := e.WeatherCategory()
		if w == "" || e.Severity == nil {
			continue
		}
		if _, ok := byWeather[w]; !ok {
			order = append(order, w)
		}
		byWeather[w] = append(byWeather[w], *e.Severity)
	}

	impacts := make([]domain.WeatherImpact, 0, len(order))
	for _, w := range order {
		impacts = append(impacts, domain.WeatherImpact{
			Weather:         w,
			AverageSeverity: mean(byWeather[w]),
			Count:           len(byWeather[w]),
		})
	}
	sort.SliceStable(impacts, func(i, j int) bool {
		return impacts[i].AverageSeverity > impacts[j].AverageSeverity
	})
	return impacts
}
