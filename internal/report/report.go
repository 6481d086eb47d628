package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/blaisecz/flare-tracker/internal/analytics"
	"github.com/blaisecz/flare-tracker/internal/domain"
	"github.com/fatih/color"
)

const (
	maxTriggers = 10
	maxFoods    = 5
	barWidth    = 20
)

// Options controls which window and pattern parameters a report uses.
type Options struct {
	Days      int
	DelayDays int
	Threshold int
}

// Report is the data behind one rendered summary.
type Report struct {
	Today      time.Time
	Period     analytics.DateRange
	Statistics domain.Statistics
	Triggers   []domain.PatternResult
	Comparison domain.PeriodComparison
}

// Build analyses entries as of the latest recorded day. Statistics cover the
// last opts.Days days, patterns use the full history.
func Build(entries []domain.DayEntry, opts Options) Report {
	var today time.Time
	for _, e := range entries {
		if d := domain.CalendarDay(e.Date); d.After(today) {
			today = d
		}
	}

	period := analytics.RecentRange(today, opts.Days)
	recent, previous := analytics.ComparisonRanges(today, opts.Days, opts.Days)

	patternOpts := analytics.DefaultPatternOptions()
	patternOpts.DelayDays = opts.DelayDays
	patternOpts.Threshold = opts.Threshold

	return Report{
		Today:      today,
		Period:     period,
		Statistics: analytics.CalculateAll(analytics.InRange(entries, period)),
		Triggers:   analytics.DetectAllTriggerPatterns(entries, patternOpts),
		Comparison: analytics.ComparePeriods(
			analytics.InRange(entries, recent), recent,
			analytics.InRange(entries, previous), previous,
		),
	}
}

var (
	heading = color.New(color.Bold, color.FgCyan)
	muted   = color.New(color.FgHiBlack)
	good    = color.New(color.FgGreen)
	neutral = color.New(color.FgYellow)
	bad     = color.New(color.FgRed)
)

// severityColor maps an average or single severity to a traffic light.
func severityColor(v float64) *color.Color {
	switch {
	case v == 0:
		return muted
	case v <= analytics.GoodDayMaxSeverity:
		return good
	case v < analytics.BadDayMinSeverity:
		return neutral
	default:
		return bad
	}
}

// Render writes the report. Colors follow color.NoColor.
func Render(w io.Writer, r Report) error {
	var b strings.Builder
	s := r.Statistics

	heading.Fprintf(&b, "Flare report %s – %s\n", domain.FormatDate(r.Period.From), domain.FormatDate(r.Period.To))
	b.WriteString(strings.Repeat("─", 50) + "\n")

	if s.TotalEntries == 0 {
		muted.Fprintln(&b, "No entries in this period.")
		_, err := io.WriteString(w, b.String())
		return err
	}

	fmt.Fprintf(&b, "Entries:          %d\n", s.TotalEntries)
	fmt.Fprintf(&b, "Average severity: %s\n", severityColor(s.AverageSeverity).Sprintf("%.2f", s.AverageSeverity))
	fmt.Fprintf(&b, "Good / bad days:  %s / %s\n", good.Sprint(s.GoodDays), bad.Sprint(s.BadDays))
	fmt.Fprintf(&b, "Streak:           %s\n", streakLine(s.StreakInfo))

	b.WriteString("\n")
	heading.Fprintln(&b, "Severity distribution")
	maxCount := 0
	for _, n := range s.SeverityDistribution {
		maxCount = max(maxCount, n)
	}
	for sev := domain.MinRating; sev <= domain.MaxRating; sev++ {
		n := s.SeverityDistribution[sev]
		fmt.Fprintf(&b, "  %d │%s %d\n", sev, severityColor(float64(sev)).Sprint(bar(n, maxCount)), n)
	}

	if len(s.TopFoods) > 0 {
		b.WriteString("\n")
		heading.Fprintln(&b, "Most eaten")
		for _, f := range s.TopFoods[:min(maxFoods, len(s.TopFoods))] {
			fmt.Fprintf(&b, "  %-20s %d\n", f.Food, f.Count)
		}
	}

	b.WriteString("\n")
	heading.Fprintln(&b, "Possible triggers")
	if len(r.Triggers) == 0 {
		muted.Fprintln(&b, "  Not enough data for patterns yet.")
	}
	for _, t := range r.Triggers[:min(maxTriggers, len(r.Triggers))] {
		label := t.TriggerLabel
		if t.IsNickelRich {
			label += " (Ni)"
		}
		fmt.Fprintf(&b, "  %-24s %-8s %s  %d/%d\n",
			label, t.TriggerType, probabilityColor(t.Probability).Sprintf("%5.1f%%", t.Probability),
			t.TriggeredReactions, t.TotalOccurrences)
	}

	b.WriteString("\n")
	heading.Fprintln(&b, "Compared with the period before")
	fmt.Fprintf(&b, "  %s\n", comparisonLine(r.Comparison))

	_, err := io.WriteString(w, b.String())
	return err
}

func bar(n, maxCount int) string {
	if maxCount == 0 {
		return ""
	}
	return strings.Repeat("█", n*barWidth/maxCount)
}

func probabilityColor(p float64) *color.Color {
	switch {
	case p >= 75:
		return bad
	case p >= 50:
		return neutral
	default:
		return muted
	}
}

func streakLine(info domain.StreakInfo) string {
	switch info.StreakType {
	case domain.StreakGood:
		return good.Sprintf("%d good days", info.CurrentStreak) + muted.Sprintf(" (best %d)", info.BestGoodStreak)
	case domain.StreakBad:
		return bad.Sprintf("%d bad days", info.CurrentStreak) + muted.Sprintf(" (best good %d)", info.BestGoodStreak)
	default:
		return muted.Sprintf("none (best good %d)", info.BestGoodStreak)
	}
}

func comparisonLine(c domain.PeriodComparison) string {
	if c.Period1.Entries == 0 || c.Period2.Entries == 0 {
		return muted.Sprint("Not enough data to compare.")
	}
	line := fmt.Sprintf("%.2f → %.2f (%+.2f)", c.Period2.AverageSeverity, c.Period1.AverageSeverity, c.Change)
	if c.Improved {
		return good.Sprint(line + " improved")
	}
	if c.Change > 0 {
		return bad.Sprint(line + " worse")
	}
	return neutral.Sprint(line + " unchanged")
}
