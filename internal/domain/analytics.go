package domain

// TriggerType classifies the factor a pattern was computed for.
// @Description Kind of trigger: food, stress, fungal, sleep, weather, sweating or contact.
type TriggerType string

const (
	TriggerFood     TriggerType = "food"
	TriggerStress   TriggerType = "stress"
	TriggerFungal   TriggerType = "fungal"
	TriggerSleep    TriggerType = "sleep"
	TriggerWeather  TriggerType = "weather"
	TriggerSweating TriggerType = "sweating"
	TriggerContact  TriggerType = "contact"
)

// PatternDetail is one trigger occurrence that was followed by a flare.
type PatternDetail struct {
	TriggerDate  string `json:"trigger_date" example:"2024-03-01"`
	ReactionDate string `json:"reaction_date" example:"2024-03-02"`
	// Days between trigger and reaction
	Delay    int `json:"delay" example:"1"`
	Severity int `json:"severity" example:"4"`
}

// PatternResult summarises how often a trigger was followed by a flare.
// @Description Empirical trigger to flare co-occurrence rate.
type PatternResult struct {
	TriggerLabel       string      `json:"trigger_label" example:"Milch"`
	TriggerType        TriggerType `json:"trigger_type" example:"food"`
	TotalOccurrences   int         `json:"total_occurrences" example:"6"`
	TriggeredReactions int         `json:"triggered_reactions" example:"4"`
	// Percentage 0-100 with one decimal
	Probability float64 `json:"probability" example:"66.7"`
	// At most five matched occurrences
	Details      []PatternDetail `json:"details"`
	IsNickelRich bool            `json:"is_nickel_rich,omitempty"`
}

// FoodCount is a food label with how many days it was eaten.
type FoodCount struct {
	Food  string `json:"food" example:"Brot"`
	Count int    `json:"count" example:"12"`
}

// FoodCorrelation is the average same-day severity for a food.
type FoodCorrelation struct {
	Food            string  `json:"food" example:"Tomaten"`
	Count           int     `json:"count" example:"5"`
	AverageSeverity float64 `json:"average_severity" example:"3.4"`
	Severities      []int   `json:"severities"`
}

// WeeklyAverage is the mean severity over one Monday-based week.
type WeeklyAverage struct {
	WeekStart string  `json:"week_start" example:"2024-03-04"`
	WeekLabel string  `json:"week_label" example:"4.-10. Mar 2024"`
	Average   float64 `json:"average" example:"2.71"`
	Count     int     `json:"count" example:"7"`
}

// StreakType says whether the current streak is made of good or bad days.
type StreakType string

const (
	StreakNone StreakType = "none"
	StreakGood StreakType = "good"
	StreakBad  StreakType = "bad"
)

// StreakInfo describes good/bad day runs.
type StreakInfo struct {
	CurrentStreak  int        `json:"current_streak" example:"3"`
	StreakType     StreakType `json:"streak_type" example:"good"`
	BestGoodStreak int        `json:"best_good_streak" example:"9"`
}

// Statistics is the descriptive summary over a period.
// @Description Aggregate severity statistics for a period.
type Statistics struct {
	TotalEntries         int               `json:"total_entries" example:"30"`
	AverageSeverity      float64           `json:"average_severity" example:"2.63"`
	SeverityDistribution map[int]int       `json:"severity_distribution"`
	GoodDays             int               `json:"good_days" example:"14"`
	BadDays              int               `json:"bad_days" example:"6"`
	TopFoods             []FoodCount       `json:"top_foods"`
	FoodCorrelations     []FoodCorrelation `json:"food_correlations"`
	WeeklyAverages       []WeeklyAverage   `json:"weekly_averages"`
	// Index 0 is Monday, 6 is Sunday
	DayOfWeekAverages   [7]float64     `json:"day_of_week_averages"`
	StreakInfo          StreakInfo     `json:"streak_info"`
	AverageStress       float64        `json:"average_stress" example:"2.4"`
	AverageSleep        float64        `json:"average_sleep" example:"3.1"`
	FungalDays          int            `json:"fungal_days" example:"4"`
	SweatingDays        int            `json:"sweating_days" example:"2"`
	WeatherDistribution map[string]int `json:"weather_distribution"`
}

// SeverityPoint is a severity observed offset days after an onset.
type SeverityPoint struct {
	Offset   int `json:"offset" example:"3"`
	Severity int `json:"severity" example:"4"`
}

// OnsetEvent is one day a fungal infection became active.
type OnsetEvent struct {
	OnsetDate      string          `json:"onset_date" example:"2024-02-10"`
	PeakDelayDays  int             `json:"peak_delay_days" example:"5"`
	PeakSeverity   int             `json:"peak_severity" example:"5"`
	FlareTriggered bool            `json:"flare_triggered" example:"true"`
	Window         []SeverityPoint `json:"window_data"`
}

// FungalAnalysis relates fungal infection onsets to later flares.
// @Description Fungal onset and flare statistics.
type FungalAnalysis struct {
	InsufficientData        bool         `json:"insufficient_data"`
	OnsetEvents             []OnsetEvent `json:"onset_events,omitempty"`
	TotalOnsets             int          `json:"total_onsets"`
	AvgBaselineSeverity     float64      `json:"avg_baseline_severity" example:"2.1"`
	AvgFungalActiveSeverity float64      `json:"avg_fungal_active_severity" example:"3.6"`
	// Null when there were no onsets
	AvgPeakDelayDays *float64 `json:"avg_peak_delay_days"`
	FlareProbability float64  `json:"flare_probability" example:"75"`
}

// StressPattern is one high-stress day followed by a flare.
type StressPattern struct {
	StressDate   string `json:"stress_date"`
	StressLevel  int    `json:"stress_level"`
	ReactionDate string `json:"reaction_date"`
	Delay        int    `json:"delay"`
	Severity     int    `json:"severity"`
}

// StressAnalysis relates stress levels to severity.
// @Description Stress level impact on severity.
type StressAnalysis struct {
	SeverityByLevel            map[int]float64 `json:"stress_severity_by_level"`
	HighStressEvents           int             `json:"high_stress_events"`
	HighStressFlareProbability float64         `json:"high_stress_flare_probability"`
	// Null when undefined (too few pairs or no variance)
	Correlation     *float64        `json:"correlation"`
	DelayedPatterns []StressPattern `json:"delayed_patterns"`
}

// SleepAnalysis relates sleep quality to same-day and next-day severity.
// @Description Sleep quality impact on severity.
type SleepAnalysis struct {
	SameDay            map[int]float64 `json:"same_day"`
	NextDay            map[int]float64 `json:"next_day"`
	Correlation        *float64        `json:"correlation"`
	NextDayCorrelation *float64        `json:"next_day_correlation"`
}

// WeatherImpact is the mean severity for one weather category.
type WeatherImpact struct {
	Weather         string  `json:"weather" example:"humid"`
	AverageSeverity float64 `json:"average_severity" example:"3.25"`
	Count           int     `json:"count" example:"4"`
}

// NickelAnalysis relates the daily count of nickel-rich foods to severity.
// @Description Nickel load statistics.
type NickelAnalysis struct {
	AvgSeverityByNickelLoad    map[int]float64 `json:"avg_severity_by_nickel_load"`
	HighNickelEvents           int             `json:"high_nickel_events"`
	HighNickelFlareProbability float64         `json:"high_nickel_flare_probability"`
	NickelFoodFrequencies      []FoodCount     `json:"nickel_food_frequencies"`
}

// PeriodSummary is the average severity over one date range.
type PeriodSummary struct {
	Start           string  `json:"start" example:"2024-03-01"`
	End             string  `json:"end" example:"2024-03-31"`
	Entries         int     `json:"entries" example:"28"`
	AverageSeverity float64 `json:"average_severity" example:"2.8"`
}

// PeriodComparison compares a recent period against the one before it.
// @Description Recent vs previous period comparison.
type PeriodComparison struct {
	Period1 PeriodSummary `json:"period1"`
	Period2 PeriodSummary `json:"period2"`
	// Period1 average minus Period2 average
	Change   float64 `json:"change" example:"-0.4"`
	Improved bool    `json:"improved" example:"true"`
}
