package domain

// LLMInsightsOutput contains the structured output from the LLM.
// @Description LLM-generated flare insights.
type LLMInsightsOutput struct {
	// Summary of recent skin condition (2-3 sentences)
	Summary string `json:"summary" example:"Your skin has been calmer over the last two weeks..."`
	// Observations about patterns (3-6 items)
	Observations []string `json:"observations" example:"[\"Flares followed high-stress days in 4 of 6 cases\"]"`
	// Actionable guidance (3-5 items)
	Guidance []string `json:"guidance" example:"[\"Keep logging sleep quality to confirm the pattern\"]"`
}

// InsightsContext is the context object sent to the LLM.
// @Description Context data for LLM insights generation.
type InsightsContext struct {
	Recent   Statistics       `json:"recent"`
	History  Statistics       `json:"history"`
	Triggers []PatternResult  `json:"triggers"`
	Fungal   *FungalAnalysis  `json:"fungal,omitempty"`
	Stress   *StressAnalysis  `json:"stress,omitempty"`
	Sleep    *SleepAnalysis   `json:"sleep,omitempty"`
	Weather  []WeatherImpact  `json:"weather,omitempty"`
	Nickel   NickelAnalysis   `json:"nickel"`
	Compare  PeriodComparison `json:"compare"`
}

// InsightsResponse is the response for the insights endpoint.
// @Description Complete flare insights response.
type InsightsResponse struct {
	// Statistics for the recent window
	Statistics Statistics `json:"statistics"`
	// Highest-probability triggers
	TopTriggers []PatternResult `json:"top_triggers"`
	// LLM-generated insights
	Insights LLMInsightsOutput `json:"insights"`
	// Trace ID for feedback (optional, only present when tracing is enabled)
	TraceID string `json:"trace_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
}
