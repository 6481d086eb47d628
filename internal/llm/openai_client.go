package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/blaisecz/flare-tracker/internal/domain"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

var (
	// ErrOpenAIUnavailable indicates the OpenAI service is not configured or unavailable.
	ErrOpenAIUnavailable = errors.New("OpenAI service unavailable")
	// ErrOpenAIRequest indicates an error during the OpenAI API request.
	ErrOpenAIRequest = errors.New("OpenAI request failed")
	// ErrOpenAIResponse indicates an error parsing the OpenAI response.
	ErrOpenAIResponse = errors.New("failed to parse OpenAI response")
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gpt-4o-mini"

// DefaultSystemPrompt is used when no prompt could be loaded from Langfuse or disk.
const DefaultSystemPrompt = `You are a non-medical skin diary assistant.

You receive aggregated statistics from a user's daily skin diary: symptom severity (1 = very good, 5 = very bad), foods, stress, sleep quality, weather, sweating, contact exposures and fungal infection days. You must base your conclusions only on the provided data.

Your goals:
- Describe how the user's skin has been recently in clear, neutral language.
- Point out which recorded factors were most often followed by flares (severity 4 or higher).
- Compare the recent period with the longer history.
- Give practical suggestions for what to keep logging or to try avoiding for a while to confirm a pattern.

Rules:
- Do NOT provide medical advice or diagnoses.
- Trigger percentages are co-occurrence rates, not proof of cause. Say so when you rely on them.
- Do not recommend medication, supplements or treatments.
- If data is limited (few entries, few occurrences), say that explicitly.
- Be concise and concrete.

You must respond as strict JSON with exactly this shape:

{
  "summary": "2-3 sentences summarizing the recent period compared to the longer history.",
  "observations": [
    "3-6 bullet points about trigger patterns, streaks and weekly trends."
  ],
  "guidance": [
    "3-5 concrete, non-medical suggestions tailored to these numbers."
  ]
}

No extra fields. No comments. No backticks.`

const userPromptTemplate = `Here is JSON describing this user's skin diary.

- "recent" and "history" contain statistics for the last 7 and 30 days.
- "triggers" lists factors with the share of occurrences that were followed by a flare within the lag window.
- "fungal", "stress", "sleep" and "weather" are only present when the user tracks them.
- "nickel" relates the number of nickel-rich foods per day to severity.
- "compare" contrasts the recent period with the one before it.

JSON:

%s

Based on this data, respond in the required JSON format.`

// InsightsLLM is the interface for generating flare insights using an LLM.
type InsightsLLM interface {
	// GenerateInsights takes a context object and returns LLM-generated insights.
	GenerateInsights(ctx context.Context, insightsCtx *domain.InsightsContext) (*domain.LLMInsightsOutput, error)
}

// OpenAIClient implements InsightsLLM using the OpenAI API.
type OpenAIClient struct {
	client       openai.Client
	model        string
	systemPrompt string
}

// Option configures an OpenAIClient.
type Option func(*OpenAIClient)

// WithSystemPrompt replaces the built-in system prompt. Blank prompts are ignored.
func WithSystemPrompt(prompt string) Option {
	return func(c *OpenAIClient) {
		if strings.TrimSpace(prompt) != "" {
			c.systemPrompt = prompt
		}
	}
}

// NewOpenAIClient creates a new OpenAI client for generating insights.
// Returns nil if apiKey is empty.
func NewOpenAIClient(apiKey, model string, opts ...Option) *OpenAIClient {
	if apiKey == "" {
		return nil
	}

	if model == "" {
		model = DefaultModel
	}

	c := &OpenAIClient{
		client:       openai.NewClient(option.WithAPIKey(apiKey)),
		model:        model,
		systemPrompt: DefaultSystemPrompt,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GenerateInsights calls OpenAI to generate flare insights.
func (c *OpenAIClient) GenerateInsights(ctx context.Context, insightsCtx *domain.InsightsContext) (*domain.LLMInsightsOutput, error) {
	if c == nil {
		return nil, ErrOpenAIUnavailable
	}

	userPrompt, err := BuildUserPrompt(insightsCtx)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(c.systemPrompt),
			openai.UserMessage(userPrompt),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenAIRequest, err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices in response", ErrOpenAIResponse)
	}

	return ParseOutput(resp.Choices[0].Message.Content)
}

// BuildUserPrompt renders the insights context into the user message.
func BuildUserPrompt(insightsCtx *domain.InsightsContext) (string, error) {
	contextJSON, err := json.MarshalIndent(insightsCtx, "", "  ")
	if err != nil {
		return "", fmt.Errorf("%w: failed to serialize context: %v", ErrOpenAIRequest, err)
	}
	return fmt.Sprintf(userPromptTemplate, string(contextJSON)), nil
}

// ParseOutput decodes the model's JSON answer. Models sometimes wrap JSON in a
// markdown fence despite the instructions, so a surrounding fence is stripped.
func ParseOutput(content string) (*domain.LLMInsightsOutput, error) {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	}

	var output domain.LLMInsightsOutput
	if err := json.Unmarshal([]byte(content), &output); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenAIResponse, err)
	}
	if output.Summary == "" {
		return nil, fmt.Errorf("%w: empty summary", ErrOpenAIResponse)
	}
	if output.Observations == nil {
		output.Observations = []string{}
	}
	if output.Guidance == nil {
		output.Guidance = []string{}
	}
	return &output, nil
}
