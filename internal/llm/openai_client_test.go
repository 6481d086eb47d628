package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/blaisecz/flare-tracker/internal/domain"
)

func TestNewOpenAIClient_EmptyKey(t *testing.T) {
	if c := NewOpenAIClient("", ""); c != nil {
		t.Error("expected nil client without API key")
	}
}

func TestNewOpenAIClient_Options(t *testing.T) {
	c := NewOpenAIClient("sk-test", "")
	if c.model != DefaultModel {
		t.Errorf("model = %q, want %q", c.model, DefaultModel)
	}
	if c.systemPrompt != DefaultSystemPrompt {
		t.Error("expected default system prompt")
	}

	c = NewOpenAIClient("sk-test", "gpt-4.1", WithSystemPrompt("custom"))
	if c.model != "gpt-4.1" || c.systemPrompt != "custom" {
		t.Errorf("got model %q prompt %q", c.model, c.systemPrompt)
	}

	c = NewOpenAIClient("sk-test", "", WithSystemPrompt("   "))
	if c.systemPrompt != DefaultSystemPrompt {
		t.Error("blank prompt should keep the default")
	}
}

func TestGenerateInsights_NilClient(t *testing.T) {
	var c *OpenAIClient
	_, err := c.GenerateInsights(context.Background(), &domain.InsightsContext{})
	if !errors.Is(err, ErrOpenAIUnavailable) {
		t.Errorf("expected ErrOpenAIUnavailable, got %v", err)
	}
}

func TestBuildUserPrompt(t *testing.T) {
	prompt, err := BuildUserPrompt(&domain.InsightsContext{
		Triggers: []domain.PatternResult{{TriggerLabel: "Milch", TriggerType: domain.TriggerFood, Probability: 75}},
	})
	if err != nil {
		t.Fatalf("BuildUserPrompt: %v", err)
	}
	if !strings.Contains(prompt, `"trigger_label": "Milch"`) {
		t.Errorf("prompt does not contain the trigger: %s", prompt)
	}
}

func TestParseOutput(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{"plain", `{"summary":"Calm week.","observations":["a"],"guidance":["b"]}`, false},
		{"fenced", "```json\n{\"summary\":\"Calm week.\"}\n```", false},
		{"not json", "Your skin looks fine.", true},
		{"empty summary", `{"summary":""}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := ParseOutput(tt.content)
			if tt.wantErr {
				if !errors.Is(err, ErrOpenAIResponse) {
					t.Errorf("expected ErrOpenAIResponse, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out.Summary != "Calm week." {
				t.Errorf("summary = %q", out.Summary)
			}
			if out.Observations == nil || out.Guidance == nil {
				t.Error("expected non-nil slices")
			}
		})
	}
}
