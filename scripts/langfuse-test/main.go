// Script to check Langfuse connectivity end to end: it loads the insights
// prompt, records a flare-insights trace built from synthetic entries and
// scores it the way the feedback endpoint does.
// Usage: go run scripts/langfuse-test/main.go
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/blaisecz/flare-tracker/internal/analytics"
	"github.com/blaisecz/flare-tracker/internal/config"
	"github.com/blaisecz/flare-tracker/internal/langfuse"
	"github.com/blaisecz/flare-tracker/internal/logger"
	"github.com/blaisecz/flare-tracker/internal/seed"
	"github.com/google/uuid"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.DebugLevel)
	defer func() { _ = log.Sync() }()

	fmt.Println("=== Langfuse Connection Test ===")
	fmt.Printf("Base URL:    %s\n", cfg.LangfuseBaseURL)
	fmt.Printf("Public Key:  %s\n", maskKey(cfg.LangfusePublicKey))
	fmt.Printf("Secret Key:  %s\n", maskKey(cfg.LangfuseSecretKey))
	fmt.Printf("Environment: %s\n", cfg.LangfuseEnv)
	fmt.Println()

	client := langfuse.NewClient(langfuse.Config{
		BaseURL:     cfg.LangfuseBaseURL,
		PublicKey:   cfg.LangfusePublicKey,
		SecretKey:   cfg.LangfuseSecretKey,
		Environment: cfg.LangfuseEnv,
		Logger:      log,
	})
	if !client.IsEnabled() {
		fmt.Fprintln(os.Stderr, "Langfuse client is disabled. Check LANGFUSE_* env vars.")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	prompt, err := langfuse.LoadPrompt(ctx, langfuse.PromptLoaderConfig{
		BaseURL:     cfg.LangfuseBaseURL,
		PublicKey:   cfg.LangfusePublicKey,
		SecretKey:   cfg.LangfuseSecretKey,
		PromptName:  cfg.InsightsPromptName,
		PromptLabel: cfg.InsightsPromptLabel,
		Logger:      log,
	})
	if err != nil {
		fmt.Printf("! Prompt %q not available: %v\n", cfg.InsightsPromptName, err)
	} else {
		fmt.Printf("✓ Prompt %q loaded (%d chars)\n", cfg.InsightsPromptName, len(prompt))
	}

	userID := uuid.New()
	today := time.Now().UTC()
	entries := seed.Generate(userID, today, 30, rand.New(rand.NewSource(today.UnixNano())))
	stats := analytics.CalculateAll(entries)
	triggers := analytics.DetectAllTriggerPatterns(entries, analytics.DefaultPatternOptions())

	traceID, err := client.CreateTrace(ctx, langfuse.TraceInput{
		UserID: userID.String(),
		Name:   "flare-insights",
		Input: map[string]any{
			"statistics": stats,
			"triggers":   triggers,
		},
		Output: map[string]any{"status": "connectivity-check"},
		Tags:   []string{"insights", "test", "manual"},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create trace: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("✓ Test trace created")
	fmt.Printf("  Trace ID: %s\n", traceID)
	fmt.Printf("  View at:  %s/trace/%s\n", cfg.LangfuseBaseURL, traceID)

	if err := client.CreateScore(ctx, langfuse.ScoreInput{
		TraceID: traceID,
		Name:    "user_rating",
		Value:   5,
		Comment: "langfuse-test script",
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to score trace: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("✓ Score attached")
}

func maskKey(key string) string {
	if len(key) < 8 {
		if key == "" {
			return "(empty)"
		}
		return "***"
	}
	return key[:8] + "..."
}
