package langfuse

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/blaisecz/flare-tracker/internal/logger"
	"github.com/codeGROOVE-dev/retry"
)

const (
	promptsPath        = "/api/public/v2/prompts/"
	promptFetchTimeout = 5 * time.Second
	maxPromptErrorBody = 4096
)

// PromptLoaderConfig says where the insights system prompt comes from. The
// Langfuse copy wins; SavePath holds the last fetched copy for offline starts.
type PromptLoaderConfig struct {
	BaseURL   string
	PublicKey string
	SecretKey string

	PromptName  string
	PromptLabel string
	SavePath    string

	HTTPClient *http.Client
	Logger     *logger.Logger
}

var (
	errLangfuseDisabled = errors.New("langfuse integration disabled")
	errNoLocalPrompt    = errors.New("no local prompt file configured")
)

// LoadPrompt returns the named prompt from Langfuse, refreshing the local copy,
// or the local copy when Langfuse is not configured or unreachable.
func LoadPrompt(ctx context.Context, cfg PromptLoaderConfig) (string, error) {
	log := cfg.Logger
	if log == nil {
		log = logger.NewNop()
	}

	if cfg.PromptName == "" {
		return readPromptFile(cfg.SavePath)
	}

	prompt, err := fetchPrompt(ctx, cfg, log)
	switch {
	case err == nil:
		if err := writePromptFile(cfg.SavePath, prompt); err != nil {
			log.Warnw("failed to cache prompt locally", "path", cfg.SavePath, "error", err)
		}
		log.Infow("loaded prompt from langfuse", "prompt", cfg.PromptName, "label", cfg.PromptLabel)
		return prompt, nil
	case errors.Is(err, errLangfuseDisabled):
	default:
		log.Warnw("prompt fetch failed, using local copy", "prompt", cfg.PromptName, "error", err)
	}

	return readPromptFile(cfg.SavePath)
}

func promptURL(cfg PromptLoaderConfig) (string, error) {
	u, err := url.Parse(strings.TrimSuffix(cfg.BaseURL, "/"))
	if err != nil {
		return "", fmt.Errorf("invalid LANGFUSE_BASE_URL: %w", err)
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + promptsPath + url.PathEscape(cfg.PromptName)
	if cfg.PromptLabel != "" {
		q := u.Query()
		q.Set("label", cfg.PromptLabel)
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

// fetchPrompt retries transport failures and 5xx responses; other statuses
// are final.
func fetchPrompt(ctx context.Context, cfg PromptLoaderConfig, log *logger.Logger) (string, error) {
	if cfg.BaseURL == "" || cfg.PublicKey == "" || cfg.SecretKey == "" {
		return "", errLangfuseDisabled
	}
	endpoint, err := promptURL(cfg)
	if err != nil {
		return "", err
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 2 * promptFetchTimeout}
	}

	var prompt string
	err = retry.Do(
		func() error {
			reqCtx, cancel := context.WithTimeout(ctx, promptFetchTimeout)
			defer cancel()

			req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, endpoint, nil)
			if err != nil {
				return retry.Unrecoverable(err)
			}
			req.Header.Set("Accept", "application/json")
			req.SetBasicAuth(cfg.PublicKey, cfg.SecretKey)

			resp, err := client.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				body, _ := io.ReadAll(io.LimitReader(resp.Body, maxPromptErrorBody))
				statusErr := fmt.Errorf("prompt API returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
				if resp.StatusCode >= http.StatusInternalServerError {
					return statusErr
				}
				return retry.Unrecoverable(statusErr)
			}

			prompt, err = decodePrompt(resp.Body)
			if err != nil {
				return retry.Unrecoverable(err)
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(200*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Debugw("retrying prompt fetch", "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("prompt %q is empty", cfg.PromptName)
	}
	return prompt, nil
}

// decodePrompt accepts text prompts and chat prompts, which are flattened.
func decodePrompt(r io.Reader) (string, error) {
	var body struct {
		Type   string          `json:"type"`
		Prompt json.RawMessage `json:"prompt"`
	}
	if err := json.NewDecoder(r).Decode(&body); err != nil {
		return "", fmt.Errorf("decode prompt response: %w", err)
	}

	switch body.Type {
	case "", "text":
		var text string
		if err := json.Unmarshal(body.Prompt, &text); err != nil {
			return "", fmt.Errorf("parse text prompt: %w", err)
		}
		return text, nil
	case "chat":
		var messages []chatPromptMessage
		if err := json.Unmarshal(body.Prompt, &messages); err != nil {
			return "", fmt.Errorf("parse chat prompt: %w", err)
		}
		return flattenChatMessages(messages), nil
	default:
		return "", fmt.Errorf("unsupported prompt type %q", body.Type)
	}
}

type chatPromptMessage struct {
	Type    string `json:"type"`
	Role    string `json:"role"`
	Content string `json:"content"`
	Name    string `json:"name"`
}

// flattenChatMessages joins messages as "ROLE: content" blocks. Placeholders
// become {{name}} so they survive into the system prompt.
func flattenChatMessages(messages []chatPromptMessage) string {
	parts := make([]string, 0, len(messages))
	for _, msg := range messages {
		content := msg.Content
		if msg.Type == "placeholder" {
			content = ""
			if msg.Name != "" {
				content = "{{" + msg.Name + "}}"
			}
		}
		if content == "" {
			continue
		}
		role := msg.Role
		if role == "" {
			role = "message"
		}
		parts = append(parts, strings.ToUpper(role)+": "+content)
	}
	return strings.Join(parts, "\n\n")
}

func readPromptFile(path string) (string, error) {
	if path == "" {
		return "", errNoLocalPrompt
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read local prompt file: %w", err)
	}
	return string(data), nil
}

func writePromptFile(path, prompt string) error {
	if path == "" {
		return nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, []byte(prompt), 0o600)
}
