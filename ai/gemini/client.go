package gemini

import (
	"TechAssist/internal/config"
	"TechAssist/internal/lib/sl"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"
)

// Client talks to Gemini through its OpenAI-compatible endpoint. Every call
// is stateless, no conversation state lives on the provider side.
type Client struct {
	client    *openai.Client
	model     string
	maxTokens int
	policy    RetryPolicy
	sleep     Sleeper
	log       *slog.Logger
}

func NewClient(conf *config.Config, logger *slog.Logger) *Client {
	cfg := openai.DefaultConfig(conf.Gemini.ApiKey)
	cfg.BaseURL = conf.Gemini.BaseURL
	cfg.HTTPClient = &http.Client{
		Timeout: time.Duration(conf.Gemini.Timeout) * time.Second,
	}

	policy := DefaultRetryPolicy()
	if conf.Gemini.Attempts > 0 {
		policy.MaxAttempts = conf.Gemini.Attempts
	}

	return &Client{
		client:    openai.NewClientWithConfig(cfg),
		model:     conf.Gemini.Model,
		maxTokens: conf.Gemini.MaxTokens,
		policy:    policy,
		log:       logger.With(sl.Module("gemini")),
	}
}

// SetRetryHook registers a callback fired on every repeated attempt.
func (c *Client) SetRetryHook(hook func()) {
	c.policy.OnRetry = hook
}

// Generate sends one system+user prompt pair and returns the text of the
// first choice. Overloaded responses are retried per the client policy.
func (c *Client) Generate(ctx context.Context, system, user string) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if system != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: system,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: user,
	})

	var text string
	err := c.policy.Do(ctx, c.sleep, func() error {
		started := time.Now()
		resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:     c.model,
			Messages:  messages,
			MaxTokens: c.maxTokens,
		})
		if err != nil {
			provErr := classify(err)
			c.log.Warn("model call failed",
				slog.String("kind", string(provErr.Kind)),
				slog.Int("status", provErr.Status),
			)
			return provErr
		}
		if len(resp.Choices) == 0 {
			return &ProviderError{Kind: KindUnknown, Message: "empty choice list"}
		}
		text = resp.Choices[0].Message.Content
		c.log.Debug("model call done",
			slog.Duration("took", time.Since(started)),
			slog.Int("prompt_tokens", resp.Usage.PromptTokens),
			slog.Int("completion_tokens", resp.Usage.CompletionTokens),
		)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}
	return text, nil
}
