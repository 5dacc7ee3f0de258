package process

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ewintr.nl/yt2blog/apperr"
	"github.com/sashabaranov/go-openai"
	"golang.org/x/exp/slog"
)

const (
	DefaultBaseURL     = "https://api.deepseek.com/v1"
	DefaultModel       = "deepseek-chat"
	DefaultTimeout     = 60 * time.Second
	DefaultMaxTokens   = 4000
	DefaultTemperature = 0.7
)

type ClientConfig struct {
	APIKey           string
	BaseURL          string
	Model            string
	Timeout          time.Duration
	MaxTokens        int
	Temperature      float32
	FrequencyPenalty float32
	PresencePenalty  float32
}

// OpenAIClient talks to any chat completion service that speaks the OpenAI
// protocol. DeepSeek is the default.
type OpenAIClient struct {
	client *openai.Client
	config ClientConfig
	logger *slog.Logger
}

func NewOpenAIClient(config ClientConfig, logger *slog.Logger) *OpenAIClient {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Model == "" {
		config.Model = DefaultModel
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}
	if config.MaxTokens <= 0 {
		config.MaxTokens = DefaultMaxTokens
	}

	oaConfig := openai.DefaultConfig(config.APIKey)
	oaConfig.BaseURL = strings.TrimSuffix(config.BaseURL, "/")

	return &OpenAIClient{
		client: openai.NewClientWithConfig(oaConfig),
		config: config,
		logger: logger,
	}
}

func (oc *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	if oc.config.APIKey == "" {
		return "", apperr.NewAuthentication("no api key configured for the generation service")
	}

	ctx, cancel := context.WithTimeout(ctx, oc.config.Timeout)
	defer cancel()

	start := time.Now()
	resp, err := oc.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: oc.config.Model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: SystemMessage,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature:      oc.config.Temperature,
			MaxTokens:        oc.config.MaxTokens,
			FrequencyPenalty: oc.config.FrequencyPenalty,
			PresencePenalty:  oc.config.PresencePenalty,
		})
	if err != nil {
		return "", completionError(err)
	}
	if len(resp.Choices) == 0 {
		return "", apperr.NewUpstream(0, "generation service returned no choices", nil)
	}
	oc.logger.Info("received completion", slog.String("model", oc.config.Model), slog.Int("tokens", resp.Usage.TotalTokens), slog.Duration("duration", time.Since(start)))

	return resp.Choices[0].Message.Content, nil
}

// completionError maps a failed call to an error kind. Every non 2xx answer,
// a rejected key included, is an upstream error with the upstream status.
func completionError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apperr.NewUpstream(apiErr.HTTPStatusCode, fmt.Sprintf("generation service error: %s", apiErr.Message), err)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return apperr.NewUpstream(reqErr.HTTPStatusCode, "generation service request failed", err)
	}

	return apperr.NewTransport("generation service", err)
}
