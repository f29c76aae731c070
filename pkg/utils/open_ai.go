package utils

import (
	"context"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// OpenAIGenerator talks to any OpenAI compatible chat completions API.
// Groq is the default deployment.
type OpenAIGenerator struct {
	client       *openai.Client
	model        string
	maxTokens    int
	finishTokens int
	limiter      *rate.Limiter
	logger       *zap.Logger
}

func NewOpenAIGenerator(cfg GeneratorConfig, logger *zap.Logger) *OpenAIGenerator {
	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}
	if cfg.Timeout > 0 {
		oc.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OpenAIGenerator{
		client:       openai.NewClientWithConfig(oc),
		model:        cfg.Model,
		maxTokens:    cfg.MaxTokens,
		finishTokens: cfg.FinishTokens,
		limiter:      cfg.limiter(),
		logger:       logger,
	}
}

// GenerateItinerary asks for a new itinerary. A reply that looks cut off gets
// one follow-up request to finish it; a failed follow-up keeps the first reply.
func (g *OpenAIGenerator) GenerateItinerary(ctx context.Context, prompt string) (string, error) {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: plannerSystemPrompt},
		{Role: openai.ChatMessageRoleUser, Content: prompt},
	}
	raw, err := g.complete(ctx, messages, g.maxTokens)
	if err != nil {
		return "", err
	}
	if !LooksTruncated(raw) {
		return raw, nil
	}

	messages = append(messages,
		openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: raw},
		openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: finishPrompt},
	)
	extra, err := g.complete(ctx, messages, g.finishTokens)
	if err != nil {
		g.logger.Debug("finish retry failed, keeping original reply", zap.Error(err))
		return raw, nil
	}
	return joinFinish(raw, extra), nil
}

func (g *OpenAIGenerator) ModifyItinerary(ctx context.Context, prompt string) (string, error) {
	return g.complete(ctx, []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: editorSystemPrompt},
		{Role: openai.ChatMessageRoleUser, Content: prompt},
	}, g.maxTokens)
}

func (g *OpenAIGenerator) complete(ctx context.Context, messages []openai.ChatCompletionMessage, maxTokens int) (string, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return "", err
	}
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     g.model,
		Messages:  messages,
		MaxTokens: maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("%w: chat completion: %v", ErrUpstream, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices returned", ErrUpstream)
	}
	return resp.Choices[0].Message.Content, nil
}
