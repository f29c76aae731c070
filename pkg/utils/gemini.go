package utils

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"
)

type GeminiGenerator struct {
	client       *genai.Client
	model        string
	maxTokens    int
	finishTokens int
	limiter      *rate.Limiter
	logger       *zap.Logger
}

func NewGeminiGenerator(ctx context.Context, cfg GeneratorConfig, logger *zap.Logger) (*GeminiGenerator, error) {
	model := cfg.Model
	if model == "" {
		model = "gemini-1.5-flash"
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GeminiGenerator{
		client:       client,
		model:        model,
		maxTokens:    cfg.MaxTokens,
		finishTokens: cfg.FinishTokens,
		limiter:      cfg.limiter(),
		logger:       logger,
	}, nil
}

func (g *GeminiGenerator) Close() error {
	return g.client.Close()
}

func (g *GeminiGenerator) newModel(system string, maxTokens int) *genai.GenerativeModel {
	m := g.client.GenerativeModel(g.model)
	m.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}
	m.SetTemperature(0.4)
	if maxTokens > 0 {
		m.SetMaxOutputTokens(int32(maxTokens))
	}
	return m
}

func (g *GeminiGenerator) GenerateItinerary(ctx context.Context, prompt string) (string, error) {
	m := g.newModel(plannerSystemPrompt, g.maxTokens)
	raw, err := g.send(ctx, func() (*genai.GenerateContentResponse, error) {
		return m.GenerateContent(ctx, genai.Text(prompt))
	})
	if err != nil {
		return "", err
	}
	if !LooksTruncated(raw) {
		return raw, nil
	}

	cs := g.newModel(plannerSystemPrompt, g.finishTokens).StartChat()
	cs.History = []*genai.Content{
		{Role: "user", Parts: []genai.Part{genai.Text(prompt)}},
		{Role: "model", Parts: []genai.Part{genai.Text(raw)}},
	}
	extra, err := g.send(ctx, func() (*genai.GenerateContentResponse, error) {
		return cs.SendMessage(ctx, genai.Text(finishPrompt))
	})
	if err != nil {
		g.logger.Debug("finish retry failed, keeping original reply", zap.Error(err))
		return raw, nil
	}
	return joinFinish(raw, extra), nil
}

func (g *GeminiGenerator) ModifyItinerary(ctx context.Context, prompt string) (string, error) {
	m := g.newModel(editorSystemPrompt, g.maxTokens)
	m.ResponseMIMEType = "application/json"
	return g.send(ctx, func() (*genai.GenerateContentResponse, error) {
		return m.GenerateContent(ctx, genai.Text(prompt))
	})
}

func (g *GeminiGenerator) send(ctx context.Context, call func() (*genai.GenerateContentResponse, error)) (string, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return "", err
	}
	resp, err := call()
	if err != nil {
		return "", fmt.Errorf("%w: gemini: %v", ErrUpstream, err)
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("%w: no content generated by Gemini", ErrUpstream)
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	return b.String(), nil
}
