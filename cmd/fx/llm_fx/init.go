package llm_fx

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"novatrip/internal/config"
	"novatrip/pkg/utils"
)

var Module = fx.Provide(
	ProvideItineraryGenerator)

// ProvideItineraryGenerator picks the generator named by LLM_PROVIDER. A
// provider without an API key falls back to the mock generator.
func ProvideItineraryGenerator(lc fx.Lifecycle, cfg config.Config, logger *zap.Logger) (utils.ItineraryGenerator, error) {
	llm := cfg.LLM
	provider := llm.EffectiveProvider()
	if provider != llm.Provider {
		logger.Warn("no API key configured, using mock itinerary generator", zap.String("provider", llm.Provider))
	}
	logger.Info("initializing itinerary generator", zap.String("provider", provider), zap.String("model", llm.Model))

	genCfg := utils.GeneratorConfig{
		APIKey:            llm.APIKey,
		BaseURL:           llm.BaseURL,
		Model:             llm.Model,
		MaxTokens:         llm.MaxTokens,
		FinishTokens:      llm.FinishTokens,
		RequestsPerSecond: llm.RequestsPerSecond,
		Timeout:           llm.Timeout,
	}

	switch provider {
	case config.ProviderMock:
		return utils.NewMockGenerator(), nil
	case config.ProviderGroq, config.ProviderOpenAI:
		return utils.NewOpenAIGenerator(genCfg, logger), nil
	case config.ProviderGemini:
		genCfg.APIKey = llm.GeminiAPIKey
		client, err := utils.NewGeminiGenerator(context.Background(), genCfg, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error { return client.Close() },
		})
		return client, nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s. Use 'groq', 'openai', 'gemini' or 'mock'", llm.Provider)
	}
}
