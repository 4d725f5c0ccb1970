package prompt_fx

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"wayplan/internal/infra"
	"wayplan/pkg/utils"
)

var Module = fx.Provide(
	ProvideGenerationClient,
	ProvideEnrichmentClient)

// ProvideGenerationClient creates the generation client for the configured
// provider. It returns a nil interface when no credential is set, which puts
// every request on the fallback path.
func ProvideGenerationClient(lc fx.Lifecycle, cfg *infra.Config, logger *zap.Logger) (utils.GenerationClientInterface, error) {
	gen := cfg.Generation
	if gen.APIKey() == "" {
		logger.Warn("no generation credential configured, itineraries will use fallback data",
			zap.String("provider", gen.Provider))
		return nil, nil
	}

	switch strings.ToLower(gen.Provider) {
	case "openai":
		logger.Info("initializing openai generation client", zap.String("model", gen.OpenAIModel))
		return utils.NewOpenAIGenerationClient(gen.OpenAIAPIKey, gen.OpenAIURL, gen.OpenAIModel, gen.Timeout, logger), nil
	case "gemini":
		logger.Info("initializing gemini generation client", zap.String("model", gen.GeminiModel))
		client, err := utils.NewGeminiGenerationClient(gen.GeminiAPIKey, gen.GeminiModel, gen.Timeout, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return client.Close()
			},
		})
		return client, nil
	default:
		return nil, fmt.Errorf("unsupported generation provider: %s. Use 'openai' or 'gemini'", gen.Provider)
	}
}

// ProvideEnrichmentClient returns a nil interface when PERPLEXITY_API_KEY is unset.
func ProvideEnrichmentClient(cfg *infra.Config, logger *zap.Logger) utils.EnrichmentClientInterface {
	enr := cfg.Enrichment
	if enr.APIKey == "" {
		logger.Info("no enrichment credential configured, prompts will not include real-time data")
		return nil
	}

	logger.Info("initializing perplexity enrichment client", zap.String("model", enr.Model))
	return utils.NewPerplexityEnrichmentClient(enr.APIKey, enr.BaseURL, enr.Model, enr.Timeout, logger)
}
