package ai_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"wanderwise/internal/api/controllers"
	"wanderwise/internal/services"
	"wanderwise/pkg/config"
	"wanderwise/pkg/utils"
)

var Module = fx.Provide(
	provideModelClient,
	provideGenerator,
	provideAIController)

func provideModelClient(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (utils.ModelClient, error) {
	logger.Info("initializing model client",
		zap.String("provider", cfg.AIProvider),
		zap.String("model", cfg.AIModel))

	client, err := utils.NewModelClient(cfg.AIProvider, cfg.ModelAPIKey(), cfg.AIModel)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.StopHook(func() error {
		return client.Close()
	}))
	return client, nil
}

func provideGenerator(client utils.ModelClient, logger *zap.Logger) *services.ItineraryGenerator {
	return services.NewItineraryGenerator(client, logger)
}

func provideAIController(
	generator *services.ItineraryGenerator,
	itineraryService services.ItineraryServiceInterface,
) *controllers.AIController {
	return controllers.NewAIController(generator, itineraryService)
}
