package itinerary_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"wanderwise/internal/api/controllers"
	"wanderwise/internal/repositories"
	"wanderwise/internal/services"
)

var Module = fx.Provide(
	provideItineraryRepo,
	provideItineraryService,
	provideItineraryController)

func provideItineraryRepo(db *gorm.DB) repositories.ItineraryRepository {
	return repositories.NewItineraryRepository(db)
}

func provideItineraryService(itineraryRepo repositories.ItineraryRepository, logger *zap.Logger) services.ItineraryServiceInterface {
	return services.NewItineraryService(itineraryRepo, logger)
}

func provideItineraryController(itineraryService services.ItineraryServiceInterface) *controllers.ItineraryController {
	return controllers.NewItineraryController(itineraryService)
}
