package itinerary_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"wayplan/internal/repositories"
	"wayplan/internal/services"
	"wayplan/pkg/utils"
)

var Module = fx.Provide(
	provideItineraryRepo,
	services.NewRequestValidator,
	services.NewDocumentValidator,
	provideItineraryService)

func provideItineraryRepo(db *gorm.DB) repositories.ItineraryRepository {
	return repositories.NewItineraryRepository(db)
}

func provideItineraryService(
	repo repositories.ItineraryRepository,
	generator utils.GenerationClientInterface,
	enricher utils.EnrichmentClientInterface,
	documents *services.DocumentValidator,
	logger *zap.Logger,
) services.ItineraryServiceInterface {
	return services.NewItineraryService(repo, generator, enricher, documents, logger)
}
