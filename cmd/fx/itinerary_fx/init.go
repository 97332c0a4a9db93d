package itinerary_fx

import (
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/fx"

	"slingshot/internal/api/controllers"
	"slingshot/internal/services"
	"slingshot/pkg/utils"
)

var Module = fx.Provide(
	provideResultCache,
	provideItineraryService,
	provideItineraryController,
)

func provideResultCache() *cache.Cache {
	// Identical replans within the hour skip the whole generation loop.
	return cache.New(time.Hour, 2*time.Hour)
}

func provideItineraryService(completion utils.CompletionClientInterface, results *cache.Cache) services.ItineraryServiceInterface {
	return services.NewItineraryService(completion, results)
}

func provideItineraryController(itineraryService services.ItineraryServiceInterface) *controllers.ItineraryController {
	return controllers.NewItineraryController(itineraryService)
}
