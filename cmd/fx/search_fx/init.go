package search_fx

import (
	"log"
	"os"
	"strings"

	"go.uber.org/fx"

	"github.com/briculinos/voyana/internal/providers"
	"github.com/briculinos/voyana/internal/services"
)

var Module = fx.Provide(
	ProvideSearchService,
)

// ProvideSearchService builds both provider chains from environment
// variables. Providers with missing credentials stay in the chain and report
// themselves unavailable, which the fallback logic treats like a failure.
func ProvideSearchService() services.SearchServiceInterface {
	googleFlights := providers.NewGoogleFlightsClient(os.Getenv("SERPAPI_KEY"))
	amadeusFlights := providers.NewAmadeusFlightClient(
		os.Getenv("AMADEUS_API_KEY"), os.Getenv("AMADEUS_API_SECRET"))

	lodgingChain := []providers.LodgingProvider{
		providers.NewHotelbedsClient(
			os.Getenv("HOTELBEDS_API_KEY"), os.Getenv("HOTELBEDS_API_SECRET")),
		providers.NewAmadeusLodgingClient(
			os.Getenv("AMADEUS_API_KEY"), os.Getenv("AMADEUS_API_SECRET")),
		providers.NewBookingClient(os.Getenv("RAPIDAPI_KEY")),
	}

	var mock providers.LodgingProvider
	if strings.ToLower(os.Getenv("DISABLE_MOCK_LODGING")) != "true" {
		mock = providers.NewMockLodgingClient()
	} else {
		log.Printf("Mock lodging fallback disabled")
	}

	return services.NewSearchService(googleFlights, amadeusFlights, lodgingChain, mock)
}
