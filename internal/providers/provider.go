package providers

import (
	"context"
	"time"

	"github.com/briculinos/voyana/internal/models/travel_models"
)

// FlightQuery is one concrete route/date/traveler combination. Fallback
// widening produces several queries from a single trip request.
type FlightQuery struct {
	OriginCode      string
	DestinationCode string
	DepartureDate   time.Time
	ReturnDate      time.Time
	Adults          int
	Children        int
	MaxResults      int
}

// FlightProvider searches one upstream flight source. Implementations either
// return offers, return an empty slice, or fail with an error; never partial
// or malformed records.
type FlightProvider interface {
	Name() string
	SearchFlights(ctx context.Context, q FlightQuery) ([]travel_models.FlightOffer, error)
}

// LodgingQuery describes a stay to search for.
type LodgingQuery struct {
	Destination string
	CityCode    string
	CheckIn     time.Time
	CheckOut    time.Time
	Nights      int
	Adults      int
	Children    int
	MaxResults  int
}

// LodgingProvider searches one upstream lodging source, same failure contract
// as FlightProvider.
type LodgingProvider interface {
	Name() string
	SearchLodging(ctx context.Context, q LodgingQuery) ([]travel_models.LodgingOffer, error)
}
