package providers

import (
	"context"
	"fmt"

	"github.com/briculinos/voyana/internal/models/travel_models"
)

// MockLodgingClient is the last resort of the lodging chain. It emits a small
// deterministic set derived only from query fields, so repeated calls for the
// same trip produce identical offers.
type MockLodgingClient struct{}

func NewMockLodgingClient() *MockLodgingClient { return &MockLodgingClient{} }

func (c *MockLodgingClient) Name() string { return "mock" }

type mockTemplate struct {
	nameFmt    string
	kind       string
	nightly    float64
	rating     float64
	reviews    int
	distanceKM float64
	roomType   string
	amenities  []string
}

var mockTemplates = []mockTemplate{
	{
		nameFmt:    "Grand %s Hotel",
		kind:       "hotel",
		nightly:    240,
		rating:     4.7,
		reviews:    1240,
		distanceKM: 0.8,
		roomType:   "Deluxe Double",
		amenities:  []string{"Spa", "Pool", "Restaurant", "Concierge", "WiFi"},
	},
	{
		nameFmt:    "%s Central Apartments",
		kind:       "apartment",
		nightly:    130,
		rating:     4.3,
		reviews:    560,
		distanceKM: 1.2,
		roomType:   "One Bedroom Apartment",
		amenities:  []string{"Kitchen", "WiFi", "Washing Machine"},
	},
	{
		nameFmt:    "Budget Inn %s",
		kind:       "hotel",
		nightly:    68,
		rating:     3.9,
		reviews:    890,
		distanceKM: 3.4,
		roomType:   "Standard Twin",
		amenities:  []string{"WiFi", "24h Reception"},
	},
	{
		nameFmt:    "%s Family Resort",
		kind:       "resort",
		nightly:    185,
		rating:     4.5,
		reviews:    2100,
		distanceKM: 5.1,
		roomType:   "Family Room",
		amenities:  []string{"Kids Club", "Pool", "Playground", "Family Room", "Restaurant"},
	},
	{
		nameFmt:    "Boutique Casa %s",
		kind:       "guesthouse",
		nightly:    155,
		rating:     4.8,
		reviews:    310,
		distanceKM: 0.5,
		roomType:   "Queen Room",
		amenities:  []string{"WiFi", "Breakfast", "Terrace"},
	},
}

func (c *MockLodgingClient) SearchLodging(_ context.Context, q LodgingQuery) ([]travel_models.LodgingOffer, error) {
	nights := q.Nights
	if nights < 1 {
		nights = 1
	}

	offers := make([]travel_models.LodgingOffer, 0, len(mockTemplates))
	for _, t := range mockTemplates {
		rating := t.rating
		reviews := t.reviews
		distance := t.distanceKM
		offers = append(offers, travel_models.LodgingOffer{
			Name:               fmt.Sprintf(t.nameFmt, q.Destination),
			Type:               t.kind,
			City:               q.Destination,
			PricePerNight:      t.nightly,
			TotalPrice:         t.nightly * float64(nights),
			Currency:           "EUR",
			Rating:             &rating,
			ReviewCount:        &reviews,
			Amenities:          append([]string(nil), t.amenities...),
			RoomType:           t.roomType,
			DistanceToCenterKM: &distance,
			CheckIn:            q.CheckIn,
			CheckOut:           q.CheckOut,
			Source:             c.Name(),
		})
		if q.MaxResults > 0 && len(offers) >= q.MaxResults {
			break
		}
	}
	return offers, nil
}
