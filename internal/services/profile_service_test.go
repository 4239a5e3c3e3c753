package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/briculinos/voyana/internal/models/travel_models"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestDeriveProfileBudgetConsciousness(t *testing.T) {
	// 1400 EUR / 2 travelers / 10 days = 70 per person per day.
	tight := &travel_models.TripRequest{
		NumAdults:    2,
		DurationDays: intPtr(10),
		TotalBudget:  floatPtr(1400),
	}
	assert.Equal(t, travel_models.TierHigh, DeriveProfile(tight).BudgetConsciousness)

	// 8000 EUR / 2 / 10 = 400 per person per day.
	loose := &travel_models.TripRequest{
		NumAdults:    2,
		DurationDays: intPtr(10),
		TotalBudget:  floatPtr(8000),
	}
	assert.Equal(t, travel_models.TierLow, DeriveProfile(loose).BudgetConsciousness)

	// 4000 EUR / 2 / 10 = 200, in between.
	mid := &travel_models.TripRequest{
		NumAdults:    2,
		DurationDays: intPtr(10),
		TotalBudget:  floatPtr(4000),
	}
	assert.Equal(t, travel_models.TierModerate, DeriveProfile(mid).BudgetConsciousness)

	// No budget keeps the neutral default.
	assert.Equal(t, travel_models.TierModerate,
		DeriveProfile(&travel_models.TripRequest{NumAdults: 2}).BudgetConsciousness)
}

func TestDeriveProfileStyleAndFamily(t *testing.T) {
	luxury := DeriveProfile(&travel_models.TripRequest{TravelStyle: travel_models.StyleLuxury})
	assert.Equal(t, travel_models.TierHigh, luxury.ComfortLevel)

	adventure := DeriveProfile(&travel_models.TripRequest{TravelStyle: travel_models.StyleAdventure})
	assert.Equal(t, travel_models.TierLow, adventure.ComfortLevel)

	packed := DeriveProfile(&travel_models.TripRequest{TravelStyle: travel_models.StylePacked})
	assert.Equal(t, travel_models.TierHigh, packed.TimeSensitivity)

	family := DeriveProfile(&travel_models.TripRequest{NumAdults: 2, NumChildren: 2})
	assert.True(t, family.FamilyFriendly)
	assert.False(t, luxury.FamilyFriendly)
}

func TestRerankFlightsTimeSensitivityPrefersNonstop(t *testing.T) {
	req := &travel_models.TripRequest{Destination: "Rome", NumAdults: 2}
	profile := *travel_models.NeutralProfile()
	profile.TimeSensitivity = travel_models.TierHigh

	offers := []travel_models.FlightOffer{
		flightOffer(300, 600, 2),
		flightOffer(320, 300, 0),
		flightOffer(310, 400, 1),
	}

	ranked := rerankFlights(offers, req, profile)
	require.Len(t, ranked, 3)
	assert.Equal(t, 0, ranked[0].NumberOfStops)
	assert.Equal(t, 1, ranked[1].NumberOfStops)
	assert.Equal(t, 2, ranked[2].NumberOfStops)
}

func TestRerankFlightsCapsAtEight(t *testing.T) {
	req := &travel_models.TripRequest{Destination: "Rome"}
	profile := *travel_models.NeutralProfile()

	var offers []travel_models.FlightOffer
	for i := 0; i < 12; i++ {
		offers = append(offers, flightOffer(float64(200+i), 300, 0))
	}
	assert.Len(t, rerankFlights(offers, req, profile), 8)
}

func TestFlightPreferenceScoreStaysInUnitRange(t *testing.T) {
	req := &travel_models.TripRequest{TotalBudget: floatPtr(10000)}
	profile := *travel_models.NeutralProfile()
	profile.TimeSensitivity = travel_models.TierHigh
	profile.BudgetConsciousness = travel_models.TierHigh
	profile.ComfortLevel = travel_models.TierHigh
	profile.PreferredAirlines = []string{"SAS"}

	offer := flightOffer(10, 120, 0)
	offer.OutboundSegments[0].BookingClass = "business"
	offer.OutboundSegments[0].Carrier = "SAS"

	score := flightPreferenceScore(offer, req, profile)
	assert.LessOrEqual(t, score, 1.0)
	assert.GreaterOrEqual(t, score, 0.0)
}

func TestReselectDiverseEnforcesBothCaps(t *testing.T) {
	var ranked []travel_models.LodgingOffer
	// 10 cheap hotels would bust both the bucket cap and the type cap.
	for i := 0; i < 10; i++ {
		ranked = append(ranked, lodgingOffer(fmt.Sprintf("hotel-%d", i), 80, 10))
	}
	for i := 0; i < 6; i++ {
		o := lodgingOffer(fmt.Sprintf("apt-%d", i), 150, 10)
		o.Type = "apartment"
		ranked = append(ranked, o)
	}

	out := reselectDiverse(ranked)
	require.LessOrEqual(t, len(out), maxRankedStays)

	firstPass := out[:6] // 3 hotels + 3 apartments survive the capped walk
	hotels := 0
	for _, o := range firstPass {
		if o.Type == "hotel" {
			hotels++
		}
	}
	assert.Equal(t, 3, hotels)
	// Remaining slots are topped up from the ranked tail.
	assert.Len(t, out, maxRankedStays)
}

func TestRerankLodgingFamilyAmenities(t *testing.T) {
	req := &travel_models.TripRequest{NumAdults: 2, NumChildren: 2}
	profile := DeriveProfile(req)

	plain := lodgingOffer("Plain Hotel", 120, 10)
	family := lodgingOffer("Family Resort", 120, 10)
	family.Amenities = []string{"Kids Club", "Pool"}

	ranked := rerankLodging([]travel_models.LodgingOffer{plain, family}, req, profile)
	require.Len(t, ranked, 2)
	assert.Equal(t, "Family Resort", ranked[0].Name)
}
