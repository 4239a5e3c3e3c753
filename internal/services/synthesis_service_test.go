package services

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/briculinos/voyana/internal/models/travel_models"
)

func synthesisContext() travel_models.PlanningContext {
	req := &travel_models.TripRequest{
		Destination:  "Rome",
		NumAdults:    2,
		DurationDays: intPtr(10),
	}
	pctx := travel_models.NewPlanningContext(req)
	pctx.FlightOptions = []travel_models.FlightOffer{
		flightOffer(450, 700, 1),
		flightOffer(300, 900, 2),
		flightOffer(600, 320, 0),
	}
	pctx.LodgingOptions = []travel_models.LodgingOffer{
		lodgingOffer("Budget Inn", 70, 10),
		lodgingOffer("Central Apartments", 140, 10),
		lodgingOffer("Grand Hotel", 260, 10),
	}
	return pctx
}

func TestSynthesizeBuildsThreeArchetypes(t *testing.T) {
	out := NewSynthesisService().Synthesize(context.Background(), synthesisContext())
	require.Len(t, out.Itineraries, 3)
	assert.Equal(t, travel_models.StageSynthesized, out.Stage)

	budget, balanced, premium := out.Itineraries[0], out.Itineraries[1], out.Itineraries[2]

	assert.Equal(t, "Budget Option - Rome", budget.Title)
	assert.Equal(t, "Budget", budget.StyleTag)
	assert.Equal(t, 300.0, budget.Flights.TotalPrice)
	require.Len(t, budget.Accommodations, 1)
	assert.Equal(t, "Budget Inn", budget.Accommodations[0].Name)

	assert.Equal(t, "Balanced Family", balanced.StyleTag)
	assert.Equal(t, "Central Apartments", balanced.Accommodations[0].Name)

	assert.Equal(t, "Luxury Option - Rome", premium.Title)
	assert.Equal(t, 0, premium.Flights.NumberOfStops)
	assert.Equal(t, "Grand Hotel", premium.Accommodations[0].Name)
}

func TestSynthesizeCostBreakdownSumsUp(t *testing.T) {
	out := NewSynthesisService().Synthesize(context.Background(), synthesisContext())
	require.NotEmpty(t, out.Itineraries)

	budget := out.Itineraries[0]
	// 10 days * 40 EUR * 2 travelers.
	assert.Equal(t, 800.0, budget.EstimatedFoodCost)
	assert.Equal(t, 0.0, budget.ActivitiesCost)
	assert.Equal(t,
		budget.FlightCost+budget.AccommodationCost+budget.ActivitiesCost+budget.EstimatedFoodCost,
		budget.TotalCost)

	premium := out.Itineraries[2]
	assert.Equal(t, 2000.0, premium.EstimatedFoodCost)
}

func TestSynthesizeBalancedWithTwoStaysPicksCheaper(t *testing.T) {
	pctx := synthesisContext()
	pctx.LodgingOptions = []travel_models.LodgingOffer{
		lodgingOffer("Mid Hotel", 220, 10),
		lodgingOffer("Cheap Hotel", 80, 10),
	}

	out := NewSynthesisService().Synthesize(context.Background(), pctx)
	require.Len(t, out.Itineraries, 3)
	balanced := out.Itineraries[1]
	assert.Equal(t, "Cheap Hotel", balanced.Accommodations[0].Name)
}

func TestSynthesizeBalancedHandlesManyStopFlights(t *testing.T) {
	pctx := synthesisContext()
	pctx.FlightOptions = append(pctx.FlightOptions, flightOffer(150, 1400, 3))

	out := NewSynthesisService().Synthesize(context.Background(), pctx)
	require.Len(t, out.Itineraries, 3)

	balanced := out.Itineraries[1]
	assert.False(t, math.IsInf(balancedKey(pctx.FlightOptions[3]), 0))
	assert.Greater(t, balancedKey(pctx.FlightOptions[3]), 0.0)
	assert.Greater(t, balanced.Flights.TotalPrice, 0.0)
	assert.Equal(t,
		balanced.FlightCost+balanced.AccommodationCost+balanced.ActivitiesCost+balanced.EstimatedFoodCost,
		balanced.TotalCost)
}

func TestSynthesizeSkipsArchetypesWithoutBothPools(t *testing.T) {
	pctx := synthesisContext()
	pctx.FlightOptions = nil

	out := NewSynthesisService().Synthesize(context.Background(), pctx)
	assert.Empty(t, out.Itineraries)
}
