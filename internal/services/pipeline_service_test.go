package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/briculinos/voyana/internal/models/request_models"
	"github.com/briculinos/voyana/internal/models/response_models"
	"github.com/briculinos/voyana/internal/models/travel_models"
	"github.com/briculinos/voyana/internal/providers"
)

type stubFlightProvider struct {
	name   string
	offers []travel_models.FlightOffer
	err    error
	calls  int
}

func (s *stubFlightProvider) Name() string { return s.name }

func (s *stubFlightProvider) SearchFlights(_ context.Context, _ providers.FlightQuery) ([]travel_models.FlightOffer, error) {
	s.calls++
	return s.offers, s.err
}

type stubLodgingProvider struct {
	name   string
	offers []travel_models.LodgingOffer
	err    error
	calls  int
}

func (s *stubLodgingProvider) Name() string { return s.name }

func (s *stubLodgingProvider) SearchLodging(_ context.Context, _ providers.LodgingQuery) ([]travel_models.LodgingOffer, error) {
	s.calls++
	return s.offers, s.err
}

func testFlightPool() []travel_models.FlightOffer {
	return []travel_models.FlightOffer{
		flightOffer(450, 700, 1),
		flightOffer(300, 900, 2),
		flightOffer(600, 320, 0),
	}
}

func testLodgingPool() []travel_models.LodgingOffer {
	offers := []travel_models.LodgingOffer{
		lodgingOffer("Budget Inn", 70, 10),
		lodgingOffer("Central Apartments", 140, 10),
		lodgingOffer("Grand Hotel", 190, 10),
	}
	offers[1].Type = "apartment"
	return offers
}

func newTestPipeline(flights *stubFlightProvider, lodging *stubLodgingProvider) PipelineServiceInterface {
	search := NewSearchService(
		flights,
		&stubFlightProvider{name: "fallback"},
		[]providers.LodgingProvider{lodging},
		nil,
	)
	return NewPipelineService(
		NewHeuristicIntentService(),
		NewStaticNarrativeService(),
		search,
		NewOptimizerService(),
		NewProfileService(),
		NewSynthesisService(),
	)
}

func TestPipelineHappyPath(t *testing.T) {
	flights := &stubFlightProvider{name: "primary", offers: testFlightPool()}
	lodging := &stubLodgingProvider{name: "stub", offers: testLodgingPool()}
	pipeline := newTestPipeline(flights, lodging)

	result, err := pipeline.Run(context.Background(), request_models.PlanRequest{
		Message: "We want to visit Rome for 10 days with 5000€. Traveling from Copenhagen. 2 adults.",
	})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.NotEmpty(t, result.PlanID)
	require.NotEmpty(t, result.Itineraries)
	assert.Len(t, result.Itineraries, 3)

	require.NotNil(t, result.Intent)
	assert.Equal(t, "Rome", result.Intent.Destination)
	assert.NotEmpty(t, result.Intent.DestinationImageURL)

	assert.Equal(t, len(result.Itineraries), result.Metadata.NumItineraries)
	assert.NotEmpty(t, result.Messages)
	assert.Empty(t, result.Errors)

	// Every itinerary stays internally consistent on cost.
	for _, it := range result.Itineraries {
		assert.Equal(t,
			it.FlightCost+it.AccommodationCost+it.ActivitiesCost+it.EstimatedFoodCost,
			it.TotalCost)
	}
}

type failingIntentService struct {
	err error
}

func (s *failingIntentService) ExtractIntent(_ context.Context, _ string) (*travel_models.TripRequest, error) {
	return nil, s.err
}

func TestPipelineGatesWhenIntentExtractionFails(t *testing.T) {
	flights := &stubFlightProvider{name: "primary", offers: testFlightPool()}
	lodging := &stubLodgingProvider{name: "stub", offers: testLodgingPool()}
	search := NewSearchService(
		flights,
		&stubFlightProvider{name: "fallback"},
		[]providers.LodgingProvider{lodging},
		nil,
	)
	pipeline := NewPipelineService(
		&failingIntentService{err: errors.New("model unavailable")},
		NewStaticNarrativeService(),
		search,
		NewOptimizerService(),
		NewProfileService(),
		NewSynthesisService(),
	)

	result, err := pipeline.Run(context.Background(), request_models.PlanRequest{
		Message: "Rome for 10 days",
	})
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.False(t, result.Success)
	assert.Nil(t, result.Intent)
	assert.Empty(t, result.Itineraries)
	require.NotEmpty(t, result.Errors)
	assert.Contains(t, result.Errors[0], "intent extraction failed")
	// The gate fires before any provider is touched.
	assert.Zero(t, flights.calls)
	assert.Zero(t, lodging.calls)
}

func TestPipelineGatesWithoutDestinationAndBudget(t *testing.T) {
	flights := &stubFlightProvider{name: "primary", offers: testFlightPool()}
	lodging := &stubLodgingProvider{name: "stub", offers: testLodgingPool()}
	pipeline := newTestPipeline(flights, lodging)

	result, err := pipeline.Run(context.Background(), request_models.PlanRequest{
		Request: &travel_models.TripRequest{NumAdults: 2},
	})
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Empty(t, result.Itineraries)
	assert.NotEmpty(t, result.Errors)
	// The gate fires before any provider is touched.
	assert.Zero(t, flights.calls)
	assert.Zero(t, lodging.calls)
}

func TestPipelineFlightFailureKeepsLodgingBranch(t *testing.T) {
	flights := &stubFlightProvider{name: "primary", err: errors.New("boom")}
	lodging := &stubLodgingProvider{name: "stub", offers: testLodgingPool()}
	pipeline := newTestPipeline(flights, lodging)

	budget := 5000.0
	result, err := pipeline.Run(context.Background(), request_models.PlanRequest{
		Request: &travel_models.TripRequest{
			Origin:       "Copenhagen",
			Destination:  "Rome",
			NumAdults:    2,
			DurationDays: intPtr(10),
			TotalBudget:  &budget,
		},
	})
	require.NoError(t, err)

	// No flights means no complete itinerary, but the lodging pool survives
	// and the failure is reported rather than raised.
	assert.False(t, result.Success)
	assert.Empty(t, result.Itineraries)
	assert.NotEmpty(t, result.Errors)
	assert.Greater(t, result.Metadata.NumLodgingOptions, 0)
	assert.Zero(t, result.Metadata.NumFlightOptions)
}

func TestPipelineGatesWhenBothPoolsEmpty(t *testing.T) {
	flights := &stubFlightProvider{name: "primary"}
	lodging := &stubLodgingProvider{name: "stub"}
	pipeline := newTestPipeline(flights, lodging)

	budget := 5000.0
	result, err := pipeline.Run(context.Background(), request_models.PlanRequest{
		Request: &travel_models.TripRequest{
			Origin:      "Copenhagen",
			Destination: "Rome",
			NumAdults:   2,
			TotalBudget: &budget,
		},
	})
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Contains(t, result.Errors, "no flight or lodging options found")
}

func TestPipelineStreamEmitsStagesThenResult(t *testing.T) {
	flights := &stubFlightProvider{name: "primary", offers: testFlightPool()}
	lodging := &stubLodgingProvider{name: "stub", offers: testLodgingPool()}
	pipeline := newTestPipeline(flights, lodging)

	budget := 5000.0
	events, err := pipeline.RunStream(context.Background(), request_models.PlanRequest{
		Request: &travel_models.TripRequest{
			Origin:       "Copenhagen",
			Destination:  "Rome",
			NumAdults:    2,
			DurationDays: intPtr(10),
			TotalBudget:  &budget,
		},
	})
	require.NoError(t, err)

	var stages []string
	var final *response_models.PlanResult
	for ev := range events {
		switch ev.Type {
		case response_models.EventStage:
			stages = append(stages, ev.Stage)
		case response_models.EventComplete:
			final = ev.Result
		}
	}

	assert.Equal(t, []string{"gated", "searched", "optimized", "ranked", "synthesized"}, stages)
	require.NotNil(t, final)
	assert.True(t, final.Success)
}
