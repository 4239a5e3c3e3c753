package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/briculinos/voyana/internal/models/travel_models"
	"github.com/briculinos/voyana/pkg/utils"
)

func TestHeuristicIntentExtraction(t *testing.T) {
	svc := NewHeuristicIntentService()
	req, err := svc.ExtractIntent(context.Background(),
		"We want to visit Rome for 10 days with 5000€. Traveling from Copenhagen. 2 adults.")
	require.NoError(t, err)

	assert.Equal(t, "Rome", req.Destination)
	assert.Equal(t, "Copenhagen", req.Origin)
	require.NotNil(t, req.DurationDays)
	assert.Equal(t, 10, *req.DurationDays)
	require.NotNil(t, req.TotalBudget)
	assert.Equal(t, 5000.0, *req.TotalBudget)
	assert.Equal(t, 2, req.NumAdults)
	assert.Equal(t, travel_models.StyleBalanced, req.TravelStyle)
}

func TestHeuristicIntentStyleAndWeek(t *testing.T) {
	svc := NewHeuristicIntentService()
	req, err := svc.ExtractIntent(context.Background(),
		"Relaxing week in Lisbon with my partner, 2 adults, 3000 EUR")
	require.NoError(t, err)

	assert.Equal(t, "Lisbon", req.Destination)
	require.NotNil(t, req.DurationDays)
	assert.Equal(t, 7, *req.DurationDays)
	assert.Equal(t, travel_models.StyleRelaxed, req.TravelStyle)
	require.NotNil(t, req.TotalBudget)
	assert.Equal(t, 3000.0, *req.TotalBudget)
}

func TestHeuristicIntentEmptyMessage(t *testing.T) {
	svc := NewHeuristicIntentService()
	_, err := svc.ExtractIntent(context.Background(), "  ")
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
}

func TestHeuristicIntentDefaults(t *testing.T) {
	svc := NewHeuristicIntentService()
	req, err := svc.ExtractIntent(context.Background(), "somewhere warm please")
	require.NoError(t, err)

	assert.Equal(t, 1, req.NumAdults)
	assert.Equal(t, 3, req.DateFlexibility)
	assert.Empty(t, req.Destination)
	assert.Nil(t, req.TotalBudget)
}

func TestIntentPayloadDefaults(t *testing.T) {
	p := intentPayload{
		Destination: "Rome, Italy",
		Origin:      "Copenhagen",
		TravelStyle: "LUXURY",
	}
	req := p.toRequest()

	assert.Equal(t, travel_models.StyleLuxury, req.TravelStyle)
	assert.Equal(t, 1, req.NumAdults)
	assert.Equal(t, 3, req.DateFlexibility)
	assert.Nil(t, req.DepartureDate)
}

func TestIntentPayloadMovesPastDatesForward(t *testing.T) {
	p := intentPayload{
		Destination: "Rome",
		StartDate:   "2020-05-01",
		EndDate:     "2020-05-11",
	}
	req := p.toRequest()

	require.NotNil(t, req.DepartureDate)
	require.NotNil(t, req.ReturnDate)
	assert.Equal(t, 2021, req.DepartureDate.Year())
	assert.Equal(t, 2021, req.ReturnDate.Year())
}
