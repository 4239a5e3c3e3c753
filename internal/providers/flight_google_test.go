package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/briculinos/voyana/pkg/utils"
)

const serpFixture = `{
	"best_flights": [
		{
			"flights": [
				{
					"departure_airport": {"id": "CPH", "time": "2026-10-01 09:15"},
					"arrival_airport": {"id": "FCO", "time": "2026-10-01 11:45"},
					"duration": 150,
					"airline": "SAS",
					"flight_number": "SK 683"
				},
				{
					"departure_airport": {"id": "FCO", "time": "2026-10-11 12:30"},
					"arrival_airport": {"id": "CPH", "time": "2026-10-11 15:05"},
					"duration": 155,
					"airline": "SAS",
					"flight_number": "SK 684"
				}
			],
			"price": 320
		},
		{
			"flights": [
				{
					"departure_airport": {"id": "CPH", "time": "2026-10-01 06:00"},
					"arrival_airport": {"id": "MUC", "time": "2026-10-01 07:40"},
					"duration": 100,
					"airline": "Lufthansa",
					"flight_number": "LH 2443"
				},
				{
					"departure_airport": {"id": "MUC", "time": "2026-10-01 09:00"},
					"arrival_airport": {"id": "FCO", "time": "2026-10-01 10:20"},
					"duration": 80,
					"airline": "Lufthansa",
					"flight_number": "LH 1866"
				},
				{
					"departure_airport": {"id": "FCO", "time": "2026-10-11 18:00"},
					"arrival_airport": {"id": "CPH", "time": "2026-10-11 20:35"},
					"duration": 155,
					"airline": "SAS",
					"flight_number": "SK 684"
				}
			],
			"price": {"value": 210}
		}
	],
	"other_flights": []
}`

func TestGoogleFlightsParsesInterleavedSegments(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "google_flights", r.URL.Query().Get("engine"))
		assert.Equal(t, "CPH", r.URL.Query().Get("departure_id"))
		w.Write([]byte(serpFixture))
	}))
	defer srv.Close()

	client := NewGoogleFlightsClient("test-key")
	client.BaseURL = srv.URL

	offers, err := client.SearchFlights(context.Background(), FlightQuery{
		OriginCode:      "CPH",
		DestinationCode: "FCO",
		DepartureDate:   time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		ReturnDate:      time.Date(2026, 10, 11, 0, 0, 0, 0, time.UTC),
		Adults:          2,
		MaxResults:      10,
	})
	require.NoError(t, err)
	require.Len(t, offers, 2)

	direct := offers[0]
	assert.Equal(t, 320.0, direct.TotalPrice)
	assert.Equal(t, 0, direct.NumberOfStops)
	assert.Len(t, direct.OutboundSegments, 1)
	assert.Len(t, direct.ReturnSegments, 1)
	assert.Equal(t, "FCO", direct.OutboundSegments[0].Destination)

	connecting := offers[1]
	assert.Equal(t, 210.0, connecting.TotalPrice)
	assert.Equal(t, 1, connecting.NumberOfStops)
	assert.Len(t, connecting.OutboundSegments, 2)
	assert.Len(t, connecting.ReturnSegments, 1)
	assert.Equal(t, 100+80+155, connecting.TotalDurationMinutes)
}

func TestGoogleFlightsWithoutKeyIsUnavailable(t *testing.T) {
	client := NewGoogleFlightsClient("")
	_, err := client.SearchFlights(context.Background(), FlightQuery{})
	assert.ErrorIs(t, err, utils.ErrProviderUnavailable)
}

func TestGoogleFlightsSurfacesUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error": "Google Flights hasn't returned any results for this query."}`))
	}))
	defer srv.Close()

	client := NewGoogleFlightsClient("test-key")
	client.BaseURL = srv.URL

	_, err := client.SearchFlights(context.Background(), FlightQuery{OriginCode: "CPH", DestinationCode: "FCO"})
	assert.Error(t, err)
}
