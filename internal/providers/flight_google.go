package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/briculinos/voyana/internal/models/travel_models"
	"github.com/briculinos/voyana/pkg/utils"
)

// GoogleFlightsClient scrapes Google Flights through the SerpAPI gateway.
// Broadest real-world price coverage, so it sits first in the fallback chain.
type GoogleFlightsClient struct {
	HTTP    *http.Client
	APIKey  string
	BaseURL string
}

func NewGoogleFlightsClient(apiKey string) *GoogleFlightsClient {
	return &GoogleFlightsClient{
		HTTP:    &http.Client{Timeout: 20 * time.Second},
		APIKey:  apiKey,
		BaseURL: "https://serpapi.com/search.json",
	}
}

func (c *GoogleFlightsClient) Name() string { return "google_flights" }

type serpAirport struct {
	ID   string `json:"id"`
	Time string `json:"time"`
}

type serpSegment struct {
	DepartureAirport serpAirport `json:"departure_airport"`
	ArrivalAirport   serpAirport `json:"arrival_airport"`
	Duration         int         `json:"duration"`
	Airline          string      `json:"airline"`
	FlightNumber     string      `json:"flight_number"`
}

type serpFlight struct {
	Flights      []serpSegment   `json:"flights"`
	Price        json.RawMessage `json:"price"`
	BookingToken string          `json:"booking_token"`
}

type serpResponse struct {
	Error        string       `json:"error"`
	BestFlights  []serpFlight `json:"best_flights"`
	OtherFlights []serpFlight `json:"other_flights"`
}

func (c *GoogleFlightsClient) SearchFlights(ctx context.Context, q FlightQuery) ([]travel_models.FlightOffer, error) {
	if c.APIKey == "" {
		return nil, utils.ErrProviderUnavailable
	}

	params := url.Values{}
	params.Set("api_key", c.APIKey)
	params.Set("engine", "google_flights")
	params.Set("departure_id", q.OriginCode)
	params.Set("arrival_id", q.DestinationCode)
	params.Set("outbound_date", utils.FormatISODate(q.DepartureDate))
	params.Set("return_date", utils.FormatISODate(q.ReturnDate))
	params.Set("adults", strconv.Itoa(q.Adults))
	params.Set("currency", utils.ReportingCurrency)
	params.Set("hl", "en")
	if q.Children > 0 {
		params.Set("children", strconv.Itoa(q.Children))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("google flights request: %w", err)
	}
	defer resp.Body.Close()

	var body serpResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("google flights decode: %w", err)
	}
	if body.Error != "" {
		return nil, fmt.Errorf("google flights: %s", body.Error)
	}

	var offers []travel_models.FlightOffer
	for _, f := range append(body.BestFlights, body.OtherFlights...) {
		offer, ok := c.parseFlight(f, q)
		if !ok {
			continue
		}
		offers = append(offers, offer)
		if q.MaxResults > 0 && len(offers) >= q.MaxResults {
			break
		}
	}
	return offers, nil
}

func (c *GoogleFlightsClient) parseFlight(f serpFlight, q FlightQuery) (travel_models.FlightOffer, bool) {
	if len(f.Flights) < 2 {
		// Round trips need at least one outbound and one return segment.
		return travel_models.FlightOffer{}, false
	}

	segments := make([]travel_models.FlightSegment, 0, len(f.Flights))
	for _, s := range f.Flights {
		segments = append(segments, parseSerpSegment(s))
	}

	// The response interleaves outbound and return legs in one list. The
	// return journey starts at the first segment departing on or after the
	// requested return date; connecting itineraries keep the airport chain
	// unbroken, so a discontinuity check alone misses the boundary.
	split := len(segments)
	if !q.ReturnDate.IsZero() {
		returnDay := q.ReturnDate.Truncate(24 * time.Hour)
		for i := 1; i < len(segments); i++ {
			if !segments[i].Departure.IsZero() && !segments[i].Departure.Truncate(24*time.Hour).Before(returnDay) {
				split = i
				break
			}
		}
	}
	if split == len(segments) {
		for i := 1; i < len(segments); i++ {
			if segments[i].Origin != segments[i-1].Destination {
				split = i
				break
			}
		}
	}
	if split == len(segments) {
		split = len(segments) / 2
	}
	outbound, returning := segments[:split], segments[split:]
	if len(outbound) == 0 || len(returning) == 0 {
		return travel_models.FlightOffer{}, false
	}

	total := 0
	for _, s := range segments {
		total += s.DurationMinutes
	}

	price, ok := parseSerpPrice(f.Price)
	if !ok || price <= 0 {
		return travel_models.FlightOffer{}, false
	}

	return travel_models.FlightOffer{
		OutboundSegments:     outbound,
		ReturnSegments:       returning,
		TotalPrice:           price,
		Currency:             utils.ReportingCurrency,
		TotalDurationMinutes: total,
		NumberOfStops:        (len(outbound) - 1) + (len(returning) - 1),
		BookingLink:          f.BookingToken,
		Source:               c.Name(),
	}, true
}

func parseSerpSegment(s serpSegment) travel_models.FlightSegment {
	return travel_models.FlightSegment{
		Origin:          s.DepartureAirport.ID,
		Destination:     s.ArrivalAirport.ID,
		Departure:       parseSerpTime(s.DepartureAirport.Time),
		Arrival:         parseSerpTime(s.ArrivalAirport.Time),
		Carrier:         s.Airline,
		FlightNumber:    s.FlightNumber,
		DurationMinutes: s.Duration,
		BookingClass:    "economy",
	}
}

func parseSerpTime(s string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Price arrives either as a bare number or as {"value": n}.
func parseSerpPrice(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 {
		return 0, false
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, true
	}
	var obj struct {
		Value float64 `json:"value"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return obj.Value, true
	}
	return 0, false
}
