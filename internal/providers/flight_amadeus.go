package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"time"

	"github.com/briculinos/voyana/internal/models/travel_models"
	"github.com/briculinos/voyana/pkg/utils"
)

// AmadeusFlightClient talks to the Amadeus flight-offers API, the structured
// GDS fallback behind the scraped aggregator.
type AmadeusFlightClient struct {
	HTTP    *http.Client
	BaseURL string
	auth    *amadeusAuth
}

func NewAmadeusFlightClient(apiKey, apiSecret string) *AmadeusFlightClient {
	httpClient := &http.Client{Timeout: 20 * time.Second}
	return &AmadeusFlightClient{
		HTTP:    httpClient,
		BaseURL: amadeusBaseURL,
		auth:    newAmadeusAuth(httpClient, amadeusBaseURL, apiKey, apiSecret),
	}
}

func (c *AmadeusFlightClient) Name() string { return "amadeus" }

type amadeusSegment struct {
	Departure struct {
		IataCode string `json:"iataCode"`
		At       string `json:"at"`
	} `json:"departure"`
	Arrival struct {
		IataCode string `json:"iataCode"`
		At       string `json:"at"`
	} `json:"arrival"`
	CarrierCode string `json:"carrierCode"`
	Number      string `json:"number"`
	Duration    string `json:"duration"`
	Cabin       string `json:"cabin"`
}

type amadeusOffer struct {
	Itineraries []struct {
		Segments []amadeusSegment `json:"segments"`
	} `json:"itineraries"`
	Price struct {
		Total    string `json:"total"`
		Currency string `json:"currency"`
	} `json:"price"`
}

func (c *AmadeusFlightClient) SearchFlights(ctx context.Context, q FlightQuery) ([]travel_models.FlightOffer, error) {
	token, err := c.auth.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("originLocationCode", q.OriginCode)
	params.Set("destinationLocationCode", q.DestinationCode)
	params.Set("departureDate", utils.FormatISODate(q.DepartureDate))
	params.Set("returnDate", utils.FormatISODate(q.ReturnDate))
	params.Set("adults", strconv.Itoa(q.Adults))
	params.Set("currencyCode", utils.ReportingCurrency)
	if q.Children > 0 {
		params.Set("children", strconv.Itoa(q.Children))
	}
	if q.MaxResults > 0 {
		params.Set("max", strconv.Itoa(q.MaxResults))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.BaseURL+"/v2/shopping/flight-offers?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("amadeus flight request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("amadeus flight request: status %d", resp.StatusCode)
	}

	var body struct {
		Data []amadeusOffer `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("amadeus flight decode: %w", err)
	}

	var offers []travel_models.FlightOffer
	for _, raw := range body.Data {
		offer, ok := parseAmadeusOffer(raw)
		if !ok {
			continue
		}
		offers = append(offers, offer)
	}
	return offers, nil
}

func parseAmadeusOffer(raw amadeusOffer) (travel_models.FlightOffer, bool) {
	if len(raw.Itineraries) < 2 {
		return travel_models.FlightOffer{}, false
	}
	outbound := parseAmadeusSegments(raw.Itineraries[0].Segments)
	returning := parseAmadeusSegments(raw.Itineraries[1].Segments)
	if len(outbound) == 0 || len(returning) == 0 {
		return travel_models.FlightOffer{}, false
	}

	price, err := strconv.ParseFloat(raw.Price.Total, 64)
	if err != nil || price <= 0 {
		return travel_models.FlightOffer{}, false
	}

	total := 0
	for _, s := range append(append([]travel_models.FlightSegment{}, outbound...), returning...) {
		total += s.DurationMinutes
	}

	currency := raw.Price.Currency
	if currency == "" {
		currency = utils.ReportingCurrency
	}

	return travel_models.FlightOffer{
		OutboundSegments:     outbound,
		ReturnSegments:       returning,
		TotalPrice:           price,
		Currency:             currency,
		TotalDurationMinutes: total,
		NumberOfStops:        (len(outbound) - 1) + (len(returning) - 1),
		Source:               "amadeus",
	}, true
}

func parseAmadeusSegments(raw []amadeusSegment) []travel_models.FlightSegment {
	out := make([]travel_models.FlightSegment, 0, len(raw))
	for _, s := range raw {
		cabin := s.Cabin
		if cabin == "" {
			cabin = "economy"
		}
		out = append(out, travel_models.FlightSegment{
			Origin:          s.Departure.IataCode,
			Destination:     s.Arrival.IataCode,
			Departure:       parseAmadeusTime(s.Departure.At),
			Arrival:         parseAmadeusTime(s.Arrival.At),
			Carrier:         s.CarrierCode,
			FlightNumber:    s.Number,
			DurationMinutes: parseISODuration(s.Duration),
			BookingClass:    cabin,
		})
	}
	return out
}

func parseAmadeusTime(s string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

var isoDurationRe = regexp.MustCompile(`PT(?:(\d+)H)?(?:(\d+)M)?`)

// parseISODuration turns an ISO 8601 duration like PT2H30M into minutes.
func parseISODuration(s string) int {
	m := isoDurationRe.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	return hours*60 + minutes
}
