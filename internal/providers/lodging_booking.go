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

type BookingClient struct {
	HTTP    *http.Client
	BaseURL string
	APIKey  string
}

func NewBookingClient(apiKey string) *BookingClient {
	return &BookingClient{
		HTTP:    &http.Client{Timeout: 20 * time.Second},
		BaseURL: "https://booking-com.p.rapidapi.com",
		APIKey:  apiKey,
	}
}

func (c *BookingClient) Name() string { return "booking" }

type bookingProperty struct {
	HotelName               string   `json:"hotel_name"`
	AccommodationTypeName   string   `json:"accommodation_type_name"`
	Address                 string   `json:"address"`
	City                    string   `json:"city"`
	CountryTrans            string   `json:"country_trans"`
	ReviewScore             *float64 `json:"review_score"`
	ReviewNr                *int     `json:"review_nr"`
	DistanceToCC            string   `json:"distance_to_cc"`
	URL                     string   `json:"url"`
	CompositePriceBreakdown struct {
		GrossAmount struct {
			Value    float64 `json:"value"`
			Currency string  `json:"currency"`
		} `json:"gross_amount"`
	} `json:"composite_price_breakdown"`
}

func (c *BookingClient) SearchLodging(ctx context.Context, q LodgingQuery) ([]travel_models.LodgingOffer, error) {
	if c.APIKey == "" {
		return nil, utils.ErrProviderUnavailable
	}

	destID, err := c.locationID(ctx, q.Destination)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("dest_id", destID)
	params.Set("dest_type", "city")
	params.Set("checkin_date", utils.FormatISODate(q.CheckIn))
	params.Set("checkout_date", utils.FormatISODate(q.CheckOut))
	params.Set("adults_number", strconv.Itoa(q.Adults))
	params.Set("room_number", "1")
	params.Set("order_by", "popularity")
	params.Set("units", "metric")
	params.Set("filter_by_currency", utils.ReportingCurrency)
	params.Set("locale", "en-gb")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.BaseURL+"/v1/hotels/search?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("booking search: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("booking search: status %d", resp.StatusCode)
	}

	var decoded struct {
		Result []bookingProperty `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("booking decode: %w", err)
	}

	nights := q.Nights
	if nights < 1 {
		nights = 1
	}

	var offers []travel_models.LodgingOffer
	for _, p := range decoded.Result {
		total := p.CompositePriceBreakdown.GrossAmount.Value
		if total <= 0 {
			continue
		}
		offer := travel_models.LodgingOffer{
			Name:          p.HotelName,
			Type:          lodgingType(p.AccommodationTypeName),
			Address:       p.Address,
			City:          p.City,
			Country:       p.CountryTrans,
			PricePerNight: total / float64(nights),
			TotalPrice:    total,
			Currency:      p.CompositePriceBreakdown.GrossAmount.Currency,
			ReviewCount:   p.ReviewNr,
			CheckIn:       q.CheckIn,
			CheckOut:      q.CheckOut,
			BookingLink:   p.URL,
			Source:        c.Name(),
		}
		// Booking scores run 0-10, the rest of the pool runs 0-5.
		if p.ReviewScore != nil {
			r := *p.ReviewScore / 2
			offer.Rating = &r
		}
		if km, err := strconv.ParseFloat(p.DistanceToCC, 64); err == nil {
			offer.DistanceToCenterKM = &km
		}
		offers = append(offers, offer)
		if q.MaxResults > 0 && len(offers) >= q.MaxResults {
			break
		}
	}
	return offers, nil
}

func (c *BookingClient) locationID(ctx context.Context, destination string) (string, error) {
	params := url.Values{}
	params.Set("name", destination)
	params.Set("locale", "en-gb")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.BaseURL+"/v1/hotels/locations?"+params.Encode(), nil)
	if err != nil {
		return "", err
	}
	c.setHeaders(req)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("booking locations: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("booking locations: status %d", resp.StatusCode)
	}

	var decoded []struct {
		DestID   string `json:"dest_id"`
		DestType string `json:"dest_type"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("booking locations decode: %w", err)
	}
	for _, d := range decoded {
		if d.DestType == "city" && d.DestID != "" {
			return d.DestID, nil
		}
	}
	return "", utils.ErrNoSearchResults
}

func (c *BookingClient) setHeaders(req *http.Request) {
	req.Header.Set("X-RapidAPI-Key", c.APIKey)
	req.Header.Set("X-RapidAPI-Host", "booking-com.p.rapidapi.com")
}

func lodgingType(name string) string {
	switch name {
	case "Apartments", "Apartment":
		return "apartment"
	case "Hostels", "Hostel":
		return "hostel"
	case "Resorts", "Resort":
		return "resort"
	case "Guest houses", "Guest house", "Bed and breakfasts":
		return "guesthouse"
	default:
		return "hotel"
	}
}
