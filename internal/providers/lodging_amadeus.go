package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/briculinos/voyana/internal/models/travel_models"
	"github.com/briculinos/voyana/pkg/utils"
)

// AmadeusLodgingClient is the second hop of the lodging chain, backed by the
// same OAuth flow as the flight client.
type AmadeusLodgingClient struct {
	HTTP *http.Client
	auth *amadeusAuth
}

func NewAmadeusLodgingClient(apiKey, apiSecret string) *AmadeusLodgingClient {
	httpClient := &http.Client{Timeout: 20 * time.Second}
	return &AmadeusLodgingClient{
		HTTP: httpClient,
		auth: newAmadeusAuth(httpClient, amadeusBaseURL, apiKey, apiSecret),
	}
}

func (c *AmadeusLodgingClient) Name() string { return "amadeus_hotels" }

type amadeusHotelOffer struct {
	Hotel struct {
		HotelID string `json:"hotelId"`
		Name    string `json:"name"`
	} `json:"hotel"`
	Offers []struct {
		Room struct {
			TypeEstimated struct {
				Category string `json:"category"`
			} `json:"typeEstimated"`
		} `json:"room"`
		Price struct {
			Total    string `json:"total"`
			Currency string `json:"currency"`
		} `json:"price"`
	} `json:"offers"`
}

// SearchLodging lists hotel ids for the city, then prices the first batch of
// them in one shopping call.
func (c *AmadeusLodgingClient) SearchLodging(ctx context.Context, q LodgingQuery) ([]travel_models.LodgingOffer, error) {
	token, err := c.auth.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	ids, ratings, err := c.hotelIDs(ctx, token, q.CityCode)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	if len(ids) > 20 {
		ids = ids[:20]
	}

	params := url.Values{}
	params.Set("hotelIds", strings.Join(ids, ","))
	params.Set("checkInDate", utils.FormatISODate(q.CheckIn))
	params.Set("checkOutDate", utils.FormatISODate(q.CheckOut))
	params.Set("adults", strconv.Itoa(q.Adults))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.auth.baseURL+"/v3/shopping/hotel-offers?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("amadeus hotel offers: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("amadeus hotel offers: status %d", resp.StatusCode)
	}

	var decoded struct {
		Data []amadeusHotelOffer `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("amadeus hotel offers decode: %w", err)
	}

	nights := q.Nights
	if nights < 1 {
		nights = 1
	}

	var offers []travel_models.LodgingOffer
	for _, h := range decoded.Data {
		if len(h.Offers) == 0 {
			continue
		}
		total, err := strconv.ParseFloat(h.Offers[0].Price.Total, 64)
		if err != nil || total <= 0 {
			continue
		}
		offer := travel_models.LodgingOffer{
			Name:          titleCase(h.Hotel.Name),
			Type:          "hotel",
			City:          q.Destination,
			PricePerNight: total / float64(nights),
			TotalPrice:    total,
			Currency:      h.Offers[0].Price.Currency,
			RoomType:      h.Offers[0].Room.TypeEstimated.Category,
			CheckIn:       q.CheckIn,
			CheckOut:      q.CheckOut,
			Source:        c.Name(),
		}
		if r, ok := ratings[h.Hotel.HotelID]; ok {
			offer.Rating = &r
		}
		offers = append(offers, offer)
		if q.MaxResults > 0 && len(offers) >= q.MaxResults {
			break
		}
	}
	return offers, nil
}

func (c *AmadeusLodgingClient) hotelIDs(ctx context.Context, token, cityCode string) ([]string, map[string]float64, error) {
	params := url.Values{}
	params.Set("cityCode", cityCode)
	params.Set("radius", "20")
	params.Set("radiusUnit", "KM")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.auth.baseURL+"/v1/reference-data/locations/hotels/by-city?"+params.Encode(), nil)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("amadeus hotel list: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("amadeus hotel list: status %d", resp.StatusCode)
	}

	var decoded struct {
		Data []struct {
			HotelID string `json:"hotelId"`
			Rating  string `json:"rating"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, nil, fmt.Errorf("amadeus hotel list decode: %w", err)
	}

	ids := make([]string, 0, len(decoded.Data))
	ratings := make(map[string]float64, len(decoded.Data))
	for _, d := range decoded.Data {
		if d.HotelID == "" {
			continue
		}
		ids = append(ids, d.HotelID)
		if r, err := strconv.ParseFloat(d.Rating, 64); err == nil && r > 0 {
			ratings[d.HotelID] = r
		}
	}
	return ids, ratings, nil
}

// titleCase tidies the ALL CAPS names the GDS returns.
func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		r := []rune(w)
		if len(r) > 0 {
			r[0] = unicode.ToUpper(r[0])
		}
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
