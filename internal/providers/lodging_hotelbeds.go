package providers

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/briculinos/voyana/internal/models/travel_models"
	"github.com/briculinos/voyana/pkg/utils"
)

// HotelbedsClient has the best address coverage of the lodging chain, so it
// goes first.
type HotelbedsClient struct {
	HTTP      *http.Client
	BaseURL   string
	APIKey    string
	APISecret string
	now       func() time.Time
}

func NewHotelbedsClient(apiKey, apiSecret string) *HotelbedsClient {
	return &HotelbedsClient{
		HTTP:      &http.Client{Timeout: 20 * time.Second},
		BaseURL:   "https://api.test.hotelbeds.com",
		APIKey:    apiKey,
		APISecret: apiSecret,
		now:       time.Now,
	}
}

func (c *HotelbedsClient) Name() string { return "hotelbeds" }

// signature returns the X-Signature header: sha256(key + secret + unix ts).
func (c *HotelbedsClient) signature() string {
	ts := strconv.FormatInt(c.now().Unix(), 10)
	sum := sha256.Sum256([]byte(c.APIKey + c.APISecret + ts))
	return hex.EncodeToString(sum[:])
}

type hotelbedsHotel struct {
	Name         string `json:"name"`
	CategoryName string `json:"categoryName"`
	Address      struct {
		Content     string `json:"content"`
		CountryCode string `json:"countryCode"`
	} `json:"address"`
	Facilities []struct {
		Description string `json:"description"`
	} `json:"facilities"`
	Rooms []struct {
		Name  string `json:"name"`
		Rates []struct {
			Net      string `json:"net"`
			Currency string `json:"currency"`
		} `json:"rates"`
	} `json:"rooms"`
}

func (c *HotelbedsClient) SearchLodging(ctx context.Context, q LodgingQuery) ([]travel_models.LodgingOffer, error) {
	if c.APIKey == "" || c.APISecret == "" {
		return nil, utils.ErrProviderUnavailable
	}

	payload := map[string]interface{}{
		"stay": map[string]string{
			"checkIn":  utils.FormatISODate(q.CheckIn),
			"checkOut": utils.FormatISODate(q.CheckOut),
		},
		"occupancies": []map[string]int{
			{"rooms": 1, "adults": q.Adults, "children": q.Children},
		},
		"destination": map[string]string{"code": q.CityCode},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.BaseURL+"/hotel-api/1.0/hotels", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Api-key", c.APIKey)
	req.Header.Set("X-Signature", c.signature())
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("hotelbeds request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("hotelbeds request: status %d", resp.StatusCode)
	}

	var decoded struct {
		Hotels struct {
			Hotels []hotelbedsHotel `json:"hotels"`
		} `json:"hotels"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("hotelbeds decode: %w", err)
	}

	var offers []travel_models.LodgingOffer
	for _, h := range decoded.Hotels.Hotels {
		offer, ok := c.parseHotel(h, q)
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

var starsRe = regexp.MustCompile(`(\d+)`)

func (c *HotelbedsClient) parseHotel(h hotelbedsHotel, q LodgingQuery) (travel_models.LodgingOffer, bool) {
	if len(h.Rooms) == 0 || len(h.Rooms[0].Rates) == 0 {
		return travel_models.LodgingOffer{}, false
	}
	room := h.Rooms[0]
	rate := room.Rates[0]

	total, err := strconv.ParseFloat(rate.Net, 64)
	if err != nil || total <= 0 {
		return travel_models.LodgingOffer{}, false
	}
	currency := rate.Currency
	if currency == "" {
		currency = utils.ReportingCurrency
	}

	var rating *float64
	if m := starsRe.FindStringSubmatch(h.CategoryName); m != nil {
		if stars, err := strconv.Atoi(m[1]); err == nil && stars >= 1 && stars <= 5 {
			r := float64(stars)
			rating = &r
		}
	}

	amenities := make([]string, 0, 8)
	for _, f := range h.Facilities {
		if f.Description == "" {
			continue
		}
		amenities = append(amenities, f.Description)
		if len(amenities) == 8 {
			break
		}
	}

	nights := q.Nights
	if nights < 1 {
		nights = 1
	}

	return travel_models.LodgingOffer{
		Name:          h.Name,
		Type:          "hotel",
		Address:       h.Address.Content,
		City:          q.Destination,
		Country:       h.Address.CountryCode,
		PricePerNight: total / float64(nights),
		TotalPrice:    total,
		Currency:      currency,
		Rating:        rating,
		Amenities:     amenities,
		RoomType:      room.Name,
		CheckIn:       q.CheckIn,
		CheckOut:      q.CheckOut,
		Source:        c.Name(),
	}, true
}
