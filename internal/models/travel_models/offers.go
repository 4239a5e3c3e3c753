package travel_models

import (
	"strings"
	"time"
)

// FlightSegment is a single leg of a flight offer.
type FlightSegment struct {
	Origin          string    `json:"origin"`
	Destination     string    `json:"destination"`
	Departure       time.Time `json:"departure"`
	Arrival         time.Time `json:"arrival"`
	Carrier         string    `json:"carrier"`
	FlightNumber    string    `json:"flight_number"`
	DurationMinutes int       `json:"duration_minutes"`
	BookingClass    string    `json:"booking_class"`
}

// FlightOffer is a complete round-trip option, possibly with connections.
type FlightOffer struct {
	OutboundSegments     []FlightSegment `json:"outbound_segments"`
	ReturnSegments       []FlightSegment `json:"return_segments"`
	TotalPrice           float64         `json:"total_price"`
	Currency             string          `json:"currency"`
	TotalDurationMinutes int             `json:"total_duration_minutes"`
	NumberOfStops        int             `json:"number_of_stops"`
	BookingLink          string          `json:"booking_link,omitempty"`
	Source               string          `json:"source"`
}

// Carriers returns every carrier on the offer, lower-cased, without duplicates.
func (f *FlightOffer) Carriers() []string {
	seen := make(map[string]bool)
	var out []string
	for _, seg := range append(append([]FlightSegment{}, f.OutboundSegments...), f.ReturnSegments...) {
		c := strings.ToLower(seg.Carrier)
		if c != "" && !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

// LodgingOffer is a hotel, apartment or resort option for the full stay.
type LodgingOffer struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
	Country string `json:"country,omitempty"`

	PricePerNight float64 `json:"price_per_night"`
	TotalPrice    float64 `json:"total_price"`
	Currency      string  `json:"currency"`

	Rating             *float64 `json:"rating,omitempty"`
	ReviewCount        *int     `json:"review_count,omitempty"`
	Amenities          []string `json:"amenities,omitempty"`
	RoomType           string   `json:"room_type,omitempty"`
	DistanceToCenterKM *float64 `json:"distance_to_center_km,omitempty"`

	CheckIn  time.Time `json:"check_in"`
	CheckOut time.Time `json:"check_out"`

	BookingLink string `json:"booking_link,omitempty"`
	Source      string `json:"source"`
}

// HasAmenity reports whether the offer carries the named amenity.
func (l *LodgingOffer) HasAmenity(name string) bool {
	for _, a := range l.Amenities {
		if strings.EqualFold(a, name) {
			return true
		}
	}
	return false
}
