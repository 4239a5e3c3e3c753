package travel_models

import "time"

type TravelStyle string

const (
	StyleRelaxed   TravelStyle = "relaxed"
	StyleBalanced  TravelStyle = "balanced"
	StylePacked    TravelStyle = "packed"
	StyleAdventure TravelStyle = "adventure"
	StyleLuxury    TravelStyle = "luxury"
	StyleBudget    TravelStyle = "budget"
)

// Valid reports whether s is one of the known styles.
func (s TravelStyle) Valid() bool {
	switch s {
	case StyleRelaxed, StyleBalanced, StylePacked, StyleAdventure, StyleLuxury, StyleBudget:
		return true
	}
	return false
}

// TripRequest is the structured travel request produced by intent extraction.
// Destination, dates (or duration) and budget are jointly required for the
// pipeline to proceed past the gate.
type TripRequest struct {
	Origin                 string     `json:"origin,omitempty"`
	Destination            string     `json:"destination,omitempty"`
	DestinationDescription string     `json:"destination_description,omitempty"`
	DestinationImageURL    string     `json:"destination_image_url,omitempty"`
	DepartureDate          *time.Time `json:"departure_date,omitempty"`
	ReturnDate             *time.Time `json:"return_date,omitempty"`
	DurationDays           *int       `json:"duration_days,omitempty"`
	DateFlexibility        int        `json:"date_flexibility,omitempty"`

	NumAdults   int `json:"num_adults"`
	NumChildren int `json:"num_children"`
	NumInfants  int `json:"num_infants"`

	TotalBudget *float64 `json:"total_budget,omitempty"`

	TravelStyle        TravelStyle `json:"travel_style,omitempty"`
	AccommodationTypes []string    `json:"accommodation_type,omitempty"`
	Interests          []string    `json:"interests,omitempty"`
}

// Duration returns the trip length in days, deriving it from the date window
// when duration_days is absent. Defaults to 7 like the rest of the pipeline.
func (r *TripRequest) Duration() int {
	if r.DurationDays != nil && *r.DurationDays > 0 {
		return *r.DurationDays
	}
	if r.DepartureDate != nil && r.ReturnDate != nil {
		days := int(r.ReturnDate.Sub(*r.DepartureDate).Hours() / 24)
		if days > 0 {
			return days
		}
		return 1
	}
	return 7
}

// TravelerCount is the number of travelers that food budgeting applies to.
// Infants are excluded.
func (r *TripRequest) TravelerCount() int {
	n := r.NumAdults + r.NumChildren
	if n < 1 {
		return 1
	}
	return n
}

// HasDates reports whether a concrete departure/return window exists.
func (r *TripRequest) HasDates() bool {
	return r.DepartureDate != nil && r.ReturnDate != nil
}
