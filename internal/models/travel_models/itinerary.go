package travel_models

import "time"

// DayPlan is a single day of an itinerary. The planning core leaves these
// empty; a separate enrichment pass fills them in.
type DayPlan struct {
	DayNumber int        `json:"day_number"`
	Date      *time.Time `json:"date,omitempty"`
	Location  string     `json:"location"`
	Notes     string     `json:"notes,omitempty"`
}

// Itinerary is one of the archetype proposals produced by synthesis.
type Itinerary struct {
	Title    string `json:"title"`
	Summary  string `json:"summary"`
	StyleTag string `json:"style_tag"`

	Flights        FlightOffer    `json:"flights"`
	Accommodations []LodgingOffer `json:"accommodations"`
	DailyPlans     []DayPlan      `json:"daily_plans"`

	FlightCost        float64 `json:"flight_cost"`
	AccommodationCost float64 `json:"accommodation_cost"`
	ActivitiesCost    float64 `json:"activities_cost"`
	EstimatedFoodCost float64 `json:"estimated_food_cost"`
	TotalCost         float64 `json:"total_cost"`
	Currency          string  `json:"currency"`

	WhyThisOption string `json:"why_this_option"`
	Tradeoffs     string `json:"tradeoffs"`
}
