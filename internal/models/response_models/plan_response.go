package response_models

import "github.com/briculinos/voyana/internal/models/travel_models"

// PlanMetadata carries pool sizes for the completed run.
type PlanMetadata struct {
	NumFlightOptions  int `json:"num_flight_options"`
	NumLodgingOptions int `json:"num_lodging_options"`
	NumItineraries    int `json:"num_itineraries"`
}

// PlanResult is the terminal payload of a planning run. Success is true iff
// at least one itinerary could be built.
type PlanResult struct {
	PlanID      string                     `json:"plan_id"`
	Success     bool                       `json:"success"`
	Itineraries []travel_models.Itinerary  `json:"itineraries"`
	Intent      *travel_models.TripRequest `json:"parsed_intent,omitempty"`
	Messages    []string                   `json:"messages"`
	Errors      []string                   `json:"errors"`
	Metadata    PlanMetadata               `json:"metadata"`
}

const (
	EventStage    = "stage"
	EventComplete = "complete"
)

// StageEvent is one streaming update: a progress event per completed stage,
// then a single terminal event carrying the final result.
type StageEvent struct {
	Type    string      `json:"type"`
	Stage   string      `json:"stage,omitempty"`
	Message string      `json:"message,omitempty"`
	Errors  []string    `json:"errors,omitempty"`
	Result  *PlanResult `json:"result,omitempty"`
}
