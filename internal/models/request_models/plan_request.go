package request_models

import "github.com/briculinos/voyana/internal/models/travel_models"

// PlanRequest is the body of POST /api/plan and /api/plan/stream. Either a
// free-text message (routed through intent extraction) or an already
// structured request may be supplied; a structured request wins.
type PlanRequest struct {
	Message string                     `json:"message"`
	Request *travel_models.TripRequest `json:"request,omitempty"`
}
