package travel_models

// StageState tracks how far a planning run has progressed. The pipeline is a
// short linear chain with two exit points, so an explicit enum plus two
// continue-predicates is all the control flow there is.
type StageState string

const (
	StageGated       StageState = "gated"
	StageSearched    StageState = "searched"
	StageOptimized   StageState = "optimized"
	StageRanked      StageState = "ranked"
	StageSynthesized StageState = "synthesized"
)

// PlanningContext is the single per-run record threaded through the pipeline.
// It is owned by the pipeline driver; stages receive it, update it and return
// it. Nothing writes it concurrently.
type PlanningContext struct {
	Request *TripRequest

	FlightOptions  []FlightOffer
	LodgingOptions []LodgingOffer
	Profile        *TasteProfile
	Itineraries    []Itinerary

	Messages []string
	Errors   []string
	Stage    StageState
}

func NewPlanningContext(req *TripRequest) PlanningContext {
	return PlanningContext{Request: req}
}

func (c *PlanningContext) AppendMessage(msg string) {
	c.Messages = append(c.Messages, msg)
}

func (c *PlanningContext) AppendError(msg string) {
	c.Errors = append(c.Errors, msg)
}
