package services

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/briculinos/voyana/internal/models/request_models"
	"github.com/briculinos/voyana/internal/models/response_models"
	"github.com/briculinos/voyana/internal/models/travel_models"
	"github.com/briculinos/voyana/pkg/utils"
)

// PipelineServiceInterface drives a planning run through its stages:
// gate -> search -> optimize -> rank -> synthesize, with a second gate after
// the optimizer. Both gates end the run early with a partial result instead
// of failing it.
type PipelineServiceInterface interface {
	Run(ctx context.Context, req request_models.PlanRequest) (*response_models.PlanResult, error)
	RunStream(ctx context.Context, req request_models.PlanRequest) (<-chan response_models.StageEvent, error)
}

type pipelineService struct {
	intent    IntentServiceInterface
	narrative NarrativeServiceInterface
	search    SearchServiceInterface
	optimizer OptimizerServiceInterface
	profile   ProfileServiceInterface
	synthesis SynthesisServiceInterface
}

func NewPipelineService(
	intent IntentServiceInterface,
	narrative NarrativeServiceInterface,
	search SearchServiceInterface,
	optimizer OptimizerServiceInterface,
	profile ProfileServiceInterface,
	synthesis SynthesisServiceInterface,
) PipelineServiceInterface {
	return &pipelineService{
		intent:    intent,
		narrative: narrative,
		search:    search,
		optimizer: optimizer,
		profile:   profile,
		synthesis: synthesis,
	}
}

func (s *pipelineService) Run(ctx context.Context, req request_models.PlanRequest) (*response_models.PlanResult, error) {
	return s.run(ctx, req, nil)
}

// RunStream runs the pipeline in a goroutine and emits one event per
// completed stage, then a terminal event with the result. The channel is
// closed when the run ends.
func (s *pipelineService) RunStream(ctx context.Context, req request_models.PlanRequest) (<-chan response_models.StageEvent, error) {
	events := make(chan response_models.StageEvent, 8)
	go func() {
		defer close(events)
		result, err := s.run(ctx, req, events)
		if err != nil {
			events <- response_models.StageEvent{
				Type:   response_models.EventComplete,
				Errors: []string{err.Error()},
			}
			return
		}
		events <- response_models.StageEvent{
			Type:   response_models.EventComplete,
			Result: result,
		}
	}()
	return events, nil
}

func (s *pipelineService) run(ctx context.Context, planReq request_models.PlanRequest, events chan<- response_models.StageEvent) (*response_models.PlanResult, error) {
	tripReq, err := s.resolveRequest(ctx, planReq)
	if err != nil {
		// Extraction failures end the run at the first gate with a partial
		// result, same as a request that lacks searchable criteria.
		pctx := travel_models.NewPlanningContext(nil)
		pctx.Stage = travel_models.StageGated
		pctx.AppendError("intent extraction failed: " + err.Error())
		log.Printf("[pipeline] gated: intent extraction failed: %v", err)
		return s.finish(pctx), nil
	}

	pctx := travel_models.NewPlanningContext(tripReq)
	pctx.Stage = travel_models.StageGated

	if !canSearch(tripReq) {
		pctx.AppendError("missing critical information: destination or budget is required")
		log.Printf("[pipeline] gated: request lacks destination and budget")
		return s.finish(pctx), nil
	}
	s.emit(events, pctx)

	pctx = s.search.Search(ctx, pctx)
	s.emit(events, pctx)

	pctx = s.optimizer.Optimize(ctx, pctx)
	s.emit(events, pctx)

	if !hasCandidates(pctx) {
		pctx.AppendError("no flight or lodging options found")
		log.Printf("[pipeline] gated after optimize: both pools empty")
		return s.finish(pctx), nil
	}

	pctx = s.profile.Rank(ctx, pctx)
	s.emit(events, pctx)

	pctx = s.synthesis.Synthesize(ctx, pctx)
	s.emit(events, pctx)

	return s.finish(pctx), nil
}

func (s *pipelineService) resolveRequest(ctx context.Context, planReq request_models.PlanRequest) (*travel_models.TripRequest, error) {
	if planReq.Request != nil {
		s.narrative.Decorate(ctx, planReq.Request, planReq.Message)
		return planReq.Request, nil
	}
	if planReq.Message == "" {
		return nil, utils.ErrInvalidInput
	}
	req, err := s.intent.ExtractIntent(ctx, planReq.Message)
	if err != nil {
		return nil, err
	}
	s.narrative.Decorate(ctx, req, planReq.Message)
	return req, nil
}

// canSearch is the first continue-predicate: without at least a destination
// or a budget there is nothing meaningful to search for.
func canSearch(req *travel_models.TripRequest) bool {
	if req == nil {
		return false
	}
	return req.Destination != "" || req.TotalBudget != nil
}

// hasCandidates is the second continue-predicate, checked after the
// optimizer narrowed both pools.
func hasCandidates(pctx travel_models.PlanningContext) bool {
	return len(pctx.FlightOptions) > 0 || len(pctx.LodgingOptions) > 0
}

func (s *pipelineService) emit(events chan<- response_models.StageEvent, pctx travel_models.PlanningContext) {
	if events == nil {
		return
	}
	message := ""
	if len(pctx.Messages) > 0 {
		message = pctx.Messages[len(pctx.Messages)-1]
	}
	events <- response_models.StageEvent{
		Type:    response_models.EventStage,
		Stage:   string(pctx.Stage),
		Message: message,
		Errors:  pctx.Errors,
	}
}

func (s *pipelineService) finish(pctx travel_models.PlanningContext) *response_models.PlanResult {
	return &response_models.PlanResult{
		PlanID:      uuid.NewString(),
		Success:     len(pctx.Itineraries) > 0,
		Itineraries: pctx.Itineraries,
		Intent:      pctx.Request,
		Messages:    pctx.Messages,
		Errors:      pctx.Errors,
		Metadata: response_models.PlanMetadata{
			NumFlightOptions:  len(pctx.FlightOptions),
			NumLodgingOptions: len(pctx.LodgingOptions),
			NumItineraries:    len(pctx.Itineraries),
		},
	}
}
