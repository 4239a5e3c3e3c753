package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/briculinos/voyana/internal/models/travel_models"
	"github.com/briculinos/voyana/internal/providers"
	"github.com/briculinos/voyana/pkg/utils"
)

const (
	maxFlightResults  = 20
	maxLodgingResults = 20
	maxAlternates     = 2
)

type SearchServiceInterface interface {
	Search(ctx context.Context, pctx travel_models.PlanningContext) travel_models.PlanningContext
}

type searchService struct {
	googleFlights  providers.FlightProvider
	amadeusFlights providers.FlightProvider
	lodgingChain   []providers.LodgingProvider
	mockLodging    providers.LodgingProvider
}

// NewSearchService wires the provider chains. mockLodging may be nil to
// disable the synthetic last-resort lodging set.
func NewSearchService(
	googleFlights providers.FlightProvider,
	amadeusFlights providers.FlightProvider,
	lodgingChain []providers.LodgingProvider,
	mockLodging providers.LodgingProvider,
) SearchServiceInterface {
	return &searchService{
		googleFlights:  googleFlights,
		amadeusFlights: amadeusFlights,
		lodgingChain:   lodgingChain,
		mockLodging:    mockLodging,
	}
}

// Search runs the flight and lodging branches concurrently. A failed branch
// leaves its pool empty and records the failure, the sibling branch is not
// affected.
func (s *searchService) Search(ctx context.Context, pctx travel_models.PlanningContext) travel_models.PlanningContext {
	req := pctx.Request

	var (
		wg          sync.WaitGroup
		flights     []travel_models.FlightOffer
		flightErr   error
		lodging     []travel_models.LodgingOffer
		lodgingErr  error
		flightNotes []string
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		flights, flightNotes, flightErr = s.searchFlights(ctx, req)
	}()
	go func() {
		defer wg.Done()
		lodging, lodgingErr = s.searchLodging(ctx, req)
	}()
	wg.Wait()

	for _, note := range flightNotes {
		pctx.AppendMessage(note)
	}
	if flightErr != nil {
		log.Printf("[search] flight branch failed: %v", flightErr)
		pctx.AppendError(fmt.Sprintf("flight search failed: %v", flightErr))
	}
	if lodgingErr != nil {
		log.Printf("[search] lodging branch failed: %v", lodgingErr)
		pctx.AppendError(fmt.Sprintf("lodging search failed: %v", lodgingErr))
	}

	pctx.FlightOptions = normalizeFlightCurrency(flights)
	pctx.LodgingOptions = normalizeLodgingCurrency(lodging)
	pctx.AppendMessage(fmt.Sprintf("found %d flight options and %d lodging options",
		len(pctx.FlightOptions), len(pctx.LodgingOptions)))
	pctx.Stage = travel_models.StageSearched
	return pctx
}

type flightAttempt struct {
	provider providers.FlightProvider
	origin   string
	dest     string
	label    string
}

// searchFlights walks the attempt list in order and stops at the first
// non-empty result set. Widened airport pairs only come into play once both
// providers came back empty for the primary pair.
func (s *searchService) searchFlights(ctx context.Context, req *travel_models.TripRequest) ([]travel_models.FlightOffer, []string, error) {
	if req.Origin == "" || req.Destination == "" {
		return nil, nil, fmt.Errorf("%w: origin and destination are required for flight search", utils.ErrMissingCriticalInfo)
	}
	originCode := providers.CityCode(req.Origin)
	destCode := providers.CityCode(req.Destination)

	attempts := s.flightAttempts(req, originCode, destCode)
	query := s.flightQuery(req)

	var (
		notes   []string
		lastErr error
	)
	for _, a := range attempts {
		if a.provider == nil {
			continue
		}
		q := query
		q.OriginCode = a.origin
		q.DestinationCode = a.dest

		offers, err := a.provider.SearchFlights(ctx, q)
		if err != nil {
			log.Printf("[search] %s %s: %v", a.provider.Name(), a.label, err)
			lastErr = err
			continue
		}
		if len(offers) > 0 {
			if a.label != "primary" {
				notes = append(notes, fmt.Sprintf("flights found via widened route %s-%s", a.origin, a.dest))
			}
			return offers, notes, nil
		}
	}
	if lastErr != nil {
		return nil, notes, lastErr
	}
	return nil, notes, nil
}

func (s *searchService) flightAttempts(req *travel_models.TripRequest, originCode, destCode string) []flightAttempt {
	attempts := []flightAttempt{
		{s.googleFlights, originCode, destCode, "primary"},
		{s.amadeusFlights, originCode, destCode, "primary"},
	}

	altDest := capAlternates(providers.AlternativeAirports(req.Destination, destCode))
	altOrigin := capAlternates(providers.AlternativeAirports(req.Origin, originCode))

	for _, d := range altDest {
		attempts = append(attempts, flightAttempt{s.amadeusFlights, originCode, d, "alt-destination"})
	}
	for _, o := range altOrigin {
		attempts = append(attempts, flightAttempt{s.amadeusFlights, o, destCode, "alt-origin"})
	}
	for _, o := range altOrigin {
		for _, d := range altDest {
			attempts = append(attempts, flightAttempt{s.amadeusFlights, o, d, "alt-combo"})
		}
	}
	return attempts
}

func capAlternates(codes []string) []string {
	if len(codes) > maxAlternates {
		return codes[:maxAlternates]
	}
	return codes
}

func (s *searchService) flightQuery(req *travel_models.TripRequest) providers.FlightQuery {
	departure, ret := tripDates(req)
	return providers.FlightQuery{
		DepartureDate: departure,
		ReturnDate:    ret,
		Adults:        req.NumAdults,
		Children:      req.NumChildren,
		MaxResults:    maxFlightResults,
	}
}

// searchLodging tries each configured provider in order, then the mock set
// when every real provider came up empty.
func (s *searchService) searchLodging(ctx context.Context, req *travel_models.TripRequest) ([]travel_models.LodgingOffer, error) {
	checkIn, checkOut := tripDates(req)
	query := providers.LodgingQuery{
		Destination: req.Destination,
		CityCode:    providers.CityCode(req.Destination),
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		Nights:      utils.NightsBetween(checkIn, checkOut),
		Adults:      req.NumAdults,
		Children:    req.NumChildren,
		MaxResults:  maxLodgingResults,
	}

	var lastErr error
	for _, p := range s.lodgingChain {
		offers, err := p.SearchLodging(ctx, query)
		if err != nil {
			log.Printf("[search] %s: %v", p.Name(), err)
			lastErr = err
			continue
		}
		if len(offers) > 0 {
			return offers, nil
		}
	}

	if s.mockLodging != nil {
		offers, err := s.mockLodging.SearchLodging(ctx, query)
		if err == nil && len(offers) > 0 {
			log.Printf("[search] lodging providers empty, using %s set", s.mockLodging.Name())
			return offers, nil
		}
	}
	return nil, lastErr
}

// tripDates resolves concrete travel dates, defaulting to a trip one month
// out when the request carries only a duration.
func tripDates(req *travel_models.TripRequest) (time.Time, time.Time) {
	if req.HasDates() {
		return *req.DepartureDate, *req.ReturnDate
	}
	start := time.Now().AddDate(0, 1, 0).Truncate(24 * time.Hour)
	if req.DepartureDate != nil {
		start = *req.DepartureDate
	}
	return start, start.AddDate(0, 0, req.Duration())
}

func normalizeFlightCurrency(offers []travel_models.FlightOffer) []travel_models.FlightOffer {
	for i := range offers {
		converted, ok := utils.ConvertToEUR(offers[i].TotalPrice, offers[i].Currency)
		if !ok {
			log.Printf("[search] unknown currency %q on flight offer, keeping as-is", offers[i].Currency)
			continue
		}
		offers[i].TotalPrice = converted
		offers[i].Currency = utils.ReportingCurrency
	}
	return offers
}

func normalizeLodgingCurrency(offers []travel_models.LodgingOffer) []travel_models.LodgingOffer {
	for i := range offers {
		total, ok := utils.ConvertToEUR(offers[i].TotalPrice, offers[i].Currency)
		if !ok {
			log.Printf("[search] unknown currency %q on lodging offer, keeping as-is", offers[i].Currency)
			continue
		}
		nightly, _ := utils.ConvertToEUR(offers[i].PricePerNight, offers[i].Currency)
		offers[i].TotalPrice = total
		offers[i].PricePerNight = nightly
		offers[i].Currency = utils.ReportingCurrency
	}
	return offers
}
