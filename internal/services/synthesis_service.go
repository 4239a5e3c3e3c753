package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/briculinos/voyana/internal/models/travel_models"
)

type SynthesisServiceInterface interface {
	Synthesize(ctx context.Context, pctx travel_models.PlanningContext) travel_models.PlanningContext
}

type synthesisService struct{}

func NewSynthesisService() SynthesisServiceInterface {
	return &synthesisService{}
}

// Daily food estimate per traveler, by archetype.
const (
	foodRateBudget   = 40
	foodRateBalanced = 60
	foodRatePremium  = 100
)

// Synthesize assembles up to three complete proposals from the ranked pools:
// budget, balanced and premium. An archetype is skipped when either pool it
// needs is empty.
func (s *synthesisService) Synthesize(_ context.Context, pctx travel_models.PlanningContext) travel_models.PlanningContext {
	var itineraries []travel_models.Itinerary

	if it, ok := s.budgetItinerary(pctx); ok {
		itineraries = append(itineraries, it)
	}
	if it, ok := s.balancedItinerary(pctx); ok {
		itineraries = append(itineraries, it)
	}
	if it, ok := s.premiumItinerary(pctx); ok {
		itineraries = append(itineraries, it)
	}

	pctx.Itineraries = itineraries
	pctx.AppendMessage(fmt.Sprintf("created %d complete itineraries", len(itineraries)))
	pctx.Stage = travel_models.StageSynthesized
	return pctx
}

func (s *synthesisService) budgetItinerary(pctx travel_models.PlanningContext) (travel_models.Itinerary, bool) {
	if len(pctx.FlightOptions) == 0 || len(pctx.LodgingOptions) == 0 {
		return travel_models.Itinerary{}, false
	}

	flights := sortedFlights(pctx.FlightOptions, func(a, b travel_models.FlightOffer) bool {
		return a.TotalPrice < b.TotalPrice
	})
	stays := sortedStays(pctx.LodgingOptions, func(a, b travel_models.LodgingOffer) bool {
		return a.PricePerNight < b.PricePerNight
	})

	duration := pctx.Request.Duration()
	return s.assemble(
		pctx.Request,
		flights[0],
		stays[0],
		foodRateBudget,
		fmt.Sprintf("Budget Option - %s", pctx.Request.Destination),
		fmt.Sprintf("Smart spending without missing out. This %d-day trip maximizes experiences while keeping costs down.", duration),
		"Budget",
		"This itinerary prioritizes value and authentic experiences. You'll stay in well-rated, centrally-located accommodations that free up budget for memorable activities and local food.",
		"To stay within budget, flights may include connections and hotels focus on location over luxury amenities. Perfect for travelers who prefer spending on experiences rather than lodging.",
	), true
}

func (s *synthesisService) balancedItinerary(pctx travel_models.PlanningContext) (travel_models.Itinerary, bool) {
	if len(pctx.FlightOptions) == 0 || len(pctx.LodgingOptions) == 0 {
		return travel_models.Itinerary{}, false
	}

	// Stops shrink the denominator, so connections are penalized.
	flights := sortedFlights(pctx.FlightOptions, func(a, b travel_models.FlightOffer) bool {
		return balancedKey(a) < balancedKey(b)
	})
	flight := flights[len(flights)/2]

	stays := sortedStays(pctx.LodgingOptions, func(a, b travel_models.LodgingOffer) bool {
		return a.PricePerNight < b.PricePerNight
	})
	// With exactly two stays, take the cheaper one so the premium pick stays
	// distinct.
	mid := len(stays) / 2
	if len(stays) == 2 {
		mid = 0
	}

	duration := pctx.Request.Duration()
	return s.assemble(
		pctx.Request,
		flight,
		stays[mid],
		foodRateBalanced,
		fmt.Sprintf("Balanced Option - %s", pctx.Request.Destination),
		fmt.Sprintf("The sweet spot between comfort and adventure. %d days of well-paced exploration with quality accommodations.", duration),
		"Balanced Family",
		"This itinerary strikes the perfect balance - comfortable flights, well-located hotels with good amenities, and a mix of must-see attractions with local experiences.",
		"Mid-range pricing means good value without extremes. You get comfort and convenience while leaving room in your budget for spontaneous discoveries.",
	), true
}

func balancedKey(f travel_models.FlightOffer) float64 {
	denom := 24 - f.NumberOfStops*8
	if denom < 1 {
		denom = 1
	}
	return f.TotalPrice / float64(denom)
}

func (s *synthesisService) premiumItinerary(pctx travel_models.PlanningContext) (travel_models.Itinerary, bool) {
	if len(pctx.FlightOptions) == 0 || len(pctx.LodgingOptions) == 0 {
		return travel_models.Itinerary{}, false
	}

	flights := sortedFlights(pctx.FlightOptions, func(a, b travel_models.FlightOffer) bool {
		if a.NumberOfStops != b.NumberOfStops {
			return a.NumberOfStops < b.NumberOfStops
		}
		return a.TotalDurationMinutes < b.TotalDurationMinutes
	})
	stays := sortedStays(pctx.LodgingOptions, func(a, b travel_models.LodgingOffer) bool {
		return a.PricePerNight > b.PricePerNight
	})

	duration := pctx.Request.Duration()
	return s.assemble(
		pctx.Request,
		flights[0],
		stays[0],
		foodRatePremium,
		fmt.Sprintf("Luxury Option - %s", pctx.Request.Destination),
		fmt.Sprintf("Elevated travel with every detail perfected. %d days of luxury accommodations, seamless logistics, and curated experiences.", duration),
		"Luxury",
		"This itinerary prioritizes comfort, convenience, and memorable experiences. Direct flights, top-rated hotels with excellent amenities, and premium activities that showcase the destination's finest offerings.",
		"Higher investment in quality means less budget flexibility, but delivers stress-free travel with elevated experiences throughout your journey.",
	), true
}

func (s *synthesisService) assemble(
	req *travel_models.TripRequest,
	flight travel_models.FlightOffer,
	stay travel_models.LodgingOffer,
	foodRate int,
	title, summary, styleTag, why, tradeoffs string,
) travel_models.Itinerary {
	flightCost := flight.TotalPrice
	lodgingCost := stay.TotalPrice
	activitiesCost := 0.0
	foodCost := float64(req.Duration()) * float64(foodRate) * float64(req.NumAdults+req.NumChildren)

	return travel_models.Itinerary{
		Title:             title,
		Summary:           summary,
		StyleTag:          styleTag,
		Flights:           flight,
		Accommodations:    []travel_models.LodgingOffer{stay},
		DailyPlans:        nil,
		FlightCost:        flightCost,
		AccommodationCost: lodgingCost,
		ActivitiesCost:    activitiesCost,
		EstimatedFoodCost: foodCost,
		TotalCost:         flightCost + lodgingCost + activitiesCost + foodCost,
		Currency:          flight.Currency,
		WhyThisOption:     why,
		Tradeoffs:         tradeoffs,
	}
}

func sortedFlights(offers []travel_models.FlightOffer, less func(a, b travel_models.FlightOffer) bool) []travel_models.FlightOffer {
	out := append([]travel_models.FlightOffer(nil), offers...)
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func sortedStays(offers []travel_models.LodgingOffer, less func(a, b travel_models.LodgingOffer) bool) []travel_models.LodgingOffer {
	out := append([]travel_models.LodgingOffer(nil), offers...)
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}
