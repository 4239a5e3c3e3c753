package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/briculinos/voyana/internal/models/travel_models"
)

const (
	// Share of the total budget either pool may spend on a single offer.
	budgetShare = 0.4

	maxScoredFlights = 10
	maxDiverseStays  = 15
)

type OptimizerServiceInterface interface {
	Optimize(ctx context.Context, pctx travel_models.PlanningContext) travel_models.PlanningContext
}

type optimizerService struct{}

func NewOptimizerService() OptimizerServiceInterface {
	return &optimizerService{}
}

// Optimize filters both pools against the budget, scores what remains and
// keeps a bounded, price-diverse shortlist.
func (s *optimizerService) Optimize(_ context.Context, pctx travel_models.PlanningContext) travel_models.PlanningContext {
	req := pctx.Request

	flights := pctx.FlightOptions
	lodging := pctx.LodgingOptions

	if req.TotalBudget != nil {
		cap := *req.TotalBudget * budgetShare
		flights = filterFlightsByBudget(flights, cap)
		lodging = filterLodgingByBudget(lodging, cap)
	}

	flights = scoreFlights(flights)
	if len(flights) > maxScoredFlights {
		flights = flights[:maxScoredFlights]
	}

	lodging = scoreLodging(lodging, req.TravelStyle, req.NumChildren > 0)
	lodging = diversifyByPrice(lodging)

	pctx.FlightOptions = flights
	pctx.LodgingOptions = lodging
	pctx.AppendMessage(fmt.Sprintf("optimized to %d flight and %d lodging candidates",
		len(flights), len(lodging)))
	pctx.Stage = travel_models.StageOptimized
	return pctx
}

func filterFlightsByBudget(offers []travel_models.FlightOffer, cap float64) []travel_models.FlightOffer {
	kept := offers[:0]
	for _, o := range offers {
		if o.TotalPrice <= cap {
			kept = append(kept, o)
		}
	}
	return kept
}

func filterLodgingByBudget(offers []travel_models.LodgingOffer, cap float64) []travel_models.LodgingOffer {
	kept := offers[:0]
	for _, o := range offers {
		if o.TotalPrice <= cap {
			kept = append(kept, o)
		}
	}
	return kept
}

// scoreFlights ranks offers on price, duration and stop count. Weights favor
// price, then speed, then directness.
func scoreFlights(offers []travel_models.FlightOffer) []travel_models.FlightOffer {
	if len(offers) == 0 {
		return offers
	}

	maxPrice := 0.0
	maxDuration := 0
	for _, o := range offers {
		if o.TotalPrice > maxPrice {
			maxPrice = o.TotalPrice
		}
		if o.TotalDurationMinutes > maxDuration {
			maxDuration = o.TotalDurationMinutes
		}
	}

	scores := make(map[int]float64, len(offers))
	for i, o := range offers {
		priceScore := 1.0
		if maxPrice > 0 {
			priceScore = 1 - o.TotalPrice/maxPrice
		}
		durationScore := 1.0
		if maxDuration > 0 {
			durationScore = 1 - float64(o.TotalDurationMinutes)/float64(maxDuration)
		}
		stopScore := 1 - float64(o.NumberOfStops)/3
		if stopScore < 0 {
			stopScore = 0
		}
		scores[i] = 0.5*priceScore + 0.3*durationScore + 0.2*stopScore
	}

	indices := make([]int, len(offers))
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(a, b int) bool {
		return scores[indices[a]] > scores[indices[b]]
	})

	ranked := make([]travel_models.FlightOffer, len(offers))
	for i, idx := range indices {
		ranked[i] = offers[idx]
	}
	return ranked
}

// scoreLodging blends price fit, guest rating, centrality and a small
// style-specific bonus.
func scoreLodging(offers []travel_models.LodgingOffer, style travel_models.TravelStyle, family bool) []travel_models.LodgingOffer {
	if len(offers) == 0 {
		return offers
	}

	maxTotal := 0.0
	for _, o := range offers {
		if o.TotalPrice > maxTotal {
			maxTotal = o.TotalPrice
		}
	}

	scores := make(map[int]float64, len(offers))
	for i, o := range offers {
		scores[i] = lodgingScore(o, style, family, maxTotal)
	}

	indices := make([]int, len(offers))
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(a, b int) bool {
		return scores[indices[a]] > scores[indices[b]]
	})

	ranked := make([]travel_models.LodgingOffer, len(offers))
	for i, idx := range indices {
		ranked[i] = offers[idx]
	}
	return ranked
}

func lodgingScore(o travel_models.LodgingOffer, style travel_models.TravelStyle, family bool, maxTotal float64) float64 {
	ratio := 0.0
	if maxTotal > 0 {
		ratio = o.TotalPrice / maxTotal
	}

	var priceScore float64
	switch style {
	case travel_models.StyleBudget:
		priceScore = 1 - ratio
	case travel_models.StyleLuxury, travel_models.StyleRelaxed:
		priceScore = 0.5
	default:
		priceScore = 0.7 - ratio*0.4
	}

	ratingScore := 0.0
	if o.Rating != nil {
		ratingScore = *o.Rating / 5
	}

	locationScore := 0.5
	if o.DistanceToCenterKM != nil {
		locationScore = 1 - *o.DistanceToCenterKM/10
		if locationScore < 0 {
			locationScore = 0
		}
	}

	bonus := 0.0
	switch {
	case style == travel_models.StyleLuxury && o.Rating != nil && *o.Rating >= 4.5:
		bonus = 0.2
	case style == travel_models.StyleBudget && o.PricePerNight < 80:
		bonus = 0.2
	case family && o.HasAmenity("Kids Club"):
		bonus = 0.2
	}

	return priceScore*0.35 + ratingScore*0.35 + locationScore*0.2 + bonus*0.1
}

// diversifyByPrice keeps a spread of nightly price tiers so downstream
// archetypes always have something to pick from. At most 4 low, 4 mid and
// 2 high offers survive; a tier with no offers simply contributes nothing.
func diversifyByPrice(ranked []travel_models.LodgingOffer) []travel_models.LodgingOffer {
	var cheap, mid, high []travel_models.LodgingOffer
	for _, o := range ranked {
		switch {
		case o.PricePerNight < 100:
			cheap = append(cheap, o)
		case o.PricePerNight < 200:
			mid = append(mid, o)
		default:
			high = append(high, o)
		}
	}

	out := make([]travel_models.LodgingOffer, 0, maxDiverseStays)
	out = append(out, take(cheap, 4)...)
	out = append(out, take(mid, 4)...)
	out = append(out, take(high, 2)...)

	if len(out) > maxDiverseStays {
		out = out[:maxDiverseStays]
	}
	return out
}

func take(offers []travel_models.LodgingOffer, n int) []travel_models.LodgingOffer {
	if len(offers) > n {
		return offers[:n]
	}
	return offers
}
