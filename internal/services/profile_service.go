package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/briculinos/voyana/internal/models/travel_models"
)

const (
	maxRankedFlights = 8
	maxRankedStays   = 12
)

type ProfileServiceInterface interface {
	Rank(ctx context.Context, pctx travel_models.PlanningContext) travel_models.PlanningContext
}

type profileService struct{}

func NewProfileService() ProfileServiceInterface {
	return &profileService{}
}

// Rank derives a taste profile when the caller supplied none, then re-scores
// both pools against it and reselects a diverse subset.
func (s *profileService) Rank(_ context.Context, pctx travel_models.PlanningContext) travel_models.PlanningContext {
	if pctx.Profile == nil {
		profile := DeriveProfile(pctx.Request)
		pctx.Profile = &profile
		pctx.AppendMessage("derived taste profile from request")
	}

	pctx.FlightOptions = rerankFlights(pctx.FlightOptions, pctx.Request, *pctx.Profile)
	pctx.LodgingOptions = rerankLodging(pctx.LodgingOptions, pctx.Request, *pctx.Profile)
	pctx.AppendMessage(fmt.Sprintf("re-ranked to %d flights and %d stays",
		len(pctx.FlightOptions), len(pctx.LodgingOptions)))
	pctx.Stage = travel_models.StageRanked
	return pctx
}

// DeriveProfile infers preference tiers from the request alone.
// Budget-consciousness comes from per-person-per-day spend, comfort and
// time-sensitivity from the travel style.
func DeriveProfile(req *travel_models.TripRequest) travel_models.TasteProfile {
	profile := *travel_models.NeutralProfile()

	if req.TravelStyle != "" {
		profile.PreferredStyles = []travel_models.TravelStyle{req.TravelStyle}
	}
	profile.AccommodationPreferences = req.AccommodationTypes
	profile.Interests = req.Interests
	profile.FamilyFriendly = req.NumChildren > 0

	if req.TotalBudget != nil {
		perPersonDay := *req.TotalBudget / float64(req.TravelerCount()) / float64(req.Duration())
		switch {
		case perPersonDay < 100:
			profile.BudgetConsciousness = travel_models.TierHigh
		case perPersonDay > 300:
			profile.BudgetConsciousness = travel_models.TierLow
		default:
			profile.BudgetConsciousness = travel_models.TierModerate
		}
	}

	switch req.TravelStyle {
	case travel_models.StyleLuxury, travel_models.StyleRelaxed:
		profile.ComfortLevel = travel_models.TierHigh
	case travel_models.StyleAdventure, travel_models.StyleBudget:
		profile.ComfortLevel = travel_models.TierLow
	}

	switch req.TravelStyle {
	case travel_models.StylePacked:
		profile.TimeSensitivity = travel_models.TierHigh
	case travel_models.StyleRelaxed:
		profile.TimeSensitivity = travel_models.TierLow
	}

	return profile
}

// rerankFlights scores each offer from a neutral baseline, nudged by the
// profile dimensions, then keeps the top slice.
func rerankFlights(offers []travel_models.FlightOffer, req *travel_models.TripRequest, profile travel_models.TasteProfile) []travel_models.FlightOffer {
	if len(offers) == 0 {
		return offers
	}

	scores := make(map[int]float64, len(offers))
	for i, o := range offers {
		scores[i] = flightPreferenceScore(o, req, profile)
	}

	indices := make([]int, len(offers))
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(a, b int) bool {
		return scores[indices[a]] > scores[indices[b]]
	})

	n := len(indices)
	if n > maxRankedFlights {
		n = maxRankedFlights
	}
	ranked := make([]travel_models.FlightOffer, n)
	for i := 0; i < n; i++ {
		ranked[i] = offers[indices[i]]
	}
	return ranked
}

func flightPreferenceScore(o travel_models.FlightOffer, req *travel_models.TripRequest, profile travel_models.TasteProfile) float64 {
	score := 0.5

	switch profile.TimeSensitivity {
	case travel_models.TierHigh:
		switch o.NumberOfStops {
		case 0:
			score += 0.3
		case 1:
			score += 0.1
		default:
			score -= 0.1
		}
	case travel_models.TierLow:
		if o.NumberOfStops >= 1 {
			score += 0.1
		}
	}

	switch profile.BudgetConsciousness {
	case travel_models.TierHigh:
		if req.TotalBudget != nil && *req.TotalBudget > 0 {
			ratio := o.TotalPrice / (*req.TotalBudget * budgetShare)
			if bonus := 0.3 - ratio*0.3; bonus > 0 {
				score += bonus
			}
		}
	case travel_models.TierLow:
		score += 0.1
	}

	if profile.ComfortLevel == travel_models.TierHigh && len(o.OutboundSegments) > 0 {
		class := strings.ToLower(o.OutboundSegments[0].BookingClass)
		if class != "" && class != "economy" {
			score += 0.2
		}
	}

	if matchesAny(o.Carriers(), profile.PreferredAirlines) {
		score += 0.15
	}

	return clamp01(score)
}

// rerankLodging scores, then reselects under two diversity caps at once: at
// most 4 per price bucket and at most 3 per lodging type. Leftover slots are
// filled from the ranked tail.
func rerankLodging(offers []travel_models.LodgingOffer, req *travel_models.TripRequest, profile travel_models.TasteProfile) []travel_models.LodgingOffer {
	if len(offers) == 0 {
		return offers
	}

	scores := make(map[int]float64, len(offers))
	for i, o := range offers {
		scores[i] = lodgingPreferenceScore(o, req, profile)
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
	return reselectDiverse(ranked)
}

var familyAmenities = []string{"Kids Club", "Pool", "Family Room", "Playground"}

var comfortAmenities = []string{"Spa", "Concierge", "Pool", "Restaurant"}

func lodgingPreferenceScore(o travel_models.LodgingOffer, req *travel_models.TripRequest, profile travel_models.TasteProfile) float64 {
	score := 0.5

	for _, pref := range profile.AccommodationPreferences {
		if strings.EqualFold(pref, o.Type) {
			score += 0.2
			break
		}
	}

	if profile.FamilyFriendly {
		for _, a := range familyAmenities {
			if o.HasAmenity(a) {
				score += 0.2
				break
			}
		}
	}

	switch profile.ComfortLevel {
	case travel_models.TierHigh:
		if o.Rating != nil && *o.Rating >= 4.5 {
			score += 0.2
		}
		count := 0
		for _, a := range comfortAmenities {
			if o.HasAmenity(a) {
				count++
			}
		}
		if count >= 2 {
			score += 0.1
		}
	case travel_models.TierLow:
		if o.PricePerNight < 100 {
			score += 0.15
		}
	}

	if profile.BudgetConsciousness == travel_models.TierHigh && req.TotalBudget != nil && *req.TotalBudget > 0 {
		ratio := o.TotalPrice / (*req.TotalBudget * budgetShare)
		if bonus := 0.3 - ratio*0.3; bonus > 0 {
			score += bonus
		}
	}

	if o.Rating != nil {
		score += (*o.Rating / 5) * 0.15
	}

	if o.DistanceToCenterKM != nil && *o.DistanceToCenterKM < 2 {
		score += 0.1
	}

	if matchesPreferredChain(o.Name, profile.PreferredChains) {
		score += 0.15
	}

	return clamp01(score)
}

// reselectDiverse walks the ranked list once under both caps, then tops up
// from the unused remainder.
func reselectDiverse(ranked []travel_models.LodgingOffer) []travel_models.LodgingOffer {
	const (
		perBucketCap = 4
		perTypeCap   = 3
	)

	bucketCount := make(map[string]int)
	typeCount := make(map[string]int)
	used := make(map[int]bool, len(ranked))

	out := make([]travel_models.LodgingOffer, 0, maxRankedStays)
	for i, o := range ranked {
		if len(out) >= maxRankedStays {
			break
		}
		bucket := priceBucket(o.PricePerNight)
		kind := strings.ToLower(o.Type)
		if bucketCount[bucket] >= perBucketCap || typeCount[kind] >= perTypeCap {
			continue
		}
		out = append(out, o)
		bucketCount[bucket]++
		typeCount[kind]++
		used[i] = true
	}

	for i, o := range ranked {
		if len(out) >= maxRankedStays {
			break
		}
		if !used[i] {
			out = append(out, o)
			used[i] = true
		}
	}
	return out
}

func priceBucket(nightly float64) string {
	switch {
	case nightly < 100:
		return "low"
	case nightly < 200:
		return "mid"
	default:
		return "high"
	}
}

func matchesAny(values, preferred []string) bool {
	for _, p := range preferred {
		for _, v := range values {
			if strings.EqualFold(p, v) {
				return true
			}
		}
	}
	return false
}

func matchesPreferredChain(name string, chains []string) bool {
	lower := strings.ToLower(name)
	for _, c := range chains {
		if c != "" && strings.Contains(lower, strings.ToLower(c)) {
			return true
		}
	}
	return false
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
