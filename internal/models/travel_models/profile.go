package travel_models

type PreferenceTier string

const (
	TierLow      PreferenceTier = "low"
	TierModerate PreferenceTier = "moderate"
	TierHigh     PreferenceTier = "high"
)

// TasteProfile drives preference re-ranking. Either supplied by the caller or
// derived from the request. Ephemeral; the pipeline never persists it.
type TasteProfile struct {
	PreferredStyles          []TravelStyle  `json:"preferred_styles"`
	BudgetConsciousness      PreferenceTier `json:"budget_consciousness"`
	TimeSensitivity          PreferenceTier `json:"time_sensitivity"`
	ComfortLevel             PreferenceTier `json:"comfort_level"`
	AccommodationPreferences []string       `json:"accommodation_preferences"`
	Interests                []string       `json:"interests"`
	PreferredAirlines        []string       `json:"preferred_airlines"`
	PreferredChains          []string       `json:"preferred_chains"`
	FamilyFriendly           bool           `json:"family_friendly"`
}

// NeutralProfile is the profile used when nothing is known about the traveler.
func NeutralProfile() *TasteProfile {
	return &TasteProfile{
		PreferredStyles:          []TravelStyle{StyleBalanced},
		BudgetConsciousness:      TierModerate,
		TimeSensitivity:          TierModerate,
		ComfortLevel:             TierModerate,
		AccommodationPreferences: []string{"hotel"},
	}
}
