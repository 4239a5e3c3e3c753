package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/briculinos/voyana/internal/models/travel_models"
	"github.com/briculinos/voyana/pkg/utils"
)

// NarrativeServiceInterface decorates a parsed request with a short destination pitch
// and a representative image. Best effort; the pipeline never fails on it.
type NarrativeServiceInterface interface {
	Decorate(ctx context.Context, req *travel_models.TripRequest, userMessage string)
}

type geminiNarrativeService struct {
	apiKey string
	model  string
}

func NewGeminiNarrativeService(apiKey string) NarrativeServiceInterface {
	return &geminiNarrativeService{apiKey: apiKey, model: "gemini-1.5-flash"}
}

func (s *geminiNarrativeService) Decorate(ctx context.Context, req *travel_models.TripRequest, userMessage string) {
	if req.Destination == "" {
		return
	}
	req.DestinationImageURL = destinationImage(req.Destination)
	if req.DestinationDescription != "" {
		return
	}

	desc, err := s.describe(ctx, req.Destination, userMessage)
	if err != nil {
		log.Printf("[narrative] description for %s failed: %v", req.Destination, err)
		req.DestinationDescription = fallbackDescription(req.Destination)
		return
	}
	req.DestinationDescription = desc
}

func (s *geminiNarrativeService) describe(ctx context.Context, destination, userMessage string) (string, error) {
	if s.apiKey == "" {
		return "", utils.ErrProviderUnavailable
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		return "", err
	}
	defer client.Close()

	m := client.GenerativeModel(s.model)
	prompt := fmt.Sprintf(
		"In 2-3 sentences, explain why %s is a great fit for this travel request: %q. "+
			"Write directly to the traveler, no preamble.",
		destination, userMessage)

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", utils.ErrUnexpectedBehaviorOfAI
	}
	return strings.TrimSpace(fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])), nil
}

// StaticNarrativeService is used when no Gemini key is configured.
type StaticNarrativeService struct{}

func NewStaticNarrativeService() NarrativeServiceInterface {
	return &StaticNarrativeService{}
}

func (s *StaticNarrativeService) Decorate(_ context.Context, req *travel_models.TripRequest, _ string) {
	if req.Destination == "" {
		return
	}
	req.DestinationImageURL = destinationImage(req.Destination)
	if req.DestinationDescription == "" {
		req.DestinationDescription = fallbackDescription(req.Destination)
	}
}

func fallbackDescription(destination string) string {
	return fmt.Sprintf("%s offers a great mix of sights, food and atmosphere for this trip.", destination)
}

var destinationImages = map[string]string{
	"rome":       "https://images.unsplash.com/photo-1552832230-c0197dd311b5",
	"paris":      "https://images.unsplash.com/photo-1502602898657-3e91760cbb34",
	"barcelona":  "https://images.unsplash.com/photo-1583422409516-2895a77efded",
	"london":     "https://images.unsplash.com/photo-1513635269975-59663e0ac1ad",
	"lisbon":     "https://images.unsplash.com/photo-1585208798174-6cedd86e019a",
	"amsterdam":  "https://images.unsplash.com/photo-1534351590666-13e3e96b5017",
	"berlin":     "https://images.unsplash.com/photo-1560969184-10fe8719e047",
	"prague":     "https://images.unsplash.com/photo-1541849546-216549ae216d",
	"vienna":     "https://images.unsplash.com/photo-1516550893923-42d28e5677af",
	"madrid":     "https://images.unsplash.com/photo-1539037116277-4db20889f2d4",
	"athens":     "https://images.unsplash.com/photo-1555993539-1732b0258235",
	"venice":     "https://images.unsplash.com/photo-1514890547357-a9ee288728e0",
	"new york":   "https://images.unsplash.com/photo-1496442226666-8d4d0e62e6e9",
	"tokyo":      "https://images.unsplash.com/photo-1540959733332-eab4deabeeaf",
	"dubai":      "https://images.unsplash.com/photo-1512453979798-5ea266f8880c",
	"istanbul":   "https://images.unsplash.com/photo-1524231757912-21f4fe3a7200",
	"nice":       "https://images.unsplash.com/photo-1491166617655-0723a0999cfc",
	"copenhagen": "https://images.unsplash.com/photo-1513622470522-26c3c8a854bc",
}

// A neutral travel image for cities outside the curated table.
const defaultDestinationImage = "https://images.unsplash.com/photo-1488646953014-85cb44e25828"

func destinationImage(destination string) string {
	key := strings.ToLower(strings.TrimSpace(destination))
	if i := strings.IndexByte(key, ','); i >= 0 {
		key = strings.TrimSpace(key[:i])
	}
	if url, ok := destinationImages[key]; ok {
		return url
	}
	return defaultDestinationImage
}
