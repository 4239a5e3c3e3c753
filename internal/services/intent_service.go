package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/briculinos/voyana/internal/models/travel_models"
	"github.com/briculinos/voyana/pkg/utils"
)

// IntentServiceInterface turns a free-text travel request into a structured TripRequest.
type IntentServiceInterface interface {
	ExtractIntent(ctx context.Context, message string) (*travel_models.TripRequest, error)
}

const intentSystemPrompt = `You are an expert travel intent parser. Extract structured travel
requirements from natural language and respond with a single JSON object using exactly these keys:
origin, destination, destination_description, start_date, end_date, duration_days,
date_flexibility, num_adults, num_children, num_infants, total_budget, travel_style,
accommodation_types, interests.

Rules:
- Dates are "YYYY-MM-DD" strings or null. Suggest future dates at least 2 weeks from the current
  date when the user gives none; compute end_date from duration when possible.
- If the destination is vague ("beach", "warm place"), pick a specific city that fits and put the
  vague wish into interests.
- travel_style is one of: relaxed, balanced, packed, adventure, luxury, budget.
- total_budget is a number in EUR or null. num_adults defaults to 1, date_flexibility to 3.
- Unknown fields are null. Respond with the JSON object only.`

type openAIIntentService struct {
	client *openai.Client
	model  string
}

func NewOpenAIIntentService(apiKey string) IntentServiceInterface {
	return &openAIIntentService{
		client: openai.NewClient(apiKey),
		model:  openai.GPT4oMini,
	}
}

// intentPayload mirrors the JSON contract of the extraction prompt. Dates come
// back as strings and are parsed separately.
type intentPayload struct {
	Origin                 string   `json:"origin"`
	Destination            string   `json:"destination"`
	DestinationDescription string   `json:"destination_description"`
	StartDate              string   `json:"start_date"`
	EndDate                string   `json:"end_date"`
	DurationDays           *int     `json:"duration_days"`
	DateFlexibility        *int     `json:"date_flexibility"`
	NumAdults              *int     `json:"num_adults"`
	NumChildren            *int     `json:"num_children"`
	NumInfants             *int     `json:"num_infants"`
	TotalBudget            *float64 `json:"total_budget"`
	TravelStyle            string   `json:"travel_style"`
	AccommodationTypes     []string `json:"accommodation_types"`
	Interests              []string `json:"interests"`
}

func (s *openAIIntentService) ExtractIntent(ctx context.Context, message string) (*travel_models.TripRequest, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.model,
		Temperature: 0,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: intentSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf("%s\n\nCurrent date: %s", message, utils.FormatISODate(time.Now()))},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrIntentExtractionFailed, err)
	}
	if len(resp.Choices) == 0 {
		return nil, utils.ErrUnexpectedBehaviorOfAI
	}

	var payload intentPayload
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrUnexpectedBehaviorOfAI, err)
	}
	return payload.toRequest(), nil
}

func (p *intentPayload) toRequest() *travel_models.TripRequest {
	req := &travel_models.TripRequest{
		Origin:                 p.Origin,
		Destination:            p.Destination,
		DestinationDescription: p.DestinationDescription,
		DurationDays:           p.DurationDays,
		DateFlexibility:        3,
		NumAdults:              1,
		TotalBudget:            p.TotalBudget,
		TravelStyle:            travel_models.StyleBalanced,
		AccommodationTypes:     p.AccommodationTypes,
		Interests:              p.Interests,
	}
	if p.DateFlexibility != nil {
		req.DateFlexibility = *p.DateFlexibility
	}
	if p.NumAdults != nil && *p.NumAdults >= 1 {
		req.NumAdults = *p.NumAdults
	}
	if p.NumChildren != nil {
		req.NumChildren = *p.NumChildren
	}
	if p.NumInfants != nil {
		req.NumInfants = *p.NumInfants
	}
	if style := travel_models.TravelStyle(strings.ToLower(p.TravelStyle)); style.Valid() {
		req.TravelStyle = style
	}
	if t, err := utils.ParseISODate(p.StartDate); err == nil {
		req.DepartureDate = &t
	}
	if t, err := utils.ParseISODate(p.EndDate); err == nil {
		req.ReturnDate = &t
	}
	ensureFutureDates(req)
	return req
}

// ensureFutureDates pushes past dates one year forward rather than rejecting
// the request.
func ensureFutureDates(req *travel_models.TripRequest) {
	if req.DepartureDate == nil {
		return
	}
	minStart := time.Now().AddDate(0, 0, 7)
	if req.DepartureDate.After(minStart) {
		return
	}
	log.Printf("[intent] departure %s is past or too soon, moving one year forward",
		utils.FormatISODate(*req.DepartureDate))
	start := req.DepartureDate.AddDate(1, 0, 0)
	req.DepartureDate = &start
	if req.ReturnDate != nil {
		end := req.ReturnDate.AddDate(1, 0, 0)
		req.ReturnDate = &end
	}
}

// HeuristicIntentService is the zero-dependency fallback used when no LLM key
// is configured. Good enough for well-formed requests like "Rome for 10 days
// with 5000 EUR from Copenhagen, 2 adults".
type HeuristicIntentService struct{}

func NewHeuristicIntentService() IntentServiceInterface {
	return &HeuristicIntentService{}
}

var (
	destinationRe = regexp.MustCompile(`\b(?:[Vv]isit|[Tt]o|[Ii]n)\s+([A-Z][a-zA-Z]+(?:\s[A-Z][a-zA-Z]+)?)`)
	originRe      = regexp.MustCompile(`\b[Ff]rom\s+([A-Z][a-zA-Z]+(?:\s[A-Z][a-zA-Z]+)?)`)
	daysRe        = regexp.MustCompile(`(?i)(\d+)[\s-]*day`)
	budgetRe      = regexp.MustCompile(`(?i)(\d[\d,.]*)\s*(?:€|eur|euro)|(?:€|budget\s+(?:of\s+)?)(\d[\d,.]*)`)
	adultsRe      = regexp.MustCompile(`(?i)(\d+)\s+adult`)
	childrenRe    = regexp.MustCompile(`(?i)(\d+)\s+(?:child|children|kid)`)
)

var styleKeywords = []struct {
	keyword string
	style   travel_models.TravelStyle
}{
	{"luxury", travel_models.StyleLuxury},
	{"adventure", travel_models.StyleAdventure},
	{"budget", travel_models.StyleBudget},
	{"cheap", travel_models.StyleBudget},
	{"packed", travel_models.StylePacked},
	{"relax", travel_models.StyleRelaxed},
}

func (s *HeuristicIntentService) ExtractIntent(_ context.Context, message string) (*travel_models.TripRequest, error) {
	if strings.TrimSpace(message) == "" {
		return nil, utils.ErrInvalidInput
	}

	req := &travel_models.TripRequest{
		DateFlexibility: 3,
		NumAdults:       1,
		TravelStyle:     travel_models.StyleBalanced,
	}

	if m := originRe.FindStringSubmatch(message); m != nil {
		req.Origin = m[1]
	}
	if m := destinationRe.FindStringSubmatch(message); m != nil && m[1] != req.Origin {
		req.Destination = m[1]
	}
	if m := daysRe.FindStringSubmatch(message); m != nil {
		if d, err := strconv.Atoi(m[1]); err == nil && d > 0 {
			req.DurationDays = &d
		}
	} else if strings.Contains(strings.ToLower(message), "week") {
		d := 7
		req.DurationDays = &d
	}
	if m := budgetRe.FindStringSubmatch(message); m != nil {
		raw := m[1]
		if raw == "" {
			raw = m[2]
		}
		raw = strings.NewReplacer(",", "", ".", "").Replace(raw)
		if b, err := strconv.ParseFloat(raw, 64); err == nil && b > 0 {
			req.TotalBudget = &b
		}
	}
	if m := adultsRe.FindStringSubmatch(message); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n >= 1 {
			req.NumAdults = n
		}
	}
	if m := childrenRe.FindStringSubmatch(message); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			req.NumChildren = n
		}
	}

	lower := strings.ToLower(message)
	for _, kw := range styleKeywords {
		if strings.Contains(lower, kw.keyword) {
			req.TravelStyle = kw.style
			break
		}
	}

	return req, nil
}
