package intent_fx

import (
	"log"
	"os"
	"strings"

	"go.uber.org/fx"

	"github.com/briculinos/voyana/internal/services"
)

var Module = fx.Provide(
	ProvideIntentService,
	ProvideNarrativeService,
)

// ProvideIntentService picks the intent extractor from environment variables.
// INTENT_PROVIDER=openai requires OPENAI_API_KEY; anything else falls back to
// the heuristic parser.
func ProvideIntentService() services.IntentServiceInterface {
	provider := strings.ToLower(os.Getenv("INTENT_PROVIDER"))
	apiKey := os.Getenv("OPENAI_API_KEY")

	if provider == "openai" && apiKey != "" {
		log.Printf("Initializing openai intent extraction")
		return services.NewOpenAIIntentService(apiKey)
	}
	if provider == "openai" {
		log.Printf("INTENT_PROVIDER=openai but OPENAI_API_KEY is empty, using heuristic parser")
	} else {
		log.Printf("Initializing heuristic intent extraction")
	}
	return services.NewHeuristicIntentService()
}

// ProvideNarrativeService uses Gemini when a key is configured, otherwise a
// static description generator.
func ProvideNarrativeService() services.NarrativeServiceInterface {
	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		log.Printf("Initializing gemini narrative service")
		return services.NewGeminiNarrativeService(apiKey)
	}
	log.Printf("Initializing static narrative service")
	return services.NewStaticNarrativeService()
}
