package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// ItineraryGenerator is the language model behind itinerary creation and
// chat edits. Implementations return the model's raw text.
type ItineraryGenerator interface {
	GenerateItinerary(ctx context.Context, prompt string) (string, error)
	ModifyItinerary(ctx context.Context, prompt string) (string, error)
}

// GeneratorConfig is shared by the remote generators.
type GeneratorConfig struct {
	APIKey            string
	BaseURL           string
	Model             string
	MaxTokens         int
	FinishTokens      int
	RequestsPerSecond float64
	Timeout           time.Duration
}

func (c GeneratorConfig) limiter() *rate.Limiter {
	if c.RequestsPerSecond <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Limit(c.RequestsPerSecond), 1)
}

const (
	plannerSystemPrompt = "You are a travel assistant. Provide a detailed day-by-day itinerary including activities, " +
		"food suggestions with approximate costs, a daily total cost estimate, and a list of places to visit for each day. " +
		"Format the output clearly. " +
		"Crucially, aim to utilize at least 70% of the provided budget, scaling the quality of experiences " +
		"and comfort level (e.g., accommodation, transport, activities) to match the budget. " +
		"For higher budgets, suggest premium experiences. Do not exceed the total budget. " +
		"IMPORTANT: Start every day with a line 'Day N:' and, for each day, explicitly include a line 'Cost: <amount> INR' " +
		"and a line starting with 'Places: ' followed by a comma-separated list of locations."

	editorSystemPrompt = "You are a travel itinerary assistant. You answer with JSON only."

	finishPrompt = "The previous itinerary got cut off. Finish the final sentence or paragraph so the itinerary ends cleanly. " +
		"Ensure all daily costs and places are included."
)

// BuildItineraryPrompt is the user prompt for a new itinerary.
func BuildItineraryPrompt(destination, budget string, days int, tripType string, people int) string {
	var b strings.Builder
	b.WriteString("Create a concise day-by-day itinerary.\n")
	fmt.Fprintf(&b, "Destination: %s\n", destination)
	fmt.Fprintf(&b, "Budget: %s\n", budget)
	fmt.Fprintf(&b, "Duration: %d days\n", days)
	if tripType != "" {
		fmt.Fprintf(&b, "Trip type: %s\n", tripType)
	}
	if people > 1 {
		fmt.Fprintf(&b, "Travellers: %d\n", people)
	}
	b.WriteString("\nInclude:\n")
	b.WriteString("- Daywise schedule with timings\n")
	b.WriteString("- 2 food suggestions per day\n")
	b.WriteString("- Rough cost estimate per day\n")
	b.WriteString("- One safety tip\n")
	b.WriteString("Be clear and user-friendly.")
	return b.String()
}

// BuildModifyPrompt embeds the current itinerary between markers. current is
// expected to be sanitized already so it cannot close the markers itself.
func BuildModifyPrompt(current, instruction string) string {
	var b strings.Builder
	b.WriteString("You are a travel itinerary assistant. You are given the user's current itinerary ")
	b.WriteString("and a user instruction describing edits. You MUST return only a single valid JSON object ")
	b.WriteString("with exactly two keys:\n")
	b.WriteString(`1) "itinerary" : the full updated itinerary as plain human-readable text (MUST include every day from Day 1 to the final day; `)
	b.WriteString("if the instruction only changes one day, keep all other days unchanged and include them in the output)\n")
	b.WriteString(`2) "places" : an array of place names (strings) that appear in the updated itinerary and should be pinned on a map` + "\n\n")
	b.WriteString("Important requirements:\n")
	b.WriteString("- Do not return only the modified day. Return the COMPLETE itinerary containing all days.\n")
	b.WriteString("- Preserve the original day numbering unless the user specifically asks to add/remove days.\n")
	b.WriteString("- Keep a 'Cost:' line and a 'Places:' line for every day.\n")
	b.WriteString("- Output must be JSON only (no extra explanation or commentary).\n\n")
	b.WriteString("CURRENT ITINERARY (between markers):\n")
	b.WriteString(ItineraryStartMarker + "\n")
	b.WriteString(current)
	b.WriteString("\n" + ItineraryEndMarker + "\n\n")
	b.WriteString("USER INSTRUCTION:\n")
	b.WriteString(instruction)
	b.WriteString("\n\nReturn only valid JSON with keys 'itinerary' and 'places'. Ensure JSON is parseable.")
	return b.String()
}

const (
	ItineraryStartMarker = "<<ITINERARY_START>>"
	ItineraryEndMarker   = "<<ITINERARY_END>>"
)

// LooksTruncated reports whether a reply seems to stop mid-sentence.
func LooksTruncated(text string) bool {
	t := strings.TrimSpace(text)
	if t == "" {
		return true
	}
	if strings.HasSuffix(t, "...") || strings.Contains(t, "[...truncated...]") {
		return true
	}
	return !strings.ContainsAny(t[len(t)-1:], ".!?")
}

func joinFinish(raw, extra string) string {
	extra = strings.TrimSpace(extra)
	if extra == "" {
		return raw
	}
	return strings.TrimRight(raw, " \t\r\n") + "\n\n" + extra
}

const mockItinerary = "MOCK ITINERARY (no API key)\n\n" +
	"Day 1: Arrival - Walk around the local market; Sunset at Baga Beach.\n" +
	" - Breakfast at Fisherman's Cafe (approx 500 INR), Beach Shack.\n" +
	" - Cost: 2000 INR. Places: Baga Beach, Local Market.\n\n" +
	"Day 2: Fort Aguada, Old Goa; visit Basilica.\n" +
	" - Lunch at Cafe Chocolat (approx 700 INR), Local Diner.\n" +
	" - Cost: 3000 INR. Places: Fort Aguada, Old Goa, Basilica.\n\n" +
	"Tip: Carry water and sunscreen."

// MockGenerator serves a fixed itinerary when no provider key is configured.
// Edits echo the current itinerary back unchanged.
type MockGenerator struct{}

func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

func (m *MockGenerator) GenerateItinerary(ctx context.Context, prompt string) (string, error) {
	return mockItinerary, ctx.Err()
}

func (m *MockGenerator) ModifyItinerary(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	current := prompt
	if i := strings.Index(prompt, ItineraryStartMarker); i >= 0 {
		current = prompt[i+len(ItineraryStartMarker):]
		if j := strings.Index(current, ItineraryEndMarker); j >= 0 {
			current = current[:j]
		}
	}
	out, err := json.Marshal(map[string]interface{}{
		"itinerary": strings.TrimSpace(current),
		"places":    []string{},
	})
	if err != nil {
		return "", err
	}
	return string(out), nil
}
