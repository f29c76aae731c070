package itinerary

import "strings"

// GenerationErrorPrefix marks a generator reply that reports a failure
// instead of carrying an itinerary.
const GenerationErrorPrefix = "ERROR:"

const (
	noteScaledShort    = "Scaling was applied but the itinerary is still below the target budget utilization."
	noteScalingFailed  = "Scaling to the budget was attempted but the adjusted itinerary failed validation; the original itinerary was kept."
	noteScalingApplied = "Itinerary was scaled to make better use of the budget."
)

// Pipeline normalizes, validates and, when under-utilised, scales itinerary text.
// The zero value uses the default thresholds and catalog.
type Pipeline struct {
	MaxChars int
	Rules    Rules
	Scaler   Scaler
}

func NewPipeline(maxChars int, rules Rules, scaler Scaler) Pipeline {
	return Pipeline{MaxChars: maxChars, Rules: rules, Scaler: scaler}
}

// Result is what the pipeline hands back to callers.
// Text is the text to persist when Outcome.IsValid is true.
type Result struct {
	Text             string  `json:"text"`
	Outcome          Outcome `json:"outcome"`
	ScalingAttempted bool    `json:"scaling_attempted"`
	Scaled           bool    `json:"scaled"`
	Note             string  `json:"note,omitempty"`
}

// IsGenerationError reports whether raw is a generator failure sentinel.
func IsGenerationError(raw string) bool {
	return strings.HasPrefix(strings.TrimSpace(raw), GenerationErrorPrefix)
}

// Run processes raw generator output against budget.
//
// A failed re-validation after scaling discards the scaled text and returns the
// original outcome with a note. Under-utilisation left after a successful
// scaling attempt is accepted.
func (p Pipeline) Run(raw string, budget BudgetSpec) Result {
	if IsGenerationError(raw) {
		return Result{
			Outcome: Outcome{
				Message: strings.TrimSpace(raw),
				Days:    Document{},
				Failure: FailureGeneration,
			},
		}
	}

	rules := p.Rules.withDefaults()
	text := Normalize(raw, p.MaxChars)
	outcome := rules.Validate(text, budget)
	res := Result{Text: text, Outcome: outcome}
	if !outcome.IsValid || !outcome.NeedsScaling {
		return res
	}

	scaler := p.Scaler
	if len(scaler.Catalog) == 0 {
		scaler.Catalog = DefaultCatalog
	}
	if scaler.MinUtilization <= 0 {
		scaler.MinUtilization = rules.MinUtilization
	}

	res.ScalingAttempted = true
	_, scaledText := scaler.Scale(outcome.Days, budget.Value)
	rescaled := rules.Validate(scaledText, budget)
	if !rescaled.IsValid {
		res.Note = noteScalingFailed
		return res
	}

	if rescaled.Days.TotalCost() <= outcome.Days.TotalCost() {
		res.Note = noteScaledShort
		return res
	}

	res.Text = scaledText
	res.Outcome = rescaled
	res.Scaled = true
	res.Note = noteScalingApplied
	if rescaled.NeedsScaling {
		res.Note = noteScaledShort
	}
	return res
}
