package itinerary

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// DayRecord is one parsed day of an itinerary.
type DayRecord struct {
	DayNumber   int      `json:"day_number"`
	Description string   `json:"description"`
	Cost        int      `json:"cost"`
	Places      []string `json:"places"`
}

// Document is an ordered sequence of days in emission order.
type Document []DayRecord

// MaxDayCost caps a single parsed day cost. Larger amounts are clamped so
// that sums stay far from int overflow.
const MaxDayCost = math.MaxInt32

// TotalCost sums the cost of every day. It is recomputed on every call.
func (d Document) TotalCost() int {
	total := 0
	for _, day := range d {
		total = addCost(total, day.Cost)
	}
	return total
}

// addCost adds non-negative amounts, saturating at math.MaxInt.
func addCost(a, b int) int {
	if b > 0 && a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}

// Text joins the day descriptions with a blank line.
func (d Document) Text() string {
	parts := make([]string, 0, len(d))
	for _, day := range d {
		parts = append(parts, day.Description)
	}
	return strings.Join(parts, "\n\n")
}

// PlacesByDay returns the places of each day keyed by day number.
// Repeated day numbers keep the places of their first occurrence.
func (d Document) PlacesByDay() map[int][]string {
	out := make(map[int][]string, len(d))
	for _, day := range d {
		if _, ok := out[day.DayNumber]; ok {
			continue
		}
		out[day.DayNumber] = append([]string(nil), day.Places...)
	}
	return out
}

var budgetDigitsRe = regexp.MustCompile(`[0-9]+`)

// BudgetSpec is the user's free-text budget and the integer extracted from it.
// A zero Value means no budget constraint.
type BudgetSpec struct {
	Raw   string
	Value int
}

// ParseBudget takes the first digit run found anywhere in raw.
// "20,000 INR" yields 20: thousands separators are not understood.
func ParseBudget(raw string) BudgetSpec {
	spec := BudgetSpec{Raw: raw}
	m := budgetDigitsRe.FindString(raw)
	if m == "" {
		return spec
	}
	if v, err := strconv.Atoi(m); err == nil {
		spec.Value = v
	}
	return spec
}

// FailureKind names the hard rule that rejected an itinerary.
type FailureKind string

const (
	FailureNone           FailureKind = ""
	FailureStructure      FailureKind = "structure_not_recognized"
	FailureBudgetExceeded FailureKind = "budget_exceeded"
	FailureTooManyPlaces  FailureKind = "too_many_places"
	FailureIncompleteDay  FailureKind = "incomplete_day"
	FailureGeneration     FailureKind = "generation_failed"
)

// Outcome is the result of validating an itinerary text.
type Outcome struct {
	IsValid      bool        `json:"is_valid"`
	Message      string      `json:"message"`
	Days         Document    `json:"days"`
	NeedsScaling bool        `json:"needs_scaling"`
	Failure      FailureKind `json:"failure,omitempty"`
}

// Err returns the sentinel error matching the outcome's failure, or nil when valid.
func (o Outcome) Err() error {
	switch o.Failure {
	case FailureNone:
		return nil
	case FailureStructure:
		return ErrStructureNotRecognized
	case FailureBudgetExceeded:
		return ErrBudgetExceeded
	case FailureTooManyPlaces:
		return ErrTooManyPlaces
	case FailureIncompleteDay:
		return ErrIncompleteDay
	case FailureGeneration:
		return ErrGenerationFailed
	default:
		return ErrInvalidItinerary
	}
}
