package itinerary

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	DefaultMaxPlacesPerDay    = 5
	DefaultMinDayContentChars = 20
	DefaultMinUtilization     = 0.7
)

const (
	msgValidated    = "Itinerary validated successfully."
	msgNoStructure  = "Itinerary structure not recognized. Please ensure it starts with 'Day 1:', 'Day 2:', etc."
	msgOverBudget   = "Total estimated cost (%d INR) exceeds your budget (%d INR). Please adjust your budget or regenerate."
	msgTooManyPlace = "Day %d has too many places (%d). Please limit to %d places per day."
	msgIncomplete   = "Day %d seems to have an incomplete schedule. Please ensure each day has activities."
)

// Rules holds the business thresholds applied by Validate.
type Rules struct {
	MaxPlacesPerDay    int     `yaml:"maxPlacesPerDay"`
	MinDayContentChars int     `yaml:"minDayContentChars"`
	MinUtilization     float64 `yaml:"minUtilization"`
}

func DefaultRules() Rules {
	return Rules{
		MaxPlacesPerDay:    DefaultMaxPlacesPerDay,
		MinDayContentChars: DefaultMinDayContentChars,
		MinUtilization:     DefaultMinUtilization,
	}
}

// withDefaults replaces unset thresholds.
func (r Rules) withDefaults() Rules {
	d := DefaultRules()
	if r.MaxPlacesPerDay <= 0 {
		r.MaxPlacesPerDay = d.MaxPlacesPerDay
	}
	if r.MinDayContentChars <= 0 {
		r.MinDayContentChars = d.MinDayContentChars
	}
	if r.MinUtilization <= 0 || r.MinUtilization > 1 {
		r.MinUtilization = d.MinUtilization
	}
	return r
}

// Validate parses text and applies the default rules with the given places cap.
func Validate(text string, budget BudgetSpec, maxPlacesPerDay int) Outcome {
	r := DefaultRules()
	r.MaxPlacesPerDay = maxPlacesPerDay
	return r.Validate(text, budget)
}

// Validate checks structure, budget ceiling, budget floor, places per day and
// day content, in that order. The first hard failure is reported; parsed days
// are returned with it so callers can still display them.
func (r Rules) Validate(text string, budget BudgetSpec) Outcome {
	r = r.withDefaults()

	days := Parse(text)
	if len(days) == 0 {
		return Outcome{
			Message: msgNoStructure,
			Days:    Document{},
			Failure: FailureStructure,
		}
	}

	total := days.TotalCost()
	if budget.Value > 0 && total > budget.Value {
		return Outcome{
			Message: fmt.Sprintf(msgOverBudget, total, budget.Value),
			Days:    days,
			Failure: FailureBudgetExceeded,
		}
	}

	needsScaling := budget.Value > 0 && float64(total) < r.MinUtilization*float64(budget.Value)

	for _, day := range days {
		if len(day.Places) > r.MaxPlacesPerDay {
			return Outcome{
				Message: fmt.Sprintf(msgTooManyPlace, day.DayNumber, len(day.Places), r.MaxPlacesPerDay),
				Days:    days,
				Failure: FailureTooManyPlaces,
			}
		}
	}

	for _, day := range days {
		if utf8.RuneCountInString(strings.TrimSpace(day.Description)) < r.MinDayContentChars {
			return Outcome{
				Message: fmt.Sprintf(msgIncomplete, day.DayNumber),
				Days:    days,
				Failure: FailureIncompleteDay,
			}
		}
	}

	return Outcome{
		IsValid:      true,
		Message:      msgValidated,
		Days:         days,
		NeedsScaling: needsScaling,
	}
}
