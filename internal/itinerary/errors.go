package itinerary

import (
	"errors"
	"fmt"
)

// ErrInvalidItinerary is wrapped by every hard validation failure.
var ErrInvalidItinerary = errors.New("itinerary rejected")

var (
	ErrStructureNotRecognized = fmt.Errorf("%w: structure not recognized", ErrInvalidItinerary)
	ErrBudgetExceeded         = fmt.Errorf("%w: total cost exceeds budget", ErrInvalidItinerary)
	ErrTooManyPlaces          = fmt.Errorf("%w: too many places in a day", ErrInvalidItinerary)
	ErrIncompleteDay          = fmt.Errorf("%w: incomplete day", ErrInvalidItinerary)

	ErrGenerationFailed = errors.New("itinerary generation failed")
)
