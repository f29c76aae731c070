package response_models

// ValidationResult is the pipeline outcome as returned to clients.
type ValidationResult struct {
	IsValid          bool           `json:"is_valid"`
	Message          string         `json:"message"`
	Failure          string         `json:"failure,omitempty"`
	NeedsScaling     bool           `json:"needs_scaling"`
	ScalingAttempted bool           `json:"scaling_attempted"`
	Scaled           bool           `json:"scaled"`
	Note             string         `json:"note,omitempty"`
	ItineraryText    string         `json:"itinerary_text"`
	TotalCost        int            `json:"total_cost"`
	Days             []ItineraryDay `json:"days"`
}

type CreateTripResult struct {
	Trip       *TripDetail      `json:"trip,omitempty"`
	Validation ValidationResult `json:"validation"`
}

type ChatModifyResult struct {
	Saved      bool             `json:"saved"`
	Places     []string         `json:"places"`
	Validation ValidationResult `json:"validation"`
	Trip       *TripDetail      `json:"trip,omitempty"`
}

type MapMarker struct {
	Name      string   `json:"name"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Resolved  bool     `json:"resolved"`
}

type MapDay struct {
	DayNumber int         `json:"day_number"`
	Markers   []MapMarker `json:"markers"`
}

type TripMap struct {
	TripID string     `json:"trip_id"`
	Center *MapMarker `json:"center,omitempty"`
	Days   []MapDay   `json:"days"`
	Pinned []string   `json:"pinned_places"`
}
