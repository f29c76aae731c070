package request_models

type CreateTripRequest struct {
	Destination string `json:"destination" binding:"required"`
	Budget      string `json:"budget" binding:"required"`
	Days        int    `json:"days" binding:"required,min=1,max=30"`
	TripType    string `json:"trip_type"`
	NumPeople   int    `json:"num_people" binding:"omitempty,min=1,max=50"`
}

type ValidateItineraryRequest struct {
	ItineraryText   string `json:"itinerary_text" binding:"required"`
	Budget          string `json:"budget"`
	MaxPlacesPerDay int    `json:"max_places_per_day" binding:"omitempty,min=1"`
}

type ChatModifyRequest struct {
	Instruction string `json:"instruction" binding:"required"`
	// Optional, the stored itinerary is used when empty.
	CurrentItinerary string `json:"current_itinerary"`
}
