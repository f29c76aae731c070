package response_models

type ItineraryDay struct {
	DayNumber   int      `json:"day_number"`
	Description string   `json:"description"`
	Cost        int      `json:"cost"`
	Places      []string `json:"places"`
}

type TripSummary struct {
	ID          string `json:"id"`
	Destination string `json:"destination"`
	Budget      string `json:"budget"`
	Days        int    `json:"days"`
	TripType    string `json:"trip_type"`
	CreatedAt   int64  `json:"created_at"`
}

type TripDetail struct {
	TripSummary
	NumPeople     int            `json:"num_people"`
	ItineraryText string         `json:"itinerary_text"`
	TotalCost     int            `json:"total_cost"`
	PinnedPlaces  []string       `json:"pinned_places"`
	Itinerary     []ItineraryDay `json:"itinerary"`
	ChatHistory   []ChatEntry    `json:"chat_history"`
}

type ChatEntry struct {
	Instruction string `json:"instruction"`
	Result      string `json:"result"`
	Accepted    bool   `json:"accepted"`
	CreatedAt   int64  `json:"created_at"`
}

type TripList struct {
	Trips    []TripSummary `json:"trips"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
	Total    int64         `json:"total"`
}
