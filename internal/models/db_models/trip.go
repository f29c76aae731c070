package db_models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

type Trip struct {
	BaseModel
	Destination   string `gorm:"not null"`
	Budget        string // free text as entered, e.g. "20000 INR"
	Days          int
	TripType      string
	NumPeople     int
	ItineraryText string         `gorm:"type:text"`
	PinnedPlaces  pq.StringArray `gorm:"type:text[]"`
	ChatHistory   datatypes.JSON `gorm:"type:jsonb"`

	ItineraryDays []ItineraryDay `gorm:"foreignKey:TripID"`
}

// ItineraryDay stores one day block. Cost and places are derived from
// Description on read.
type ItineraryDay struct {
	BaseModel
	TripID      uuid.UUID `gorm:"type:uuid;index;not null"`
	Position    int       `gorm:"not null"`
	DayNumber   int       `gorm:"not null"`
	Description string    `gorm:"type:text"`
}

// ChatEntry is one element of Trip.ChatHistory.
type ChatEntry struct {
	Instruction string `json:"instruction"`
	Result      string `json:"result"`
	Accepted    bool   `json:"accepted"`
	CreatedAt   int64  `json:"created_at"`
}
