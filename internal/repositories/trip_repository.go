package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	dbm "novatrip/internal/models/db_models"
)

type TripRepositoryInterface interface {
	CreateTrip(ctx context.Context, trip *dbm.Trip, days []dbm.ItineraryDay) error
	ReplaceItineraryDays(ctx context.Context, tripID uuid.UUID, text string, days []dbm.ItineraryDay, pinned []string) error
	GetTripById(ctx context.Context, tripID string) (*dbm.Trip, error)
	ListTrips(ctx context.Context, page int, pageSize int) ([]dbm.Trip, int64, error)
	AppendChatHistory(ctx context.Context, tripID uuid.UUID, entry dbm.ChatEntry, keep int) error
}

func NewTripRepository(db *gorm.DB) TripRepositoryInterface {
	return &tripRepository{db: db}
}

type tripRepository struct {
	db *gorm.DB
}

// CreateTrip inserts the trip and its days in one transaction.
func (r *tripRepository) CreateTrip(ctx context.Context, trip *dbm.Trip, days []dbm.ItineraryDay) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if trip.ChatHistory == nil {
			trip.ChatHistory = datatypes.JSON("[]")
		}
		if err := tx.Omit(clause.Associations).Create(trip).Error; err != nil {
			return err
		}
		return insertDays(tx, trip.ID, days)
	})
}

// ReplaceItineraryDays swaps the stored days of a trip wholesale and updates
// its text. Old rows are hard deleted. A non-nil pinned replaces the trip's
// pinned places in the same transaction.
func (r *tripRepository) ReplaceItineraryDays(ctx context.Context, tripID uuid.UUID, text string, days []dbm.ItineraryDay, pinned []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{"itinerary_text": text}
		if pinned != nil {
			updates["pinned_places"] = pq.StringArray(pinned)
		}
		res := tx.Model(&dbm.Trip{}).
			Where("id = ?", tripID).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if err := tx.Unscoped().
			Where("trip_id = ?", tripID).
			Delete(&dbm.ItineraryDay{}).Error; err != nil {
			return err
		}

		return insertDays(tx, tripID, days)
	})
}

func insertDays(tx *gorm.DB, tripID uuid.UUID, days []dbm.ItineraryDay) error {
	if len(days) == 0 {
		return nil
	}
	for i := range days {
		days[i].TripID = tripID
		days[i].Position = i
	}
	return tx.Create(&days).Error
}

func (r *tripRepository) GetTripById(ctx context.Context, tripID string) (*dbm.Trip, error) {
	var trip dbm.Trip
	err := r.db.WithContext(ctx).
		Where("id = ?", tripID).
		Preload("ItineraryDays", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&trip).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &trip, nil
}

func (r *tripRepository) ListTrips(ctx context.Context, page int, pageSize int) ([]dbm.Trip, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&dbm.Trip{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var trips []dbm.Trip
	err := r.db.WithContext(ctx).Scopes(func(db *gorm.DB) *gorm.DB {
		offset := (page - 1) * pageSize
		return db.Offset(offset).Limit(pageSize)
	}).Order("created_at DESC").Find(&trips).Error
	if err != nil {
		return nil, 0, err
	}
	return trips, total, nil
}

// AppendChatHistory adds entry and keeps only the newest keep entries.
// The row is locked so concurrent chats on one trip do not drop entries.
func (r *tripRepository) AppendChatHistory(ctx context.Context, tripID uuid.UUID, entry dbm.ChatEntry, keep int) error {
	if entry.CreatedAt == 0 {
		entry.CreatedAt = time.Now().Unix()
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var trip dbm.Trip
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id", "chat_history").
			Where("id = ?", tripID).
			First(&trip).Error; err != nil {
			return err
		}

		var history []dbm.ChatEntry
		if len(trip.ChatHistory) > 0 {
			if err := json.Unmarshal(trip.ChatHistory, &history); err != nil {
				return fmt.Errorf("decode chat history: %w", err)
			}
		}
		raw, err := json.Marshal(appendBounded(history, entry, keep))
		if err != nil {
			return err
		}
		return tx.Model(&dbm.Trip{}).
			Where("id = ?", tripID).
			Update("chat_history", datatypes.JSON(raw)).Error
	})
}

func appendBounded(history []dbm.ChatEntry, entry dbm.ChatEntry, keep int) []dbm.ChatEntry {
	history = append(history, entry)
	if keep > 0 && len(history) > keep {
		history = history[len(history)-keep:]
	}
	return history
}
