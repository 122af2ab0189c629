package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbm "wanderwise/internal/models/db_models"
)

type ItineraryRepository interface {
	CreateItinerary(ctx context.Context, itinerary *dbm.Itinerary) error
	GetItineraryById(ctx context.Context, itineraryId string) (*dbm.Itinerary, error)
	GetListOfItinerariesByUserId(ctx context.Context, page int, pagesize int, userId string) ([]dbm.Itinerary, error)
	UpdateStatus(ctx context.Context, itineraryId string, status dbm.ItineraryStatus) error
	UpdateSharing(ctx context.Context, itineraryId string, isPublic *bool, sharedWith []string) error
	DeleteItinerary(ctx context.Context, itineraryId string) error
}

type itineraryRepository struct {
	db *gorm.DB
}

func NewItineraryRepository(db *gorm.DB) ItineraryRepository {
	return &itineraryRepository{db: db}
}

// CreateItinerary persists the itinerary with its days and activities in one
// transaction, so a partial write never survives.
func (r *itineraryRepository) CreateItinerary(ctx context.Context, itinerary *dbm.Itinerary) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		days := itinerary.Days
		itinerary.Days = nil
		if err := tx.Create(itinerary).Error; err != nil {
			return err
		}

		for i := range days {
			days[i].ItineraryID = itinerary.ID
			activities := days[i].Activities
			days[i].Activities = nil
			if err := tx.Create(&days[i]).Error; err != nil {
				return err
			}

			for j := range activities {
				activities[j].ItineraryDayID = days[i].ID
			}
			if len(activities) > 0 {
				if err := tx.Create(&activities).Error; err != nil {
					return err
				}
			}
			days[i].Activities = activities
		}

		itinerary.Days = days
		return nil
	})
}

func (r *itineraryRepository) GetItineraryById(ctx context.Context, itineraryId string) (*dbm.Itinerary, error) {
	var itinerary dbm.Itinerary
	err := r.db.WithContext(ctx).
		Where("id = ?", itineraryId).
		Preload("Days", func(db *gorm.DB) *gorm.DB {
			return db.Order("day_number ASC")
		}).
		Preload("Days.Activities", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&itinerary).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &itinerary, nil
}

func (r *itineraryRepository) GetListOfItinerariesByUserId(ctx context.Context, page int, pagesize int, userId string) ([]dbm.Itinerary, error) {
	var itineraries []dbm.Itinerary
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userId).
		Order("created_at DESC").
		Offset((page - 1) * pagesize).
		Limit(pagesize).
		Find(&itineraries).Error

	if err != nil {
		return nil, err
	}
	return itineraries, nil
}

func (r *itineraryRepository) UpdateStatus(ctx context.Context, itineraryId string, status dbm.ItineraryStatus) error {
	return r.db.WithContext(ctx).
		Model(&dbm.Itinerary{}).
		Where("id = ?", itineraryId).
		Update("status", status).Error
}

func (r *itineraryRepository) UpdateSharing(ctx context.Context, itineraryId string, isPublic *bool, sharedWith []string) error {
	updates := map[string]any{}
	if isPublic != nil {
		updates["is_public"] = *isPublic
	}
	if sharedWith != nil {
		updates["shared_with"] = sharedWith
	}
	if len(updates) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).
		Model(&dbm.Itinerary{}).
		Where("id = ?", itineraryId).
		Updates(updates).Error
}

// DeleteItinerary soft-deletes the itinerary and its children.
func (r *itineraryRepository) DeleteItinerary(ctx context.Context, itineraryId string) error {
	id, err := uuid.Parse(itineraryId)
	if err != nil {
		return gorm.ErrRecordNotFound
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		subDayIDs := tx.Model(&dbm.ItineraryDay{}).
			Select("id").
			Where("itinerary_id = ?", id)

		if err := tx.Where("itinerary_day_id IN (?)", subDayIDs).
			Delete(&dbm.ItineraryActivity{}).Error; err != nil {
			return err
		}
		if err := tx.Where("itinerary_id = ?", id).
			Delete(&dbm.ItineraryDay{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).
			Delete(&dbm.Itinerary{}).Error
	})
}
