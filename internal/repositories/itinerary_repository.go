package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	dbm "wayplan/internal/models/db_models"
	"wayplan/pkg/utils"
)

// ItineraryRepository is the durable store for generated itineraries.
type ItineraryRepository interface {
	Create(ctx context.Context, itinerary *dbm.Itinerary) (uuid.UUID, error)
	FindByID(ctx context.Context, id string) (*dbm.Itinerary, error)
	DeleteByID(ctx context.Context, id string, ownerID string) error
	ListByOwner(ctx context.Context, ownerID string, page int, pageSize int) ([]dbm.Itinerary, error)
}

type itineraryRepository struct {
	db *gorm.DB
}

func NewItineraryRepository(db *gorm.DB) ItineraryRepository {
	return &itineraryRepository{db: db}
}

func (r *itineraryRepository) Create(ctx context.Context, itinerary *dbm.Itinerary) (uuid.UUID, error) {
	if err := r.db.WithContext(ctx).Create(itinerary).Error; err != nil {
		return uuid.Nil, &utils.PersistenceError{Op: "create", Err: err}
	}
	return itinerary.ID, nil
}

// FindByID returns nil, nil when no live itinerary has the id.
func (r *itineraryRepository) FindByID(ctx context.Context, id string) (*dbm.Itinerary, error) {
	itineraryID, err := uuid.Parse(id)
	if err != nil {
		return nil, nil
	}

	var itinerary dbm.Itinerary
	err = r.db.WithContext(ctx).
		Where("id = ?", itineraryID).
		First(&itinerary).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, &utils.PersistenceError{Op: "find", Err: err}
	}

	return &itinerary, nil
}

func (r *itineraryRepository) DeleteByID(ctx context.Context, id string, ownerID string) error {
	itineraryID, err := uuid.Parse(id)
	if err != nil {
		return utils.ErrItineraryNotFound
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var itinerary dbm.Itinerary
		if err := tx.Where("id = ?", itineraryID).First(&itinerary).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.ErrItineraryNotFound
			}
			return err
		}

		if itinerary.UserID != ownerID {
			return utils.ErrForbidden
		}

		return tx.Delete(&itinerary).Error
	})

	switch {
	case err == nil:
		return nil
	case errors.Is(err, utils.ErrItineraryNotFound), errors.Is(err, utils.ErrForbidden):
		return err
	default:
		return &utils.PersistenceError{Op: "delete", Err: err}
	}
}

func (r *itineraryRepository) ListByOwner(ctx context.Context, ownerID string, page int, pageSize int) ([]dbm.Itinerary, error) {
	var itineraries []dbm.Itinerary
	err := r.db.WithContext(ctx).
		Omit("itinerary_data").
		Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&itineraries).Error
	if err != nil {
		return nil, &utils.PersistenceError{Op: "list", Err: err}
	}

	return itineraries, nil
}
