package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/bikesim-go/internal/domain/inventory"
	"github.com/andrescamacho/bikesim-go/internal/domain/market"
	"github.com/andrescamacho/bikesim-go/internal/domain/shared"
)

const bikeBatchSize = 200

// GormProducedBikeRepository implements inventory.ProducedBikeRepository using GORM
type GormProducedBikeRepository struct {
	db *gorm.DB
}

// NewGormProducedBikeRepository creates a new GORM produced bike repository
func NewGormProducedBikeRepository(db *gorm.DB) *GormProducedBikeRepository {
	return &GormProducedBikeRepository{db: db}
}

// Save inserts or updates one bike
func (r *GormProducedBikeRepository) Save(ctx context.Context, bike *inventory.ProducedBike) error {
	model := bikeToModel(bike)
	if err := conn(ctx, r.db).Save(model).Error; err != nil {
		return fmt.Errorf("failed to save produced bike: %w", err)
	}
	bike.ID = model.ID
	return nil
}

// SaveAll inserts new bikes in batches and updates existing ones
func (r *GormProducedBikeRepository) SaveAll(ctx context.Context, bikes []*inventory.ProducedBike) error {
	if len(bikes) == 0 {
		return nil
	}

	var fresh []*ProducedBikeModel
	var freshBikes []*inventory.ProducedBike
	for _, bike := range bikes {
		if bike.ID != 0 {
			if err := r.Save(ctx, bike); err != nil {
				return err
			}
			continue
		}
		fresh = append(fresh, bikeToModel(bike))
		freshBikes = append(freshBikes, bike)
	}
	if len(fresh) == 0 {
		return nil
	}

	if err := conn(ctx, r.db).CreateInBatches(fresh, bikeBatchSize).Error; err != nil {
		return fmt.Errorf("failed to create produced bikes: %w", err)
	}
	for i, model := range fresh {
		freshBikes[i].ID = model.ID
	}
	return nil
}

// FindByID loads one bike
func (r *GormProducedBikeRepository) FindByID(ctx context.Context, id uint) (*inventory.ProducedBike, error) {
	var model ProducedBikeModel
	err := conn(ctx, r.db).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, inventory.ErrBikeNotFound
		}
		return nil, fmt.Errorf("failed to find produced bike: %w", err)
	}
	return modelToBike(&model), nil
}

// ListUnsold returns every unsold bike of the session, oldest first
func (r *GormProducedBikeRepository) ListUnsold(ctx context.Context, sessionID string) ([]*inventory.ProducedBike, error) {
	var models []ProducedBikeModel
	err := conn(ctx, r.db).
		Where("session_id = ? AND is_sold = ?", sessionID, false).
		Order("production_year, production_month, id").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list unsold bikes: %w", err)
	}
	return modelsToBikes(models), nil
}

// ListAvailable returns up to limit unsold bikes of a type and segment, oldest first,
// skipping excludeIDs
func (r *GormProducedBikeRepository) ListAvailable(
	ctx context.Context,
	sessionID string,
	bikeTypeID uint,
	segment market.PriceSegment,
	limit int,
	excludeIDs []uint,
) ([]*inventory.ProducedBike, error) {
	if limit <= 0 {
		return nil, nil
	}

	query := conn(ctx, r.db).
		Where("session_id = ? AND bike_type_id = ? AND price_segment = ? AND is_sold = ?",
			sessionID, bikeTypeID, string(segment), false)
	if len(excludeIDs) > 0 {
		query = query.Where("id NOT IN ?", excludeIDs)
	}

	var models []ProducedBikeModel
	err := query.
		Order("production_year, production_month, id").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list available bikes: %w", err)
	}
	return modelsToBikes(models), nil
}

func bikeToModel(b *inventory.ProducedBike) *ProducedBikeModel {
	return &ProducedBikeModel{
		ID:                b.ID,
		SessionID:         b.SessionID,
		BikeTypeID:        b.BikeTypeID,
		PriceSegment:      string(b.Segment),
		IsSold:            b.Sold,
		ProductionMonth:   b.Period.Month,
		ProductionYear:    b.Period.Year,
		ProductionCost:    b.ProductionCost,
		MonthsInInventory: b.MonthsInInventory,
		StorageCost:       b.StorageCost,
	}
}

func modelToBike(m *ProducedBikeModel) *inventory.ProducedBike {
	return &inventory.ProducedBike{
		ID:                m.ID,
		SessionID:         m.SessionID,
		BikeTypeID:        m.BikeTypeID,
		Segment:           market.PriceSegment(m.PriceSegment),
		Period:            shared.Period{Month: m.ProductionMonth, Year: m.ProductionYear},
		ProductionCost:    m.ProductionCost,
		Sold:              m.IsSold,
		MonthsInInventory: m.MonthsInInventory,
		StorageCost:       m.StorageCost,
	}
}

func modelsToBikes(models []ProducedBikeModel) []*inventory.ProducedBike {
	bikes := make([]*inventory.ProducedBike, len(models))
	for i := range models {
		bikes[i] = modelToBike(&models[i])
	}
	return bikes
}
