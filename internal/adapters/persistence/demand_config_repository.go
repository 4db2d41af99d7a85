package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/andrescamacho/bikesim-go/internal/domain/market"
)

// GormDemandConfigRepository implements market.DemandConfigRepository and
// market.BusinessStrategyStore using GORM. Missing rows are reported as nil, never as errors.
type GormDemandConfigRepository struct {
	db *gorm.DB
}

// NewGormDemandConfigRepository creates a new GORM demand configuration repository
func NewGormDemandConfigRepository(db *gorm.DB) *GormDemandConfigRepository {
	return &GormDemandConfigRepository{db: db}
}

// DemandPercentage returns the configured demand share of a bike type in a market
func (r *GormDemandConfigRepository) DemandPercentage(ctx context.Context, sessionID string, marketID, bikeTypeID uint) (*float64, error) {
	var model MarketDemandModel
	err := conn(ctx, r.db).
		Where("session_id = ? AND market_id = ? AND bike_type_id = ?", sessionID, marketID, bikeTypeID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find demand percentage: %w", err)
	}
	return &model.DemandPercentage, nil
}

// PriceSensitivity returns the configured price sensitivity of a market segment in percent
func (r *GormDemandConfigRepository) PriceSensitivity(ctx context.Context, sessionID string, marketID uint, segment market.PriceSegment) (*float64, error) {
	var model MarketPriceSensitivityModel
	err := conn(ctx, r.db).
		Where("session_id = ? AND market_id = ? AND price_segment = ?", sessionID, marketID, string(segment)).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find price sensitivity: %w", err)
	}
	return &model.Percentage, nil
}

// ConfiguredPrice returns the configured selling price of a bike type in a segment
func (r *GormDemandConfigRepository) ConfiguredPrice(ctx context.Context, sessionID string, bikeTypeID uint, segment market.PriceSegment) (*decimal.Decimal, error) {
	var model BikePriceModel
	err := conn(ctx, r.db).
		Where("session_id = ? AND bike_type_id = ? AND price_segment = ?", sessionID, bikeTypeID, string(segment)).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find configured price: %w", err)
	}
	return &model.Price, nil
}

// SetDemandPercentage creates or replaces a demand share
func (r *GormDemandConfigRepository) SetDemandPercentage(ctx context.Context, sessionID string, marketID, bikeTypeID uint, pct float64) error {
	model := &MarketDemandModel{SessionID: sessionID, MarketID: marketID, BikeTypeID: bikeTypeID, DemandPercentage: pct}
	err := conn(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}, {Name: "market_id"}, {Name: "bike_type_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"demand_percentage"}),
	}).Create(model).Error
	if err != nil {
		return fmt.Errorf("failed to set demand percentage: %w", err)
	}
	return nil
}

// SetPriceSensitivity creates or replaces a price sensitivity
func (r *GormDemandConfigRepository) SetPriceSensitivity(ctx context.Context, sessionID string, marketID uint, segment market.PriceSegment, pct float64) error {
	model := &MarketPriceSensitivityModel{SessionID: sessionID, MarketID: marketID, PriceSegment: string(segment), Percentage: pct}
	err := conn(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}, {Name: "market_id"}, {Name: "price_segment"}},
		DoUpdates: clause.AssignmentColumns([]string{"percentage"}),
	}).Create(model).Error
	if err != nil {
		return fmt.Errorf("failed to set price sensitivity: %w", err)
	}
	return nil
}

// SetConfiguredPrice creates or replaces a configured price
func (r *GormDemandConfigRepository) SetConfiguredPrice(ctx context.Context, sessionID string, bikeTypeID uint, segment market.PriceSegment, price decimal.Decimal) error {
	model := &BikePriceModel{SessionID: sessionID, BikeTypeID: bikeTypeID, PriceSegment: string(segment), Price: price}
	err := conn(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}, {Name: "bike_type_id"}, {Name: "price_segment"}},
		DoUpdates: clause.AssignmentColumns([]string{"price"}),
	}).Create(model).Error
	if err != nil {
		return fmt.Errorf("failed to set configured price: %w", err)
	}
	return nil
}

// Effects returns the session's marketing and sustainability effects; neutral when unset
func (r *GormDemandConfigRepository) Effects(ctx context.Context, sessionID string) (market.BusinessEffects, error) {
	var model BusinessStrategyEffectModel
	err := conn(ctx, r.db).Where("session_id = ?", sessionID).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return market.NeutralBusinessEffects(), nil
		}
		return market.BusinessEffects{}, fmt.Errorf("failed to find business strategy effects: %w", err)
	}
	return market.BusinessEffects{DemandBoost: model.DemandBoost, DemandModifier: model.DemandModifier}, nil
}

// SetEffects creates or replaces the session's business strategy effects
func (r *GormDemandConfigRepository) SetEffects(ctx context.Context, sessionID string, effects market.BusinessEffects) error {
	model := &BusinessStrategyEffectModel{
		SessionID:      sessionID,
		DemandBoost:    effects.DemandBoost,
		DemandModifier: effects.DemandModifier,
		UpdatedAt:      time.Now().UTC(),
	}
	err := conn(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"demand_boost", "demand_modifier", "updated_at"}),
	}).Create(model).Error
	if err != nil {
		return fmt.Errorf("failed to set business strategy effects: %w", err)
	}
	return nil
}
