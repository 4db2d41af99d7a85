package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/bikesim-go/internal/domain/market"
)

// GormMarketRepository implements market.MarketRepository using GORM
type GormMarketRepository struct {
	db *gorm.DB
}

// NewGormMarketRepository creates a new GORM market repository
func NewGormMarketRepository(db *gorm.DB) *GormMarketRepository {
	return &GormMarketRepository{db: db}
}

// SaveMarket inserts a new market or updates an existing one, assigning its ID on insert
func (r *GormMarketRepository) SaveMarket(ctx context.Context, m *market.Market) error {
	model := marketToModel(m)
	if err := conn(ctx, r.db).Save(model).Error; err != nil {
		return fmt.Errorf("failed to save market: %w", err)
	}
	m.ID = model.ID
	return nil
}

// FindMarket loads a market of a session by ID
func (r *GormMarketRepository) FindMarket(ctx context.Context, sessionID string, id uint) (*market.Market, error) {
	return r.findMarket(ctx, "session_id = ? AND id = ?", sessionID, id)
}

// FindMarketByName loads a market of a session by name
func (r *GormMarketRepository) FindMarketByName(ctx context.Context, sessionID, name string) (*market.Market, error) {
	return r.findMarket(ctx, "session_id = ? AND name = ?", sessionID, name)
}

func (r *GormMarketRepository) findMarket(ctx context.Context, where string, args ...interface{}) (*market.Market, error) {
	var model MarketModel
	err := conn(ctx, r.db).Where(where, args...).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, market.ErrMarketNotFound
		}
		return nil, fmt.Errorf("failed to find market: %w", err)
	}
	return modelToMarket(&model), nil
}

// ListMarkets returns the session's markets ordered by ID
func (r *GormMarketRepository) ListMarkets(ctx context.Context, sessionID string) ([]*market.Market, error) {
	var models []MarketModel
	if err := conn(ctx, r.db).Where("session_id = ?", sessionID).Order("id").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list markets: %w", err)
	}
	markets := make([]*market.Market, len(models))
	for i := range models {
		markets[i] = modelToMarket(&models[i])
	}
	return markets, nil
}

// SaveBikeType inserts a new bike type or updates an existing one
func (r *GormMarketRepository) SaveBikeType(ctx context.Context, b *market.BikeType) error {
	model := &BikeTypeModel{
		ID:             b.ID,
		SessionID:      b.SessionID,
		Name:           b.Name,
		SkilledHours:   b.SkilledHours,
		UnskilledHours: b.UnskilledHours,
	}
	if err := conn(ctx, r.db).Save(model).Error; err != nil {
		return fmt.Errorf("failed to save bike type: %w", err)
	}
	b.ID = model.ID
	return nil
}

// FindBikeType loads a bike type of a session by ID
func (r *GormMarketRepository) FindBikeType(ctx context.Context, sessionID string, id uint) (*market.BikeType, error) {
	return r.findBikeType(ctx, "session_id = ? AND id = ?", sessionID, id)
}

// FindBikeTypeByName loads a bike type of a session by name
func (r *GormMarketRepository) FindBikeTypeByName(ctx context.Context, sessionID, name string) (*market.BikeType, error) {
	return r.findBikeType(ctx, "session_id = ? AND name = ?", sessionID, name)
}

func (r *GormMarketRepository) findBikeType(ctx context.Context, where string, args ...interface{}) (*market.BikeType, error) {
	var model BikeTypeModel
	err := conn(ctx, r.db).Where(where, args...).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, market.ErrBikeTypeNotFound
		}
		return nil, fmt.Errorf("failed to find bike type: %w", err)
	}
	return modelToBikeType(&model), nil
}

// ListBikeTypes returns the session's bike types ordered by ID
func (r *GormMarketRepository) ListBikeTypes(ctx context.Context, sessionID string) ([]*market.BikeType, error) {
	var models []BikeTypeModel
	if err := conn(ctx, r.db).Where("session_id = ?", sessionID).Order("id").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list bike types: %w", err)
	}
	bikeTypes := make([]*market.BikeType, len(models))
	for i := range models {
		bikeTypes[i] = modelToBikeType(&models[i])
	}
	return bikeTypes, nil
}

func marketToModel(m *market.Market) *MarketModel {
	return &MarketModel{
		ID:                   m.ID,
		SessionID:            m.SessionID,
		Name:                 m.Name,
		Location:             m.Location,
		MonthlyCapacity:      m.MonthlyCapacity,
		ElasticityFactor:     m.ElasticityFactor,
		TransportCostHome:    m.TransportCostHome,
		TransportCostForeign: m.TransportCostForeign,
		GreenCityFactor:      m.Factors.GreenCity,
		MountainBikeFactor:   m.Factors.MountainBike,
		RoadBikeFactor:       m.Factors.RoadBike,
		CityBikeFactor:       m.Factors.CityBike,
	}
}

func modelToMarket(model *MarketModel) *market.Market {
	return &market.Market{
		ID:                   model.ID,
		SessionID:            model.SessionID,
		Name:                 model.Name,
		Location:             model.Location,
		MonthlyCapacity:      model.MonthlyCapacity,
		ElasticityFactor:     model.ElasticityFactor,
		TransportCostHome:    model.TransportCostHome,
		TransportCostForeign: model.TransportCostForeign,
		Factors: market.LocationFactors{
			GreenCity:    model.GreenCityFactor,
			MountainBike: model.MountainBikeFactor,
			RoadBike:     model.RoadBikeFactor,
			CityBike:     model.CityBikeFactor,
		},
	}
}

func modelToBikeType(model *BikeTypeModel) *market.BikeType {
	return &market.BikeType{
		ID:             model.ID,
		SessionID:      model.SessionID,
		Name:           model.Name,
		SkilledHours:   model.SkilledHours,
		UnskilledHours: model.UnskilledHours,
	}
}
