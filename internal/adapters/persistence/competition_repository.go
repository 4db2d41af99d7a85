package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/andrescamacho/bikesim-go/internal/domain/market"
	"github.com/andrescamacho/bikesim-go/internal/domain/shared"
)

var competitionKeyColumns = []clause.Column{
	{Name: "session_id"},
	{Name: "market_id"},
	{Name: "bike_type_id"},
	{Name: "price_segment"},
	{Name: "month"},
	{Name: "year"},
}

var competitionValueColumns = []string{
	"estimated_demand",
	"maximum_market_volume",
	"total_supply",
	"actual_sales_volume",
	"saturation_level",
	"average_market_price",
	"price_pressure",
	"demand_elasticity",
	"optimal_price_point",
}

// GormCompetitionRepository implements market.CompetitionRepository using GORM
type GormCompetitionRepository struct {
	db *gorm.DB
}

// NewGormCompetitionRepository creates a new GORM competition repository
func NewGormCompetitionRepository(db *gorm.DB) *GormCompetitionRepository {
	return &GormCompetitionRepository{db: db}
}

// Upsert writes the snapshot for its key. A second write for the same key updates the
// existing row; the unique index makes a duplicate impossible.
func (r *GormCompetitionRepository) Upsert(ctx context.Context, c *market.Competition) error {
	model := competitionToModel(c)
	model.ID = 0 // the key, not the surrogate ID, identifies the row
	err := conn(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   competitionKeyColumns,
		DoUpdates: clause.AssignmentColumns(competitionValueColumns),
	}).Create(model).Error
	if err != nil {
		return fmt.Errorf("failed to upsert market competition: %w", err)
	}

	if c.ID == 0 {
		stored, err := r.Find(ctx, c.Key)
		if err != nil {
			return err
		}
		c.ID = stored.ID
	}
	return nil
}

// Find loads the snapshot for a key
func (r *GormCompetitionRepository) Find(ctx context.Context, key market.Key) (*market.Competition, error) {
	var model MarketCompetitionModel
	err := conn(ctx, r.db).
		Where("session_id = ? AND market_id = ? AND bike_type_id = ? AND price_segment = ? AND month = ? AND year = ?",
			key.SessionID, key.MarketID, key.BikeTypeID, string(key.Segment), key.Period.Month, key.Period.Year).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, market.ErrCompetitionNotFound
		}
		return nil, fmt.Errorf("failed to find market competition: %w", err)
	}
	return modelToCompetition(&model), nil
}

// ListForPeriod returns every snapshot of a session for one period
func (r *GormCompetitionRepository) ListForPeriod(ctx context.Context, sessionID string, period shared.Period) ([]*market.Competition, error) {
	var models []MarketCompetitionModel
	err := conn(ctx, r.db).
		Where("session_id = ? AND month = ? AND year = ?", sessionID, period.Month, period.Year).
		Order("market_id, bike_type_id, price_segment").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list market competitions: %w", err)
	}
	competitions := make([]*market.Competition, len(models))
	for i := range models {
		competitions[i] = modelToCompetition(&models[i])
	}
	return competitions, nil
}

func competitionToModel(c *market.Competition) *MarketCompetitionModel {
	return &MarketCompetitionModel{
		ID:                c.ID,
		SessionID:         c.SessionID,
		MarketID:          c.MarketID,
		BikeTypeID:        c.BikeTypeID,
		PriceSegment:      string(c.Segment),
		Month:             c.Period.Month,
		Year:              c.Period.Year,
		EstimatedDemand:   c.EstimatedDemand,
		MaximumVolume:     c.MaximumVolume,
		TotalSupply:       c.TotalSupply,
		ActualSalesVolume: c.ActualSalesVolume,
		SaturationLevel:   c.SaturationLevel,
		AveragePrice:      c.AveragePrice,
		PricePressure:     c.PricePressure,
		Elasticity:        c.Elasticity,
		OptimalPrice:      c.OptimalPrice,
	}
}

func modelToCompetition(m *MarketCompetitionModel) *market.Competition {
	return &market.Competition{
		ID: m.ID,
		Key: market.Key{
			SessionID:  m.SessionID,
			MarketID:   m.MarketID,
			BikeTypeID: m.BikeTypeID,
			Segment:    market.PriceSegment(m.PriceSegment),
			Period:     shared.Period{Month: m.Month, Year: m.Year},
		},
		EstimatedDemand:   m.EstimatedDemand,
		MaximumVolume:     m.MaximumVolume,
		TotalSupply:       m.TotalSupply,
		ActualSalesVolume: m.ActualSalesVolume,
		SaturationLevel:   m.SaturationLevel,
		AveragePrice:      m.AveragePrice,
		PricePressure:     m.PricePressure,
		Elasticity:        m.Elasticity,
		OptimalPrice:      m.OptimalPrice,
	}
}
