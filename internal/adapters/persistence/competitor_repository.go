package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/bikesim-go/internal/domain/competitor"
	"github.com/andrescamacho/bikesim-go/internal/domain/market"
	"github.com/andrescamacho/bikesim-go/internal/domain/shared"
)

// GormCompetitorRepository implements competitor.Repository, competitor.LotRepository and
// competitor.SaleRepository using GORM. Lots and sales reach their session through the
// owning competitor.
type GormCompetitorRepository struct {
	db *gorm.DB
}

// NewGormCompetitorRepository creates a new GORM competitor repository
func NewGormCompetitorRepository(db *gorm.DB) *GormCompetitorRepository {
	return &GormCompetitorRepository{db: db}
}

// Save inserts or updates a competitor
func (r *GormCompetitorRepository) Save(ctx context.Context, c *competitor.Competitor) error {
	model := &CompetitorModel{
		ID:                 c.ID,
		SessionID:          c.SessionID,
		Name:               c.Name,
		Strategy:           string(c.Strategy),
		FinancialResources: c.FinancialResources,
		MarketPresence:     c.MarketPresence,
		Aggressiveness:     c.Aggressiveness,
		Efficiency:         c.Efficiency,
		TotalBikesProduced: c.TotalBikesProduced,
		TotalBikesSold:     c.TotalBikesSold,
		TotalRevenue:       c.TotalRevenue,
	}
	if err := conn(ctx, r.db).Save(model).Error; err != nil {
		return fmt.Errorf("failed to save competitor: %w", err)
	}
	c.ID = model.ID
	return nil
}

// FindByID loads a competitor of a session
func (r *GormCompetitorRepository) FindByID(ctx context.Context, sessionID string, id uint) (*competitor.Competitor, error) {
	var model CompetitorModel
	err := conn(ctx, r.db).Where("session_id = ? AND id = ?", sessionID, id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, competitor.ErrCompetitorNotFound
		}
		return nil, fmt.Errorf("failed to find competitor: %w", err)
	}
	return modelToCompetitor(&model), nil
}

// ListBySession returns the session's competitors ordered by ID
func (r *GormCompetitorRepository) ListBySession(ctx context.Context, sessionID string) ([]*competitor.Competitor, error) {
	var models []CompetitorModel
	if err := conn(ctx, r.db).Where("session_id = ?", sessionID).Order("id").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list competitors: %w", err)
	}
	competitors := make([]*competitor.Competitor, len(models))
	for i := range models {
		competitors[i] = modelToCompetitor(&models[i])
	}
	return competitors, nil
}

// SaveLot inserts or updates a production lot
func (r *GormCompetitorRepository) SaveLot(ctx context.Context, lot *competitor.ProductionLot) error {
	model := &CompetitorProductionModel{
		ID:                  lot.ID,
		CompetitorID:        lot.CompetitorID,
		BikeTypeID:          lot.BikeTypeID,
		PriceSegment:        string(lot.Segment),
		Month:               lot.Period.Month,
		Year:                lot.Period.Year,
		QuantityPlanned:     lot.QuantityPlanned,
		QuantityProduced:    lot.QuantityProduced,
		QuantityInInventory: lot.QuantityInInventory,
		CostPerUnit:         lot.CostPerUnit,
		MonthsInInventory:   lot.MonthsInInventory,
	}
	if err := conn(ctx, r.db).Save(model).Error; err != nil {
		return fmt.Errorf("failed to save production lot: %w", err)
	}
	lot.ID = model.ID
	return nil
}

// FindLotByID loads a production lot
func (r *GormCompetitorRepository) FindLotByID(ctx context.Context, id uint) (*competitor.ProductionLot, error) {
	var model CompetitorProductionModel
	err := conn(ctx, r.db).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, competitor.ErrLotNotFound
		}
		return nil, fmt.Errorf("failed to find production lot: %w", err)
	}
	return modelToLot(&model), nil
}

// FindLot loads the lot of a production key
func (r *GormCompetitorRepository) FindLot(
	ctx context.Context,
	competitorID, bikeTypeID uint,
	segment market.PriceSegment,
	period shared.Period,
) (*competitor.ProductionLot, error) {
	var model CompetitorProductionModel
	err := conn(ctx, r.db).
		Where("competitor_id = ? AND bike_type_id = ? AND price_segment = ? AND month = ? AND year = ?",
			competitorID, bikeTypeID, string(segment), period.Month, period.Year).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, competitor.ErrLotNotFound
		}
		return nil, fmt.Errorf("failed to find production lot: %w", err)
	}
	return modelToLot(&model), nil
}

// ListStocked returns every lot of the session with inventory left, oldest first
func (r *GormCompetitorRepository) ListStocked(ctx context.Context, sessionID string) ([]*competitor.ProductionLot, error) {
	return r.listStocked(ctx, r.stockedQuery(ctx, sessionID))
}

// ListStockedFor narrows ListStocked to one bike type and segment
func (r *GormCompetitorRepository) ListStockedFor(
	ctx context.Context,
	sessionID string,
	bikeTypeID uint,
	segment market.PriceSegment,
) ([]*competitor.ProductionLot, error) {
	query := r.stockedQuery(ctx, sessionID).
		Where("competitor_productions.bike_type_id = ? AND competitor_productions.price_segment = ?", bikeTypeID, string(segment))
	return r.listStocked(ctx, query)
}

func (r *GormCompetitorRepository) stockedQuery(ctx context.Context, sessionID string) *gorm.DB {
	return conn(ctx, r.db).Model(&CompetitorProductionModel{}).
		Joins("JOIN competitors ON competitors.id = competitor_productions.competitor_id").
		Where("competitors.session_id = ? AND competitor_productions.quantity_in_inventory > 0", sessionID)
}

func (r *GormCompetitorRepository) listStocked(ctx context.Context, query *gorm.DB) ([]*competitor.ProductionLot, error) {
	var models []CompetitorProductionModel
	err := query.
		Order("competitor_productions.year, competitor_productions.month, competitor_productions.id").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list stocked lots: %w", err)
	}
	lots := make([]*competitor.ProductionLot, len(models))
	for i := range models {
		lots[i] = modelToLot(&models[i])
	}
	return lots, nil
}

// RecordSale appends a competitor sale record
func (r *GormCompetitorRepository) RecordSale(ctx context.Context, sale *competitor.Sale) error {
	model := &CompetitorSaleModel{
		CompetitorID:    sale.CompetitorID,
		MarketID:        sale.MarketID,
		BikeTypeID:      sale.BikeTypeID,
		PriceSegment:    string(sale.Segment),
		Month:           sale.Period.Month,
		Year:            sale.Period.Year,
		QuantityOffered: sale.QuantityOffered,
		QuantitySold:    sale.QuantitySold,
		SalePrice:       sale.SalePrice,
		TotalRevenue:    sale.TotalRevenue,
	}
	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to record competitor sale: %w", err)
	}
	sale.ID = model.ID
	return nil
}

// ListSales returns the competitor sales of a key
func (r *GormCompetitorRepository) ListSales(ctx context.Context, sessionID string, key market.Key) ([]*competitor.Sale, error) {
	var models []CompetitorSaleModel
	err := conn(ctx, r.db).Model(&CompetitorSaleModel{}).
		Joins("JOIN competitors ON competitors.id = competitor_sales.competitor_id").
		Where("competitors.session_id = ?", sessionID).
		Where("competitor_sales.market_id = ? AND competitor_sales.bike_type_id = ? AND competitor_sales.price_segment = ?",
			key.MarketID, key.BikeTypeID, string(key.Segment)).
		Where("competitor_sales.month = ? AND competitor_sales.year = ?", key.Period.Month, key.Period.Year).
		Order("competitor_sales.id").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list competitor sales: %w", err)
	}
	sales := make([]*competitor.Sale, len(models))
	for i, m := range models {
		sales[i] = &competitor.Sale{
			ID:              m.ID,
			CompetitorID:    m.CompetitorID,
			MarketID:        m.MarketID,
			BikeTypeID:      m.BikeTypeID,
			Segment:         market.PriceSegment(m.PriceSegment),
			Period:          shared.Period{Month: m.Month, Year: m.Year},
			QuantityOffered: m.QuantityOffered,
			QuantitySold:    m.QuantitySold,
			SalePrice:       m.SalePrice,
			TotalRevenue:    m.TotalRevenue,
		}
	}
	return sales, nil
}

func modelToCompetitor(m *CompetitorModel) *competitor.Competitor {
	return &competitor.Competitor{
		ID:                 m.ID,
		SessionID:          m.SessionID,
		Name:               m.Name,
		Strategy:           competitor.Strategy(m.Strategy),
		FinancialResources: m.FinancialResources,
		MarketPresence:     m.MarketPresence,
		Aggressiveness:     m.Aggressiveness,
		Efficiency:         m.Efficiency,
		TotalBikesProduced: m.TotalBikesProduced,
		TotalBikesSold:     m.TotalBikesSold,
		TotalRevenue:       m.TotalRevenue,
	}
}

func modelToLot(m *CompetitorProductionModel) *competitor.ProductionLot {
	return &competitor.ProductionLot{
		ID:                  m.ID,
		CompetitorID:        m.CompetitorID,
		BikeTypeID:          m.BikeTypeID,
		Segment:             market.PriceSegment(m.PriceSegment),
		Period:              shared.Period{Month: m.Month, Year: m.Year},
		QuantityPlanned:     m.QuantityPlanned,
		QuantityProduced:    m.QuantityProduced,
		QuantityInInventory: m.QuantityInInventory,
		CostPerUnit:         m.CostPerUnit,
		MonthsInInventory:   m.MonthsInInventory,
	}
}
