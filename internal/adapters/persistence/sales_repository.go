package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/bikesim-go/internal/domain/market"
	"github.com/andrescamacho/bikesim-go/internal/domain/sales"
	"github.com/andrescamacho/bikesim-go/internal/domain/shared"
)

// GormSalesRepository implements sales.DecisionRepository and sales.OrderRepository using GORM
type GormSalesRepository struct {
	db *gorm.DB
}

// NewGormSalesRepository creates a new GORM sales repository
func NewGormSalesRepository(db *gorm.DB) *GormSalesRepository {
	return &GormSalesRepository{db: db}
}

// Save inserts or updates a decision
func (r *GormSalesRepository) Save(ctx context.Context, d *sales.Decision) error {
	model := decisionToModel(d)
	if err := conn(ctx, r.db).Save(model).Error; err != nil {
		return fmt.Errorf("failed to save sales decision: %w", err)
	}
	d.ID = model.ID
	d.CreatedAt = model.CreatedAt
	return nil
}

// FindByID loads a decision
func (r *GormSalesRepository) FindByID(ctx context.Context, id uint) (*sales.Decision, error) {
	var model SalesDecisionModel
	err := conn(ctx, r.db).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, sales.ErrDecisionNotFound
		}
		return nil, fmt.Errorf("failed to find sales decision: %w", err)
	}
	return modelToDecision(&model), nil
}

// ListPending returns unprocessed decisions made in or before upTo, oldest first
func (r *GormSalesRepository) ListPending(ctx context.Context, sessionID string, upTo shared.Period) ([]*sales.Decision, error) {
	var models []SalesDecisionModel
	err := conn(ctx, r.db).
		Where("session_id = ? AND is_processed = ?", sessionID, false).
		Where("(decision_year < ? OR (decision_year = ? AND decision_month <= ?))", upTo.Year, upTo.Year, upTo.Month).
		Order("decision_year, decision_month, id").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pending sales decisions: %w", err)
	}
	return modelsToDecisions(models), nil
}

// ListProcessedSince returns processed decisions made in or after since, newest first
func (r *GormSalesRepository) ListProcessedSince(ctx context.Context, sessionID string, since shared.Period) ([]*sales.Decision, error) {
	var models []SalesDecisionModel
	err := conn(ctx, r.db).
		Where("session_id = ? AND is_processed = ?", sessionID, true).
		Where("(decision_year > ? OR (decision_year = ? AND decision_month >= ?))", since.Year, since.Year, since.Month).
		Order("decision_year DESC, decision_month DESC, id DESC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list processed sales decisions: %w", err)
	}
	return modelsToDecisions(models), nil
}

// Record appends one sold-unit order
func (r *GormSalesRepository) Record(ctx context.Context, o *sales.Order) error {
	model := &SalesOrderModel{
		SessionID:     o.SessionID,
		MarketID:      o.MarketID,
		BikeTypeID:    o.BikeTypeID,
		PriceSegment:  string(o.Segment),
		BikeID:        o.BikeID,
		DecisionID:    o.DecisionID,
		SaleMonth:     o.Period.Month,
		SaleYear:      o.Period.Year,
		SalePrice:     o.SalePrice,
		TransportCost: o.TransportCost,
	}
	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to record sales order: %w", err)
	}
	o.ID = model.ID
	return nil
}

// ListForKey returns the player orders of a key
func (r *GormSalesRepository) ListForKey(ctx context.Context, key market.Key) ([]*sales.Order, error) {
	var models []SalesOrderModel
	err := conn(ctx, r.db).
		Where("session_id = ? AND market_id = ? AND bike_type_id = ? AND price_segment = ? AND sale_month = ? AND sale_year = ?",
			key.SessionID, key.MarketID, key.BikeTypeID, string(key.Segment), key.Period.Month, key.Period.Year).
		Order("id").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list sales orders: %w", err)
	}
	orders := make([]*sales.Order, len(models))
	for i, m := range models {
		orders[i] = &sales.Order{
			ID:            m.ID,
			SessionID:     m.SessionID,
			MarketID:      m.MarketID,
			BikeTypeID:    m.BikeTypeID,
			Segment:       market.PriceSegment(m.PriceSegment),
			BikeID:        m.BikeID,
			DecisionID:    m.DecisionID,
			Period:        shared.Period{Month: m.SaleMonth, Year: m.SaleYear},
			SalePrice:     m.SalePrice,
			TransportCost: m.TransportCost,
		}
	}
	return orders, nil
}

func decisionToModel(d *sales.Decision) *SalesDecisionModel {
	return &SalesDecisionModel{
		ID:            d.ID,
		SessionID:     d.SessionID,
		MarketID:      d.MarketID,
		BikeTypeID:    d.BikeTypeID,
		PriceSegment:  string(d.Segment),
		Quantity:      d.Quantity,
		DesiredPrice:  d.DesiredPrice,
		TransportCost: d.TransportCost,
		DecisionMonth: d.Period.Month,
		DecisionYear:  d.Period.Year,
		IsProcessed:   d.Processed,
		QuantitySold:  d.QuantitySold,
		ActualRevenue: d.ActualRevenue,
		UnsoldReason:  string(d.UnsoldReason),
		CreatedAt:     d.CreatedAt,
	}
}

func modelToDecision(m *SalesDecisionModel) *sales.Decision {
	return &sales.Decision{
		ID:            m.ID,
		SessionID:     m.SessionID,
		MarketID:      m.MarketID,
		BikeTypeID:    m.BikeTypeID,
		Segment:       market.PriceSegment(m.PriceSegment),
		Quantity:      m.Quantity,
		DesiredPrice:  m.DesiredPrice,
		TransportCost: m.TransportCost,
		Period:        shared.Period{Month: m.DecisionMonth, Year: m.DecisionYear},
		Processed:     m.IsProcessed,
		QuantitySold:  m.QuantitySold,
		ActualRevenue: m.ActualRevenue,
		UnsoldReason:  sales.UnsoldReason(m.UnsoldReason),
		CreatedAt:     m.CreatedAt,
	}
}

func modelsToDecisions(models []SalesDecisionModel) []*sales.Decision {
	decisions := make([]*sales.Decision, len(models))
	for i := range models {
		decisions[i] = modelToDecision(&models[i])
	}
	return decisions
}
