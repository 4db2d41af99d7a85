package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/bikesim-go/internal/adapters/metrics"
	"github.com/andrescamacho/bikesim-go/internal/domain/competitor"
	"github.com/andrescamacho/bikesim-go/internal/domain/inventory"
	"github.com/andrescamacho/bikesim-go/internal/domain/ledger"
	"github.com/andrescamacho/bikesim-go/internal/domain/market"
	"github.com/andrescamacho/bikesim-go/internal/domain/sales"
	"github.com/andrescamacho/bikesim-go/internal/domain/session"
	"github.com/andrescamacho/bikesim-go/internal/domain/shared"
)

// SaleExecutor turns allocations into sales: it is the only writer of balances,
// sold flags and lot inventory during a sales pass
type SaleExecutor struct {
	bikeRepo        inventory.ProducedBikeRepository
	lotRepo         competitor.LotRepository
	competitorRepo  competitor.Repository
	saleRepo        competitor.SaleRepository
	orderRepo       sales.OrderRepository
	transactionRepo ledger.TransactionRepository
	clock           shared.Clock
}

// NewSaleExecutor creates a new sale executor
func NewSaleExecutor(
	bikeRepo inventory.ProducedBikeRepository,
	lotRepo competitor.LotRepository,
	competitorRepo competitor.Repository,
	saleRepo competitor.SaleRepository,
	orderRepo sales.OrderRepository,
	transactionRepo ledger.TransactionRepository,
	clock shared.Clock,
) *SaleExecutor {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &SaleExecutor{
		bikeRepo:        bikeRepo,
		lotRepo:         lotRepo,
		competitorRepo:  competitorRepo,
		saleRepo:        saleRepo,
		orderRepo:       orderRepo,
		transactionRepo: transactionRepo,
		clock:           clock,
	}
}

// ExecutionResult summarizes the sales executed for one key
type ExecutionResult struct {
	PlayerUnits       int
	PlayerRevenue     decimal.Decimal
	CompetitorUnits   int
	CompetitorRevenue decimal.Decimal
}

// Execute applies every positive allocation. The session balance is credited in memory;
// the caller persists the session. Any invariant violation aborts the pass.
func (e *SaleExecutor) Execute(
	ctx context.Context,
	sess *session.Session,
	m *market.Market,
	book *OfferBook,
	allocations []market.Allocation,
	competitors map[uint]*competitor.Competitor,
) (*ExecutionResult, error) {
	result := &ExecutionResult{PlayerRevenue: decimal.Zero, CompetitorRevenue: decimal.Zero}

	for _, a := range allocations {
		if a.Quantity <= 0 {
			continue
		}
		if a.Quantity > a.Offer.Sellable() {
			return nil, shared.NewInvariantViolation("offer", a.Offer.LotID,
				fmt.Sprintf("allocated %d exceeds sellable %d", a.Quantity, a.Offer.Sellable()))
		}

		switch a.Offer.Seller {
		case market.SellerPlayer:
			revenue, err := e.executePlayerSale(ctx, sess, m, book, a)
			if err != nil {
				return nil, err
			}
			result.PlayerUnits += a.Quantity
			result.PlayerRevenue = result.PlayerRevenue.Add(revenue)
		case market.SellerCompetitor:
			revenue, err := e.executeCompetitorSale(ctx, m, book, a, competitors)
			if err != nil {
				return nil, err
			}
			result.CompetitorUnits += a.Quantity
			result.CompetitorRevenue = result.CompetitorRevenue.Add(revenue)
		}
	}

	if result.PlayerUnits > 0 {
		metrics.RecordPlayerSale(m.Name, result.PlayerUnits, result.PlayerRevenue.InexactFloat64(), sess.Balance.InexactFloat64())
	}
	return result, nil
}

func (e *SaleExecutor) executePlayerSale(
	ctx context.Context,
	sess *session.Session,
	m *market.Market,
	book *OfferBook,
	a market.Allocation,
) (decimal.Decimal, error) {
	decision, ok := book.Decisions[a.Offer.DecisionID]
	if !ok {
		return decimal.Zero, shared.NewInvariantViolation("sales_decision", a.Offer.DecisionID, "offer without backing decision")
	}
	bike, ok := book.Bikes[a.Offer.BikeID]
	if !ok {
		return decimal.Zero, shared.NewInvariantViolation("produced_bike", a.Offer.BikeID, "offer without backing bike")
	}

	if err := bike.MarkSold(); err != nil {
		return decimal.Zero, err
	}
	transport, revenue, err := decision.RecordSale(a.Offer.UnitPrice)
	if err != nil {
		return decimal.Zero, err
	}
	before := sess.Credit(revenue)

	if err := e.bikeRepo.Save(ctx, bike); err != nil {
		return decimal.Zero, fmt.Errorf("failed to save sold bike %d: %w", bike.ID, err)
	}

	order := &sales.Order{
		SessionID:     sess.ID,
		MarketID:      m.ID,
		BikeTypeID:    bike.BikeTypeID,
		Segment:       bike.Segment,
		BikeID:        bike.ID,
		DecisionID:    decision.ID,
		Period:        book.Key.Period,
		SalePrice:     a.Offer.UnitPrice,
		TransportCost: transport,
	}
	if err := e.orderRepo.Record(ctx, order); err != nil {
		return decimal.Zero, fmt.Errorf("failed to record sales order: %w", err)
	}

	tx, err := ledger.NewTransaction(
		sess.ID,
		nil,
		book.Key.Period,
		e.clock.Now(),
		ledger.TransactionTypeIncome,
		ledger.CategorySales,
		revenue,
		before,
		fmt.Sprintf("Sale of bike %d (%s) in %s", bike.ID, bike.Segment, m.Name),
		"sales_decision",
		strconv.FormatUint(uint64(decision.ID), 10),
	)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to create sale transaction: %w", err)
	}
	if err := e.transactionRepo.Create(ctx, tx); err != nil {
		return decimal.Zero, fmt.Errorf("failed to record sale transaction: %w", err)
	}

	return revenue, nil
}

func (e *SaleExecutor) executeCompetitorSale(
	ctx context.Context,
	m *market.Market,
	book *OfferBook,
	a market.Allocation,
	competitors map[uint]*competitor.Competitor,
) (decimal.Decimal, error) {
	lot, ok := book.Lots[a.Offer.LotID]
	if !ok {
		return decimal.Zero, shared.NewInvariantViolation("production_lot", a.Offer.LotID, "offer without backing lot")
	}
	owner, ok := competitors[a.Offer.CompetitorID]
	if !ok {
		return decimal.Zero, shared.NewInvariantViolation("competitor", a.Offer.CompetitorID, "offer without owner")
	}

	if err := lot.RemoveFromInventory(a.Quantity); err != nil {
		return decimal.Zero, err
	}
	if err := e.lotRepo.SaveLot(ctx, lot); err != nil {
		return decimal.Zero, fmt.Errorf("failed to save lot %d: %w", lot.ID, err)
	}

	sale := competitor.NewSale(owner.ID, m.ID, lot.BikeTypeID, lot.Segment, book.Key.Period,
		a.Offer.Quantity, a.Quantity, a.Offer.UnitPrice)
	if err := e.saleRepo.RecordSale(ctx, sale); err != nil {
		return decimal.Zero, fmt.Errorf("failed to record competitor sale: %w", err)
	}

	owner.RecordSale(a.Quantity, sale.TotalRevenue)
	if err := e.competitorRepo.Save(ctx, owner); err != nil {
		return decimal.Zero, fmt.Errorf("failed to save competitor %d: %w", owner.ID, err)
	}

	metrics.RecordCompetitorSale(string(owner.Strategy), a.Quantity, sale.TotalRevenue.InexactFloat64())
	return sale.TotalRevenue, nil
}
