package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/bikesim-go/internal/adapters/metrics"
	"github.com/andrescamacho/bikesim-go/internal/application/logging"
	"github.com/andrescamacho/bikesim-go/internal/domain/competitor"
	"github.com/andrescamacho/bikesim-go/internal/domain/ledger"
	"github.com/andrescamacho/bikesim-go/internal/domain/shared"
)

// LiquidationService clears aged competitor stock according to the liquidation policy
type LiquidationService struct {
	competitorRepo  competitor.Repository
	lotRepo         competitor.LotRepository
	transactionRepo ledger.TransactionRepository
	policy          competitor.LiquidationPolicy
	random          shared.RandomSource
	clock           shared.Clock
}

// NewLiquidationService creates a new liquidation service
func NewLiquidationService(
	competitorRepo competitor.Repository,
	lotRepo competitor.LotRepository,
	transactionRepo ledger.TransactionRepository,
	policy competitor.LiquidationPolicy,
	random shared.RandomSource,
	clock shared.Clock,
) *LiquidationService {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &LiquidationService{
		competitorRepo:  competitorRepo,
		lotRepo:         lotRepo,
		transactionRepo: transactionRepo,
		policy:          policy,
		random:          random,
		clock:           clock,
	}
}

// LiquidationResult summarizes one liquidation pass
type LiquidationResult struct {
	LotsLiquidated  int
	LotsHeld        int
	UnitsLiquidated int
	WrittenDown     decimal.Decimal
}

// Run applies the policy to every stocked lot of the session. Liquidated units leave
// inventory without a sale record; the owner's resources are written down instead.
func (s *LiquidationService) Run(ctx context.Context, sessionID string, period shared.Period) (*LiquidationResult, error) {
	ctx, span := tracer.Start(ctx, "competitor.liquidate")
	var err error
	defer func() { endSpan(span, err) }()

	logger := logging.LoggerFromContext(ctx)
	result := &LiquidationResult{WrittenDown: decimal.Zero}

	competitors, err := s.competitorRepo.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list competitors: %w", err)
	}
	byID := make(map[uint]*competitor.Competitor, len(competitors))
	for _, c := range competitors {
		byID[c.ID] = c
	}

	lots, err := s.lotRepo.ListStocked(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list stocked lots: %w", err)
	}

	touched := make(map[uint]*competitor.Competitor)
	for _, lot := range lots {
		owner, ok := byID[lot.CompetitorID]
		if !ok {
			continue
		}

		switch s.policy.Decide(owner, lot) {
		case competitor.LiquidationActionHold:
			result.LotsHeld++
			continue
		case competitor.LiquidationActionNone:
			continue
		}

		quantity := s.policy.Quantity(lot.QuantityInInventory, s.random.Uniform(s.policy.MinRate, s.policy.MaxRate))
		if quantity <= 0 {
			continue
		}
		if err = lot.RemoveFromInventory(quantity); err != nil {
			return nil, fmt.Errorf("failed to liquidate lot %d: %w", lot.ID, err)
		}

		writeDown := s.policy.WriteDown(lot.CostPerUnit, quantity)
		before := owner.FinancialResources
		owner.WriteDown(writeDown)

		if err = s.lotRepo.SaveLot(ctx, lot); err != nil {
			return nil, fmt.Errorf("failed to save liquidated lot %d: %w", lot.ID, err)
		}
		if err = s.recordWriteDown(ctx, owner, lot, period, quantity, writeDown, before); err != nil {
			return nil, err
		}

		touched[owner.ID] = owner
		result.LotsLiquidated++
		result.UnitsLiquidated += quantity
		result.WrittenDown = result.WrittenDown.Add(writeDown)

		metrics.RecordLiquidation(string(owner.Strategy), quantity)
		metrics.RecordWriteDown(string(owner.Strategy), writeDown.InexactFloat64())

		logger.Log("INFO", "Competitor stock liquidated", map[string]interface{}{
			"competitor": owner.Name,
			"lot_id":     lot.ID,
			"age":        lot.MonthsInInventory,
			"quantity":   quantity,
			"write_down": writeDown.StringFixed(2),
		})
	}

	for _, c := range touched {
		if err = s.competitorRepo.Save(ctx, c); err != nil {
			return nil, fmt.Errorf("failed to save competitor %d: %w", c.ID, err)
		}
	}

	return result, nil
}

func (s *LiquidationService) recordWriteDown(
	ctx context.Context,
	owner *competitor.Competitor,
	lot *competitor.ProductionLot,
	period shared.Period,
	quantity int,
	writeDown decimal.Decimal,
	before decimal.Decimal,
) error {
	competitorID := owner.ID
	tx, err := ledger.NewTransaction(
		owner.SessionID,
		&competitorID,
		period,
		s.clock.Now(),
		ledger.TransactionTypeExpense,
		ledger.CategoryLiquidation,
		writeDown.Neg(),
		before,
		fmt.Sprintf("Liquidation of %d units by %s", quantity, owner.Name),
		"production_lot",
		strconv.FormatUint(uint64(lot.ID), 10),
	)
	if err != nil {
		return fmt.Errorf("failed to create liquidation transaction: %w", err)
	}
	if err := s.transactionRepo.Create(ctx, tx); err != nil {
		return fmt.Errorf("failed to record liquidation transaction: %w", err)
	}
	return nil
}
