package services

import (
	"context"
	"fmt"

	"github.com/andrescamacho/bikesim-go/internal/application/logging"
	"github.com/andrescamacho/bikesim-go/internal/domain/competitor"
	"github.com/andrescamacho/bikesim-go/internal/domain/inventory"
	"github.com/andrescamacho/bikesim-go/internal/domain/shared"
)

// InventoryAgingService recomputes the age of all unsold stock for the current period
type InventoryAgingService struct {
	bikeRepo inventory.ProducedBikeRepository
	lotRepo  competitor.LotRepository
}

// NewInventoryAgingService creates a new aging service
func NewInventoryAgingService(bikeRepo inventory.ProducedBikeRepository, lotRepo competitor.LotRepository) *InventoryAgingService {
	return &InventoryAgingService{bikeRepo: bikeRepo, lotRepo: lotRepo}
}

// AgingResult counts the records touched by one aging pass
type AgingResult struct {
	BikesAged int
	LotsAged  int
}

// UpdateAges recomputes age, storage cost and penalty inputs for every unsold player bike
// and every stocked competitor lot. Running it twice for the same period is a no-op.
func (s *InventoryAgingService) UpdateAges(ctx context.Context, sessionID string, current shared.Period) (*AgingResult, error) {
	ctx, span := tracer.Start(ctx, "inventory.update_ages")
	var err error
	defer func() { endSpan(span, err) }()

	logger := logging.LoggerFromContext(ctx)

	bikes, err := s.bikeRepo.ListUnsold(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list unsold bikes: %w", err)
	}
	for _, bike := range bikes {
		bike.UpdateAge(current)
	}
	if err = s.bikeRepo.SaveAll(ctx, bikes); err != nil {
		return nil, fmt.Errorf("failed to save aged bikes: %w", err)
	}

	lots, err := s.lotRepo.ListStocked(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list stocked lots: %w", err)
	}
	for _, lot := range lots {
		lot.UpdateAge(current)
		if err = s.lotRepo.SaveLot(ctx, lot); err != nil {
			return nil, fmt.Errorf("failed to save lot %d: %w", lot.ID, err)
		}
	}

	logger.Log("DEBUG", "Inventory aged", map[string]interface{}{
		"session_id": sessionID,
		"period":     current.String(),
		"bikes":      len(bikes),
		"lots":       len(lots),
	})

	return &AgingResult{BikesAged: len(bikes), LotsAged: len(lots)}, nil
}
