package commands

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/bikesim-go/internal/application/logging"
	"github.com/andrescamacho/bikesim-go/internal/application/mediator"
	"github.com/andrescamacho/bikesim-go/internal/domain/inventory"
	"github.com/andrescamacho/bikesim-go/internal/domain/market"
	"github.com/andrescamacho/bikesim-go/internal/domain/session"
)

// AddStockCommand books finished player bikes into the warehouse in the current month.
// It stands in for the production module, which lives outside the market core.
type AddStockCommand struct {
	SessionID    string
	BikeTypeName string
	Segment      string
	Quantity     int
	UnitCost     decimal.Decimal
}

// AddStockResponse reports the booked bikes
type AddStockResponse struct {
	BikeIDs []uint
	Period  string
}

// AddStockHandler handles the AddStock command
type AddStockHandler struct {
	sessionRepo session.Repository
	marketRepo  market.MarketRepository
	bikeRepo    inventory.ProducedBikeRepository
}

// NewAddStockHandler creates a new handler
func NewAddStockHandler(
	sessionRepo session.Repository,
	marketRepo market.MarketRepository,
	bikeRepo inventory.ProducedBikeRepository,
) *AddStockHandler {
	return &AddStockHandler{sessionRepo: sessionRepo, marketRepo: marketRepo, bikeRepo: bikeRepo}
}

// Handle executes the AddStock command
func (h *AddStockHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*AddStockCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *AddStockCommand")
	}
	if cmd.Quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive, got %d", cmd.Quantity)
	}
	if cmd.UnitCost.IsNegative() {
		return nil, fmt.Errorf("unit cost must be non-negative")
	}

	sess, err := h.sessionRepo.FindByID(ctx, cmd.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	bikeType, err := h.marketRepo.FindBikeTypeByName(ctx, sess.ID, cmd.BikeTypeName)
	if err != nil {
		return nil, fmt.Errorf("failed to find bike type %q: %w", cmd.BikeTypeName, err)
	}
	segment, err := market.ParsePriceSegment(cmd.Segment)
	if err != nil {
		return nil, err
	}

	bikes := make([]*inventory.ProducedBike, cmd.Quantity)
	for i := range bikes {
		bikes[i] = inventory.NewProducedBike(sess.ID, bikeType.ID, segment, sess.Period, cmd.UnitCost)
	}
	if err := h.bikeRepo.SaveAll(ctx, bikes); err != nil {
		return nil, fmt.Errorf("failed to save bikes: %w", err)
	}

	ids := make([]uint, len(bikes))
	for i, b := range bikes {
		ids[i] = b.ID
	}

	logging.LoggerFromContext(ctx).Log("INFO", "Stock added", map[string]interface{}{
		"session_id": sess.ID,
		"bike_type":  bikeType.Name,
		"segment":    string(segment),
		"quantity":   cmd.Quantity,
	})
	return &AddStockResponse{BikeIDs: ids, Period: sess.Period.String()}, nil
}
