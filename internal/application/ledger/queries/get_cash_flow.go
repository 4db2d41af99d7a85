package queries

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/bikesim-go/internal/application/mediator"
	"github.com/andrescamacho/bikesim-go/internal/domain/ledger"
	"github.com/andrescamacho/bikesim-go/internal/domain/shared"
)

// GetCashFlowQuery summarizes a session's ledger by category and owner
type GetCashFlowQuery struct {
	SessionID string
	// Period restricts the statement to one simulated month; nil covers the whole session
	Period *shared.Period
}

// GetCashFlowResponse represents the cash flow statement result
type GetCashFlowResponse struct {
	Period     string
	Categories []*CategoryCashFlow
}

// CategoryCashFlow is the flow of one category for one owner ("player" or "competitors")
type CategoryCashFlow struct {
	Category     string
	Owner        string
	TotalInflow  decimal.Decimal
	TotalOutflow decimal.Decimal
	NetFlow      decimal.Decimal
	Transactions int
}

// GetCashFlowHandler handles the GetCashFlow query
type GetCashFlowHandler struct {
	transactionRepo ledger.TransactionRepository
}

// NewGetCashFlowHandler creates a new GetCashFlowHandler
func NewGetCashFlowHandler(transactionRepo ledger.TransactionRepository) *GetCashFlowHandler {
	return &GetCashFlowHandler{transactionRepo: transactionRepo}
}

// Handle executes the GetCashFlow query
func (h *GetCashFlowHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetCashFlowQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetCashFlowQuery")
	}

	opts := ledger.QueryOptions{
		Period:  query.Period,
		Limit:   0, // all entries
		OrderBy: "timestamp ASC",
	}
	transactions, err := h.transactionRepo.FindBySession(ctx, query.SessionID, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}

	label := "all periods"
	if query.Period != nil {
		label = query.Period.String()
	}
	return &GetCashFlowResponse{
		Period:     label,
		Categories: calculateCashFlow(transactions),
	}, nil
}

func calculateCashFlow(transactions []*ledger.Transaction) []*CategoryCashFlow {
	flows := make(map[string]*CategoryCashFlow)

	for _, tx := range transactions {
		owner := "player"
		if tx.IsCompetitorEntry() {
			owner = "competitors"
		}
		key := tx.Category().String() + "/" + owner
		flow, ok := flows[key]
		if !ok {
			flow = &CategoryCashFlow{
				Category:     tx.Category().String(),
				Owner:        owner,
				TotalInflow:  decimal.Zero,
				TotalOutflow: decimal.Zero,
			}
			flows[key] = flow
		}

		flow.Transactions++
		if tx.Amount().IsPositive() {
			flow.TotalInflow = flow.TotalInflow.Add(tx.Amount())
		} else {
			flow.TotalOutflow = flow.TotalOutflow.Sub(tx.Amount())
		}
		flow.NetFlow = flow.TotalInflow.Sub(flow.TotalOutflow)
	}

	categories := make([]*CategoryCashFlow, 0, len(flows))
	for _, flow := range flows {
		categories = append(categories, flow)
	}
	sort.Slice(categories, func(i, j int) bool {
		if categories[i].Category != categories[j].Category {
			return categories[i].Category < categories[j].Category
		}
		return categories[i].Owner < categories[j].Owner
	})
	return categories
}
