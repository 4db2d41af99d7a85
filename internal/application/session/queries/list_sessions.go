package queries

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/bikesim-go/internal/application/mediator"
	"github.com/andrescamacho/bikesim-go/internal/domain/session"
)

// ListSessionsQuery lists every session
type ListSessionsQuery struct{}

// SessionDTO summarizes a session
type SessionDTO struct {
	ID        string
	Name      string
	Period    string
	Balance   decimal.Decimal
	CreatedAt time.Time
}

// ListSessionsResponse holds the sessions
type ListSessionsResponse struct {
	Sessions []*SessionDTO
}

// ListSessionsHandler handles the query
type ListSessionsHandler struct {
	sessionRepo session.Repository
}

// NewListSessionsHandler creates a new handler
func NewListSessionsHandler(sessionRepo session.Repository) *ListSessionsHandler {
	return &ListSessionsHandler{sessionRepo: sessionRepo}
}

// Handle executes the query
func (h *ListSessionsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*ListSessionsQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListSessionsQuery")
	}

	sessions, err := h.sessionRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	dtos := make([]*SessionDTO, len(sessions))
	for i, s := range sessions {
		dtos[i] = &SessionDTO{
			ID:        s.ID,
			Name:      s.Name,
			Period:    s.Period.String(),
			Balance:   s.Balance,
			CreatedAt: s.CreatedAt,
		}
	}
	return &ListSessionsResponse{Sessions: dtos}, nil
}
