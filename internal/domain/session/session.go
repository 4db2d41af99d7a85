package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/andrescamacho/bikesim-go/internal/domain/shared"
)

// ErrSessionNotFound is returned when a session cannot be found
var ErrSessionNotFound = errors.New("session not found")

// ErrSessionBusy is returned when another process holds the session lock
var ErrSessionBusy = errors.New("session is being processed")

// Session owns the simulation clock and the player's single balance.
// Every other entity is scoped to one session.
type Session struct {
	ID        string
	Name      string
	Period    shared.Period
	Balance   decimal.Decimal
	CreatedAt time.Time
}

// NewSession starts a session at the given period with an opening balance
func NewSession(name string, start shared.Period, balance decimal.Decimal) (*Session, error) {
	if name == "" {
		return nil, shared.NewValidationError("name", "cannot be empty")
	}
	if _, err := shared.NewPeriod(start.Month, start.Year); err != nil {
		return nil, fmt.Errorf("invalid start period: %w", err)
	}
	return &Session{
		ID:        uuid.New().String(),
		Name:      name,
		Period:    start,
		Balance:   shared.RoundMoney(balance),
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Credit adds amount to the balance and returns the balance before the change.
// Negative amounts debit.
func (s *Session) Credit(amount decimal.Decimal) (before decimal.Decimal) {
	before = s.Balance
	s.Balance = s.Balance.Add(amount)
	return before
}

// AdvanceMonth moves the clock one month forward, rolling December into January
func (s *Session) AdvanceMonth() shared.Period {
	s.Period = s.Period.Next()
	return s.Period
}
