package sales

import (
	"errors"
	"fmt"
)

// ErrDecisionNotFound is returned when a sales decision cannot be found
var ErrDecisionNotFound = errors.New("sales decision not found")

// ErrInvalidDecision reports an invalid decision field
type ErrInvalidDecision struct {
	Field  string
	Reason string
}

func (e *ErrInvalidDecision) Error() string {
	return fmt.Sprintf("invalid sales decision: %s %s", e.Field, e.Reason)
}
