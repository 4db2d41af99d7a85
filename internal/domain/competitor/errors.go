package competitor

import (
	"errors"
	"fmt"
)

var (
	// ErrCompetitorNotFound is returned when a competitor cannot be found
	ErrCompetitorNotFound = errors.New("competitor not found")

	// ErrLotNotFound is returned when a production lot cannot be found
	ErrLotNotFound = errors.New("production lot not found")

	// ErrInvalidStrategy is returned for an unknown strategy name
	ErrInvalidStrategy = errors.New("invalid competitor strategy")
)

// ErrInvalidCompetitor reports an out-of-range competitor attribute
type ErrInvalidCompetitor struct {
	Field  string
	Reason string
}

func (e *ErrInvalidCompetitor) Error() string {
	return fmt.Sprintf("invalid competitor: %s %s", e.Field, e.Reason)
}
