package market

import "errors"

var (
	// ErrMarketNotFound is returned when a market cannot be found
	ErrMarketNotFound = errors.New("market not found")

	// ErrBikeTypeNotFound is returned when a bike type cannot be found
	ErrBikeTypeNotFound = errors.New("bike type not found")

	// ErrCompetitionNotFound is returned when no competition snapshot exists for a key
	ErrCompetitionNotFound = errors.New("market competition not found")

	// ErrInvalidSegment is returned for an unknown price segment
	ErrInvalidSegment = errors.New("invalid price segment")

	// ErrInvalidAllocationStrategy is returned for an unknown allocation strategy name
	ErrInvalidAllocationStrategy = errors.New("invalid allocation strategy")

	// ErrInvalidMarket is returned when market attributes are out of range
	ErrInvalidMarket = errors.New("invalid market")
)
