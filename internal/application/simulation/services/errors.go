package services

import (
	"errors"

	"github.com/andrescamacho/bikesim-go/internal/domain/competitor"
	"github.com/andrescamacho/bikesim-go/internal/domain/market"
)

func isLotNotFound(err error) bool {
	return errors.Is(err, competitor.ErrLotNotFound)
}

func isCompetitionNotFound(err error) bool {
	return errors.Is(err, market.ErrCompetitionNotFound)
}
