package inventory

import "errors"

// ErrBikeNotFound is returned when a produced bike cannot be found
var ErrBikeNotFound = errors.New("produced bike not found")
