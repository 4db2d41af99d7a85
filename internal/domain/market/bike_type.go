package market

import (
	"fmt"
	"strings"
)

// BikeType is a product category with its per-unit labor requirements
type BikeType struct {
	ID             uint
	SessionID      string
	Name           string
	SkilledHours   float64
	UnskilledHours float64
}

// NewBikeType creates a bike type with validation
func NewBikeType(sessionID, name string, skilledHours, unskilledHours float64) (*BikeType, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("bike type name cannot be empty")
	}
	if skilledHours < 0 || unskilledHours < 0 {
		return nil, fmt.Errorf("labor hours must be non-negative")
	}
	return &BikeType{
		SessionID:      sessionID,
		Name:           name,
		SkilledHours:   skilledHours,
		UnskilledHours: unskilledHours,
	}, nil
}

// NameContains reports whether the lower-cased name contains any of the fragments
func (b *BikeType) NameContains(fragments ...string) bool {
	return nameContains(b.Name, fragments...)
}

func nameContains(name string, fragments ...string) bool {
	lower := strings.ToLower(name)
	for _, f := range fragments {
		if strings.Contains(lower, f) {
			return true
		}
	}
	return false
}

// IsEBike reports whether the name marks an electric bike ("e-" prefix style)
func (b *BikeType) IsEBike() bool {
	return b.NameContains("e-")
}

// Popularity is the share of a segment's capacity this bike type can absorb
func (b *BikeType) Popularity() float64 {
	switch {
	case b.NameContains("city"):
		return 0.4
	case b.NameContains("e-"):
		return 0.3
	case b.NameContains("mountain"):
		return 0.2
	case b.NameContains("racing"):
		return 0.1
	default:
		return 0.3
	}
}

// ElasticityAdjustment scales segment elasticity; first matching fragment wins
func (b *BikeType) ElasticityAdjustment() float64 {
	switch {
	case b.NameContains("city"):
		return 1.2
	case b.NameContains("mountain"):
		return 0.8
	case b.NameContains("e-"):
		return 0.6
	default:
		return 1.0
	}
}

// ComplexityFactor raises the reference price for harder-to-build bikes
func (b *BikeType) ComplexityFactor() float64 {
	switch {
	case b.NameContains("e-"):
		return 1.8
	case b.NameContains("mountain"):
		return 1.3
	case b.NameContains("racing"):
		return 1.5
	default:
		return 1.0
	}
}
