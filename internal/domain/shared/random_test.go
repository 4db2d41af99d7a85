package shared_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/bikesim-go/internal/domain/shared"
)

func TestSeededRandom_SameSeedReplaysDraws(t *testing.T) {
	a := shared.NewSeededRandom(42)
	b := shared.NewSeededRandom(42)

	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
		assert.Equal(t, a.IntRange(60, 90), b.IntRange(60, 90))
	}
	assert.Equal(t, int64(42), a.Seed())
}

func TestSeededRandom_IntRangeInclusiveBounds(t *testing.T) {
	r := shared.NewSeededRandom(7)
	seenMin, seenMax := false, false

	for i := 0; i < 2000; i++ {
		v := r.IntRange(1, 4)
		assert.GreaterOrEqual(t, v, 1)
		assert.LessOrEqual(t, v, 4)
		seenMin = seenMin || v == 1
		seenMax = seenMax || v == 4
	}

	assert.True(t, seenMin)
	assert.True(t, seenMax)
	assert.Equal(t, 5, r.IntRange(5, 5))
	assert.Equal(t, 5, r.IntRange(5, 2))
}

func TestScriptedRandom_CyclesValues(t *testing.T) {
	r := shared.NewScriptedRandom(0.1, 0.9)

	assert.Equal(t, 0.1, r.Float64())
	assert.Equal(t, 0.9, r.Float64())
	assert.Equal(t, 0.1, r.Float64())
}

func TestScriptedRandom_DerivedDraws(t *testing.T) {
	r := shared.NewScriptedRandom(0.5)

	assert.InDelta(t, 15.0, r.Uniform(10, 20), 1e-9)
	assert.Equal(t, 75, r.IntRange(60, 90))

	top := shared.NewScriptedRandom(0.999999)
	assert.Equal(t, 90, top.IntRange(60, 90))

	bottom := shared.NewScriptedRandom(0)
	assert.Equal(t, 60, bottom.IntRange(60, 90))
}

func TestScriptedRandom_DefaultsToMidpoint(t *testing.T) {
	assert.Equal(t, 0.5, shared.NewScriptedRandom().Float64())
}
