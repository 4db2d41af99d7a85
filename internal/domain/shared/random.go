package shared

import (
	"math/rand"
	"sync"
)

// RandomSource supplies every stochastic draw of the simulation.
// Implementations are injected so tests can pin outcomes.
type RandomSource interface {
	// Float64 returns a value in [0.0, 1.0)
	Float64() float64
	// Uniform returns a value in [min, max]
	Uniform(min, max float64) float64
	// IntRange returns an integer in [min, max], both inclusive
	IntRange(min, max int) int
}

// SeededRandom is a goroutine-safe RandomSource backed by math/rand
type SeededRandom struct {
	mu   sync.Mutex
	rng  *rand.Rand
	seed int64
}

// NewSeededRandom creates a random source; the same seed replays the same draws
func NewSeededRandom(seed int64) *SeededRandom {
	return &SeededRandom{
		rng:  rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Seed returns the seed the source was created with
func (r *SeededRandom) Seed() int64 {
	return r.seed
}

func (r *SeededRandom) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64()
}

func (r *SeededRandom) Uniform(min, max float64) float64 {
	return min + r.Float64()*(max-min)
}

func (r *SeededRandom) IntRange(min, max int) int {
	if max <= min {
		return min
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return min + r.rng.Intn(max-min+1)
}

// ScriptedRandom replays a fixed sequence of Float64 draws, cycling when exhausted.
// Uniform and IntRange are derived from the same sequence.
type ScriptedRandom struct {
	mu     sync.Mutex
	values []float64
	next   int
}

// NewScriptedRandom creates a scripted source; with no values every draw is 0.5
func NewScriptedRandom(values ...float64) *ScriptedRandom {
	if len(values) == 0 {
		values = []float64{0.5}
	}
	return &ScriptedRandom{values: values}
}

func (r *ScriptedRandom) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	v := r.values[r.next%len(r.values)]
	r.next++
	return v
}

func (r *ScriptedRandom) Uniform(min, max float64) float64 {
	return min + r.Float64()*(max-min)
}

func (r *ScriptedRandom) IntRange(min, max int) int {
	if max <= min {
		return min
	}
	v := min + int(r.Float64()*float64(max-min+1))
	if v > max {
		return max
	}
	return v
}
