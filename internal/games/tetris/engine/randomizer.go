package engine

import (
	"fmt"
	"math/rand"
)

// Randomizer picks the kind of each spawned piece.
type Randomizer interface {
	Next() ShapeKind
}

// RandomizerKind names a spawn policy in configuration.
type RandomizerKind string

const (
	RandomizerUniform RandomizerKind = "uniform"
	RandomizerBag     RandomizerKind = "bag"
)

// NewRandomizer builds the named policy over rng.
func NewRandomizer(kind RandomizerKind, rng *rand.Rand) (Randomizer, error) {
	switch kind {
	case RandomizerUniform, "":
		return NewUniform(rng), nil
	case RandomizerBag:
		return NewBag(rng), nil
	default:
		return nil, fmt.Errorf("engine: unknown randomizer %q", kind)
	}
}

// Uniform picks each kind independently with equal probability.
type Uniform struct {
	rng *rand.Rand
}

// NewUniform creates a uniform randomizer.
func NewUniform(rng *rand.Rand) *Uniform {
	return &Uniform{rng: rng}
}

// Next returns a random kind.
func (u *Uniform) Next() ShapeKind {
	return AllShapes[u.rng.Intn(ShapeCount)]
}

// Bag deals all seven kinds in a shuffled order before reshuffling.
type Bag struct {
	rng   *rand.Rand
	order []int
	index int
}

// NewBag creates a seven-bag randomizer.
func NewBag(rng *rand.Rand) *Bag {
	return &Bag{rng: rng, order: rng.Perm(ShapeCount)}
}

// Next returns the next kind from the current bag.
func (b *Bag) Next() ShapeKind {
	if b.index >= len(b.order) {
		b.order = b.rng.Perm(ShapeCount)
		b.index = 0
	}
	k := AllShapes[b.order[b.index]]
	b.index++
	return k
}
