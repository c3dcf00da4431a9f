// Package generator builds proportion problems.
package generator

import (
	"math/rand"
	"time"

	"github.com/verte-zerg/propdrill/internal/model"
)

// Drawing ranges, inclusive.
const (
	MinMultiplier = 2
	MaxMultiplier = 10
	MinBase       = 1
	MaxBase       = 12
)

// Source supplies the random draws used by the generator.
type Source interface {
	// IntRange returns a uniform integer in [lo, hi].
	IntRange(lo, hi int) int
	// Bool returns a fair coin flip.
	Bool() bool
}

type randSource struct {
	rnd *rand.Rand
}

// NewRandSource returns a math/rand backed Source.
func NewRandSource(seed int64) Source {
	return &randSource{rnd: rand.New(rand.NewSource(seed))}
}

func (s *randSource) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.rnd.Intn(hi-lo+1)
}

func (s *randSource) Bool() bool {
	return s.rnd.Intn(2) == 1
}

// Generator produces randomized proportion problems.
type Generator struct {
	src Source
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a Generator with a fixed seed.
func NewSeeded(seed int64) *Generator {
	return NewWithSource(NewRandSource(seed))
}

// NewWithSource returns a Generator drawing from src.
func NewWithSource(src Source) *Generator {
	return &Generator{src: src}
}

// Next draws a multiplier, a base fraction and the hidden slot. One side is
// the base fraction and the other is the base scaled by the multiplier.
func (g *Generator) Next() model.Problem {
	mul := g.src.IntRange(MinMultiplier, MaxMultiplier)
	num := g.src.IntRange(MinBase, MaxBase)
	den := g.src.IntRange(MinBase, MaxBase)
	aBase := g.src.Bool()

	p := model.Problem{Multiplier: mul, ABase: aBase}
	if aBase {
		p.NumA, p.DenA = num, den
		p.NumB, p.DenB = num*mul, den*mul
	} else {
		p.NumA, p.DenA = num*mul, den*mul
		p.NumB, p.DenB = num, den
	}
	p.Hidden = model.Slot(g.src.IntRange(0, model.SlotCount-1))
	return p
}
