// Package model defines shared data structures.
package model

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSlot reports a hidden slot outside the four fraction positions.
	ErrInvalidSlot = errors.New("invalid hidden slot")
	// ErrFactorRange reports a histogram factor outside MinFactor..MaxFactor.
	ErrFactorRange = errors.New("factor out of histogram range")
)

// Config defines practice settings.
type Config struct {
	Rounds   int
	Seed     int64
	HasSeed  bool
	Plain    bool
	DebugLog string
}

// Slot identifies one of the four values of a fraction pair.
type Slot int

// Fraction positions in display order: a/b = c/d.
const (
	SlotNumA Slot = iota
	SlotDenA
	SlotNumB
	SlotDenB
)

// SlotCount is the number of positions a problem can hide.
const SlotCount = 4

// Valid reports whether s is one of the four defined positions.
func (s Slot) Valid() bool {
	return s >= SlotNumA && s <= SlotDenB
}

func (s Slot) String() string {
	switch s {
	case SlotNumA:
		return "numerator A"
	case SlotDenA:
		return "denominator A"
	case SlotNumB:
		return "numerator B"
	case SlotDenB:
		return "denominator B"
	default:
		return fmt.Sprintf("slot(%d)", int(s))
	}
}

// Problem is a pair of equivalent fractions with one value hidden.
type Problem struct {
	NumA int
	DenA int
	NumB int
	DenB int

	// Multiplier scales the base side into the other side.
	Multiplier int
	// ABase is true when side A is the unscaled pair.
	ABase  bool
	Hidden Slot
}

// Value returns the number shown at slot.
func (p Problem) Value(slot Slot) (int, error) {
	switch slot {
	case SlotNumA:
		return p.NumA, nil
	case SlotDenA:
		return p.DenA, nil
	case SlotNumB:
		return p.NumB, nil
	case SlotDenB:
		return p.DenB, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrInvalidSlot, int(slot))
	}
}

// Answer returns the value the user must supply.
func (p Problem) Answer() (int, error) {
	return p.Value(p.Hidden)
}

// Pair returns the numerators for a numerator slot and the denominators for a
// denominator slot, side A first.
func (p Problem) Pair(slot Slot) (a, b int, err error) {
	switch slot {
	case SlotNumA, SlotNumB:
		return p.NumA, p.NumB, nil
	case SlotDenA, SlotDenB:
		return p.DenA, p.DenB, nil
	default:
		return 0, 0, fmt.Errorf("%w: %d", ErrInvalidSlot, int(slot))
	}
}

// Equivalent reports whether NumA/DenA == NumB/DenB by cross-multiplication.
func (p Problem) Equivalent() bool {
	return p.NumA*p.DenB == p.NumB*p.DenA
}

// Histogram bounds: one bucket per multiplication-table factor.
const (
	MinFactor = 1
	MaxFactor = 12
)

// Histogram counts how often each factor was involved in a wrong answer.
type Histogram [MaxFactor]int

// Inc increments the bucket for factor.
func (h *Histogram) Inc(factor int) error {
	if factor < MinFactor || factor > MaxFactor {
		return fmt.Errorf("%w: %d", ErrFactorRange, factor)
	}
	h[factor-MinFactor]++
	return nil
}

// Count returns the bucket for factor, zero when out of range.
func (h Histogram) Count(factor int) int {
	if factor < MinFactor || factor > MaxFactor {
		return 0
	}
	return h[factor-MinFactor]
}

// Total sums every bucket.
func (h Histogram) Total() int {
	total := 0
	for _, n := range h {
		total += n
	}
	return total
}

// Reset zeroes every bucket.
func (h *Histogram) Reset() {
	*h = Histogram{}
}
