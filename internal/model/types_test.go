package model

import (
	"errors"
	"testing"
)

func TestProblemValueAndPair(t *testing.T) {
	p := Problem{NumA: 3, DenA: 4, NumB: 21, DenB: 28, Multiplier: 7, ABase: true, Hidden: SlotDenB}
	tests := []struct {
		slot  Slot
		value int
		a, b  int
	}{
		{SlotNumA, 3, 3, 21},
		{SlotDenA, 4, 4, 28},
		{SlotNumB, 21, 3, 21},
		{SlotDenB, 28, 4, 28},
	}
	for _, tt := range tests {
		got, err := p.Value(tt.slot)
		if err != nil {
			t.Fatalf("value %s: %v", tt.slot, err)
		}
		if got != tt.value {
			t.Fatalf("value %s: expected %d, got %d", tt.slot, tt.value, got)
		}
		a, b, err := p.Pair(tt.slot)
		if err != nil {
			t.Fatalf("pair %s: %v", tt.slot, err)
		}
		if a != tt.a || b != tt.b {
			t.Fatalf("pair %s: expected (%d, %d), got (%d, %d)", tt.slot, tt.a, tt.b, a, b)
		}
	}
	answer, err := p.Answer()
	if err != nil || answer != 28 {
		t.Fatalf("expected answer 28, got %d (%v)", answer, err)
	}
	if !p.Equivalent() {
		t.Fatalf("expected 3/4 = 21/28 to be equivalent")
	}
}

func TestProblemInvalidSlot(t *testing.T) {
	p := Problem{NumA: 1, DenA: 2, NumB: 2, DenB: 4, Hidden: Slot(7)}
	if _, err := p.Answer(); !errors.Is(err, ErrInvalidSlot) {
		t.Fatalf("expected ErrInvalidSlot, got %v", err)
	}
	if _, _, err := p.Pair(Slot(-1)); !errors.Is(err, ErrInvalidSlot) {
		t.Fatalf("expected ErrInvalidSlot, got %v", err)
	}
	if Slot(4).Valid() {
		t.Fatalf("slot 4 must not be valid")
	}
}

func TestHistogramBounds(t *testing.T) {
	var h Histogram
	for _, f := range []int{1, 12, 12} {
		if err := h.Inc(f); err != nil {
			t.Fatalf("inc %d: %v", f, err)
		}
	}
	for _, f := range []int{0, 13, -2} {
		if err := h.Inc(f); !errors.Is(err, ErrFactorRange) {
			t.Fatalf("inc %d: expected ErrFactorRange, got %v", f, err)
		}
	}
	if h.Count(1) != 1 || h.Count(12) != 2 || h.Count(13) != 0 {
		t.Fatalf("unexpected counts: %v", h)
	}
	if h.Total() != 3 {
		t.Fatalf("expected total 3, got %d", h.Total())
	}
	h.Reset()
	if h.Total() != 0 {
		t.Fatalf("expected reset histogram, got %v", h)
	}
}
