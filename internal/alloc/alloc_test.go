package alloc

import (
	"errors"
	"testing"

	"github.com/solatis/fontfilter/internal/types"
)

func TestHeap_TracksLiveUnits(t *testing.T) {
	h := NewHeap()
	if err := h.Alloc(3); err != nil {
		t.Fatalf("Alloc() error = %v, want nil", err)
	}
	h.Free(1)
	if h.Live() != 2 {
		t.Errorf("Live() = %d, want 2", h.Live())
	}
}

func TestBudget(t *testing.T) {
	b := NewBudget(4)
	if err := b.Alloc(4); err != nil {
		t.Fatalf("Alloc(4) error = %v, want nil", err)
	}
	if err := b.Alloc(1); !errors.Is(err, types.ErrAllocation) {
		t.Errorf("Alloc(1) over budget error = %v, want ErrAllocation", err)
	}
	if b.Live() != 4 {
		t.Errorf("Live() after refusal = %d, want 4", b.Live())
	}
	b.Free(2)
	if err := b.Alloc(2); err != nil {
		t.Errorf("Alloc(2) after Free error = %v, want nil", err)
	}
}

func TestBudget_Unlimited(t *testing.T) {
	b := NewBudget(0)
	if err := b.Alloc(1 << 20); err != nil {
		t.Errorf("Alloc() error = %v, want nil for unlimited budget", err)
	}
}
