// Package alloc provides the allocation service injected into the filter core
// and the record set factory.
//
// Go's runtime does not report allocation failure, so storage accounting is
// explicit: every condition node, list slot and record set slot is charged to an
// Allocator before it is used and credited back when it is released. Budget
// turns the configured limits into deterministic allocation failures.
package alloc

import (
	"fmt"
	"sync"

	"github.com/solatis/fontfilter/internal/types"
)

// Allocator charges and credits storage units.
type Allocator interface {
	// Alloc reserves n units. Returns an error wrapping types.ErrAllocation when refused.
	Alloc(n int) error
	// Free returns n previously reserved units.
	Free(n int)
}

// Heap never refuses an allocation. Live tracks outstanding units.
type Heap struct {
	mu   sync.Mutex
	live int
}

// NewHeap creates an unlimited allocator.
func NewHeap() *Heap {
	return &Heap{}
}

// Alloc implements Allocator.
func (h *Heap) Alloc(n int) error {
	h.mu.Lock()
	h.live += n
	h.mu.Unlock()
	return nil
}

// Free implements Allocator.
func (h *Heap) Free(n int) {
	h.mu.Lock()
	h.live -= n
	h.mu.Unlock()
}

// Live returns the number of units currently reserved.
func (h *Heap) Live() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.live
}

// Budget refuses allocations once Max units are outstanding.
// Max <= 0 means unlimited.
type Budget struct {
	mu   sync.Mutex
	max  int
	live int
}

// NewBudget creates an allocator with a ceiling of max units.
func NewBudget(max int) *Budget {
	return &Budget{max: max}
}

// Alloc implements Allocator.
func (b *Budget) Alloc(n int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if n < 0 {
		return fmt.Errorf("negative allocation %d: %w", n, types.ErrAllocation)
	}
	if b.max > 0 && b.live+n > b.max {
		return fmt.Errorf("%d units requested, %d of %d in use: %w", n, b.live, b.max, types.ErrAllocation)
	}
	b.live += n
	return nil
}

// Free implements Allocator.
func (b *Budget) Free(n int) {
	b.mu.Lock()
	b.live -= n
	if b.live < 0 {
		b.live = 0
	}
	b.mu.Unlock()
}

// Live returns the number of units currently reserved.
func (b *Budget) Live() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.live
}
