// internal/filter/list.go
package filter

import (
	"fmt"
	"math"

	"github.com/solatis/fontfilter/internal/alloc"
	"github.com/solatis/fontfilter/internal/types"
)

/*
 * Ordered condition lists.
 *
 * A List holds its own reference on every condition it contains, independent
 * of the caller's references. Capacity is explicit so growth can fail
 * cleanly: when full, capacity doubles, saturating at maxCapacity, and the
 * new slots are charged to the allocator before anything changes. A failed
 * Add leaves length, capacity and every reference count as they were.
 *
 * Order is significant for soft filtering and irrelevant for TestAll.
 */

// List is an ordered, growable collection of condition references.
type List struct {
	items       []*Condition
	capacity    int
	maxCapacity int
	alloc       alloc.Allocator
	destroyed   bool
}

// NewList creates a list with the builder's default capacity.
func (b *Builder) NewList() (*List, error) {
	return b.NewListWithCapacity(b.listCapacity)
}

// NewListWithCapacity creates a list with room for capacity conditions.
func (b *Builder) NewListWithCapacity(capacity int) (*List, error) {
	if capacity < 0 {
		return nil, fmt.Errorf("negative list capacity %d: %w", capacity, types.ErrAllocation)
	}
	if err := b.alloc.Alloc(capacity); err != nil {
		return nil, err
	}
	return &List{
		items:       make([]*Condition, 0, capacity),
		capacity:    capacity,
		maxCapacity: math.MaxInt,
		alloc:       b.alloc,
	}, nil
}

// NewList creates a list with the default builder.
func NewList() (*List, error) {
	return defaultBuilder.NewList()
}

// NewListWithCapacity creates a list with the default builder.
func NewListWithCapacity(capacity int) (*List, error) {
	return defaultBuilder.NewListWithCapacity(capacity)
}

// Len returns the number of conditions.
func (l *List) Len() int {
	return len(l.items)
}

// Cap returns the number of slots currently reserved.
func (l *List) Cap() int {
	return l.capacity
}

// At returns the i-th condition, borrowed.
func (l *List) At(i int) *Condition {
	return l.items[i]
}

// Conditions returns the conditions in order, borrowed.
func (l *List) Conditions() []*Condition {
	out := make([]*Condition, len(l.items))
	copy(out, l.items)
	return out
}

// Add appends c, taking a new reference on it.
func (l *List) Add(c *Condition) error {
	if l.destroyed {
		return fmt.Errorf("add to destroyed list: %w", types.ErrInvalidExpression)
	}
	if c == nil {
		return types.ErrInvalidExpression
	}
	if _, err := c.Ref(); err != nil {
		return err
	}
	if len(l.items) == l.capacity {
		if err := l.grow(); err != nil {
			c.refs--
			return err
		}
	}
	l.items = append(l.items, c)
	return nil
}

// AddConsuming is Add followed by releasing the caller's reference to c,
// whether or not Add succeeded.
func (l *List) AddConsuming(c *Condition) error {
	err := l.Add(c)
	if c != nil {
		_ = c.Unref()
	}
	return err
}

// grow doubles capacity, saturating at maxCapacity.
func (l *List) grow() error {
	if l.capacity >= l.maxCapacity {
		return types.ErrListSaturated
	}
	next := l.capacity * 2
	switch {
	case l.capacity == 0:
		next = types.DefaultListCapacity
	case l.capacity > l.maxCapacity/2:
		next = l.maxCapacity
	}
	if next > l.maxCapacity {
		next = l.maxCapacity
	}
	if err := l.alloc.Alloc(next - l.capacity); err != nil {
		return err
	}
	l.capacity = next
	return nil
}

// TestAll reports whether every condition holds for r, stopping at the first
// that does not. An empty list holds for every record.
func (l *List) TestAll(r Record) bool {
	for _, c := range l.items {
		if !Test(c, r) {
			return false
		}
	}
	return true
}

// Test implements Predicate.
func (l *List) Test(r Record) bool {
	return l.TestAll(r)
}

// Destroy releases every held reference and the list's storage.
// Destroying twice is a no-op.
func (l *List) Destroy() {
	if l.destroyed {
		return
	}
	for _, c := range l.items {
		_ = c.Unref()
	}
	l.alloc.Free(l.capacity)
	l.items = nil
	l.capacity = 0
	l.destroyed = true
}
