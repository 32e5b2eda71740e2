package filter

import (
	"errors"
	"testing"

	"github.com/solatis/fontfilter/internal/alloc"
	"github.com/solatis/fontfilter/internal/records"
	"github.com/solatis/fontfilter/internal/types"
)

func TestList_GrowthDoubles(t *testing.T) {
	heap := alloc.NewHeap()
	b := NewBuilder(heap, nil)

	l, err := b.NewListWithCapacity(0)
	if err != nil {
		t.Fatalf("NewListWithCapacity(0) error = %v", err)
	}
	c := mustCompare(t, b, records.AttrWeight, OpEqual, "bold")

	wantCaps := []int{8, 8, 8, 8, 8, 8, 8, 8, 16, 16}
	for i, want := range wantCaps {
		if err := l.Add(c); err != nil {
			t.Fatalf("Add #%d error = %v", i, err)
		}
		if l.Cap() != want {
			t.Errorf("after %d adds Cap() = %d, want %d", i+1, l.Cap(), want)
		}
	}
	if l.Len() != len(wantCaps) {
		t.Errorf("Len() = %d, want %d", l.Len(), len(wantCaps))
	}
	if c.RefCount() != uint64(len(wantCaps))+1 {
		t.Errorf("RefCount() = %d, want %d", c.RefCount(), len(wantCaps)+1)
	}
	// one condition plus 16 slots
	if heap.Live() != 17 {
		t.Errorf("Live() = %d, want 17", heap.Live())
	}

	l.Destroy()
	_ = c.Unref()
	if heap.Live() != 0 {
		t.Errorf("Live() after Destroy = %d, want 0", heap.Live())
	}
}

func TestList_Saturation(t *testing.T) {
	b := NewBuilder(nil, nil)
	l, err := b.NewListWithCapacity(2)
	if err != nil {
		t.Fatalf("NewListWithCapacity(2) error = %v", err)
	}
	l.maxCapacity = 3
	c := mustCompare(t, b, records.AttrSlant, OpEqual, "italic")

	for i := 0; i < 3; i++ {
		if err := l.Add(c); err != nil {
			t.Fatalf("Add #%d error = %v", i, err)
		}
	}
	if l.Cap() != 3 {
		t.Fatalf("Cap() = %d, want saturation at 3", l.Cap())
	}

	err = l.Add(c)
	if !errors.Is(err, types.ErrListSaturated) {
		t.Fatalf("Add() at max = %v, want ErrListSaturated", err)
	}
	if l.Len() != 3 || l.Cap() != 3 {
		t.Errorf("Len/Cap = %d/%d, want 3/3", l.Len(), l.Cap())
	}
	if c.RefCount() != 4 {
		t.Errorf("RefCount() = %d, want 4", c.RefCount())
	}
}

func TestList_FailedGrowthLeavesListUnchanged(t *testing.T) {
	// one slot plus two conditions fills the budget
	budget := alloc.NewBudget(3)
	b := NewBuilder(budget, nil)

	l, err := b.NewListWithCapacity(1)
	if err != nil {
		t.Fatalf("NewListWithCapacity(1) error = %v", err)
	}
	first := mustCompare(t, b, records.AttrWeight, OpEqual, "bold")
	second := mustCompare(t, b, records.AttrSlant, OpEqual, "italic")

	if err := l.Add(first); err != nil {
		t.Fatalf("Add(first) error = %v", err)
	}
	if err := l.Add(second); !errors.Is(err, types.ErrAllocation) {
		t.Fatalf("Add(second) error = %v, want ErrAllocation", err)
	}
	if l.Len() != 1 || l.Cap() != 1 {
		t.Errorf("Len/Cap = %d/%d, want 1/1", l.Len(), l.Cap())
	}
	if second.RefCount() != 1 {
		t.Errorf("second RefCount() = %d, want 1", second.RefCount())
	}
	if budget.Live() != 3 {
		t.Errorf("Live() = %d, want 3", budget.Live())
	}
}

func TestList_AddConsuming(t *testing.T) {
	heap := alloc.NewHeap()
	b := NewBuilder(heap, nil)
	l, err := b.NewList()
	if err != nil {
		t.Fatalf("NewList() error = %v", err)
	}

	c := mustCompare(t, b, records.AttrWeight, OpEqual, "bold")
	if err := l.AddConsuming(c); err != nil {
		t.Fatalf("AddConsuming() error = %v", err)
	}
	if c.RefCount() != 1 {
		t.Errorf("RefCount() = %d, want list as sole owner", c.RefCount())
	}
	if l.At(0) != c {
		t.Errorf("At(0) = %p, want %p", l.At(0), c)
	}

	l.Destroy()
	if heap.Live() != 0 {
		t.Errorf("Live() = %d, want 0", heap.Live())
	}
	l.Destroy()
	if heap.Live() != 0 {
		t.Errorf("second Destroy changed Live() to %d", heap.Live())
	}
	if err := l.Add(mustCompare(t, b, records.AttrSlant, OpEqual, 0)); err == nil {
		t.Error("Add() to destroyed list succeeded")
	}
}

func TestList_TestAll(t *testing.T) {
	b := NewBuilder(nil, nil)
	l, _ := b.NewList()
	defer l.Destroy()

	boldItalic := font("Sans", records.WeightBold, records.SlantItalic)
	if !l.TestAll(boldItalic) {
		t.Error("empty list rejected a record")
	}

	_ = l.AddConsuming(mustCompare(t, b, records.AttrWeight, OpEqual, "regular"))
	_ = l.AddConsuming(mustCompare(t, b, records.AttrSlant, OpEqual, "italic"))

	rec := newCountingRecord(boldItalic)
	if l.TestAll(rec) {
		t.Error("TestAll() = true, want false")
	}
	if rec.lookups[records.AttrSlant] != 0 {
		t.Errorf("slant looked up %d times after first condition failed", rec.lookups[records.AttrSlant])
	}

	regularItalic := font("Sans", records.WeightRegular, records.SlantItalic)
	if !l.TestAll(regularItalic) {
		t.Error("TestAll(regular italic) = false, want true")
	}
}
