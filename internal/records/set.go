package records

import (
	"fmt"

	"github.com/solatis/fontfilter/internal/alloc"
	"github.com/solatis/fontfilter/internal/types"
)

// Set is an ordered collection of shared record references.
// Records are never copied; two sets may hold the same record.
type Set struct {
	records    []Record
	alloc      alloc.Allocator
	maxRecords int
	released   bool
}

// NewSetOf builds an unaccounted set from records, for callers that own the
// records outright (tests, CLI catalogs).
func NewSetOf(rs ...Record) *Set {
	s := &Set{records: make([]Record, 0, len(rs))}
	s.records = append(s.records, rs...)
	return s
}

// Len returns the number of records.
func (s *Set) Len() int {
	return len(s.records)
}

// At returns the i-th record.
func (s *Set) At(i int) Record {
	return s.records[i]
}

// Records returns the records in order. The slice must not be modified.
func (s *Set) Records() []Record {
	return s.records
}

// Append adds r at the end. Fails when the set's allocator refuses or the
// per-set record limit is reached; the set is unchanged on failure.
func (s *Set) Append(r Record) error {
	if s.released {
		return fmt.Errorf("append to released set: %w", types.ErrAllocation)
	}
	if s.maxRecords > 0 && len(s.records) >= s.maxRecords {
		return fmt.Errorf("record set limit %d reached: %w", s.maxRecords, types.ErrAllocation)
	}
	if s.alloc != nil {
		if err := s.alloc.Alloc(1); err != nil {
			return err
		}
	}
	s.records = append(s.records, r)
	return nil
}

// Release drops every record reference and returns the set's storage.
// Releasing twice is a no-op.
func (s *Set) Release() {
	if s.released {
		return
	}
	if s.alloc != nil {
		s.alloc.Free(len(s.records) + 1)
	}
	s.records = nil
	s.released = true
}

// SetAllocator constructs and copies record sets through an allocator.
type SetAllocator struct {
	alloc      alloc.Allocator
	maxRecords int
}

// NewSetAllocator creates a factory. maxRecords <= 0 means no per-set limit.
// A nil allocator never refuses.
func NewSetAllocator(a alloc.Allocator, maxRecords int) *SetAllocator {
	if a == nil {
		a = alloc.NewHeap()
	}
	return &SetAllocator{alloc: a, maxRecords: maxRecords}
}

// DefaultSets returns an unlimited heap-backed factory.
func DefaultSets() *SetAllocator {
	return NewSetAllocator(nil, 0)
}

// NewSet allocates an empty set.
func (f *SetAllocator) NewSet() (*Set, error) {
	if err := f.alloc.Alloc(1); err != nil {
		return nil, err
	}
	return &Set{alloc: f.alloc, maxRecords: f.maxRecords}, nil
}

// Copy allocates a new set holding the same record references as s.
// On failure the partial copy is released.
func (f *SetAllocator) Copy(s *Set) (*Set, error) {
	out, err := f.NewSet()
	if err != nil {
		return nil, err
	}
	for _, r := range s.records {
		if err := out.Append(r); err != nil {
			out.Release()
			return nil, err
		}
	}
	return out, nil
}
