package records

import (
	"testing"

	"github.com/solatis/fontfilter/internal/alloc"
	"github.com/solatis/fontfilter/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAllocator_CopySharesRecords(t *testing.T) {
	heap := alloc.NewHeap()
	sets := NewSetAllocator(heap, 0)
	a, b := NewPattern(""), NewPattern("")
	src := NewSetOf(a, b)

	cp, err := sets.Copy(src)
	require.NoError(t, err)
	assert.Equal(t, 2, cp.Len())
	assert.Same(t, a, cp.At(0))
	assert.Equal(t, 3, heap.Live())

	cp.Release()
	cp.Release()
	assert.Equal(t, 0, heap.Live())
}

func TestSetAllocator_Limits(t *testing.T) {
	sets := NewSetAllocator(nil, 1)
	s, err := sets.NewSet()
	require.NoError(t, err)
	require.NoError(t, s.Append(NewPattern("")))

	err = s.Append(NewPattern(""))
	assert.ErrorIs(t, err, types.ErrAllocation)
	assert.Equal(t, 1, s.Len(), "failed append leaves the set unchanged")
}

func TestSetAllocator_CopyFailureReleasesPartial(t *testing.T) {
	budget := alloc.NewBudget(2)
	sets := NewSetAllocator(budget, 0)

	_, err := sets.Copy(NewSetOf(NewPattern(""), NewPattern(""), NewPattern("")))
	assert.ErrorIs(t, err, types.ErrAllocation)
	assert.Equal(t, 0, budget.Live())
}

func TestPattern(t *testing.T) {
	p := NewPattern("")
	p.Add(AttrFamily, Text("Noto Sans")).
		Add(AttrFamily, Text("Noto")).
		Add(AttrStyle, Text("Bold"))

	v, ok := p.Get(AttrFamily)
	require.True(t, ok)
	assert.True(t, Equal(v, Text("Noto Sans")), "Get returns the first value")
	assert.Len(t, p.Values(AttrFamily), 2)
	assert.Equal(t, []string{AttrFamily, AttrStyle}, p.Attributes())
	assert.Equal(t, "Noto Sans Bold", p.Name())
	assert.NotZero(t, types.RecordIDTime(p.ID()))

	_, ok = LookupCharSet(p)
	assert.False(t, ok)
}
