package filter

import (
	"testing"

	"github.com/solatis/fontfilter/internal/records"
)

// font builds a record with weight and slant attributes.
func font(name string, weight, slant int64) *records.Pattern {
	return records.NewPattern("").
		Add(records.AttrFamily, records.Text(name)).
		Add(records.AttrWeight, records.Int(weight)).
		Add(records.AttrSlant, records.Int(slant))
}

// countingRecord counts attribute lookups.
type countingRecord struct {
	records.Record
	lookups map[string]int
}

func newCountingRecord(r records.Record) *countingRecord {
	return &countingRecord{Record: r, lookups: make(map[string]int)}
}

func (c *countingRecord) Get(attribute string) (records.Value, bool) {
	c.lookups[attribute]++
	return c.Record.Get(attribute)
}

func mustCompare(t *testing.T, b *Builder, attribute string, op Operator, raw any) *Condition {
	t.Helper()
	c, err := b.Compare(attribute, op, raw)
	if err != nil {
		t.Fatalf("Compare(%s) error = %v, want nil", attribute, err)
	}
	return c
}

func names(s *records.Set) []string {
	out := make([]string, 0, s.Len())
	for _, r := range s.Records() {
		out = append(out, r.(*records.Pattern).Name())
	}
	return out
}

func equalNames(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
