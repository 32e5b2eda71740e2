package records

import (
	"strings"

	"github.com/solatis/fontfilter/internal/types"
)

// Record exposes attribute lookup by name. Lookups return at most one value.
type Record interface {
	Get(attribute string) (Value, bool)
}

// Pattern is the concrete record: an identified bag of multi-valued attributes.
// Get returns the first value of an attribute, matching how the filter core
// reads records.
type Pattern struct {
	id    types.RecordID
	attrs map[string][]Value
	order []string
}

// NewPattern creates an empty record. An empty id is replaced by a fresh UUIDv7.
func NewPattern(id types.RecordID) *Pattern {
	if id == "" {
		id = types.NewRecordID()
	}
	return &Pattern{id: id, attrs: make(map[string][]Value)}
}

// ID returns the record identifier.
func (p *Pattern) ID() types.RecordID {
	return p.id
}

// Add appends v to the attribute's values and returns p for chaining.
func (p *Pattern) Add(attribute string, v Value) *Pattern {
	if _, ok := p.attrs[attribute]; !ok {
		p.order = append(p.order, attribute)
	}
	p.attrs[attribute] = append(p.attrs[attribute], v)
	return p
}

// Get implements Record.
func (p *Pattern) Get(attribute string) (Value, bool) {
	vs := p.attrs[attribute]
	if len(vs) == 0 {
		return Value{}, false
	}
	return vs[0], true
}

// Values returns every value of an attribute in insertion order.
func (p *Pattern) Values(attribute string) []Value {
	return p.attrs[attribute]
}

// Attributes returns attribute names in first-insertion order.
func (p *Pattern) Attributes() []string {
	out := make([]string, len(p.order))
	copy(out, p.order)
	return out
}

// Name is the display name: family followed by style when present.
func (p *Pattern) Name() string {
	var parts []string
	if v, ok := p.Get(AttrFamily); ok {
		if s, ok := v.Text(); ok {
			parts = append(parts, s)
		}
	}
	if v, ok := p.Get(AttrStyle); ok {
		if s, ok := v.Text(); ok {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return string(p.id)
	}
	return strings.Join(parts, " ")
}

// LookupCharSet reads the record's character-set attribute.
func LookupCharSet(r Record) (*CharSet, bool) {
	v, ok := r.Get(AttrCharSet)
	if !ok {
		return nil, false
	}
	return v.CharSet()
}
