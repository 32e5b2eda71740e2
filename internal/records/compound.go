package records

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/language"
)

// Matrix is a 2x2 affine transform without translation.
type Matrix struct {
	XX, XY, YX, YY float64
}

// Identity returns the identity transform.
func Identity() *Matrix {
	return &Matrix{XX: 1, YY: 1}
}

func (m *Matrix) String() string {
	return fmt.Sprintf("[%g %g; %g %g]", m.XX, m.XY, m.YX, m.YY)
}

// Range is the closed interval [From, To].
type Range struct {
	From, To float64
}

// NewRange builds an interval, swapping the endpoints when given out of order.
func NewRange(from, to float64) *Range {
	if from > to {
		from, to = to, from
	}
	return &Range{From: from, To: to}
}

// Contains reports whether x lies within the interval, endpoints included.
func (r *Range) Contains(x float64) bool {
	return r.From <= x && x <= r.To
}

// IsSubsetOf reports whether r lies entirely within o.
func (r *Range) IsSubsetOf(o *Range) bool {
	return o.From <= r.From && r.To <= o.To
}

func (r *Range) String() string {
	return fmt.Sprintf("[%g %g]", r.From, r.To)
}

// CharSet is a set of Unicode codepoints.
type CharSet struct {
	runes map[rune]struct{}
}

// NewCharSet builds a set holding the given codepoints.
func NewCharSet(rs ...rune) *CharSet {
	c := &CharSet{runes: make(map[rune]struct{}, len(rs))}
	for _, r := range rs {
		c.runes[r] = struct{}{}
	}
	return c
}

// CharSetFromString builds a set holding every character of s.
func CharSetFromString(s string) *CharSet {
	return NewCharSet([]rune(s)...)
}

// Add inserts r. Only the owner of the set may call Add.
func (c *CharSet) Add(r rune) {
	if c.runes == nil {
		c.runes = make(map[rune]struct{})
	}
	c.runes[r] = struct{}{}
}

// Has reports whether r is a member.
func (c *CharSet) Has(r rune) bool {
	_, ok := c.runes[r]
	return ok
}

// Len returns the number of codepoints.
func (c *CharSet) Len() int {
	return len(c.runes)
}

// IsSubsetOf reports whether every codepoint of c is in o.
func (c *CharSet) IsSubsetOf(o *CharSet) bool {
	if c.Len() > o.Len() {
		return false
	}
	for r := range c.runes {
		if !o.Has(r) {
			return false
		}
	}
	return true
}

// Equal reports set equality.
func (c *CharSet) Equal(o *CharSet) bool {
	return c.Len() == o.Len() && c.IsSubsetOf(o)
}

// Runes returns the members in ascending order.
func (c *CharSet) Runes() []rune {
	out := make([]rune, 0, len(c.runes))
	for r := range c.runes {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// LangSet is a set of canonical BCP 47 language tags.
type LangSet struct {
	tags map[string]struct{}
}

// NewLangSet parses and canonicalises the given tags.
func NewLangSet(tags ...string) (*LangSet, error) {
	l := &LangSet{tags: make(map[string]struct{}, len(tags))}
	for _, t := range tags {
		tag, err := language.Parse(strings.TrimSpace(t))
		if err != nil {
			return nil, fmt.Errorf("language tag %q: %w", t, err)
		}
		l.tags[tag.String()] = struct{}{}
	}
	return l, nil
}

// Has reports whether tag (after canonicalisation) is a member.
func (l *LangSet) Has(tag string) bool {
	t, err := language.Parse(tag)
	if err != nil {
		return false
	}
	_, ok := l.tags[t.String()]
	return ok
}

// Len returns the number of tags.
func (l *LangSet) Len() int {
	return len(l.tags)
}

// Equal reports set equality.
func (l *LangSet) Equal(o *LangSet) bool {
	if l.Len() != o.Len() {
		return false
	}
	for t := range l.tags {
		if _, ok := o.tags[t]; !ok {
			return false
		}
	}
	return true
}

// Tags returns the members in sorted order.
func (l *LangSet) Tags() []string {
	out := make([]string, 0, len(l.tags))
	for t := range l.tags {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

func (l *LangSet) String() string {
	return strings.Join(l.Tags(), "|")
}

// ParseCodepoint accepts a single character or a "U+XXXX" notation.
func ParseCodepoint(s string) (rune, error) {
	if rs := []rune(s); len(rs) == 1 {
		return rs[0], nil
	}
	upper := strings.ToUpper(s)
	if strings.HasPrefix(upper, "U+") {
		n, err := strconv.ParseUint(upper[2:], 16, 32)
		if err != nil {
			return 0, fmt.Errorf("codepoint %q: %w", s, err)
		}
		return rune(n), nil
	}
	return 0, fmt.Errorf("codepoint %q: want a single character or U+XXXX", s)
}
