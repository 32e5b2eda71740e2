// internal/filter/condition.go
package filter

import (
	"fmt"
	"math"

	"github.com/solatis/fontfilter/internal/alloc"
	"github.com/solatis/fontfilter/internal/records"
	"github.com/solatis/fontfilter/internal/types"
)

/*
 * Reference-counted condition trees.
 *
 * A Condition is a comparison leaf, a char-requirement leaf, or a composition
 * of two existing conditions under a truth table. Children are attached only
 * at construction and never change afterwards, so the public API can only
 * build DAGs bottom-up; cycles are impossible.
 *
 * Ownership:
 *   - Constructors return a condition with one reference owned by the caller
 *   - Compose takes its own reference on each child
 *   - Unref at zero destroys the node and releases (never force-destroys)
 *     its children; the last release of a shared child frees it
 *   - The counter saturates: Ref at the maximum and Unref at zero fail
 *     without changing anything
 *
 * Every node is charged one unit to the builder's allocator and credited
 * back on destruction.
 */

const maxRefCount = math.MaxUint64

// ConditionKind tags the variant of a Condition.
type ConditionKind int

const (
	KindComparison ConditionKind = iota
	KindComposition
	KindCharRequirement
)

// Comparison tests one attribute of a record against an operand.
type Comparison struct {
	Attribute string
	Operand   records.Value
	Operator  Operator
}

// Composition combines two conditions under a truth table.
type Composition struct {
	Operator LogicalOperator
	Left     *Condition
	Right    *Condition
}

// CharRequirement is satisfied when the record's character set holds Codepoint.
type CharRequirement struct {
	Codepoint uint32
}

// Condition is one node of a condition tree.
type Condition struct {
	kind        ConditionKind
	comparison  Comparison
	composition Composition
	char        CharRequirement
	refs        uint64
	alloc       alloc.Allocator
}

// Kind returns the variant tag.
func (c *Condition) Kind() ConditionKind { return c.kind }

// Comparison returns the leaf comparison when c is one.
func (c *Condition) Comparison() (Comparison, bool) {
	return c.comparison, c.kind == KindComparison
}

// Composition returns the composition when c is one. The children are
// borrowed; callers that keep them must Ref them.
func (c *Condition) Composition() (Composition, bool) {
	return c.composition, c.kind == KindComposition
}

// CharRequirement returns the required codepoint when c is a char leaf.
func (c *Condition) CharRequirement() (CharRequirement, bool) {
	return c.char, c.kind == KindCharRequirement
}

// RefCount returns the current number of references.
func (c *Condition) RefCount() uint64 {
	return c.refs
}

// Ref takes an additional reference. Fails with ErrRefOverflow at saturation.
func (c *Condition) Ref() (*Condition, error) {
	if c.refs == maxRefCount {
		return nil, types.ErrRefOverflow
	}
	c.refs++
	return c, nil
}

// Unref releases one reference, destroying c when none remain.
// Fails with ErrRefUnderflow when c has no references.
func (c *Condition) Unref() error {
	if c.refs == 0 {
		return types.ErrRefUnderflow
	}
	c.refs--
	if c.refs == 0 {
		c.destroy()
	}
	return nil
}

func (c *Condition) destroy() {
	if c.kind == KindComposition {
		_ = c.composition.Left.Unref()
		_ = c.composition.Right.Unref()
	}
	if c.alloc != nil {
		c.alloc.Free(1)
	}
}

func (c *Condition) String() string {
	switch c.kind {
	case KindComparison:
		return fmt.Sprintf("%s %s %s", c.comparison.Attribute, c.comparison.Operator, c.comparison.Operand)
	case KindComposition:
		return fmt.Sprintf("(%s %s %s)", c.composition.Left, c.composition.Operator, c.composition.Right)
	case KindCharRequirement:
		return fmt.Sprintf("has U+%04X", c.char.Codepoint)
	default:
		return "invalid"
	}
}

// Builder constructs conditions and lists, charging their storage to an
// allocator. A Builder is not safe for concurrent mutation of the conditions
// it returns; evaluation of finished trees is.
type Builder struct {
	alloc        alloc.Allocator
	schema       *records.Schema
	listCapacity int
}

// NewBuilder creates a builder. A nil allocator never refuses; a nil schema
// selects records.DefaultSchema.
func NewBuilder(a alloc.Allocator, schema *records.Schema) *Builder {
	if a == nil {
		a = alloc.NewHeap()
	}
	if schema == nil {
		schema = records.DefaultSchema()
	}
	return &Builder{alloc: a, schema: schema, listCapacity: types.DefaultListCapacity}
}

// WithListCapacity sets the initial capacity used by NewList.
func (b *Builder) WithListCapacity(capacity int) *Builder {
	if capacity > 0 {
		b.listCapacity = capacity
	}
	return b
}

// Schema returns the schema used to type untyped operands.
func (b *Builder) Schema() *records.Schema {
	return b.schema
}

// Compare builds a comparison leaf, typing raw from the attribute's schema kind.
func (b *Builder) Compare(attribute string, op Operator, raw any) (*Condition, error) {
	if len(attribute) > types.MaxAttributeNameLength {
		return nil, types.ErrAttributeNameTooLong
	}
	value, err := b.schema.Operand(attribute, "", raw)
	if err != nil {
		return nil, fmt.Errorf("attribute %s: %w", attribute, err)
	}
	return b.CompareValue(attribute, op, value)
}

// CompareValue builds a comparison leaf from an already typed operand.
func (b *Builder) CompareValue(attribute string, op Operator, value records.Value) (*Condition, error) {
	if !op.Valid() {
		return nil, fmt.Errorf("%s: %w", op, types.ErrInvalidOperator)
	}
	if len(attribute) > types.MaxAttributeNameLength {
		return nil, types.ErrAttributeNameTooLong
	}
	if err := b.alloc.Alloc(1); err != nil {
		return nil, err
	}
	return &Condition{
		kind: KindComparison,
		comparison: Comparison{
			Attribute: attribute,
			Operand:   value,
			Operator:  op,
		},
		refs:  1,
		alloc: b.alloc,
	}, nil
}

// Compose builds a composition node holding its own reference on both children.
// On failure no references are retained and the caller's references are
// untouched.
func (b *Builder) Compose(left *Condition, op LogicalOperator, right *Condition) (*Condition, error) {
	if left == nil || right == nil {
		return nil, types.ErrInvalidExpression
	}
	if err := b.alloc.Alloc(1); err != nil {
		return nil, err
	}
	if _, err := left.Ref(); err != nil {
		b.alloc.Free(1)
		return nil, err
	}
	if _, err := right.Ref(); err != nil {
		left.refs--
		b.alloc.Free(1)
		return nil, err
	}
	return &Condition{
		kind: KindComposition,
		composition: Composition{
			Operator: op,
			Left:     left,
			Right:    right,
		},
		refs:  1,
		alloc: b.alloc,
	}, nil
}

// ComposeConsuming is Compose followed by releasing the caller's references to
// left and right, whether or not Compose succeeded.
func (b *Builder) ComposeConsuming(left *Condition, op LogicalOperator, right *Condition) (*Condition, error) {
	c, err := b.Compose(left, op, right)
	if left != nil {
		_ = left.Unref()
	}
	if right != nil {
		_ = right.Unref()
	}
	return c, err
}

// RequireChar builds a leaf satisfied by records whose character set holds codepoint.
func (b *Builder) RequireChar(codepoint uint32) (*Condition, error) {
	if err := b.alloc.Alloc(1); err != nil {
		return nil, err
	}
	return &Condition{
		kind:  KindCharRequirement,
		char:  CharRequirement{Codepoint: codepoint},
		refs:  1,
		alloc: b.alloc,
	}, nil
}

var defaultBuilder = NewBuilder(nil, nil)

// Compare builds a comparison leaf with the default builder.
func Compare(attribute string, op Operator, raw any) (*Condition, error) {
	return defaultBuilder.Compare(attribute, op, raw)
}

// CompareValue builds a typed comparison leaf with the default builder.
func CompareValue(attribute string, op Operator, value records.Value) (*Condition, error) {
	return defaultBuilder.CompareValue(attribute, op, value)
}

// Compose builds a composition with the default builder.
func Compose(left *Condition, op LogicalOperator, right *Condition) (*Condition, error) {
	return defaultBuilder.Compose(left, op, right)
}

// ComposeConsuming builds a composition with the default builder and releases
// the caller's references to both children.
func ComposeConsuming(left *Condition, op LogicalOperator, right *Condition) (*Condition, error) {
	return defaultBuilder.ComposeConsuming(left, op, right)
}

// RequireChar builds a char-requirement leaf with the default builder.
func RequireChar(codepoint uint32) (*Condition, error) {
	return defaultBuilder.RequireChar(codepoint)
}
