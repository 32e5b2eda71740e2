// internal/filter/compile.go
package filter

import (
	"fmt"

	"github.com/solatis/fontfilter/internal/records"
	"github.com/solatis/fontfilter/internal/types"
)

/*
 * Compilation of declarative expressions.
 *
 * Turns types.Expr / types.Profile (decoded from YAML, the catalog database or
 * a gRPC request) into reference-counted conditions and lists.
 *
 * Compilation workflow:
 *   1. Validate shape and limits (depth, profile length, attribute length)
 *   2. Resolve operator and truth table names
 *   3. Type operands through the builder's schema
 *   4. Build bottom-up; children are handed to ComposeConsuming so the
 *      finished tree owns them outright
 *
 * On error nothing built so far survives.
 */

// CompiledProfile is a profile ready for filtering. Destroy releases its list.
type CompiledProfile struct {
	Name string
	Mode string
	List *List
}

// Destroy releases the compiled list.
func (p *CompiledProfile) Destroy() {
	if p != nil && p.List != nil {
		p.List.Destroy()
	}
}

// Compile builds a condition tree from e. The caller owns the returned reference.
func (b *Builder) Compile(e *types.Expr) (*Condition, error) {
	return b.compile(e, 1)
}

func (b *Builder) compile(e *types.Expr, depth int) (*Condition, error) {
	if e == nil {
		return nil, types.ErrEmptyExpression
	}
	if depth > types.MaxExpressionDepth {
		return nil, types.ErrExpressionTooDeep
	}

	switch {
	case e.IsComposition():
		if e.Attribute != "" || e.Char != "" || e.Left == nil || e.Right == nil {
			return nil, fmt.Errorf("composition needs logic, left and right only: %w", types.ErrInvalidExpression)
		}
		return b.compileComposition(e, depth)

	case e.IsCharRequirement():
		if e.Attribute != "" || e.Op != "" {
			return nil, fmt.Errorf("char requirement cannot carry a comparison: %w", types.ErrInvalidExpression)
		}
		r, err := records.ParseCodepoint(e.Char)
		if err != nil {
			return nil, fmt.Errorf("%v: %w", err, types.ErrInvalidExpression)
		}
		return b.RequireChar(uint32(r))

	case e.Attribute != "":
		return b.compileComparison(e)

	default:
		return nil, types.ErrEmptyExpression
	}
}

func (b *Builder) compileComparison(e *types.Expr) (*Condition, error) {
	if len(e.Attribute) > types.MaxAttributeNameLength {
		return nil, types.ErrAttributeNameTooLong
	}
	opName := e.Op
	if opName == "" {
		opName = "=="
	}
	op, err := ParseOperator(opName)
	if err != nil {
		return nil, err
	}
	value, err := b.schema.Operand(e.Attribute, e.Kind, e.Value)
	if err != nil {
		return nil, fmt.Errorf("attribute %s: %w", e.Attribute, err)
	}
	return b.CompareValue(e.Attribute, op, value)
}

func (b *Builder) compileComposition(e *types.Expr, depth int) (*Condition, error) {
	logicName := e.Logic
	if logicName == "" {
		logicName = "and"
	}
	op, err := ParseLogicalOperator(logicName)
	if err != nil {
		return nil, err
	}

	left, err := b.compile(e.Left, depth+1)
	if err != nil {
		return nil, err
	}
	right, err := b.compile(e.Right, depth+1)
	if err != nil {
		_ = left.Unref()
		return nil, err
	}
	return b.ComposeConsuming(left, op, right)
}

// CompileProfile builds the ordered list for p. The caller must Destroy it.
func (b *Builder) CompileProfile(p *types.Profile) (*CompiledProfile, error) {
	mode := p.Mode
	if mode == "" {
		mode = types.ModeStrict
	}
	if mode != types.ModeStrict && mode != types.ModeSoft {
		return nil, fmt.Errorf("%q: %w", p.Mode, types.ErrInvalidMode)
	}
	if len(p.Conditions) == 0 {
		return nil, types.ErrEmptyExpression
	}
	if len(p.Conditions) > types.MaxProfileConditions {
		return nil, types.ErrTooManyConditions
	}

	list, err := b.NewList()
	if err != nil {
		return nil, err
	}
	for i := range p.Conditions {
		c, err := b.Compile(&p.Conditions[i])
		if err != nil {
			list.Destroy()
			return nil, fmt.Errorf("condition %d: %w", i, err)
		}
		if err := list.AddConsuming(c); err != nil {
			list.Destroy()
			return nil, fmt.Errorf("condition %d: %w", i, err)
		}
	}

	return &CompiledProfile{Name: p.Name, Mode: mode, List: list}, nil
}
