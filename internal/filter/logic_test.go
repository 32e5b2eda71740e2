package filter

import (
	"errors"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/solatis/fontfilter/internal/types"
)

// standardTables gives each named connective as ordinary boolean logic.
var standardTables = map[string]func(p, q bool) bool{
	"always_false": func(p, q bool) bool { return false },
	"nor":          func(p, q bool) bool { return !(p || q) },
	"q_not_p":      func(p, q bool) bool { return !p && q },
	"not_p":        func(p, q bool) bool { return !p },
	"p_not_q":      func(p, q bool) bool { return p && !q },
	"not_q":        func(p, q bool) bool { return !q },
	"xor":          func(p, q bool) bool { return p != q },
	"nand":         func(p, q bool) bool { return !(p && q) },
	"and":          func(p, q bool) bool { return p && q },
	"xnor":         func(p, q bool) bool { return p == q },
	"q":            func(p, q bool) bool { return q },
	"if_p_then_q":  func(p, q bool) bool { return !p || q },
	"p":            func(p, q bool) bool { return p },
	"if_q_then_p":  func(p, q bool) bool { return p || !q },
	"or":           func(p, q bool) bool { return p || q },
	"always_true":  func(p, q bool) bool { return true },
}

func TestLogicalOperator_AllSixteenDistinct(t *testing.T) {
	seen := make(map[LogicalOperator]string)
	for name := range standardTables {
		op, err := ParseLogicalOperator(name)
		if err != nil {
			t.Fatalf("ParseLogicalOperator(%q) error = %v", name, err)
		}
		if prev, dup := seen[op]; dup {
			t.Errorf("%q and %q share a truth table", name, prev)
		}
		seen[op] = name
		if op.String() != name {
			t.Errorf("String() = %q, want %q", op.String(), name)
		}
	}
	if len(seen) != 16 {
		t.Errorf("distinct tables = %d, want 16", len(seen))
	}
}

func TestParseLogicalOperator_Unknown(t *testing.T) {
	if _, err := ParseLogicalOperator("maybe"); !errors.Is(err, types.ErrInvalidLogicalOperator) {
		t.Errorf("ParseLogicalOperator(maybe) error = %v, want ErrInvalidLogicalOperator", err)
	}
	if op, err := ParseLogicalOperator("implies"); err != nil || op != IfPThenQ {
		t.Errorf("ParseLogicalOperator(implies) = %v, %v, want if_p_then_q", op, err)
	}
}

// Property-based test: every named table matches the standard connective
func TestLogicalOperator_PropertyTruthTables(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	tableNames := make([]string, 0, len(standardTables))
	for name := range standardTables {
		tableNames = append(tableNames, name)
	}

	properties.Property("Eval matches the standard truth table", prop.ForAll(
		func(idx int, p, q bool) bool {
			name := tableNames[idx]
			op, err := ParseLogicalOperator(name)
			if err != nil {
				return false
			}
			return op.Eval(p, q) == standardTables[name](p, q)
		},
		gen.IntRange(0, len(tableNames)-1),
		gen.Bool(),
		gen.Bool(),
	))

	properties.TestingRun(t)
}
