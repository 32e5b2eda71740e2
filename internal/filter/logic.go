package filter

import (
	"fmt"
	"strings"

	"github.com/solatis/fontfilter/internal/types"
)

// LogicalOperator is a binary truth table indexed by the results of the left
// (p) and right (q) operands. The 16 possible tables cover every two-input
// connective, so compositions carry their logic as data.
type LogicalOperator struct {
	TT bool // p true,  q true
	TF bool // p true,  q false
	FT bool // p false, q true
	FF bool // p false, q false
}

// The 16 named truth tables, columns in TT, TF, FT, FF order.
var (
	AlwaysFalse = LogicalOperator{false, false, false, false}
	Nor         = LogicalOperator{false, false, false, true}
	QNotP       = LogicalOperator{false, false, true, false}
	NotP        = LogicalOperator{false, false, true, true}
	PNotQ       = LogicalOperator{false, true, false, false}
	NotQ        = LogicalOperator{false, true, false, true}
	Xor         = LogicalOperator{false, true, true, false}
	Nand        = LogicalOperator{false, true, true, true}
	And         = LogicalOperator{true, false, false, false}
	Xnor        = LogicalOperator{true, false, false, true}
	Q           = LogicalOperator{true, false, true, false}
	IfPThenQ    = LogicalOperator{true, false, true, true}
	P           = LogicalOperator{true, true, false, false}
	IfQThenP    = LogicalOperator{true, true, false, true}
	Or          = LogicalOperator{true, true, true, false}
	AlwaysTrue  = LogicalOperator{true, true, true, true}
)

var logicalNames = []struct {
	name string
	op   LogicalOperator
}{
	{"always_false", AlwaysFalse},
	{"nor", Nor},
	{"q_not_p", QNotP},
	{"not_p", NotP},
	{"p_not_q", PNotQ},
	{"not_q", NotQ},
	{"xor", Xor},
	{"nand", Nand},
	{"and", And},
	{"xnor", Xnor},
	{"q", Q},
	{"if_p_then_q", IfPThenQ},
	{"p", P},
	{"if_q_then_p", IfQThenP},
	{"or", Or},
	{"always_true", AlwaysTrue},
}

var logicalAliases = map[string]LogicalOperator{
	"false":   AlwaysFalse,
	"true":    AlwaysTrue,
	"implies": IfPThenQ,
	"iff":     Xnor,
	"left":    P,
	"right":   Q,
}

// Eval selects the table entry for (p, q).
func (o LogicalOperator) Eval(p, q bool) bool {
	switch {
	case p && q:
		return o.TT
	case p:
		return o.TF
	case q:
		return o.FT
	default:
		return o.FF
	}
}

func (o LogicalOperator) String() string {
	for _, n := range logicalNames {
		if n.op == o {
			return n.name
		}
	}
	return fmt.Sprintf("table(%t,%t,%t,%t)", o.TT, o.TF, o.FT, o.FF)
}

// ParseLogicalOperator resolves a table by name, e.g. "and", "xor", "if_p_then_q".
func ParseLogicalOperator(name string) (LogicalOperator, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, entry := range logicalNames {
		if entry.name == n {
			return entry.op, nil
		}
	}
	if op, ok := logicalAliases[n]; ok {
		return op, nil
	}
	return LogicalOperator{}, fmt.Errorf("%q: %w", name, types.ErrInvalidLogicalOperator)
}
