// internal/filter/operators.go
package filter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/solatis/fontfilter/internal/records"
	"github.com/solatis/fontfilter/internal/types"
)

/*
 * Relational operator logic.
 *
 * Implements 10 relational operators over records.Value. Operands are typed
 * when the condition is built; Relate never coerces beyond the numeric
 * promotion below.
 *
 * Numeric/numeric pairs (Integer or Real on both sides) compare as reals:
 *   - NotEqual, DoesNotContain, NotContainedIn -> !=
 *   - Equal, Contains, ContainedIn             -> ==
 *   - LessThan .. GreaterOrEqual               -> the matching real comparison
 * Containment between two scalars therefore degrades to equality: asking
 * whether 5 contains 5.0 answers yes.
 *
 * Other pairs:
 *   - Equal/NotEqual delegate to records.Equal
 *   - Contains/ContainedIn (and negations) use containment, see containment()
 *   - Ordering operators are never satisfied
 */

// Operator selects the relation a comparison tests.
type Operator int

const (
	OpNotEqual Operator = iota
	OpEqual
	OpLessThan
	OpGreaterThan
	OpLessOrEqual
	OpGreaterOrEqual
	OpContains
	OpDoesNotContain
	OpContainedIn
	OpNotContainedIn
)

var operatorNames = [...]string{
	OpNotEqual:       "!=",
	OpEqual:          "==",
	OpLessThan:       "<",
	OpGreaterThan:    ">",
	OpLessOrEqual:    "<=",
	OpGreaterOrEqual: ">=",
	OpContains:       "contains",
	OpDoesNotContain: "!contains",
	OpContainedIn:    "in",
	OpNotContainedIn: "!in",
}

var operatorAliases = map[string]Operator{
	"ne":               OpNotEqual,
	"not_equal":        OpNotEqual,
	"eq":               OpEqual,
	"=":                OpEqual,
	"equal":            OpEqual,
	"lt":               OpLessThan,
	"less_than":        OpLessThan,
	"gt":               OpGreaterThan,
	"greater_than":     OpGreaterThan,
	"lte":              OpLessOrEqual,
	"less_or_equal":    OpLessOrEqual,
	"gte":              OpGreaterOrEqual,
	"greater_or_equal": OpGreaterOrEqual,
	"not_contains":     OpDoesNotContain,
	"does_not_contain": OpDoesNotContain,
	"contained_in":     OpContainedIn,
	"not_in":           OpNotContainedIn,
	"not_contained_in": OpNotContainedIn,
}

// Valid reports whether op is one of the defined operators.
func (op Operator) Valid() bool {
	return op >= OpNotEqual && op <= OpNotContainedIn
}

func (op Operator) String() string {
	if !op.Valid() {
		return "op(" + strconv.Itoa(int(op)) + ")"
	}
	return operatorNames[op]
}

// ParseOperator accepts the symbolic names returned by String and the
// snake_case aliases used in profile files.
func ParseOperator(name string) (Operator, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for op, s := range operatorNames {
		if s == n {
			return Operator(op), nil
		}
	}
	if op, ok := operatorAliases[n]; ok {
		return op, nil
	}
	return 0, fmt.Errorf("%q: %w", name, types.ErrInvalidOperator)
}

// Relate applies op with the record's value on the left and the condition's
// operand on the right.
func Relate(op Operator, value, operand records.Value) bool {
	if a, b, ok := asReals(value, operand); ok {
		return compareReals(op, a, b)
	}

	switch op {
	case OpEqual:
		return records.Equal(value, operand)
	case OpNotEqual:
		return !records.Equal(value, operand)
	case OpContains:
		ok, defined := containment(value, operand)
		return defined && ok
	case OpDoesNotContain:
		ok, defined := containment(value, operand)
		return defined && !ok
	case OpContainedIn:
		ok, defined := containment(operand, value)
		return defined && ok
	case OpNotContainedIn:
		ok, defined := containment(operand, value)
		return defined && !ok
	default:
		return false
	}
}

// compareReals maps every operator onto a real comparison.
func compareReals(op Operator, a, b float64) bool {
	switch op {
	case OpNotEqual, OpDoesNotContain, OpNotContainedIn:
		return a != b
	case OpEqual, OpContains, OpContainedIn:
		return a == b
	case OpLessThan:
		return a < b
	case OpGreaterThan:
		return a > b
	case OpLessOrEqual:
		return a <= b
	case OpGreaterOrEqual:
		return a >= b
	default:
		return false
	}
}
