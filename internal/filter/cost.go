// internal/filter/cost.go
package filter

import (
	"sort"

	"github.com/solatis/fontfilter/internal/records"
)

/*
 * Cost model for condition evaluation.
 *
 * cost = lookup + operator_cost * operand_kind_multiplier, summed over every
 * node of a tree (compositions evaluate both children, so both always count).
 *
 * Strict list filtering evaluates cheap conditions first. Soft filtering
 * never reorders.
 */

// Canonical cost constants.
const (
	CostLookup       = 16
	CostCompose      = 1
	CostEqual        = 5
	CostOrdering     = 7
	CostContainment  = 10
	CostCharRequired = 12

	MultiplierScalar   = 1
	MultiplierText     = 8
	MultiplierCompound = 32
)

// Cost estimates the work of evaluating c against one record.
func Cost(c *Condition) int {
	if c == nil {
		return 0
	}
	switch c.kind {
	case KindComparison:
		return CostLookup + operatorCost(c.comparison.Operator)*kindMultiplier(c.comparison.Operand.Kind())
	case KindCharRequirement:
		return CostLookup + CostCharRequired
	case KindComposition:
		return CostCompose + Cost(c.composition.Left) + Cost(c.composition.Right)
	default:
		return 0
	}
}

func operatorCost(op Operator) int {
	switch op {
	case OpEqual, OpNotEqual:
		return CostEqual
	case OpLessThan, OpGreaterThan, OpLessOrEqual, OpGreaterOrEqual:
		return CostOrdering
	default:
		return CostContainment
	}
}

func kindMultiplier(k records.Kind) int {
	switch k {
	case records.KindInteger, records.KindReal, records.KindBool, records.KindVoid:
		return MultiplierScalar
	case records.KindText:
		return MultiplierText
	default:
		return MultiplierCompound
	}
}

// costOrdered is a cheapest-first view of a list's conditions.
type costOrdered []*Condition

// byCost returns the list's conditions ordered by ascending cost.
// Stable: equal-cost conditions keep list order.
func byCost(l *List) costOrdered {
	ordered := make(costOrdered, len(l.items))
	copy(ordered, l.items)
	sort.SliceStable(ordered, func(i, j int) bool {
		return Cost(ordered[i]) < Cost(ordered[j])
	})
	return ordered
}

// Test implements Predicate with TestAll semantics.
func (o costOrdered) Test(r Record) bool {
	for _, c := range o {
		if !Test(c, r) {
			return false
		}
	}
	return true
}
