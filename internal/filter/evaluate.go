// internal/filter/evaluate.go
package filter

import (
	"github.com/solatis/fontfilter/internal/records"
)

/*
 * Condition evaluation.
 *
 * Test dispatches on the condition variant:
 *   - Comparison: look up the attribute; absent means not satisfied
 *   - Composition: evaluate BOTH children, then index the truth table
 *   - CharRequirement: look up the character set; absent means not satisfied
 *
 * Compositions never short-circuit. A table such as NotQ or Xor needs the
 * right operand whatever the left produced, and treating every table the
 * same keeps evaluation free of per-table special cases.
 *
 * Evaluation only reads. A finished tree may be evaluated from several
 * goroutines as long as nobody changes reference counts concurrently.
 */

// Record is the lookup surface the evaluator needs from a record.
type Record = records.Record

// Predicate is anything a record set can be filtered by: a Condition or a List.
type Predicate interface {
	Test(r Record) bool
}

// Test evaluates c against r. A nil condition is never satisfied.
func Test(c *Condition, r Record) bool {
	if c == nil {
		return false
	}
	switch c.kind {
	case KindComparison:
		return testComparison(c.comparison, r)
	case KindComposition:
		return testComposition(c.composition, r)
	case KindCharRequirement:
		return testCharRequirement(c.char, r)
	default:
		return false
	}
}

// Test implements Predicate.
func (c *Condition) Test(r Record) bool {
	return Test(c, r)
}

func testComparison(cmp Comparison, r Record) bool {
	value, ok := r.Get(cmp.Attribute)
	if !ok {
		return false
	}
	return Relate(cmp.Operator, value, cmp.Operand)
}

func testComposition(comp Composition, r Record) bool {
	p := Test(comp.Left, r)
	q := Test(comp.Right, r)
	return comp.Operator.Eval(p, q)
}

func testCharRequirement(req CharRequirement, r Record) bool {
	cs, ok := records.LookupCharSet(r)
	if !ok {
		return false
	}
	if req.Codepoint > 0x7FFFFFFF {
		return false
	}
	return cs.Has(rune(req.Codepoint))
}
