// internal/filter/coercion.go
package filter

import (
	"strings"

	"github.com/solatis/fontfilter/internal/records"
)

/*
 * Numeric promotion and containment for relational evaluation.
 *
 * Operand coercion from untyped input happens once, in records.Coerce, when a
 * condition is built. What remains at evaluation time is:
 *   - asReals: Integer/Real on both sides promote to float64
 *   - containment: the container/element pairings that have a meaning
 *
 * Containment pairings (container, element):
 *   - Text, Text: case-insensitive substring, matching text equality
 *   - Range, Integer|Real: element within [From, To]
 *   - Range, Range: element interval is a subset of the container
 *   - CharSet, CharSet: element set is a subset of the container
 * Every other pairing is undefined; the negated operators are not satisfied
 * on undefined pairings either.
 */

// asReals promotes both values to float64 when both are numeric.
func asReals(a, b records.Value) (float64, float64, bool) {
	na, oka := a.Number()
	nb, okb := b.Number()
	return na, nb, oka && okb
}

// containment reports whether container holds element, and whether the
// pairing has containment semantics at all.
func containment(container, element records.Value) (contains bool, defined bool) {
	switch container.Kind() {
	case records.KindText:
		cs, _ := container.Text()
		es, ok := element.Text()
		if !ok {
			return false, false
		}
		return strings.Contains(strings.ToLower(cs), strings.ToLower(es)), true

	case records.KindRange:
		cr, ok := container.Range()
		if !ok {
			return false, false
		}
		if n, ok := element.Number(); ok {
			return cr.Contains(n), true
		}
		if er, ok := element.Range(); ok {
			return er.IsSubsetOf(cr), true
		}
		return false, false

	case records.KindCharSet:
		cc, ok := container.CharSet()
		if !ok {
			return false, false
		}
		ec, ok := element.CharSet()
		if !ok {
			return false, false
		}
		return ec.IsSubsetOf(cc), true

	default:
		return false, false
	}
}
