package records

import (
	"reflect"
	"strings"
)

// Equal is the generic value equality the filter core delegates to for
// Equal/NotEqual on non-numeric pairs.
//
// Integer and Real compare as reals. Text compares case-insensitively, as font
// names do. Compound kinds compare structurally; face handles by identity.
// Unknown values are never equal to anything; Void equals Void.
func Equal(a, b Value) bool {
	if na, ok := a.Number(); ok {
		if nb, ok := b.Number(); ok {
			return na == nb
		}
		return false
	}
	if a.kind != b.kind {
		return false
	}

	switch a.kind {
	case KindVoid:
		return true
	case KindText:
		return strings.EqualFold(a.s, b.s)
	case KindBool:
		return a.b == b.b
	case KindMatrix:
		ma, oka := a.Matrix()
		mb, okb := b.Matrix()
		return oka && okb && *ma == *mb
	case KindCharSet:
		ca, oka := a.CharSet()
		cb, okb := b.CharSet()
		return oka && okb && ca.Equal(cb)
	case KindLangSet:
		la, oka := a.LangSet()
		lb, okb := b.LangSet()
		return oka && okb && la.Equal(lb)
	case KindRange:
		ra, oka := a.Range()
		rb, okb := b.Range()
		return oka && okb && *ra == *rb
	case KindFace:
		return sameHandle(a.ref, b.ref)
	default:
		return false
	}
}

// sameHandle compares opaque handles by identity without panicking on
// uncomparable dynamic types.
func sameHandle(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}
