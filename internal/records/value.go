// Package records is the in-process record storage that the filter core
// borrows from: typed attribute values, records with named attributes, and
// ordered record sets.
//
// The core never allocates or frees compound payloads (matrices, character
// sets, language sets, ranges, face handles). It only reads them through the
// comparison helpers exported here.
package records

import (
	"fmt"
	"strconv"
)

// Kind tags the variant held by a Value.
type Kind int

const (
	KindUnknown Kind = iota
	KindVoid
	KindInteger
	KindReal
	KindText
	KindBool
	KindMatrix
	KindCharSet
	KindFace
	KindLangSet
	KindRange
)

var kindNames = [...]string{
	KindUnknown: "unknown",
	KindVoid:    "void",
	KindInteger: "integer",
	KindReal:    "real",
	KindText:    "text",
	KindBool:    "bool",
	KindMatrix:  "matrix",
	KindCharSet: "charset",
	KindFace:    "face",
	KindLangSet: "langset",
	KindRange:   "range",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// ParseKind maps a kind name back to its Kind.
// "double" and "string" are accepted as aliases for real and text.
func ParseKind(name string) (Kind, error) {
	switch name {
	case "double":
		return KindReal, nil
	case "string":
		return KindText, nil
	case "int":
		return KindInteger, nil
	}
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return KindUnknown, fmt.Errorf("unknown value kind %q", name)
}

// Value is an immutable attribute value.
// The zero Value has KindUnknown.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
	b    bool
	ref  any // *Matrix, *CharSet, *LangSet, *Range or a face handle
}

func Int(i int64) Value          { return Value{kind: KindInteger, i: i} }
func Real(f float64) Value       { return Value{kind: KindReal, f: f} }
func Text(s string) Value        { return Value{kind: KindText, s: s} }
func Bool(b bool) Value          { return Value{kind: KindBool, b: b} }
func Void() Value                { return Value{kind: KindVoid} }
func Unknown() Value             { return Value{} }
func MatrixOf(m *Matrix) Value   { return Value{kind: KindMatrix, ref: m} }
func CharSetOf(c *CharSet) Value { return Value{kind: KindCharSet, ref: c} }
func LangSetOf(l *LangSet) Value { return Value{kind: KindLangSet, ref: l} }
func RangeOf(r *Range) Value     { return Value{kind: KindRange, ref: r} }

// Face wraps an opaque, process-local face handle.
func Face(handle any) Value { return Value{kind: KindFace, ref: handle} }

// Kind returns the variant tag.
func (v Value) Kind() Kind { return v.kind }

// IsNumeric reports whether v is an Integer or a Real.
func (v Value) IsNumeric() bool {
	return v.kind == KindInteger || v.kind == KindReal
}

// Number returns v promoted to float64 when it is numeric.
func (v Value) Number() (float64, bool) {
	switch v.kind {
	case KindInteger:
		return float64(v.i), true
	case KindReal:
		return v.f, true
	default:
		return 0, false
	}
}

func (v Value) Int() (int64, bool)    { return v.i, v.kind == KindInteger }
func (v Value) Real() (float64, bool) { return v.f, v.kind == KindReal }
func (v Value) Text() (string, bool)  { return v.s, v.kind == KindText }
func (v Value) Bool() (bool, bool)    { return v.b, v.kind == KindBool }
func (v Value) Face() (any, bool)     { return v.ref, v.kind == KindFace }

func (v Value) Matrix() (*Matrix, bool) {
	m, ok := v.ref.(*Matrix)
	return m, ok && v.kind == KindMatrix && m != nil
}

func (v Value) CharSet() (*CharSet, bool) {
	c, ok := v.ref.(*CharSet)
	return c, ok && v.kind == KindCharSet && c != nil
}

func (v Value) LangSet() (*LangSet, bool) {
	l, ok := v.ref.(*LangSet)
	return l, ok && v.kind == KindLangSet && l != nil
}

func (v Value) Range() (*Range, bool) {
	r, ok := v.ref.(*Range)
	return r, ok && v.kind == KindRange && r != nil
}

// String renders v for logs and CLI output.
func (v Value) String() string {
	switch v.kind {
	case KindInteger:
		return strconv.FormatInt(v.i, 10)
	case KindReal:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindText:
		return strconv.Quote(v.s)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindMatrix:
		if m, ok := v.Matrix(); ok {
			return m.String()
		}
	case KindCharSet:
		if c, ok := v.CharSet(); ok {
			return fmt.Sprintf("charset(%d)", c.Len())
		}
	case KindLangSet:
		if l, ok := v.LangSet(); ok {
			return l.String()
		}
	case KindRange:
		if r, ok := v.Range(); ok {
			return r.String()
		}
	case KindFace:
		return "face"
	case KindVoid:
		return "void"
	}
	return v.kind.String()
}
