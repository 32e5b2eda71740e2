// internal/records/coerce.go
package records

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/solatis/fontfilter/internal/types"
)

/*
 * Operand coercion.
 *
 * Converts untyped operands (decoded from YAML, JSON or structpb) into a
 * Value of the requested Kind. The filter core never coerces at evaluation
 * time; everything happens once, when a condition is built.
 *
 * Kind modes:
 *   - INTEGER/REAL: Strict - numbers and numeric strings, booleans rejected
 *   - TEXT: Lenient - scalars are rendered as strings
 *   - BOOL: Strict - booleans only (avoids "true" vs 1 ambiguity)
 *   - CHARSET: string of characters, or list of characters/codepoints
 *   - LANGSET: tag or list of tags
 *   - RANGE: [from, to] pair, {from, to} map, or a single number
 *   - MATRIX: [xx, xy, yx, yy]
 *   - VOID: nil only
 *
 * Face handles are process-local and cannot be coerced from data.
 */

// Coerce converts raw to a Value of the given kind.
// Returns an error wrapping types.ErrCoercionFailed for impossible coercions.
func Coerce(raw any, kind Kind) (Value, error) {
	if v, ok := raw.(Value); ok {
		if v.kind == kind || (v.IsNumeric() && (kind == KindInteger || kind == KindReal)) {
			return v, nil
		}
		return Value{}, coercionError(raw, kind)
	}

	switch kind {
	case KindInteger:
		return coerceInteger(raw)
	case KindReal:
		f, ok := toFloat64(raw)
		if !ok {
			return Value{}, coercionError(raw, kind)
		}
		return Real(f), nil
	case KindText:
		return coerceText(raw)
	case KindBool:
		b, ok := raw.(bool)
		if !ok {
			return Value{}, coercionError(raw, kind)
		}
		return Bool(b), nil
	case KindCharSet:
		return coerceCharSet(raw)
	case KindLangSet:
		return coerceLangSet(raw)
	case KindRange:
		return coerceRange(raw)
	case KindMatrix:
		return coerceMatrix(raw)
	case KindVoid:
		if raw != nil {
			return Value{}, coercionError(raw, kind)
		}
		return Void(), nil
	default:
		return Value{}, coercionError(raw, kind)
	}
}

// Infer picks a kind from the dynamic type of raw.
// Used for attributes the schema does not know.
func Infer(raw any) (Value, error) {
	switch v := raw.(type) {
	case Value:
		return v, nil
	case nil:
		return Void(), nil
	case bool:
		return Bool(v), nil
	case string:
		return Text(v), nil
	case int, int32, int64, uint32:
		return coerceInteger(v)
	case float32, float64:
		f, _ := toFloat64(v)
		return Real(f), nil
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return Int(i), nil
		}
		return Coerce(v, KindReal)
	case []any:
		if len(v) == 2 {
			return coerceRange(v)
		}
	}
	return Value{}, fmt.Errorf("cannot infer kind of %T: %w", raw, types.ErrCoercionFailed)
}

func coercionError(raw any, kind Kind) error {
	return fmt.Errorf("%v (%T) to %s: %w", raw, raw, kind, types.ErrCoercionFailed)
}

// toFloat64 converts numeric types and numeric strings.
// Whitespace-only strings are not numbers.
func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint32:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func coerceInteger(raw any) (Value, error) {
	switch n := raw.(type) {
	case int:
		return Int(int64(n)), nil
	case int32:
		return Int(int64(n)), nil
	case int64:
		return Int(n), nil
	case uint32:
		return Int(int64(n)), nil
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return Int(i), nil
		}
	case string:
		if i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64); err == nil {
			return Int(i), nil
		}
	}
	// Integral floats come from JSON and structpb, which have no integer type.
	f, ok := toFloat64(raw)
	if !ok || f != math.Trunc(f) || math.IsInf(f, 0) || math.Abs(f) > 1<<53 {
		return Value{}, coercionError(raw, KindInteger)
	}
	return Int(int64(f)), nil
}

func coerceText(raw any) (Value, error) {
	switch v := raw.(type) {
	case string:
		return Text(v), nil
	case bool:
		return Text(strconv.FormatBool(v)), nil
	case nil:
		return Value{}, coercionError(raw, KindText)
	}
	if f, ok := toFloat64(raw); ok {
		return Text(strconv.FormatFloat(f, 'f', -1, 64)), nil
	}
	return Text(fmt.Sprintf("%v", raw)), nil
}

func coerceCharSet(raw any) (Value, error) {
	switch v := raw.(type) {
	case *CharSet:
		return CharSetOf(v), nil
	case string:
		return CharSetOf(CharSetFromString(v)), nil
	case []any:
		c := NewCharSet()
		for _, elem := range v {
			r, err := codepointOf(elem)
			if err != nil {
				return Value{}, fmt.Errorf("%v: %w", err, types.ErrCoercionFailed)
			}
			c.Add(r)
		}
		return CharSetOf(c), nil
	default:
		return Value{}, coercionError(raw, KindCharSet)
	}
}

func codepointOf(elem any) (rune, error) {
	if s, ok := elem.(string); ok {
		return ParseCodepoint(s)
	}
	v, err := coerceInteger(elem)
	if err != nil {
		return 0, err
	}
	if v.i < 0 || v.i > math.MaxInt32 {
		return 0, fmt.Errorf("codepoint %d out of range", v.i)
	}
	return rune(v.i), nil
}

func coerceLangSet(raw any) (Value, error) {
	var tags []string
	switch v := raw.(type) {
	case *LangSet:
		return LangSetOf(v), nil
	case string:
		tags = strings.Split(v, "|")
	case []any:
		for _, elem := range v {
			s, ok := elem.(string)
			if !ok {
				return Value{}, coercionError(raw, KindLangSet)
			}
			tags = append(tags, s)
		}
	case []string:
		tags = v
	default:
		return Value{}, coercionError(raw, KindLangSet)
	}
	l, err := NewLangSet(tags...)
	if err != nil {
		return Value{}, fmt.Errorf("%v: %w", err, types.ErrCoercionFailed)
	}
	return LangSetOf(l), nil
}

func coerceRange(raw any) (Value, error) {
	switch v := raw.(type) {
	case *Range:
		return RangeOf(v), nil
	case []any:
		if len(v) != 2 {
			return Value{}, coercionError(raw, KindRange)
		}
		from, ok1 := toFloat64(v[0])
		to, ok2 := toFloat64(v[1])
		if !ok1 || !ok2 {
			return Value{}, coercionError(raw, KindRange)
		}
		return RangeOf(NewRange(from, to)), nil
	case map[string]any:
		from, ok1 := toFloat64(v["from"])
		to, ok2 := toFloat64(v["to"])
		if !ok1 || !ok2 {
			return Value{}, coercionError(raw, KindRange)
		}
		return RangeOf(NewRange(from, to)), nil
	}
	if f, ok := toFloat64(raw); ok {
		return RangeOf(NewRange(f, f)), nil
	}
	return Value{}, coercionError(raw, KindRange)
}

func coerceMatrix(raw any) (Value, error) {
	switch v := raw.(type) {
	case *Matrix:
		return MatrixOf(v), nil
	case []any:
		if len(v) != 4 {
			return Value{}, coercionError(raw, KindMatrix)
		}
		var f [4]float64
		for i, elem := range v {
			n, ok := toFloat64(elem)
			if !ok {
				return Value{}, coercionError(raw, KindMatrix)
			}
			f[i] = n
		}
		return MatrixOf(&Matrix{XX: f[0], XY: f[1], YX: f[2], YY: f[3]}), nil
	default:
		return Value{}, coercionError(raw, KindMatrix)
	}
}
