package records

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// wireValue is the JSON form stored in the catalog and returned over gRPC.
type wireValue struct {
	Kind  string `json:"kind"`
	Value any    `json:"value,omitempty"`
}

// Raw returns the untyped form of v accepted by Coerce for the same kind.
func (v Value) Raw() (any, error) {
	switch v.kind {
	case KindInteger:
		return v.i, nil
	case KindReal:
		return v.f, nil
	case KindText:
		return v.s, nil
	case KindBool:
		return v.b, nil
	case KindVoid:
		return nil, nil
	case KindMatrix:
		m, ok := v.Matrix()
		if !ok {
			break
		}
		return []any{m.XX, m.XY, m.YX, m.YY}, nil
	case KindCharSet:
		c, ok := v.CharSet()
		if !ok {
			break
		}
		out := make([]any, 0, c.Len())
		for _, r := range c.Runes() {
			out = append(out, int64(r))
		}
		return out, nil
	case KindLangSet:
		l, ok := v.LangSet()
		if !ok {
			break
		}
		out := make([]any, 0, l.Len())
		for _, t := range l.Tags() {
			out = append(out, t)
		}
		return out, nil
	case KindRange:
		r, ok := v.Range()
		if !ok {
			break
		}
		return []any{r.From, r.To}, nil
	case KindFace:
		return nil, fmt.Errorf("face handles are process-local and cannot be serialized")
	}
	return nil, fmt.Errorf("cannot serialize %s value", v.kind)
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	raw, err := v.Raw()
	if err != nil {
		return nil, err
	}
	return json.Marshal(wireValue{Kind: v.kind.String(), Value: raw})
}

// UnmarshalJSON implements json.Unmarshaler.
// Numbers are decoded as json.Number so large integers survive the round trip.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var w wireValue
	if err := dec.Decode(&w); err != nil {
		return err
	}
	kind, err := ParseKind(w.Kind)
	if err != nil {
		return err
	}
	parsed, err := Coerce(w.Value, kind)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
