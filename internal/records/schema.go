package records

import (
	"fmt"
	"strings"

	"github.com/solatis/fontfilter/internal/types"
)

// Well-known font attribute names.
const (
	AttrFamily      = "family"
	AttrStyle       = "style"
	AttrFoundry     = "foundry"
	AttrFile        = "file"
	AttrSlant       = "slant"
	AttrWeight      = "weight"
	AttrWidth       = "width"
	AttrSpacing     = "spacing"
	AttrSize        = "size"
	AttrPixelSize   = "pixelsize"
	AttrIndex       = "index"
	AttrFontVersion = "fontversion"
	AttrScalable    = "scalable"
	AttrOutline     = "outline"
	AttrAntialias   = "antialias"
	AttrColor       = "color"
	AttrVariable    = "variable"
	AttrCharSet     = "charset"
	AttrLang        = "lang"
	AttrMatrix      = "matrix"
	AttrFTFace      = "ftface"
)

// Weight, slant, width and spacing constants on the usual font scales.
const (
	WeightThin       = 0
	WeightExtraLight = 40
	WeightLight      = 50
	WeightBook       = 75
	WeightRegular    = 80
	WeightMedium     = 100
	WeightDemiBold   = 180
	WeightBold       = 200
	WeightExtraBold  = 205
	WeightBlack      = 210

	SlantRoman   = 0
	SlantItalic  = 100
	SlantOblique = 110

	WidthCondensed = 75
	WidthNormal    = 100
	WidthExpanded  = 125

	SpacingProportional = 0
	SpacingDual         = 90
	SpacingMono         = 100
	SpacingCharCell     = 110
)

type constant struct {
	attribute string
	value     int64
}

var defaultConstants = map[string]constant{
	"thin":         {AttrWeight, WeightThin},
	"extralight":   {AttrWeight, WeightExtraLight},
	"light":        {AttrWeight, WeightLight},
	"book":         {AttrWeight, WeightBook},
	"regular":      {AttrWeight, WeightRegular},
	"normal":       {AttrWeight, WeightRegular},
	"medium":       {AttrWeight, WeightMedium},
	"demibold":     {AttrWeight, WeightDemiBold},
	"semibold":     {AttrWeight, WeightDemiBold},
	"bold":         {AttrWeight, WeightBold},
	"extrabold":    {AttrWeight, WeightExtraBold},
	"black":        {AttrWeight, WeightBlack},
	"heavy":        {AttrWeight, WeightBlack},
	"roman":        {AttrSlant, SlantRoman},
	"italic":       {AttrSlant, SlantItalic},
	"oblique":      {AttrSlant, SlantOblique},
	"condensed":    {AttrWidth, WidthCondensed},
	"expanded":     {AttrWidth, WidthExpanded},
	"proportional": {AttrSpacing, SpacingProportional},
	"dual":         {AttrSpacing, SpacingDual},
	"mono":         {AttrSpacing, SpacingMono},
	"charcell":     {AttrSpacing, SpacingCharCell},
}

// Schema maps attribute names to kinds so untyped operands can be coerced.
type Schema struct {
	kinds     map[string]Kind
	constants map[string]constant
}

// DefaultSchema returns the schema of well-known font attributes.
func DefaultSchema() *Schema {
	s := &Schema{
		kinds: map[string]Kind{
			AttrFamily:      KindText,
			AttrStyle:       KindText,
			AttrFoundry:     KindText,
			AttrFile:        KindText,
			AttrSlant:       KindInteger,
			AttrWeight:      KindInteger,
			AttrWidth:       KindInteger,
			AttrSpacing:     KindInteger,
			AttrSize:        KindReal,
			AttrPixelSize:   KindReal,
			AttrIndex:       KindInteger,
			AttrFontVersion: KindInteger,
			AttrScalable:    KindBool,
			AttrOutline:     KindBool,
			AttrAntialias:   KindBool,
			AttrColor:       KindBool,
			AttrVariable:    KindBool,
			AttrCharSet:     KindCharSet,
			AttrLang:        KindLangSet,
			AttrMatrix:      KindMatrix,
			AttrFTFace:      KindFace,
		},
		constants: make(map[string]constant, len(defaultConstants)),
	}
	for name, c := range defaultConstants {
		s.constants[name] = c
	}
	return s
}

// Register adds or replaces the kind of an attribute.
func (s *Schema) Register(attribute string, kind Kind) {
	s.kinds[attribute] = kind
}

// Kind returns the registered kind of an attribute.
func (s *Schema) Kind(attribute string) (Kind, bool) {
	k, ok := s.kinds[attribute]
	return k, ok
}

// Constant resolves a symbolic name such as "bold" for the given attribute.
func (s *Schema) Constant(attribute, name string) (int64, bool) {
	c, ok := s.constants[strings.ToLower(strings.TrimSpace(name))]
	if !ok || c.attribute != attribute {
		return 0, false
	}
	return c.value, true
}

// Operand converts an untyped operand for attribute into a Value.
// kindName, when non-empty, overrides the schema. Unknown attributes fall back
// to inferring the kind from raw.
func (s *Schema) Operand(attribute, kindName string, raw any) (Value, error) {
	if kindName != "" {
		kind, err := ParseKind(kindName)
		if err != nil {
			return Value{}, fmt.Errorf("%v: %w", err, types.ErrCoercionFailed)
		}
		return s.coerce(attribute, kind, raw)
	}
	kind, ok := s.Kind(attribute)
	if !ok {
		return Infer(raw)
	}
	return s.coerce(attribute, kind, raw)
}

func (s *Schema) coerce(attribute string, kind Kind, raw any) (Value, error) {
	if name, ok := raw.(string); ok && (kind == KindInteger || kind == KindReal) {
		if n, ok := s.Constant(attribute, name); ok {
			if kind == KindReal {
				return Real(float64(n)), nil
			}
			return Int(n), nil
		}
	}
	return Coerce(raw, kind)
}
