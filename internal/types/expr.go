// internal/types/expr.go
package types

/*
 * Declarative condition forms.
 *
 * Expr and Profile are the wire-format agnostic description of a condition
 * tree. They are decoded from YAML profile files, stored as JSON in the
 * catalog database and carried inside gRPC requests; internal/filter compiles
 * them into reference-counted conditions.
 *
 * Expr shapes (exactly one applies):
 *   - Comparison: Attribute + Op + Value (Kind optionally forces operand kind)
 *   - Char requirement: Char (a single character or "U+XXXX")
 *   - Composition: Logic + Left + Right
 */

// Filter modes for a Profile.
const (
	ModeStrict = "strict"
	ModeSoft   = "soft"
)

// Expr is one node of a declarative condition.
type Expr struct {
	Attribute string `json:"attribute,omitempty" yaml:"attribute,omitempty"`
	Op        string `json:"op,omitempty" yaml:"op,omitempty"`
	Value     any    `json:"value,omitempty" yaml:"value,omitempty"`
	Kind      string `json:"kind,omitempty" yaml:"kind,omitempty"`
	Char      string `json:"char,omitempty" yaml:"char,omitempty"`
	Logic     string `json:"logic,omitempty" yaml:"logic,omitempty"`
	Left      *Expr  `json:"left,omitempty" yaml:"left,omitempty"`
	Right     *Expr  `json:"right,omitempty" yaml:"right,omitempty"`
}

// IsComposition reports whether the node combines two sub-expressions.
func (e *Expr) IsComposition() bool {
	return e.Logic != "" || e.Left != nil || e.Right != nil
}

// IsCharRequirement reports whether the node is a required-character leaf.
func (e *Expr) IsCharRequirement() bool {
	return e.Char != ""
}

// Profile is an ordered, named list of conditions applied in one mode.
// Order matters for ModeSoft: earlier conditions are stronger preferences.
type Profile struct {
	ProfileID   ProfileID `json:"profile_id,omitempty" yaml:"id,omitempty"`
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Mode        string    `json:"mode" yaml:"mode"`
	Conditions  []Expr    `json:"conditions" yaml:"conditions"`
}
