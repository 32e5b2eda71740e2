// Package types provides domain models shared across fontfilter components.
//
// Zero-dependency design: types.go, expr.go and errors.go use only the standard
// library so the declarative forms can be shared by the CLI, the catalog store
// and the gRPC layer without pulling in the filter core. ID utilities in ids.go
// import uuid but are isolated for selective inclusion.
package types

// RecordID represents a UUIDv7 record identifier.
// String alias enables type safety while maintaining JSON string serialization.
type RecordID string

// ProfileID represents a UUIDv7 identifier for a stored filter profile.
type ProfileID string

// Resource limits enforced by the filter core and the declarative compiler.
const (
	// DefaultListCapacity is the initial slot count of a condition list.
	DefaultListCapacity = 8

	// MaxExpressionDepth bounds recursion when compiling nested compositions.
	MaxExpressionDepth = 32

	// MaxProfileConditions limits the number of top-level conditions in a profile.
	MaxProfileConditions = 64

	// MaxAttributeNameLength rejects obviously bogus attribute names early.
	MaxAttributeNameLength = 64
)
