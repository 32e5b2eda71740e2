package types

import "errors"

// Sentinel errors for fontfilter operations.
var (
	// ErrAllocation indicates the injected allocator refused a request.
	ErrAllocation = errors.New("allocation failed")

	// ErrRefOverflow indicates a reference count is already at its maximum.
	ErrRefOverflow = errors.New("reference count overflow")

	// ErrRefUnderflow indicates a release of a condition with no references left.
	ErrRefUnderflow = errors.New("reference count underflow")

	// ErrListSaturated indicates a condition list cannot grow any further.
	ErrListSaturated = errors.New("condition list capacity saturated")

	// ErrInvalidOperator indicates an unknown relational operator name.
	ErrInvalidOperator = errors.New("invalid relational operator")

	// ErrInvalidLogicalOperator indicates an unknown truth table name.
	ErrInvalidLogicalOperator = errors.New("invalid logical operator")

	// ErrCoercionFailed indicates an operand could not be converted to the attribute kind.
	ErrCoercionFailed = errors.New("operand coercion failed")

	// ErrAttributeNameTooLong indicates an attribute name exceeds MaxAttributeNameLength.
	ErrAttributeNameTooLong = errors.New("attribute name too long")

	// ErrEmptyExpression indicates an expression or profile has no conditions.
	ErrEmptyExpression = errors.New("expression is empty")

	// ErrInvalidExpression indicates an expression mixes leaf and composition fields.
	ErrInvalidExpression = errors.New("invalid expression shape")

	// ErrExpressionTooDeep indicates nesting beyond MaxExpressionDepth.
	ErrExpressionTooDeep = errors.New("expression exceeds maximum depth")

	// ErrTooManyConditions indicates a profile exceeds MaxProfileConditions.
	ErrTooManyConditions = errors.New("profile has too many conditions")

	// ErrInvalidMode indicates a filter mode other than strict or soft.
	ErrInvalidMode = errors.New("invalid filter mode")

	// ErrProfileNotFound indicates no stored profile has the requested name.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrStorage indicates the catalog database failed a read or write.
	ErrStorage = errors.New("catalog storage error")
)
