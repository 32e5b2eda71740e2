package api

import (
	"context"
	"errors"

	"github.com/solatis/fontfilter/internal/types"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Error mapping:
//   - Compile and validation errors map to INVALID_ARGUMENT.
//   - Allocation failures map to RESOURCE_EXHAUSTED.
//   - Unknown stored profiles map to NOT_FOUND.
//   - Database errors map to UNAVAILABLE.
//   - Context timeouts map to DEADLINE_EXCEEDED.

var invalidArgument = []error{
	types.ErrInvalidOperator,
	types.ErrInvalidLogicalOperator,
	types.ErrCoercionFailed,
	types.ErrAttributeNameTooLong,
	types.ErrEmptyExpression,
	types.ErrInvalidExpression,
	types.ErrExpressionTooDeep,
	types.ErrTooManyConditions,
	types.ErrInvalidMode,
}

var resourceExhausted = []error{
	types.ErrAllocation,
	types.ErrListSaturated,
	types.ErrRefOverflow,
}

// toStatus converts a domain error into a gRPC status error.
func toStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	return status.Error(codeOf(err), err.Error())
}

func codeOf(err error) codes.Code {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return codes.DeadlineExceeded
	case errors.Is(err, context.Canceled):
		return codes.Canceled
	case errors.Is(err, types.ErrProfileNotFound):
		return codes.NotFound
	case errors.Is(err, types.ErrStorage):
		return codes.Unavailable
	}
	for _, target := range invalidArgument {
		if errors.Is(err, target) {
			return codes.InvalidArgument
		}
	}
	for _, target := range resourceExhausted {
		if errors.Is(err, target) {
			return codes.ResourceExhausted
		}
	}
	return codes.Internal
}
