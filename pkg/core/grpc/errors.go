package grpc

import (
	"context"
	"errors"

	mdwerror "github.com/msto63/vmel/foundation/core/error"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ToStatus converts err into a gRPC status error. Status errors pass
// through unchanged, foundation errors are mapped by code.
func ToStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	switch {
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	}

	return status.Error(CodeFor(mdwerror.GetCode(err)), err.Error())
}

// CodeFor maps a foundation error code to a gRPC code
func CodeFor(code mdwerror.Code) codes.Code {
	switch code {
	case mdwerror.CodeNotFound:
		return codes.NotFound
	case mdwerror.CodeInvalidInput, mdwerror.CodeVMELLexical, mdwerror.CodeVMELSyntax, mdwerror.CodeInvalidConfig:
		return codes.InvalidArgument
	case mdwerror.CodeVMELRuntime, mdwerror.CodeInvalidOperation:
		return codes.FailedPrecondition
	case mdwerror.CodeDuplicateEntry:
		return codes.AlreadyExists
	case mdwerror.CodeQuotaExceeded:
		return codes.ResourceExhausted
	case mdwerror.CodeTimeout:
		return codes.DeadlineExceeded
	case mdwerror.CodeCanceled:
		return codes.Canceled
	case mdwerror.CodeDatabaseError:
		return codes.Unavailable
	default:
		return codes.Internal
	}
}

// FromStatus converts a gRPC status error received by a client back into a
// foundation error
func FromStatus(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	code := mdwerror.CodeInternal
	switch st.Code() {
	case codes.NotFound:
		code = mdwerror.CodeNotFound
	case codes.InvalidArgument:
		code = mdwerror.CodeInvalidInput
	case codes.FailedPrecondition:
		code = mdwerror.CodeInvalidOperation
	case codes.AlreadyExists:
		code = mdwerror.CodeDuplicateEntry
	case codes.ResourceExhausted:
		code = mdwerror.CodeQuotaExceeded
	case codes.DeadlineExceeded:
		code = mdwerror.CodeTimeout
	case codes.Canceled:
		code = mdwerror.CodeCanceled
	case codes.Unavailable:
		code = mdwerror.CodeDatabaseError
	}
	return mdwerror.New(st.Message()).WithCode(code).WithDetail("grpc_code", st.Code().String())
}
