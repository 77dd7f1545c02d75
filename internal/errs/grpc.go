package errs

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FromStore classifies a Firestore/gRPC error into the local taxonomy.
// Unrecognized codes become DatabaseError tagged with the operation name.
func FromStore(operation, resource string, err error) error {
	if err == nil {
		return nil
	}
	switch status.Code(err) {
	case codes.NotFound:
		return NewNotFoundError(resource + " not found")
	case codes.AlreadyExists:
		return NewAlreadyExistsError(resource + " already exists")
	case codes.InvalidArgument:
		return NewValidationError(err.Error())
	default:
		return NewDatabaseError(operation, err.Error())
	}
}

// IsNotFound reports whether err is a NotFoundError or a gRPC NotFound.
func IsNotFound(err error) bool {
	if _, ok := err.(*NotFoundError); ok {
		return true
	}
	return status.Code(err) == codes.NotFound
}
