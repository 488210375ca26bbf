package store

import (
	"fmt"

	"github.com/utkarsh5026/ves/pkg/common/err"
	"github.com/utkarsh5026/ves/pkg/objects"
)

const pkgName = "store"

// Error codes for object store operations
const (
	CodeObjectNotFound  = "OBJECT_NOT_FOUND"
	CodeMalformedObject = "MALFORMED_OBJECT"
)

// NotFoundError indicates no object exists under the given hash.
type NotFoundError struct {
	baseError *err.Error
	Hash      objects.ObjectHash
}

// NewNotFoundError creates a new object-not-found error for hash.
func NewNotFoundError(hash objects.ObjectHash) error {
	return &NotFoundError{
		baseError: err.New(
			pkgName,
			CodeObjectNotFound,
			"read",
			fmt.Sprintf("object %s not found", hash.Short()),
			nil,
		),
		Hash: hash,
	}
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return e.baseError.Error()
}

// Unwrap returns the underlying error
func (e *NotFoundError) Unwrap() error {
	return e.baseError
}

// MalformedObjectError indicates an object's on-disk bytes could not be
// decoded into any known object type.
type MalformedObjectError struct {
	baseError *err.Error
	Hash      objects.ObjectHash
}

// NewMalformedObjectError creates a new malformed-object error for hash.
func NewMalformedObjectError(hash objects.ObjectHash, cause error) error {
	return &MalformedObjectError{
		baseError: err.New(
			pkgName,
			CodeMalformedObject,
			"read",
			fmt.Sprintf("object %s is malformed", hash.Short()),
			cause,
		),
		Hash: hash,
	}
}

// Error implements the error interface
func (e *MalformedObjectError) Error() string {
	return e.baseError.Error()
}

// Unwrap returns the underlying error
func (e *MalformedObjectError) Unwrap() error {
	return e.baseError
}
