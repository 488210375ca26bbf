package scpath

import (
	"fmt"

	"github.com/utkarsh5026/ves/pkg/common/err"
)

const pkgName = "scpath"

// Error codes for path validation
const (
	CodeInvalidPath = "INVALID_PATH"
)

// InvalidPathError indicates a relative path is malformed or would resolve
// outside the repository it's being joined against.
type InvalidPathError struct {
	baseError *err.Error
	Path      string
}

// NewInvalidPathError creates a new invalid-path error for path, with reason
// describing why it was rejected.
func NewInvalidPathError(path, reason string) error {
	return &InvalidPathError{
		baseError: err.New(
			pkgName,
			CodeInvalidPath,
			"join",
			fmt.Sprintf("%s: %s", reason, path),
			nil,
		),
		Path: path,
	}
}

// Error implements the error interface
func (e *InvalidPathError) Error() string {
	return e.baseError.Error()
}

// Unwrap returns the underlying error
func (e *InvalidPathError) Unwrap() error {
	return e.baseError
}
