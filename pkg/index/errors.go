package index

import (
	"fmt"

	"github.com/utkarsh5026/ves/pkg/common/err"
)

const pkgName = "index"

// Error codes for index operations
const (
	CodeMalformedIndex = "MALFORMED_INDEX"
)

// MalformedIndexError indicates the on-disk index violates a structural
// invariant (bad signature, checksum mismatch, or out-of-order entries).
type MalformedIndexError struct {
	baseError *err.Error
	Reason    string
}

// NewMalformedIndexError creates a new malformed-index error with reason.
func NewMalformedIndexError(reason string) error {
	return &MalformedIndexError{
		baseError: err.New(
			pkgName,
			CodeMalformedIndex,
			"deserialize",
			fmt.Sprintf("malformed index: %s", reason),
			nil,
		),
		Reason: reason,
	}
}

// Error implements the error interface
func (e *MalformedIndexError) Error() string {
	return e.baseError.Error()
}

// Unwrap returns the underlying error
func (e *MalformedIndexError) Unwrap() error {
	return e.baseError
}
