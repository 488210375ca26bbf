package sourcerepo

import (
	"fmt"

	"github.com/utkarsh5026/ves/pkg/common/err"
)

const pkgName = "sourcerepo"

// Error codes for repository lifecycle operations
const (
	CodeUnsupportedFormat = "UNSUPPORTED_FORMAT"
)

// UnsupportedFormatError indicates a repository's core.repositoryformatversion
// is newer than this implementation understands.
type UnsupportedFormatError struct {
	baseError *err.Error
	Version   int
}

// NewUnsupportedFormatError creates a new unsupported-format error for version.
func NewUnsupportedFormatError(version int) error {
	return &UnsupportedFormatError{
		baseError: err.New(
			pkgName,
			CodeUnsupportedFormat,
			"open",
			fmt.Sprintf("unsupported repository format version %d", version),
			nil,
		),
		Version: version,
	}
}

// Error implements the error interface
func (e *UnsupportedFormatError) Error() string {
	return e.baseError.Error()
}

// Unwrap returns the underlying error
func (e *UnsupportedFormatError) Unwrap() error {
	return e.baseError
}
