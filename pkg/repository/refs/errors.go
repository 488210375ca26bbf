package refs

import (
	"fmt"

	"github.com/utkarsh5026/ves/pkg/common/err"
)

const pkgName = "refs"

// Error codes for reference resolution
const (
	CodeReferenceCycle = "REFERENCE_CYCLE"
)

// ReferenceCycleError indicates a symbolic reference chain exceeded
// MaxRefDepth without reaching a direct (hash) reference.
type ReferenceCycleError struct {
	baseError *err.Error
	Ref       string
}

// NewReferenceCycleError creates a new reference-cycle error for ref.
func NewReferenceCycleError(ref string) error {
	return &ReferenceCycleError{
		baseError: err.New(
			pkgName,
			CodeReferenceCycle,
			"resolve",
			fmt.Sprintf("reference depth exceeded for %s (possible cycle)", ref),
			nil,
		),
		Ref: ref,
	}
}

// Error implements the error interface
func (e *ReferenceCycleError) Error() string {
	return e.baseError.Error()
}

// Unwrap returns the underlying error
func (e *ReferenceCycleError) Unwrap() error {
	return e.baseError
}
