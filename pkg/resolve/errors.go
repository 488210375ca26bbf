package resolve

import (
	"fmt"

	"github.com/utkarsh5026/ves/pkg/common/err"
)

const pkgName = "resolve"

// Error codes for name resolution
const (
	CodeNotFound  = "RESOLVE_NOT_FOUND"
	CodeAmbiguous = "RESOLVE_AMBIGUOUS"
	CodeWrongType = "RESOLVE_WRONG_TYPE"
)

// NotFoundError indicates a name did not resolve to any object
type NotFoundError struct {
	baseError *err.Error
	Name      string
}

// NewNotFoundError creates a new not-found error for the given name
func NewNotFoundError(name string) error {
	return &NotFoundError{
		baseError: err.New(
			pkgName,
			CodeNotFound,
			"resolve",
			fmt.Sprintf("no such reference %q", name),
			nil,
		),
		Name: name,
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

// AmbiguousError indicates a name resolved to more than one candidate
type AmbiguousError struct {
	baseError  *err.Error
	Name       string
	Candidates []string
}

// NewAmbiguousError creates a new ambiguous-reference error
func NewAmbiguousError(name string, candidates []string) error {
	return &AmbiguousError{
		baseError: err.New(
			pkgName,
			CodeAmbiguous,
			"resolve",
			fmt.Sprintf("ambiguous reference %q: %d candidates", name, len(candidates)),
			nil,
		),
		Name:       name,
		Candidates: candidates,
	}
}

// Error implements the error interface
func (e *AmbiguousError) Error() string {
	return e.baseError.Error()
}

// Unwrap returns the underlying error
func (e *AmbiguousError) Unwrap() error {
	return e.baseError
}

// WrongTypeError indicates an object was found but could not be coerced
// to the requested type by following tag/commit indirections
type WrongTypeError struct {
	baseError *err.Error
	Name      string
	Wanted    string
}

// NewWrongTypeError creates a new wrong-type error
func NewWrongTypeError(name, wanted string) error {
	return &WrongTypeError{
		baseError: err.New(
			pkgName,
			CodeWrongType,
			"resolve",
			fmt.Sprintf("%q does not resolve to a %s", name, wanted),
			nil,
		),
		Name:   name,
		Wanted: wanted,
	}
}

// Error implements the error interface
func (e *WrongTypeError) Error() string {
	return e.baseError.Error()
}

// Unwrap returns the underlying error
func (e *WrongTypeError) Unwrap() error {
	return e.baseError
}
