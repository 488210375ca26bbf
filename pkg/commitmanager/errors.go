package commitmanager

import (
	"fmt"

	"github.com/utkarsh5026/ves/pkg/common/err"
)

const pkgName = "commitmanager"

// Error codes for commit/tag creation
const (
	CodeEmptyMessage    = "EMPTY_MESSAGE"
	CodeNoChanges       = "NO_CHANGES"
	CodeNoTreeChanges   = "NO_TREE_CHANGES"
	CodeInvalidCommit   = "INVALID_COMMIT"
	CodeNoParent        = "NO_PARENT"
	CodeMissingIdentity = "MISSING_IDENTITY"
)

var (
	// ErrEmptyMessage indicates an empty commit message was provided
	ErrEmptyMessage error = err.New(pkgName, CodeEmptyMessage, "create", "commit message cannot be empty", nil)

	// ErrNoChanges indicates no changes are staged for commit
	ErrNoChanges error = err.New(pkgName, CodeNoChanges, "create", "no changes staged for commit", nil)

	// ErrNoTreeChanges indicates the tree is identical to the parent
	ErrNoTreeChanges error = err.New(pkgName, CodeNoTreeChanges, "create", "no changes to commit (tree is identical to parent)", nil)

	// ErrInvalidCommit indicates the object is not a valid commit
	ErrInvalidCommit error = err.New(pkgName, CodeInvalidCommit, "create", "object is not a valid commit", nil)

	// ErrNoParent indicates no parent commit exists
	ErrNoParent error = err.New(pkgName, CodeNoParent, "create", "no parent commit found", nil)

	// ErrMissingIdentity indicates no user name/email is configured anywhere
	// (repo config, global config, or GIT_AUTHOR_* environment variables)
	ErrMissingIdentity error = err.New(pkgName, CodeMissingIdentity, "create", "no identity configured: set user.name and user.email", nil)
)

// CommitError represents an error that occurred during commit operations
type CommitError struct {
	Op      string // Operation that failed
	Err     error  // Underlying error
	Details string // Additional details
}

// Error implements the error interface
func (e *CommitError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("commit %s: %v (%s)", e.Op, e.Err, e.Details)
	}
	return fmt.Sprintf("commit %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error
func (e *CommitError) Unwrap() error {
	return e.Err
}

// NewCommitError creates a new CommitError
func NewCommitError(op string, err error, details string) error {
	return &CommitError{
		Op:      op,
		Err:     err,
		Details: details,
	}
}
