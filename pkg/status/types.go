package status

import (
	"github.com/utkarsh5026/ves/pkg/objects"
	"github.com/utkarsh5026/ves/pkg/repository/scpath"
)

// StagedChanges describes differences between the HEAD tree and the index.
type StagedChanges struct {
	Added    []scpath.RelativePath
	Modified []scpath.RelativePath
	Deleted  []scpath.RelativePath
}

// IsEmpty reports whether there are no staged changes at all.
func (s StagedChanges) IsEmpty() bool {
	return len(s.Added) == 0 && len(s.Modified) == 0 && len(s.Deleted) == 0
}

// UnstagedChanges describes differences between the index and the working directory.
type UnstagedChanges struct {
	Modified []scpath.RelativePath
	Deleted  []scpath.RelativePath
}

// IsEmpty reports whether there are no unstaged changes at all.
func (u UnstagedChanges) IsEmpty() bool {
	return len(u.Modified) == 0 && len(u.Deleted) == 0
}

// Report is the full three-way status comparison: HEAD tree, index, and
// working directory, plus the untracked files the ignore engine lets through.
type Report struct {
	Branch     string // current branch name, empty when HEAD is detached
	Detached   bool
	HeadCommit objects.ObjectHash // empty when the branch has no commits yet

	Staged   StagedChanges
	Unstaged UnstagedChanges

	// Untracked lists every untracked file's full path.
	Untracked []scpath.RelativePath

	// UntrackedDisplay collapses a directory whose contents are entirely
	// untracked into a single "dirname/" entry, mirroring how git avoids
	// spelling out every file under a brand-new directory.
	UntrackedDisplay []string
}

// Clean reports whether the working directory and index have nothing to
// report relative to HEAD: no staged changes, no unstaged changes, and no
// untracked files.
func (r *Report) Clean() bool {
	return r.Staged.IsEmpty() && r.Unstaged.IsEmpty() && len(r.Untracked) == 0
}

// headEntry is the flattened HEAD-tree view of a single file.
type headEntry struct {
	Hash objects.ObjectHash
	Mode objects.FileMode
}
