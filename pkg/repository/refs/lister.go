package refs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/utkarsh5026/ves/pkg/objects"
)

// Entry pairs a fully-qualified reference path with the object hash it
// resolves to.
type Entry struct {
	Path RefPath
	Hash objects.ObjectHash
}

// ListAll walks refs/heads, refs/tags, and refs/remotes and resolves every
// reference found beneath them, returning entries sorted by path.
//
// A reference that fails to resolve (a dangling symref, a malformed file) is
// skipped rather than aborting the whole listing.
func (rm *RefManager) ListAll() ([]Entry, error) {
	var entries []Entry

	for _, base := range []RefPath{RefHeads, RefTags, RefRemotes} {
		found, err := rm.listUnder(base)
		if err != nil {
			return nil, err
		}
		entries = append(entries, found...)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Path < entries[j].Path
	})

	return entries, nil
}

// listUnder walks every regular file beneath the reference base path (e.g.
// RefHeads), resolving each one to a RefPath/hash Entry.
func (rm *RefManager) listUnder(base RefPath) ([]Entry, error) {
	dir := rm.resolveReferencePath(base).ToAbsolutePath()

	if _, err := os.Stat(dir.String()); os.IsNotExist(err) {
		return nil, nil
	}

	var entries []Entry
	err := filepath.Walk(dir.String(), func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		relPath, err := filepath.Rel(dir.String(), path)
		if err != nil {
			return err
		}

		refPath := RefPath(base.String() + "/" + filepath.ToSlash(relPath))
		hash, err := rm.ResolveToSHA(refPath)
		if err != nil {
			return nil
		}

		entries = append(entries, Entry{Path: refPath, Hash: hash})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", base, err)
	}

	return entries, nil
}
