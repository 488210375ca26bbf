package status

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/utkarsh5026/ves/pkg/index"
	"github.com/utkarsh5026/ves/pkg/repository/ignore"
	"github.com/utkarsh5026/ves/pkg/repository/scpath"
)

// walkUntracked walks the working directory, excluding the metadata
// directory, and reports every file that is neither in the index nor
// matched by the ignore engine.
//
// Besides the plain leaf-file list, it produces a display list that
// collapses a directory with no tracked descendants into a single
// "dirname/" entry, the way git avoids spelling out every file the first
// time a whole new directory is added.
func walkUntracked(root scpath.RepositoryPath, metaDirName string, idx *index.Index, ignoreEngine *ignore.Engine) ([]scpath.RelativePath, []string, error) {
	tracked := trackedAncestors(idx)
	rootStr := root.String()

	var untracked []scpath.RelativePath
	var display []string

	walkErr := filepath.Walk(rootStr, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if p == rootStr {
			return nil
		}

		rel, relErr := filepath.Rel(rootStr, p)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)

		if rel == metaDirName || strings.HasPrefix(rel, metaDirName+"/") {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if info.IsDir() {
			if ignoreEngine.CheckIgnore(rel, true) {
				return filepath.SkipDir
			}
			if tracked[rel] {
				return nil
			}

			leaves, err := collectUntrackedLeaves(p, rootStr, ignoreEngine)
			if err != nil {
				return err
			}
			if len(leaves) > 0 {
				untracked = append(untracked, leaves...)
				display = append(display, rel+"/")
			}
			return filepath.SkipDir
		}

		relPath, pathErr := scpath.NewRelativePath(rel)
		if pathErr != nil {
			return nil
		}
		if idx.Has(relPath) {
			return nil
		}
		if ignoreEngine.CheckIgnore(rel, false) {
			return nil
		}

		untracked = append(untracked, relPath)
		display = append(display, rel)
		return nil
	})
	if walkErr != nil {
		return nil, nil, fmt.Errorf("walk working directory: %w", walkErr)
	}

	return untracked, display, nil
}

// trackedAncestors returns the set of every directory (posix-style, relative
// to the worktree root) that is an ancestor of at least one indexed file.
func trackedAncestors(idx *index.Index) map[string]bool {
	dirs := make(map[string]bool)
	for _, p := range idx.Paths() {
		dir := path.Dir(p.String())
		for dir != "." && dir != "/" && dir != "" {
			if dirs[dir] {
				break
			}
			dirs[dir] = true
			dir = path.Dir(dir)
		}
	}
	return dirs
}

// collectUntrackedLeaves recursively gathers every non-ignored file under
// dir, relative to root. It is only called on directories already known to
// have no tracked descendants, so the index need not be consulted here.
func collectUntrackedLeaves(dir, root string, ignoreEngine *ignore.Engine) ([]scpath.RelativePath, error) {
	var leaves []scpath.RelativePath

	err := filepath.Walk(dir, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(root, p)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)

		if info.IsDir() {
			if p != dir && ignoreEngine.CheckIgnore(rel, true) {
				return filepath.SkipDir
			}
			return nil
		}

		if ignoreEngine.CheckIgnore(rel, false) {
			return nil
		}

		relPath, pathErr := scpath.NewRelativePath(rel)
		if pathErr != nil {
			return nil
		}
		leaves = append(leaves, relPath)
		return nil
	})

	return leaves, err
}
