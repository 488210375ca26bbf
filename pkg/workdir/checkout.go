package workdir

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/utkarsh5026/ves/pkg/objects"
	"github.com/utkarsh5026/ves/pkg/repository/scpath"
	"github.com/utkarsh5026/ves/pkg/repository/sourcerepo"
	"github.com/utkarsh5026/ves/pkg/workdir/internal"
)

// Checkout materializes treeSHA into destination, which must not exist or be
// an empty directory. It recursively walks the tree: blob entries are
// written with their recorded mode, subtree entries become directories, and
// symlink entries are created as symlinks pointing at the blob's content.
//
// Unlike Manager.UpdateToCommit, Checkout never touches HEAD or the index —
// it is the bare tree-to-directory primitive the caller builds semantics on
// top of (branch switches, clones, archive extraction).
func Checkout(repo *sourcerepo.SourceRepository, treeSHA objects.ObjectHash, destination scpath.AbsolutePath) error {
	empty, err := destinationIsEmpty(destination.String())
	if err != nil {
		return fmt.Errorf("checkout %s: %w", treeSHA.Short(), err)
	}
	if !empty {
		return NewDestinationNotEmptyError(destination.String())
	}

	analyzer := internal.NewAnalyzer(repo)
	files, err := analyzer.TreeFiles(treeSHA)
	if err != nil {
		return fmt.Errorf("checkout %s: read tree: %w", treeSHA.Short(), err)
	}

	for path, info := range files {
		if err := materializeEntry(repo, destination, path, info); err != nil {
			return fmt.Errorf("checkout %s: %w", treeSHA.Short(), err)
		}
	}

	return nil
}

func destinationIsEmpty(path string) (bool, error) {
	entries, err := os.ReadDir(path)
	if os.IsNotExist(err) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat destination: %w", err)
	}
	return len(entries) == 0, nil
}

func materializeEntry(repo *sourcerepo.SourceRepository, destination scpath.AbsolutePath, path scpath.RelativePath, info internal.FileInfo) error {
	fullPath := destination.Join(path.String())

	if err := os.MkdirAll(filepath.Dir(fullPath.String()), 0755); err != nil {
		return fmt.Errorf("%s: create parent directory: %w", path, err)
	}

	blobData, err := repo.ReadBlobObject(info.SHA)
	if err != nil {
		return fmt.Errorf("%s: object %s is not a blob", path, info.SHA.Short())
	}

	content, err := blobData.Content()
	if err != nil {
		return fmt.Errorf("%s: get blob content: %w", path, err)
	}

	if info.Mode.IsSymlink() {
		if err := os.Symlink(string(content), fullPath.String()); err != nil {
			return fmt.Errorf("%s: create symlink: %w", path, err)
		}
		return nil
	}

	if err := os.WriteFile(fullPath.String(), content, info.Mode.ToOSFileMode()); err != nil {
		return fmt.Errorf("%s: write file: %w", path, err)
	}

	return nil
}
