package status

import (
	"fmt"
	"maps"

	"github.com/utkarsh5026/ves/pkg/objects"
	"github.com/utkarsh5026/ves/pkg/repository/scpath"
	"github.com/utkarsh5026/ves/pkg/repository/sourcerepo"
)

// flattenHeadTree walks a commit's tree recursively, producing a
// path -> headEntry map for every blob reachable from it. Submodule entries
// are skipped; they have no blob to hash against.
func flattenHeadTree(repo *sourcerepo.SourceRepository, commitSHA objects.ObjectHash) (map[scpath.RelativePath]headEntry, error) {
	commitObj, err := repo.ReadCommitObject(commitSHA)
	if err != nil {
		return nil, fmt.Errorf("read commit %s: %w", commitSHA.Short(), err)
	}

	if commitObj.TreeSHA == "" {
		return map[scpath.RelativePath]headEntry{}, nil
	}

	treeSHA, err := objects.NewObjectHashFromString(commitObj.TreeSHA)
	if err != nil {
		return nil, fmt.Errorf("commit %s has invalid tree field: %w", commitSHA.Short(), err)
	}

	return flattenTree(repo, treeSHA, "")
}

func flattenTree(repo *sourcerepo.SourceRepository, treeSHA objects.ObjectHash, basePath scpath.RelativePath) (map[scpath.RelativePath]headEntry, error) {
	files := make(map[scpath.RelativePath]headEntry)

	treeObj, err := repo.ReadTreeObject(treeSHA)
	if err != nil {
		return nil, fmt.Errorf("read tree %s: %w", treeSHA.Short(), err)
	}

	for _, e := range treeObj.Entries() {
		var fullPath scpath.RelativePath
		if basePath == "" {
			fullPath = scpath.RelativePath(e.Name())
		} else {
			fullPath = basePath.Join(e.Name())
		}

		if e.IsSubmodule() {
			continue
		}

		entrySHA, err := objects.NewObjectHashFromString(e.SHA())
		if err != nil {
			return nil, fmt.Errorf("entry %s has invalid sha: %w", fullPath, err)
		}

		if e.IsDirectory() {
			subFiles, err := flattenTree(repo, entrySHA, fullPath)
			if err != nil {
				return nil, err
			}
			maps.Copy(files, subFiles)
			continue
		}

		mode, err := objects.FromOctalString(e.Mode())
		if err != nil {
			return nil, fmt.Errorf("entry %s has invalid mode: %w", fullPath, err)
		}

		files[fullPath] = headEntry{Hash: entrySHA, Mode: mode}
	}

	return files, nil
}
