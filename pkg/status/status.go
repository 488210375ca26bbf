// Package status implements the three-way comparison between a commit's
// tree, the index, and the working directory.
package status

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/utkarsh5026/ves/pkg/common/logger"
	"github.com/utkarsh5026/ves/pkg/index"
	"github.com/utkarsh5026/ves/pkg/objects"
	"github.com/utkarsh5026/ves/pkg/objects/blob"
	"github.com/utkarsh5026/ves/pkg/refs/branch"
	"github.com/utkarsh5026/ves/pkg/repository/ignore"
	"github.com/utkarsh5026/ves/pkg/repository/refs"
	"github.com/utkarsh5026/ves/pkg/repository/scpath"
	"github.com/utkarsh5026/ves/pkg/repository/sourcerepo"
	"golang.org/x/sync/errgroup"
)

// Engine computes status reports for a single repository.
type Engine struct {
	repo         *sourcerepo.SourceRepository
	branchRefSvc *branch.BranchRefManager
	ignoreEngine *ignore.Engine
	logger       *slog.Logger
}

// NewEngine builds a status Engine, loading the repository's ignore rules
// (global file, info/exclude, and every .vesignore in the worktree).
func NewEngine(repo *sourcerepo.SourceRepository) (*Engine, error) {
	refMgr := refs.NewRefManager(repo)

	ignoreEngine, err := ignore.Load(repo.WorkingDirectory(), repo.SourceDirectory())
	if err != nil {
		return nil, fmt.Errorf("load ignore rules: %w", err)
	}

	return &Engine{
		repo:         repo,
		branchRefSvc: branch.NewBranchRefManager(refMgr),
		ignoreEngine: ignoreEngine,
		logger:       logger.With("component", "status"),
	}, nil
}

// Compute runs the full three-way comparison and returns a Report.
//
// Flattening the HEAD tree and walking the worktree for untracked files
// don't depend on each other, so they run concurrently once the index has
// been read.
func (e *Engine) Compute(ctx context.Context) (*Report, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	branchName, err := e.branchRefSvc.Current()
	if err != nil {
		return nil, fmt.Errorf("get current branch: %w", err)
	}
	detached := branchName == ""

	headSHA, headErr := e.branchRefSvc.GetHeadSHA()
	hasHead := headErr == nil

	idx, err := index.Read(e.repo.SourceDirectory().IndexPath().ToAbsolutePath())
	if err != nil {
		e.logger.Error("failed to read index", "error", err)
		return nil, fmt.Errorf("read index: %w", err)
	}

	var headFiles map[scpath.RelativePath]headEntry
	var untrackedPaths []scpath.RelativePath
	var untrackedDisplay []string

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		select {
		case <-gctx.Done():
			return gctx.Err()
		default:
		}
		if !hasHead {
			headFiles = map[scpath.RelativePath]headEntry{}
			return nil
		}
		files, err := flattenHeadTree(e.repo, headSHA)
		if err != nil {
			return fmt.Errorf("flatten HEAD tree: %w", err)
		}
		headFiles = files
		return nil
	})
	g.Go(func() error {
		select {
		case <-gctx.Done():
			return gctx.Err()
		default:
		}
		metaName := filepath.Base(e.repo.SourceDirectory().String())
		paths, display, err := walkUntracked(e.repo.WorkingDirectory(), metaName, idx, e.ignoreEngine)
		if err != nil {
			return fmt.Errorf("walk untracked files: %w", err)
		}
		untrackedPaths = paths
		untrackedDisplay = display
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{
		Branch:           branchName,
		Detached:         detached,
		Staged:           computeStaged(headFiles, idx),
		Unstaged:         e.computeUnstaged(idx),
		Untracked:        untrackedPaths,
		UntrackedDisplay: untrackedDisplay,
	}
	if hasHead {
		report.HeadCommit = headSHA
	}

	return report, nil
}

// computeStaged compares the flattened HEAD tree against the index.
func computeStaged(headFiles map[scpath.RelativePath]headEntry, idx *index.Index) StagedChanges {
	var staged StagedChanges
	seen := make(map[scpath.RelativePath]bool, len(idx.Entries))

	for _, entry := range idx.Entries {
		seen[entry.Path] = true

		head, inHead := headFiles[entry.Path]
		switch {
		case !inHead:
			staged.Added = append(staged.Added, entry.Path)
		case head.Hash != entry.BlobHash:
			staged.Modified = append(staged.Modified, entry.Path)
		}
	}

	for path := range headFiles {
		if !seen[path] {
			staged.Deleted = append(staged.Deleted, path)
		}
	}

	return staged
}

// computeUnstaged compares the index against the working directory.
func (e *Engine) computeUnstaged(idx *index.Index) UnstagedChanges {
	var unstaged UnstagedChanges

	for _, entry := range idx.Entries {
		fullPath := e.repo.WorkingDirectory().Join(entry.Path.String())

		info, err := os.Stat(fullPath.String())
		if os.IsNotExist(err) {
			unstaged.Deleted = append(unstaged.Deleted, entry.Path)
			continue
		}
		if err != nil {
			continue
		}

		if !statMatches(entry, info) {
			changed, err := contentDiffers(fullPath.String(), entry.BlobHash)
			if err != nil {
				e.logger.Error("failed to rehash file", "path", entry.Path, "error", err)
				continue
			}
			if changed {
				unstaged.Modified = append(unstaged.Modified, entry.Path)
			}
		}
	}

	return unstaged
}

// statMatches reports whether the file's size and modification time still
// agree with what was recorded in the index.
func statMatches(entry *index.Entry, info os.FileInfo) bool {
	if entry.SizeInBytes != uint32(info.Size()) {
		return false
	}
	return uint32(info.ModTime().Unix()) == entry.ModificationTime.Seconds
}

// contentDiffers hashes the file on disk as a blob and compares it to the
// index's recorded hash.
func contentDiffers(path string, indexHash objects.ObjectHash) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("read file: %w", err)
	}

	b := blob.NewBlob(data)
	rawHash, err := b.Hash()
	if err != nil {
		return false, fmt.Errorf("hash file: %w", err)
	}
	hash := objects.NewObjectHashFromRaw(objects.RawHash(rawHash))

	return hash != indexHash, nil
}
