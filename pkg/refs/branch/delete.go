package branch

import (
	"container/list"
	"context"
	"fmt"

	"github.com/utkarsh5026/ves/pkg/objects"
	"github.com/utkarsh5026/ves/pkg/repository/sourcerepo"
)

// Delete handles branch deletion operations
type Delete struct {
	repo       *sourcerepo.SourceRepository
	refService *BranchRefManager
}

// NewDelete creates a new branch delete service
func NewDelete(repo *sourcerepo.SourceRepository, refSvc *BranchRefManager) *Delete {
	return &Delete{
		repo:       repo,
		refService: refSvc,
	}
}

// Delete deletes a branch with the given configuration
func (d *Delete) Delete(ctx context.Context, name string, config *DeleteConfig) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if err := ValidateBranchName(name); err != nil {
		return err
	}

	err := d.refService.ValidateExists(name)
	if err != nil {
		return err
	}

	current, err := d.refService.Current()
	if err != nil {
		return fmt.Errorf("get current branch: %w", err)
	}
	if current == name {
		return NewIsCurrentError(name)
	}

	if !config.Force {
		headSHA, err := d.refService.GetHeadSHA()
		if err != nil {
			return fmt.Errorf("get HEAD: %w", err)
		}

		branchSHA, err := d.refService.Resolve(name)
		if err != nil {
			return fmt.Errorf("resolve branch %s: %w", name, err)
		}

		merged, err := d.isAncestor(ctx, branchSHA, headSHA)
		if err != nil {
			return fmt.Errorf("check merge status: %w", err)
		}
		if !merged {
			return NewNotMergedError(name)
		}
	}

	if err := d.refService.Delete(name); err != nil {
		return fmt.Errorf("delete branch: %w", err)
	}

	return nil
}

// DeleteMultiple deletes multiple branches
func (d *Delete) DeleteMultiple(ctx context.Context, names []string, config *DeleteConfig) error {
	var firstError error

	for _, name := range names {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := d.Delete(ctx, name, config); err != nil {
			if firstError == nil {
				firstError = err
			}
		}
	}

	return firstError
}

// IsMerged checks whether branchName's commit is reachable from targetBranch,
// i.e. branchName has been fully merged into targetBranch.
func (d *Delete) IsMerged(ctx context.Context, branchName, targetBranch string) (bool, error) {
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	default:
	}

	branchSHA, err := d.refService.Resolve(branchName)
	if err != nil {
		return false, fmt.Errorf("resolve branch %s: %w", branchName, err)
	}

	targetSHA, err := d.refService.Resolve(targetBranch)
	if err != nil {
		return false, fmt.Errorf("resolve branch %s: %w", targetBranch, err)
	}

	return d.isAncestor(ctx, branchSHA, targetSHA)
}

// isAncestor reports whether ancestorSHA is reachable by walking targetSHA's
// commit history (targetSHA itself counts as reachable).
func (d *Delete) isAncestor(ctx context.Context, ancestorSHA, targetSHA objects.ObjectHash) (bool, error) {
	visited := make(map[string]bool)
	queue := list.New()
	queue.PushBack(targetSHA)

	for queue.Len() > 0 {
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		default:
		}

		front := queue.Remove(queue.Front()).(objects.ObjectHash)
		if visited[front.String()] {
			continue
		}
		visited[front.String()] = true

		if front == ancestorSHA {
			return true, nil
		}

		commitObj, err := d.repo.ReadCommitObject(front)
		if err != nil {
			continue
		}
		for _, parentSHA := range commitObj.ParentSHAs {
			queue.PushBack(objects.ObjectHash(parentSHA))
		}
	}

	return false, nil
}
