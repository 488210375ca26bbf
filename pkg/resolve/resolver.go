// Package resolve implements Git's flexible name resolution strategy: turning
// a user-supplied name (HEAD, a short or full SHA, a branch, tag, or remote
// name) into one or more candidate object hashes, and optionally coercing the
// result to a specific object type by following tag and commit indirections.
package resolve

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/utkarsh5026/ves/pkg/objects"
	"github.com/utkarsh5026/ves/pkg/objects/commit"
	"github.com/utkarsh5026/ves/pkg/objects/tag"
	"github.com/utkarsh5026/ves/pkg/repository/refs"
	"github.com/utkarsh5026/ves/pkg/repository/sourcerepo"
)

var shortHashPattern = regexp.MustCompile(`^[0-9A-Fa-f]{4,40}$`)

// Resolver resolves names to object hashes against a single repository.
type Resolver struct {
	repo   sourcerepo.Repository
	refMgr *refs.RefManager
}

// NewResolver creates a Resolver bound to repo.
func NewResolver(repo sourcerepo.Repository) *Resolver {
	return &Resolver{
		repo:   repo,
		refMgr: refs.NewRefManager(repo),
	}
}

// Resolve returns every object hash that name could plausibly refer to.
// A nil, empty slice means the name is empty/whitespace-only or matched
// nothing; it is never an error on its own.
//
// Resolution order (all sources are tried, not just the first that matches,
// except for the HEAD literal which short-circuits):
//  1. "HEAD" resolves through the reference store alone
//  2. a 4-40 character hex string is matched against stored object hashes
//     sharing its two-character shard prefix
//  3. refs/tags/<name>, refs/heads/<name>, refs/remotes/<name> are each
//     consulted and every hit is appended as its own candidate
func (r *Resolver) Resolve(name string) ([]objects.ObjectHash, error) {
	if strings.TrimSpace(name) == "" {
		return nil, nil
	}

	if name == "HEAD" {
		sha, ok, err := r.resolveRef(refs.RefHEAD)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, nil
		}
		return []objects.ObjectHash{sha}, nil
	}

	var candidates []objects.ObjectHash

	if shortHashPattern.MatchString(name) {
		hashes, err := r.matchObjectPrefix(strings.ToLower(name))
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, hashes...)
	}

	for _, prefix := range []string{"refs/tags/", "refs/heads/", "refs/remotes/"} {
		sha, ok, err := r.resolveRef(refs.RefPath(prefix + name))
		if err != nil {
			return nil, err
		}
		if ok {
			candidates = append(candidates, sha)
		}
	}

	return candidates, nil
}

// Find resolves name to exactly one object hash, returning a NotFoundError
// or AmbiguousError when that isn't possible. When want is non-empty, Find
// follows annotated-tag and commit-to-tree indirections (when follow is true)
// until an object of that type is reached, mirroring git's rev-parse
// peeling behavior.
func (r *Resolver) Find(name string, want objects.ObjectType, follow bool) (objects.ObjectHash, error) {
	candidates, err := r.Resolve(name)
	if err != nil {
		return "", err
	}

	if len(candidates) == 0 {
		return "", NewNotFoundError(name)
	}
	if len(candidates) > 1 {
		strs := make([]string, len(candidates))
		for i, c := range candidates {
			strs[i] = c.String()
		}
		return "", NewAmbiguousError(name, strs)
	}

	sha := candidates[0]
	if want == "" {
		return sha, nil
	}

	for {
		obj, err := r.repo.ReadObject(sha)
		if err != nil {
			return "", fmt.Errorf("read object %s: %w", sha.Short(), err)
		}

		if obj.Type() == want {
			return sha, nil
		}

		if !follow {
			return "", NewWrongTypeError(name, string(want))
		}

		switch t := obj.(type) {
		case *tag.Tag:
			next, err := objects.NewObjectHashFromString(t.ObjectSHA)
			if err != nil {
				return "", fmt.Errorf("tag %s has invalid object field: %w", sha.Short(), err)
			}
			sha = next
		case *commit.Commit:
			if want != objects.TreeType {
				return "", NewWrongTypeError(name, string(want))
			}
			next, err := objects.NewObjectHashFromString(t.TreeSHA)
			if err != nil {
				return "", fmt.Errorf("commit %s has invalid tree field: %w", sha.Short(), err)
			}
			sha = next
		default:
			return "", NewWrongTypeError(name, string(want))
		}
	}
}

// resolveRef reports whether ref exists and, if so, the hash it resolves to.
// A missing ref is not an error: ok is false and err is nil.
func (r *Resolver) resolveRef(ref refs.RefPath) (objects.ObjectHash, bool, error) {
	exists, err := r.refMgr.Exists(ref)
	if err != nil {
		return "", false, fmt.Errorf("check ref %s: %w", ref, err)
	}
	if !exists {
		return "", false, nil
	}

	sha, err := r.refMgr.ResolveToSHA(ref)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// A symbolic ref whose target is missing, such as an unborn HEAD.
			return "", false, nil
		}
		return "", false, fmt.Errorf("resolve ref %s: %w", ref, err)
	}
	return sha, true, nil
}

// matchObjectPrefix enumerates every stored object whose hash starts with
// the given lowercase hex prefix (4-40 characters).
func (r *Resolver) matchObjectPrefix(prefix string) ([]objects.ObjectHash, error) {
	shard := prefix[:2]
	remainder := prefix[2:]

	shardDir := r.repo.SourceDirectory().ObjectsPath().Join(shard)
	entries, err := os.ReadDir(shardDir.String())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list object shard %s: %w", shard, err)
	}

	var matches []objects.ObjectHash
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(strings.ToLower(name), remainder) {
			continue
		}
		hash, err := objects.NewObjectHashFromString(shard + name)
		if err != nil {
			continue
		}
		matches = append(matches, hash)
	}

	return matches, nil
}
