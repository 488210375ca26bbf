package ignore

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/utkarsh5026/ves/pkg/repository/scpath"
)

// InfoExcludeFile is the repository-local ignore rule file, checked after
// the global user file but before any in-repo .vesignore.
const InfoExcludeFile = "info/exclude"

// Engine evaluates whether a worktree path is ignored, combining a scoped
// pass over .vesignore files found walking up from the path's directory
// with an absolute pass over the repository-local and global rule files.
// Within each individual rule list, the last matching rule wins; across the
// scoped vs absolute passes, the scoped pass always takes precedence when it
// produces a verdict at all (see §4.8).
type Engine struct {
	// scoped maps a directory (relative to the worktree root, "" for the
	// root itself) to the PatternSet defined by the .vesignore file in that
	// directory.
	scoped map[string]*PatternSet

	// absolute holds the repository-local rule list followed by the global
	// one. The absolute pass consults repository-local before global (§4.8)
	// by iterating this slice in order; the first list with a verdict wins.
	absolute []*PatternSet
}

// NewEngine returns an empty engine with no loaded rules.
func NewEngine() *Engine {
	return &Engine{scoped: make(map[string]*PatternSet)}
}

// globalIgnorePath resolves the user's global ignore file, honoring
// XDG_CONFIG_HOME the way the rest of the ecosystem does.
func globalIgnorePath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "ves", "ignore")
}

// Load reads every ignore rule source for a repository: the global user
// file, the repository-local info/exclude, and every .vesignore found
// walking the worktree (excluding the metadata directory).
func Load(worktreeRoot scpath.RepositoryPath, sourceDir scpath.SourcePath) (*Engine, error) {
	e := NewEngine()

	globalSet := NewPatternSet()
	if data, err := os.ReadFile(globalIgnorePath()); err == nil {
		globalSet.AddPatternsFromText(string(data), "global")
	}

	localSet := NewPatternSet()
	if data, err := os.ReadFile(filepath.Join(sourceDir.String(), InfoExcludeFile)); err == nil {
		localSet.AddPatternsFromText(string(data), InfoExcludeFile)
	}
	// Reverse precedence order: repository-local is consulted before global.
	e.absolute = []*PatternSet{localSet, globalSet}

	root := worktreeRoot.String()
	sourceName := filepath.Base(sourceDir.String())

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)

		if info.IsDir() {
			if rel != "." && (strings.HasPrefix(rel, sourceName+"/") || rel == sourceName) {
				return filepath.SkipDir
			}
			return nil
		}

		if info.Name() != DefaultSource {
			return nil
		}

		data, readErr := os.ReadFile(path)
		if readErr != nil {
			return readErr
		}

		dir := filepath.Dir(rel)
		if dir == "." {
			dir = ""
		}
		set := NewPatternSet()
		set.AddPatternsFromText(string(data), DefaultSource)
		e.scoped[dir] = set
		return nil
	})
	if err != nil {
		return nil, err
	}

	return e, nil
}

// CheckIgnore reports whether path (relative to the worktree root, using
// forward slashes) should be ignored.
func (e *Engine) CheckIgnore(path string, isDirectory bool) bool {
	ignored, _ := e.CheckIgnoreSource(path, isDirectory)
	return ignored
}

// CheckIgnoreSource is like CheckIgnore but also reports which rule source
// produced the verdict: a scoped ".vesignore" path (prefixed with the
// directory it lives in, e.g. "sub/.vesignore"), "info/exclude", or
// "global". source is empty when nothing matched.
func (e *Engine) CheckIgnoreSource(path string, isDirectory bool) (ignored bool, source string) {
	if ignored, source, ok := e.checkScoped(path, isDirectory); ok {
		return ignored, source
	}
	return e.checkAbsolute(path, isDirectory)
}

// checkScoped walks from the directory containing path up to the worktree
// root, consulting the .vesignore rule list applicable to each level. The
// first directory (closest ancestor first) whose set yields a verdict wins.
func (e *Engine) checkScoped(path string, isDirectory bool) (ignored bool, source string, ok bool) {
	dir := filepath.ToSlash(filepath.Dir(path))
	if dir == "." {
		dir = ""
	}

	dirs := ancestry(dir)
	for _, d := range dirs {
		set, has := e.scoped[d]
		if !has {
			continue
		}
		if verdict, matched := set.VerdictPattern(path, isDirectory, d); matched != nil {
			src := matched.Source
			if d != "" {
				src = d + "/" + src
			}
			return verdict, src, true
		}
	}
	return false, "", false
}

// checkAbsolute consults the repository-local list then the global list,
// returning the first list's verdict and its source.
func (e *Engine) checkAbsolute(path string, isDirectory bool) (bool, string) {
	for _, set := range e.absolute {
		if verdict, matched := set.VerdictPattern(path, isDirectory, ""); matched != nil {
			return verdict, matched.Source
		}
	}
	return false, ""
}

// ancestry returns dir and each of its ancestors up to and including the
// worktree root (""), nearest first.
func ancestry(dir string) []string {
	var dirs []string
	for {
		dirs = append(dirs, dir)
		if dir == "" {
			break
		}
		parent := filepath.ToSlash(filepath.Dir(dir))
		if parent == "." {
			parent = ""
		}
		dir = parent
	}
	sort.SliceStable(dirs, func(i, j int) bool { return len(dirs[i]) > len(dirs[j]) })
	return dirs
}
