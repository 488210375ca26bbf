package ignore

import "strings"

// PatternSet is an ordered collection of ignore patterns from a single rule
// source (a .vesignore file, info/exclude, or the global ignore file).
// Within a set, the last pattern that matches a path wins, regardless of
// whether it's an ignore rule or a negation.
type PatternSet struct {
	patterns []*IgnorePattern
}

// NewPatternSet creates a new empty pattern set
func NewPatternSet() *PatternSet {
	return &PatternSet{
		patterns: make([]*IgnorePattern, 0),
	}
}

// Add appends a pattern to the set, preserving file order.
func (ps *PatternSet) Add(pattern *IgnorePattern) {
	ps.patterns = append(ps.patterns, pattern)
}

// AddPatternsFromText parses text and adds all valid patterns to the set
func (ps *PatternSet) AddPatternsFromText(text, source string) {
	if source == "" {
		source = DefaultSource
	}

	lines := strings.Split(text, "\n")

	for index, line := range lines {
		pattern := FromLine(line, source, index+1)
		if pattern != nil {
			ps.Add(pattern)
		}
	}
}

// Verdict reports whether any pattern in this set matches the path, and, if
// so, whether the last matching pattern says to ignore (true) or to include
// it (false, a negation). ok is false when nothing in the set matched.
func (ps *PatternSet) Verdict(filePath string, isDirectory bool, fromDirectory string) (ignored bool, ok bool) {
	ignored, matched := ps.VerdictPattern(filePath, isDirectory, fromDirectory)
	return ignored, matched != nil
}

// VerdictPattern is like Verdict but also returns the pattern that produced
// the verdict, so callers can report which rule source matched. matched is
// nil when nothing in the set matched.
func (ps *PatternSet) VerdictPattern(filePath string, isDirectory bool, fromDirectory string) (ignored bool, matched *IgnorePattern) {
	for _, pattern := range ps.patterns {
		if pattern.Matches(filePath, isDirectory, fromDirectory) {
			ignored = !pattern.IsNegation
			matched = pattern
		}
	}
	return ignored, matched
}

// IsIgnored checks if a file path should be ignored by this set alone,
// applying last-match-wins; a path matched by nothing is not ignored.
func (ps *PatternSet) IsIgnored(filePath string, isDirectory bool, fromDirectory string) bool {
	ignored, _ := ps.Verdict(filePath, isDirectory, fromDirectory)
	return ignored
}

// Clear removes all patterns from the set
func (ps *PatternSet) Clear() {
	ps.patterns = make([]*IgnorePattern, 0)
}

// Patterns returns every pattern in the set, in file order.
func (ps *PatternSet) Patterns() []*IgnorePattern {
	return ps.patterns
}

// IgnoredPatterns returns the non-negation patterns in the set.
func (ps *PatternSet) IgnoredPatterns() []*IgnorePattern {
	out := make([]*IgnorePattern, 0, len(ps.patterns))
	for _, p := range ps.patterns {
		if !p.IsNegation {
			out = append(out, p)
		}
	}
	return out
}

// UnignoredPatterns returns the negation patterns in the set.
func (ps *PatternSet) UnignoredPatterns() []*IgnorePattern {
	out := make([]*IgnorePattern, 0, len(ps.patterns))
	for _, p := range ps.patterns {
		if p.IsNegation {
			out = append(out, p)
		}
	}
	return out
}
