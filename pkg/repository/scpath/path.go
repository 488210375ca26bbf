package scpath

import (
	"fmt"
	"path/filepath"
	"strings"
)

// RepositoryPath represents an absolute path to a repository root directory
// Example: "/home/user/myproject" or "C:\Users\user\myproject"
type RepositoryPath string

// WorkingPath represents a path within the working directory
// This is typically an absolute path
type WorkingPath string

// RelativePath represents a normalized relative path (forward slashes, no ..)
// Example: "src/main.go" or "docs/README.md"
type RelativePath string

// SourcePath represents a path within the .source directory
// Example: ".source/objects" or ".source/HEAD"
type SourcePath string

// ObjectPath represents a path within .source/objects directory
// Format: "ab/cdef123..." (2-char prefix + 38-char suffix)
type ObjectPath string

// IndexPath represents the path to the Git index file
// Typically ".source/index"
type IndexPath string

// ConfigPath represents a path to a configuration file
type ConfigPath string

// AbsolutePath represents a fully resolved filesystem path, with no
// guarantee of which logical namespace (working tree, .source, or
// neither) it came from. It is the common currency file-level helpers
// (pkg/common/fileops) operate on.
type AbsolutePath string

// String returns the path as a string
func (ap AbsolutePath) String() string {
	return string(ap)
}

// Join joins path elements to the absolute path
func (ap AbsolutePath) Join(elem ...string) AbsolutePath {
	parts := append([]string{string(ap)}, elem...)
	return AbsolutePath(filepath.Join(parts...))
}

// Dir returns all but the last element of the path
func (ap AbsolutePath) Dir() AbsolutePath {
	return AbsolutePath(filepath.Dir(string(ap)))
}

// RepositoryPath methods

// WorkingPath methods

// String returns the path as a string
func (wp WorkingPath) String() string {
	return string(wp)
}

// IsValid checks if this is a valid path
func (wp WorkingPath) IsValid() bool {
	return len(wp) > 0
}

// Join joins path elements to the working path
func (wp WorkingPath) Join(elem ...string) WorkingPath {
	parts := append([]string{string(wp)}, elem...)
	return WorkingPath(filepath.Join(parts...))
}

// RelativeTo returns a relative path from the base path
func (wp WorkingPath) RelativeTo(base RepositoryPath) (RelativePath, error) {
	rel, err := filepath.Rel(string(base), string(wp))
	if err != nil {
		return "", fmt.Errorf("failed to get relative path: %w", err)
	}
	return RelativePath(rel).Normalize(), nil
}

// Base returns the last element of the path
func (wp WorkingPath) Base() string {
	return filepath.Base(string(wp))
}

// Dir returns all but the last element of the path
func (wp WorkingPath) Dir() WorkingPath {
	return WorkingPath(filepath.Dir(string(wp)))
}

// IndexPath methods

// String returns the index path as a string
func (ip IndexPath) String() string {
	return string(ip)
}

// ToWorkingPath converts to a working path
func (ip IndexPath) ToWorkingPath() WorkingPath {
	return WorkingPath(ip)
}

// ConfigPath methods

// String returns the config path as a string
func (cp ConfigPath) String() string {
	return string(cp)
}

// ToWorkingPath converts to a working path
func (cp ConfigPath) ToWorkingPath() WorkingPath {
	return WorkingPath(cp)
}

// Helper functions

// isHexString checks if a string contains only hex characters
func isHexString(s string) bool {
	for _, c := range s {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')) {
			return false
		}
	}
	return true
}

// SanitizePath sanitizes a path for use in Git
func SanitizePath(path string) string {
	path = filepath.ToSlash(path)
	path = strings.Trim(path, "/")
	return path
}

// IsPathSafe checks if a path is safe (no directory traversal, etc.)
func IsPathSafe(path string) bool {
	if strings.Contains(path, "..") {
		return false
	}
	// Cannot be absolute (check both Unix and Windows style)
	if filepath.IsAbs(path) || strings.HasPrefix(path, "/") {
		return false
	}
	// Cannot contain backslashes (use forward slashes)
	if strings.Contains(path, "\\") {
		return false
	}
	return true
}

// NormalizePath normalizes a path for Git (forward slashes, no trailing slash)
func NormalizePath(path string) string {
	// Convert to forward slashes
	path = filepath.ToSlash(filepath.Clean(strings.ReplaceAll(path, "\\", "/")))
	// Remove leading ./
	path = strings.TrimPrefix(path, "./")
	// Remove trailing slash (except for root)
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}

// JoinPaths joins multiple path segments using forward slashes
func JoinPaths(paths ...string) string {
	return NormalizePath(filepath.Join(paths...))
}
