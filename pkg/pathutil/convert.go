// Package pathutil converts between absolute and relative paths. The
// index stores absolute paths for unambiguous lookups; user-facing output
// shows paths relative to the project root.
package pathutil

import (
	"path/filepath"
	"strings"

	"codenav/internal/types"
)

// ToRelative converts an absolute path to one relative to rootDir. Paths
// outside the root, already-relative paths, and conversion failures come
// back unchanged.
func ToRelative(absPath, rootDir string) string {
	if absPath == "" || rootDir == "" {
		return absPath
	}
	if !filepath.IsAbs(absPath) {
		return absPath
	}

	absPath = filepath.Clean(absPath)
	rootDir = filepath.Clean(rootDir)

	relPath, err := filepath.Rel(rootDir, absPath)
	if err != nil {
		return absPath
	}
	// A path outside the root is clearer left absolute.
	if strings.HasPrefix(relPath, "..") {
		return absPath
	}
	return relPath
}

// ToRelativeSymbols rewrites the file paths of a result set relative to
// rootDir, leaving the input untouched.
func ToRelativeSymbols(symbols []types.SymbolInfo, rootDir string) []types.SymbolInfo {
	if len(symbols) == 0 {
		return symbols
	}
	converted := make([]types.SymbolInfo, len(symbols))
	copy(converted, symbols)
	for i := range converted {
		converted[i].FilePath = ToRelative(converted[i].FilePath, rootDir)
	}
	return converted
}
