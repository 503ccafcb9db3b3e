// Package config loads project settings from an optional .codenav.kdl
// file and enriches the exclusion list from the project's own build
// configuration (package.json, Cargo.toml, pyproject.toml and friends).
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Config holds all tunable settings. Every field has a working default;
// a project without a .codenav.kdl gets sensible behavior.
type Config struct {
	Project     Project
	Index       Index
	Search      Search
	Performance Performance
}

// Project identifies the project being indexed.
type Project struct {
	Root string
	Name string
}

// Index controls where persisted snapshots live.
type Index struct {
	Dir string
}

// Search bounds the text-search pass.
type Search struct {
	MaxResults        int
	MaxMatchesPerFile int
	FileTypes         []string
	ExcludeDirs       []string
	ExcludePatterns   []string
}

// Performance caps parallelism for batch indexing and search.
type Performance struct {
	ParallelWorkers int
}

// Default returns the configuration used when no .codenav.kdl exists.
func Default() *Config {
	return &Config{
		Search: Search{
			// Reference resolution over-collects candidates; the
			// structural validation pass discards the false hits.
			MaxResults:        500,
			MaxMatchesPerFile: 100,
		},
		Performance: Performance{
			ParallelWorkers: runtime.NumCPU(),
		},
	}
}

// Load resolves the effective configuration for projectRoot: defaults,
// overlaid with .codenav.kdl when present, then exclusion patterns
// detected from the project's build files. The returned Project.Root is
// always absolute.
func Load(projectRoot string) (*Config, error) {
	cfg, err := LoadKDL(projectRoot)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = Default()
	}

	if cfg.Project.Root == "" {
		cfg.Project.Root = projectRoot
	}
	if !filepath.IsAbs(cfg.Project.Root) {
		if abs, err := filepath.Abs(cfg.Project.Root); err == nil {
			cfg.Project.Root = abs
		}
	}
	cfg.Project.Root = filepath.Clean(cfg.Project.Root)

	if cfg.Index.Dir == "" {
		if cacheDir, err := os.UserCacheDir(); err == nil {
			cfg.Index.Dir = filepath.Join(cacheDir, "codenav", "index")
		}
	}

	detector := NewBuildArtifactDetector(cfg.Project.Root)
	cfg.Search.ExcludePatterns = DeduplicatePatterns(
		append(cfg.Search.ExcludePatterns, detector.DetectOutputDirectories()...))

	return cfg, nil
}
