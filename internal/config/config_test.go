package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 500, cfg.Search.MaxResults)
	assert.Equal(t, 100, cfg.Search.MaxMatchesPerFile)
	assert.Positive(t, cfg.Performance.ParallelWorkers)
}

func TestLoadKDL_MissingFileReturnsNil(t *testing.T) {
	cfg, err := LoadKDL(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestLoadKDL_FullConfig(t *testing.T) {
	dir := t.TempDir()
	content := `
project {
    name "myapp"
    root "."
}
index {
    dir "/var/cache/nav"
}
search {
    max_results 250
    max_matches_per_file 20
    file_types "py" "rs"
    exclude_dirs "generated"
    exclude "**/fixtures/**" "**/*.min.js"
}
performance {
    parallel_workers 6
}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".codenav.kdl"), []byte(content), 0o644))

	cfg, err := LoadKDL(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "myapp", cfg.Project.Name)
	assert.Equal(t, dir, filepath.Clean(cfg.Project.Root))
	assert.Equal(t, "/var/cache/nav", cfg.Index.Dir)
	assert.Equal(t, 250, cfg.Search.MaxResults)
	assert.Equal(t, 20, cfg.Search.MaxMatchesPerFile)
	assert.Equal(t, []string{"py", "rs"}, cfg.Search.FileTypes)
	assert.Equal(t, []string{"generated"}, cfg.Search.ExcludeDirs)
	assert.Equal(t, []string{"**/fixtures/**", "**/*.min.js"}, cfg.Search.ExcludePatterns)
	assert.Equal(t, 6, cfg.Performance.ParallelWorkers)
}

func TestLoadKDL_BlockFormExclude(t *testing.T) {
	dir := t.TempDir()
	content := `
search {
    exclude {
        "**/testdata/**"
        "**/*.snap"
    }
}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".codenav.kdl"), []byte(content), 0o644))

	cfg, err := LoadKDL(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, []string{"**/testdata/**", "**/*.snap"}, cfg.Search.ExcludePatterns)
}

func TestLoadKDL_PartialConfigKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".codenav.kdl"),
		[]byte("search {\n    max_results 42\n}\n"), 0o644))

	cfg, err := LoadKDL(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, 42, cfg.Search.MaxResults)
	assert.Equal(t, 100, cfg.Search.MaxMatchesPerFile)
}

func TestLoadKDL_InvalidSyntax(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".codenav.kdl"),
		[]byte("search { max_results"), 0o644))

	_, err := LoadKDL(dir)
	assert.Error(t, err)
}

func TestLoad_DefaultsWithoutConfigFile(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.Project.Root)
	assert.NotEmpty(t, cfg.Index.Dir)
	assert.Equal(t, 500, cfg.Search.MaxResults)
}

func TestLoad_MergesBuildArtifactExclusions(t *testing.T) {
	dir := t.TempDir()
	tsconfig := `{"compilerOptions": {"outDir": "build-out"}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tsconfig.json"), []byte(tsconfig), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Contains(t, cfg.Search.ExcludePatterns, "**/build-out/**")
}

func TestDetectOutputDirectories_TSConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tsconfig.json"),
		[]byte(`{"compilerOptions": {"outDir": "./dist/es"}}`), 0o644))

	patterns := NewBuildArtifactDetector(dir).DetectOutputDirectories()
	assert.Contains(t, patterns, "**/dist/es/**")
}

func TestDetectOutputDirectories_PackageJSONScripts(t *testing.T) {
	dir := t.TempDir()
	pkg := `{"scripts": {"build": "tsc --outDir lib"}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte(pkg), 0o644))

	patterns := NewBuildArtifactDetector(dir).DetectOutputDirectories()
	assert.Contains(t, patterns, "**/lib/**")
}

func TestDetectOutputDirectories_CargoTargetDir(t *testing.T) {
	dir := t.TempDir()
	cargo := "[build]\ntarget-dir = \"artifacts\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Cargo.toml"), []byte(cargo), 0o644))

	patterns := NewBuildArtifactDetector(dir).DetectOutputDirectories()
	assert.Contains(t, patterns, "**/artifacts/**")
}

func TestDetectOutputDirectories_EmptyProject(t *testing.T) {
	patterns := NewBuildArtifactDetector(t.TempDir()).DetectOutputDirectories()
	assert.Empty(t, patterns)
}

func TestOutDirPattern_NormalizesManifestPaths(t *testing.T) {
	cases := map[string]string{
		"dist":      "**/dist/**",
		"./dist/es": "**/dist/es/**",
		"/build/":   "**/build/**",
	}
	for dir, want := range cases {
		assert.Equal(t, want, outDirPattern(dir), "outDir %q", dir)
	}
}

func TestDeduplicatePatterns(t *testing.T) {
	got := DeduplicatePatterns([]string{"a", "b", "a", "c", "b"})
	assert.Equal(t, []string{"a", "b", "c"}, got)
}
