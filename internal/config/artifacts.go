package config

import (
	"encoding/json"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// BuildArtifactDetector derives search exclusion patterns from a
// project's own build configuration, so generated output never pollutes
// reference results.
type BuildArtifactDetector struct {
	projectRoot string
}

func NewBuildArtifactDetector(projectRoot string) *BuildArtifactDetector {
	return &BuildArtifactDetector{projectRoot: projectRoot}
}

// DetectOutputDirectories scans known build files and returns glob
// patterns for the output directories they declare.
func (d *BuildArtifactDetector) DetectOutputDirectories() []string {
	var patterns []string
	patterns = append(patterns, d.detectTypeScriptOutputs()...)
	patterns = append(patterns, d.detectRustOutputs()...)
	patterns = append(patterns, d.detectPythonOutputs()...)
	return patterns
}

// detectTypeScriptOutputs reads outDir from tsconfig.json and explicit
// build configuration in package.json.
func (d *BuildArtifactDetector) detectTypeScriptOutputs() []string {
	var patterns []string

	if data, err := os.ReadFile(filepath.Join(d.projectRoot, "tsconfig.json")); err == nil {
		var tsconfig struct {
			CompilerOptions struct {
				OutDir string `json:"outDir"`
			} `json:"compilerOptions"`
		}
		if json.Unmarshal(data, &tsconfig) == nil && tsconfig.CompilerOptions.OutDir != "" {
			patterns = append(patterns, outDirPattern(tsconfig.CompilerOptions.OutDir))
		}
	}

	if data, err := os.ReadFile(filepath.Join(d.projectRoot, "package.json")); err == nil {
		var pkg struct {
			Build struct {
				OutDir string `json:"outDir"`
			} `json:"build"`
			Scripts map[string]string `json:"scripts"`
		}
		if json.Unmarshal(data, &pkg) == nil {
			if pkg.Build.OutDir != "" {
				patterns = append(patterns, outDirPattern(pkg.Build.OutDir))
			}
			for _, script := range pkg.Scripts {
				patterns = append(patterns, outDirsFromScript(script)...)
			}
		}
	}

	return patterns
}

// outDirsFromScript pulls --outDir arguments out of npm build scripts.
func outDirsFromScript(script string) []string {
	var patterns []string
	parts := strings.Fields(script)
	for i, part := range parts {
		if (part == "--outDir" || part == "-outDir") && i+1 < len(parts) {
			dir := strings.Trim(parts[i+1], `"'`)
			if dir != "" {
				patterns = append(patterns, outDirPattern(dir))
			}
		}
	}
	return patterns
}

// detectRustOutputs checks Cargo.toml for a non-default target directory.
func (d *BuildArtifactDetector) detectRustOutputs() []string {
	data, err := os.ReadFile(filepath.Join(d.projectRoot, "Cargo.toml"))
	if err != nil {
		return nil
	}
	var cargo struct {
		Build struct {
			TargetDir string `toml:"target-dir"`
		} `toml:"build"`
	}
	if toml.Unmarshal(data, &cargo) != nil || cargo.Build.TargetDir == "" {
		return nil
	}
	return []string{outDirPattern(cargo.Build.TargetDir)}
}

// detectPythonOutputs checks pyproject.toml for a poetry build target.
func (d *BuildArtifactDetector) detectPythonOutputs() []string {
	data, err := os.ReadFile(filepath.Join(d.projectRoot, "pyproject.toml"))
	if err != nil {
		return nil
	}
	var pyproject struct {
		Tool struct {
			Poetry struct {
				Build struct {
					TargetDir string `toml:"target-dir"`
				} `toml:"build"`
			} `toml:"poetry"`
		} `toml:"tool"`
	}
	if toml.Unmarshal(data, &pyproject) != nil || pyproject.Tool.Poetry.Build.TargetDir == "" {
		return nil
	}
	return []string{outDirPattern(pyproject.Tool.Poetry.Build.TargetDir)}
}

// outDirPattern turns a build-output directory into a doublestar exclude
// pattern. Manifests commonly write "./dist"; Clean strips the prefix so
// the pattern matches real relative paths.
func outDirPattern(dir string) string {
	dir = strings.Trim(path.Clean(filepath.ToSlash(dir)), "/")
	return "**/" + dir + "/**"
}

// DeduplicatePatterns drops repeated patterns, keeping first-seen order.
func DeduplicatePatterns(patterns []string) []string {
	seen := make(map[string]bool, len(patterns))
	result := make([]string, 0, len(patterns))
	for _, p := range patterns {
		if !seen[p] {
			seen[p] = true
			result = append(result, p)
		}
	}
	return result
}
