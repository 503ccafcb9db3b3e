package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"
)

// LoadKDL reads .codenav.kdl from projectRoot. A missing file is not an
// error; it returns (nil, nil) and the caller falls back to defaults.
func LoadKDL(projectRoot string) (*Config, error) {
	kdlPath := filepath.Join(projectRoot, ".codenav.kdl")
	content, err := os.ReadFile(kdlPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read .codenav.kdl: %w", err)
	}

	cfg, err := parseKDL(string(content))
	if err != nil {
		return nil, err
	}

	// Relative roots are relative to the directory holding the config
	// file, not the process working directory.
	if cfg.Project.Root != "" && !filepath.IsAbs(cfg.Project.Root) {
		cfg.Project.Root = filepath.Join(projectRoot, cfg.Project.Root)
	}
	if cfg.Project.Root == "" {
		cfg.Project.Root = projectRoot
	}

	return cfg, nil
}

func parseKDL(content string) (*Config, error) {
	cfg := Default()

	doc, err := kdl.Parse(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse .codenav.kdl: %w", err)
	}

	for _, n := range doc.Nodes {
		switch nodeName(n) {
		case "project":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "root":
					if s, ok := firstStringArg(cn); ok {
						cfg.Project.Root = s
					}
				case "name":
					if s, ok := firstStringArg(cn); ok {
						cfg.Project.Name = s
					}
				}
			}
		case "index":
			for _, cn := range n.Children {
				if nodeName(cn) == "dir" {
					if s, ok := firstStringArg(cn); ok {
						cfg.Index.Dir = s
					}
				}
			}
		case "search":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "max_results":
					if v, ok := firstIntArg(cn); ok {
						cfg.Search.MaxResults = v
					}
				case "max_matches_per_file":
					if v, ok := firstIntArg(cn); ok {
						cfg.Search.MaxMatchesPerFile = v
					}
				case "file_types":
					cfg.Search.FileTypes = collectStringArgs(cn)
				case "exclude_dirs":
					cfg.Search.ExcludeDirs = collectStringArgs(cn)
				case "exclude":
					cfg.Search.ExcludePatterns = collectStringArgs(cn)
				}
			}
		case "performance":
			for _, cn := range n.Children {
				if nodeName(cn) == "parallel_workers" {
					if v, ok := firstIntArg(cn); ok && v > 0 {
						cfg.Performance.ParallelWorkers = v
					}
				}
			}
		}
	}

	return cfg, nil
}

func nodeName(n *document.Node) string {
	if n == nil || n.Name == nil {
		return ""
	}
	return n.Name.NodeNameString()
}

func firstStringArg(n *document.Node) (string, bool) {
	if len(n.Arguments) == 0 {
		return "", false
	}
	if s, ok := n.Arguments[0].Value.(string); ok {
		return s, true
	}
	return "", false
}

func firstIntArg(n *document.Node) (int, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

// collectStringArgs accepts both inline (`exclude "a" "b"`) and block
// (`exclude { "a"; "b" }`) KDL forms. In block form each string is a
// child node whose name is the value.
func collectStringArgs(n *document.Node) []string {
	if n == nil {
		return nil
	}
	out := make([]string, 0, len(n.Arguments))
	for _, a := range n.Arguments {
		if s, ok := a.Value.(string); ok {
			out = append(out, s)
		}
	}
	if len(out) == 0 && len(n.Children) > 0 {
		for _, child := range n.Children {
			if s, ok := firstStringArg(child); ok {
				out = append(out, s)
			} else if child.Name != nil {
				if s, ok := child.Name.Value.(string); ok {
					out = append(out, s)
				}
			}
		}
	}
	return out
}
