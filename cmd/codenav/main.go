package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"codenav/internal/config"
	"codenav/internal/debug"
	"codenav/internal/indexing"
	"codenav/internal/parser"
	"codenav/internal/search"
	"codenav/internal/version"
)

func main() {
	app := &cli.App{
		Name:                   "codenav",
		Usage:                  "Symbol definitions and references across multi-language codebases",
		Version:                version.Version,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "root",
				Aliases: []string{"r"},
				Usage:   "Project root directory (default: current directory)",
			},
			&cli.StringFlag{
				Name:  "index-dir",
				Usage: "Directory for persisted index snapshots (overrides config)",
			},
			&cli.BoolFlag{
				Name:    "json",
				Aliases: []string{"j"},
				Usage:   "Output as JSON",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Write debug logs to stderr",
			},
			&cli.BoolFlag{
				Name:  "debug-log",
				Usage: "Write debug logs to a file under the system temp directory",
			},
		},
		Before: setupDebugLogging,
		After: func(c *cli.Context) error {
			return debug.CloseDebugLog()
		},
		Commands: []*cli.Command{
			{
				Name:    "index",
				Aliases: []string{"i"},
				Usage:   "Index all supported source files under the project root",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "workers",
						Aliases: []string{"w"},
						Usage:   "Parallel indexing workers (default: CPU count)",
					},
				},
				Action: indexCommand,
			},
			{
				Name:      "def",
				Aliases:   []string{"d"},
				Usage:     "Find symbol definitions",
				ArgsUsage: "<symbol>",
				Flags:     []cli.Flag{familyFlag()},
				Action:    definitionCommand,
			},
			{
				Name:      "refs",
				Usage:     "Find symbol references",
				ArgsUsage: "<symbol>",
				Flags:     []cli.Flag{familyFlag()},
				Action:    referencesCommand,
			},
			{
				Name:    "files",
				Aliases: []string{"ls"},
				Usage:   "List indexed files",
				Action:  filesCommand,
			},
			{
				Name:    "status",
				Aliases: []string{"st"},
				Usage:   "Show persisted index status for the project",
				Action:  statusCommand,
			},
			{
				Name:   "clear",
				Usage:  "Delete the persisted index for the project",
				Action: clearCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setupDebugLogging routes debug output to stderr or a temp-dir log file.
// DEBUG=1 in the environment works without the flags.
func setupDebugLogging(c *cli.Context) error {
	if c.Bool("debug") || c.Bool("debug-log") {
		os.Setenv("DEBUG", "1")
	}
	if !debug.IsDebugEnabled() {
		return nil
	}
	if c.Bool("debug-log") {
		logPath, err := debug.InitDebugLogFile()
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Debug log: %s\n", logPath)
		return nil
	}
	debug.SetDebugOutput(os.Stderr)
	return nil
}

func familyFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "family",
		Aliases: []string{"f"},
		Usage:   "Restrict to one language family (python, rust, go, java, c_family, js_family)",
	}
}

// loadConfig resolves the effective configuration, applying CLI overrides
// on top of any .codenav.kdl in the project root.
func loadConfig(c *cli.Context) (*config.Config, error) {
	root := c.String("root")
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		root = cwd
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root path %q: %w", root, err)
	}

	cfg, err := config.Load(absRoot)
	if err != nil {
		return nil, err
	}
	if dir := c.String("index-dir"); dir != "" {
		cfg.Index.Dir = dir
	}
	return cfg, nil
}

func newService(cfg *config.Config, workers int) *indexing.Service {
	if workers <= 0 {
		workers = cfg.Performance.ParallelWorkers
	}
	searcher := search.NewContentSearcher().
		WithMaxResults(cfg.Search.MaxResults).
		WithMaxMatchesPerFile(cfg.Search.MaxMatchesPerFile).
		WithFileTypes(cfg.Search.FileTypes).
		WithExcludeDirs(cfg.Search.ExcludeDirs).
		WithExcludePatterns(cfg.Search.ExcludePatterns).
		WithWorkers(workers)

	return indexing.NewService(parser.NewEngine(), searcher, workers)
}

func newStore(cfg *config.Config) *indexing.Store {
	return indexing.NewStore(cfg.Index.Dir)
}
