package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	navErrors "codenav/internal/errors"
	"codenav/internal/indexing"
	"codenav/internal/search"
	"codenav/internal/types"
	"codenav/pkg/pathutil"
)

func indexCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	svc := newService(cfg, c.Int("workers"))
	root := cfg.Project.Root

	start := time.Now()
	files, timestamps, err := collectSourceFiles(root)
	if err != nil {
		return navErrors.NewIndexingError("scan", err).WithFile(root)
	}

	svc.IndexFilesBatch(files)

	if err := newStore(cfg).Save(svc.Index(), root, timestamps); err != nil {
		return err
	}

	fileCount, defCount := svc.Index().Counts()
	elapsed := time.Since(start)

	if c.Bool("json") {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"root":        root,
			"files":       fileCount,
			"definitions": defCount,
			"time_ms":     elapsed.Milliseconds(),
		})
	}
	fmt.Printf("Indexed %d files, %d definitions in %v\n", fileCount, defCount, elapsed.Round(time.Millisecond))
	return nil
}

func definitionCommand(c *cli.Context) error {
	if c.NArg() < 1 {
		return errors.New("usage: codenav def <symbol>")
	}
	symbol := c.Args().First()

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	svc := newService(cfg, 0)

	loaded, err := newStore(cfg).Load(svc.Index(), cfg.Project.Root)
	if err != nil {
		return err
	}
	if !loaded {
		return errors.New("no index found, run 'codenav index' first")
	}

	var results []types.SymbolInfo
	for _, family := range queryFamilies(c) {
		results = append(results, svc.FindDefinition(symbol, family)...)
	}

	if len(results) == 0 {
		fmt.Printf("No definition found for %q\n", symbol)
		if similar := svc.SimilarSymbols(symbol, 5); len(similar) > 0 {
			fmt.Printf("Did you mean: %s\n", strings.Join(similar, ", "))
		}
		return nil
	}

	return printSymbols(c, results, cfg.Project.Root)
}

func referencesCommand(c *cli.Context) error {
	if c.NArg() < 1 {
		return errors.New("usage: codenav refs <symbol>")
	}
	symbol := c.Args().First()

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	svc := newService(cfg, 0)

	var results []types.SymbolInfo
	for _, family := range queryFamilies(c) {
		results = append(results, svc.FindReferencesHybrid(symbol, family, cfg.Project.Root)...)
	}

	if len(results) == 0 {
		fmt.Printf("No references found for %q\n", symbol)
		return nil
	}
	return printSymbols(c, results, cfg.Project.Root)
}

func filesCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	svc := newService(cfg, 0)

	loaded, err := newStore(cfg).Load(svc.Index(), cfg.Project.Root)
	if err != nil {
		return err
	}
	if !loaded {
		return errors.New("no index found, run 'codenav index' first")
	}

	files := svc.IndexedFiles()
	if c.Bool("json") {
		return json.NewEncoder(os.Stdout).Encode(files)
	}
	for _, f := range files {
		fmt.Println(f)
	}
	return nil
}

func statusCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	meta, err := newStore(cfg).Metadata(cfg.Project.Root)
	if err != nil {
		return err
	}
	if meta == nil {
		fmt.Printf("No index for %s\n", cfg.Project.Root)
		return nil
	}

	if c.Bool("json") {
		return json.NewEncoder(os.Stdout).Encode(meta)
	}
	fmt.Printf("Project:      %s\n", meta.RootPath)
	fmt.Printf("Files:        %d\n", meta.FileCount)
	fmt.Printf("Definitions:  %d\n", meta.DefinitionCount)
	fmt.Printf("Last updated: %s\n", time.Unix(meta.LastUpdated, 0).Format(time.RFC3339))
	return nil
}

func clearCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if err := newStore(cfg).Delete(cfg.Project.Root); err != nil {
		return err
	}
	fmt.Printf("Cleared index for %s\n", cfg.Project.Root)
	return nil
}

// queryFamilies resolves the --family flag; without it, queries run
// across every family.
func queryFamilies(c *cli.Context) []string {
	if family := c.String("family"); family != "" {
		return []string{family}
	}
	return types.AllFamilies
}

func printSymbols(c *cli.Context, results []types.SymbolInfo, root string) error {
	results = pathutil.ToRelativeSymbols(results, root)
	if c.Bool("json") {
		return json.NewEncoder(os.Stdout).Encode(results)
	}
	for _, r := range results {
		fmt.Printf("%s:%d:%d: %s %s\n", r.FilePath, r.StartLine, r.StartColumn, r.Kind, r.Name)
	}
	return nil
}

// collectSourceFiles walks the project tree and reads every supported
// source file, recording modification times for the persisted snapshot.
// Unreadable files are skipped.
func collectSourceFiles(root string) ([]indexing.FileInput, map[string]int64, error) {
	var files []indexing.FileInput
	timestamps := make(map[string]int64)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && search.ShouldExcludeDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		lang, ok := types.LanguageForPath(path)
		if !ok {
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		files = append(files, indexing.FileInput{Path: path, Content: content, Language: lang})
		if info, err := d.Info(); err == nil {
			timestamps[path] = info.ModTime().Unix()
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return files, timestamps, nil
}
