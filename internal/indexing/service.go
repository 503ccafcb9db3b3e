package indexing

import (
	"errors"
	"runtime"
	"sort"
	"time"

	"github.com/hbollon/go-edlib"
	"golang.org/x/sync/errgroup"

	"codenav/internal/debug"
	navErrors "codenav/internal/errors"
	"codenav/internal/parser"
	"codenav/internal/types"
)

// errNoTree marks a parser that produced no tree at all; recoverable parse
// damage still yields a best-effort tree with error nodes.
var errNoTree = errors.New("parser produced no syntax tree")

// ContentSearcher is the text-search collaborator consumed by the hybrid
// reference search. Result caps are the searcher's own configuration.
type ContentSearcher interface {
	SearchContent(pattern, rootPath string) ([]types.SearchResult, error)
}

// FileInput is one file handed to the indexer.
type FileInput struct {
	Path     string
	Content  []byte
	Language types.Language
}

// Service drives the syntax engine over files and answers definition and
// reference queries against the shared SymbolIndex. Parsing always happens
// outside the index lock; the critical section is pure map mutation.
type Service struct {
	engine   *parser.Engine
	index    *SymbolIndex
	searcher ContentSearcher
	workers  int
}

// NewService wires a service from its collaborators. workers bounds the
// batch indexer's parallel phase; zero means NumCPU.
func NewService(engine *parser.Engine, searcher ContentSearcher, workers int) *Service {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Service{
		engine:   engine,
		index:    NewSymbolIndex(),
		searcher: searcher,
		workers:  workers,
	}
}

// Index exposes the underlying symbol index.
func (s *Service) Index() *SymbolIndex {
	return s.index
}

// IndexFile replaces filePath's definitions with those extracted from
// content. Prior entries are always invalidated, even when the language is
// unregistered or the content no longer parses - a file that stops parsing
// contributes zero definitions until corrected, never stale ones.
func (s *Service) IndexFile(filePath string, content []byte, lang types.Language) {
	start := time.Now()

	var defs []types.SymbolInfo
	if s.engine.Supports(lang) {
		defs = s.engine.Definitions(lang, filePath, content)
	} else {
		debug.LogIndexing("no parser for language %s, clearing %s\n", lang, filePath)
	}

	s.index.ReplaceFile(fileDefinitions(filePath, defs))

	debug.LogIndexing("indexed %s (%d definitions) in %.2fms\n",
		filePath, len(defs), float64(time.Since(start).Microseconds())/1000.0)
}

// IndexFilesBatch indexes many files at once: a parallel fork phase parses
// each file with a fresh single-language engine (no shared parser state, no
// index lock held), then a serial join merges all results under one write
// lock. Files with no registered language or that fail to parse are
// skipped untouched.
func (s *Service) IndexFilesBatch(files []FileInput) {
	start := time.Now()

	results := make([]*FileDefinitions, len(files))

	g := new(errgroup.Group)
	g.SetLimit(s.workers)
	for i, file := range files {
		g.Go(func() error {
			eng := parser.NewEngineFor(file.Language)
			if !eng.Supports(file.Language) {
				return nil
			}
			tree := eng.Parse(file.Language, file.Content)
			if tree == nil {
				debug.LogIndexing("batch: %v\n",
					navErrors.NewParseError(file.Path, string(file.Language), errNoTree))
				return nil
			}
			defer tree.Close()

			defs := eng.DefinitionsFromTree(tree, file.Language, file.Path, file.Content)
			fd := fileDefinitions(file.Path, defs)
			results[i] = &fd
			return nil
		})
	}
	// Workers only ever return nil; bad files are skipped.
	_ = g.Wait()

	merged := make([]FileDefinitions, 0, len(results))
	totalDefs := 0
	for _, fd := range results {
		if fd == nil {
			continue
		}
		merged = append(merged, *fd)
		totalDefs += len(fd.Definitions)
	}
	s.index.ApplyBatch(merged)

	debug.LogIndexing("batch indexed %d files (%d definitions) in %.2fms\n",
		len(files), totalDefs, float64(time.Since(start).Microseconds())/1000.0)
}

func fileDefinitions(filePath string, defs []types.SymbolInfo) FileDefinitions {
	names := make(map[string]struct{}, len(defs))
	for _, d := range defs {
		names[d.Name] = struct{}{}
	}
	return FileDefinitions{FilePath: filePath, Definitions: defs, Names: names}
}

// FindDefinition returns the definitions of name within one language
// family. Missing names yield an empty slice.
func (s *Service) FindDefinition(name, langFamily string) []types.SymbolInfo {
	return s.index.FindDefinition(name, langFamily)
}

// ClearFile removes one file's definitions from the index.
func (s *Service) ClearFile(filePath string) {
	s.index.ClearFile(filePath)
}

// ClearAll resets the index.
func (s *Service) ClearAll() {
	s.index.ClearAll()
}

// IndexedFiles lists every file with indexed definitions.
func (s *Service) IndexedFiles() []string {
	return s.index.IndexedFiles()
}

// similarityFloor is the minimum Levenshtein similarity for a name to
// count as a near miss.
const similarityFloor = 0.5

// SimilarSymbols ranks indexed names by similarity to name, for "did you
// mean" output when a definition lookup comes back empty.
func (s *Service) SimilarSymbols(name string, max int) []string {
	type scored struct {
		name  string
		score float32
	}

	var candidates []scored
	for _, candidate := range s.index.Names() {
		if candidate == name {
			continue
		}
		score, err := edlib.StringsSimilarity(name, candidate, edlib.Levenshtein)
		if err != nil || score < similarityFloor {
			continue
		}
		candidates = append(candidates, scored{name: candidate, score: score})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	if len(candidates) > max {
		candidates = candidates[:max]
	}

	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.name
	}
	return out
}
