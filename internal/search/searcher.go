package search

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"codenav/internal/debug"
	navErrors "codenav/internal/errors"
	"codenav/internal/types"
)

const (
	defaultMaxResults        = 100
	defaultMaxMatchesPerFile = 10

	// Sniff this many leading bytes for a NUL to skip binaries whose
	// extension lies.
	binarySniffLen = 1024

	// Long minified lines still need to scan; bufio's default token size
	// is too small for them.
	maxLineLen = 1024 * 1024
)

// ContentSearcher walks a directory tree and reports lines matching a
// regular expression, bounded by a total result cap and a per-file match
// cap. It is the coarse text pass of the hybrid reference search; callers
// re-validate its hits structurally.
type ContentSearcher struct {
	maxResults        int
	maxMatchesPerFile int
	fileTypes         map[string]struct{}
	excludeDirs       map[string]struct{}
	excludePatterns   []string
	workers           int
}

// NewContentSearcher returns a searcher with default caps.
func NewContentSearcher() *ContentSearcher {
	return &ContentSearcher{
		maxResults:        defaultMaxResults,
		maxMatchesPerFile: defaultMaxMatchesPerFile,
	}
}

// WithMaxResults caps the total number of matched files.
func (s *ContentSearcher) WithMaxResults(maxResults int) *ContentSearcher {
	s.maxResults = maxResults
	return s
}

// WithMaxMatchesPerFile caps the matches reported per file.
func (s *ContentSearcher) WithMaxMatchesPerFile(maxMatchesPerFile int) *ContentSearcher {
	s.maxMatchesPerFile = maxMatchesPerFile
	return s
}

// WithFileTypes restricts the search to files with the given extensions
// (without dot). Nil means every code file.
func (s *ContentSearcher) WithFileTypes(fileTypes []string) *ContentSearcher {
	if fileTypes == nil {
		s.fileTypes = nil
		return s
	}
	s.fileTypes = make(map[string]struct{}, len(fileTypes))
	for _, t := range fileTypes {
		s.fileTypes[strings.ToLower(t)] = struct{}{}
	}
	return s
}

// WithExcludeDirs excludes additional directory names beyond the defaults.
func (s *ContentSearcher) WithExcludeDirs(dirs []string) *ContentSearcher {
	if dirs == nil {
		s.excludeDirs = nil
		return s
	}
	s.excludeDirs = make(map[string]struct{}, len(dirs))
	for _, d := range dirs {
		s.excludeDirs[d] = struct{}{}
	}
	return s
}

// WithExcludePatterns excludes root-relative paths matching the given
// doublestar glob patterns (e.g. "**/generated/**").
func (s *ContentSearcher) WithExcludePatterns(patterns []string) *ContentSearcher {
	s.excludePatterns = patterns
	return s
}

// WithWorkers sets the parallel scan width. Zero means NumCPU.
func (s *ContentSearcher) WithWorkers(workers int) *ContentSearcher {
	s.workers = workers
	return s
}

func (s *ContentSearcher) isValidFile(path string) bool {
	name := filepath.Base(path)
	ext := strings.TrimPrefix(filepath.Ext(name), ".")

	if ext != "" && IsBinaryExtension(ext) {
		return false
	}

	// An explicit file-type filter replaces the default code-file check.
	if s.fileTypes != nil {
		if ext == "" {
			return false
		}
		_, ok := s.fileTypes[strings.ToLower(ext)]
		return ok
	}

	if ext != "" {
		return IsCodeExtension(ext)
	}
	return IsCodeFilename(name)
}

func (s *ContentSearcher) isExcludedDir(name string) bool {
	if _, ok := s.excludeDirs[name]; ok {
		return true
	}
	return ShouldExcludeDir(name)
}

func (s *ContentSearcher) isExcludedPath(relPath string) bool {
	for _, pattern := range s.excludePatterns {
		if matched, _ := doublestar.Match(pattern, relPath); matched {
			return true
		}
	}
	return false
}

// SearchContent runs the pattern over every candidate file under rootPath.
// Matching is case-insensitive, as in grep -i; an empty pattern yields no
// results. Per-file read errors are skipped so one unreadable file never
// fails the search.
func (s *ContentSearcher) SearchContent(pattern, rootPath string) ([]types.SearchResult, error) {
	if pattern == "" {
		return nil, nil
	}

	matcher, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, navErrors.NewSearchError(pattern, rootPath, err)
	}

	files := s.collectFiles(rootPath)
	debug.LogSearch("scanning %d candidate files under %s\n", len(files), rootPath)

	workers := s.workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	var (
		mu      sync.Mutex
		results []types.SearchResult
	)

	g := new(errgroup.Group)
	g.SetLimit(workers)
	for _, file := range files {
		mu.Lock()
		full := len(results) >= s.maxResults
		mu.Unlock()
		if full {
			break
		}

		g.Go(func() error {
			result := s.searchInFile(matcher, file)
			if result == nil {
				return nil
			}
			mu.Lock()
			if len(results) < s.maxResults {
				results = append(results, *result)
			}
			mu.Unlock()
			return nil
		})
	}
	// Workers never return errors; per-file failures are skipped.
	_ = g.Wait()

	return results, nil
}

// collectFiles walks the tree and returns every searchable file path.
func (s *ContentSearcher) collectFiles(rootPath string) []string {
	var files []string
	filepath.WalkDir(rootPath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != rootPath && s.isExcludedDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !s.isValidFile(path) {
			return nil
		}
		if len(s.excludePatterns) > 0 {
			if rel, err := filepath.Rel(rootPath, path); err == nil {
				if s.isExcludedPath(filepath.ToSlash(rel)) {
					return nil
				}
			}
		}
		files = append(files, path)
		return nil
	})
	return files
}

// searchInFile scans one file line by line, stopping at the per-file cap.
// Returns nil when the file has no matches or cannot be read.
func (s *ContentSearcher) searchInFile(matcher *regexp.Regexp, filePath string) *types.SearchResult {
	f, err := os.Open(filePath)
	if err != nil {
		return nil
	}
	defer f.Close()

	reader := bufio.NewReader(f)
	sniff, _ := reader.Peek(binarySniffLen)
	if bytes.IndexByte(sniff, 0) >= 0 {
		return nil
	}

	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLen)

	var matches []types.SearchMatch
	lineNumber := uint32(0)
	for scanner.Scan() {
		lineNumber++
		line := scanner.Bytes()
		if !matcher.Match(line) {
			continue
		}
		matches = append(matches, types.SearchMatch{
			LineNumber:  lineNumber,
			LineContent: strings.TrimRight(string(line), " \t\r"),
		})
		if len(matches) >= s.maxMatchesPerFile {
			break
		}
	}

	if len(matches) == 0 {
		return nil
	}
	return &types.SearchResult{FilePath: filePath, Matches: matches}
}
