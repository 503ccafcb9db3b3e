package indexing

import (
	"sort"
	"sync"

	"codenav/internal/types"
)

// SymbolIndex is the shared in-memory store of symbol definitions. Two
// co-maintained maps: definitions (name -> records) and a reverse index
// (file -> defined names) that makes clearing one file proportional to the
// symbols it defines, not the whole index.
//
// Every exported method holds the appropriate side of the RWMutex; the two
// maps are never updated independently, which is the invariant the reverse
// index lives or dies by.
type SymbolIndex struct {
	mu              sync.RWMutex
	definitions     map[string][]types.SymbolInfo
	fileDefinitions map[string]map[string]struct{}
}

// FileDefinitions is the output of parsing one file: the records to insert
// and the set of names they define. Produced outside the index lock,
// applied under it.
type FileDefinitions struct {
	FilePath    string
	Definitions []types.SymbolInfo
	Names       map[string]struct{}
}

// NewSymbolIndex returns an empty index.
func NewSymbolIndex() *SymbolIndex {
	return &SymbolIndex{
		definitions:     make(map[string][]types.SymbolInfo),
		fileDefinitions: make(map[string]map[string]struct{}),
	}
}

// FindDefinition returns the definitions of name visible to the given
// language family. Absent names yield an empty result, never an error.
func (ix *SymbolIndex) FindDefinition(name, langFamily string) []types.SymbolInfo {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	var out []types.SymbolInfo
	for _, sym := range ix.definitions[name] {
		if sym.LangFamily == langFamily {
			out = append(out, sym)
		}
	}
	return out
}

// ClearFile removes every definition contributed by filePath. Cost is
// proportional to the symbols that file defines.
func (ix *SymbolIndex) ClearFile(filePath string) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.clearFileLocked(filePath)
}

func (ix *SymbolIndex) clearFileLocked(filePath string) {
	names, ok := ix.fileDefinitions[filePath]
	if !ok {
		return
	}
	delete(ix.fileDefinitions, filePath)

	for name := range names {
		syms := ix.definitions[name]
		kept := syms[:0]
		for _, sym := range syms {
			if sym.FilePath != filePath {
				kept = append(kept, sym)
			}
		}
		if len(kept) == 0 {
			delete(ix.definitions, name)
		} else {
			ix.definitions[name] = kept
		}
	}
}

// ClearAll drops both maps.
func (ix *SymbolIndex) ClearAll() {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.definitions = make(map[string][]types.SymbolInfo)
	ix.fileDefinitions = make(map[string]map[string]struct{})
}

// ReplaceFile atomically swaps one file's definitions: prior entries are
// cleared and the new records inserted under a single write lock, so
// readers never observe the file half-indexed.
func (ix *SymbolIndex) ReplaceFile(fd FileDefinitions) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.applyLocked(fd)
}

// ApplyBatch merges the batch indexer's parallel-phase output under one
// write lock: clear-then-insert per file, in slice order.
func (ix *SymbolIndex) ApplyBatch(results []FileDefinitions) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	for _, fd := range results {
		ix.applyLocked(fd)
	}
}

func (ix *SymbolIndex) applyLocked(fd FileDefinitions) {
	ix.clearFileLocked(fd.FilePath)

	if len(fd.Names) > 0 {
		names := make(map[string]struct{}, len(fd.Names))
		for name := range fd.Names {
			names[name] = struct{}{}
		}
		ix.fileDefinitions[fd.FilePath] = names
	}
	for _, sym := range fd.Definitions {
		ix.definitions[sym.Name] = append(ix.definitions[sym.Name], sym)
	}
}

// IndexedFiles returns every file currently contributing definitions.
func (ix *SymbolIndex) IndexedFiles() []string {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	files := make([]string, 0, len(ix.fileDefinitions))
	for f := range ix.fileDefinitions {
		files = append(files, f)
	}
	sort.Strings(files)
	return files
}

// Names returns every defined symbol name, for near-miss suggestions.
func (ix *SymbolIndex) Names() []string {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	names := make([]string, 0, len(ix.definitions))
	for n := range ix.definitions {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Counts reports the number of indexed files and definition records.
func (ix *SymbolIndex) Counts() (files, definitions int) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	files = len(ix.fileDefinitions)
	for _, syms := range ix.definitions {
		definitions += len(syms)
	}
	return files, definitions
}

// Snapshot deep-copies both maps under a read lock so persistence can do
// its I/O without blocking index writers. The reverse index is returned as
// sorted name lists, the persisted representation.
func (ix *SymbolIndex) Snapshot() (map[string][]types.SymbolInfo, map[string][]string) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	defs := make(map[string][]types.SymbolInfo, len(ix.definitions))
	for name, syms := range ix.definitions {
		defs[name] = append([]types.SymbolInfo(nil), syms...)
	}

	fileDefs := make(map[string][]string, len(ix.fileDefinitions))
	for file, names := range ix.fileDefinitions {
		list := make([]string, 0, len(names))
		for n := range names {
			list = append(list, n)
		}
		sort.Strings(list)
		fileDefs[file] = list
	}
	return defs, fileDefs
}

// Restore replaces both maps wholesale with a persisted snapshot. The swap
// happens under one write lock; readers see either the old index or the
// new one, never a mix.
func (ix *SymbolIndex) Restore(definitions map[string][]types.SymbolInfo, fileDefinitions map[string][]string) {
	defs := make(map[string][]types.SymbolInfo, len(definitions))
	for name, syms := range definitions {
		defs[name] = append([]types.SymbolInfo(nil), syms...)
	}
	fileDefs := make(map[string]map[string]struct{}, len(fileDefinitions))
	for file, names := range fileDefinitions {
		set := make(map[string]struct{}, len(names))
		for _, n := range names {
			set[n] = struct{}{}
		}
		fileDefs[file] = set
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.definitions = defs
	ix.fileDefinitions = fileDefs
}
