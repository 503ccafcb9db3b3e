package types

// SymbolKind values carried by SymbolInfo.Kind. Definition kinds come from
// the capture tag of the language's definition query; "reference" is only
// produced by the hybrid reference search, and "symbol" is the fallback for
// capture tags without a recognized domain word.
const (
	KindFunction  = "function"
	KindClass     = "class"
	KindStruct    = "struct"
	KindEnum      = "enum"
	KindTrait     = "trait"
	KindInterface = "interface"
	KindMethod    = "method"
	KindType      = "type"
	KindConst     = "const"
	KindStatic    = "static"
	KindReference = "reference"
	KindSymbol    = "symbol"
)

// SymbolInfo is one definition or reference occurrence. Positions are
// 1-based; the end position is exclusive, matching tree-sitter node end
// points. Records are immutable once built - reindexing a file replaces
// them wholesale.
type SymbolInfo struct {
	Name        string `json:"name"`
	Kind        string `json:"kind"`
	FilePath    string `json:"file_path"`
	LangFamily  string `json:"lang_family"`
	StartLine   uint32 `json:"start_line"`
	StartColumn uint32 `json:"start_column"`
	EndLine     uint32 `json:"end_line"`
	EndColumn   uint32 `json:"end_column"`
}

// SearchMatch is a single matched line reported by the content searcher.
type SearchMatch struct {
	LineNumber  uint32 `json:"line_number"`
	LineContent string `json:"line_content"`
}

// SearchResult groups the matches found in one file.
type SearchResult struct {
	FilePath string        `json:"file_path"`
	Matches  []SearchMatch `json:"matches"`
}

// PersistedIndex is the on-disk snapshot of the symbol index. Definitions
// only; references are resolved on demand by the hybrid search.
type PersistedIndex struct {
	Version         int                     `json:"version"`
	RootPath        string                  `json:"root_path"`
	LastUpdated     int64                   `json:"last_updated"`
	FileTimestamps  map[string]int64        `json:"file_timestamps"`
	Definitions     map[string][]SymbolInfo `json:"definitions"`
	FileDefinitions map[string][]string     `json:"file_definitions"`
}

// IndexMetadata summarizes a persisted snapshot without loading it into the
// live index.
type IndexMetadata struct {
	Version         int              `json:"version"`
	RootPath        string           `json:"root_path"`
	LastUpdated     int64            `json:"last_updated"`
	FileCount       int              `json:"file_count"`
	DefinitionCount int              `json:"definition_count"`
	FileTimestamps  map[string]int64 `json:"file_timestamps"`
}
