package parser

import (
	"strings"
	"sync"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"codenav/internal/debug"
	"codenav/internal/types"
)

// Engine wraps one tree-sitter parser and one definition query per
// registered language. The language/query maps are immutable after
// construction and safe to share; the parsers themselves are stateful, so
// Parse serializes on an internal mutex. Callers that need truly parallel
// parsing (the batch indexer, the reference resolver) construct a fresh
// single-language Engine per task instead.
type Engine struct {
	mu        sync.Mutex
	parsers   map[types.Language]*tree_sitter.Parser
	languages map[types.Language]*tree_sitter.Language
	queries   map[types.Language]*tree_sitter.Query
}

// NewEngine builds an engine with every supported language registered. A
// language that fails to register is logged and left unavailable; the
// others are unaffected.
func NewEngine() *Engine {
	return NewEngineFor(types.AllLanguages...)
}

// NewEngineFor builds an engine restricted to the given languages. The
// batch indexer and reference resolver use this to give each parallel task
// its own parser without sharing mutable parser state.
func NewEngineFor(langs ...types.Language) *Engine {
	e := &Engine{
		parsers:   make(map[types.Language]*tree_sitter.Parser),
		languages: make(map[types.Language]*tree_sitter.Language),
		queries:   make(map[types.Language]*tree_sitter.Query),
	}
	for _, lang := range langs {
		switch lang {
		case types.LanguagePython:
			e.setupPython()
		case types.LanguageRust:
			e.setupRust()
		case types.LanguageGo:
			e.setupGo()
		case types.LanguageC:
			e.setupC()
		case types.LanguageCpp:
			e.setupCpp()
		case types.LanguageJava:
			e.setupJava()
		case types.LanguageTypeScript:
			e.setupTypeScript()
		case types.LanguageJavaScript:
			e.setupJavaScript()
		}
	}
	return e
}

// register stores one language's parser, grammar and compiled definition
// query. The parser is registered even when the query failed to compile:
// such files still parse, they just contribute zero definitions.
func (e *Engine) register(lang types.Language, language *tree_sitter.Language, queryStr string) {
	parser := tree_sitter.NewParser()
	if err := parser.SetLanguage(language); err != nil {
		debug.LogParser("failed to set language for %s: %v\n", lang, err)
		return
	}

	e.parsers[lang] = parser
	e.languages[lang] = language

	query, _ := tree_sitter.NewQuery(language, queryStr)
	// Tree-sitter Go binding bug: the error can be a typed nil, so check
	// the query itself instead.
	if query == nil {
		debug.LogParser("failed to compile definition query for %s\n", lang)
		return
	}
	e.queries[lang] = query
}

// Supports reports whether a parser is registered for the language.
func (e *Engine) Supports(lang types.Language) bool {
	_, ok := e.parsers[lang]
	return ok
}

// Language returns the registered grammar for a language.
func (e *Engine) Language(lang types.Language) (*tree_sitter.Language, bool) {
	l, ok := e.languages[lang]
	return l, ok
}

// Parse parses content with the language's registered parser. Returns nil
// when no parser is registered or parsing fails fatally. Trees with syntax
// errors are still returned; error nodes simply never match the definition
// query.
func (e *Engine) Parse(lang types.Language, content []byte) (tree *tree_sitter.Tree) {
	parser, ok := e.parsers[lang]
	if !ok {
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			debug.LogParser("tree-sitter panic parsing %s content: %v\n", lang, r)
			tree = nil
		}
	}()

	// Tree-sitter mutates input buffers via CGO; parse a defensive copy.
	parserBuffer := make([]byte, len(content))
	copy(parserBuffer, content)

	e.mu.Lock()
	defer e.mu.Unlock()
	return parser.Parse(parserBuffer, nil)
}

// Definitions parses content and runs the language's definition query,
// returning one SymbolInfo per captured name. Positions are 1-based with
// exclusive ends. A nil tree or missing query yields no records.
func (e *Engine) Definitions(lang types.Language, filePath string, content []byte) []types.SymbolInfo {
	tree := e.Parse(lang, content)
	if tree == nil {
		return nil
	}
	defer tree.Close()
	return e.DefinitionsFromTree(tree, lang, filePath, content)
}

// DefinitionsFromTree runs the definition query over an already-parsed
// tree. The caller retains ownership of the tree.
func (e *Engine) DefinitionsFromTree(tree *tree_sitter.Tree, lang types.Language, filePath string, content []byte) []types.SymbolInfo {
	query, ok := e.queries[lang]
	if !ok {
		return nil
	}

	family := types.FamilyOf(lang)
	captureNames := query.CaptureNames()

	qc := tree_sitter.NewQueryCursor()
	defer qc.Close()
	matches := qc.Matches(query, tree.RootNode(), content)

	var defs []types.SymbolInfo
	for {
		match := matches.Next()
		if match == nil {
			break
		}
		for _, c := range match.Captures {
			node := c.Node
			name := node.Utf8Text(content)
			if name == "" {
				continue
			}
			start := node.StartPosition()
			end := node.EndPosition()
			defs = append(defs, types.SymbolInfo{
				Name:        name,
				Kind:        SymbolKindForCapture(captureNames[c.Index]),
				FilePath:    filePath,
				LangFamily:  family,
				StartLine:   uint32(start.Row) + 1,
				StartColumn: uint32(start.Column) + 1,
				EndLine:     uint32(end.Row) + 1,
				EndColumn:   uint32(end.Column) + 1,
			})
		}
	}
	return defs
}

// SymbolKindForCapture maps a definition-query capture tag to a symbol
// kind by its domain word. Unrecognized tags fall back to "symbol".
func SymbolKindForCapture(captureName string) string {
	switch {
	case strings.Contains(captureName, "function"):
		return types.KindFunction
	case strings.Contains(captureName, "class"):
		return types.KindClass
	case strings.Contains(captureName, "struct"):
		return types.KindStruct
	case strings.Contains(captureName, "enum"):
		return types.KindEnum
	case strings.Contains(captureName, "trait"):
		return types.KindTrait
	case strings.Contains(captureName, "interface"):
		return types.KindInterface
	case strings.Contains(captureName, "method"):
		return types.KindMethod
	case strings.Contains(captureName, "type"):
		return types.KindType
	case strings.Contains(captureName, "const"):
		return types.KindConst
	case strings.Contains(captureName, "static"):
		return types.KindStatic
	default:
		return types.KindSymbol
	}
}
