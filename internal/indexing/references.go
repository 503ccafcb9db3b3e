package indexing

import (
	"bytes"
	"os"
	"regexp"
	"time"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"codenav/internal/debug"
	navErrors "codenav/internal/errors"
	"codenav/internal/parser"
	"codenav/internal/types"
)

// FindReferencesHybrid resolves references to name in two passes: a broad
// word-boundary text search over rootPath, then structural validation of
// every hit against a freshly parsed syntax tree. The text pass bounds the
// work (its result caps, not repository size); the structural pass throws
// out string/comment occurrences, member accesses, object keys and import
// originals. Results carry kind "reference".
func (s *Service) FindReferencesHybrid(name, langFamily, rootPath string) []types.SymbolInfo {
	start := time.Now()

	pattern := `\b` + regexp.QuoteMeta(name) + `\b`
	searchResults, err := s.searcher.SearchContent(pattern, rootPath)
	if err != nil {
		debug.LogSearch("content search failed for %q: %v\n", name, err)
		return nil
	}
	debug.LogSearch("content search found %d files with matches for %q\n", len(searchResults), name)

	var references []types.SymbolInfo
	for _, result := range searchResults {
		lang, ok := types.LanguageForPath(result.FilePath)
		if !ok {
			continue
		}
		// Family isolation is enforced identically here and in
		// FindDefinition.
		if types.FamilyOf(lang) != langFamily {
			continue
		}

		content, err := os.ReadFile(result.FilePath)
		if err != nil {
			continue
		}

		// Fresh parser per file: no dependency on the live index, no
		// shared parser state with concurrent queries.
		eng := parser.NewEngineFor(lang)
		tree := eng.Parse(lang, content)
		if tree == nil {
			debug.LogSearch("skipping candidate: %v\n",
				navErrors.NewParseError(result.FilePath, string(lang), errNoTree))
			continue
		}

		for _, m := range result.Matches {
			references = append(references, validateReferencesAtLine(
				tree, content, m.LineNumber, name, lang, result.FilePath, langFamily)...)
		}
		tree.Close()
	}

	debug.LogSearch("found %d references to %q in %.2fms\n",
		len(references), name, float64(time.Since(start).Microseconds())/1000.0)
	return references
}

// validateReferencesAtLine re-scans one matched line for every
// word-boundary occurrence of name (the text search reports lines, not
// columns) and keeps the occurrences whose covering syntax node survives
// the validation cascade.
func validateReferencesAtLine(tree *tree_sitter.Tree, source []byte, lineNumber uint32, name string, lang types.Language, filePath, langFamily string) []types.SymbolInfo {
	lineIdx := int(lineNumber) - 1
	if lineIdx < 0 {
		return nil
	}

	lineStart, ok := lineStartOffset(source, lineIdx)
	if !ok {
		return nil
	}
	lineEnd := len(source)
	if nl := bytes.IndexByte(source[lineStart:], '\n'); nl >= 0 {
		lineEnd = lineStart + nl
	}
	line := source[lineStart:lineEnd]

	var results []types.SymbolInfo
	target := []byte(name)
	for col := 0; ; {
		rel := bytes.Index(line[col:], target)
		if rel < 0 {
			break
		}
		col += rel

		if !atWordBoundary(line, col, len(target)) {
			col++
			continue
		}

		point := tree_sitter.Point{Row: uint(lineIdx), Column: uint(col)}
		node := tree.RootNode().DescendantForPointRange(point, point)
		if node != nil && parser.ValidateReference(node, name, source, lang) {
			results = append(results, types.SymbolInfo{
				Name:        name,
				Kind:        types.KindReference,
				FilePath:    filePath,
				LangFamily:  langFamily,
				StartLine:   lineNumber,
				StartColumn: uint32(col) + 1,
				EndLine:     lineNumber,
				EndColumn:   uint32(col+len(target)) + 1,
			})
		}

		col += len(target)
	}
	return results
}

// lineStartOffset finds the byte offset of the given 0-based line by a
// linear scan. Linear per validated line is fine: the text search already
// bounds how many lines get here.
func lineStartOffset(source []byte, lineIdx int) (int, bool) {
	if lineIdx == 0 {
		return 0, true
	}
	line := 0
	for i, b := range source {
		if b == '\n' {
			line++
			if line == lineIdx {
				return i + 1, true
			}
		}
	}
	return 0, false
}

// atWordBoundary reports whether the occurrence at [col, col+length) is
// not embedded in a larger identifier.
func atWordBoundary(line []byte, col, length int) bool {
	if col > 0 && isWordByte(line[col-1]) {
		return false
	}
	after := col + length
	if after < len(line) && isWordByte(line[after]) {
		return false
	}
	return true
}

func isWordByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}
