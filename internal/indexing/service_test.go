package indexing

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codenav/internal/parser"
	"codenav/internal/types"
)

// stubSearcher returns canned results without touching the filesystem.
type stubSearcher struct {
	results []types.SearchResult
	err     error
}

func (s *stubSearcher) SearchContent(pattern, rootPath string) ([]types.SearchResult, error) {
	return s.results, s.err
}

func newTestService(workers int) *Service {
	return NewService(parser.NewEngine(), &stubSearcher{}, workers)
}

func TestIndexFile_ExtractsDefinitions(t *testing.T) {
	svc := newTestService(1)
	svc.IndexFile("app.py", []byte("def run():\n    pass\n"), types.LanguagePython)

	defs := svc.FindDefinition("run", types.FamilyPython)
	require.Len(t, defs, 1)
	assert.Equal(t, types.KindFunction, defs[0].Kind)
	assert.Equal(t, "app.py", defs[0].FilePath)
}

func TestIndexFile_ReindexReplacesPreviousRun(t *testing.T) {
	svc := newTestService(1)
	svc.IndexFile("app.py", []byte("def before():\n    pass\n"), types.LanguagePython)
	svc.IndexFile("app.py", []byte("def after():\n    pass\n"), types.LanguagePython)

	assert.Empty(t, svc.FindDefinition("before", types.FamilyPython))
	assert.Len(t, svc.FindDefinition("after", types.FamilyPython), 1)
}

func TestIndexFile_UnsupportedLanguageClearsStaleEntries(t *testing.T) {
	svc := newTestService(1)
	svc.IndexFile("app.py", []byte("def f():\n    pass\n"), types.LanguagePython)

	// Same path reindexed under a language this engine cannot parse:
	// the stale definitions must not survive.
	svc.IndexFile("app.py", nil, types.Language("cobol"))

	assert.Empty(t, svc.FindDefinition("f", types.FamilyPython))
	assert.Empty(t, svc.IndexedFiles())
}

func TestIndexFilesBatch(t *testing.T) {
	svc := newTestService(4)

	files := make([]FileInput, 0, 20)
	for i := 0; i < 20; i++ {
		path := fmt.Sprintf("mod_%d.py", i)
		content := fmt.Sprintf("def func_%d():\n    pass\n", i)
		files = append(files, FileInput{Path: path, Content: []byte(content), Language: types.LanguagePython})
	}

	svc.IndexFilesBatch(files)

	fileCount, defCount := svc.Index().Counts()
	assert.Equal(t, 20, fileCount)
	assert.Equal(t, 20, defCount)
	for i := 0; i < 20; i++ {
		assert.Len(t, svc.FindDefinition(fmt.Sprintf("func_%d", i), types.FamilyPython), 1)
	}
}

func TestIndexFilesBatch_MixedLanguages(t *testing.T) {
	svc := newTestService(2)
	svc.IndexFilesBatch([]FileInput{
		{Path: "a.py", Content: []byte("def shared():\n    pass\n"), Language: types.LanguagePython},
		{Path: "b.rs", Content: []byte("fn shared() {}\n"), Language: types.LanguageRust},
		{Path: "c.txt", Content: []byte("not code"), Language: types.Language("text")},
	})

	assert.Len(t, svc.FindDefinition("shared", types.FamilyPython), 1)
	assert.Len(t, svc.FindDefinition("shared", types.FamilyRust), 1)
	fileCount, _ := svc.Index().Counts()
	assert.Equal(t, 2, fileCount)
}

func TestSimilarSymbols(t *testing.T) {
	svc := newTestService(1)
	svc.IndexFile("a.py", []byte("def calculate_total():\n    pass\n\ndef calculate_tax():\n    pass\n\ndef unrelated():\n    pass\n"), types.LanguagePython)

	similar := svc.SimilarSymbols("calculate_totl", 5)
	require.NotEmpty(t, similar)
	assert.Equal(t, "calculate_total", similar[0])
	assert.NotContains(t, similar, "unrelated")
}

func TestSimilarSymbols_NoCloseMatches(t *testing.T) {
	svc := newTestService(1)
	svc.IndexFile("a.py", []byte("def alpha():\n    pass\n"), types.LanguagePython)

	assert.Empty(t, svc.SimilarSymbols("zzzzzzzzzz", 5))
}
