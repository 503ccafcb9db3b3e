package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codenav/internal/types"
)

func findSymbol(defs []types.SymbolInfo, name string) *types.SymbolInfo {
	for i := range defs {
		if defs[i].Name == name {
			return &defs[i]
		}
	}
	return nil
}

func TestDefinitions_Python(t *testing.T) {
	eng := NewEngineFor(types.LanguagePython)
	source := []byte("def greet(name):\n    return name\n\nclass Greeter:\n    pass\n")

	defs := eng.Definitions(types.LanguagePython, "greet.py", source)

	fn := findSymbol(defs, "greet")
	require.NotNil(t, fn, "expected function definition")
	assert.Equal(t, types.KindFunction, fn.Kind)
	assert.Equal(t, types.FamilyPython, fn.LangFamily)
	assert.Equal(t, uint32(1), fn.StartLine)

	cls := findSymbol(defs, "Greeter")
	require.NotNil(t, cls, "expected class definition")
	assert.Equal(t, types.KindClass, cls.Kind)
	assert.Equal(t, uint32(4), cls.StartLine)
}

func TestDefinitions_Rust(t *testing.T) {
	eng := NewEngineFor(types.LanguageRust)
	source := []byte(`
fn run() {}
struct Config { name: String }
enum Mode { Fast, Slow }
trait Runner { fn go(&self); }
const LIMIT: u32 = 10;
static ROOT: &str = "/";
type Alias = u32;
`)

	defs := eng.Definitions(types.LanguageRust, "lib.rs", source)

	expected := map[string]string{
		"run":    types.KindFunction,
		"Config": types.KindStruct,
		"Mode":   types.KindEnum,
		"Runner": types.KindTrait,
		"LIMIT":  types.KindConst,
		"ROOT":   types.KindStatic,
		"Alias":  types.KindType,
	}
	for name, kind := range expected {
		sym := findSymbol(defs, name)
		require.NotNil(t, sym, "missing definition %q", name)
		assert.Equal(t, kind, sym.Kind, "kind of %q", name)
		assert.Equal(t, types.FamilyRust, sym.LangFamily)
	}
}

func TestDefinitions_Go(t *testing.T) {
	eng := NewEngineFor(types.LanguageGo)
	source := []byte(`package main

func Serve() {}

type Server struct{}

func (s *Server) Close() {}
`)

	defs := eng.Definitions(types.LanguageGo, "main.go", source)

	require.NotNil(t, findSymbol(defs, "Serve"))
	require.NotNil(t, findSymbol(defs, "Server"))
	method := findSymbol(defs, "Close")
	require.NotNil(t, method)
	assert.Equal(t, types.KindMethod, method.Kind)
}

func TestDefinitions_CAndCpp(t *testing.T) {
	eng := NewEngineFor(types.LanguageC, types.LanguageCpp)

	cDefs := eng.Definitions(types.LanguageC, "util.c", []byte("int add(int a, int b) { return a + b; }\nstruct point { int x; };\n"))
	require.NotNil(t, findSymbol(cDefs, "add"))
	require.NotNil(t, findSymbol(cDefs, "point"))

	cppDefs := eng.Definitions(types.LanguageCpp, "engine.cpp", []byte("class Engine { public: void start(); };\nvoid Engine::start() {}\n"))
	cls := findSymbol(cppDefs, "Engine")
	require.NotNil(t, cls)
	assert.Equal(t, types.KindClass, cls.Kind)
	// C and C++ share one family.
	assert.Equal(t, types.FamilyCFamily, cls.LangFamily)
	for _, d := range cDefs {
		assert.Equal(t, types.FamilyCFamily, d.LangFamily)
	}
}

func TestDefinitions_Java(t *testing.T) {
	eng := NewEngineFor(types.LanguageJava)
	source := []byte(`
public class Account {
    public void deposit(int amount) {}
}
interface Auditable {}
`)

	defs := eng.Definitions(types.LanguageJava, "Account.java", source)

	require.NotNil(t, findSymbol(defs, "Account"))
	require.NotNil(t, findSymbol(defs, "deposit"))
	iface := findSymbol(defs, "Auditable")
	require.NotNil(t, iface)
	assert.Equal(t, types.KindInterface, iface.Kind)
}

func TestDefinitions_TypeScript(t *testing.T) {
	eng := NewEngineFor(types.LanguageTypeScript)
	source := []byte(`
function load(): void {}
class Store {
    get(key: string) {}
}
interface Options { depth: number }
type Handler = () => void;
enum Level { Low, High }
const root = "/";
export function save(): void {}
export class Session {}
`)

	defs := eng.Definitions(types.LanguageTypeScript, "store.ts", source)

	expected := map[string]string{
		"load":    types.KindFunction,
		"Store":   types.KindClass,
		"get":     types.KindMethod,
		"Options": types.KindInterface,
		"Handler": types.KindType,
		"Level":   types.KindEnum,
		"root":    types.KindConst,
		"save":    types.KindFunction,
		"Session": types.KindClass,
	}
	for name, kind := range expected {
		sym := findSymbol(defs, name)
		require.NotNil(t, sym, "missing definition %q", name)
		assert.Equal(t, kind, sym.Kind, "kind of %q", name)
		assert.Equal(t, types.FamilyJSFamily, sym.LangFamily)
	}
}

func TestDefinitions_JavaScript(t *testing.T) {
	eng := NewEngineFor(types.LanguageJavaScript)
	source := []byte(`
function render() {}
class Widget {
    draw() {}
}
const theme = "dark";
`)

	defs := eng.Definitions(types.LanguageJavaScript, "widget.js", source)

	require.NotNil(t, findSymbol(defs, "render"))
	require.NotNil(t, findSymbol(defs, "Widget"))
	require.NotNil(t, findSymbol(defs, "draw"))
	require.NotNil(t, findSymbol(defs, "theme"))
}

func TestDefinitions_PositionsAreOneBased(t *testing.T) {
	eng := NewEngineFor(types.LanguagePython)
	defs := eng.Definitions(types.LanguagePython, "a.py", []byte("def f():\n    pass\n"))

	sym := findSymbol(defs, "f")
	require.NotNil(t, sym)
	assert.Equal(t, uint32(1), sym.StartLine)
	assert.Equal(t, uint32(5), sym.StartColumn)
	assert.Equal(t, uint32(6), sym.EndColumn)
}

func TestParse_UnsupportedLanguage(t *testing.T) {
	eng := NewEngineFor(types.LanguagePython)

	assert.Nil(t, eng.Parse(types.LanguageRust, []byte("fn main() {}")))
	assert.Empty(t, eng.Definitions(types.LanguageRust, "x.rs", []byte("fn main() {}")))
	assert.False(t, eng.Supports(types.LanguageRust))
	assert.True(t, eng.Supports(types.LanguagePython))
}

func TestDefinitions_MalformedSourceStillYields(t *testing.T) {
	// Tree-sitter produces a tree with error nodes for broken input; the
	// well-formed parts still surface their definitions.
	eng := NewEngineFor(types.LanguagePython)
	defs := eng.Definitions(types.LanguagePython, "b.py", []byte("def ok():\n    pass\n\ndef broken(:\n"))

	require.NotNil(t, findSymbol(defs, "ok"))
}

func TestSymbolKindForCapture(t *testing.T) {
	tests := []struct {
		capture string
		kind    string
	}{
		{"function.name", types.KindFunction},
		{"method.name", types.KindMethod},
		{"class.name", types.KindClass},
		{"struct.name", types.KindStruct},
		{"enum.name", types.KindEnum},
		{"trait.name", types.KindTrait},
		{"interface.name", types.KindInterface},
		{"type.name", types.KindType},
		{"const.name", types.KindConst},
		{"static.name", types.KindStatic},
		{"other", types.KindSymbol},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.kind, SymbolKindForCapture(tc.capture), "capture %q", tc.capture)
	}
}
