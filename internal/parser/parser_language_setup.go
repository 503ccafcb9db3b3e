package parser

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_c "github.com/tree-sitter/tree-sitter-c/bindings/go"
	tree_sitter_cpp "github.com/tree-sitter/tree-sitter-cpp/bindings/go"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"
	tree_sitter_java "github.com/tree-sitter/tree-sitter-java/bindings/go"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
	tree_sitter_rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"codenav/internal/types"
)

// One definition query per language. Capture tags carry the domain word
// that SymbolKindForCapture classifies into a symbol kind.

func (e *Engine) setupPython() {
	queryStr := `
        (function_definition name: (identifier) @function.definition)
        (class_definition name: (identifier) @class.definition)
    `
	e.register(types.LanguagePython, tree_sitter.NewLanguage(tree_sitter_python.Language()), queryStr)
}

func (e *Engine) setupRust() {
	queryStr := `
        (function_item name: (identifier) @function.definition)
        (struct_item name: (type_identifier) @struct.definition)
        (enum_item name: (type_identifier) @enum.definition)
        (trait_item name: (type_identifier) @trait.definition)
        (const_item name: (identifier) @const.definition)
        (static_item name: (identifier) @static.definition)
        (type_item name: (type_identifier) @type.definition)
    `
	e.register(types.LanguageRust, tree_sitter.NewLanguage(tree_sitter_rust.Language()), queryStr)
}

func (e *Engine) setupGo() {
	queryStr := `
        (function_declaration name: (identifier) @function.definition)
        (method_declaration name: (field_identifier) @method.definition)
        (type_declaration (type_spec name: (type_identifier) @type.definition))
    `
	e.register(types.LanguageGo, tree_sitter.NewLanguage(tree_sitter_go.Language()), queryStr)
}

func (e *Engine) setupC() {
	queryStr := `
        (function_definition declarator: (function_declarator declarator: (identifier) @function.definition))
        (struct_specifier name: (type_identifier) @struct.definition)
    `
	e.register(types.LanguageC, tree_sitter.NewLanguage(tree_sitter_c.Language()), queryStr)
}

func (e *Engine) setupCpp() {
	queryStr := `
        (function_definition declarator: (function_declarator declarator: (identifier) @function.definition))
        (function_definition declarator: (function_declarator declarator: (qualified_identifier name: (identifier) @function.definition)))
        (struct_specifier name: (type_identifier) @struct.definition)
        (class_specifier name: (type_identifier) @class.definition)
    `
	e.register(types.LanguageCpp, tree_sitter.NewLanguage(tree_sitter_cpp.Language()), queryStr)
}

func (e *Engine) setupJava() {
	queryStr := `
        (method_declaration name: (identifier) @method.definition)
        (class_declaration name: (identifier) @class.definition)
        (interface_declaration name: (identifier) @interface.definition)
    `
	e.register(types.LanguageJava, tree_sitter.NewLanguage(tree_sitter_java.Language()), queryStr)
}

// TypeScript uses the TSX grammar so .ts and .tsx both parse, including
// embedded JSX.
func (e *Engine) setupTypeScript() {
	queryStr := `
        (function_declaration name: (identifier) @function.definition)
        (export_statement (function_declaration name: (identifier) @function.definition))
        (class_declaration name: (type_identifier) @class.definition)
        (export_statement (class_declaration name: (type_identifier) @class.definition))
        (interface_declaration name: (type_identifier) @interface.definition)
        (export_statement (interface_declaration name: (type_identifier) @interface.definition))
        (type_alias_declaration name: (type_identifier) @type.definition)
        (export_statement (type_alias_declaration name: (type_identifier) @type.definition))
        (enum_declaration name: (identifier) @enum.definition)
        (export_statement (enum_declaration name: (identifier) @enum.definition))
        (method_definition name: (property_identifier) @method.definition)
        (program (lexical_declaration (variable_declarator name: (identifier) @const.definition)))
        (program (export_statement (lexical_declaration (variable_declarator name: (identifier) @const.definition))))
    `
	e.register(types.LanguageTypeScript, tree_sitter.NewLanguage(tree_sitter_typescript.LanguageTSX()), queryStr)
}

// JavaScript uses its own grammar (JSX is built in). Class names are plain
// identifiers here, unlike the TSX grammar.
func (e *Engine) setupJavaScript() {
	queryStr := `
        (function_declaration name: (identifier) @function.definition)
        (export_statement (function_declaration name: (identifier) @function.definition))
        (class_declaration name: (identifier) @class.definition)
        (export_statement (class_declaration name: (identifier) @class.definition))
        (method_definition name: (property_identifier) @method.definition)
        (program (lexical_declaration (variable_declarator name: (identifier) @const.definition)))
        (program (export_statement (lexical_declaration (variable_declarator name: (identifier) @const.definition))))
    `
	e.register(types.LanguageJavaScript, tree_sitter.NewLanguage(tree_sitter_javascript.Language()), queryStr)
}
