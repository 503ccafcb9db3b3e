package parser

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"codenav/internal/types"
)

// String-literal and comment node kinds across the supported grammars. A
// candidate with any such ancestor is a textual false positive.
var stringKinds = map[string]struct{}{
	"string":                     {},
	"template_string":            {},
	"string_literal":             {},
	"string_content":             {},
	"interpreted_string_literal": {},
	"raw_string_literal":         {},
}

var commentKinds = map[string]struct{}{
	"comment":       {},
	"line_comment":  {},
	"block_comment": {},
}

// referenceShape captures which AST shapes disqualify an identifier from
// being a reference in one language. Adding a language means adding one
// table row, not editing the validation walk.
type referenceShape struct {
	// identifierKinds are the node kinds acceptable as a reference.
	identifierKinds map[string]struct{}
	// memberAccess maps a parent node kind to the field slot that holds
	// the accessed member (obj.prop - reject prop).
	memberAccess map[string]string
	// keyedShapes maps a parent node kind to the field slot that holds a
	// key in a key-value pair or literal initializer. An empty field name
	// means the key is the parent's first child.
	keyedShapes map[string]string
	// importRename maps a parent node kind to the field slot that holds
	// the pre-alias name of an import-renaming construct. The slot is only
	// rejected when the parent actually carries an alias.
	importRename map[string]importRenameShape
}

type importRenameShape struct {
	nameField  string
	aliasField string
}

var plainIdentifiers = map[string]struct{}{
	"identifier":      {},
	"type_identifier": {},
}

var jsIdentifiers = map[string]struct{}{
	"identifier":          {},
	"type_identifier":     {},
	"property_identifier": {},
}

var goIdentifiers = map[string]struct{}{
	"identifier":       {},
	"type_identifier":  {},
	"field_identifier": {},
}

var jsShape = referenceShape{
	identifierKinds: jsIdentifiers,
	memberAccess:    map[string]string{"member_expression": "property"},
	keyedShapes:     map[string]string{"pair": "key"},
	importRename: map[string]importRenameShape{
		"import_specifier": {nameField: "name", aliasField: "alias"},
	},
}

var referenceShapes = map[types.Language]referenceShape{
	types.LanguagePython: {
		identifierKinds: plainIdentifiers,
		memberAccess:    map[string]string{"attribute": "attribute"},
		keyedShapes:     map[string]string{"pair": "key"},
	},
	types.LanguageRust: {
		identifierKinds: plainIdentifiers,
		memberAccess:    map[string]string{"field_expression": "field"},
		keyedShapes:     map[string]string{"field_initializer": "name"},
	},
	types.LanguageGo: {
		identifierKinds: goIdentifiers,
		memberAccess:    map[string]string{"selector_expression": "field"},
		keyedShapes:     map[string]string{"keyed_element": ""},
	},
	types.LanguageC: {
		identifierKinds: plainIdentifiers,
		memberAccess:    map[string]string{"field_expression": "field"},
	},
	types.LanguageCpp: {
		identifierKinds: plainIdentifiers,
		memberAccess:    map[string]string{"field_expression": "field"},
	},
	types.LanguageJava: {
		identifierKinds: plainIdentifiers,
		memberAccess:    map[string]string{"field_access": "field"},
	},
	types.LanguageTypeScript: jsShape,
	types.LanguageJavaScript: jsShape,
}

// ValidateReference decides whether the node at a text-match position is a
// genuine reference to name. The checks run cheapest first: exact text
// equality, then node kind, then the ancestor walk, then the per-language
// shape rejections.
func ValidateReference(node *tree_sitter.Node, name string, source []byte, lang types.Language) bool {
	shape, ok := referenceShapes[lang]
	if !ok {
		return false
	}

	// The text search can match inside a larger token; the node must be
	// exactly the searched name.
	if node.Utf8Text(source) != name {
		return false
	}

	// Shorthand object properties ({ config }) fall out here too: their
	// node kind is shorthand_property_identifier, never a plain identifier.
	if _, ok := shape.identifierKinds[node.Kind()]; !ok {
		return false
	}

	// Occurrences inside string literals or comments are textual noise.
	for p := node.Parent(); p != nil; p = p.Parent() {
		kind := p.Kind()
		if _, ok := stringKinds[kind]; ok {
			return false
		}
		if _, ok := commentKinds[kind]; ok {
			return false
		}
	}

	parent := node.Parent()
	if parent == nil {
		return true
	}
	parentKind := parent.Kind()

	// obj.prop - the member name is a declaration site of the access, not
	// a use of the searched symbol.
	if field, ok := shape.memberAccess[parentKind]; ok {
		if member := parent.ChildByFieldName(field); member != nil && member.Id() == node.Id() {
			return false
		}
	}

	// { key: value } and struct-literal field names bind, they don't use.
	if field, ok := shape.keyedShapes[parentKind]; ok {
		var key *tree_sitter.Node
		if field == "" {
			key = parent.Child(0)
		} else {
			key = parent.ChildByFieldName(field)
		}
		if key != nil && key.Id() == node.Id() {
			return false
		}
	}

	// import { original as renamed } - the pre-alias name belongs to the
	// source module's namespace, not this file's.
	if rename, ok := shape.importRename[parentKind]; ok {
		if parent.ChildByFieldName(rename.aliasField) != nil {
			if orig := parent.ChildByFieldName(rename.nameField); orig != nil && orig.Id() == node.Id() {
				return false
			}
		}
	}

	return true
}
