package types

import (
	"path/filepath"
	"strings"
)

// Language identifies one of the supported source languages.
type Language string

const (
	LanguagePython     Language = "python"
	LanguageRust       Language = "rust"
	LanguageGo         Language = "go"
	LanguageC          Language = "c"
	LanguageCpp        Language = "cpp"
	LanguageJava       Language = "java"
	LanguageTypeScript Language = "typescript"
	LanguageJavaScript Language = "javascript"
)

// Language families. Languages in the same family share one
// definition/reference namespace; languages in different families never see
// each other's symbols. C and C++ share headers, TypeScript and JavaScript
// share modules; everything else is isolated.
const (
	FamilyCFamily  = "c_family"
	FamilyJSFamily = "js_family"
	FamilyPython   = "python"
	FamilyRust     = "rust"
	FamilyGo       = "go"
	FamilyJava     = "java"
	FamilyUnknown  = "unknown"
)

// AllFamilies lists every lookup family.
var AllFamilies = []string{
	FamilyPython,
	FamilyRust,
	FamilyGo,
	FamilyCFamily,
	FamilyJava,
	FamilyJSFamily,
}

// AllLanguages lists every supported language in registration order.
var AllLanguages = []Language{
	LanguagePython,
	LanguageRust,
	LanguageGo,
	LanguageC,
	LanguageCpp,
	LanguageJava,
	LanguageTypeScript,
	LanguageJavaScript,
}

// FamilyOf maps a language to its lookup family.
func FamilyOf(lang Language) string {
	switch lang {
	case LanguageC, LanguageCpp:
		return FamilyCFamily
	case LanguageTypeScript, LanguageJavaScript:
		return FamilyJSFamily
	case LanguagePython:
		return FamilyPython
	case LanguageRust:
		return FamilyRust
	case LanguageGo:
		return FamilyGo
	case LanguageJava:
		return FamilyJava
	default:
		return FamilyUnknown
	}
}

// LanguageForPath derives the language from a file path's extension.
// Returns false for extensions outside the supported set.
func LanguageForPath(path string) (Language, bool) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "py":
		return LanguagePython, true
	case "rs":
		return LanguageRust, true
	case "go":
		return LanguageGo, true
	case "c", "h":
		return LanguageC, true
	case "cpp", "cc", "cxx", "hpp", "hxx":
		return LanguageCpp, true
	case "java":
		return LanguageJava, true
	case "ts", "tsx":
		return LanguageTypeScript, true
	case "js", "jsx", "mjs", "cjs":
		return LanguageJavaScript, true
	default:
		return "", false
	}
}

// Extensions returns the file extensions (without dot) handled by a language.
func Extensions(lang Language) []string {
	switch lang {
	case LanguagePython:
		return []string{"py"}
	case LanguageRust:
		return []string{"rs"}
	case LanguageGo:
		return []string{"go"}
	case LanguageC:
		return []string{"c", "h"}
	case LanguageCpp:
		return []string{"cpp", "cc", "cxx", "hpp", "hxx"}
	case LanguageJava:
		return []string{"java"}
	case LanguageTypeScript:
		return []string{"ts", "tsx"}
	case LanguageJavaScript:
		return []string{"js", "jsx", "mjs", "cjs"}
	default:
		return nil
	}
}
