package types

import "testing"

func TestLanguageForPath(t *testing.T) {
	tests := []struct {
		path string
		lang Language
		ok   bool
	}{
		{"main.py", LanguagePython, true},
		{"lib.rs", LanguageRust, true},
		{"server.go", LanguageGo, true},
		{"util.c", LanguageC, true},
		{"util.h", LanguageC, true},
		{"engine.cpp", LanguageCpp, true},
		{"engine.cc", LanguageCpp, true},
		{"engine.hpp", LanguageCpp, true},
		{"App.java", LanguageJava, true},
		{"app.ts", LanguageTypeScript, true},
		{"App.tsx", LanguageTypeScript, true},
		{"index.js", LanguageJavaScript, true},
		{"index.jsx", LanguageJavaScript, true},
		{"index.mjs", LanguageJavaScript, true},
		{"src/deep/nested/mod.rs", LanguageRust, true},
		{"UPPER.PY", LanguagePython, true},
		{"readme.md", "", false},
		{"Makefile", "", false},
		{"noext", "", false},
	}

	for _, tc := range tests {
		lang, ok := LanguageForPath(tc.path)
		if ok != tc.ok || lang != tc.lang {
			t.Errorf("LanguageForPath(%q) = (%q, %v), want (%q, %v)", tc.path, lang, ok, tc.lang, tc.ok)
		}
	}
}

func TestFamilyOf(t *testing.T) {
	tests := []struct {
		lang   Language
		family string
	}{
		{LanguageC, FamilyCFamily},
		{LanguageCpp, FamilyCFamily},
		{LanguageTypeScript, FamilyJSFamily},
		{LanguageJavaScript, FamilyJSFamily},
		{LanguagePython, FamilyPython},
		{LanguageRust, FamilyRust},
		{LanguageGo, FamilyGo},
		{LanguageJava, FamilyJava},
		{Language("cobol"), FamilyUnknown},
	}

	for _, tc := range tests {
		if got := FamilyOf(tc.lang); got != tc.family {
			t.Errorf("FamilyOf(%q) = %q, want %q", tc.lang, got, tc.family)
		}
	}
}

func TestExtensionsRoundTrip(t *testing.T) {
	// Every extension a language claims must map back to that language.
	for _, lang := range AllLanguages {
		for _, ext := range Extensions(lang) {
			got, ok := LanguageForPath("file." + ext)
			if !ok || got != lang {
				t.Errorf("extension %q of %q maps to (%q, %v)", ext, lang, got, ok)
			}
		}
	}
}

func TestAllFamiliesCoversAllLanguages(t *testing.T) {
	families := make(map[string]bool, len(AllFamilies))
	for _, f := range AllFamilies {
		families[f] = true
	}
	for _, lang := range AllLanguages {
		if !families[FamilyOf(lang)] {
			t.Errorf("family %q of %q missing from AllFamilies", FamilyOf(lang), lang)
		}
	}
}
