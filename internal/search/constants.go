package search

import "strings"

// Directories excluded from content search by default.
var excludedDirs = map[string]struct{}{
	"node_modules":     {},
	".git":             {},
	"target":           {},
	"build":            {},
	"dist":             {},
	".next":            {},
	".cache":           {},
	"coverage":         {},
	".nyc_output":      {},
	"logs":             {},
	"tmp":              {},
	"temp":             {},
	".DS_Store":        {},
	".idea":            {},
	"__pycache__":      {},
	".pytest_cache":    {},
	".svn":             {},
	".hg":              {},
	"vendor":           {},
	"deps":             {},
	"_build":           {},
	".elixir_ls":       {},
	".sass-cache":      {},
	".parcel-cache":    {},
	"out":              {},
	"public":           {},
	".nuxt":            {},
	".output":          {},
	".netlify":         {},
	"bower_components": {},
}

// Common code file extensions (without dot).
var codeExtensions = map[string]struct{}{
	// Programming languages
	"rs": {}, "js": {}, "jsx": {}, "ts": {}, "tsx": {}, "py": {}, "java": {},
	"c": {}, "cpp": {}, "cc": {}, "cxx": {}, "h": {}, "hpp": {}, "cs": {},
	"php": {}, "rb": {}, "go": {}, "swift": {}, "kt": {}, "scala": {}, "clj": {},
	// Web technologies
	"html": {}, "htm": {}, "css": {}, "scss": {}, "sass": {}, "less": {},
	"vue": {}, "svelte": {},
	// Configuration and data formats
	"json": {}, "xml": {}, "yaml": {}, "yml": {}, "toml": {}, "ini": {},
	"cfg": {}, "conf": {},
	// Documentation
	"md": {}, "mdx": {}, "txt": {}, "rst": {}, "tex": {}, "org": {}, "log": {},
	// Scripts
	"sh": {}, "bash": {}, "zsh": {}, "fish": {}, "ps1": {}, "bat": {}, "cmd": {},
	// Data and API
	"sql": {}, "graphql": {}, "gql": {}, "proto": {}, "thrift": {},
	// Other languages
	"r": {}, "m": {}, "mm": {}, "pl": {}, "pm": {}, "lua": {}, "vim": {}, "el": {},
	"dart": {}, "elm": {}, "haskell": {}, "hs": {}, "ml": {}, "fs": {}, "fsx": {},
	"fsi": {}, "coffee": {}, "litcoffee": {}, "haml": {}, "pug": {}, "jade": {},
	"slim": {}, "styl": {}, "stylus": {}, "postcss": {}, "pcss": {}, "lock": {},
}

// Code file names without extensions.
var codeFilenames = map[string]struct{}{
	"dockerfile":  {},
	"makefile":    {},
	"rakefile":    {},
	"gemfile":     {},
	"podfile":     {},
	"vagrantfile": {},
	"procfile":    {},
	"cakefile":    {},
	"gruntfile":   {},
	"gulpfile":    {},
}

// Binary file extensions, always skipped.
var binaryExtensions = map[string]struct{}{
	"exe": {}, "dll": {}, "so": {}, "dylib": {}, "a": {}, "lib": {}, "o": {}, "obj": {},
	"pdf": {}, "doc": {}, "docx": {}, "xls": {}, "xlsx": {}, "ppt": {}, "pptx": {},
	"zip": {}, "tar": {}, "gz": {}, "bz2": {}, "7z": {}, "rar": {},
	"jpg": {}, "jpeg": {}, "png": {}, "gif": {}, "bmp": {}, "ico": {}, "svg": {},
	"mp3": {}, "mp4": {}, "avi": {}, "mkv": {}, "mov": {}, "wmv": {}, "flv": {},
	"ttf": {}, "otf": {}, "woff": {}, "woff2": {}, "eot": {},
	"jar": {}, "war": {}, "ear": {}, "class": {}, "pyc": {}, "pyo": {},
	"db": {}, "sqlite": {}, "sqlite3": {},
}

// ShouldExcludeDir reports whether a directory name is excluded by default.
func ShouldExcludeDir(dirName string) bool {
	_, ok := excludedDirs[dirName]
	return ok
}

// IsCodeExtension reports whether an extension (without dot) is a code file.
func IsCodeExtension(extension string) bool {
	_, ok := codeExtensions[strings.ToLower(extension)]
	return ok
}

// IsCodeFilename reports whether an extensionless filename is a code file.
func IsCodeFilename(filename string) bool {
	_, ok := codeFilenames[strings.ToLower(filename)]
	return ok
}

// IsBinaryExtension reports whether an extension (without dot) is binary.
func IsBinaryExtension(extension string) bool {
	_, ok := binaryExtensions[strings.ToLower(extension)]
	return ok
}
