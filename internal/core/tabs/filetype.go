package tabs

import (
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// friendlyNames maps lowercase extensions to the names shown in the status bar.
var friendlyNames = map[string]string{
	"rs": "Rust", "py": "Python", "pyw": "Python",
	"js": "JavaScript", "mjs": "JavaScript", "ts": "TypeScript", "mts": "TypeScript",
	"c": "C", "cpp": "C++", "cc": "C++", "cxx": "C++", "hpp": "C++",
	"cs": "C#", "java": "Java", "go": "Go", "rb": "Ruby", "php": "PHP",
	"swift": "Swift", "kt": "Kotlin", "kts": "Kotlin", "dart": "Dart", "lua": "Lua",
	"pl": "Perl", "pm": "Perl", "r": "R", "scala": "Scala", "hs": "Haskell",
	"zig": "Zig", "nim": "Nim",
	"html": "HTML", "htm": "HTML", "css": "CSS", "scss": "Sass", "sass": "Sass",
	"jsx": "React JSX", "tsx": "React TSX", "vue": "Vue",
	"json": "JSON", "toml": "TOML", "yaml": "YAML", "yml": "YAML", "xml": "XML",
	"ini": "Config", "conf": "Config", "cfg": "Config", "sql": "SQL Query", "env": "Environment",
	"sh": "Shell Script", "bash": "Bash Script", "zsh": "Zsh Script", "ps1": "PowerShell",
	"bat": "Batch File", "cmd": "Batch File", "make": "Makefile", "mak": "Makefile",
	"txt": "Text File", "md": "Markdown", "markdown": "Markdown", "log": "Log File",
	"csv": "CSV Data", "tex": "LaTeX",
}

// DetectFileType names the type of the file at path. Known extensions use
// the friendly table; otherwise enry classifies by name and content, and an
// unknown extension is shown uppercased. Untitled buffers have no type.
func DetectFileType(path string, content []byte) string {
	if path == "" {
		return ""
	}
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if name, ok := friendlyNames[strings.ToLower(ext)]; ok {
		return name
	}
	if lang := enry.GetLanguage(filepath.Base(path), content); lang != "" {
		return lang
	}
	return strings.ToUpper(ext)
}
