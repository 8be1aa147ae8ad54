package highlight

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// extensionAliases maps extensions to Chroma lexer names for ecosystems whose
// grammar name differs from the extension, or that Chroma's own filename
// globs miss.
var extensionAliases = map[string]string{
	".ts":         "TypeScript",
	".tsx":        "TypeScript",
	".mts":        "TypeScript",
	".cts":        "TypeScript",
	".js":         "JavaScript",
	".jsx":        "JavaScript",
	".mjs":        "JavaScript",
	".cjs":        "JavaScript",
	".py":         "Python",
	".pyi":        "Python",
	".rs":         "Rust",
	".go":         "Go",
	".rb":         "Ruby",
	".kt":         "Kotlin",
	".kts":        "Kotlin",
	".sh":         "Bash",
	".bash":       "Bash",
	".zsh":        "Bash",
	".envrc":      "Bash",
	".yml":        "YAML",
	".yaml":       "YAML",
	".toml":       "TOML",
	".md":         "Markdown",
	".markdown":   "Markdown",
	".conf":       "nginx",
	".dockerfile": "Docker",
	".proto":      "Protocol Buffer",
	".h":          "C",
	".hpp":        "C++",
	".cc":         "C++",
	".vue":        "vue",
	".svelte":     "Svelte",
}

// nameAliases maps well-known extensionless file names to lexer names.
var nameAliases = map[string]string{
	"dockerfile":  "Docker",
	"makefile":    "Makefile",
	"gnumakefile": "Makefile",
	"gemfile":     "Ruby",
	"rakefile":    "Ruby",
	"justfile":    "Makefile",
	"go.mod":      "Go",
	".bashrc":     "Bash",
	".zshrc":      "Bash",
	".profile":    "Bash",
}

// interpreters maps shebang interpreter names to lexer names.
var interpreters = map[string]string{
	"sh":      "Bash",
	"bash":    "Bash",
	"zsh":     "Bash",
	"dash":    "Bash",
	"ksh":     "Bash",
	"python":  "Python",
	"node":    "JavaScript",
	"deno":    "TypeScript",
	"bun":     "TypeScript",
	"ts-node": "TypeScript",
	"ruby":    "Ruby",
	"perl":    "Perl",
	"php":     "PHP",
	"lua":     "Lua",
	"fish":    "Fish",
	"pwsh":    "PowerShell",
}

// Resolve picks the lexer for a file. In priority order: Chroma's filename
// match on the extension, the alias tables, the first line of content
// (shebangs, XML/HTML prologs), and finally plain text. Never returns nil.
func Resolve(path, firstLine string) chroma.Lexer {
	base := filepath.Base(path)
	if lex := lexers.Match(base); lex != nil {
		return lex
	}
	if name := DetectLanguage(path); name != "" {
		if lex := lexers.Get(name); lex != nil {
			return lex
		}
	}
	if lex := sniff(firstLine); lex != nil {
		return lex
	}
	return lexers.Fallback
}

// DetectLanguage returns the Chroma lexer name for path from the alias
// tables, or "" when the extension and file name are unknown.
func DetectLanguage(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if lang, ok := extensionAliases[ext]; ok {
		return lang
	}
	base := strings.ToLower(filepath.Base(path))
	if lang, ok := nameAliases[base]; ok {
		return lang
	}
	return ""
}

// sniff resolves a lexer from the first line of content.
func sniff(firstLine string) chroma.Lexer {
	if name := shebangLanguage(firstLine); name != "" {
		if lex := lexers.Get(name); lex != nil {
			return lex
		}
	}
	if strings.TrimSpace(firstLine) == "" {
		return nil
	}
	return lexers.Analyse(firstLine)
}

// shebangLanguage returns the lexer name for a "#!" line, or "".
func shebangLanguage(line string) string {
	if !strings.HasPrefix(line, "#!") {
		return ""
	}
	fields := strings.Fields(strings.TrimPrefix(line, "#!"))
	if len(fields) == 0 {
		return ""
	}
	interp := filepath.Base(fields[0])
	if interp == "env" {
		interp = ""
		for _, f := range fields[1:] {
			if !strings.HasPrefix(f, "-") && !strings.Contains(f, "=") {
				interp = f
				break
			}
		}
	}
	// python3.12 -> python, ruby2 -> ruby
	interp = strings.TrimRight(interp, "0123456789.")
	return interpreters[interp]
}

// LexerName returns the display name of a lexer.
func LexerName(lex chroma.Lexer) string {
	if lex == nil || lex.Config() == nil {
		return "plaintext"
	}
	if lex == lexers.Fallback {
		return "plaintext"
	}
	return lex.Config().Name
}
