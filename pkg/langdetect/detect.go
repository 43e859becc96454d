// Package langdetect guesses the language of a code snippet. The HTML
// renderer uses it to label fenced code blocks that have no info string.
package langdetect

import (
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Language names as they appear in a "language-" class.
const (
	Go         = "go"
	Python     = "python"
	JavaScript = "javascript"
	JSON       = "json"
	YAML       = "yaml"
	HTML       = "html"
	SQL        = "sql"
	Rust       = "rust"
	Dockerfile = "dockerfile"
	Bash       = "bash"
)

// classifierCandidates limits the enry classifier to languages commonly
// found in documentation.
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Markdown", "Dockerfile",
}

// rule recognizes one language from telltale fragments of the snippet.
type rule struct {
	lang  string
	match func(code, trimmed string) bool
}

// rules run in order; the first match wins.
var rules = []rule{
	{Go, func(_, trimmed string) bool {
		return strings.HasPrefix(trimmed, "package ")
	}},
	{Python, looksLikePython},
	{HTML, func(_, trimmed string) bool {
		lower := strings.ToLower(trimmed)
		return containsAny(lower, "<!doctype html", "<html", "<head>", "<body>")
	}},
	{JSON, func(_, trimmed string) bool {
		return (strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[")) &&
			strings.Contains(trimmed, `"`)
	}},
	{Dockerfile, func(code, trimmed string) bool {
		return strings.HasPrefix(trimmed, "FROM ") ||
			(strings.Contains(code, "\nFROM ") && strings.Contains(code, "\nRUN ")) ||
			(strings.Contains(code, "WORKDIR ") && strings.Contains(code, "COPY "))
	}},
	{SQL, func(_, trimmed string) bool {
		upper := strings.ToUpper(trimmed)
		for _, kw := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
			if strings.HasPrefix(upper, kw) {
				return true
			}
		}
		return false
	}},
	{Rust, func(code, _ string) bool {
		return containsAny(code, "fn main()", "println!", "let mut ")
	}},
	{JavaScript, func(code, _ string) bool {
		return containsAny(code, "=>", "const ", "let ", "console.log")
	}},
	{YAML, func(code, _ string) bool {
		return yamlKeyCount(code) >= 2
	}},
}

// Detect returns the language of code and whether the guess is confident.
// Shebang lines are trusted first, then the fragment rules, then the enry
// classifier when it reports a safe result.
func Detect(code string) (string, bool) {
	if strings.TrimSpace(code) == "" {
		return "", false
	}

	content := []byte(code)
	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang), true
	}

	trimmed := strings.TrimSpace(code)
	for _, r := range rules {
		if r.match(code, trimmed) {
			return r.lang, true
		}
	}

	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return normalize(lang), true
	}

	return "", false
}

func looksLikePython(code, trimmed string) bool {
	if strings.Contains(code, "def ") && strings.Contains(code, "):") {
		return true
	}
	// Go imports use "import (".
	if strings.Contains(code, "import ") && !strings.Contains(code, "import (") &&
		(strings.Contains(code, "from ") || strings.HasPrefix(trimmed, "import ")) {
		return true
	}
	return containsAny(code, "__name__", "__main__")
}

// yamlKeyCount counts lines shaped like "key: value" or "- item".
func yamlKeyCount(code string) int {
	count := 0
	for line := range strings.Lines(code) {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.Contains(line, ": ") && !containsAny(line, "(", "{") && !strings.HasPrefix(line, `"`) {
			count++
		}
		if strings.HasPrefix(line, "- ") {
			count++
		}
	}
	return count
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// normalize maps enry language names to class names.
func normalize(lang string) string {
	if lang == "Shell" {
		return Bash
	}
	return strings.ToLower(lang)
}
