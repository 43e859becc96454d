package config

import "bytes"

// DefaultTemplateHeader returns the header written at the top of generated configs.
func DefaultTemplateHeader() string {
	return `# gocmark configuration
# See: https://github.com/yaklabco/gocmark`
}

// GenerateTemplate returns a commented starter configuration. With full
// set, every option is written out with its default value; otherwise the
// options appear commented out.
func GenerateTemplate(full bool) ([]byte, error) {
	if full {
		cfg := NewConfig()
		cfg.Smart = Bool(false)
		cfg.Safe = Bool(false)
		cfg.Sourcepos = Bool(false)
		cfg.DetectLanguage = Bool(false)
		return cfg.ToYAMLWithHeader(DefaultTemplateHeader())
	}

	var buf bytes.Buffer
	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Output format: html or xml
format: html

# Typographic quotes, dashes and ellipses
# smart: false

# Omit raw HTML and javascript:, vbscript:, file: and data: links
# safe: false

# Add data-sourcepos attributes
# sourcepos: false

# Label unlabeled fenced code blocks with a guessed language
# detect_language: false

# HTML written for soft line breaks
# softbreak: "\n"

# Batch conversion with "gocmark build"
# build:
#   extensions: [".md", ".markdown"]
#   include: ["docs/**"]
#   exclude: ["vendor/**", "node_modules/**"]
#   out_dir: site
#   jobs: 0
`)

	return buf.Bytes(), nil
}
