package render

// DefaultSoftbreak is the text emitted for a soft line break.
const DefaultSoftbreak = "\n"

// Options configures rendering.
type Options struct {
	// Format selects the renderer used by New.
	Format Format

	// Safe suppresses raw HTML and links or images with unsafe URL schemes.
	Safe bool

	// Sourcepos annotates block elements with their source span.
	Sourcepos bool

	// Softbreak is emitted for soft line breaks in HTML output.
	// Empty means DefaultSoftbreak.
	Softbreak string

	// DetectLanguage labels fenced code blocks without an info string
	// with a guessed language class.
	DetectLanguage bool
}

// DefaultOptions returns HTML output with default settings.
func DefaultOptions() Options {
	return Options{
		Format:    FormatHTML,
		Softbreak: DefaultSoftbreak,
	}
}

func (o Options) softbreak() string {
	if o.Softbreak == "" {
		return DefaultSoftbreak
	}
	return o.Softbreak
}
