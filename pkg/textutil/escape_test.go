package textutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gocmark/pkg/textutil"
)

func TestEscapeXML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		preserve bool
		expected string
	}{
		{"all specials", `<a href="x">&</a>`, false, "&lt;a href=&quot;x&quot;&gt;&amp;&lt;/a&gt;"},
		{"entity escaped", "&amp;", false, "&amp;amp;"},
		{"entity preserved", "a&amp;b", true, "a&amp;b"},
		{"numeric preserved", "&#x41;&#65;", true, "&#x41;&#65;"},
		{"bare ampersand escaped when preserving", "a & b", true, "a &amp; b"},
		{"no specials", "hello", false, "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, textutil.EscapeXML(tt.input, tt.preserve))
		})
	}
}
