package textutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gocmark/pkg/textutil"
)

func TestDecodeEntity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"named", "&amp;", "&"},
		{"named multi-letter", "&auml;", "ä"},
		{"named uppercase table entry", "&AElig;", "Æ"},
		{"decimal", "&#35;", "#"},
		{"decimal multibyte", "&#1234;", "Ӓ"},
		{"hex", "&#x22;", `"`},
		{"hex uppercase marker", "&#XD06;", "ആ"},
		{"zero", "&#0;", "�"},
		{"out of range", "&#98765432;", "�"},
		{"surrogate", "&#xD800;", "�"},
		{"unknown name", "&nosuchentity;", "&nosuchentity;"},
		{"legacy prefix only", "&notit;", "&notit;"},
		{"semicolon entity", "&semi;", ";"},
		{"not an entity", "&", "&"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, textutil.DecodeEntity(tt.input))
		})
	}
}

func TestDecodeHTML(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `a & b © "c"`, textutil.DecodeHTML(`a &amp; b &copy; &quot;c&quot;`))
	assert.Equal(t, "no entities", textutil.DecodeHTML("no entities"))
	assert.Equal(t, "&x y", textutil.DecodeHTML("&x y"))
}

func TestUnescapeString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"escaped punctuation", `\*not emphasized\*`, "*not emphasized*"},
		{"backslash before letter", `\a`, `\a`},
		{"escaped backslash", `\\`, `\`},
		{"entity", `foo&amp;bar`, "foo&bar"},
		{"escaped entity", `\&amp;`, "&amp;"},
		{"mixed", `\[&lt;x&gt;\]`, "[<x>]"},
		{"plain", "plain", "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, textutil.UnescapeString(tt.input))
		})
	}
}
