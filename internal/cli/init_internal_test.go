package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{" yes ", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"maybe\n", false},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			t.Parallel()

			var prompt bytes.Buffer
			cmd := &cobra.Command{}
			cmd.SetIn(strings.NewReader(tt.input))
			cmd.SetErr(&prompt)

			got, err := confirm(cmd, "Overwrite?")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, "Overwrite? [y/N] ", prompt.String())
		})
	}
}

func TestExcludeOutputs(t *testing.T) {
	t.Parallel()

	work := "/work"
	tests := []struct {
		name    string
		exclude []string
		outDir  string
		want    []string
	}{
		{"no out dir", []string{"a"}, "", []string{"a"}},
		{"inside", []string{"a"}, "/work/site", []string{"a", "site/**"}},
		{"nested", nil, "/work/build/html", []string{"build/html/**"}},
		{"outside", []string{"a"}, "/elsewhere", []string{"a"}},
		{"same dir", nil, "/work", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, excludeOutputs(tt.exclude, work, tt.outDir))
		})
	}
}
