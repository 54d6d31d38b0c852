package stringtest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go.jacobcolvin.com/tintplay/stringtest"
)

func TestInput(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input string
		want  string
	}{
		"empty string": {
			input: "",
			want:  "",
		},
		"single line with both newlines": {
			input: "\nhello\n",
			want:  "hello",
		},
		"multi-line with common indent spaces": {
			input: `
    line1
    line2`,
			want: "line1\nline2",
		},
		"multi-line with common indent tabs": {
			input: "\n\tline1\n\tline2",
			want:  "line1\nline2",
		},
		"varying indent": {
			input: `
    line1
      indented
    line3`,
			want: "line1\n  indented\nline3",
		},
		"blank line inside": {
			input: "\n  a\n\n  b\n",
			want:  "a\n\nb",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, stringtest.Input(tc.input))
		})
	}
}

func TestJoinLF(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a\nb\nc", stringtest.JoinLF("a", "b", "c"))
	assert.Empty(t, stringtest.JoinLF())
}

func TestPlain(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input string
		want  []string
	}{
		"truecolor half blocks": {
			input: "\033[38;2;1;2;3m\033[48;2;4;5;6m▀\033[0m",
			want:  []string{"▀"},
		},
		"styled lines with padding": {
			input: "\033[1mbold\033[0m   \nplain",
			want:  []string{"bold", "plain"},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, stringtest.PlainLines(tc.input))
		})
	}

	assert.Equal(t, "x", stringtest.Plain("\033[7mx\033[0m"))
}
