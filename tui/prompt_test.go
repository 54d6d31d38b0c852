package tui

import (
	"os"
	"path/filepath"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/tintplay/player"
	"go.jacobcolvin.com/tintplay/stringtest"
)

func promptDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	for _, name := range []string{"clip.mp4", "clip.avi", "notes.txt", ".hidden.mp4"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o600))
	}

	require.NoError(t, os.Mkdir(filepath.Join(dir, "clips"), 0o750))

	return dir + string(filepath.Separator)
}

func newPrompt(start string) *Prompt {
	return NewPrompt(&player.Prompt{Title: player.PromptTitle, Filters: player.DefaultFilters()}, start)
}

func TestPromptComplete(t *testing.T) {
	t.Parallel()

	dir := promptDir(t)
	sep := string(filepath.Separator)

	tcs := map[string]struct {
		input   string
		filter  int
		want    string
		matches []string
	}{
		"unique file": {
			input:   dir + "clip.m",
			want:    dir + "clip.mp4",
			matches: []string{dir + "clip.mp4"},
		},
		"shared prefix": {
			input:   dir + "cl",
			want:    dir + "clip",
			matches: []string{dir + "clip.mp4", dir + "clips" + sep},
		},
		"directory": {
			input:   dir + "clips",
			want:    dir + "clips" + sep,
			matches: []string{dir + "clips" + sep},
		},
		"avi filter": {
			input:   dir + "clip.",
			filter:  1,
			want:    dir + "clip.avi",
			matches: []string{dir + "clip.avi"},
		},
		"all files": {
			input:   dir + "n",
			filter:  2,
			want:    dir + "notes.txt",
			matches: []string{dir + "notes.txt"},
		},
		"filtered out": {
			input: dir + "n",
			want:  dir + "n",
		},
		"hidden on request": {
			input:   dir + ".h",
			want:    dir + ".hidden.mp4",
			matches: []string{dir + ".hidden.mp4"},
		},
		"missing directory": {
			input: dir + "nope" + sep + "x",
			want:  dir + "nope" + sep + "x",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			p := newPrompt(tc.input)
			p.filter = tc.filter
			p.Complete()

			assert.Equal(t, tc.want, p.Input())
			assert.ElementsMatch(t, tc.matches, p.Matches())
		})
	}
}

func TestPromptKeys(t *testing.T) {
	t.Parallel()

	dir := promptDir(t)
	p := newPrompt(dir)

	assert.Equal(t, "MP4 files", p.Filter().Name)

	done, _ := p.Update(key("ctrl+f"))
	assert.False(t, done)
	assert.Equal(t, "AVI files", p.Filter().Name)

	p.Update(key("ctrl+f"))
	p.Update(key("ctrl+f"))
	assert.Equal(t, "MP4 files", p.Filter().Name)

	for _, r := range "clip.mx" {
		p.Update(key(string(r)))
	}

	p.Update(key("backspace"))
	p.Update(key("tab"))
	assert.Equal(t, dir+"clip.mp4", p.Input())

	view := stringtest.Plain(p.View())
	assert.Contains(t, view, player.PromptTitle)
	assert.Contains(t, view, "Filter: MP4 files")
	assert.Contains(t, view, "> "+dir+"clip.mp4")

	done, path := p.Update(key("enter"))
	assert.True(t, done)
	assert.Equal(t, dir+"clip.mp4", path)

	done, path = newPrompt("x").Update(key("esc"))
	assert.True(t, done)
	assert.Empty(t, path)
}

func TestCommonPrefix(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ab", commonPrefix([]string{"abc", "abd", "ab"}))
	assert.Equal(t, "", commonPrefix([]string{"x", "y"}))
	assert.Equal(t, "same", commonPrefix([]string{"same"}))

	// Names that differ inside a multi-byte rune keep whole runes.
	got := commonPrefix([]string{"dir/é1.mp4", "dir/è2.mp4"})
	assert.Equal(t, "dir/", got)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, "café", commonPrefix([]string{"café.mp4", "café.avi"}))
}
