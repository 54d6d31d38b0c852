package tui

import (
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	tea "charm.land/bubbletea/v2"

	"go.jacobcolvin.com/tintplay/player"
)

const maxMatches = 8

// Prompt is an in-terminal file chooser with extension filters and tab
// completion.
type Prompt struct {
	title   string
	input   string
	filters []player.Filter
	matches []string
	filter  int
}

// NewPrompt creates a [Prompt] for req with the input preset to start.
func NewPrompt(req *player.Prompt, start string) *Prompt {
	filters := req.Filters
	if len(filters) == 0 {
		filters = player.DefaultFilters()
	}

	return &Prompt{
		title:   req.Title,
		input:   start,
		filters: filters,
	}
}

// Input returns the current text.
func (p *Prompt) Input() string { return p.input }

// Filter returns the active filter.
func (p *Prompt) Filter() player.Filter { return p.filters[p.filter] }

// Matches returns the candidates from the last completion.
func (p *Prompt) Matches() []string { return p.matches }

// Update applies a key press. When done is true the prompt is finished and
// path is the chosen file, or empty if the prompt was cancelled.
func (p *Prompt) Update(msg tea.KeyPressMsg) (done bool, path string) {
	switch msg.String() {
	case "enter":
		return true, strings.TrimSpace(p.input)
	case "esc", "ctrl+c":
		return true, ""
	case "tab":
		p.Complete()
	case "ctrl+f":
		p.filter = (p.filter + 1) % len(p.filters)
		p.matches = nil
	case "backspace":
		r := []rune(p.input)
		if len(r) > 0 {
			p.input = string(r[:len(r)-1])
		}
	case "ctrl+u":
		p.input = ""
	default:
		p.input += msg.Text
	}

	return false, ""
}

// Complete extends the input to the longest common prefix of the matching
// directory entries. Directories always match; files must match the active
// filter.
func (p *Prompt) Complete() {
	p.matches = p.candidates()
	if len(p.matches) == 0 {
		return
	}

	p.input = commonPrefix(p.matches)
}

func (p *Prompt) candidates() []string {
	dir, base := filepath.Split(p.input)

	readDir := dir
	if readDir == "" {
		readDir = "."
	}

	entries, err := os.ReadDir(readDir)
	if err != nil {
		return nil
	}

	var out []string

	for _, e := range entries {
		name := e.Name()
		if !strings.HasPrefix(name, base) {
			continue
		}

		// Hidden entries only when asked for.
		if strings.HasPrefix(name, ".") && !strings.HasPrefix(base, ".") {
			continue
		}

		switch {
		case e.IsDir():
			out = append(out, dir+name+string(filepath.Separator))
		case p.Filter().Match(name):
			out = append(out, dir+name)
		}
	}

	return out
}

func commonPrefix(ss []string) string {
	prefix := ss[0]
	for _, s := range ss[1:] {
		for !strings.HasPrefix(s, prefix) {
			_, size := utf8.DecodeLastRuneInString(prefix)
			prefix = prefix[:len(prefix)-size]
		}
	}

	return prefix
}

// View draws the prompt contents without decoration.
func (p *Prompt) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(p.title))
	b.WriteString("\n\n")
	b.WriteString(faintStyle.Render("Filter: " + p.Filter().Name + " (ctrl+f to change)"))
	b.WriteString("\n> ")
	b.WriteString(p.input)
	b.WriteString("█")

	for i, m := range p.matches {
		if i == maxMatches {
			b.WriteString("\n" + faintStyle.Render("…"))

			break
		}

		b.WriteString("\n  " + faintStyle.Render(m))
	}

	b.WriteString("\n\n")
	b.WriteString(faintStyle.Render("tab complete · enter open · esc cancel"))

	return b.String()
}
