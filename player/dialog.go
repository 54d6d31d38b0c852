package player

import (
	"path/filepath"
	"strings"
)

// Dialog strings.
const (
	PromptTitle = "Select a Video File"
	HelpTitle   = "Help"
	HelpText    = "Change the rgb values using the color controls\n" +
		"\n" +
		"Try finding the clues hidden in the video\n" +
		"\n" +
		"Have fun exploring!"
)

// Filter is a named set of glob patterns for the file prompt.
type Filter struct {
	Name     string
	Patterns []string
}

// Match reports whether the base name of path matches any pattern.
func (f Filter) Match(path string) bool {
	base := strings.ToLower(filepath.Base(path))

	for _, pat := range f.Patterns {
		ok, err := filepath.Match(strings.ToLower(pat), base)
		if err == nil && ok {
			return true
		}
	}

	return false
}

// DefaultFilters returns the MP4, AVI, and all-files filters.
func DefaultFilters() []Filter {
	return FiltersFor([]string{".mp4", ".avi"})
}

// FiltersFor returns one filter per extension followed by an all-files
// filter.
func FiltersFor(exts []string) []Filter {
	filters := make([]Filter, 0, len(exts)+1)

	for _, ext := range exts {
		ext = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(ext)), ".")
		if ext == "" {
			continue
		}

		filters = append(filters, Filter{
			Name:     strings.ToUpper(ext) + " files",
			Patterns: []string{"*." + ext},
		})
	}

	return append(filters, Filter{Name: "All files", Patterns: []string{"*"}})
}
