// Package stringtest provides helpers for asserting on rendered terminal
// output in tests.
package stringtest

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// JoinLF joins multiple strings with LF line endings.
// Use this to construct expected test output with explicit line endings.
//
// Example:
//
//	want := stringtest.JoinLF(
//		"line1",
//		"line2",
//	) // -> "line1\nline2"
func JoinLF(ss ...string) string {
	return strings.Join(ss, "\n")
}

// Input trims one leading and one trailing newline from s and removes the
// indentation common to all non-blank lines, so expected output can be
// written as an indented raw string.
func Input(s string) string {
	s = strings.TrimPrefix(s, "\n")
	s = strings.TrimSuffix(s, "\n")

	lines := strings.Split(s, "\n")
	indent := -1

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if indent < 0 || n < indent {
			indent = n
		}
	}

	if indent <= 0 {
		return s
	}

	for i, line := range lines {
		if len(line) >= indent {
			lines[i] = line[indent:]
		} else {
			lines[i] = strings.TrimLeft(line, " \t")
		}
	}

	return strings.Join(lines, "\n")
}

// Plain removes ANSI escape sequences from s.
func Plain(s string) string {
	return ansi.Strip(s)
}

// PlainLines removes ANSI escape sequences from s and splits it into lines
// with trailing spaces trimmed.
func PlainLines(s string) []string {
	lines := strings.Split(Plain(s), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}

	return lines
}
