// Package draw consumes a state.State snapshot and produces a Frame — an
// ephemeral render plan — then renders it to a string of styled lines.
// Ported from original_source/src/{draw,frame,repr}.rs, restyled onto
// github.com/charmbracelet/lipgloss instead of termion escape sequences
// (the teacher, leonardcser-claude-mux/internal/tui/style.go, already
// commits to lipgloss for every visual role).
package draw

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/leo/proctmux/internal/errs"
)

// namedColors mirrors original_source/src/repr.rs's color_from_config_string
// ANSI palette, keyed without the "ansi" prefix, which ParseColor strips
// before the lookup.
var namedColors = map[string]string{
	"red":           "1",
	"green":         "2",
	"blue":          "4",
	"yellow":        "3",
	"cyan":          "6",
	"magenta":       "5",
	"black":         "0",
	"white":         "7",
	"lightred":      "9",
	"lightgreen":    "10",
	"lightblue":     "12",
	"lightyellow":   "11",
	"lightcyan":     "14",
	"lightmagenta":  "13",
	"lightblack":    "8",
	"lightwhite":    "15",
}

// ParseColor accepts either a named palette entry ("ansired",
// "ansilightmagenta", …) or a comma-separated "R,G,B" triple and returns
// the corresponding lipgloss.Color. Round-trips deterministically for every
// named entry; fails for anything else that isn't a valid RGB triple.
func ParseColor(s string) (lipgloss.Color, error) {
	lower := strings.ToLower(strings.TrimSpace(s))
	if trimmed, ok := strings.CutPrefix(lower, "ansi"); ok {
		if code, ok := namedColors[trimmed]; ok {
			return lipgloss.Color(code), nil
		}
		return "", &errs.ConfigError{Err: fmt.Errorf("unknown color %q", s)}
	}

	parts := strings.Split(lower, ",")
	if len(parts) != 3 {
		return "", &errs.ConfigError{Err: fmt.Errorf("unknown color %q", s)}
	}
	rgb := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 || n > 255 {
			return "", &errs.ConfigError{Err: fmt.Errorf("invalid RGB component %q in color %q", p, s)}
		}
		rgb[i] = n
	}
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", rgb[0], rgb[1], rgb[2])), nil
}

// ColorOrDefault parses s, falling back to def on any error — used for
// style.* config fields, which are all optional.
func ColorOrDefault(s, def string) lipgloss.Color {
	if s == "" {
		return lipgloss.Color(def)
	}
	c, err := ParseColor(s)
	if err != nil {
		return lipgloss.Color(def)
	}
	return c
}
