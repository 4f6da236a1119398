package draw

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/leo/proctmux/internal/config"
	"github.com/leo/proctmux/internal/state"
)

// statusGlyph constants, ported from original_source/src/draw.rs's UP/DOWN.
const (
	statusRunning = "▲"
	statusHalted  = "▼"
)

// MinHeight is the smallest terminal height the drawer will render into.
const MinHeight = 3

// Segment is a single styled run of text — a plain tagged record per
// spec.md §9's design note ("no dynamic dispatch needed beyond what the
// terminal library itself offers").
type Segment struct {
	FG     lipgloss.Color
	BG     *lipgloss.Color
	Bold   bool
	Width  *int // fixed rendering width, when set
	Text   string
}

// ProcessLine is one rendered row of the process list.
type ProcessLine struct {
	Segments []Segment
}

// Frame is the ephemeral render plan recomputed from State on every draw.
type Frame struct {
	TooSmall      bool
	FilterLine    *string
	ProcessLines  []ProcessLine
	SelectedIndex int
	Messages      []string
}

// Builder turns a State snapshot into a Frame, given the terminal
// dimensions. Pure and side-effect free so it can be exercised directly by
// table tests without a terminal (spec.md §4.5).
type Builder struct{}

// Build implements spec.md §4.5's partitioning policy.
func (Builder) Build(st state.State, width, height int) Frame {
	if height < MinHeight {
		return Frame{TooSmall: true}
	}

	var filterLine *string
	remaining := height
	if st.GUI.FilterText != nil || st.GUI.EnteringFilterText {
		text := ""
		if st.GUI.FilterText != nil {
			text = *st.GUI.FilterText
		}
		line := "/" + text
		filterLine = &line
		remaining--
	}

	filtered := st.FilteredProcesses()
	listHeight, msgHeight := partition(remaining, len(filtered), len(st.GUI.Messages))

	lines, selectedIdx := buildProcessLines(st, filtered, listHeight)
	msgs := bottomAlign(st.GUI.Messages, msgHeight)

	return Frame{
		FilterLine:    filterLine,
		ProcessLines:  lines,
		SelectedIndex: selectedIdx,
		Messages:      msgs,
	}
}

// partition splits the rows available after the filter line between the
// process list and the message area: if both the list and the messages fit
// in their natural size, give each its natural size; otherwise give the
// list 75% of the remaining rows and the messages 25%, rounded down.
func partition(remaining, numProcs, numMsgs int) (listHeight, msgHeight int) {
	if remaining <= 0 {
		return 0, 0
	}
	if numProcs+numMsgs <= remaining {
		return numProcs, numMsgs
	}
	listHeight = remaining * 75 / 100
	msgHeight = remaining * 25 / 100
	return listHeight, msgHeight
}

// buildProcessLines renders every filtered process into a ProcessLine,
// windowing the view around the current selection when it doesn't fit in
// listHeight rows (show selection..end of available rows), and returns the
// index of the selected line within the returned slice.
func buildProcessLines(st state.State, filtered []state.Process, listHeight int) ([]ProcessLine, int) {
	selPos := -1
	for i, p := range filtered {
		if p.ID == st.CurrentProcID {
			selPos = i
			break
		}
	}

	start := 0
	if listHeight > 0 && len(filtered) > listHeight && selPos >= 0 {
		start = selPos
		if start+listHeight > len(filtered) {
			start = len(filtered) - listHeight
		}
		if start < 0 {
			start = 0
		}
	}
	end := len(filtered)
	if listHeight > 0 && start+listHeight < end {
		end = start + listHeight
	}

	style := st.Config.Style
	width := st.Config.Layout.ProcessListWidth - 3
	if width < 1 {
		width = 1
	}

	lines := make([]ProcessLine, 0, end-start)
	selectedIdx := -1
	for i := start; i < end; i++ {
		p := filtered[i]
		selected := p.ID == st.CurrentProcID
		if selected {
			selectedIdx = len(lines)
		}
		lines = append(lines, processLine(p, selected, style, width))
	}
	return lines, selectedIdx
}

func processLine(p state.Process, selected bool, style config.Style, width int) ProcessLine {
	glyph, color := statusGlyphAndColor(p.Status, style)

	if selected {
		bg := ColorOrDefault(style.SelectedProcessBgColor, "5")
		fg := ColorOrDefault(style.SelectedProcessFgColor, "0")
		w := width
		return ProcessLine{Segments: []Segment{
			{FG: color, Text: glyph + " "},
			{FG: fg, BG: &bg, Bold: true, Width: &w, Text: p.Label},
		}}
	}

	fg := ColorOrDefault(style.UnselectedProcessFgColor, "6")
	return ProcessLine{Segments: []Segment{
		{FG: color, Text: glyph + " "},
		{FG: fg, Text: p.Label},
	}}
}

func statusGlyphAndColor(status state.ProcessStatus, style config.Style) (string, lipgloss.Color) {
	switch status {
	case state.Running:
		return statusRunning, ColorOrDefault(style.StatusRunningColor, "2")
	case state.Halting:
		return statusHalted, ColorOrDefault(style.StatusHaltingColor, "3")
	default:
		return statusHalted, ColorOrDefault(style.StatusStoppedColor, "1")
	}
}

// bottomAlign keeps only the last height messages, so the message area is
// always bottom-aligned within its partition.
func bottomAlign(messages []string, height int) []string {
	if height <= 0 {
		return nil
	}
	if len(messages) <= height {
		return messages
	}
	return messages[len(messages)-height:]
}

// BreakAtNaturalBreakPoints appends next to acc, merging it onto the last
// element when the combination still fits within width (joined by
// delimiter), else starting a new element. Every element of the result has
// length <= width whenever every input element does — ported from
// original_source/src/frame.rs's break_at_natural_break_points.
func BreakAtNaturalBreakPoints(width int, delimiter string, acc []string, next string) []string {
	if len(acc) == 0 {
		return append(acc, next)
	}
	last := acc[len(acc)-1]
	merged := last + delimiter + next
	if len(merged) > width {
		return append(acc, next)
	}
	acc[len(acc)-1] = merged
	return acc
}
