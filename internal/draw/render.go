package draw

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var tooSmallStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
var messageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
var filterStyle = lipgloss.NewStyle().Bold(true)

// Render turns a Frame into the string bubbletea should show for the
// picker pane's View(). Terminal clearing/cursor management is delegated
// to bubbletea's alt-screen renderer rather than emitted here by hand
// (original_source/src/draw.rs writes raw termion escape sequences; this
// port keeps that responsibility at the framework boundary instead).
func Render(f Frame) string {
	if f.TooSmall {
		return tooSmallStyle.Render("Screen too small")
	}

	var b strings.Builder
	if f.FilterLine != nil {
		b.WriteString(filterStyle.Render(*f.FilterLine))
		b.WriteString("\n")
	}
	for _, line := range f.ProcessLines {
		b.WriteString(renderLine(line))
		b.WriteString("\n")
	}
	for _, msg := range f.Messages {
		b.WriteString(messageStyle.Render(msg))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderLine(line ProcessLine) string {
	var b strings.Builder
	for _, seg := range line.Segments {
		b.WriteString(renderSegment(seg))
	}
	return b.String()
}

func renderSegment(seg Segment) string {
	style := lipgloss.NewStyle().Foreground(seg.FG)
	if seg.BG != nil {
		style = style.Background(*seg.BG)
	}
	if seg.Bold {
		style = style.Bold(true)
	}
	text := seg.Text
	if seg.Width != nil {
		style = style.Width(*seg.Width)
	}
	return style.Render(text)
}
