package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

const (
	// headerRule frames the title on both sides.
	headerRule = "═══"

	// headerSeparator joins the title and its detail.
	headerSeparator = " · "
)

// Header renders a one-line project title such as "═══ website · sorted by folder ═══".
// The title is centered when a width is known.
type Header struct {
	title  string
	detail string
	width  int
}

// NewHeader creates a Header for title at the given width.
// Width of 0 or less leaves the header left-aligned.
func NewHeader(title string, width int) *Header {
	return &Header{title: title, width: width}
}

// WithWidth returns a copy of the Header with the specified width.
func (h *Header) WithWidth(w int) *Header {
	c := *h
	c.width = w
	return &c
}

// WithDetail returns a copy of the Header showing detail after the title.
func (h *Header) WithDetail(detail string) *Header {
	c := *h
	c.detail = detail
	return &c
}

// Render returns the header string.
func (h *Header) Render() string {
	text := h.title
	if h.detail != "" {
		text += headerSeparator + h.detail
	}
	line := headerRule + " " + text + " " + headerRule

	styled := lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true).Render(line)
	return centerText(styled, line, h.width)
}

// centerText centers styled text using the display width of original, which
// carries no ANSI codes.
func centerText(styled, original string, totalWidth int) string {
	textWidth := runewidth.StringWidth(original)
	if totalWidth <= 0 || textWidth >= totalWidth {
		return styled
	}
	padding := (totalWidth - textWidth) / 2
	if padding <= 0 {
		return styled
	}
	return strings.Repeat(" ", padding) + styled
}

// GetTerminalWidth returns the width of stdout, or 0 when stdout is not a
// terminal or its size cannot be read.
func GetTerminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	width, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return width
}

// RenderHeader renders a header for title and detail at the specified width.
func RenderHeader(title, detail string, width int) string {
	return NewHeader(title, width).WithDetail(detail).Render()
}
