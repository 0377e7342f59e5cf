// Package tui provides terminal user interface components for assetrack.
//
// This package provides a centralized style system using Lip Gloss for consistent
// TUI component styling. All colors use AdaptiveColor for light/dark terminal support.
//
// # Semantic Colors
//
// Five semantic colors are exported for use across TUI components:
//   - ColorPrimary (Blue): Active states, focused rows, folder headers
//   - ColorSuccess (Green): Implemented items, success messages
//   - ColorWarning (Yellow): Received items, attention required
//   - ColorError (Red): Rework items, error messages
//   - ColorMuted (Gray): Pending items, secondary text
//
// # Status Icons
//
// Every status display carries icon, color and text so the tree stays
// readable without color.
//
// # NO_COLOR Support
//
// Call CheckNoColor() at the start of commands to respect the NO_COLOR environment
// variable. Colors are also disabled when TERM=dumb.
package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/mrz1836/assetrack/internal/constants"
	"github.com/mrz1836/assetrack/internal/domain"
)

//nolint:gochecknoglobals // Intentional package-level constants for TUI styling API
var (
	// ColorPrimary is blue, used for active states and folder headers.
	ColorPrimary = lipgloss.AdaptiveColor{Light: "#0087AF", Dark: "#00D7FF"}

	// ColorSuccess is green, used for implemented items and success states.
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#008700", Dark: "#00FF87"}

	// ColorWarning is yellow, used for received items and warnings.
	ColorWarning = lipgloss.AdaptiveColor{Light: "#AF8700", Dark: "#FFD700"}

	// ColorError is red, used for rework items and errors.
	ColorError = lipgloss.AdaptiveColor{Light: "#AF0000", Dark: "#FF5F5F"}

	// ColorMuted is gray, used for pending items and secondary text.
	ColorMuted = lipgloss.AdaptiveColor{Light: "#585858", Dark: "#6C6C6C"}

	// StyleBold applies bold formatting to text.
	StyleBold = lipgloss.NewStyle().Bold(true)

	// StyleDim applies dim/faint formatting to text.
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleReverse applies reverse video, used for the browser cursor.
	StyleReverse = lipgloss.NewStyle().Reverse(true)
)

// DefaultBoxWidth is the default width for TUI boxes and menus.
const DefaultBoxWidth = 100

// reworkLabel is shown in place of "pending" for items sent back for rework.
const reworkLabel = "rework"

// StatusColors returns the semantic color for each item status.
func StatusColors() map[constants.ItemStatus]lipgloss.AdaptiveColor {
	return map[constants.ItemStatus]lipgloss.AdaptiveColor{
		constants.ItemStatusPending:     ColorMuted,
		constants.ItemStatusReceived:    ColorWarning,
		constants.ItemStatusImplemented: ColorSuccess,
	}
}

// StatusIcon returns the icon for an item status.
func StatusIcon(status constants.ItemStatus) string {
	switch status {
	case constants.ItemStatusPending:
		return "○"
	case constants.ItemStatusReceived:
		return "◐"
	case constants.ItemStatusImplemented:
		return "●"
	default:
		return "?"
	}
}

// ItemStatusLabel returns the display label for an item. A pending item with
// revisions is labeled "rework".
func ItemStatusLabel(it *domain.Item) string {
	if it == nil {
		return ""
	}
	if it.NeedsRework() {
		return reworkLabel
	}
	return it.Status.String()
}

// ItemIcon returns the icon for an item, using ↺ for rework.
func ItemIcon(it *domain.Item) string {
	if it == nil {
		return "?"
	}
	if it.NeedsRework() {
		return "↺"
	}
	return StatusIcon(it.Status)
}

// ItemStyle returns the foreground style for an item's status.
func ItemStyle(it *domain.Item) lipgloss.Style {
	if it == nil || !HasColorSupport() {
		return lipgloss.NewStyle()
	}
	if it.NeedsRework() {
		return lipgloss.NewStyle().Foreground(ColorError)
	}
	color, ok := StatusColors()[it.Status]
	if !ok {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(color)
}

// TableStyles holds lipgloss styles for table rendering.
type TableStyles struct {
	Header lipgloss.Style
	Cell   lipgloss.Style
	Dim    lipgloss.Style
}

// NewTableStyles creates styles for table rendering.
func NewTableStyles() *TableStyles {
	return &TableStyles{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#DDDDDD"}),
		Cell: lipgloss.NewStyle(),
		Dim: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#888888"}),
	}
}

// OutputStyles holds common output styles.
type OutputStyles struct {
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Dim     lipgloss.Style
}

// NewOutputStyles creates common output styles using AdaptiveColor for light/dark terminal support.
func NewOutputStyles() *OutputStyles {
	return &OutputStyles{
		Success: lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true),
		Error: lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true),
		Warning: lipgloss.NewStyle().
			Foreground(ColorWarning),
		Info: lipgloss.NewStyle().
			Foreground(ColorPrimary),
		Dim: lipgloss.NewStyle().
			Foreground(ColorMuted),
	}
}

// TreeStyles holds the styles used by the tree writer and browser.
type TreeStyles struct {
	Folder lipgloss.Style
	Count  lipgloss.Style
	Guide  lipgloss.Style
	Meta   lipgloss.Style
	Cursor lipgloss.Style
}

// NewTreeStyles creates the tree styles.
func NewTreeStyles() *TreeStyles {
	return &TreeStyles{
		Folder: lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true),
		Count:  lipgloss.NewStyle().Foreground(ColorMuted),
		Guide:  lipgloss.NewStyle().Foreground(ColorMuted),
		Meta:   lipgloss.NewStyle().Foreground(ColorMuted),
		Cursor: StyleReverse,
	}
}

// CheckNoColor respects the NO_COLOR environment variable.
// Call this at the start of commands that output styled text.
func CheckNoColor() {
	if !HasColorSupport() {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// HasColorSupport returns true if the terminal supports colors.
// Returns false if NO_COLOR is set (any value including empty string) or TERM=dumb.
// This follows the NO_COLOR standard: https://no-color.org/
func HasColorSupport() bool {
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return false
	}

	if os.Getenv("TERM") == "dumb" {
		return false
	}

	return true
}
