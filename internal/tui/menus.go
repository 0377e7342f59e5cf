package tui

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/mrz1836/assetrack/internal/constants"
	atlaserrors "github.com/mrz1836/assetrack/internal/errors"
	"github.com/mrz1836/assetrack/internal/transition"
)

// Terminal layout constants.
const (
	// TerminalEdgeMargin is the number of characters to leave between
	// menu content and the terminal edge.
	TerminalEdgeMargin = 4

	// MinMenuWidth is the minimum usable width for menu content.
	MinMenuWidth = 40

	// maxNoteLength caps justification and note prompts.
	maxNoteLength = 2000
)

// ErrMenuCanceled is returned when the user cancels a menu with q or Escape.
var ErrMenuCanceled = atlaserrors.ErrMenuCanceled

// Option represents a selectable menu option.
type Option struct {
	// Label is the display text shown to the user.
	Label string
	// Description is optional help text shown after the label.
	Description string
	// Value is the value returned when this option is selected.
	Value string
}

// MenuConfig holds configuration for menu components.
type MenuConfig struct {
	// Width is the maximum width for the menu. If 0, adapts to terminal width.
	Width int
	// Accessible enables accessible mode for screen readers.
	Accessible bool
	// ShowKeyHints controls whether key hints are displayed.
	ShowKeyHints bool
}

// MenuConfigOption is a functional option for configuring MenuConfig.
type MenuConfigOption func(*MenuConfig)

// WithMenuWidth sets the menu width.
func WithMenuWidth(width int) MenuConfigOption {
	return func(c *MenuConfig) {
		c.Width = width
	}
}

// WithMenuAccessible enables or disables accessible mode.
func WithMenuAccessible(enabled bool) MenuConfigOption {
	return func(c *MenuConfig) {
		c.Accessible = enabled
	}
}

// NewMenuConfig creates a MenuConfig. Accessible mode follows the ACCESSIBLE
// environment variable.
func NewMenuConfig(opts ...MenuConfigOption) *MenuConfig {
	_, accessible := os.LookupEnv("ACCESSIBLE")

	c := &MenuConfig{
		Width:        DefaultBoxWidth,
		Accessible:   accessible,
		ShowKeyHints: true,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// IsInteractive reports whether stdin is a terminal that can answer prompts.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// adaptWidth returns a menu width that fits the terminal without exceeding maxWidth.
func adaptWidth(maxWidth int) int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		if maxWidth <= 0 {
			return DefaultBoxWidth
		}
		return maxWidth
	}

	availableWidth := width - TerminalEdgeMargin

	if maxWidth > 0 && maxWidth < availableWidth {
		return maxWidth
	}

	if availableWidth < MinMenuWidth {
		return MinMenuWidth
	}

	return availableWidth
}

// runFormWithConfig creates and runs a single-field form. Without a terminal
// on stdin it returns ErrMenuCanceled instead of blocking.
func runFormWithConfig(field huh.Field, cfg *MenuConfig, errorContext string) error {
	if !IsInteractive() {
		return ErrMenuCanceled
	}

	CheckNoColor()

	form := huh.NewForm(huh.NewGroup(field)).
		WithTheme(AssetrackTheme()).
		WithWidth(adaptWidth(cfg.Width)).
		WithAccessible(cfg.Accessible).
		WithShowHelp(cfg.ShowKeyHints)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrMenuCanceled
		}
		return fmt.Errorf("%s: %w", errorContext, err)
	}

	return nil
}

// AssetrackTheme returns a Huh theme mapped onto the semantic colors.
func AssetrackTheme() *huh.Theme {
	CheckNoColor()

	t := huh.ThemeBase()

	t.Focused.Base = t.Focused.Base.BorderForeground(ColorPrimary)
	t.Focused.Title = t.Focused.Title.Foreground(ColorPrimary)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(ColorPrimary)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(ColorPrimary)
	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(ColorPrimary)

	t.Focused.SelectedPrefix = t.Focused.SelectedPrefix.Foreground(ColorSuccess)

	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(ColorError)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(ColorError)

	t.Blurred.Base = t.Blurred.Base.BorderForeground(ColorMuted)
	t.Blurred.Title = t.Blurred.Title.Foreground(ColorMuted)
	t.Focused.Description = t.Focused.Description.Foreground(ColorMuted)
	t.Help.Ellipsis = t.Help.Ellipsis.Foreground(ColorMuted)

	return t
}

// Select presents a single-selection menu and returns the selected value.
func Select(title string, options []Option) (string, error) {
	return SelectWithConfig(title, options, NewMenuConfig())
}

// SelectWithConfig presents a single-selection menu with custom configuration.
func SelectWithConfig(title string, options []Option, cfg *MenuConfig) (string, error) {
	if len(options) == 0 {
		return "", atlaserrors.ErrNoMenuOptions
	}

	huhOptions := make([]huh.Option[string], len(options))
	for i, opt := range options {
		label := opt.Label
		if opt.Description != "" {
			label = opt.Label + " - " + opt.Description
		}
		huhOptions[i] = huh.NewOption(label, opt.Value)
	}

	var selected string

	selectField := huh.NewSelect[string]().
		Title(title).
		Options(huhOptions...).
		Value(&selected)

	if err := runFormWithConfig(selectField, cfg, "select menu failed"); err != nil {
		return "", err
	}

	return selected, nil
}

// Confirm presents a yes/no confirmation prompt.
func Confirm(message string, defaultYes bool) (bool, error) {
	confirmed := defaultYes

	confirmField := huh.NewConfirm().
		Title(message).
		Affirmative("Yes").
		Negative("No").
		Value(&confirmed)

	if err := runFormWithConfig(confirmField, NewMenuConfig(), "confirm prompt failed"); err != nil {
		return false, err
	}

	return confirmed, nil
}

// TextArea presents a multi-line text prompt prefilled with initial.
func TextArea(prompt, initial string) (string, error) {
	value := initial

	textField := huh.NewText().
		Title(prompt).
		CharLimit(maxNoteLength).
		Value(&value)

	if err := runFormWithConfig(textField, NewMenuConfig(), "text prompt failed"); err != nil {
		return "", err
	}

	return value, nil
}

// StatusOptions lists the item statuses as menu options, marking current.
func StatusOptions(current constants.ItemStatus) []Option {
	statuses := constants.ValidItemStatuses()
	options := make([]Option, 0, len(statuses))
	for _, s := range statuses {
		opt := Option{Label: StatusIcon(s) + " " + s.String(), Value: s.String()}
		if s == current {
			opt.Description = "current"
		} else if transition.IsBackward(current, s) {
			opt.Description = "needs a reason"
		}
		options = append(options, opt)
	}
	return options
}

// SelectStatus asks for a new status for assetName.
func SelectStatus(assetName string, current constants.ItemStatus) (constants.ItemStatus, error) {
	value, err := Select("New status for "+assetName, StatusOptions(current))
	if err != nil {
		return "", err
	}
	return transition.ParseStatus(value)
}

// JustificationTitle is the prompt title for a backward transition.
func JustificationTitle(p transition.Prompt) string {
	return fmt.Sprintf("Why does %s go back from %s to %s?", p.AssetName, p.From, p.To)
}

// PromptJustification asks why an item is moving back. The field rejects
// answers shorter than the minimum justification length before submitting.
func PromptJustification(p transition.Prompt) (string, error) {
	var value string

	textField := huh.NewText().
		Title(JustificationTitle(p)).
		Description(fmt.Sprintf("At least %d characters. This replaces the item's note.", constants.MinJustificationLength)).
		CharLimit(maxNoteLength).
		Validate(transition.ValidateJustification).
		Value(&value)

	if err := runFormWithConfig(textField, NewMenuConfig(), "justification prompt failed"); err != nil {
		return "", err
	}

	return value, nil
}
