package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"

	"github.com/mrz1836/assetrack/internal/constants"
	"github.com/mrz1836/assetrack/internal/domain"
)

// ProgressBar wraps the bubbles progress bar with assetrack colors.
// Supports adaptive width and NO_COLOR compatibility.
type ProgressBar struct {
	bar   progress.Model
	width int
}

// NewProgressBar creates a static progress bar of the given width.
// Uses a green gradient when colors are available, solid gray otherwise.
func NewProgressBar(width int) *ProgressBar {
	var bar progress.Model

	if HasColorSupport() {
		bar = progress.New(
			progress.WithWidth(width),
			progress.WithScaledGradient("#008700", "#00FF87"),
			progress.WithoutPercentage(),
		)
	} else {
		bar = progress.New(
			progress.WithWidth(width),
			progress.WithSolidFill("#808080"),
			progress.WithoutPercentage(),
		)
	}

	return &ProgressBar{
		bar:   bar,
		width: width,
	}
}

// Render returns the bar for percent, clamped to 0.0-1.0. It uses ViewAs,
// so there is no animation.
func (pb *ProgressBar) Render(percent float64) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 1 {
		percent = 1
	}
	return pb.bar.ViewAs(percent)
}

// Width returns the current width of the progress bar.
func (pb *ProgressBar) Width() int {
	return pb.width
}

// SetWidth updates the progress bar width.
func (pb *ProgressBar) SetWidth(w int) {
	pb.width = w
	pb.bar.Width = w
}

// Completion counts items by status.
type Completion struct {
	Total       int `json:"total"`
	Pending     int `json:"pending"`
	Received    int `json:"received"`
	Implemented int `json:"implemented"`
	Rework      int `json:"rework"`
}

// CountCompletion tallies items. Rework items are also counted as pending.
func CountCompletion(items []*domain.Item) Completion {
	var c Completion
	for _, it := range items {
		if it == nil {
			continue
		}
		c.Total++
		switch it.Status {
		case constants.ItemStatusPending:
			c.Pending++
			if it.NeedsRework() {
				c.Rework++
			}
		case constants.ItemStatusReceived:
			c.Received++
		case constants.ItemStatusImplemented:
			c.Implemented++
		}
	}
	return c
}

// Percent returns the implemented share, or 0 for an empty project.
func (c Completion) Percent() float64 {
	if c.Total == 0 {
		return 0
	}
	return float64(c.Implemented) / float64(c.Total)
}

// FormatCompletion formats the counts as "12/30 implemented · 8 received · 2 rework".
func FormatCompletion(c Completion) string {
	s := fmt.Sprintf("%d/%d implemented", c.Implemented, c.Total)
	if c.Received > 0 {
		s += fmt.Sprintf(" · %d received", c.Received)
	}
	if c.Rework > 0 {
		s += fmt.Sprintf(" · %d rework", c.Rework)
	}
	return s
}

// RenderCompletion renders the bar followed by the counts.
func (pb *ProgressBar) RenderCompletion(c Completion) string {
	return pb.Render(c.Percent()) + "  " + FormatCompletion(c)
}
