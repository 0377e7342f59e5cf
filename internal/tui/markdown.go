package tui

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/glamour"

	"github.com/mrz1836/assetrack/internal/domain"
)

// markdownWrap is the word-wrap width for rendered item details.
const markdownWrap = 80

var (
	glamourRenderer     *glamour.TermRenderer //nolint:gochecknoglobals // cached renderer for performance
	glamourRendererOnce sync.Once             //nolint:gochecknoglobals // sync.Once for renderer initialization
)

// getGlamourRenderer returns a cached glamour renderer, or nil if one could
// not be created.
func getGlamourRenderer() *glamour.TermRenderer {
	glamourRendererOnce.Do(func() {
		opts := []glamour.TermRendererOption{glamour.WithWordWrap(markdownWrap)}
		if HasColorSupport() {
			opts = append(opts, glamour.WithAutoStyle())
		} else {
			opts = append(opts, glamour.WithStandardStyle("notty"))
		}
		r, err := glamour.NewTermRenderer(opts...)
		if err == nil {
			glamourRenderer = r
		}
	})
	return glamourRenderer
}

// RenderMarkdown renders md for the terminal. If rendering fails the source
// is returned unchanged.
func RenderMarkdown(md string) string {
	r := getGlamourRenderer()
	if r == nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}

// ItemMarkdown describes an item and its status history as markdown.
// History is listed newest first.
func ItemMarkdown(it *domain.Item, history []*domain.HistoryEntry) string {
	if it == nil {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", escapeMarkdown(it.Name))
	fmt.Fprintf(&b, "`%s`\n\n", it.Path)

	fmt.Fprintf(&b, "| | |\n|---|---|\n")
	fmt.Fprintf(&b, "| Status | %s %s |\n", ItemIcon(it), ItemStatusLabel(it))
	if a := it.AssigneeValue(); a != "" {
		fmt.Fprintf(&b, "| Assignee | %s |\n", escapeMarkdown(a))
	}
	fmt.Fprintf(&b, "| Revisions | %d |\n", it.RevisionCount)
	fmt.Fprintf(&b, "| Created | %s |\n", formatStamp(it.CreatedAt))
	fmt.Fprintf(&b, "| Updated | %s |\n", formatStamp(it.UpdatedAt))
	if it.ReceivedAt != nil {
		fmt.Fprintf(&b, "| Received | %s |\n", formatStamp(*it.ReceivedAt))
	}
	if it.ImplementedAt != nil {
		fmt.Fprintf(&b, "| Implemented | %s |\n", formatStamp(*it.ImplementedAt))
	}
	fmt.Fprintf(&b, "| ID | `%s` |\n", it.ID)

	if strings.TrimSpace(it.Note) != "" {
		b.WriteString("\n## Note\n\n")
		for _, line := range strings.Split(strings.TrimSpace(it.Note), "\n") {
			fmt.Fprintf(&b, "> %s\n", line)
		}
	}

	if len(history) > 0 {
		b.WriteString("\n## History\n\n")
		writeHistory(&b, history, false)
	}

	return b.String()
}

// HistoryMarkdown lists audit entries under title, newest first, each with
// the path of the item it belongs to.
func HistoryMarkdown(title string, history []*domain.HistoryEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", escapeMarkdown(title))
	if len(history) == 0 {
		b.WriteString("_No status changes yet._\n")
		return b.String()
	}
	writeHistory(&b, history, true)
	return b.String()
}

// writeHistory writes one list entry per history row, newest first.
// Justifications follow on an indented line.
func writeHistory(b *strings.Builder, history []*domain.HistoryEntry, withPath bool) {
	for i := len(history) - 1; i >= 0; i-- {
		h := history[i]
		if h == nil {
			continue
		}
		b.WriteString("- ")
		if withPath {
			fmt.Fprintf(b, "`%s` ", h.ItemPath)
		}
		fmt.Fprintf(b, "**%s → %s** by %s, %s\n",
			h.OldStatus, h.NewStatus, escapeMarkdown(h.Actor), formatStamp(h.CreatedAt))
		if h.Comment != "" {
			fmt.Fprintf(b, "  %s\n", escapeMarkdown(h.Comment))
		}
	}
}

func formatStamp(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format("2006-01-02 15:04 UTC")
}

// escapeMarkdown escapes characters that would change table or emphasis layout.
func escapeMarkdown(s string) string {
	r := strings.NewReplacer("|", `\|`, "*", `\*`, "_", `\_`, "`", "\\`")
	return r.Replace(s)
}
