package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/mrz1836/assetrack/internal/clock"
	"github.com/mrz1836/assetrack/internal/domain"
	"github.com/mrz1836/assetrack/internal/render"
)

// Tree drawing glyphs.
const (
	guideContinue = "│  "
	guideBlank    = "   "
	branchMid     = "├─ "
	branchLast    = "└─ "
	folderOpen    = "▾"
	folderClosed  = "▸"
	ellipsis      = "…"
)

// TreeWriter formats rendered view rows as an indented tree.
type TreeWriter struct {
	width  int
	clock  clock.Clock
	styles *TreeStyles
}

// TreeOption configures a TreeWriter.
type TreeOption func(*TreeWriter)

// WithTreeWidth caps each line at width terminal cells. Zero disables truncation.
func WithTreeWidth(width int) TreeOption {
	return func(w *TreeWriter) {
		w.width = width
	}
}

// WithTreeClock sets the clock used for item ages.
func WithTreeClock(c clock.Clock) TreeOption {
	return func(w *TreeWriter) {
		w.clock = c
	}
}

// NewTreeWriter creates a TreeWriter.
func NewTreeWriter(opts ...TreeOption) *TreeWriter {
	w := &TreeWriter{
		clock:  DefaultClock,
		styles: NewTreeStyles(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Width returns the line width cap.
func (w *TreeWriter) Width() int {
	return w.width
}

// SetWidth changes the line width cap.
func (w *TreeWriter) SetWidth(width int) {
	w.width = width
}

// Write prints every visible row below root, one per line.
func (w *TreeWriter) Write(out io.Writer, root *render.View) error {
	for _, row := range render.Flatten(root) {
		if _, err := fmt.Fprintln(out, w.FormatRow(row)); err != nil {
			return err
		}
	}
	return nil
}

// FormatRow formats a single row: guides, branch, then the folder header or
// item line. Lines wider than the cap lose the item metadata first, then
// have the name truncated with an ellipsis.
func (w *TreeWriter) FormatRow(row render.Row) string {
	prefix := w.prefix(row)

	if row.Kind == render.KindFolderHeader {
		glyph := folderOpen
		if !row.Expanded {
			glyph = folderClosed
		}
		return w.compose(prefix, glyph+" "+row.Name, fmt.Sprintf("(%d)", row.Count),
			w.styles.Folder.Render, w.styles.Count.Render)
	}

	it := row.Item
	style := ItemStyle(it)
	return w.compose(prefix, ItemIcon(it)+" "+row.Name, w.itemMeta(it),
		style.Render, w.styles.Meta.Render)
}

func (w *TreeWriter) prefix(row render.Row) string {
	var b strings.Builder
	for _, g := range row.Guides {
		if g {
			b.WriteString(guideContinue)
		} else {
			b.WriteString(guideBlank)
		}
	}
	if row.Last {
		b.WriteString(branchLast)
	} else {
		b.WriteString(branchMid)
	}
	return b.String()
}

func (w *TreeWriter) itemMeta(it *domain.Item) string {
	if it == nil {
		return ""
	}
	parts := []string{ItemStatusLabel(it)}
	if a := it.AssigneeValue(); a != "" {
		parts = append(parts, "@"+a)
	}
	if it.RevisionCount > 0 {
		parts = append(parts, fmt.Sprintf("r%d", it.RevisionCount))
	}
	if age := ShortAge(it.UpdatedAt, w.clock); age != "" {
		parts = append(parts, age)
	}
	return strings.Join(parts, " · ")
}

func (w *TreeWriter) compose(prefix, body, meta string, styleBody, styleMeta func(...string) string) string {
	guides := w.styles.Guide.Render(prefix)
	if w.width <= 0 {
		return joinNonEmpty(guides+styleBody(body), styleMeta(meta), meta)
	}

	prefixWidth := runewidth.StringWidth(prefix)
	avail := w.width - prefixWidth
	if avail <= 0 {
		return runewidth.Truncate(prefix, w.width, "")
	}

	full := runewidth.StringWidth(body)
	if meta != "" {
		full += 1 + runewidth.StringWidth(meta)
	}
	if full <= avail {
		return joinNonEmpty(guides+styleBody(body), styleMeta(meta), meta)
	}
	if runewidth.StringWidth(body) <= avail {
		return guides + styleBody(body)
	}
	return guides + styleBody(runewidth.Truncate(body, avail, ellipsis))
}

func joinNonEmpty(head, styledTail, plainTail string) string {
	if plainTail == "" {
		return head
	}
	return head + " " + styledTail
}
