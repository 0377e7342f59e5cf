package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mrz1836/assetrack/internal/constants"
	"github.com/mrz1836/assetrack/internal/domain"
	"github.com/mrz1836/assetrack/internal/pipeline"
	"github.com/mrz1836/assetrack/internal/render"
	"github.com/mrz1836/assetrack/internal/transition"
	"github.com/mrz1836/assetrack/internal/viewmodel"
)

// BrowserKeyHints is shown at the bottom of the browser in normal mode.
const BrowserKeyHints = "[↑↓] move  [enter] fold  [/] search  [m] mine  [c] churn  [o] sort  [1-3] status  [q] quit"

// chromeLines is the number of lines the browser uses outside the tree.
const chromeLines = 5

// Backend persists browser changes. Apply executes one mutation; Load
// returns the confirmed item list.
type Backend interface {
	Apply(ctx context.Context, m domain.Mutation) error
	Load(ctx context.Context) ([]*domain.Item, error)
}

type browserMode int

const (
	modeNormal browserMode = iota
	modeSearch
	modeJustify
)

// ItemsLoadedMsg carries a fresh item list from the backend.
type ItemsLoadedMsg struct {
	Items []*domain.Item
	Err   error
}

// MutationAppliedMsg reports the result of a backend write.
type MutationAppliedMsg struct {
	Mutation domain.Mutation
	Err      error
}

// Browser is the Bubble Tea model for interactive browsing of one project.
// All session access happens inside Update and View, on the tea event loop.
type Browser struct {
	title   string
	session *viewmodel.Session
	backend Backend
	writer  *TreeWriter
	bar     *ProgressBar

	search  textinput.Model
	justify textinput.Model
	mode    browserMode

	cursor        int
	offset        int
	width, height int
	showProgress  bool

	justifyItem string
	message     string
	err         error
	quitting    bool

	// baseCtx is stored for use in async Bubble Tea commands.
	baseCtx context.Context //nolint:containedctx // Required for Bubble Tea async commands
}

// BrowserConfig holds browser settings.
type BrowserConfig struct {
	// Title is shown in the header, usually the project name.
	Title string
	// Width caps row width. Zero follows the terminal.
	Width int
	// ShowProgress shows the completion bar.
	ShowProgress bool
}

// NewBrowser creates a Browser over session. The session should already hold
// the project's items.
func NewBrowser(ctx context.Context, session *viewmodel.Session, backend Backend, cfg BrowserConfig) *Browser {
	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "search paths and names"
	search.SetValue(session.Query().Search)

	justify := textinput.New()
	justify.Prompt = "reason: "
	justify.CharLimit = maxNoteLength

	return &Browser{
		title:        cfg.Title,
		session:      session,
		backend:      backend,
		writer:       NewTreeWriter(WithTreeWidth(cfg.Width)),
		bar:          NewProgressBar(20),
		search:       search,
		justify:      justify,
		width:        80,
		height:       24,
		showProgress: cfg.ShowProgress,
		baseCtx:      ctx,
	}
}

// Init implements tea.Model.
func (b *Browser) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (b *Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height
		b.writer.SetWidth(msg.Width)
		b.clamp()
		return b, nil

	case ItemsLoadedMsg:
		if msg.Err != nil {
			b.err = msg.Err
			return b, nil
		}
		b.session.SetItems(msg.Items)
		b.clamp()
		return b, nil

	case MutationAppliedMsg:
		if msg.Err != nil {
			b.session.Rollback(msg.Mutation)
			b.err = msg.Err
			b.clamp()
			return b, nil
		}
		b.session.Commit(msg.Mutation)
		b.err = nil
		return b, b.load()

	case tea.KeyMsg:
		switch b.mode {
		case modeSearch:
			return b.updateSearch(msg)
		case modeJustify:
			return b.updateJustify(msg)
		default:
			return b.updateNormal(msg)
		}
	}

	return b, nil
}

func (b *Browser) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	b.message = ""
	switch msg.String() {
	case "q", "ctrl+c":
		b.quitting = true
		return b, tea.Quit
	case "up", "k":
		b.move(-1)
	case "down", "j":
		b.move(1)
	case "home", "g":
		b.cursor = 0
		b.clamp()
	case "end", "G":
		b.cursor = len(b.session.Rows()) - 1
		b.clamp()
	case "enter", " ", "left", "right", "h", "l":
		if row, ok := b.Selected(); ok && row.Kind == render.KindFolderHeader {
			b.session.ToggleFolder(row.Path)
			b.clamp()
		}
	case "/":
		b.mode = modeSearch
		return b, b.search.Focus()
	case "esc":
		if b.search.Value() != "" {
			b.search.SetValue("")
			b.session.SetSearch("")
			b.clamp()
		}
	case "m":
		b.toggleFilter(pipeline.FilterMine)
	case "c":
		b.toggleFilter(pipeline.FilterHighChurn)
	case "o":
		b.cycleSort()
	case "1":
		return b, b.requestStatus(constants.ItemStatusPending)
	case "2":
		return b, b.requestStatus(constants.ItemStatusReceived)
	case "3":
		return b, b.requestStatus(constants.ItemStatusImplemented)
	}
	return b, nil
}

func (b *Browser) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		b.mode = modeNormal
		b.search.Blur()
		return b, nil
	case tea.KeyEsc:
		b.mode = modeNormal
		b.search.Blur()
		b.search.SetValue("")
		b.session.SetSearch("")
		b.clamp()
		return b, nil
	}

	var cmd tea.Cmd
	b.search, cmd = b.search.Update(msg)
	b.session.SetSearch(b.search.Value())
	b.clamp()
	return b, cmd
}

func (b *Browser) updateJustify(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		out := b.session.SubmitJustification(b.justifyItem, b.justify.Value())
		if out.Rejected {
			b.message = out.Reason
			return b, nil
		}
		b.leaveJustify()
		return b, b.execute(out)
	case tea.KeyEsc:
		b.session.CancelTransition(b.justifyItem)
		b.leaveJustify()
		b.message = "status change canceled"
		return b, nil
	}

	var cmd tea.Cmd
	b.justify, cmd = b.justify.Update(msg)
	return b, cmd
}

func (b *Browser) leaveJustify() {
	b.mode = modeNormal
	b.justify.Blur()
	b.justify.SetValue("")
	b.justifyItem = ""
}

func (b *Browser) toggleFilter(f pipeline.Filter) {
	on := b.session.ToggleFilter(f)
	if f == pipeline.FilterMine && on && b.session.Query().Identity == "" {
		b.message = "identity not set; showing everyone's items"
	}
	b.clamp()
}

func (b *Browser) cycleSort() {
	keys := pipeline.ValidSortKeys()
	current := b.session.Query().Sort
	next := keys[0]
	for i, k := range keys {
		if k == current {
			next = keys[(i+1)%len(keys)]
			break
		}
	}
	b.session.SetSort(next)
	b.message = "sort: " + next.String()
	b.clamp()
}

// requestStatus routes a status change for the selected item through its guard.
func (b *Browser) requestStatus(to constants.ItemStatus) tea.Cmd {
	row, ok := b.Selected()
	if !ok || row.Kind != render.KindItemRow || row.Item == nil {
		return nil
	}

	out := b.session.RequestStatus(row.Item.ID, to)
	switch {
	case out.Rejected:
		b.message = out.Reason
		return nil
	case out.Prompt != nil:
		b.mode = modeJustify
		b.justifyItem = row.Item.ID
		b.message = JustificationTitle(*out.Prompt)
		return b.justify.Focus()
	default:
		return b.execute(out)
	}
}

// execute applies an outcome's command optimistically and persists it.
func (b *Browser) execute(out transition.Outcome) tea.Cmd {
	if out.Command == nil {
		return nil
	}
	m := *out.Command
	b.session.ApplyOptimistic(m)
	b.clamp()

	ctx, backend := b.baseCtx, b.backend
	return func() tea.Msg {
		return MutationAppliedMsg{Mutation: m, Err: backend.Apply(ctx, m)}
	}
}

func (b *Browser) load() tea.Cmd {
	ctx, backend := b.baseCtx, b.backend
	return func() tea.Msg {
		items, err := backend.Load(ctx)
		return ItemsLoadedMsg{Items: items, Err: err}
	}
}

func (b *Browser) move(delta int) {
	b.cursor += delta
	b.clamp()
}

// clamp keeps the cursor on a visible row and scrolls the window to it.
func (b *Browser) clamp() {
	n := len(b.session.Rows())
	if b.cursor >= n {
		b.cursor = n - 1
	}
	if b.cursor < 0 {
		b.cursor = 0
	}

	visible := b.visibleRows()
	if b.cursor < b.offset {
		b.offset = b.cursor
	}
	if b.cursor >= b.offset+visible {
		b.offset = b.cursor - visible + 1
	}
	if b.offset < 0 {
		b.offset = 0
	}
}

func (b *Browser) visibleRows() int {
	v := b.height - chromeLines
	if b.showProgress {
		v--
	}
	if v < 1 {
		return 1
	}
	return v
}

// Selected returns the row under the cursor.
func (b *Browser) Selected() (render.Row, bool) {
	rows := b.session.Rows()
	if b.cursor < 0 || b.cursor >= len(rows) {
		return render.Row{}, false
	}
	return rows[b.cursor], true
}

// Cursor returns the cursor index into the visible rows.
func (b *Browser) Cursor() int {
	return b.cursor
}

// Message returns the status line text.
func (b *Browser) Message() string {
	return b.message
}

// Err returns the last backend error.
func (b *Browser) Err() error {
	return b.err
}

// IsQuitting reports whether the user asked to quit.
func (b *Browser) IsQuitting() bool {
	return b.quitting
}

// View implements tea.Model.
func (b *Browser) View() string {
	if b.quitting {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(b.header())
	sb.WriteString("\n")

	rows := b.session.Rows()
	if len(rows) == 0 {
		sb.WriteString(StyleDim.Render("  no items match"))
		sb.WriteString("\n")
	}
	end := b.offset + b.visibleRows()
	if end > len(rows) {
		end = len(rows)
	}
	for i := b.offset; i < end; i++ {
		line := b.writer.FormatRow(rows[i])
		if i == b.cursor {
			line = NewTreeStyles().Cursor.Render(line)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	if b.showProgress {
		sb.WriteString(b.bar.RenderCompletion(CountCompletion(b.session.Items())))
		sb.WriteString("\n")
	}

	switch {
	case b.err != nil:
		sb.WriteString(NewOutputStyles().Error.Render("✗ " + b.err.Error()))
	case b.message != "":
		sb.WriteString(NewOutputStyles().Info.Render(b.message))
	}
	sb.WriteString("\n")

	switch b.mode {
	case modeSearch:
		sb.WriteString(b.search.View())
	case modeJustify:
		sb.WriteString(b.justify.View())
	default:
		sb.WriteString(StyleDim.Render(BrowserKeyHints))
	}
	return sb.String()
}

func (b *Browser) header() string {
	q := b.session.Query()
	parts := []string{StyleBold.Render(b.title)}
	if q.Search != "" {
		parts = append(parts, fmt.Sprintf("search: %q", q.Search))
	}
	if q.Filters.Len() > 0 {
		names := make([]string, 0, q.Filters.Len())
		for _, f := range q.Filters.List() {
			names = append(names, string(f))
		}
		parts = append(parts, "filters: "+strings.Join(names, ","))
	}
	sortName := q.Sort.String()
	if sortName == "" {
		sortName = constants.SortFolder
	}
	parts = append(parts, "sort: "+sortName)
	return strings.Join(parts, "  ")
}
