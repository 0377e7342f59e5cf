package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/assetrack/internal/constants"
	"github.com/mrz1836/assetrack/internal/domain"
	"github.com/mrz1836/assetrack/internal/render"
	"github.com/mrz1836/assetrack/internal/viewmodel"
)

type fakeBackend struct {
	applied  []domain.Mutation
	applyErr error
	items    []*domain.Item
}

func (f *fakeBackend) Apply(_ context.Context, m domain.Mutation) error {
	if f.applyErr != nil {
		return f.applyErr
	}
	f.applied = append(f.applied, m)
	return nil
}

func (f *fakeBackend) Load(_ context.Context) ([]*domain.Item, error) {
	return f.items, nil
}

func newTestBrowser(t *testing.T, backend *fakeBackend) (*Browser, *viewmodel.Session) {
	t.Helper()
	s := viewmodel.New()
	s.SetItems(sampleItems())
	b := NewBrowser(context.Background(), s, backend, BrowserConfig{Title: "website"})
	_, _ = b.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return b, s
}

func keys(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(b *Browser, msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, m := range msgs {
		_, cmd = b.Update(m)
	}
	return cmd
}

func selectedPath(t *testing.T, b *Browser) string {
	t.Helper()
	row, ok := b.Selected()
	require.True(t, ok)
	return row.Path
}

func TestBrowser_Navigation(t *testing.T) {
	t.Parallel()

	b, _ := newTestBrowser(t, &fakeBackend{})
	assert.Equal(t, "readme.txt", selectedPath(t, b))

	press(b, keys("j"), tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, "chars/hero.png", selectedPath(t, b))

	press(b, keys("G"))
	assert.Equal(t, "chars/rigs/hero_rig.ma", selectedPath(t, b))

	press(b, keys("j"))
	assert.Equal(t, 4, b.Cursor(), "cursor stops at the last row")

	press(b, keys("g"), keys("k"))
	assert.Equal(t, 0, b.Cursor())
}

func TestBrowser_ToggleFolder(t *testing.T) {
	t.Parallel()

	b, s := newTestBrowser(t, &fakeBackend{})
	press(b, keys("j"))
	require.Equal(t, "chars", selectedPath(t, b))

	press(b, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Len(t, s.Rows(), 2)
	assert.False(t, s.CollapseState().IsExpanded("chars"))

	press(b, keys("l"))
	assert.Len(t, s.Rows(), 5)
}

func TestBrowser_Search(t *testing.T) {
	t.Parallel()

	b, s := newTestBrowser(t, &fakeBackend{})

	press(b, keys("/"), keys("hero"))
	assert.Equal(t, "hero", s.Query().Search)
	assert.Len(t, s.Rows(), 4)
	assert.Contains(t, plain(b.View()), `search: "hero"`)

	press(b, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Empty(t, s.Query().Search)
	assert.Len(t, s.Rows(), 5)
}

func TestBrowser_FiltersAndSort(t *testing.T) {
	t.Parallel()

	b, s := newTestBrowser(t, &fakeBackend{})

	press(b, keys("m"))
	assert.Equal(t, "identity not set; showing everyone's items", b.Message())
	assert.Len(t, s.Rows(), 5)

	press(b, keys("c"))
	assert.Equal(t, 2, s.Query().Filters.Len())
	assert.Empty(t, s.Rows(), "no item has churned")
	assert.Contains(t, plain(b.View()), "no items match")

	press(b, keys("o"))
	assert.True(t, strings.HasPrefix(b.Message(), "sort: "))
	assert.True(t, s.Query().Sort.IsValid())
}

func TestBrowser_ForwardStatusChange(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{}
	b, s := newTestBrowser(t, backend)
	press(b, keys("j"), keys("j"))
	require.Equal(t, "chars/hero.png", selectedPath(t, b))

	cmd := press(b, keys("3"))
	require.NotNil(t, cmd)

	row, _ := b.Selected()
	assert.Equal(t, constants.ItemStatusImplemented, row.Item.Status, "view updates before the write")
	assert.True(t, s.Dirty())

	msg := cmd()
	applied, ok := msg.(MutationAppliedMsg)
	require.True(t, ok)
	require.NoError(t, applied.Err)
	require.Len(t, backend.applied, 1)
	assert.Equal(t, domain.MutationSetStatus, backend.applied[0].Kind)

	backend.items = s.Items()
	reload := press(b, applied)
	assert.False(t, s.Dirty())
	require.NotNil(t, reload)
	press(b, reload())
	assert.NoError(t, b.Err())
}

func TestBrowser_BackwardNeedsJustification(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{}
	b, s := newTestBrowser(t, backend)
	require.Equal(t, "readme.txt", selectedPath(t, b))

	press(b, keys("1"))
	assert.Equal(t, "Why does readme.txt go back from implemented to pending?", b.Message())
	assert.Equal(t, 1, s.PendingCount())

	press(b, keys("too short"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.NotEmpty(t, b.Message())
	assert.Equal(t, 1, s.PendingCount(), "short reason keeps the request open")

	cmd := press(b, keys(" - texture seams"), tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Zero(t, s.PendingCount())

	msg := cmd()
	press(b, msg)
	require.Len(t, backend.applied, 1)
	m := backend.applied[0]
	assert.Equal(t, domain.MutationSetStatusWithJustification, m.Kind)
	require.NotNil(t, m.Note)
	assert.Equal(t, "too short - texture seams", *m.Note)
}

func TestBrowser_CancelJustification(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{}
	b, s := newTestBrowser(t, backend)

	press(b, keys("1"), tea.KeyMsg{Type: tea.KeyEsc})
	assert.Zero(t, s.PendingCount())
	assert.Equal(t, "status change canceled", b.Message())
	assert.Empty(t, backend.applied)

	row, _ := b.Selected()
	assert.Equal(t, constants.ItemStatusImplemented, row.Item.Status)
}

func TestBrowser_RollbackOnFailedWrite(t *testing.T) {
	t.Parallel()

	errDisk := errors.New("disk full")
	b, s := newTestBrowser(t, &fakeBackend{applyErr: errDisk})
	press(b, keys("j"), keys("j"))

	cmd := press(b, keys("3"))
	require.NotNil(t, cmd)
	press(b, cmd())

	require.ErrorIs(t, b.Err(), errDisk)
	assert.False(t, s.Dirty())
	row, _ := b.Selected()
	assert.Equal(t, constants.ItemStatusReceived, row.Item.Status)
	assert.Contains(t, plain(b.View()), "✗ disk full")
}

func TestBrowser_StatusKeysIgnoreFolders(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{}
	b, _ := newTestBrowser(t, backend)
	press(b, keys("j"))
	row, _ := b.Selected()
	require.Equal(t, render.KindFolderHeader, row.Kind)

	assert.Nil(t, press(b, keys("2")))
	assert.Empty(t, backend.applied)
}

func TestBrowser_Quit(t *testing.T) {
	t.Parallel()

	b, _ := newTestBrowser(t, &fakeBackend{})
	cmd := press(b, keys("q"))
	require.NotNil(t, cmd)
	assert.True(t, b.IsQuitting())
	assert.Empty(t, b.View())
}

func TestBrowser_ViewShowsHeaderAndHints(t *testing.T) {
	t.Parallel()

	b, _ := newTestBrowser(t, &fakeBackend{})
	view := plain(b.View())
	assert.Contains(t, view, "website")
	assert.Contains(t, view, "sort: folder")
	assert.Contains(t, view, "readme.txt")
	assert.Contains(t, view, BrowserKeyHints)
}
