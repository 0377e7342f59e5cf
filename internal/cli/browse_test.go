package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/assetrack/internal/constants"
	"github.com/mrz1836/assetrack/internal/domain"
	"github.com/mrz1836/assetrack/internal/pipeline"
	"github.com/mrz1836/assetrack/internal/tui"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// scriptedRunner drives the browser with drive instead of a terminal. Commands
// returned by Update run synchronously and their messages are fed back.
func scriptedRunner(t *testing.T, drive func(b *tui.Browser, send func(tea.Msg))) programRunner {
	t.Helper()
	return func(_ context.Context, model tea.Model) (tea.Model, error) {
		b, ok := model.(*tui.Browser)
		require.True(t, ok)

		var send func(tea.Msg)
		send = func(msg tea.Msg) {
			_, cmd := b.Update(msg)
			if cmd == nil {
				return
			}
			if next := cmd(); next != nil {
				if _, quit := next.(tea.QuitMsg); quit {
					return
				}
				send(next)
			}
		}

		send(tea.WindowSizeMsg{Width: 100, Height: 30})
		drive(b, send)
		return b, nil
	}
}

// selectPath moves the cursor down until the row at path is selected.
func selectPath(t *testing.T, b *tui.Browser, send func(tea.Msg), path string) {
	t.Helper()
	for range 20 {
		if row, ok := b.Selected(); ok && row.Path == path {
			return
		}
		send(runeKey("j"))
	}
	t.Fatalf("row %s not found", path)
}

func TestRunBrowse_SavesFolderState(t *testing.T) {
	t.Parallel()

	ec := newTestContext(t, OutputText)
	seedProject(t, ec)

	run := scriptedRunner(t, func(b *tui.Browser, send func(tea.Msg)) {
		selectPath(t, b, send, "web/img")
		send(tea.KeyMsg{Type: tea.KeyEnter})
		send(runeKey("q"))
	})

	var buf bytes.Buffer
	require.NoError(t, runBrowse(context.Background(), ec, &buf, testProject, run))
	assert.Empty(t, buf.String())

	state, err := ec.Store.LoadViewState(context.Background(), testProject)
	require.NoError(t, err)
	assert.Equal(t, []string{"web/img"}, state.Collapsed())
}

func TestRunBrowse_StatusChangePersists(t *testing.T) {
	t.Parallel()

	ec := newTestContext(t, OutputText)
	seedProject(t, ec)

	run := scriptedRunner(t, func(b *tui.Browser, send func(tea.Msg)) {
		selectPath(t, b, send, "web/css/site.css")
		send(runeKey("2"))
		send(runeKey("q"))
	})

	var buf bytes.Buffer
	require.NoError(t, runBrowse(context.Background(), ec, &buf, testProject, run))

	it := itemAt(t, ec, "web/css/site.css")
	assert.Equal(t, constants.ItemStatusReceived, it.Status)

	history, err := ec.Store.History(context.Background(), testProject, it.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, testIdentity, history[0].Actor)
}

func TestRunBrowse_RunnerError(t *testing.T) {
	t.Parallel()

	ec := newTestContext(t, OutputText)
	seedProject(t, ec)

	errBoom := errors.New("no tty")
	run := func(context.Context, tea.Model) (tea.Model, error) { return nil, errBoom }

	var buf bytes.Buffer
	err := runBrowse(context.Background(), ec, &buf, testProject, run)
	require.ErrorIs(t, err, errBoom)
	assert.Contains(t, err.Error(), "browser failed")
}

func TestRunBrowse_UnknownProject(t *testing.T) {
	t.Parallel()

	ec := newTestContext(t, OutputText)
	run := func(context.Context, tea.Model) (tea.Model, error) {
		t.Fatal("runner must not start")
		return nil, nil
	}

	var buf bytes.Buffer
	require.Error(t, runBrowse(context.Background(), ec, &buf, "missing", run))
}

func TestStoreBackend(t *testing.T) {
	t.Parallel()

	ec := newTestContext(t, OutputText)
	items := seedProject(t, ec)

	backend := &storeBackend{store: ec.Store, project: testProject, actor: "sam@studio.example"}
	require.NoError(t, backend.Apply(context.Background(), domain.SetStatus(items[0].ID, constants.ItemStatusReceived, nil)))

	loaded, err := backend.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, loaded, len(items))
	assert.Equal(t, constants.ItemStatusReceived, loaded[0].Status)

	err = backend.Apply(context.Background(), domain.SetStatus(items[0].ID, constants.ItemStatusPending, nil))
	require.Error(t, err, "backward moves need a justification")
}

func TestFinishBrowse_ReportsUnsavedChange(t *testing.T) {
	t.Parallel()

	ec := newTestContext(t, OutputText)
	items := seedProject(t, ec)

	s, err := openSession(context.Background(), ec, testProject, pipeline.Query{})
	require.NoError(t, err)
	b := tui.NewBrowser(context.Background(), s, &storeBackend{store: ec.Store, project: testProject, actor: ec.Actor()}, tui.BrowserConfig{})
	_, _ = b.Update(tui.MutationAppliedMsg{
		Mutation: domain.SetStatus(items[0].ID, constants.ItemStatusReceived, nil),
		Err:      errors.New("disk full"),
	})

	var buf bytes.Buffer
	require.NoError(t, finishBrowse(context.Background(), ec, &buf, testProject, s, b))
	assert.Contains(t, plain(buf.String()), "last change was not saved: disk full")

	state, err := ec.Store.LoadViewState(context.Background(), testProject)
	require.NoError(t, err)
	assert.Empty(t, state.Collapsed())
}
