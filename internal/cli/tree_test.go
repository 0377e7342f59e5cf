package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	atlaserrors "github.com/mrz1836/assetrack/internal/errors"
	"github.com/mrz1836/assetrack/internal/pipeline"
	"github.com/mrz1836/assetrack/internal/render"
)

func TestRunTree(t *testing.T) {
	t.Parallel()

	ec := newTestContext(t, OutputText)
	seedProject(t, ec)
	setStatus(t, ec, "readme.txt", "implemented")

	var buf bytes.Buffer
	require.NoError(t, runTree(context.Background(), ec, &buf, testProject, &TreeFlags{Progress: true}))

	out := plain(buf.String())
	assert.Contains(t, out, "═══ website · 4 items · sorted by folder ═══")
	assert.Contains(t, out, "readme.txt implemented")
	assert.Contains(t, out, "▾ web (3)")
	assert.Contains(t, out, "▾ img (2)")
	assert.Contains(t, out, "hero.png pending")
	assert.Contains(t, out, "1/4 implemented")
}

func TestRunTree_NoProgress(t *testing.T) {
	t.Parallel()

	ec := newTestContext(t, OutputText)
	seedProject(t, ec)

	var buf bytes.Buffer
	require.NoError(t, runTree(context.Background(), ec, &buf, testProject, &TreeFlags{}))
	assert.NotContains(t, plain(buf.String()), "0/4")
}

func TestRunTree_Search(t *testing.T) {
	t.Parallel()

	ec := newTestContext(t, OutputText)
	seedProject(t, ec)

	var buf bytes.Buffer
	require.NoError(t, runTree(context.Background(), ec, &buf, testProject, &TreeFlags{Search: "HERO"}))

	out := plain(buf.String())
	assert.Contains(t, out, "hero.png")
	assert.Contains(t, out, "▾ web (1)")
	assert.NotContains(t, out, "readme.txt")
	assert.NotContains(t, out, "site.css")
}

func TestRunTree_Mine(t *testing.T) {
	t.Parallel()

	ec := newTestContext(t, OutputText)
	seedProject(t, ec)

	me := testIdentity
	var discard bytes.Buffer
	require.NoError(t, runAssign(context.Background(), ec, &discard, testProject, "web/img/logo.svg", &me))

	var buf bytes.Buffer
	require.NoError(t, runTree(context.Background(), ec, &buf, testProject, &TreeFlags{Mine: true}))

	out := plain(buf.String())
	assert.Contains(t, out, "logo.svg")
	assert.NotContains(t, out, "hero.png")
	assert.NotContains(t, out, "readme.txt")
}

func TestRunTree_NoMatches(t *testing.T) {
	t.Parallel()

	ec := newTestContext(t, OutputText)
	seedProject(t, ec)

	var buf bytes.Buffer
	require.NoError(t, runTree(context.Background(), ec, &buf, testProject, &TreeFlags{Churn: true}))
	assert.Contains(t, plain(buf.String()), "No items match.")
}

func TestRunTree_EmptyProject(t *testing.T) {
	t.Parallel()

	ec := newTestContext(t, OutputText)
	_, err := ec.Store.CreateProject(context.Background(), testProject, testIdentity)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, runTree(context.Background(), ec, &buf, testProject, &TreeFlags{}))
	assert.Contains(t, plain(buf.String()), "No items yet. Run 'assetrack import website <file>'")
}

func TestRunTree_Collapse(t *testing.T) {
	t.Parallel()

	ec := newTestContext(t, OutputText)
	seedProject(t, ec)

	var buf bytes.Buffer
	require.NoError(t, runTree(context.Background(), ec, &buf, testProject, &TreeFlags{Collapse: []string{"/web/img/"}}))

	out := plain(buf.String())
	assert.Contains(t, out, "▸ img (2)")
	assert.NotContains(t, out, "hero.png")
	assert.Contains(t, out, "site.css")
}

func TestRunTree_SavedStateAndExpandAll(t *testing.T) {
	t.Parallel()

	ec := newTestContext(t, OutputText)
	seedProject(t, ec)
	require.NoError(t, ec.Store.SaveViewState(context.Background(), testProject, render.NewCollapseState("web")))

	var buf bytes.Buffer
	require.NoError(t, runTree(context.Background(), ec, &buf, testProject, &TreeFlags{}))
	assert.Contains(t, plain(buf.String()), "▸ web (3)")
	assert.NotContains(t, plain(buf.String()), "site.css")

	buf.Reset()
	require.NoError(t, runTree(context.Background(), ec, &buf, testProject, &TreeFlags{ExpandAll: true}))
	assert.Contains(t, plain(buf.String()), "site.css")

	state, err := ec.Store.LoadViewState(context.Background(), testProject)
	require.NoError(t, err)
	assert.False(t, state.IsExpanded("web"), "tree does not change the saved state")
}

func TestRunTree_InvalidSort(t *testing.T) {
	t.Parallel()

	ec := newTestContext(t, OutputText)
	seedProject(t, ec)

	var buf bytes.Buffer
	err := runTree(context.Background(), ec, &buf, testProject, &TreeFlags{Sort: "size"})
	require.ErrorIs(t, err, atlaserrors.ErrInvalidSortKey)
	assert.Equal(t, ExitInvalidInput, ExitCodeForError(err))
}

func TestRunTree_JSON(t *testing.T) {
	t.Parallel()

	ec := newTestContext(t, OutputJSON)
	seedProject(t, ec)
	setStatus(t, ec, "web/css/site.css", "received")

	var buf bytes.Buffer
	require.NoError(t, runTree(context.Background(), ec, &buf, testProject, &TreeFlags{Churn: true, Sort: "status"}))

	var got treeOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, testProject, got.Project)
	assert.Equal(t, []string{string(pipeline.FilterHighChurn)}, got.Filters)
	assert.Equal(t, "status", got.Sort)
	assert.Equal(t, 4, got.Completion.Total)
	assert.Equal(t, 1, got.Completion.Received)
	require.NotNil(t, got.Tree)
	assert.Empty(t, got.Tree.Children)
}

func TestBuildQuery(t *testing.T) {
	t.Parallel()

	ec := newTestContext(t, OutputText)
	ec.Config.View.DefaultSort = "recency"

	q, err := buildQuery(ec, &TreeFlags{})
	require.NoError(t, err)
	assert.Equal(t, pipeline.SortByRecency, q.Sort)
	assert.Zero(t, q.Filters.Len())

	q, err = buildQuery(ec, &TreeFlags{Sort: "churn", Mine: true, Churn: true, Search: "png"})
	require.NoError(t, err)
	assert.Equal(t, pipeline.SortByChurn, q.Sort)
	assert.Equal(t, 2, q.Filters.Len())
	assert.Equal(t, "png", q.Search)
}

func TestTreeCommand_ProgressDefaultsFromConfig(t *testing.T) {
	t.Parallel()

	ec := newTestContext(t, OutputText)
	seedProject(t, ec)
	ec.Config.View.ShowProgress = false

	root := &cobra.Command{Use: "assetrack"}
	AddTreeCommand(root)
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"tree", testProject})

	require.NoError(t, root.ExecuteContext(WithExecutionContext(context.Background(), ec)))
	assert.NotContains(t, plain(buf.String()), "0/4 implemented")
}
