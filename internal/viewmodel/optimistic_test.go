package viewmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/assetrack/internal/constants"
	"github.com/mrz1836/assetrack/internal/domain"
	"github.com/mrz1836/assetrack/internal/hierarchy"
)

func TestSession_ApplyOptimisticAndRollback(t *testing.T) {
	t.Parallel()

	items := fixture()
	s := newTestSession(items)
	before := s.Tree()

	out := s.RequestStatus("4", constants.ItemStatusReceived)
	require.NotNil(t, out.Command)
	require.True(t, s.ApplyOptimistic(*out.Command))
	assert.True(t, s.Dirty())

	after := s.Tree()
	readme := hierarchy.Find(after, "README.md")
	require.NotNil(t, readme)
	assert.Equal(t, constants.ItemStatusReceived, readme.Item.Status)
	assert.Equal(t, sessionNow, readme.Item.UpdatedAt)
	assert.Equal(t, constants.ItemStatusPending, items[3].Status, "known-good items are not modified")

	// unrelated subtree keeps identity
	assert.Same(t, hierarchy.Find(before, "web"), hierarchy.Find(after, "web"))

	s.Rollback(*out.Command)
	assert.False(t, s.Dirty())
	assert.Zero(t, s.PendingWrites())
	restored := hierarchy.Find(s.Tree(), "README.md")
	assert.Equal(t, constants.ItemStatusPending, restored.Item.Status)
}

func TestSession_ApplyOptimisticCommit(t *testing.T) {
	t.Parallel()

	s := newTestSession(fixture())
	m := domain.SetStatusWithJustification("1", constants.ItemStatusPending, "needs a darker variant")
	require.True(t, s.ApplyOptimistic(m))
	assert.Equal(t, 1, s.PendingWrites())
	s.Commit(m)
	assert.False(t, s.Dirty())

	// settled writes cannot be rolled back
	s.Rollback(m)
	hero := hierarchy.Find(s.Tree(), "web/img/hero.png")
	require.NotNil(t, hero)
	assert.Equal(t, constants.ItemStatusPending, hero.Item.Status)
	assert.Equal(t, 1, hero.Item.RevisionCount)
	assert.Equal(t, "needs a darker variant", hero.Item.Note)
}

func TestSession_ApplyOptimisticKinds(t *testing.T) {
	t.Parallel()

	s := newTestSession(fixture())

	require.True(t, s.ApplyOptimistic(domain.SetAssignee("4", strPtr("dana@example.com"))))
	require.True(t, s.ApplyOptimistic(domain.SetNote("4", "check licensing")))
	var readme *domain.Item
	for _, it := range s.Items() {
		if it.ID == "4" {
			readme = it
		}
	}
	require.NotNil(t, readme)
	assert.Equal(t, "dana@example.com", readme.AssigneeValue())
	assert.Equal(t, "check licensing", readme.Note)

	require.True(t, s.ApplyOptimistic(domain.SetAssignee("4", nil)))
	require.True(t, s.ApplyOptimistic(domain.DeleteItem("2")))
	assert.Len(t, s.Items(), 3)
	assert.Equal(t, 3, hierarchy.CountItems(s.Tree()))

	assert.False(t, s.ApplyOptimistic(domain.DeleteItem("missing")))
}

func statusOf(t *testing.T, s *Session, id string) constants.ItemStatus {
	t.Helper()
	for _, it := range s.Items() {
		if it.ID == id {
			return it.Status
		}
	}
	t.Fatalf("item %s not in snapshot", id)
	return ""
}

func TestSession_InterleavedWrites(t *testing.T) {
	t.Parallel()

	received := func(id string) domain.Mutation {
		return domain.SetStatus(id, constants.ItemStatusReceived, nil)
	}

	tests := []struct {
		name       string
		settle     func(s *Session)
		wantLogo   constants.ItemStatus
		wantReadme constants.ItemStatus
		wantDirty  bool
	}{
		{
			name: "first confirmed, second rejected",
			settle: func(s *Session) {
				s.Commit(received("2"))
				s.Rollback(received("4"))
			},
			wantLogo:   constants.ItemStatusReceived,
			wantReadme: constants.ItemStatusPending,
		},
		{
			name: "second rejected before first confirms",
			settle: func(s *Session) {
				s.Rollback(received("4"))
				s.Commit(received("2"))
			},
			wantLogo:   constants.ItemStatusReceived,
			wantReadme: constants.ItemStatusPending,
		},
		{
			name: "first rejected, second still in flight",
			settle: func(s *Session) {
				s.Rollback(received("2"))
			},
			wantLogo:   constants.ItemStatusPending,
			wantReadme: constants.ItemStatusReceived,
			wantDirty:  true,
		},
		{
			name: "both confirmed",
			settle: func(s *Session) {
				s.Commit(received("4"))
				s.Commit(received("2"))
			},
			wantLogo:   constants.ItemStatusReceived,
			wantReadme: constants.ItemStatusReceived,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			s := newTestSession(fixture())
			require.True(t, s.ApplyOptimistic(received("2")))
			require.True(t, s.ApplyOptimistic(received("4")))
			require.Equal(t, 2, s.PendingWrites())

			tc.settle(s)

			assert.Equal(t, tc.wantLogo, statusOf(t, s, "2"))
			assert.Equal(t, tc.wantReadme, statusOf(t, s, "4"))
			assert.Equal(t, tc.wantDirty, s.Dirty())
		})
	}
}

func TestSession_ReloadKeepsPendingWrites(t *testing.T) {
	t.Parallel()

	s := newTestSession(fixture())
	first := domain.SetStatus("2", constants.ItemStatusReceived, nil)
	second := domain.SetStatus("4", constants.ItemStatusReceived, nil)
	require.True(t, s.ApplyOptimistic(first))
	require.True(t, s.ApplyOptimistic(second))

	// the store confirmed the first write and the list is reloaded
	s.Commit(first)
	reloaded := fixture()
	reloaded[1].Status = constants.ItemStatusReceived
	s.SetItems(reloaded)

	assert.Equal(t, constants.ItemStatusReceived, statusOf(t, s, "4"), "in-flight write survives the reload")
	s.Rollback(second)
	assert.Equal(t, constants.ItemStatusPending, statusOf(t, s, "4"))
	assert.Equal(t, constants.ItemStatusReceived, statusOf(t, s, "2"))
	assert.False(t, s.Dirty())
}
