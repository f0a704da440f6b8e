package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/sandevgo/lexbot/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *ConversationRepo {
	t.Helper()

	db, err := NewDB(context.Background(), filepath.Join(t.TempDir(), "data", "lexbot.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewConversationRepo(db)
}

func TestConversationRepo_AppendAndList(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	at := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)
	inputs := []struct {
		session string
		input   string
	}{
		{"a", "hello"},
		{"b", "tell me a joke"},
		{"a", "what time is it"},
		{"a", "scrape https://example.com"},
	}

	var ids []int64
	for i, in := range inputs {
		id, err := repo.Append(ctx, core.Exchange{
			SessionID: in.session,
			Input:     in.input,
			Response:  "reply " + in.input,
			Kind:      core.ReplyMatch,
			CreatedAt: at.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
		ids = append(ids, id)
	}
	assert.Equal(t, []int64{1, 2, 3, 4}, ids)

	t.Run("all sessions in insertion order", func(t *testing.T) {
		all, err := repo.List(ctx, "", 0)
		require.NoError(t, err)
		require.Len(t, all, 4)
		for i, ex := range all {
			assert.Equal(t, inputs[i].input, ex.Input)
			assert.Equal(t, inputs[i].session, ex.SessionID)
		}

		first := all[0]
		assert.Equal(t, int64(1), first.ID)
		assert.Equal(t, core.GuestUser, first.User)
		assert.Equal(t, "reply hello", first.Response)
		assert.Equal(t, core.ReplyMatch, first.Kind)
		assert.True(t, at.Equal(first.CreatedAt), "got %v", first.CreatedAt)
	})

	t.Run("one session", func(t *testing.T) {
		got, err := repo.List(ctx, "a", 0)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "hello", got[0].Input)
		assert.Equal(t, "scrape https://example.com", got[2].Input)
	})

	t.Run("limit keeps the most recent", func(t *testing.T) {
		got, err := repo.List(ctx, "a", 2)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "what time is it", got[0].Input)
		assert.Equal(t, "scrape https://example.com", got[1].Input)
	})

	t.Run("unknown session", func(t *testing.T) {
		got, err := repo.List(ctx, "zzz", 10)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("sessions", func(t *testing.T) {
		got, err := repo.Sessions(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, got)
	})
}

func TestConversationRepo_Defaults(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	before := time.Now().Add(-time.Second)
	_, err := repo.Append(ctx, core.Exchange{Input: "hi", Response: "there", User: "alice"})
	require.NoError(t, err)

	got, err := repo.List(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "alice", got[0].User)
	assert.Equal(t, "", got[0].SessionID)
	assert.True(t, got[0].CreatedAt.After(before))
}

func TestConversationRepo_AppendKeepsEarlierExchanges(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	var ids []int64
	for _, s := range []string{"a", "b", "a"} {
		id, err := repo.Append(ctx, core.Exchange{SessionID: s, Input: "in " + s, Response: "out " + s})
		require.NoError(t, err)
		ids = append(ids, id)
	}

	got, err := repo.List(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i, ex := range got {
		assert.Equal(t, ids[i], ex.ID)
		assert.Equal(t, "in "+ex.SessionID, ex.Input)
	}
	assert.Less(t, ids[0], ids[1])
	assert.Less(t, ids[1], ids[2])
}

func TestNewDB_MigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexbot.db")

	db, err := NewDB(context.Background(), path)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = NewDB(context.Background(), path)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.Get(&count, `SELECT COUNT(*) FROM conversation`))
	assert.Zero(t, count)
}
