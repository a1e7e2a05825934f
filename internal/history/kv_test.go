package history

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"mandalart/internal/model"
	"mandalart/internal/store"
)

func testDoc(goal string) model.MandalartData {
	return model.MandalartData{
		MainGoal: goal,
		SubGoals: []model.SubGoal{{Title: "sg", Tasks: []model.Task{{Title: "t"}}}},
	}
}

func newTestStore() *KVStore {
	return NewKVStore(store.NewMemory(), zap.NewNop())
}

func TestKVStore_CreateThenList(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	first, err := s.Create(ctx, 1, testDoc("first"))
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, 1, first.UserID)
	assert.False(t, first.Timestamp.IsZero())

	second, err := s.Create(ctx, 1, testDoc("second"))
	require.NoError(t, err)

	items, err := s.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, items, 2)
	// Newest first.
	assert.Equal(t, second.ID, items[0].ID)
	assert.Equal(t, first.ID, items[1].ID)
}

func TestKVStore_Delete(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	item, err := s.Create(ctx, 1, testDoc("goal"))
	require.NoError(t, err)
	keep, err := s.Create(ctx, 1, testDoc("other"))
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, 1, item.ID))
	items, err := s.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, keep.ID, items[0].ID)

	// Idempotent.
	assert.NoError(t, s.Delete(ctx, 1, item.ID))
}

func TestKVStore_Update(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	a, err := s.Create(ctx, 1, testDoc("a"))
	require.NoError(t, err)
	b, err := s.Create(ctx, 1, testDoc("b"))
	require.NoError(t, err)

	updated := testDoc("a")
	updated.SubGoals[0].Tasks[0].Checklist = []model.TaskItem{{ID: "x", Text: "step", Checked: true}}
	require.NoError(t, s.Update(ctx, 1, a.ID, updated))

	items, err := s.List(ctx, 1)
	require.NoError(t, err)
	for _, item := range items {
		switch item.ID {
		case a.ID:
			require.Len(t, item.Data.SubGoals[0].Tasks[0].Checklist, 1)
			assert.True(t, item.Data.SubGoals[0].Tasks[0].Checklist[0].Checked)
		case b.ID:
			// Untouched.
			assert.Empty(t, item.Data.SubGoals[0].Tasks[0].Checklist)
		}
	}

	// Unknown id is a no-op, not an error.
	assert.NoError(t, s.Update(ctx, 1, "unknown", testDoc("x")))
}

func TestKVStore_Get(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	item, err := s.Create(ctx, 1, testDoc("goal"))
	require.NoError(t, err)

	got, err := s.Get(ctx, 1, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "goal", got.Data.MainGoal)

	_, err = s.Get(ctx, 1, "unknown")
	assert.ErrorIs(t, err, ErrNotFound)

	// Another user cannot see the item.
	_, err = s.Get(ctx, 2, item.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestKVStore_ScopedPerUser(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	_, err := s.Create(ctx, 1, testDoc("mine"))
	require.NoError(t, err)

	items, err := s.List(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, items)
}
