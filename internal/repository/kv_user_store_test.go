package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mandalart/internal/model"
	"mandalart/internal/store"
)

func newUser(email string) *model.User {
	return &model.User{
		Email:        email,
		Name:         "someone",
		Avatar:       "https://example.com/a.svg",
		PasswordHash: "$2a$10$fakefakefakefakefakefake",
		CreatedAt:    time.Now(),
	}
}

func TestKVUserStore_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	s := NewKVUserStore(store.NewMemory())

	u := newUser("alice@example.com")
	require.NoError(t, s.CreateUser(ctx, u))
	assert.Equal(t, 1, u.ID)

	byEmail, err := s.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)
	// The hash survives the round trip even though responses hide it.
	assert.Equal(t, u.PasswordHash, byEmail.PasswordHash)

	byID, err := s.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", byID.Email)
}

func TestKVUserStore_SequentialIDs(t *testing.T) {
	ctx := context.Background()
	s := NewKVUserStore(store.NewMemory())

	a := newUser("a@example.com")
	b := newUser("b@example.com")
	require.NoError(t, s.CreateUser(ctx, a))
	require.NoError(t, s.CreateUser(ctx, b))
	assert.Equal(t, 1, a.ID)
	assert.Equal(t, 2, b.ID)
}

func TestKVUserStore_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	s := NewKVUserStore(store.NewMemory())

	require.NoError(t, s.CreateUser(ctx, newUser("alice@example.com")))
	err := s.CreateUser(ctx, newUser("alice@example.com"))
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestKVUserStore_NotFound(t *testing.T) {
	ctx := context.Background()
	s := NewKVUserStore(store.NewMemory())

	_, err := s.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.FindByID(ctx, 99)
	assert.ErrorIs(t, err, ErrNotFound)
}
