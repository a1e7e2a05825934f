package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"mandalart/internal/model"
	"mandalart/internal/store"
)

// KVUserStore keeps users in the keyed-blob store for runs without a
// relational database: a JSON blob per user plus an email index and an
// id counter.
type KVUserStore struct {
	kv store.KV
	mu sync.Mutex
}

func NewKVUserStore(kv store.KV) *KVUserStore {
	return &KVUserStore{kv: kv}
}

func userKey(id int) string        { return fmt.Sprintf("user:id:%d", id) }
func emailKey(email string) string { return "user:email:" + email }

// storedUser carries the password hash, which model.User hides from
// JSON responses.
type storedUser struct {
	model.User
	PasswordHash string `json:"passwordHash"`
}

// CreateUser mints the next id atomically and stores the user.
func (s *KVUserStore) CreateUser(ctx context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.kv.Get(ctx, emailKey(u.Email)); err == nil {
		return ErrEmailTaken
	}

	// Atomic on the backend, so concurrent instances never mint the
	// same id.
	next, err := s.kv.Incr(ctx, "user:next_id")
	if err != nil {
		return err
	}
	u.ID = int(next)

	blob, err := json.Marshal(storedUser{User: *u, PasswordHash: u.PasswordHash})
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, userKey(u.ID), blob); err != nil {
		return err
	}
	return s.kv.Set(ctx, emailKey(u.Email), []byte(strconv.Itoa(u.ID)))
}

// FindByEmail returns user by email.
func (s *KVUserStore) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	idBlob, err := s.kv.Get(ctx, emailKey(email))
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	id, err := strconv.Atoi(string(idBlob))
	if err != nil {
		return nil, err
	}
	return s.FindByID(ctx, id)
}

// FindByID returns user by id.
func (s *KVUserStore) FindByID(ctx context.Context, id int) (*model.User, error) {
	blob, err := s.kv.Get(ctx, userKey(id))
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var su storedUser
	if err := json.Unmarshal(blob, &su); err != nil {
		return nil, err
	}
	u := su.User
	u.PasswordHash = su.PasswordHash
	return &u, nil
}
