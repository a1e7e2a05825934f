package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mandalart/internal/model"
	"mandalart/internal/store"
	"mandalart/pkg/logger"
)

// KVStore keeps each user's history as one keyed blob: a JSON list,
// newest first. It is the local-storage-shaped backend and the one
// tests run against.
type KVStore struct {
	kv     store.KV
	logger *zap.Logger
}

func NewKVStore(kv store.KV, logger *zap.Logger) *KVStore {
	return &KVStore{kv: kv, logger: logger}
}

func historyKey(userID int) string {
	return fmt.Sprintf("history:%d", userID)
}

func (s *KVStore) load(ctx context.Context, userID int) ([]model.HistoryItem, error) {
	blob, err := s.kv.Get(ctx, historyKey(userID))
	if errors.Is(err, store.ErrNotFound) {
		return []model.HistoryItem{}, nil
	}
	if err != nil {
		return nil, err
	}

	var items []model.HistoryItem
	if err := json.Unmarshal(blob, &items); err != nil {
		logger.WithTrace(ctx, s.logger).Error("corrupt history blob, resetting", zap.Int("user_id", userID), zap.Error(err))
		return []model.HistoryItem{}, nil
	}
	return items, nil
}

func (s *KVStore) save(ctx context.Context, userID int, items []model.HistoryItem) error {
	blob, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, historyKey(userID), blob)
}

func (s *KVStore) List(ctx context.Context, userID int) ([]model.HistoryItem, error) {
	return s.load(ctx, userID)
}

func (s *KVStore) Create(ctx context.Context, userID int, data model.MandalartData) (*model.HistoryItem, error) {
	items, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	item := model.HistoryItem{
		ID:        uuid.NewString(),
		UserID:    userID,
		Timestamp: time.Now(),
		Data:      data,
	}
	items = append([]model.HistoryItem{item}, items...)

	if err := s.save(ctx, userID, items); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *KVStore) Get(ctx context.Context, userID int, id string) (*model.HistoryItem, error) {
	items, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, ErrNotFound
}

func (s *KVStore) Update(ctx context.Context, userID int, id string, data model.MandalartData) error {
	items, err := s.load(ctx, userID)
	if err != nil {
		return err
	}
	for i := range items {
		if items[i].ID == id {
			items[i].Data = data
			return s.save(ctx, userID, items)
		}
	}
	// Unknown id: no-op.
	return nil
}

func (s *KVStore) Delete(ctx context.Context, userID int, id string) error {
	items, err := s.load(ctx, userID)
	if err != nil {
		return err
	}

	kept := items[:0]
	for _, item := range items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	return s.save(ctx, userID, kept)
}
