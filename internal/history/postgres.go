package history

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"mandalart/internal/model"
	"mandalart/pkg/logger"
	"mandalart/pkg/metrics"
)

// Postgres stores history rows in the mandalarts table, one row per
// generated grid, sub_goals as jsonb.
type Postgres struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgres(db *pgxpool.Pool, logger *zap.Logger) *Postgres {
	return &Postgres{db: db, logger: logger}
}

func (s *Postgres) log(ctx context.Context) *zap.Logger {
	return logger.WithTrace(ctx, s.logger)
}

func (s *Postgres) List(ctx context.Context, userID int) ([]model.HistoryItem, error) {
	start := time.Now()
	query := `
        SELECT id, user_id, main_goal, sub_goals, created_at
        FROM mandalarts
        WHERE user_id = $1
        ORDER BY created_at DESC
    `
	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		s.log(ctx).Error("failed to query mandalarts", zap.Error(err), zap.Int("user_id", userID))
		metrics.IncrementHistoryOp("list", "error")
		return nil, err
	}
	defer rows.Close()

	items := []model.HistoryItem{}
	for rows.Next() {
		var (
			item     model.HistoryItem
			subGoals []byte
		)
		if err := rows.Scan(&item.ID, &item.UserID, &item.Data.MainGoal, &subGoals, &item.Timestamp); err != nil {
			s.log(ctx).Error("failed to scan mandalart row", zap.Error(err), zap.Int("user_id", userID))
			metrics.IncrementHistoryOp("list", "error")
			return nil, err
		}
		if err := json.Unmarshal(subGoals, &item.Data.SubGoals); err != nil {
			s.log(ctx).Error("corrupt sub_goals payload",
				zap.Error(err),
				zap.String("id", item.ID),
			)
			metrics.IncrementHistoryOp("list", "error")
			return nil, err
		}
		items = append(items, item)
	}

	metrics.RecordDBQueryDuration("list", "mandalarts", time.Since(start))
	metrics.IncrementHistoryOp("list", "ok")
	return items, rows.Err()
}

func (s *Postgres) Create(ctx context.Context, userID int, data model.MandalartData) (*model.HistoryItem, error) {
	start := time.Now()
	subGoals, err := json.Marshal(data.SubGoals)
	if err != nil {
		return nil, err
	}

	query := `
        INSERT INTO mandalarts (user_id, main_goal, sub_goals)
        VALUES ($1, $2, $3)
        RETURNING id, created_at
    `
	item := &model.HistoryItem{UserID: userID, Data: data}
	if err := s.db.QueryRow(ctx, query, userID, data.MainGoal, subGoals).Scan(&item.ID, &item.Timestamp); err != nil {
		s.log(ctx).Error("failed to insert mandalart", zap.Error(err), zap.Int("user_id", userID))
		metrics.IncrementHistoryOp("create", "error")
		return nil, err
	}

	s.log(ctx).Info("mandalart saved",
		zap.String("id", item.ID),
		zap.Int("user_id", userID),
	)
	metrics.RecordDBQueryDuration("insert", "mandalarts", time.Since(start))
	metrics.IncrementHistoryOp("create", "ok")
	return item, nil
}

func (s *Postgres) Get(ctx context.Context, userID int, id string) (*model.HistoryItem, error) {
	query := `
        SELECT id, user_id, main_goal, sub_goals, created_at
        FROM mandalarts
        WHERE id = $1 AND user_id = $2
    `
	var (
		item     model.HistoryItem
		subGoals []byte
	)
	err := s.db.QueryRow(ctx, query, id, userID).Scan(
		&item.ID, &item.UserID, &item.Data.MainGoal, &subGoals, &item.Timestamp,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		s.log(ctx).Error("failed to fetch mandalart", zap.Error(err), zap.String("id", id))
		return nil, err
	}
	if err := json.Unmarshal(subGoals, &item.Data.SubGoals); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Postgres) Update(ctx context.Context, userID int, id string, data model.MandalartData) error {
	start := time.Now()
	subGoals, err := json.Marshal(data.SubGoals)
	if err != nil {
		return err
	}

	query := `
        UPDATE mandalarts
        SET main_goal = $1, sub_goals = $2, updated_at = NOW()
        WHERE id = $3 AND user_id = $4
    `
	tag, err := s.db.Exec(ctx, query, data.MainGoal, subGoals, id, userID)
	if err != nil {
		s.log(ctx).Error("failed to update mandalart", zap.Error(err), zap.String("id", id))
		metrics.IncrementHistoryOp("update", "error")
		return err
	}
	if tag.RowsAffected() == 0 {
		s.log(ctx).Debug("update for unknown mandalart id", zap.String("id", id))
	}

	metrics.RecordDBQueryDuration("update", "mandalarts", time.Since(start))
	metrics.IncrementHistoryOp("update", "ok")
	return nil
}

func (s *Postgres) Delete(ctx context.Context, userID int, id string) error {
	query := `
        DELETE FROM mandalarts
        WHERE id = $1 AND user_id = $2
    `
	if _, err := s.db.Exec(ctx, query, id, userID); err != nil {
		s.log(ctx).Error("failed to delete mandalart", zap.Error(err), zap.String("id", id))
		metrics.IncrementHistoryOp("delete", "error")
		return err
	}

	metrics.IncrementHistoryOp("delete", "ok")
	return nil
}
