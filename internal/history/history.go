// Package history persists a user's generated mandalart grids. Two
// backends implement the same contract: a Postgres table and a
// keyed-blob store for local operation.
package history

import (
	"context"
	"errors"

	"mandalart/internal/model"
)

// ErrNotFound is returned by Get when no item matches the id for the
// user. Update and Delete are deliberately lenient: a missing id is a
// no-op for Update and Delete is idempotent.
var ErrNotFound = errors.New("history item not found")

// Store lists, creates, updates and deletes a user's history. Every
// operation is scoped to the owning user; a logged-out context never
// reaches this layer.
type Store interface {
	// List returns the user's items newest first.
	List(ctx context.Context, userID int) ([]model.HistoryItem, error)
	// Create assigns an id and timestamp and stores the document.
	Create(ctx context.Context, userID int, data model.MandalartData) (*model.HistoryItem, error)
	// Get returns one item, or ErrNotFound.
	Get(ctx context.Context, userID int, id string) (*model.HistoryItem, error)
	// Update overwrites the stored document and touches its
	// updated-at marker. Unknown ids are a no-op.
	Update(ctx context.Context, userID int, id string, data model.MandalartData) error
	// Delete removes one item; deleting an absent id is not an error.
	Delete(ctx context.Context, userID int, id string) error
}
