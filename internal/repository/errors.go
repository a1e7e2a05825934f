package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
)

// ErrNotFound is the no-rows sentinel shared by every user store
// backend, so callers match one error regardless of backend.
var ErrNotFound = pgx.ErrNoRows

// ErrEmailTaken is returned by CreateUser when the email is already
// registered.
var ErrEmailTaken = errors.New("email already registered")
