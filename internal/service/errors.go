package service

import "errors"

var (
	// ErrBusy rejects re-entrant generation: at most one in-flight
	// model call per session.
	ErrBusy = errors.New("a generation is already in progress")

	ErrEmptyGoal      = errors.New("goal must not be empty")
	ErrInvalidStep    = errors.New("action not valid in the current step")
	ErrMissingAnswers = errors.New("all questions must be answered")
	ErrNoDocument     = errors.New("no document in this session")
	ErrNoSuchItem     = errors.New("checklist item not found")

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthorized       = errors.New("unauthorized")
)
