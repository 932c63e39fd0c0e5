package domain

import "errors"

var (
	ErrEmptyBacklog      = errors.New("backlog has no source content")
	ErrNoLaneAvailable   = errors.New("no lane available")
	ErrLaneBusy          = errors.New("lane already busy")
	ErrLaneNotFound      = errors.New("lane not found")
	ErrEventNotFound     = errors.New("event not found")
	ErrHeadlineNotFound  = errors.New("headline not found")
	ErrInvalidEventState = errors.New("invalid event state transition")
	ErrInvalidExtent     = errors.New("extent must be positive")
	ErrAlreadyRunning    = errors.New("scheduler already running")
	ErrNotRunning        = errors.New("scheduler not running")
)
