package cmdqueue

import "errors"

var (
	ErrNotConnected = errors.New("cmdqueue: client not connected")
	ErrEmptyJob     = errors.New("cmdqueue: job has no command")
)
