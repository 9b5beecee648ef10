package scenario

import "time"

// HTTP status code constants.
const (
	StatusOK        = 200
	StatusCreated   = 201
	StatusAccepted  = 202
	StatusNoContent = 204
	StatusConflict  = 409
)

// Runner configuration constants.
const (
	DefaultTimeout  = 10 * time.Second
	DefaultSettle   = 5 * time.Second
	DefaultSessions = 4
	pollInterval    = 20 * time.Millisecond
)
