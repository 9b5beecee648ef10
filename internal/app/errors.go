package service

import "errors"

// Sentinel errors returned by the service and its controllers.
var (
	ErrUnknownExample = errors.New("unknown quick example")
	ErrNotStarted     = errors.New("service not started")
)
