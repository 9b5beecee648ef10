package cli

import "errors"

// Sentinel errors returned by the pipeline commands.
var (
	ErrBlankInput = errors.New("input must not be blank")
	ErrRejected   = errors.New("submission rejected")
)
