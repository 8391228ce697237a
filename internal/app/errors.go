package app

import "errors"

// Sentinel kinds for service errors.
var (
	ErrAlreadyVoted = errors.New("already voted today")
)
