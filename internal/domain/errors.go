package domain

import "errors"

var (
	ErrInvalidMonth = errors.New("month must be between 1 and 12")
	ErrInvalidDay   = errors.New("invalid day")
	ErrInvalidTask  = errors.New("invalid task")
)
