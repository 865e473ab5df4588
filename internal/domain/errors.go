package domain

import "errors"

// Configuration errors. Runtime range problems are never reported as errors.
var (
	ErrInvalidConfig   = errors.New("invalid configuration")
	ErrNoPages         = errors.New("at least one page is required")
	ErrMissingMeasurer = errors.New("text-fitted layout requires a label measurer")
	ErrUnknownLayout   = errors.New("unknown layout mode")
)
