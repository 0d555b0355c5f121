package domain

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrMissingInput = errors.New("missing input file")
)
