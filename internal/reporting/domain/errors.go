package reporting

import "errors"

var (
	ErrInvalidMonth = errors.New("reporting: month must be between 1 and 12")
	ErrNilReport    = errors.New("reporting: nil report")
	ErrNotFound     = errors.New("reporting: report not found")
)
