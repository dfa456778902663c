package document

import "errors"

var (
	ErrTooLarge   = errors.New("document too large")
	ErrInvalidPDF = errors.New("invalid pdf document")
)
