package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput          = errors.New("text cannot be empty")
	ErrUnsupportedFileType   = errors.New("unsupported file type")
	ErrRecognizerUnavailable = errors.New("entity recognizer unavailable")
)

type detectorError struct {
	Source string
	Err    error
}

func (e *detectorError) Error() string {
	return fmt.Sprintf("%s detector failed: %v", e.Source, e.Err)
}

func (e *detectorError) Unwrap() error {
	return e.Err
}

func NewDetectorError(source string, err error) error {
	return &detectorError{
		Source: source,
		Err:    err,
	}
}

func IsDetectorError(err error) bool {
	if err == nil {
		return false
	}
	var de *detectorError
	return errors.As(err, &de)
}
