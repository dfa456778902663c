package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectorError(t *testing.T) {
	err := NewDetectorError("ner", ErrRecognizerUnavailable)
	wrapped := fmt.Errorf("analyzing text: %w", err)

	assert.True(t, IsDetectorError(wrapped))
	assert.True(t, errors.Is(wrapped, ErrRecognizerUnavailable))
	assert.Equal(t, "ner detector failed: entity recognizer unavailable", err.Error())
	assert.False(t, IsDetectorError(ErrInvalidInput))
	assert.False(t, IsDetectorError(nil))
}
