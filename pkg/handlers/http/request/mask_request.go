package request

import (
	"errors"
	"strings"
)

// Messages returned to clients. They match what the front end displays.
const (
	MsgTextRequired = "Text is required"
	MsgTextEmpty    = "Text cannot be empty"
	MsgMissingText  = "Eksik metin"
)

var (
	ErrTextRequired = errors.New("text is required")
	ErrTextEmpty    = errors.New("text cannot be empty")
	ErrMissingText  = errors.New("masked text is missing")
)

// Message returns the client facing message for a validation error.
func Message(err error) string {
	switch {
	case errors.Is(err, ErrTextRequired):
		return MsgTextRequired
	case errors.Is(err, ErrTextEmpty):
		return MsgTextEmpty
	case errors.Is(err, ErrMissingText):
		return MsgMissingText
	}
	return err.Error()
}

type MaskRequest struct {
	Text *string `json:"text"`
}

// Validate rejects a missing text field and text made only of whitespace.
func (r *MaskRequest) Validate() error {
	if r.Text == nil {
		return ErrTextRequired
	}
	if strings.TrimSpace(*r.Text) == "" {
		return ErrTextEmpty
	}
	return nil
}

type ExportRequest struct {
	MaskedText string `json:"masked_text"`
}

func (r *ExportRequest) Validate() error {
	if r.MaskedText == "" {
		return ErrMissingText
	}
	return nil
}
