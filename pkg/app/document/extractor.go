package document

import (
	"bytes"
	"fmt"
	"html"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/NeuralTrust/TrustMask/pkg/domain"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/encoding/charmap"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Extractor turns uploaded documents into plain text for masking.
type Extractor struct {
	maxSize int64
	policy  *bluemonday.Policy
}

// NewExtractor rejects documents larger than maxSize bytes; zero disables
// the check.
func NewExtractor(maxSize int64) *Extractor {
	return &Extractor{
		maxSize: maxSize,
		policy:  bluemonday.StrictPolicy(),
	}
}

// Supported reports whether the file name has an extension Extract accepts.
func Supported(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt", ".md", ".csv", ".html", ".htm", ".pdf":
		return true
	}
	return false
}

// Extract returns the text of a document. Supported formats: .txt, .md,
// .csv, .html/.htm (markup stripped) and .pdf (one line break after each
// page). Anything else fails with domain.ErrUnsupportedFileType.
func (e *Extractor) Extract(filename string, content []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !Supported(filename) {
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedFileType, ext)
	}
	if e.maxSize > 0 && int64(len(content)) > e.maxSize {
		return "", fmt.Errorf("%w: file size %d exceeds limit %d bytes", ErrTooLarge, len(content), e.maxSize)
	}

	if ext == ".pdf" {
		text, err := extractPDF(content)
		if err != nil {
			return "", err
		}
		return normalize(text), nil
	}

	text, err := decode(content)
	if err != nil {
		return "", err
	}
	if ext == ".html" || ext == ".htm" {
		text = html.UnescapeString(e.policy.Sanitize(text))
	}
	return normalize(text), nil
}

// decode reads UTF-8, falling back to Windows-1254 (the legacy Turkish code
// page) for bytes that are not valid UTF-8.
func decode(content []byte) (string, error) {
	content = bytes.TrimPrefix(content, utf8BOM)
	if utf8.Valid(content) {
		return string(content), nil
	}
	decoded, err := charmap.Windows1254.NewDecoder().Bytes(content)
	if err != nil {
		return "", fmt.Errorf("file is not valid text: %w", err)
	}
	return string(decoded), nil
}

// normalize folds CRLF to LF and turns page breaks into newlines.
func normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\f", "\n")
}
