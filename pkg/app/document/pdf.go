package document

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/ledongthuc/pdf"
)

const (
	pdfFontFamily = "DejaVu"
	pdfFontSize   = 12
	pdfLineHeight = 10
)

// extractPDF returns the plain text of every page, each followed by a
// newline.
func extractPDF(content []byte) (text string, err error) {
	// the reader panics on some malformed cross reference tables
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("%w: %v", ErrInvalidPDF, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPDF, err)
	}

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("%w: page %d: %v", ErrInvalidPDF, i, err)
		}
		b.WriteString(pageText)
		b.WriteString("\n")
	}
	return b.String(), nil
}

// PDFWriter renders masked text as an A4 document.
type PDFWriter struct {
	font []byte
}

// NewPDFWriter uses font, a TrueType file, for every page.
func NewPDFWriter(font []byte) *PDFWriter {
	return &PDFWriter{font: font}
}

func (w *PDFWriter) Render(text string) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.AddUTF8FontFromBytes(pdfFontFamily, "", w.font)
	doc.SetFont(pdfFontFamily, "", pdfFontSize)
	doc.AddPage()
	doc.MultiCell(0, pdfLineHeight, text, "", "", false)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
