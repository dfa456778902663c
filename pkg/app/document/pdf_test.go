package document

import (
	"bytes"
	"strings"
	"testing"

	"github.com/NeuralTrust/TrustMask/fonts"
	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildPDF writes one page per entry using a core font, so only ASCII text
// is rendered faithfully.
func buildPDF(t *testing.T, pages ...string) []byte {
	t.Helper()
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetFont("Helvetica", "", 12)
	for _, text := range pages {
		doc.AddPage()
		doc.Cell(0, 10, text)
	}
	var buf bytes.Buffer
	require.NoError(t, doc.Output(&buf))
	return buf.Bytes()
}

func TestExtractor_PDF(t *testing.T) {
	content := buildPDF(t, "TC 12345678950", "Telefon 05321234567")

	text, err := NewExtractor(0).Extract("rapor.pdf", content)
	require.NoError(t, err)

	first := strings.Index(text, "12345678950")
	second := strings.Index(text, "05321234567")
	require.GreaterOrEqual(t, first, 0)
	require.Greater(t, second, first)
	assert.Contains(t, text[first:second], "\n")
	assert.True(t, strings.HasSuffix(text, "\n"))
}

func TestExtractor_InvalidPDF(t *testing.T) {
	_, err := NewExtractor(0).Extract("rapor.pdf", []byte("%PDF-1.4 bozuk"))
	assert.ErrorIs(t, err, ErrInvalidPDF)

	_, err = NewExtractor(8).Extract("rapor.pdf", buildPDF(t, "x"))
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestPDFWriter_Render(t *testing.T) {
	masked := "TC: 12*******50 telefon: 053* *** ** 67"

	out, err := NewPDFWriter(fonts.DejaVuSansCondensed()).Render(masked)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))

	text, err := NewExtractor(0).Extract("maskelenmis_metin.pdf", out)
	require.NoError(t, err)
	assert.Contains(t, text, "12*******50")
}
