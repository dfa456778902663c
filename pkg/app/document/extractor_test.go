package document

import (
	"testing"

	"github.com/NeuralTrust/TrustMask/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_Extract(t *testing.T) {
	extractor := NewExtractor(0)

	tests := []struct {
		name     string
		filename string
		content  []byte
		expected string
	}{
		{"plain text with page breaks", "belge.txt", []byte("sayfa 1\fsayfa 2\r\nson"), "sayfa 1\nsayfa 2\nson"},
		{"byte order mark", "belge.TXT", []byte("\xEF\xBB\xBFMerhaba"), "Merhaba"},
		{"windows-1254", "eski.txt", []byte{'I', 0xFE, 0xFD, 'k'}, "Işık"},
		{"markdown kept as is", "notlar.md", []byte("# Hasta\n*Ahmet*"), "# Hasta\n*Ahmet*"},
		{"csv kept as is", "liste.csv", []byte("ad,tc\nAli,12345678950"), "ad,tc\nAli,12345678950"},
		{"html stripped", "form.html", []byte("<p>Ad: <b>Ayşe</b> &amp; Ali</p><script>alert(1)</script>"), "Ad: Ayşe & Ali"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := extractor.Extract(tt.filename, tt.content)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, text)
		})
	}
}

func TestExtractor_Rejects(t *testing.T) {
	_, err := NewExtractor(0).Extract("README", []byte("x"))
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)

	_, err = NewExtractor(4).Extract("a.txt", []byte("12345"))
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported("A.HTM"))
	assert.True(t, Supported("rapor.PDF"))
	assert.False(t, Supported("a.docx"))
}
