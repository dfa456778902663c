package httpx

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"compress/zlib"
	"io"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compress(t *testing.T, newWriter func(io.Writer) io.WriteCloser, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := newWriter(&buf)
	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func gzipWriter(w io.Writer) io.WriteCloser { return gzip.NewWriter(w) }
func brWriter(w io.Writer) io.WriteCloser   { return brotli.NewWriter(w) }
func zlibWriter(w io.Writer) io.WriteCloser { return zlib.NewWriter(w) }

func zstdWriter(w io.Writer) io.WriteCloser {
	zw, _ := zstd.NewWriter(w) //nolint:errcheck
	return zw
}

func flateWriter(w io.Writer) io.WriteCloser {
	fw, _ := flate.NewWriter(w, flate.DefaultCompression) //nolint:errcheck
	return fw
}

func TestDecodeChain(t *testing.T) {
	plain := []byte(`{"text":"Ayşe Yılmaz 0532 123 45 67"}`)

	tests := []struct {
		name     string
		encoding string
		body     []byte
		changed  bool
	}{
		{"no encoding", "", plain, false},
		{"gzip", "gzip", compress(t, gzipWriter, plain), true},
		{"brotli", "br", compress(t, brWriter, plain), true},
		{"zstd", "zstd", compress(t, zstdWriter, plain), true},
		{"deflate zlib wrapped", "deflate", compress(t, zlibWriter, plain), true},
		{"deflate raw", "deflate", compress(t, flateWriter, plain), true},
		{"identity and compress", "identity, compress", plain, false},
		{"case and whitespace", "  GZip  ", compress(t, gzipWriter, plain), true},
		{"chained gzip then br", "gzip, br", compress(t, brWriter, compress(t, gzipWriter, plain)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoded, changed, err := DecodeChain(tt.encoding, tt.body, 0)
			require.NoError(t, err)
			assert.Equal(t, tt.changed, changed)
			assert.Equal(t, plain, decoded)
		})
	}
}

func TestDecodeChain_UnknownEncoding(t *testing.T) {
	_, _, err := DecodeChain("foo", []byte("abc"), 0)
	assert.Error(t, err)
}

func TestDecodeChain_CorruptBody(t *testing.T) {
	_, _, err := DecodeChain("gzip", []byte("not gzip"), 0)
	assert.Error(t, err)
}

func TestDecodeChain_MaxSize(t *testing.T) {
	plain := bytes.Repeat([]byte("a"), 4096)
	body := compress(t, gzipWriter, plain)

	_, _, err := DecodeChain("gzip", body, 1024)
	assert.ErrorIs(t, err, ErrDecodedBodyTooLarge)

	decoded, _, err := DecodeChain("gzip", body, 4096)
	require.NoError(t, err)
	assert.Len(t, decoded, 4096)
}
