package httpx

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"compress/zlib"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
)

var (
	ErrDecodedBodyTooLarge = errors.New("decoded body exceeds limit")
	ErrUnsupportedEncoding = errors.New("unsupported content-encoding")
)

type decoder func(body []byte) (io.ReadCloser, error)

var decoders = map[string]decoder{
	"br": func(body []byte) (io.ReadCloser, error) {
		return io.NopCloser(brotli.NewReader(bytes.NewReader(body))), nil
	},
	"gzip": func(body []byte) (io.ReadCloser, error) {
		return gzip.NewReader(bytes.NewReader(body))
	},
	"zstd": func(body []byte) (io.ReadCloser, error) {
		dec, err := zstd.NewReader(bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		return dec.IOReadCloser(), nil
	},
	"deflate": func(body []byte) (io.ReadCloser, error) {
		// zlib wrapped per RFC, raw DEFLATE from older clients
		if zr, err := zlib.NewReader(bytes.NewReader(body)); err == nil {
			return zr, nil
		}
		return flate.NewReader(bytes.NewReader(body)), nil
	},
}

// DecodeChain decodes a body according to a Content-Encoding header value.
// Chained encodings ("gzip, br") are undone right to left. Supported: br,
// gzip, zstd, deflate; identity and compress are left untouched. When
// maxSize is positive the decoded body may not grow beyond it.
// Returns the decoded body and whether it changed.
func DecodeChain(contentEncoding string, body []byte, maxSize int64) ([]byte, bool, error) {
	if strings.TrimSpace(contentEncoding) == "" {
		return body, false, nil
	}
	encodings := strings.Split(contentEncoding, ",")
	changed := false
	for i := len(encodings) - 1; i >= 0; i-- {
		name := strings.TrimSpace(strings.ToLower(encodings[i]))
		switch name {
		case "", "identity", "compress":
			continue
		}
		decode, ok := decoders[name]
		if !ok {
			return nil, false, fmt.Errorf("%w: %q", ErrUnsupportedEncoding, encodings[i])
		}
		out, err := readDecoded(decode, body, maxSize)
		if err != nil {
			return nil, false, fmt.Errorf("decoding %s body: %w", name, err)
		}
		body = out
		changed = true
	}
	return body, changed, nil
}

func readDecoded(decode decoder, body []byte, maxSize int64) ([]byte, error) {
	r, err := decode(body)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var src io.Reader = r
	if maxSize > 0 {
		src = io.LimitReader(r, maxSize+1)
	}
	out, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}
	if maxSize > 0 && int64(len(out)) > maxSize {
		return nil, ErrDecodedBodyTooLarge
	}
	return out, nil
}
