package codec

// Package codec converts text to and from the base64 transport encoding
// used by the repository contents API. The API only accepts and returns
// base64 payloads, and the content here includes Kannada text, so the
// conversion must go through UTF-8 bytes rather than naive code units.

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// Encode returns the standard base64 encoding of the text's UTF-8 bytes.
func Encode(text string) string {
	return base64.StdEncoding.EncodeToString([]byte(text))
}

// EncodeBytes encodes raw binary content (images, PDFs) for transport.
func EncodeBytes(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

// Decode converts a base64 payload back to text.
//
// The contents API wraps base64 responses with newlines, so all whitespace
// is stripped before decoding. Byte sequences that are not valid UTF-8 are
// replaced with U+FFFD instead of failing the read: a partially corrupt
// remote file must still be loadable so an operator can fix it. An error is
// returned only when the payload is not parseable base64 at all.
func Decode(b64 string) (string, error) {
	raw, err := DecodeBytes(b64)
	if err != nil {
		return "", err
	}
	return strings.ToValidUTF8(string(raw), "�"), nil
}

// DecodeBytes decodes a base64 payload to raw bytes, tolerating the
// line-wrapping the contents API inserts.
func DecodeBytes(b64 string) ([]byte, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r':
			return -1
		}
		return r
	}, b64)

	raw, err := base64.StdEncoding.DecodeString(cleaned)
	if err != nil {
		// Some producers omit padding; try the raw encoding before giving up.
		raw, rawErr := base64.RawStdEncoding.DecodeString(cleaned)
		if rawErr != nil {
			return nil, fmt.Errorf("decode base64: %w", err)
		}
		return raw, nil
	}
	return raw, nil
}
