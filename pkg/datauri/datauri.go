// Package datauri converts raw file bytes to and from the self-describing
// "data:<mime>;base64,<payload>" strings the persisted collections use.
package datauri

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

const (
	scheme    = "data:"
	separator = ";base64,"
)

// ErrInvalidURI is returned when a string does not carry the
// data:<mime>;base64,<payload> shape.
var ErrInvalidURI = errors.New("invalid data URI")

// Encode wraps raw bytes into a data URI tagged with the given MIME type.
// An empty mimeType falls back to application/octet-stream.
func Encode(mimeType string, data []byte) string {
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	return scheme + mimeType + separator + base64.StdEncoding.EncodeToString(data)
}

// Decode splits a data URI into its MIME type and raw bytes.
// Zero-length payloads are valid.
func Decode(uri string) (string, []byte, error) {
	if !strings.HasPrefix(uri, scheme) {
		return "", nil, fmt.Errorf("%w: missing data: prefix", ErrInvalidURI)
	}
	rest := uri[len(scheme):]
	idx := strings.Index(rest, separator)
	if idx < 0 {
		return "", nil, fmt.Errorf("%w: missing base64 marker", ErrInvalidURI)
	}
	mimeType := rest[:idx]
	payload := rest[idx+len(separator):]

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrInvalidURI, err)
	}
	return mimeType, data, nil
}

// MIMEType returns just the MIME type of a data URI without decoding the
// payload.
func MIMEType(uri string) (string, error) {
	if !strings.HasPrefix(uri, scheme) {
		return "", fmt.Errorf("%w: missing data: prefix", ErrInvalidURI)
	}
	rest := uri[len(scheme):]
	idx := strings.Index(rest, separator)
	if idx < 0 {
		return "", fmt.Errorf("%w: missing base64 marker", ErrInvalidURI)
	}
	return rest[:idx], nil
}
