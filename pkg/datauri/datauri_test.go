package datauri

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		mime string
		data []byte
	}{
		{"pdf bytes", "application/pdf", []byte("%PDF-1.4 fake content")},
		{"binary", "application/octet-stream", []byte{0x00, 0xFF, 0x10, 0x80, 0x7F}},
		{"empty payload", "text/plain", []byte{}},
		{"single byte", "image/png", []byte{0x89}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uri := Encode(tt.mime, tt.data)
			mime, data, err := Decode(uri)
			require.NoError(t, err)
			assert.Equal(t, tt.mime, mime)
			assert.True(t, bytes.Equal(tt.data, data))
		})
	}
}

func TestEncodeDefaultsMIMEType(t *testing.T) {
	uri := Encode("", []byte("x"))
	mime, _, err := Decode(uri)
	require.NoError(t, err)
	assert.Equal(t, "application/octet-stream", mime)
}

func TestDecodeInvalid(t *testing.T) {
	tests := []struct {
		name string
		uri  string
	}{
		{"empty string", ""},
		{"no scheme", "application/pdf;base64,AAAA"},
		{"no base64 marker", "data:application/pdf,AAAA"},
		{"bad base64", "data:application/pdf;base64,!!!not-base64!!!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Decode(tt.uri)
			assert.ErrorIs(t, err, ErrInvalidURI)
		})
	}
}

func TestMIMEType(t *testing.T) {
	mime, err := MIMEType("data:application/pdf;base64,AAAA")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", mime)

	_, err = MIMEType("nonsense")
	assert.ErrorIs(t, err, ErrInvalidURI)
}
