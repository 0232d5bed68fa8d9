package base64_test

import (
	"testing"

	"spacy/shared/base64"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pixel = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNk+M9QDwADhgGAWjR9awAAAABJRU5ErkJggg=="

func TestContentType(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "png", input: pixel, expected: "image/png"},
		{name: "text", input: "data:text/plain;base64,SGVsbG8gV29ybGQ=", expected: "text/plain"},
		{name: "parameters kept", input: "data:image/svg+xml;charset=utf-8;base64,PHN2Zz4=", expected: "image/svg+xml;charset=utf-8"},
		{name: "empty", input: "", expected: ""},
		{name: "no data prefix", input: "image/png;base64,AAAA", expected: ""},
		{name: "no base64 marker", input: "data:image/png,AAAA", expected: ""},
		{name: "empty media type", input: "data:;base64,", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, base64.ContentType(tt.input))
		})
	}
}

func TestDecode(t *testing.T) {
	contentType, data, err := base64.Decode("data:text/plain;base64,SGVsbG8gV29ybGQ=")
	require.NoError(t, err)
	assert.Equal(t, "text/plain", contentType)
	assert.Equal(t, "Hello World", string(data))

	_, _, err = base64.Decode("hello")
	require.ErrorIs(t, err, base64.ErrNotDataURI)

	_, _, err = base64.Decode("data:text/plain;base64,@@@")
	assert.Error(t, err)
}

func TestDecodedSize(t *testing.T) {
	assert.Equal(t, 11, base64.DecodedSize("data:text/plain;base64,SGVsbG8gV29ybGQ="))
	assert.Equal(t, 4, base64.DecodedSize("data:text/plain;base64,dGVzdA=="))

	_, data, err := base64.Decode(pixel)
	require.NoError(t, err)
	assert.Equal(t, len(data), base64.DecodedSize(pixel))

	assert.Equal(t, -1, base64.DecodedSize("plain text"))
}
