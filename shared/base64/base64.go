package base64

import (
	stdBase64 "encoding/base64"
	"errors"
	"fmt"
	"strings"
)

const (
	dataPrefix   = "data:"
	base64Marker = ";base64,"
)

var ErrNotDataURI = errors.New("not a base64 data URI")

// ContentType returns the media type of a "data:<type>;base64,<payload>" URI, or empty when value is not one.
func ContentType(value string) string {
	if !strings.HasPrefix(value, dataPrefix) {
		return ""
	}

	end := strings.Index(value, base64Marker)
	if end == -1 {
		return ""
	}

	return value[len(dataPrefix):end]
}

func payload(value string) (string, bool) {
	if ContentType(value) == "" {
		return "", false
	}

	return value[strings.Index(value, base64Marker)+len(base64Marker):], true
}

// DecodedSize is the byte length of the URI payload once decoded, or -1 for malformed input.
func DecodedSize(value string) int {
	raw, ok := payload(value)
	if !ok {
		return -1
	}

	return stdBase64.StdEncoding.DecodedLen(len(raw)) - strings.Count(raw[max(len(raw)-2, 0):], "=")
}

// Decode splits a data URI into its media type and decoded bytes.
func Decode(value string) (contentType string, data []byte, err error) {
	raw, ok := payload(value)
	if !ok {
		return "", nil, ErrNotDataURI
	}

	data, err = stdBase64.StdEncoding.DecodeString(raw)
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode data URI: %w", err)
	}

	return ContentType(value), data, nil
}
