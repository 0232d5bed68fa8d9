package qrcode_test

import (
	"testing"

	"spacy/shared/qrcode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	img, err := qrcode.Encode("spacy://reservations/6f1c2b1e-8d4a-4c1e-9b0a-1d2e3f4a5b6c/checkin")

	require.NoError(t, err)
	require.Greater(t, len(img), 2)
	assert.Equal(t, []byte{0xFF, 0xD8}, img[:2])
}
