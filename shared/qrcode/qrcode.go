package qrcode

import (
	"bytes"
	"fmt"

	"github.com/yeqown/go-qrcode"
)

// Encode renders content as a JPEG QR code.
func Encode(content string) ([]byte, error) {
	qrc, err := qrcode.New(content)
	if err != nil {
		return nil, fmt.Errorf("failed to build qr code: %w", err)
	}

	var buf bytes.Buffer
	if err = qrc.SaveTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to render qr code: %w", err)
	}

	return buf.Bytes(), nil
}
