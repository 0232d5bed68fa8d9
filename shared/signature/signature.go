package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

const separator = "|"

// Sign returns the hex HMAC-SHA256 of "orderID|paymentID" keyed by secret.
func Sign(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + separator + paymentID))

	return hex.EncodeToString(mac.Sum(nil))
}

// Verify compares signature against the expected value in constant time.
func Verify(secret, orderID, paymentID, signature string) bool {
	expected := Sign(secret, orderID, paymentID)

	return hmac.Equal([]byte(expected), []byte(signature))
}
