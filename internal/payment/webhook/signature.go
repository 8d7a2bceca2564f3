package webhook

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"errors"
)

var (
	ErrMissingSignature = errors.New("missing_webhook_signature")
	ErrInvalidSignature = errors.New("invalid_webhook_signature")
)

// VerifySignature checks the hex HMAC-SHA512 of the raw body against the
// provider's signature header.
func VerifySignature(secret string, body []byte, signature string) error {
	if signature == "" {
		return ErrMissingSignature
	}
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrInvalidSignature
	}
	return nil
}
