package helpers

import (
	"crypto/rand"
	"encoding/hex"
)

// GenToken returns n random bytes hex-encoded, used for password-reset and
// newsletter-unsubscribe tokens.
func GenToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
