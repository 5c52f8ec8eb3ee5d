package common

import (
	"crypto/rand"

	"github.com/awnumar/memguard"
)

// RandomBytes returns size bytes read from the system CSPRNG.
func RandomBytes(size int) ([]byte, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	return b, nil
}

// WipeByteArray overwrites the contents of b with zeros. Use it for
// passwords, derived keys and decrypted plaintext once they are no longer
// needed. A nil slice is a no-op.
func WipeByteArray(b []byte) {
	if len(b) == 0 {
		return
	}
	memguard.WipeBytes(b)
}
