package cryptox

import (
	"fmt"

	"github.com/dmitrijs2005/vaultura/internal/common"
	"golang.org/x/crypto/chacha20poly1305"
)

// NonceSize is the XChaCha20-Poly1305 nonce length. It is large enough for
// nonces to be drawn at random.
const NonceSize = chacha20poly1305.NonceSizeX

// Encrypt seals plaintext under key with a fresh random nonce. The tag is
// appended to the returned ciphertext.
func Encrypt(key, plaintext []byte) (nonce, ciphertext []byte, err error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", common.ErrEncryption, err)
	}

	nonce, err = common.RandomBytes(NonceSize)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: generate nonce: %v", common.ErrEncryption, err)
	}

	return nonce, aead.Seal(nil, nonce, plaintext, nil), nil
}

// Decrypt opens ciphertext produced by Encrypt. Every authentication
// failure yields the same common.ErrDecryption, whether the key is wrong,
// the nonce is wrong or the data was modified.
func Decrypt(key, nonce, ciphertext []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrDecryption, err)
	}
	if len(nonce) != NonceSize {
		return nil, fmt.Errorf("%w: bad nonce length %d", common.ErrDecryption, len(nonce))
	}

	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, common.ErrDecryption
	}
	return plaintext, nil
}
