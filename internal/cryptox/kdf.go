// Package cryptox wraps the two primitives the vault is built on: Argon2id
// for turning a master password into a key, and XChaCha20-Poly1305 for
// sealing the serialized payload.
package cryptox

import (
	"fmt"

	"github.com/dmitrijs2005/vaultura/internal/common"
	"github.com/dmitrijs2005/vaultura/internal/models"
	"golang.org/x/crypto/argon2"
)

const (
	// KeySize is the length of every derived key.
	KeySize = 32
	// SaltSize is the length of the per-write KDF salt.
	SaltSize = 32

	// maxMemoryKiB bounds the memory cost read from untrusted headers (4 GiB).
	maxMemoryKiB = 4 * 1024 * 1024
	maxLanes     = 255
)

// ValidateParams reports whether p is accepted by DeriveKey. The returned
// error wraps common.ErrKdf.
func ValidateParams(p models.KdfParams) error {
	switch {
	case p.Time < 1:
		return fmt.Errorf("%w: time cost must be at least 1", common.ErrKdf)
	case p.Parallelism < 1 || p.Parallelism > maxLanes:
		return fmt.Errorf("%w: parallelism must be between 1 and %d, got %d", common.ErrKdf, maxLanes, p.Parallelism)
	case p.MemoryKiB < 8*p.Parallelism:
		return fmt.Errorf("%w: memory cost %d KiB is below the minimum of %d KiB for %d lanes",
			common.ErrKdf, p.MemoryKiB, 8*p.Parallelism, p.Parallelism)
	case p.MemoryKiB > maxMemoryKiB:
		return fmt.Errorf("%w: memory cost %d KiB exceeds %d KiB", common.ErrKdf, p.MemoryKiB, maxMemoryKiB)
	}
	return nil
}

// DeriveKey derives a KeySize-byte key from password and salt with
// Argon2id. The same inputs always give the same key.
//
// The caller owns the returned slice and should wipe it with
// common.WipeByteArray when done.
func DeriveKey(password, salt []byte, p models.KdfParams) ([]byte, error) {
	if err := ValidateParams(p); err != nil {
		return nil, err
	}
	return argon2.IDKey(password, salt, p.Time, p.MemoryKiB, uint8(p.Parallelism), KeySize), nil
}

// NewSalt returns SaltSize random bytes.
func NewSalt() ([]byte, error) {
	salt, err := common.RandomBytes(SaltSize)
	if err != nil {
		return nil, fmt.Errorf("%w: generate salt: %v", common.ErrKdf, err)
	}
	return salt, nil
}
