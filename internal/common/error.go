// Package common defines the sentinel errors shared by the vault layers and
// a few helpers for handling secret byte buffers. Callers should use
// errors.Is to match these values; concrete details are attached with %w.
package common

import "errors"

var (
	// File format errors. Raised before any decryption is attempted.
	ErrInvalidVaultFile = errors.New("invalid vault file")

	// Authentication failure while decrypting. Corruption of the ciphertext
	// is reported the same way.
	ErrWrongPassword = errors.New("wrong password")

	// State machine errors.
	ErrVaultLocked   = errors.New("vault is locked")
	ErrVaultUnlocked = errors.New("vault is already unlocked")

	// Lookup errors.
	ErrItemNotFound  = errors.New("item not found")
	ErrGroupNotFound = errors.New("group not found")

	// Primitive errors.
	ErrEncryption = errors.New("encryption error")
	ErrDecryption = errors.New("decryption error")
	ErrKdf        = errors.New("key derivation error")

	// Environment errors.
	ErrClipboard = errors.New("clipboard error")
	ErrConfig    = errors.New("config error")
)
