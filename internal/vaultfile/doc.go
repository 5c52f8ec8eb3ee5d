// Package vaultfile reads and writes the encrypted vault file.
//
// # Layout
//
// All integers are little-endian.
//
//	offset  size  field
//	0       4     magic "VLTR"
//	4       4     format version (u32, only 1 is accepted)
//	8       32    Argon2id salt, fresh on every write
//	40      12    KDF params: memory KiB, time, parallelism (3 x u32)
//	52      24    XChaCha20-Poly1305 nonce
//	76      n     ciphertext with the 16-byte tag appended
//
// The plaintext is the payload encoded in protobuf wire format (see
// payload.go). Files are always replaced atomically through
// filex.WriteFileAtomic.
//
// # Errors
//
// Structural problems (short file, bad magic, unknown version, impossible
// KDF params) are reported as common.ErrInvalidVaultFile before any key is
// derived. A failed authentication tag is reported as
// common.ErrWrongPassword, which also covers a corrupted ciphertext.
package vaultfile
