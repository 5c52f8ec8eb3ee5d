// Package vault implements the vault service: the lock/unlock state
// machine, the in-memory payload and every operation on it.
//
// A Service starts Locked. Create and Unlock move it to Unlocked, where it
// holds the decrypted payload, the KDF params in use, the master password
// sealed in a memguard enclave and a dirty flag. Lock discards all of that.
// Every operation other than the status queries returns common.ErrVaultLocked
// while Locked.
//
// Keys are never cached: Save derives a new key from the sealed password
// and a new salt each time.
//
// The Service is safe for concurrent use. Mutations run to completion under
// a mutex; KDF work inside Create, Unlock, Save, Export and Import holds the
// mutex for its whole duration and cannot be cancelled.
package vault
