//go:build !unix

// Package platform holds OS-level process hardening.
package platform

// DisableCoreDumps is a no-op where core limits are not available.
func DisableCoreDumps() error {
	return nil
}
