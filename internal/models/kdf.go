package models

import "fmt"

// KdfParams holds the Argon2id cost settings. They are stored in every
// vault header so a file stays readable after the defaults change.
type KdfParams struct {
	MemoryKiB   uint32
	Time        uint32
	Parallelism uint32
}

// DefaultKdfParams returns 64 MiB, 3 passes, 4 lanes.
func DefaultKdfParams() KdfParams {
	return KdfParams{MemoryKiB: 64 * 1024, Time: 3, Parallelism: 4}
}

func (p KdfParams) String() string {
	return fmt.Sprintf("argon2id m=%dKiB t=%d p=%d", p.MemoryKiB, p.Time, p.Parallelism)
}
