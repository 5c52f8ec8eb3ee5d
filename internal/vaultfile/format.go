package vaultfile

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/dmitrijs2005/vaultura/internal/common"
	"github.com/dmitrijs2005/vaultura/internal/cryptox"
	"github.com/dmitrijs2005/vaultura/internal/models"
)

const (
	// Version is the only format version this package reads or writes.
	Version uint32 = 1

	magicSize     = 4
	versionSize   = 4
	kdfParamsSize = 12

	// HeaderSize is the length of everything before the ciphertext.
	HeaderSize = magicSize + versionSize + cryptox.SaltSize + kdfParamsSize + cryptox.NonceSize
	// MinFileSize is the smallest file that can hold a header and a
	// non-empty ciphertext.
	MinFileSize = HeaderSize + 1
)

var magic = []byte("VLTR")

// Header is the unencrypted prefix of a vault file.
type Header struct {
	Version uint32
	Salt    []byte
	Params  models.KdfParams
	Nonce   []byte
}

// appendTo serializes h in file order.
func (h Header) appendTo(b []byte) []byte {
	b = append(b, magic...)
	b = binary.LittleEndian.AppendUint32(b, h.Version)
	b = append(b, h.Salt...)
	b = binary.LittleEndian.AppendUint32(b, h.Params.MemoryKiB)
	b = binary.LittleEndian.AppendUint32(b, h.Params.Time)
	b = binary.LittleEndian.AppendUint32(b, h.Params.Parallelism)
	b = append(b, h.Nonce...)
	return b
}

// parseHeader validates the fixed-size prefix of data. The returned
// slices alias data.
func parseHeader(data []byte) (Header, error) {
	if len(data) < MinFileSize {
		return Header{}, fmt.Errorf("%w: file too small (%d bytes, need at least %d)",
			common.ErrInvalidVaultFile, len(data), MinFileSize)
	}

	off := 0
	if !bytes.Equal(data[off:off+magicSize], magic) {
		return Header{}, fmt.Errorf("%w: invalid magic bytes", common.ErrInvalidVaultFile)
	}
	off += magicSize

	var h Header
	h.Version = binary.LittleEndian.Uint32(data[off:])
	if h.Version != Version {
		return Header{}, fmt.Errorf("%w: unsupported version %d", common.ErrInvalidVaultFile, h.Version)
	}
	off += versionSize

	h.Salt = data[off : off+cryptox.SaltSize]
	off += cryptox.SaltSize

	h.Params = models.KdfParams{
		MemoryKiB:   binary.LittleEndian.Uint32(data[off:]),
		Time:        binary.LittleEndian.Uint32(data[off+4:]),
		Parallelism: binary.LittleEndian.Uint32(data[off+8:]),
	}
	off += kdfParamsSize
	if err := cryptox.ValidateParams(h.Params); err != nil {
		return Header{}, fmt.Errorf("%w: %w", common.ErrInvalidVaultFile, err)
	}

	h.Nonce = data[off : off+cryptox.NonceSize]
	return h, nil
}
