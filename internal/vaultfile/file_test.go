package vaultfile

import (
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/vaultura/internal/common"
	"github.com/dmitrijs2005/vaultura/internal/models"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSample(t *testing.T) (string, *models.VaultPayload) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vault.vltr")
	p := samplePayload()
	require.NoError(t, Write(path, []byte("pw"), testParams, p))
	return path, p
}

func patchFile(t *testing.T, path string, fn func([]byte) []byte) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, fn(data), 0o600))
}

func TestWriteRead_RoundTrip(t *testing.T) {
	path, p := writeSample(t)

	got, params, err := Read(path, []byte("pw"))
	require.NoError(t, err)
	assert.Equal(t, testParams, params)
	assert.Empty(t, cmp.Diff(p, got, payloadOpts))
}

func TestWrite_FilePermissionsAndSize(t *testing.T) {
	path, _ := writeSample(t)

	fi, err := os.Stat(path)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, fi.Size(), int64(MinFileSize))
	assert.Equal(t, os.FileMode(0o600), fi.Mode().Perm())
}

func TestRead_WrongPassword(t *testing.T) {
	path, _ := writeSample(t)

	_, _, err := Read(path, []byte("wrong"))
	require.ErrorIs(t, err, common.ErrWrongPassword)
	assert.False(t, errors.Is(err, common.ErrInvalidVaultFile))
}

func TestRead_CorruptedCiphertextLooksLikeWrongPassword(t *testing.T) {
	path, _ := writeSample(t)
	patchFile(t, path, func(b []byte) []byte {
		b[len(b)-1] ^= 0x01
		return b
	})

	_, _, err := Read(path, []byte("pw"))
	require.ErrorIs(t, err, common.ErrWrongPassword)
}

func TestRead_TamperedSaltLooksLikeWrongPassword(t *testing.T) {
	path, _ := writeSample(t)
	patchFile(t, path, func(b []byte) []byte {
		b[8] ^= 0x01
		return b
	})

	_, _, err := Read(path, []byte("pw"))
	require.ErrorIs(t, err, common.ErrWrongPassword)
}

func TestRead_StructuralErrors(t *testing.T) {
	tests := []struct {
		name  string
		patch func([]byte) []byte
	}{
		{name: "empty", patch: func(b []byte) []byte { return nil }},
		{name: "header only", patch: func(b []byte) []byte { return b[:HeaderSize] }},
		{name: "one byte short", patch: func(b []byte) []byte { return b[:MinFileSize-1] }},
		{name: "bad magic", patch: func(b []byte) []byte { copy(b, "XXXX"); return b }},
		{name: "bad version", patch: func(b []byte) []byte {
			binary.LittleEndian.PutUint32(b[4:], 2)
			return b
		}},
		{name: "impossible kdf params", patch: func(b []byte) []byte {
			binary.LittleEndian.PutUint32(b[40+8:], 0) // parallelism
			return b
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, _ := writeSample(t)
			patchFile(t, path, tt.patch)

			_, _, err := Read(path, []byte("pw"))
			require.ErrorIs(t, err, common.ErrInvalidVaultFile)
			assert.False(t, errors.Is(err, common.ErrWrongPassword))

			_, err = ReadHeader(path)
			require.ErrorIs(t, err, common.ErrInvalidVaultFile)
		})
	}
}

func TestRead_UnsupportedVersionIsReported(t *testing.T) {
	path, _ := writeSample(t)
	patchFile(t, path, func(b []byte) []byte {
		binary.LittleEndian.PutUint32(b[4:], 7)
		return b
	})

	_, _, err := Read(path, []byte("pw"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported version 7")
}

func TestRead_MissingFile(t *testing.T) {
	_, _, err := Read(filepath.Join(t.TempDir(), "missing.vltr"), []byte("pw"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.False(t, errors.Is(err, common.ErrInvalidVaultFile))
}

func TestReadHeader(t *testing.T) {
	path, _ := writeSample(t)

	h, err := ReadHeader(path)
	require.NoError(t, err)
	assert.Equal(t, Version, h.Version)
	assert.Equal(t, testParams, h.Params)
	assert.Len(t, h.Salt, 32)
	assert.Len(t, h.Nonce, 24)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, data[8:40], h.Salt)
	assert.Equal(t, data[52:76], h.Nonce)
}

func TestWrite_FreshSaltAndNonceEveryTime(t *testing.T) {
	path, p := writeSample(t)
	h1, err := ReadHeader(path)
	require.NoError(t, err)

	require.NoError(t, Write(path, []byte("pw"), testParams, p))
	h2, err := ReadHeader(path)
	require.NoError(t, err)

	assert.NotEqual(t, h1.Salt, h2.Salt)
	assert.NotEqual(t, h1.Nonce, h2.Nonce)
}

func TestWrite_InvalidParamsLeavesFileUntouched(t *testing.T) {
	path, p := writeSample(t)
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	err = Write(path, []byte("pw"), models.KdfParams{MemoryKiB: 1, Time: 1, Parallelism: 1}, p)
	require.ErrorIs(t, err, common.ErrKdf)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestExportImport(t *testing.T) {
	p := samplePayload()
	path := filepath.Join(t.TempDir(), "exports", "backup.vltr")

	require.NoError(t, Export(path, []byte("other"), testParams, p))

	got, err := Import(path, []byte("other"))
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(p, got, payloadOpts))

	_, err = Import(path, []byte("pw"))
	require.ErrorIs(t, err, common.ErrWrongPassword)
}
