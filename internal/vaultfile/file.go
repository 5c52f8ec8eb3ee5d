package vaultfile

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/vaultura/internal/common"
	"github.com/dmitrijs2005/vaultura/internal/cryptox"
	"github.com/dmitrijs2005/vaultura/internal/filex"
	"github.com/dmitrijs2005/vaultura/internal/models"
)

// filePerm is applied to every vault file written by this package.
const filePerm = 0o600

// Write encrypts payload under a key derived from password with params and
// atomically replaces the file at path. A new salt and nonce are drawn on
// every call.
func Write(path string, password []byte, params models.KdfParams, payload *models.VaultPayload) error {
	salt, err := cryptox.NewSalt()
	if err != nil {
		return err
	}

	key, err := cryptox.DeriveKey(password, salt, params)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(key)

	plaintext := encodePayload(payload)
	defer common.WipeByteArray(plaintext)

	nonce, ciphertext, err := cryptox.Encrypt(key, plaintext)
	if err != nil {
		return err
	}

	h := Header{Version: Version, Salt: salt, Params: params, Nonce: nonce}
	data := h.appendTo(make([]byte, 0, HeaderSize+len(ciphertext)))
	data = append(data, ciphertext...)

	return filex.WriteFileAtomic(path, data, filePerm)
}

// Read decrypts the vault at path and returns its payload together with the
// KDF params stored in the header.
func Read(path string, password []byte) (*models.VaultPayload, models.KdfParams, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, models.KdfParams{}, fmt.Errorf("read vault file: %w", err)
	}

	h, err := parseHeader(data)
	if err != nil {
		return nil, models.KdfParams{}, err
	}

	key, err := cryptox.DeriveKey(password, h.Salt, h.Params)
	if err != nil {
		return nil, models.KdfParams{}, err
	}
	defer common.WipeByteArray(key)

	plaintext, err := cryptox.Decrypt(key, h.Nonce, data[HeaderSize:])
	if err != nil {
		return nil, models.KdfParams{}, common.ErrWrongPassword
	}
	defer common.WipeByteArray(plaintext)

	payload, err := decodePayload(plaintext)
	if err != nil {
		return nil, models.KdfParams{}, fmt.Errorf("%w: decode payload: %v", common.ErrInvalidVaultFile, err)
	}

	return payload, h.Params, nil
}

// ReadHeader validates the file at path and returns its header without
// deriving a key or decrypting anything.
func ReadHeader(path string) (Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return Header{}, fmt.Errorf("read vault file: %w", err)
	}
	defer f.Close()

	buf := make([]byte, MinFileSize)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return Header{}, fmt.Errorf("read vault file: %w", err)
	}

	h, err := parseHeader(buf[:n])
	if err != nil {
		return Header{}, err
	}
	h.Salt = append([]byte(nil), h.Salt...)
	h.Nonce = append([]byte(nil), h.Nonce...)
	return h, nil
}

// Export writes payload to a standalone transfer file. The file uses the
// regular vault format and can be opened with Import or Read.
func Export(path string, password []byte, params models.KdfParams, payload *models.VaultPayload) error {
	if err := filex.EnsureParentDir(path); err != nil {
		return err
	}
	return Write(path, password, params, payload)
}

// Import decrypts a transfer file written by Export.
func Import(path string, password []byte) (*models.VaultPayload, error) {
	payload, _, err := Read(path, password)
	return payload, err
}
