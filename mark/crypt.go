package mark

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltLen     = 16
	nonceLen    = 12 // standard GCM nonce
	tagLen      = 16 // GCM authentication tag
	pbkdf2Iters = 100000
	aesKeyLen   = 32 // AES-256

	// cryptOverhead is the fixed number of bytes encryption adds:
	// salt + nonce + tag.
	cryptOverhead = saltLen + nonceLen + tagLen
)

var ErrBadPassphrase = errors.New("wrong passphrase or damaged ciphertext")

func deriveKey(pass string, salt []byte) []byte {
	return pbkdf2.Key([]byte(pass), salt, pbkdf2Iters, aesKeyLen, sha256.New)
}

// encrypt seals data with AES-GCM under a passphrase-derived key.
// Output layout: [salt][nonce][ciphertext+tag].
func encrypt(data []byte, pass string) ([]byte, error) {
	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, err
	}
	blk, err := aes.NewCipher(deriveKey(pass, salt))
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(blk)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(data)+cryptOverhead)
	out = append(out, salt...)
	out = append(out, nonce...)
	return gcm.Seal(out, nonce, data, nil), nil
}

func decrypt(data []byte, pass string) ([]byte, error) {
	if len(data) < cryptOverhead {
		return nil, fmt.Errorf("%w: ciphertext too short", ErrBadPassphrase)
	}
	salt, nonce, ct := data[:saltLen], data[saltLen:saltLen+nonceLen], data[saltLen+nonceLen:]
	blk, err := aes.NewCipher(deriveKey(pass, salt))
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(blk)
	if err != nil {
		return nil, err
	}
	plain, err := gcm.Open(nil, nonce, ct, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadPassphrase, err)
	}
	return plain, nil
}
