// Package cryptox seals small secrets (stored tokens) at rest.
//
// A key is derived from a user passphrase with argon2id; values are sealed
// with AES-256-GCM and stored as nonce||ciphertext.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"errors"

	"github.com/dmitrijs2005/alphastock/internal/common"
	"golang.org/x/crypto/argon2"
)

// SaltSize is the recommended salt length for DeriveKey.
const SaltSize = 16

// ErrMalformed is returned by Open when the sealed value is too short to
// contain a nonce.
var ErrMalformed = errors.New("malformed sealed value")

// DeriveKey derives a 32-byte AES key from passphrase and salt (argon2id,
// t=1, m=64MiB, p=4).
func DeriveKey(passphrase []byte, salt []byte) []byte {
	return argon2.IDKey(passphrase, salt, 1, 64*1024, 4, 32)
}

// Seal encrypts plaintext with key. The result is nonce||ciphertext.
func Seal(key, plaintext []byte) ([]byte, error) {
	aead, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := common.GenerateRandByteArray(aead.NonceSize())
	return aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Open reverses Seal. A wrong key or tampered value yields an error.
func Open(key, sealed []byte) ([]byte, error) {
	aead, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	n := aead.NonceSize()
	if len(sealed) < n {
		return nil, ErrMalformed
	}

	return aead.Open(nil, sealed[:n], sealed[n:], nil)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
