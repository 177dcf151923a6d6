package protect

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/nacl/secretbox"
)

const (
	// MasterKeySize is the size of the random master key in bytes.
	MasterKeySize = 32

	nonceSize = 24
)

var (
	errInvalidKeyLength = errors.New("master key length must be exactly 32 bytes")
	errBlobTooShort     = errors.New("encrypted blob is too short")
	errOpenFailed       = errors.New("decryption failed: blob was not sealed under this user, machine, and install")
)

// Secretbox seals and opens blobs using NaCl secretbox with a key
// derived from a per-user master key and the caller's identity.
type Secretbox struct {
	key [32]byte
}

// NewSecretbox derives the sealing key from masterKey and id using
// HKDF-SHA256. The identity is the HKDF info input, so the same master
// key yields different sealing keys for different users, machines, and
// installs.
func NewSecretbox(masterKey []byte, id Identity) (*Secretbox, error) {
	if len(masterKey) != MasterKeySize {
		return nil, errInvalidKeyLength
	}

	p := &Secretbox{}
	kdf := hkdf.New(sha256.New, masterKey, nil, id.bindingInfo())
	if _, err := io.ReadFull(kdf, p.key[:]); err != nil {
		return nil, fmt.Errorf("failed to derive sealing key: %w", err)
	}

	return p, nil
}

// Protect seals plaintext. The output is a random 24-byte nonce
// followed by the secretbox ciphertext, so sealing the same plaintext
// twice produces different blobs.
func (p *Secretbox) Protect(plaintext []byte) ([]byte, error) {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	return secretbox.Seal(nonce[:], plaintext, &nonce, &p.key), nil
}

// Unprotect opens a blob produced by Protect. Opening fails if the blob
// was sealed under a different identity or master key, or has been
// tampered with.
func (p *Secretbox) Unprotect(blob []byte) ([]byte, error) {
	if len(blob) < nonceSize+secretbox.Overhead {
		return nil, errBlobTooShort
	}

	var nonce [nonceSize]byte
	copy(nonce[:], blob[:nonceSize])

	plaintext, ok := secretbox.Open(nil, blob[nonceSize:], &nonce, &p.key)
	if !ok {
		return nil, errOpenFailed
	}

	return plaintext, nil
}

// GenerateMasterKey returns a new random master key.
func GenerateMasterKey() ([]byte, error) {
	key := make([]byte, MasterKeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate master key: %w", err)
	}
	return key, nil
}
