package crypto

import (
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"

	"passdrop/internal/domain"
)

const (
	// KeySize is the shared-secret length Seal and Open require.
	KeySize = chacha20poly1305.KeySize
	// NonceSize is the per-message nonce length (96 bits).
	NonceSize = chacha20poly1305.NonceSize
)

// Seal encrypts plaintext under secret with a fresh random nonce and
// returns the ciphertext (tag appended) and the nonce.
func Seal(secret, plaintext []byte) (ciphertext, nonce []byte, err error) {
	aead, err := chacha20poly1305.New(secret)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: bad secret: %v", domain.ErrValidation, err)
	}
	nonce = make([]byte, NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, nil, err
	}
	return aead.Seal(nil, nonce, plaintext, nil), nonce, nil
}

// Open decrypts ciphertext under secret and nonce. A failed authentication
// check returns ErrIntegrity and no plaintext.
func Open(secret, ciphertext, nonce []byte) ([]byte, error) {
	aead, err := chacha20poly1305.New(secret)
	if err != nil {
		return nil, fmt.Errorf("%w: bad secret: %v", domain.ErrValidation, err)
	}
	if len(nonce) != NonceSize {
		return nil, fmt.Errorf("%w: nonce must be %d bytes", domain.ErrValidation, NonceSize)
	}
	pt, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, domain.ErrIntegrity
	}
	return pt, nil
}
