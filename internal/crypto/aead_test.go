package crypto_test

import (
	"bytes"
	"crypto/rand"
	"errors"
	"testing"

	"passdrop/internal/crypto"
	"passdrop/internal/domain"
)

func newSecret(t *testing.T) []byte {
	t.Helper()
	secret := make([]byte, crypto.KeySize)
	if _, err := rand.Read(secret); err != nil {
		t.Fatalf("rand: %v", err)
	}
	return secret
}

func TestSealOpen_RoundTrip(t *testing.T) {
	secret := newSecret(t)
	msg := []byte("hello, secure world")

	ct, nonce, err := crypto.Seal(secret, msg)
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	if len(nonce) != crypto.NonceSize {
		t.Fatalf("nonce length = %d, want %d", len(nonce), crypto.NonceSize)
	}
	if bytes.Contains(ct, msg) {
		t.Fatal("ciphertext contains plaintext")
	}

	pt, err := crypto.Open(secret, ct, nonce)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !bytes.Equal(pt, msg) {
		t.Fatalf("got %q, want %q", pt, msg)
	}
}

func TestOpen_FlippedBit_Integrity(t *testing.T) {
	secret := newSecret(t)
	ct, nonce, err := crypto.Seal(secret, []byte("payload"))
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}

	for i := range ct {
		tampered := append([]byte(nil), ct...)
		tampered[i] ^= 0x01
		pt, err := crypto.Open(secret, tampered, nonce)
		if !errors.Is(err, domain.ErrIntegrity) {
			t.Fatalf("bit %d: err = %v, want ErrIntegrity", i, err)
		}
		if pt != nil {
			t.Fatalf("bit %d: plaintext released on failure", i)
		}
	}
}

func TestOpen_WrongSecret_Integrity(t *testing.T) {
	ct, nonce, err := crypto.Seal(newSecret(t), []byte("payload"))
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	if _, err := crypto.Open(newSecret(t), ct, nonce); !errors.Is(err, domain.ErrIntegrity) {
		t.Fatalf("err = %v, want ErrIntegrity", err)
	}
}

func TestSeal_FreshNonces(t *testing.T) {
	secret := newSecret(t)
	seen := map[string]bool{}
	for i := 0; i < 32; i++ {
		_, nonce, err := crypto.Seal(secret, []byte("m"))
		if err != nil {
			t.Fatalf("Seal: %v", err)
		}
		if seen[string(nonce)] {
			t.Fatal("nonce repeated")
		}
		seen[string(nonce)] = true
	}
}

func TestHashHex(t *testing.T) {
	// sha256("hello")
	want := "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"
	if got := crypto.HashHex([]byte("hello")); got != want {
		t.Fatalf("HashHex = %s, want %s", got, want)
	}
}
