package pake_test

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"testing"

	"passdrop/internal/domain"
	"passdrop/internal/protocol/pake"
)

// exchange runs a full two-party exchange and returns both derived secrets.
func exchange(t *testing.T, passA, passB string) (a, b []byte) {
	t.Helper()

	init := pake.NewCurve(pake.RoleInitiator)
	resp := pake.NewCurve(pake.RoleResponder)

	initPub, err := init.GeneratePublicValue(passA, "alice")
	if err != nil {
		t.Fatalf("GeneratePublicValue (initiator): %v", err)
	}
	if _, err := resp.GeneratePublicValue(passB, "bob"); err != nil {
		t.Fatalf("GeneratePublicValue (responder): %v", err)
	}

	b, err = resp.CompleteExchange(initPub)
	if err != nil {
		t.Fatalf("CompleteExchange (responder): %v", err)
	}
	a, err = init.CompleteExchange(resp.PublicValue())
	if err != nil {
		t.Fatalf("CompleteExchange (initiator): %v", err)
	}
	return a, b
}

func randomPassword(t *testing.T) string {
	t.Helper()
	var raw [10]byte
	if _, err := rand.Read(raw[:]); err != nil {
		t.Fatalf("rand: %v", err)
	}
	return hex.EncodeToString(raw[:])
}

func TestExchange_SamePassword_Converges(t *testing.T) {
	for i := 0; i < 8; i++ {
		pw := randomPassword(t)
		a, b := exchange(t, pw, pw)
		if !bytes.Equal(a, b) {
			t.Fatalf("secrets diverged for password %q", pw)
		}
		if len(a) != 32 {
			t.Fatalf("secret length = %d, want 32", len(a))
		}
	}
}

func TestExchange_DifferentPasswords_NeverConverge(t *testing.T) {
	// The backend either rejects the exchange outright via its key
	// confirmation or yields unrelated secrets; it must never hand both
	// parties the same key.
	for i := 0; i < 4; i++ {
		init := pake.NewCurve(pake.RoleInitiator)
		resp := pake.NewCurve(pake.RoleResponder)

		initPub, err := init.GeneratePublicValue(randomPassword(t), "alice")
		if err != nil {
			t.Fatalf("GeneratePublicValue: %v", err)
		}
		if _, err := resp.GeneratePublicValue(randomPassword(t), "bob"); err != nil {
			t.Fatalf("GeneratePublicValue: %v", err)
		}

		b, err := resp.CompleteExchange(initPub)
		if err != nil {
			continue
		}
		a, err := init.CompleteExchange(resp.PublicValue())
		if err != nil {
			continue
		}
		if bytes.Equal(a, b) {
			t.Fatal("secrets matched despite different passwords")
		}
	}
}

func TestExchange_IdentityDoesNotAffectSecret(t *testing.T) {
	// identity labels the party only; two runs with arbitrary labels and
	// the same password must still converge.
	init := pake.NewCurve(pake.RoleInitiator)
	resp := pake.NewCurve(pake.RoleResponder)

	initPub, err := init.GeneratePublicValue("pw123", "creator:session-1")
	if err != nil {
		t.Fatalf("GeneratePublicValue: %v", err)
	}
	if _, err := resp.GeneratePublicValue("pw123", "some-other-label"); err != nil {
		t.Fatalf("GeneratePublicValue: %v", err)
	}
	b, err := resp.CompleteExchange(initPub)
	if err != nil {
		t.Fatalf("CompleteExchange: %v", err)
	}
	a, err := init.CompleteExchange(resp.PublicValue())
	if err != nil {
		t.Fatalf("CompleteExchange: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Fatal("secrets diverged across identity labels")
	}
}

func TestCompleteExchange_BeforeGenerate_Protocol(t *testing.T) {
	e := pake.NewCurve(pake.RoleInitiator)
	if _, err := e.CompleteExchange([]byte("peer")); !errors.Is(err, domain.ErrProtocol) {
		t.Fatalf("err = %v, want ErrProtocol", err)
	}
}

func TestCompleteExchange_MalformedPeer_Decoding(t *testing.T) {
	e := pake.NewCurve(pake.RoleInitiator)
	if _, err := e.GeneratePublicValue("pw", "alice"); err != nil {
		t.Fatalf("GeneratePublicValue: %v", err)
	}
	for _, peer := range [][]byte{nil, {}, []byte("not a pake message")} {
		if _, err := e.CompleteExchange(peer); !errors.Is(err, domain.ErrDecoding) {
			t.Fatalf("CompleteExchange(%q) err = %v, want ErrDecoding", peer, err)
		}
	}
}
