package pake

import (
	"crypto/sha256"
	"fmt"
	"io"

	"github.com/schollz/pake/v3"
	"golang.org/x/crypto/hkdf"

	"passdrop/internal/domain"
	"passdrop/internal/util/memzero"
)

// Role selects which half of the exchange an Exchanger runs.
type Role int

const (
	// RoleInitiator creates the session and publishes the first value.
	RoleInitiator Role = iota
	// RoleResponder joins an existing session.
	RoleResponder
)

// Exchanger derives a shared secret from a weak password. Implementations
// retain private material scoped to one exchange.
type Exchanger interface {
	// GeneratePublicValue creates fresh private key material bound to
	// password and returns the value to publish to the peer. identity is
	// a display label for the party; it does not affect the secret.
	GeneratePublicValue(password, identity string) ([]byte, error)

	// CompleteExchange folds in the peer's public value and returns the
	// shared secret. Calling it before GeneratePublicValue fails with
	// ErrProtocol; undecodable peer material fails with ErrDecoding.
	CompleteExchange(peerPublic []byte) ([]byte, error)

	// PublicValue returns the current outbound key material. For the
	// responder it is only final after CompleteExchange.
	PublicValue() []byte
}

// Factory builds a fresh Exchanger for one session.
type Factory func(role Role) Exchanger

// secretInfo labels the HKDF derivation; both roles must use the same label
// or the secrets diverge.
const secretInfo = "passdrop/pake/v1"

// CurveExchanger runs SPAKE2 over NIST P-256 via schollz/pake.
type CurveExchanger struct {
	role     Role
	identity string
	state    *pake.Pake
}

// NewCurve returns a CurveExchanger for the given role.
func NewCurve(role Role) *CurveExchanger {
	return &CurveExchanger{role: role}
}

// DefaultFactory builds CurveExchangers and satisfies Factory.
func DefaultFactory(role Role) Exchanger { return NewCurve(role) }

func (e *CurveExchanger) GeneratePublicValue(password, identity string) ([]byte, error) {
	p, err := pake.InitCurve([]byte(password), int(e.role), "p256")
	if err != nil {
		return nil, fmt.Errorf("init exchange: %w", err)
	}
	e.state = p
	e.identity = identity
	return p.Bytes(), nil
}

func (e *CurveExchanger) CompleteExchange(peerPublic []byte) ([]byte, error) {
	if e.state == nil {
		return nil, fmt.Errorf("%w: no public value generated", domain.ErrProtocol)
	}
	if len(peerPublic) == 0 {
		return nil, fmt.Errorf("%w: empty peer value", domain.ErrDecoding)
	}
	if err := e.state.Update(peerPublic); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDecoding, err)
	}
	raw, err := e.state.SessionKey()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProtocol, err)
	}
	secret, err := deriveSecret(raw)
	memzero.Zero(raw)
	if err != nil {
		return nil, err
	}
	return secret, nil
}

func (e *CurveExchanger) PublicValue() []byte {
	if e.state == nil {
		return nil
	}
	return e.state.Bytes()
}

// deriveSecret expands the raw session key into the 32-byte shared secret.
func deriveSecret(raw []byte) ([]byte, error) {
	out := make([]byte, 32)
	r := hkdf.New(sha256.New, raw, nil, []byte(secretInfo))
	if _, err := io.ReadFull(r, out); err != nil {
		return nil, fmt.Errorf("derive secret: %w", err)
	}
	return out, nil
}

var _ Exchanger = (*CurveExchanger)(nil)
