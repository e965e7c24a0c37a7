package registry

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"

	"passdrop/internal/domain"
	"passdrop/internal/protocol/pake"
)

// session is the registry's private view of one pairing. The exchanger and
// its private key material never leave this struct.
type session struct {
	mu sync.Mutex

	id        string
	status    domain.Status
	code      string
	createdAt time.Time

	exch        pake.Exchanger
	publicValue []byte
	secret      []byte

	files []domain.FileRecord
}

// newVerificationCode returns a random 6-digit code.
func newVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n), nil
}
