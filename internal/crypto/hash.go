package crypto

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashHex returns the SHA-256 digest of b in hex. It lets a user check a
// transferred file against the recorded hash without decrypting anything.
func HashHex(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
