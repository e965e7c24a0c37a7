package domain

import "errors"

// Error kinds returned by component operations. Callers classify failures
// with errors.Is; the HTTP layer translates kinds to status codes at the
// boundary and nowhere else.
var (
	// ErrValidation covers bad or missing input: empty passwords,
	// disallowed file types, empty uploads.
	ErrValidation = errors.New("invalid input")

	// ErrAuth is returned when the supplied verification code does not
	// match the stored one. The session state is left unchanged.
	ErrAuth = errors.New("verification code mismatch")

	// ErrNotFound is returned for unknown sessions or file ids. A closed
	// session is indistinguishable from one that never existed.
	ErrNotFound = errors.New("not found")

	// ErrState is returned when an operation is invalid for the session's
	// current state, e.g. uploading before the peer has joined.
	ErrState = errors.New("operation invalid for session state")

	// ErrProtocol is returned when key-exchange steps are invoked out of
	// order, e.g. completing an exchange that was never started.
	ErrProtocol = errors.New("key exchange out of order")

	// ErrDecoding is returned for malformed or undecodable peer
	// key-exchange material. The exchange is aborted, never retried.
	ErrDecoding = errors.New("malformed key exchange material")

	// ErrIntegrity is returned when an authentication tag check fails
	// during decryption. No partial plaintext is ever released.
	ErrIntegrity = errors.New("ciphertext authentication failed")

	// ErrTooLarge is returned when uploaded content exceeds the
	// configured maximum size.
	ErrTooLarge = errors.New("content exceeds size limit")
)
