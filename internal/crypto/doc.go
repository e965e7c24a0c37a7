// Package crypto exposes the symmetric primitives used by passdrop.
//
// Contents
//
//   - Authenticated encryption under a session's shared secret (Seal, Open)
//   - Content hashing for out-of-band file verification (HashHex)
//
// Seal draws a fresh random 96-bit nonce for every call; nonces are never
// derived from counters, so a secret can be reused across calls without
// coordination. Open never returns partial plaintext: a failed tag check
// yields only an error.
package crypto
