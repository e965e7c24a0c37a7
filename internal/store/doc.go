// Package store persists the CLI's joined sessions on disk.
//
// Session records carry the shared secret for a session, so the whole file
// is sealed inside a passphrase-derived ChaCha20-Poly1305 envelope (scrypt
// KDF, parameters stored alongside the ciphertext). Writes go through a
// temp file and rename. All methods are concurrency-safe via internal
// locking.
package store
