// Package pake implements the password-authenticated key exchange used to
// pair two parties that share only a weak password.
//
// An Exchanger holds the private key material for exactly one exchange.
// The initiator generates its public value first; the responder folds that
// value in with CompleteExchange, after which its own public value is final
// and can be sent back. When the initiator completes with the responder's
// value both sides hold the same 32-byte secret if and only if they used
// the same password.
//
// The default backend builds on schollz/pake (SPAKE2 over P-256) and runs
// the raw session key through HKDF-SHA256 with a fixed protocol label, so
// the derived secret depends on the password and the exchanged points only.
// The party identity passed to GeneratePublicValue is kept for diagnostics
// and never influences the secret.
//
// Private key material never leaves the Exchanger and is not serialisable.
package pake
