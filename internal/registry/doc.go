// Package registry owns every session and its file records, and drives the
// session state machine:
//
//	Created -> WaitingForPeer -> Connected -> Closed
//
// Create generates the initiator's PAKE public value and a one-time
// verification code. Join checks the code, completes the exchange and
// stores the shared secret. Close and expiry both remove the session and
// cascade-delete its stored files; a closed session id behaves exactly like
// one that never existed.
//
// Concurrency: the registry map is guarded by an RWMutex; every session
// additionally carries its own lock so a join, upload or close on one
// session cannot interleave with its expiry while unrelated sessions
// proceed. Key-exchange and hashing work runs under the session's lock
// only, never the registry-wide one.
package registry
