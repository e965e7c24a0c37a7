package domain

import "time"

// Registry owns all sessions and their file records, and drives the session
// state machine. Every other component refers to sessions by id only.
type Registry interface {
	// Create starts a new session keyed by password and returns the
	// initiator's public value plus a one-time verification code.
	Create(password string) (CreateResult, error)

	// Join completes the key exchange for a waiting session. A wrong
	// verification code fails with ErrAuth and leaves the session
	// waiting; attempts are not limited.
	Join(id, password string, peerPublic []byte, code string) (JoinResult, error)

	// Status reports a snapshot of the session.
	Status(id string) (SessionStatus, error)

	// Close tears the session down and deletes its files. Closing an
	// unknown (or already closed) session fails with ErrNotFound.
	Close(id string) error

	// Upload validates and stores content for a connected session and
	// returns the new file id, which is the record's index in the
	// session's upload-ordered file list.
	Upload(id, filename string, content []byte) (int, FileRecord, error)

	// ListFiles returns the session's records in upload order.
	ListFiles(id string) ([]FileRecord, error)

	// Download returns the raw bytes and original filename for a file.
	Download(id string, fileID int) ([]byte, string, error)

	// CloseExpired force-closes every session created before cutoff and
	// reports how many were closed. Used by the expiry reaper.
	CloseExpired(cutoff time.Time) int
}

// BlobStore holds uploaded file content on disk, grouped per session.
// Implementations validate filenames and sizes; the registry owns the
// metadata.
type BlobStore interface {
	Save(sessionID, filename string, content []byte) (FileRecord, error)
	Load(sessionID, storedName string) ([]byte, error)
	RemoveSession(sessionID string) error
}

// ClientSessionStore persists the CLI's joined sessions, sealed under a
// passphrase-derived key.
type ClientSessionStore interface {
	SaveSession(passphrase string, cs ClientSession) error
	LoadSession(passphrase, sessionID string) (ClientSession, bool, error)
	DeleteSession(passphrase, sessionID string) error
}
