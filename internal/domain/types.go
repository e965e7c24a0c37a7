package domain

import "time"

// Status is the lifecycle state of a session.
type Status string

const (
	// StatusCreated is the initial state, before the first public value
	// has been generated. It is never observable from outside the
	// registry: Create returns a session already waiting for its peer.
	StatusCreated Status = "created"

	// StatusWaitingForPeer means the initiator's public value exists and
	// the session is waiting for a join.
	StatusWaitingForPeer Status = "waiting_for_peer"

	// StatusConnected means the key exchange completed and a shared
	// secret is held. Files may only be exchanged in this state.
	StatusConnected Status = "connected"

	// StatusClosed is terminal. A closed session is removed from the
	// registry and never reused.
	StatusClosed Status = "closed"
)

// FileRecord is the stored metadata for one file uploaded within a session.
// Records are owned exclusively by their session and deleted with it.
type FileRecord struct {
	Name       string    `json:"filename"`
	StoredName string    `json:"-"`
	Size       int64     `json:"size"`
	SHA256     string    `json:"hash"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// CreateResult is returned to the session initiator.
type CreateResult struct {
	SessionID        string
	VerificationCode string
	PublicValue      []byte
}

// JoinResult is returned to a peer that successfully joined.
type JoinResult struct {
	Status      Status
	PublicValue []byte
}

// SessionStatus is a point-in-time snapshot of a session.
type SessionStatus struct {
	SessionID   string
	Status      Status
	CreatedAt   time.Time
	FileCount   int
	PublicValue []byte // initiator's public value, only while waiting for a peer
}

// ClientSession is what the CLI remembers about a session it has joined:
// enough to talk to the server and to seal or open transferred payloads.
// The shared secret is only ever persisted inside an encrypted envelope.
type ClientSession struct {
	SessionID string `json:"session_id"`
	ServerURL string `json:"server_url"`
	Secret    []byte `json:"secret"`
	JoinedUTC int64  `json:"joined_utc"`
}
