package registry

import (
	"crypto/subtle"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"passdrop/internal/domain"
	"passdrop/internal/protocol/pake"
	"passdrop/internal/util/memzero"
)

// Registry is the single owner of all sessions and file records.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*session

	blobs   domain.BlobStore
	newExch pake.Factory
	now     func() time.Time
	log     *log.Logger
}

// Option tweaks a Registry; used by tests to inject a clock or backend.
type Option func(*Registry)

// WithClock replaces the registry's time source.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) { r.now = now }
}

// WithExchangerFactory replaces the PAKE backend.
func WithExchangerFactory(f pake.Factory) Option {
	return func(r *Registry) { r.newExch = f }
}

// New returns a Registry storing file content in blobs.
func New(blobs domain.BlobStore, logger *log.Logger, opts ...Option) *Registry {
	r := &Registry{
		sessions: make(map[string]*session),
		blobs:    blobs,
		newExch:  pake.DefaultFactory,
		now:      time.Now,
		log:      logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create starts a session and returns the initiator's public value and the
// one-time verification code.
func (r *Registry) Create(password string) (domain.CreateResult, error) {
	if password == "" {
		return domain.CreateResult{}, fmt.Errorf("%w: password must not be empty", domain.ErrValidation)
	}

	id := uuid.NewString()

	// Key-exchange setup happens before the session is published, so no
	// lock is held while the curve math runs.
	exch := r.newExch(pake.RoleInitiator)
	pub, err := exch.GeneratePublicValue(password, "initiator:"+id)
	if err != nil {
		return domain.CreateResult{}, err
	}
	code, err := newVerificationCode()
	if err != nil {
		return domain.CreateResult{}, err
	}

	s := &session{
		id:          id,
		status:      domain.StatusWaitingForPeer,
		code:        code,
		createdAt:   r.now(),
		exch:        exch,
		publicValue: pub,
	}

	r.mu.Lock()
	r.sessions[id] = s
	r.mu.Unlock()

	r.log.Printf("session %s created", id)
	return domain.CreateResult{
		SessionID:        id,
		VerificationCode: code,
		PublicValue:      pub,
	}, nil
}

// Join completes the waiting session's exchange with the peer's public
// value. A wrong code fails with ErrAuth and leaves the session waiting;
// attempts are not limited, matching the observed behaviour of the service
// this replaces.
func (r *Registry) Join(id, password string, peerPublic []byte, code string) (domain.JoinResult, error) {
	if password == "" {
		return domain.JoinResult{}, fmt.Errorf("%w: password must not be empty", domain.ErrValidation)
	}
	s, err := r.lookup(id)
	if err != nil {
		return domain.JoinResult{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != domain.StatusWaitingForPeer {
		return domain.JoinResult{}, fmt.Errorf("%w: session is %s", domain.ErrState, s.status)
	}
	if subtle.ConstantTimeCompare([]byte(code), []byte(s.code)) != 1 {
		return domain.JoinResult{}, domain.ErrAuth
	}

	secret, err := s.exch.CompleteExchange(peerPublic)
	if err != nil {
		return domain.JoinResult{}, err
	}

	s.secret = secret
	s.status = domain.StatusConnected

	r.log.Printf("session %s connected", id)
	return domain.JoinResult{
		Status:      domain.StatusConnected,
		PublicValue: s.publicValue,
	}, nil
}

// Status reports a snapshot of the session. The initiator's public value is
// included only while the session still waits for its peer, so a joiner can
// fetch it to run its half of the exchange.
func (r *Registry) Status(id string) (domain.SessionStatus, error) {
	s, err := r.lookup(id)
	if err != nil {
		return domain.SessionStatus{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st := domain.SessionStatus{
		SessionID: s.id,
		Status:    s.status,
		CreatedAt: s.createdAt,
		FileCount: len(s.files),
	}
	if s.status == domain.StatusWaitingForPeer {
		st.PublicValue = s.publicValue
	}
	return st, nil
}

// Close tears the session down and deletes its files. Not idempotent:
// closing twice fails with ErrNotFound the second time.
func (r *Registry) Close(id string) error {
	r.mu.Lock()
	s, ok := r.sessions[id]
	if !ok {
		r.mu.Unlock()
		return fmt.Errorf("%w: session %s", domain.ErrNotFound, id)
	}
	delete(r.sessions, id)
	r.mu.Unlock()

	r.close(s, "closed")
	return nil
}

// CloseExpired force-closes every session created before cutoff. The id
// snapshot is taken before any mutation so the sweep cannot race a
// concurrent join or upload into an inconsistent state.
func (r *Registry) CloseExpired(cutoff time.Time) int {
	r.mu.RLock()
	candidates := make([]*session, 0, len(r.sessions))
	for _, s := range r.sessions {
		candidates = append(candidates, s)
	}
	r.mu.RUnlock()

	closed := 0
	for _, s := range candidates {
		if !s.createdAt.Before(cutoff) {
			continue
		}
		r.mu.Lock()
		_, ok := r.sessions[s.id]
		if ok {
			delete(r.sessions, s.id)
		}
		r.mu.Unlock()
		if !ok {
			continue // already closed by an interactive call
		}
		r.close(s, "expired")
		closed++
	}
	return closed
}

// close finalises the state transition and cascades file deletion. Blob
// cleanup is best-effort: a failure is logged, never surfaced.
func (r *Registry) close(s *session, reason string) {
	s.mu.Lock()
	s.status = domain.StatusClosed
	s.files = nil
	memzero.Zero(s.secret)
	s.secret = nil
	s.mu.Unlock()

	if err := r.blobs.RemoveSession(s.id); err != nil {
		r.log.Printf("session %s: removing files: %v", s.id, err)
	}
	r.log.Printf("session %s %s", s.id, reason)
}

// Upload validates and stores content for a connected session, appends the
// record and returns its index as the file id.
func (r *Registry) Upload(id, filename string, content []byte) (int, domain.FileRecord, error) {
	s, err := r.lookup(id)
	if err != nil {
		return 0, domain.FileRecord{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != domain.StatusConnected {
		return 0, domain.FileRecord{}, fmt.Errorf("%w: session is %s", domain.ErrState, s.status)
	}

	rec, err := r.blobs.Save(s.id, filename, content)
	if err != nil {
		return 0, domain.FileRecord{}, err
	}
	s.files = append(s.files, rec)
	return len(s.files) - 1, rec, nil
}

// ListFiles returns the session's records in upload order.
func (r *Registry) ListFiles(id string) ([]domain.FileRecord, error) {
	s, err := r.lookup(id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != domain.StatusConnected {
		return nil, fmt.Errorf("%w: session is %s", domain.ErrState, s.status)
	}
	return append([]domain.FileRecord(nil), s.files...), nil
}

// Download returns the raw bytes and original filename for fileID.
func (r *Registry) Download(id string, fileID int) ([]byte, string, error) {
	s, err := r.lookup(id)
	if err != nil {
		return nil, "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != domain.StatusConnected {
		return nil, "", fmt.Errorf("%w: session is %s", domain.ErrState, s.status)
	}
	if fileID < 0 || fileID >= len(s.files) {
		return nil, "", fmt.Errorf("%w: file %d", domain.ErrNotFound, fileID)
	}
	rec := s.files[fileID]
	content, err := r.blobs.Load(s.id, rec.StoredName)
	if err != nil {
		return nil, "", err
	}
	return content, rec.Name, nil
}

func (r *Registry) lookup(id string) (*session, error) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: session %s", domain.ErrNotFound, id)
	}
	return s, nil
}

var _ domain.Registry = (*Registry)(nil)
