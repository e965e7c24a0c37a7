package transfer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"passdrop/internal/crypto"
	"passdrop/internal/domain"
)

// DefaultMaxBytes caps uploaded content size.
const DefaultMaxBytes = 50 << 20 // 50 MiB

// allowedExtensions is the document/image set the service accepts.
var allowedExtensions = map[string]bool{
	".txt": true, ".pdf": true, ".png": true, ".jpg": true, ".jpeg": true,
	".gif": true, ".zip": true, ".json": true, ".md": true, ".csv": true,
	".docx": true, ".xlsx": true,
}

// Store writes session file content under root/<sessionID>/.
type Store struct {
	root     string
	maxBytes int64
	now      func() time.Time
}

// NewStore returns a Store rooted at root. maxBytes <= 0 selects
// DefaultMaxBytes.
func NewStore(root string, maxBytes int64) *Store {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Store{root: root, maxBytes: maxBytes, now: time.Now}
}

// Save validates filename and content, writes the content and returns the
// populated FileRecord. Uniqueness of stored names is only as fine as the
// timestamp; two uploads of one name within the same nanosecond collide.
func (s *Store) Save(sessionID, filename string, content []byte) (domain.FileRecord, error) {
	if filename == "" {
		return domain.FileRecord{}, fmt.Errorf("%w: filename required", domain.ErrValidation)
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return domain.FileRecord{}, fmt.Errorf("%w: file type %q not allowed", domain.ErrValidation, ext)
	}
	if len(content) == 0 {
		return domain.FileRecord{}, fmt.Errorf("%w: empty content", domain.ErrValidation)
	}
	if int64(len(content)) > s.maxBytes {
		return domain.FileRecord{}, fmt.Errorf("%w: %d bytes (limit %d)", domain.ErrTooLarge, len(content), s.maxBytes)
	}

	uploadedAt := s.now()
	stored := fmt.Sprintf("%d_%s", uploadedAt.UnixNano(), sanitize(filename))

	dir := filepath.Join(s.root, sessionID)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return domain.FileRecord{}, err
	}
	if err := writeFile(filepath.Join(dir, stored), content, 0o600); err != nil {
		return domain.FileRecord{}, err
	}

	return domain.FileRecord{
		Name:       filepath.Base(filename),
		StoredName: stored,
		Size:       int64(len(content)),
		SHA256:     crypto.HashHex(content),
		UploadedAt: uploadedAt,
	}, nil
}

// Load returns the stored content. Missing content is ErrNotFound.
func (s *Store) Load(sessionID, storedName string) ([]byte, error) {
	b, err := os.ReadFile(filepath.Join(s.root, sessionID, storedName))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: file content missing", domain.ErrNotFound)
	}
	return b, err
}

// RemoveSession deletes every file stored for sessionID.
func (s *Store) RemoveSession(sessionID string) error {
	return os.RemoveAll(filepath.Join(s.root, sessionID))
}

// sanitize strips path components and characters that have no business in a
// stored filename.
func sanitize(filename string) string {
	base := filepath.Base(filename)
	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// writeFile writes bytes via a temp file, then atomically replaces the target.
func writeFile(path string, b []byte, mode os.FileMode) error {
	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()

	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Chmod(mode); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

var _ domain.BlobStore = (*Store)(nil)
