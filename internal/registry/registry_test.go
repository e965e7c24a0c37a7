package registry_test

import (
	"bytes"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"github.com/go-test/deep"

	"passdrop/internal/domain"
	"passdrop/internal/protocol/pake"
	"passdrop/internal/registry"
	"passdrop/internal/transfer"
)

func newRegistry(t *testing.T, opts ...registry.Option) *registry.Registry {
	t.Helper()
	blobs := transfer.NewStore(t.TempDir(), 0)
	return registry.New(blobs, log.New(io.Discard, "", 0), opts...)
}

// peerJoin runs the responder half of the exchange and joins the session.
func peerJoin(t *testing.T, reg *registry.Registry, created domain.CreateResult, password, code string) (domain.JoinResult, []byte, error) {
	t.Helper()

	resp := pake.NewCurve(pake.RoleResponder)
	if _, err := resp.GeneratePublicValue(password, "peer"); err != nil {
		t.Fatalf("GeneratePublicValue: %v", err)
	}
	secret, err := resp.CompleteExchange(created.PublicValue)
	if err != nil {
		t.Fatalf("CompleteExchange: %v", err)
	}
	res, err := reg.Join(created.SessionID, password, resp.PublicValue(), code)
	return res, secret, err
}

func newConnected(t *testing.T, reg *registry.Registry, password string) string {
	t.Helper()
	created, err := reg.Create(password)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, _, err := peerJoin(t, reg, created, password, created.VerificationCode); err != nil {
		t.Fatalf("Join: %v", err)
	}
	return created.SessionID
}

func TestCreate_EmptyPassword(t *testing.T) {
	reg := newRegistry(t)
	if _, err := reg.Create(""); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestCreate_WaitingWithCodeAndPublicValue(t *testing.T) {
	reg := newRegistry(t)
	created, err := reg.Create("pw123")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(created.VerificationCode) != 6 {
		t.Fatalf("code %q, want 6 digits", created.VerificationCode)
	}
	if len(created.PublicValue) == 0 {
		t.Fatal("no public value")
	}

	st, err := reg.Status(created.SessionID)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if st.Status != domain.StatusWaitingForPeer {
		t.Fatalf("status = %s", st.Status)
	}
	if !bytes.Equal(st.PublicValue, created.PublicValue) {
		t.Fatal("status does not expose the initiator public value")
	}
}

// Full exchange: create, join, upload, download, close.
func TestLifecycle_CreateJoinTransferClose(t *testing.T) {
	reg := newRegistry(t)
	created, err := reg.Create("pw123")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	res, _, err := peerJoin(t, reg, created, "pw123", created.VerificationCode)
	if err != nil {
		t.Fatalf("Join: %v", err)
	}
	if res.Status != domain.StatusConnected {
		t.Fatalf("status = %s", res.Status)
	}
	if !bytes.Equal(res.PublicValue, created.PublicValue) {
		t.Fatal("join did not return the responder-side public value")
	}

	fileID, rec, err := reg.Upload(created.SessionID, "a.txt", []byte("hello"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if fileID != 0 {
		t.Fatalf("fileID = %d, want 0", fileID)
	}
	if rec.SHA256 != "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824" {
		t.Fatalf("hash = %q", rec.SHA256)
	}

	files, err := reg.ListFiles(created.SessionID)
	if err != nil {
		t.Fatalf("ListFiles: %v", err)
	}
	if diff := deep.Equal(files, []domain.FileRecord{rec}); diff != nil {
		t.Fatalf("ListFiles mismatch: %v", diff)
	}

	content, name, err := reg.Download(created.SessionID, 0)
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if name != "a.txt" || !bytes.Equal(content, []byte("hello")) {
		t.Fatalf("Download = %q %q", name, content)
	}

	if err := reg.Close(created.SessionID); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := reg.ListFiles(created.SessionID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("ListFiles after close err = %v, want ErrNotFound", err)
	}
}

func TestJoin_WrongCode_StaysWaiting(t *testing.T) {
	reg := newRegistry(t)
	created, err := reg.Create("pw")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	wrong := "000000"
	if wrong == created.VerificationCode {
		wrong = "000001"
	}
	if _, _, err := peerJoin(t, reg, created, "pw", wrong); !errors.Is(err, domain.ErrAuth) {
		t.Fatalf("err = %v, want ErrAuth", err)
	}

	st, err := reg.Status(created.SessionID)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if st.Status != domain.StatusWaitingForPeer {
		t.Fatalf("status = %s, want waiting_for_peer", st.Status)
	}

	// No lockout: the correct code still works afterwards.
	if _, _, err := peerJoin(t, reg, created, "pw", created.VerificationCode); err != nil {
		t.Fatalf("Join after failed attempt: %v", err)
	}
}

func TestJoin_UnknownSession(t *testing.T) {
	reg := newRegistry(t)
	if _, err := reg.Join("nope", "pw", []byte("x"), "123456"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestJoin_AlreadyConnected_State(t *testing.T) {
	reg := newRegistry(t)
	id := newConnected(t, reg, "pw")
	if _, err := reg.Join(id, "pw", []byte("x"), "123456"); !errors.Is(err, domain.ErrState) {
		t.Fatalf("err = %v, want ErrState", err)
	}
}

func TestJoin_MalformedPeerValue(t *testing.T) {
	reg := newRegistry(t)
	created, err := reg.Create("pw")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, err = reg.Join(created.SessionID, "pw", []byte("garbage"), created.VerificationCode)
	if !errors.Is(err, domain.ErrDecoding) {
		t.Fatalf("err = %v, want ErrDecoding", err)
	}
}

func TestUpload_BeforeConnected_State(t *testing.T) {
	reg := newRegistry(t)
	created, err := reg.Create("pw")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, _, err = reg.Upload(created.SessionID, "a.txt", []byte("hello"))
	if !errors.Is(err, domain.ErrState) {
		t.Fatalf("err = %v, want ErrState", err)
	}
}

func TestUpload_SequentialIDs(t *testing.T) {
	reg := newRegistry(t)
	id := newConnected(t, reg, "pw")

	for want := 0; want < 3; want++ {
		got, _, err := reg.Upload(id, "a.txt", []byte("hello"))
		if err != nil {
			t.Fatalf("Upload %d: %v", want, err)
		}
		if got != want {
			t.Fatalf("fileID = %d, want %d", got, want)
		}
	}
}

func TestDownload_OutOfRange(t *testing.T) {
	reg := newRegistry(t)
	id := newConnected(t, reg, "pw")
	for _, fid := range []int{-1, 0, 7} {
		if _, _, err := reg.Download(id, fid); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("Download(%d) err = %v, want ErrNotFound", fid, err)
		}
	}
}

func TestClose_NotIdempotent(t *testing.T) {
	reg := newRegistry(t)
	id := newConnected(t, reg, "pw")
	if err := reg.Close(id); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := reg.Close(id); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("second Close err = %v, want ErrNotFound", err)
	}
}

func TestCloseExpired_SweepsOldSessionsOnly(t *testing.T) {
	start := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	current := start
	reg := newRegistry(t, registry.WithClock(func() time.Time { return current }))

	oldID := newConnected(t, reg, "pw")

	current = start.Add(30 * time.Minute)
	freshID := newConnected(t, reg, "pw")

	// Sweep as if one hour and one minute passed since the first session.
	closed := reg.CloseExpired(start.Add(61 * time.Minute).Add(-time.Hour))
	if closed != 1 {
		t.Fatalf("closed = %d, want 1", closed)
	}

	if _, _, err := reg.Upload(oldID, "a.txt", []byte("x")); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Upload on expired err = %v, want ErrNotFound", err)
	}
	if _, _, err := reg.Upload(freshID, "a.txt", []byte("x")); err != nil {
		t.Fatalf("Upload on fresh session: %v", err)
	}
}
