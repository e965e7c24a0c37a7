package server

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"passdrop/internal/domain"
)

// Server routes the HTTP API onto a domain.Registry.
type Server struct {
	reg       domain.Registry
	maxUpload int64
	log       *log.Logger
}

// New returns a Server. maxUpload bounds request bodies on upload.
func New(reg domain.Registry, maxUpload int64, logger *log.Logger) *Server {
	return &Server{reg: reg, maxUpload: maxUpload, log: logger}
}

// Handler returns the routed HTTP handler with access logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /api/session/create", s.handleCreate)
	mux.HandleFunc("POST /api/session/{id}/join", s.handleJoin)
	mux.HandleFunc("GET /api/session/{id}/status", s.handleStatus)
	mux.HandleFunc("POST /api/session/{id}/upload", s.handleUpload)
	mux.HandleFunc("GET /api/session/{id}/files", s.handleFiles)
	mux.HandleFunc("GET /api/session/{id}/download/{fileID}", s.handleDownload)
	mux.HandleFunc("POST /api/session/{id}/close", s.handleClose)
	return s.accessLog(mux)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "passdrop",
	})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	res, err := s.reg.Create(req.Password)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"session_id":        res.SessionID,
		"verification_code": res.VerificationCode,
		"public_value":      base64.StdEncoding.EncodeToString(res.PublicValue),
		"status":            domain.StatusWaitingForPeer,
	})
}

func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password         string `json:"password"`
		PublicValue      string `json:"public_value"`
		VerificationCode string `json:"verification_code"`
	}
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	peer, err := base64.StdEncoding.DecodeString(req.PublicValue)
	if err != nil {
		s.writeError(w, fmt.Errorf("%w: public_value is not base64: %v", domain.ErrDecoding, err))
		return
	}
	res, err := s.reg.Join(r.PathValue("id"), req.Password, peer, req.VerificationCode)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":       res.Status,
		"public_value": base64.StdEncoding.EncodeToString(res.PublicValue),
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	st, err := s.reg.Status(r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	resp := map[string]any{
		"session_id": st.SessionID,
		"status":     st.Status,
		"created_at": st.CreatedAt.UTC().Format(time.RFC3339),
		"file_count": st.FileCount,
	}
	if len(st.PublicValue) > 0 {
		resp["public_value"] = base64.StdEncoding.EncodeToString(st.PublicValue)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload+1<<20)
	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, fmt.Errorf("%w: multipart field %q required", domain.ErrValidation, "file"))
		return
	}
	defer file.Close()

	content, err := readAll(file)
	if err != nil {
		s.writeError(w, err)
		return
	}
	fileID, rec, err := s.reg.Upload(r.PathValue("id"), header.Filename, content)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "uploaded",
		"file_id":  fileID,
		"filename": rec.Name,
		"size":     rec.Size,
		"hash":     rec.SHA256,
	})
}

func (s *Server) handleFiles(w http.ResponseWriter, r *http.Request) {
	records, err := s.reg.ListFiles(r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	type fileEntry struct {
		FileID int `json:"file_id"`
		domain.FileRecord
	}
	files := make([]fileEntry, len(records))
	for i, rec := range records {
		files[i] = fileEntry{FileID: i, FileRecord: rec}
	}
	writeJSON(w, http.StatusOK, map[string]any{"files": files})
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	fileID, err := strconv.Atoi(r.PathValue("fileID"))
	if err != nil {
		s.writeError(w, fmt.Errorf("%w: file id must be numeric", domain.ErrValidation))
		return
	}
	content, name, err := s.reg.Download(r.PathValue("id"), fileID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Length", strconv.Itoa(len(content)))
	_, _ = w.Write(content)
}

func (s *Server) handleClose(w http.ResponseWriter, r *http.Request) {
	if err := s.reg.Close(r.PathValue("id")); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "closed"})
}

// writeError maps domain error kinds onto HTTP statuses. Unexpected faults
// are logged in full and returned as a generic message.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var status int
	switch {
	case errors.Is(err, domain.ErrAuth):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrState),
		errors.Is(err, domain.ErrProtocol),
		errors.Is(err, domain.ErrDecoding),
		errors.Is(err, domain.ErrTooLarge):
		status = http.StatusBadRequest
	default:
		s.log.Printf("internal error: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func decodeJSON(r *http.Request, out any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: bad JSON body: %v", domain.ErrValidation, err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func readAll(f multipart.File) ([]byte, error) {
	b, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("%w: reading upload: %v", domain.ErrValidation, err)
	}
	return b, nil
}

// statusRecorder captures the response code for the access log.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Printf("%s %s %d %s", r.Method, r.URL.Path, rec.status, time.Since(start).Round(time.Millisecond))
	})
}
