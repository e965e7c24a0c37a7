package client

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"passdrop/internal/domain"
	"passdrop/internal/protocol/pake"
)

// Client talks to a passdrop daemon.
type Client struct {
	Base string
	HTTP *http.Client
}

// New returns a Client for the daemon at base.
func New(base string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{Base: base, HTTP: httpClient}
}

// CreateResponse is the daemon's create-session reply.
type CreateResponse struct {
	SessionID        string `json:"session_id"`
	VerificationCode string `json:"verification_code"`
	PublicValue      string `json:"public_value"`
	Status           string `json:"status"`
}

// StatusResponse is the daemon's session-status reply.
type StatusResponse struct {
	SessionID   string `json:"session_id"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
	FileCount   int    `json:"file_count"`
	PublicValue string `json:"public_value"`
}

// FileEntry is one record in a list-files reply.
type FileEntry struct {
	FileID     int    `json:"file_id"`
	Filename   string `json:"filename"`
	Size       int64  `json:"size"`
	Hash       string `json:"hash"`
	UploadedAt string `json:"uploaded_at"`
}

// UploadResponse is the daemon's upload reply.
type UploadResponse struct {
	FileID   int    `json:"file_id"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	Hash     string `json:"hash"`
}

// Create opens a new session on the daemon.
func (c *Client) Create(ctx context.Context, password string) (CreateResponse, error) {
	var out CreateResponse
	err := c.post(ctx, "/api/session/create", map[string]string{"password": password}, &out)
	return out, err
}

// Join runs the responder half of the key exchange against the waiting
// session and returns the derived shared secret.
func (c *Client) Join(ctx context.Context, sessionID, password, code string) ([]byte, error) {
	st, err := c.Status(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if st.PublicValue == "" {
		return nil, fmt.Errorf("%w: session is %s", domain.ErrState, st.Status)
	}
	initiatorPub, err := base64.StdEncoding.DecodeString(st.PublicValue)
	if err != nil {
		return nil, fmt.Errorf("%w: public_value is not base64: %v", domain.ErrDecoding, err)
	}

	exch := pake.NewCurve(pake.RoleResponder)
	if _, err := exch.GeneratePublicValue(password, "responder:"+sessionID); err != nil {
		return nil, err
	}
	secret, err := exch.CompleteExchange(initiatorPub)
	if err != nil {
		return nil, err
	}

	req := map[string]string{
		"password":          password,
		"public_value":      base64.StdEncoding.EncodeToString(exch.PublicValue()),
		"verification_code": code,
	}
	var out struct {
		Status string `json:"status"`
	}
	if err := c.post(ctx, "/api/session/"+url.PathEscape(sessionID)+"/join", req, &out); err != nil {
		return nil, err
	}
	return secret, nil
}

// Status fetches a session snapshot.
func (c *Client) Status(ctx context.Context, sessionID string) (StatusResponse, error) {
	var out StatusResponse
	err := c.getJSON(ctx, "/api/session/"+url.PathEscape(sessionID)+"/status", &out)
	return out, err
}

// Upload sends one file into the session.
func (c *Client) Upload(ctx context.Context, sessionID, filename string, content []byte) (UploadResponse, error) {
	buf := new(bytes.Buffer)
	mw := multipart.NewWriter(buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return UploadResponse{}, err
	}
	if _, err := fw.Write(content); err != nil {
		return UploadResponse{}, err
	}
	if err := mw.Close(); err != nil {
		return UploadResponse{}, err
	}

	u := c.Base + "/api/session/" + url.PathEscape(sessionID) + "/upload"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, buf)
	if err != nil {
		return UploadResponse{}, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var out UploadResponse
	return out, c.do(req, &out)
}

// ListFiles returns the session's records in upload order.
func (c *Client) ListFiles(ctx context.Context, sessionID string) ([]FileEntry, error) {
	var out struct {
		Files []FileEntry `json:"files"`
	}
	err := c.getJSON(ctx, "/api/session/"+url.PathEscape(sessionID)+"/files", &out)
	return out.Files, err
}

// Download fetches one file's raw bytes.
func (c *Client) Download(ctx context.Context, sessionID string, fileID int) ([]byte, error) {
	u := c.Base + "/api/session/" + url.PathEscape(sessionID) + "/download/" + strconv.Itoa(fileID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("GET %s: %s", u, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// Close tears the session down on the daemon.
func (c *Client) Close(ctx context.Context, sessionID string) error {
	return c.post(ctx, "/api/session/"+url.PathEscape(sessionID)+"/close", struct{}{}, nil)
}

// Health pings the daemon.
func (c *Client) Health(ctx context.Context) error {
	return c.getJSON(ctx, "/health", &struct{}{})
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(in); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Base+path, buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Base+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return apiError(req, resp)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// apiError folds the server's error body and status into one error.
func apiError(req *http.Request, resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)
	if body.Error != "" {
		return fmt.Errorf("%s %s: %s: %s", req.Method, req.URL, resp.Status, body.Error)
	}
	return fmt.Errorf("%s %s: %s", req.Method, req.URL, resp.Status)
}
