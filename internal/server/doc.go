// Package server exposes the session registry over HTTP+JSON.
//
// HTTP API
//
//	POST /api/session/create            {password}
//	POST /api/session/{id}/join         {password, public_value, verification_code}
//	GET  /api/session/{id}/status
//	POST /api/session/{id}/upload       multipart field "file"
//	GET  /api/session/{id}/files
//	GET  /api/session/{id}/download/{fileID}
//	POST /api/session/{id}/close
//	GET  /health
//
// Error kinds map to status codes here and nowhere else: validation, state
// and key-exchange failures are 400, a verification-code mismatch is 401,
// unknown sessions and files are 404, anything unexpected is logged and
// returned as a generic 500. Public values travel base64-encoded. A
// lightweight access log records method, path, status and duration.
package server
