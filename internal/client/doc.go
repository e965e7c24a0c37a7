// Package client is the HTTP client for a passdrop daemon.
//
// It mirrors the server API one method per endpoint, JSON over HTTP, and
// additionally carries the join orchestration: Join fetches the waiting
// session's public value, runs the responder half of the key exchange
// locally and submits its own value, so the daemon never sees the password
// holder's private material. Non-2xx statuses are returned as errors with
// the method, URL and status text.
package client
