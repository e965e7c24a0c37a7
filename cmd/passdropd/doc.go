// Package main runs the passdrop daemon: the HTTP service owning all
// session and file state.
//
// It wires the registry, transfer store and expiry reaper from environment
// configuration (PASSDROP_LISTEN, PASSDROP_DATA_DIR, PASSDROP_SESSION_TTL,
// PASSDROP_SWEEP_INTERVAL, PASSDROP_MAX_UPLOAD_BYTES, optionally via a
// .env file) and serves the JSON API described in internal/server.
//
// Behaviour
//
//   - All session state is held in memory and lost on process exit; file
//     content under the data dir is swept for sessions that expire.
//   - The reaper runs once at startup over pre-existing state, then on a
//     fixed schedule until shutdown.
//   - SIGINT/SIGTERM trigger a graceful shutdown.
package main
