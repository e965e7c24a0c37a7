// Package commands defines the passdrop CLI and wires dependencies for
// subcommands.
//
// Commands
//
//   - create   Open a new session on the daemon
//   - join     Join a waiting session with its verification code
//   - send     Upload a file into a session, optionally sealed
//   - ls       List a session's files
//   - fetch    Download a file, optionally opening a sealed payload
//   - status   Show a session snapshot
//   - close    Close a session and delete its files
//
// # Implementation
//
// The root command builds the dependency graph (API client, encrypted
// local session store) before any subcommand runs. Join derives the shared
// secret locally and stores it under the --home dir, sealed with the -p
// passphrase; send/fetch use it to encrypt and decrypt payloads end to
// end.
package commands
