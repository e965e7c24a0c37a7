// Package app wires application dependencies for the daemon and the CLI.
//
// Config is loaded from the environment (optionally via a .env file) with
// sane defaults; flags override its fields. Wire functions build the
// concrete stores, registry, reaper and HTTP pieces from Config.
package app
