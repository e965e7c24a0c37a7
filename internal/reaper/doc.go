// Package reaper force-closes sessions that outlive their time-to-live.
//
// The reaper owns no session state. Each sweep asks the registry to close
// everything created before now-TTL, so mutual exclusion with interactive
// calls is handled by the registry's own locking. RunOnce covers state that
// predates process start; Run repeats sweeps on a ticker until the context
// is cancelled.
package reaper
