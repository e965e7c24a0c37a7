// Package domain defines the core types, error kinds and interfaces shared
// across passdrop: sessions and their lifecycle, file records, and the
// storage contracts implemented by the concrete packages.
package domain
