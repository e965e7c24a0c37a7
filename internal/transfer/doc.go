// Package transfer stores uploaded file content on disk, one directory per
// session under a data root.
//
// The store validates filenames against a fixed extension allow-list and
// enforces a maximum content size. Stored names combine an upload timestamp
// with the sanitised original name; content is written atomically via a
// temp file and rename. Metadata belongs to the session registry; this
// package only ever sees bytes and names.
package transfer
