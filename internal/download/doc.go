// Package download streams a remote file to a fixed local path while
// reporting byte progress.
//
// Progress is measured against the size the catalog declared for the file.
// The reported figure is clamped to that size, but the bytes on disk are
// never truncated: if a server sends more than it declared, the file holds
// everything received while the progress stops at the declared total.
package download
