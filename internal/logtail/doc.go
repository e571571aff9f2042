// Package logtail reads the end of the viewer's log file for `e6viu logs`.
//
// Read keeps a ring buffer of maxLines entries, so memory stays bounded by
// the number of lines requested rather than the size of the file. A missing
// log file is not an error.
//
// Highlighter colors the time and level fields of slog text records:
//
//	time=2026-10-19T09:12:44.120+02:00 level=WARN msg="no api credential configured"
package logtail
