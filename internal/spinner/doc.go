// Package spinner loads terminal loading animations and plays them while the
// viewer waits on the network.
//
// Definitions come from the cli-spinners JSON document. The document is
// downloaded once and cached verbatim at a fixed path; later runs read the
// cache. A document that cannot be parsed is an error; there is no built-in
// fallback animation.
//
// An Animator picks one definition uniformly at random per Start call. The
// animation goroutine owns a copy of the frames and interval, hides the
// cursor, and prints each frame followed by a return to column one until
// Stop is called. Stop waits for the goroutine to exit before clearing the
// line and showing the cursor, so no frame is written after it returns.
package spinner
