// Package e621 is a small client for the e621 posts API.
//
// The client requests exactly one random post per call. Every query is
// prefixed with a random-order directive and a fixed set of exclusion tags:
//
//	order:random -female -intersex <user tags>
//
// Credentials are optional. When present they are sent as HTTP Basic auth
// built from the account name and API key; a credential that cannot be
// encoded fails the request before anything is sent. Without credentials the
// request proceeds anonymously and a warning is logged.
//
// Accept implements the extension filter used by the viewer: animated video
// (webm) and flash (swf) cannot be drawn in a terminal and are rejected.
//
// Errors are classified with the sentinels in package errs: transport,
// status and decoding failures wrap errs.ErrNetwork, an empty result wraps
// errs.ErrEmptyResult, and credential problems wrap errs.ErrAuthEncoding.
package e621
