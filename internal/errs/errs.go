// Package errs defines the error taxonomy shared by the viewer's components.
// Components wrap the underlying cause with one of these sentinels so callers
// can classify failures with errors.Is.
package errs

import "errors"

var (
	ErrNetwork            = errors.New("network error")
	ErrParse              = errors.New("parse error")
	ErrEmptyResult        = errors.New("no posts returned")
	ErrAuthEncoding       = errors.New("cannot encode credentials")
	ErrIO                 = errors.New("i/o error")
	ErrEmptyDefinitionSet = errors.New("no spinner animations available")
	ErrRender             = errors.New("render error")
)
