package opsapi

import "fmt"

// Kind classifies a fetch failure.
type Kind string

const (
	// KindNetwork covers requests that never produced an HTTP response.
	KindNetwork Kind = "network"
	// KindHTTP covers non-2xx responses.
	KindHTTP Kind = "http"
	// KindShape covers responses that parsed but are missing required sections.
	KindShape Kind = "shape"
)

// Error is the single error type returned by the client. Every failure,
// whatever its cause, normalizes to one displayable message so the UI error
// banner never has to type-switch.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func networkErr(err error) *Error {
	return &Error{Kind: KindNetwork, Msg: err.Error(), Err: err}
}

func httpErr(path string, status int) *Error {
	return &Error{Kind: KindHTTP, Msg: fmt.Sprintf("api %s returned status %d", path, status)}
}

func shapeErr(msg string) *Error {
	return &Error{Kind: KindShape, Msg: msg}
}
