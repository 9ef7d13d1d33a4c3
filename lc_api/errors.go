package lc_api

import (
	"errors"
	"fmt"
)

var (
	ErrTransport = errors.New("transport error")
	ErrDecode    = errors.New("decode error")
)

// RequestError is returned by every call that talks to LeetCode.
// Kind is ErrTransport or ErrDecode, so callers can use errors.Is.
type RequestError struct {
	Kind error
	Op   string
	Err  error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *RequestError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

func transportError(op string, err error) *RequestError {
	return &RequestError{Kind: ErrTransport, Op: op, Err: err}
}

func decodeError(op string, err error) *RequestError {
	return &RequestError{Kind: ErrDecode, Op: op, Err: err}
}
