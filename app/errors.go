package main

import (
	"errors"
	"io"
	"net"
)

var (
	ErrParse           = errors.New("malformed request")
	ErrRequestTooLarge = errors.New("request too large")
	ErrBadRequest      = errors.New("bad request")
	ErrMissingHeader   = errors.New("missing header")
	ErrFileNotFound    = errors.New("file not found")
)

// errorResponse maps a failed request to the response sent back. ok is false
// when nothing should be written and the connection is just closed.
func errorResponse(err error) (res HTTPResponse, ok bool) {
	var opErr *net.OpError
	switch {
	case errors.Is(err, io.EOF), errors.Is(err, net.ErrClosed), errors.As(err, &opErr):
		return HTTPResponse{}, false
	case errors.Is(err, ErrParse),
		errors.Is(err, ErrRequestTooLarge),
		errors.Is(err, ErrBadRequest),
		errors.Is(err, ErrMissingHeader):
		return emptyResponse(400), true
	case errors.Is(err, ErrFileNotFound):
		return emptyResponse(404), true
	default:
		return emptyResponse(500), true
	}
}
