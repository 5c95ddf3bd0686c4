package main

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
)

const (
	CRLF         = "\r\n"
	HTTP_VERSION = "HTTP/1.1"

	readChunkSize  = 1024
	maxHeaderBytes = 64 << 10
	maxBodyBytes   = 10 << 20
)

type Method int

const (
	MethodUnsupported Method = iota
	MethodGet
	MethodPost
)

func (m Method) String() string {
	switch m {
	case MethodGet:
		return "GET"
	case MethodPost:
		return "POST"
	default:
		return "UNSUPPORTED"
	}
}

type Header struct {
	Name  string
	Value string
}

type Request struct {
	Method   Method
	Segments [][]byte
	Headers  []Header
	// Remainder holds whatever followed the blank line. Body slices it to the
	// declared Content-Length.
	Remainder []byte
}

// Path rebuilds the request target from its segments.
func (r *Request) Path() string {
	return "/" + string(bytes.Join(r.Segments, []byte("/")))
}

// Header returns the first header whose name matches exactly.
func (r *Request) Header(name string) (string, bool) {
	for _, h := range r.Headers {
		if h.Name == name {
			return h.Value, true
		}
	}
	return "", false
}

func (r *Request) ContentLength() (int, error) {
	v, ok := r.Header("Content-Length")
	if !ok {
		return 0, fmt.Errorf("%w: Content-Length", ErrMissingHeader)
	}
	n, err := strconv.ParseUint(v, 10, 31)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid Content-Length %q", ErrBadRequest, v)
	}
	return int(n), nil
}

func (r *Request) Body() ([]byte, error) {
	n, err := r.ContentLength()
	if err != nil {
		return nil, err
	}
	if n > len(r.Remainder) {
		return nil, fmt.Errorf("%w: body has %d of %d bytes", ErrBadRequest, len(r.Remainder), n)
	}
	return r.Remainder[:n], nil
}

func isLineEnd(b byte) bool { return b == '\r' || b == '\n' }

func isTokenByte(b byte) bool {
	return b > ' ' && b < 0x7f && b != ':' && b != '/'
}

var (
	lineEnding = alt(tag(CRLF), tag("\n"))

	method = alt(
		value(tag("GET "), MethodGet),
		value(tag("POST "), MethodPost),
		value(terminated(takeWhile1(isTokenByte), tag(" ")), MethodUnsupported),
	)

	segment = preceded(tag("/"), takeTill(func(b byte) bool {
		return b == '/' || b == ' ' || isLineEnd(b)
	}))

	requestLine = pair(
		method,
		terminated(many0(segment), tag(" "+HTTP_VERSION+CRLF)),
	)

	fieldName = verify(takeUntil(": "), func(name []byte) bool {
		return len(name) > 0 && !bytes.ContainsAny(name, ":\r\n")
	})

	headerLine = mapParser(
		pair(
			terminated(fieldName, tag(": ")),
			terminated(takeTill(isLineEnd), lineEnding),
		),
		func(p pairOf[[]byte, []byte]) Header {
			return Header{Name: string(p.first), Value: string(p.second)}
		},
	)

	requestHead = pair(requestLine, terminated(many0(headerLine), lineEnding))
)

// parseRequest parses the request line and header block at the start of buf.
// Segments and Remainder alias buf.
func parseRequest(buf []byte) (*Request, error) {
	head, rest, err := requestHead(buf)
	if err != nil {
		return nil, err
	}
	return &Request{
		Method:    head.first.first,
		Segments:  head.first.second,
		Headers:   head.second,
		Remainder: rest,
	}, nil
}

// headerComplete reports whether buf holds a blank line. Any mix of CRLF and
// bare LF accepted by lineEnding ends in "\n\r\n" or "\n\n".
func headerComplete(buf []byte) bool {
	return bytes.Contains(buf, []byte("\n"+CRLF)) || bytes.Contains(buf, []byte("\n\n"))
}

// readRequest reads from r until the header block is complete, parses it and
// then tops up the remainder to the declared Content-Length.
func readRequest(r io.Reader) (*Request, error) {
	buf := make([]byte, 0, readChunkSize)
	chunk := make([]byte, readChunkSize)
	for !headerComplete(buf) {
		if len(buf) > maxHeaderBytes {
			return nil, fmt.Errorf("%w: header block exceeds %d bytes", ErrRequestTooLarge, maxHeaderBytes)
		}
		n, err := r.Read(chunk)
		buf = append(buf, chunk[:n]...)
		if err == io.EOF && len(buf) > 0 {
			break
		}
		if err != nil {
			return nil, err
		}
	}

	req, err := parseRequest(buf)
	if err != nil {
		return nil, err
	}

	n, err := req.ContentLength()
	if err != nil || n <= len(req.Remainder) {
		// Handlers that need the body report the header problem themselves.
		return req, nil
	}
	if n > maxBodyBytes {
		return nil, fmt.Errorf("%w: body of %d bytes", ErrRequestTooLarge, n)
	}
	body := make([]byte, n)
	copy(body, req.Remainder)
	if _, err := io.ReadFull(r, body[len(req.Remainder):]); err != nil {
		return nil, fmt.Errorf("%w: short body: %v", ErrBadRequest, err)
	}
	req.Remainder = body
	return req, nil
}
