package main

import (
	"bufio"
	"io"
	"strconv"
)

var (
	statusCodes = map[int]string{
		200: "OK",
		201: "Created",
		400: "Bad Request",
		404: "Not Found",
		405: "Method Not Allowed",
		500: "Internal Server Error",
	}
)

type HTTPResponse struct {
	Status  int
	Headers []Header
	Body    []byte
}

func emptyResponse(status int) HTTPResponse {
	return HTTPResponse{Status: status}
}

func contentResponse(contentType string, body []byte, extra ...Header) HTTPResponse {
	headers := append(extra,
		Header{"Content-Type", contentType},
		Header{"Content-Length", strconv.Itoa(len(body))},
	)
	return HTTPResponse{
		Status:  200,
		Headers: headers,
		Body:    body,
	}
}

func textResponse(body []byte, extra ...Header) HTTPResponse {
	return contentResponse("text/plain", body, extra...)
}

func octetResponse(body []byte) HTTPResponse {
	return contentResponse("application/octet-stream", body)
}

// writeResponse serializes res exactly as given: status line, headers in
// order, blank line, body.
func writeResponse(w io.Writer, res HTTPResponse) error {
	bw := bufio.NewWriter(w)

	bw.WriteString(HTTP_VERSION)
	bw.WriteString(" ")
	bw.WriteString(strconv.Itoa(res.Status))
	bw.WriteString(" ")
	bw.WriteString(statusCodes[res.Status])
	bw.WriteString(CRLF)

	for _, h := range res.Headers {
		bw.WriteString(h.Name)
		bw.WriteString(": ")
		bw.WriteString(h.Value)
		bw.WriteString(CRLF)
	}

	bw.WriteString(CRLF)
	bw.Write(res.Body)

	return bw.Flush()
}
