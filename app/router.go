package main

import (
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"slices"
	"strings"
)

var GZIP_ENCODING = "gzip"

type Route struct {
	pathCondition func(segments [][]byte) bool
	handler       func(req *Request) (HTTPResponse, error)
}

type Router []Route

func newRouter(cfg ServerConfig) Router {
	files := fileHandler{directory: cfg.FileDirectory}

	return Router{
		Route{
			pathCondition: func(segments [][]byte) bool {
				return len(segments) == 0 || (len(segments) == 1 && len(segments[0]) == 0)
			},
			handler: func(req *Request) (HTTPResponse, error) {
				return emptyResponse(200), nil
			},
		},
		Route{
			pathCondition: func(segments [][]byte) bool {
				return len(segments) >= 1 && string(segments[0]) == "echo"
			},
			handler: echoHandler,
		},
		Route{
			pathCondition: func(segments [][]byte) bool {
				return len(segments) == 1 && string(segments[0]) == "user-agent"
			},
			handler: userAgentHandler,
		},
		Route{
			pathCondition: func(segments [][]byte) bool {
				return len(segments) == 2 && string(segments[0]) == "files"
			},
			handler: func(req *Request) (HTTPResponse, error) {
				name := string(req.Segments[1])
				switch req.Method {
				case MethodGet:
					return files.get(name)
				case MethodPost:
					return files.post(name, req)
				default:
					return emptyResponse(405), nil
				}
			},
		},
	}
}

// dispatch runs the first route whose shape matches the request path.
func (rt Router) dispatch(req *Request) (HTTPResponse, error) {
	for _, route := range rt {
		if !route.pathCondition(req.Segments) {
			continue
		}
		return route.handler(req)
	}
	return emptyResponse(404), nil
}

func echoHandler(req *Request) (HTTPResponse, error) {
	body := bytes.Join(req.Segments[1:], []byte("/"))

	if acceptsGzip(req) {
		compressed, err := compress(body)
		if err != nil {
			return HTTPResponse{}, err
		}
		return textResponse(compressed, Header{"Content-Encoding", GZIP_ENCODING}), nil
	}
	return textResponse(body), nil
}

func acceptsGzip(req *Request) bool {
	v, ok := req.Header("Accept-Encoding")
	if !ok {
		return false
	}
	encodings := strings.Split(v, ",")
	for i := range encodings {
		encodings[i] = strings.TrimSpace(encodings[i])
	}
	return slices.Contains(encodings, GZIP_ENCODING)
}

func userAgentHandler(req *Request) (HTTPResponse, error) {
	userAgent, ok := req.Header("User-Agent")
	if !ok {
		return HTTPResponse{}, fmt.Errorf("%w: User-Agent", ErrMissingHeader)
	}
	return textResponse([]byte(userAgent)), nil
}

type fileHandler struct {
	directory string
}

func (f fileHandler) get(name string) (HTTPResponse, error) {
	if f.directory == "" || name == "" {
		return emptyResponse(404), nil
	}
	path, err := findFile(f.directory, name)
	if errors.Is(err, ErrFileNotFound) {
		return emptyResponse(404), nil
	}
	if err != nil {
		return HTTPResponse{}, err
	}
	data, err := readFile(path)
	if err != nil {
		return HTTPResponse{}, err
	}
	return octetResponse(data), nil
}

func (f fileHandler) post(name string, req *Request) (HTTPResponse, error) {
	if f.directory == "" || name == "" {
		return emptyResponse(404), nil
	}
	body, err := req.Body()
	if err != nil {
		return HTTPResponse{}, err
	}
	if err := writeFile(f.directory, name, body); err != nil {
		return HTTPResponse{}, err
	}
	return emptyResponse(201), nil
}

func compress(body []byte) ([]byte, error) {
	var b bytes.Buffer

	gz := gzip.NewWriter(&b)
	defer gz.Close()

	if _, err := gz.Write(body); err != nil {
		return nil, err
	}

	// Explicitly close the writer: https://www.joeshaw.org/dont-defer-close-on-writable-files/
	if err := gz.Close(); err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}
