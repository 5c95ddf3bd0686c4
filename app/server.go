package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"os"
	"runtime/debug"
	"time"
)

const listenAddress = "0.0.0.0:4221"

// ServerConfig is built once in main and only read afterwards.
type ServerConfig struct {
	ListenAddress string
	FileDirectory string
}

type Server struct {
	cfg    ServerConfig
	router Router
	logger *slog.Logger
}

func NewServer(cfg ServerConfig, logger *slog.Logger) *Server {
	return &Server{
		cfg:    cfg,
		router: newRouter(cfg),
		logger: logger,
	}
}

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	directoryPath := flag.String("directory", "", "The directory to serve files from.")
	flag.Parse()

	cfg := ServerConfig{
		ListenAddress: listenAddress,
		FileDirectory: *directoryPath,
	}

	if err := NewServer(cfg, slog.Default()).ListenAndServe(); err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func (s *Server) ListenAndServe() error {
	l, err := net.Listen("tcp", s.cfg.ListenAddress)
	if err != nil {
		return fmt.Errorf("failed to bind to %s: %w", s.cfg.ListenAddress, err)
	}
	return s.Serve(l)
}

// Serve accepts connections on l until it is closed, handling each one on its
// own goroutine.
func (s *Server) Serve(l net.Listener) error {
	defer l.Close()
	s.logger.Info("listening", "addr", l.Addr().String(), "directory", s.cfg.FileDirectory)

	var delay time.Duration
	for {
		c, err := l.Accept()
		if errors.Is(err, net.ErrClosed) {
			return nil
		}
		if err != nil {
			delay = acceptBackoff(delay)
			s.logger.Error("error accepting connection", "err", err, "retry_in", delay)
			time.Sleep(delay)
			continue
		}
		delay = 0

		go s.handleConnection(c)
	}
}

// acceptBackoff doubles the previous delay from 5ms up to one second.
func acceptBackoff(prev time.Duration) time.Duration {
	if prev == 0 {
		return 5 * time.Millisecond
	}
	return min(2*prev, time.Second)
}

func (s *Server) handleConnection(c net.Conn) {
	log := s.logger.With("remote", c.RemoteAddr().String())
	defer c.Close()
	defer func() {
		if r := recover(); r != nil {
			log.Error("panic serving connection", "panic", r, "stack", string(debug.Stack()))
		}
	}()

	req, err := readRequest(c)
	if err != nil {
		s.fail(c, log, err)
		return
	}
	log = log.With("method", req.Method.String(), "path", req.Path())

	res, err := s.router.dispatch(req)
	if err != nil {
		s.fail(c, log, err)
		return
	}

	if err := writeResponse(c, res); err != nil {
		log.Error("failed writing response", "err", err)
		return
	}
	log.Info("request served", "status", res.Status)
}

func (s *Server) fail(c net.Conn, log *slog.Logger, err error) {
	res, ok := errorResponse(err)
	if !ok {
		log.Debug("connection closed without request", "err", err)
		return
	}
	log.Warn("request failed", "status", res.Status, "err", err)
	if err := writeResponse(c, res); err != nil {
		log.Error("failed writing response", "err", err)
	}
}
