// Package server implements the ferry HTTP API and web interface.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"ferry/internal/auth"
	"ferry/internal/blobstore"
	"ferry/internal/registry"
)

const (
	readHeaderTimeout = 5 * time.Second
	idleTimeout       = 60 * time.Second

	defaultMaxUploadBytes = 100 << 20 // 100 MiB
	multipartMemory       = 8 << 20   // 8 MiB

	timestampLayout = "2006-01-02 15:04:05"
)

// Options tunes server behavior.
type Options struct {
	// MaxUploadBytes caps upload request bodies. Zero selects the
	// 100 MiB default.
	MaxUploadBytes int64
}

// Server wraps the HTTP handlers for the ferry API.
type Server struct {
	addr           string
	guard          *auth.Guard
	service        *TransferService
	logger         *slog.Logger
	maxUploadBytes int64
}

// New creates a server for addr over the given registry and blob store.
func New(addr string, reg *registry.Registry, blobs blobstore.Store, guard *auth.Guard, logger *slog.Logger, opts Options) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	maxUpload := opts.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = defaultMaxUploadBytes
	}
	return &Server{
		addr:           addr,
		guard:          guard,
		service:        NewTransferService(reg, blobs, logger),
		logger:         logger,
		maxUploadBytes: maxUpload,
	}
}

// Handler returns the full route tree wrapped in request logging.
func (s *Server) Handler() http.Handler {
	return s.withRequestLogging(s.routes())
}

// ListenAndServe starts the HTTP server. Read and write deadlines are left
// unset: transfers of large files legitimately outlive any fixed deadline.
func (s *Server) ListenAndServe() error {
	s.log().Info("starting server", "addr", s.addr)
	server := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
		IdleTimeout:       idleTimeout,
	}
	return server.ListenAndServe()
}

func (s *Server) log() *slog.Logger {
	if s != nil && s.logger != nil {
		return s.logger
	}
	return slog.Default()
}
