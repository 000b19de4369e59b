package server

import (
	"net/http"
)

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)

	// JSON API, bearer-token auth.
	mux.HandleFunc("POST /api/upload", s.handleUpload)
	mux.HandleFunc("GET /api/files", s.handleListFiles)
	mux.HandleFunc("GET /api/download/{id}", s.handleDownload)
	mux.HandleFunc("DELETE /api/files/{id}", s.handleDelete)

	// Web interface, api_key form/query auth.
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /upload-web", s.handleWebUpload)
	mux.HandleFunc("GET /download/{id}", s.handleWebDownload)
	mux.HandleFunc("GET /delete/{id}", s.handleWebDelete)

	return mux
}
