// Package api defines the wire types for the ferry HTTP API and a typed
// client speaking it.
package api

// UploadResponse is returned after a successful upload.
type UploadResponse struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
}

// FileInfo is one entry in a file listing.
type FileInfo struct {
	ID        string `json:"id"`
	Filename  string `json:"filename"`
	Size      int64  `json:"size"`
	Timestamp string `json:"timestamp"`
}

// ListResponse wraps a file listing.
type ListResponse struct {
	Files []FileInfo `json:"files"`
}

// MessageResponse carries a human-readable confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Error string `json:"error"`
}
