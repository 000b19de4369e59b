package server

import (
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"

	"ferry/internal/api"
	"ferry/internal/auth"
	"ferry/internal/registry"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// authorizeAPI gates an API request on the bearer token. Denied requests
// short-circuit before any registry or blob store access.
func (s *Server) authorizeAPI(w http.ResponseWriter, r *http.Request) bool {
	token := auth.TokenFromHeader(r.Header.Get("Authorization"))
	if !s.guard.Authorize(token) {
		s.writeError(w, r, unauthorized())
		return false
	}
	return true
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if !s.authorizeAPI(w, r) {
		return
	}

	// Oversized requests are rejected before any blob write begins;
	// MaxBytesReader backstops bodies with no declared length.
	if r.ContentLength > s.maxUploadBytes {
		s.writeError(w, r, requestTooLarge())
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)

	part, err := filePart(r)
	if err != nil {
		if isBodyTooLarge(err) {
			err = requestTooLarge()
		}
		s.writeError(w, r, badRequest(err))
		return
	}
	if part.FileName() == "" {
		s.writeError(w, r, badRequest(fmt.Errorf("no file selected")))
		return
	}

	rec, err := s.service.Upload(r.Context(), part.FileName(), part)
	if err != nil {
		if isBodyTooLarge(err) {
			err = requestTooLarge()
		}
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, api.UploadResponse{ID: rec.ID, Filename: rec.Name, Size: rec.Size})
}

// filePart streams through the multipart body until it reaches the "file"
// field, so upload content is never buffered whole.
func filePart(r *http.Request) (*multipart.Part, error) {
	mr, err := r.MultipartReader()
	if err != nil {
		return nil, fmt.Errorf("malformed multipart request")
	}
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			return nil, fmt.Errorf("no file part in the request")
		}
		if err != nil {
			if isBodyTooLarge(err) {
				return nil, err
			}
			return nil, fmt.Errorf("malformed multipart request")
		}
		if part.FormName() == "file" {
			return part, nil
		}
	}
}

func (s *Server) handleListFiles(w http.ResponseWriter, r *http.Request) {
	if !s.authorizeAPI(w, r) {
		return
	}
	s.writeJSON(w, http.StatusOK, api.ListResponse{Files: fileInfos(s.service.List(r.Context()))})
}

func fileInfos(records []registry.FileRecord) []api.FileInfo {
	infos := make([]api.FileInfo, 0, len(records))
	for _, rec := range records {
		infos = append(infos, api.FileInfo{
			ID:        rec.ID,
			Filename:  rec.Name,
			Size:      rec.Size,
			Timestamp: rec.CreatedAt.Format(timestampLayout),
		})
	}
	return infos
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	if !s.authorizeAPI(w, r) {
		return
	}
	s.streamFile(w, r, r.PathValue("id"), s.writeError)
}

// streamFile sends a stored blob as an attachment response. The body is
// copied in bounded chunks; the whole blob never resides in handler memory.
func (s *Server) streamFile(w http.ResponseWriter, r *http.Request, id string, writeErr func(http.ResponseWriter, *http.Request, error)) {
	rec, rc, err := s.service.Download(r.Context(), id)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Length", strconv.FormatInt(rec.Size, 10))
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": rec.Name}))
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, rc); err != nil {
		s.log().Error("stream download", "id", id, "error", err)
	}
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if !s.authorizeAPI(w, r) {
		return
	}
	if err := s.service.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, api.MessageResponse{Message: "file deleted successfully"})
}
