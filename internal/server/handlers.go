package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"ferry/internal/api"
)

// apiError pairs an HTTP status with the underlying failure.
type apiError struct {
	status int
	err    error
}

func (e apiError) Error() string {
	if e.err == nil {
		return http.StatusText(e.status)
	}
	return e.err.Error()
}

func (e apiError) Unwrap() error {
	return e.err
}

func makeAPIError(status int, err error) error {
	if err == nil {
		err = errors.New(http.StatusText(status))
	}
	var existing apiError
	if errors.As(err, &existing) && existing.status != 0 {
		return existing
	}
	return apiError{status: status, err: err}
}

func unauthorized() error {
	// Never distinguishes a missing token from a wrong one.
	return makeAPIError(http.StatusForbidden, errors.New("unauthorized"))
}

func badRequest(err error) error {
	return makeAPIError(http.StatusBadRequest, err)
}

func notFound(err error) error {
	return makeAPIError(http.StatusNotFound, err)
}

func storageFault(err error) error {
	return makeAPIError(http.StatusInternalServerError, err)
}

func httpStatusFromError(err error) int {
	var apiErr apiError
	if errors.As(err, &apiErr) {
		return apiErr.status
	}
	return http.StatusInternalServerError
}

// errorMessage returns the client-visible message for err. Internal detail
// never leaks on 5xx responses.
func errorMessage(status int, err error) string {
	if status >= 500 {
		return "internal error"
	}
	return err.Error()
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log().Error("write json response", "status", status, "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := httpStatusFromError(err)
	s.logRequestError(r, status, err)
	s.writeJSON(w, status, api.ErrorResponse{Error: errorMessage(status, err)})
}

// writePlainError is the non-JSON fallback used by the web routes.
func (s *Server) writePlainError(w http.ResponseWriter, r *http.Request, err error) {
	status := httpStatusFromError(err)
	s.logRequestError(r, status, err)
	http.Error(w, errorMessage(status, err), status)
}

func (s *Server) logRequestError(r *http.Request, status int, err error) {
	fields := []any{"status", status, "error", err}
	if r != nil {
		fields = append(fields, "method", r.Method, "path", r.URL.Path, "remote_addr", r.RemoteAddr)
	}
	switch {
	case status >= 500:
		s.log().Error("request error", fields...)
	case status == http.StatusForbidden:
		s.log().Warn("request rejected", fields...)
	default:
		s.log().Debug("request rejected", fields...)
	}
}

// isBodyTooLarge detects http.MaxBytesReader aborts anywhere in the chain.
func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

func requestTooLarge() error {
	return badRequest(fmt.Errorf("request body too large"))
}
