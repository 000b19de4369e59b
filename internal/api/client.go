package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	downloadChunkSize = 32 * 1024
	errorBodyLimit    = 64 * 1024
)

// TransferStats reports bytes moved and wall-clock time for one transfer.
type TransferStats struct {
	Bytes   int64
	Elapsed time.Duration
}

// BytesPerSecond returns the transfer rate, or 0 for instantaneous
// transfers.
func (s TransferStats) BytesPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Bytes) / s.Elapsed.Seconds()
}

// ProgressFunc receives download progress. total is 0 when the server did
// not declare a content length.
type ProgressFunc func(done, total int64)

// Client is an HTTP client for the ferry API. Every request carries the
// configured bearer token.
type Client struct {
	baseURL   string
	http      *http.Client
	authToken string
}

// NewClient creates a client for baseURL. No global request timeout is set:
// transfers of large files legitimately run long, and callers cancel via
// context.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      &http.Client{},
		authToken: strings.TrimSpace(token),
	}
}

// Ping checks whether the server is reachable.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil)
}

// Upload streams the file at path as a multipart request body. The file is
// never buffered whole in memory.
func (c *Client) Upload(ctx context.Context, path string) (UploadResponse, TransferStats, error) {
	var resp UploadResponse
	var stats TransferStats

	f, err := os.Open(path)
	if err != nil {
		return resp, stats, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return resp, stats, err
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		part, err := mw.CreateFormFile("file", filepath.Base(path))
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, f); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(mw.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/upload", pr)
	if err != nil {
		return resp, stats, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	c.setAuthHeader(req)

	start := time.Now()
	httpResp, err := c.http.Do(req)
	if err != nil {
		return resp, stats, err
	}
	defer httpResp.Body.Close()
	stats = TransferStats{Bytes: info.Size(), Elapsed: time.Since(start)}

	if httpResp.StatusCode >= 400 {
		return resp, stats, decodeError(httpResp)
	}
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return resp, stats, err
	}
	return resp, stats, nil
}

// List fetches all file records on the server.
func (c *Client) List(ctx context.Context) ([]FileInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/files", nil)
	if err != nil {
		return nil, err
	}
	c.setAuthHeader(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, decodeError(resp)
	}
	var list ListResponse
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, err
	}
	return list.Files, nil
}

// Download fetches the file for id, writing it in fixed-size chunks to
// destPath as bytes arrive. When destPath is a directory, the destination
// filename comes from the server's Content-Disposition header. progress, if
// non-nil, is invoked after each chunk. Returns the path written.
func (c *Client) Download(ctx context.Context, id, destPath string, progress ProgressFunc) (string, TransferStats, error) {
	var stats TransferStats

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/download/"+url.PathEscape(id), nil)
	if err != nil {
		return "", stats, err
	}
	c.setAuthHeader(req)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return "", stats, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", stats, decodeError(resp)
	}

	target, err := resolveDestination(destPath, id, resp.Header.Get("Content-Disposition"))
	if err != nil {
		return "", stats, err
	}

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return "", stats, err
	}
	defer out.Close()

	total := resp.ContentLength
	if total < 0 {
		total = 0
	}

	var done int64
	buf := make([]byte, downloadChunkSize)
	for {
		if err := ctx.Err(); err != nil {
			return target, stats, err
		}
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			if _, err := out.Write(buf[:n]); err != nil {
				return target, stats, err
			}
			done += int64(n)
			if progress != nil {
				progress(done, total)
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return target, stats, readErr
		}
	}

	stats = TransferStats{Bytes: done, Elapsed: time.Since(start)}
	return target, stats, nil
}

// Delete removes the file for id on the server.
func (c *Client) Delete(ctx context.Context, id string) (MessageResponse, error) {
	var resp MessageResponse

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/api/files/"+url.PathEscape(id), nil)
	if err != nil {
		return resp, err
	}
	c.setAuthHeader(req)

	httpResp, err := c.http.Do(req)
	if err != nil {
		return resp, err
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode >= 400 {
		return resp, decodeError(httpResp)
	}
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return resp, err
	}
	return resp, nil
}

func (c *Client) do(ctx context.Context, method, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	c.setAuthHeader(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) setAuthHeader(req *http.Request) {
	if c.authToken == "" || req == nil {
		return
	}
	req.Header.Set("Authorization", "Bearer "+c.authToken)
}

func resolveDestination(destPath, id, contentDisposition string) (string, error) {
	if destPath == "" {
		destPath = "."
	}
	info, err := os.Stat(destPath)
	if err == nil && info.IsDir() {
		name := filenameFromDisposition(contentDisposition)
		if name == "" {
			name = "download_" + id
		}
		return filepath.Join(destPath, filepath.Base(name)), nil
	}
	if err != nil && !os.IsNotExist(err) {
		return "", err
	}
	return destPath, nil
}

func filenameFromDisposition(value string) string {
	if value == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(value)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(params["filename"])
}

func decodeError(resp *http.Response) error {
	body, err := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
	if err != nil {
		return &APIError{Status: resp.StatusCode}
	}

	var errResp ErrorResponse
	if jsonErr := json.Unmarshal(body, &errResp); jsonErr == nil && errResp.Error != "" {
		return &APIError{Status: resp.StatusCode, Message: errResp.Error}
	}
	if message := strings.TrimSpace(string(body)); message != "" {
		return &APIError{Status: resp.StatusCode, Message: message}
	}
	return &APIError{Status: resp.StatusCode, Message: fmt.Sprintf("api error: %s", resp.Status)}
}
