package server

import (
	"fmt"
	"html/template"
	"net/http"
	"net/url"

	"github.com/dustin/go-humanize"
)

const indexTemplateText = `<!DOCTYPE html>
<html>
<head>
    <title>ferry</title>
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <style>
        body { font-family: -apple-system, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
               line-height: 1.6; color: #333; max-width: 800px; margin: 0 auto; padding: 20px; }
        h1, h2 { color: #2c3e50; }
        .container { background: #f9f9f9; border-radius: 8px; padding: 20px; margin-bottom: 20px; }
        table { width: 100%; border-collapse: collapse; margin: 20px 0; }
        th, td { text-align: left; padding: 10px; border-bottom: 1px solid #ddd; }
        th { background-color: #f2f2f2; }
        .button { display: inline-block; background-color: #3498db; color: white; padding: 6px 14px;
                  text-decoration: none; border-radius: 4px; border: none; cursor: pointer; }
        .delete { background-color: #e74c3c; }
        code { background: #f5f5f5; padding: 2px 5px; border-radius: 3px; font-family: monospace; }
    </style>
</head>
<body>
    <h1>ferry file transfer</h1>

    <div class="container">
        <h2>Upload</h2>
        <form action="/upload-web" method="post" enctype="multipart/form-data">
            <input type="file" name="file" required>
            <input type="hidden" name="api_key" value="{{.APIKey}}">
            <button type="submit" class="button">Upload</button>
        </form>
        <p>Maximum upload size: {{.MaxUpload}}</p>
    </div>

    <div class="container">
        <h2>Files</h2>
        {{if .Files}}
        <table>
            <tr><th>Filename</th><th>Size</th><th>Uploaded</th><th>Actions</th></tr>
            {{range .Files}}
            <tr>
                <td>{{.Name}}</td>
                <td>{{.SizeFormatted}}</td>
                <td>{{.Timestamp}}</td>
                <td>
                    <a href="/download/{{.ID}}?api_key={{$.APIKey}}" class="button">Download</a>
                    <a href="/delete/{{.ID}}?api_key={{$.APIKey}}" class="button delete">Delete</a>
                </td>
            </tr>
            {{end}}
        </table>
        {{else}}
        <p>No files available.</p>
        {{end}}
    </div>

    <div class="container">
        <h2>API</h2>
        <p><strong>Base URL:</strong> <code>{{.BaseURL}}</code></p>
        <ul>
            <li><code>POST /api/upload</code> — upload a file (multipart field <code>file</code>)</li>
            <li><code>GET /api/files</code> — list files</li>
            <li><code>GET /api/download/{id}</code> — download a file</li>
            <li><code>DELETE /api/files/{id}</code> — delete a file</li>
        </ul>
        <p>All API requests require an <code>Authorization: Bearer &lt;token&gt;</code> header.</p>
    </div>
</body>
</html>
`

var indexTemplate = template.Must(template.New("index").Parse(indexTemplateText))

type indexFile struct {
	ID            string
	Name          string
	SizeFormatted string
	Timestamp     string
}

type indexData struct {
	APIKey    string
	BaseURL   string
	MaxUpload string
	Files     []indexFile
}

// authorizeWeb gates a web request on the api_key form or query value.
func (s *Server) authorizeWeb(w http.ResponseWriter, r *http.Request) bool {
	if !s.guard.Authorize(r.FormValue("api_key")) {
		s.writePlainError(w, r, unauthorized())
		return false
	}
	return true
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if !s.authorizeWeb(w, r) {
		return
	}

	records := s.service.List(r.Context())
	files := make([]indexFile, 0, len(records))
	for _, rec := range records {
		files = append(files, indexFile{
			ID:            rec.ID,
			Name:          rec.Name,
			SizeFormatted: humanize.Bytes(uint64(rec.Size)),
			Timestamp:     rec.CreatedAt.Format(timestampLayout),
		})
	}

	data := indexData{
		APIKey:    r.FormValue("api_key"),
		BaseURL:   requestScheme(r) + "://" + r.Host,
		MaxUpload: humanize.Bytes(uint64(s.maxUploadBytes)),
		Files:     files,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, data); err != nil {
		s.log().Error("render index", "error", err)
	}
}

func (s *Server) handleWebUpload(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > s.maxUploadBytes {
		s.writePlainError(w, r, requestTooLarge())
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)

	// The form carries the credential, so the body must be parsed before
	// the auth check; ParseMultipartForm spills large parts to temp files
	// and nothing touches the registry or blob store until authorized.
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		if isBodyTooLarge(err) {
			s.writePlainError(w, r, requestTooLarge())
			return
		}
		s.writePlainError(w, r, badRequest(fmt.Errorf("malformed multipart request")))
		return
	}
	if !s.authorizeWeb(w, r) {
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.writePlainError(w, r, badRequest(fmt.Errorf("no file part in the request")))
		return
	}
	defer file.Close()
	if header.Filename == "" {
		s.writePlainError(w, r, badRequest(fmt.Errorf("no file selected")))
		return
	}

	if _, err := s.service.Upload(r.Context(), header.Filename, file); err != nil {
		s.writePlainError(w, r, err)
		return
	}

	http.Redirect(w, r, indexURL(r.FormValue("api_key")), http.StatusSeeOther)
}

func (s *Server) handleWebDownload(w http.ResponseWriter, r *http.Request) {
	if !s.authorizeWeb(w, r) {
		return
	}
	s.streamFile(w, r, r.PathValue("id"), s.writePlainError)
}

func (s *Server) handleWebDelete(w http.ResponseWriter, r *http.Request) {
	if !s.authorizeWeb(w, r) {
		return
	}
	if err := s.service.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.writePlainError(w, r, err)
		return
	}
	http.Redirect(w, r, indexURL(r.FormValue("api_key")), http.StatusSeeOther)
}

func indexURL(apiKey string) string {
	return "/?api_key=" + url.QueryEscape(apiKey)
}

func requestScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	return "http"
}
