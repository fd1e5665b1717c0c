package api

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/dgallion1/talkgest/internal/parser"
	"github.com/dgallion1/talkgest/internal/talk"
)

// handleParse parses an uploaded talk page. The body is either raw HTML or a
// multipart form with a "file" field, whose extension picks the parser.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	// Extra 1MB for form overhead.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxHTMLBytes+1024*1024)

	filename := "upload.html"
	var src io.Reader = r.Body
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
			return
		}
		defer r.MultipartForm.RemoveAll()

		file, header, err := r.FormFile("file")
		if err != nil {
			jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
			return
		}
		defer file.Close()
		filename = sanitizeFilename(header.Filename)
		src = file
	}

	if !parser.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(io.LimitReader(src, s.cfg.MaxHTMLBytes+1))
	if err != nil {
		jsonError(w, "failed to read body", http.StatusBadRequest)
		return
	}
	if int64(len(data)) > s.cfg.MaxHTMLBytes {
		jsonError(w, fmt.Sprintf("body exceeds max size (%d bytes)", s.cfg.MaxHTMLBytes), http.StatusRequestEntityTooLarge)
		return
	}

	p, err := parser.ForFile(filename)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	doc, err := p.Parse(bytes.NewReader(data), filename)
	if err != nil {
		jsonError(w, "failed to parse upload: "+err.Error(), http.StatusBadRequest)
		return
	}

	lang := strings.ToLower(r.URL.Query().Get("lang"))
	log := s.log.With("filename", filename, "lang", lang)
	out, err := s.parseDocument(doc.Root, lang, len(data), log)
	if err != nil {
		log.Error("encode failed", "error", err)
		jsonError(w, "failed to encode topics", http.StatusInternalServerError)
		return
	}

	if r.URL.Query().Get("validate") == "true" {
		if err := talk.ValidateOutput(out); err != nil {
			log.Error("output failed schema validation", "error", err)
			jsonError(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
	writeTalk(w, out, "")
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	// Remove any path separators that might have survived.
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
