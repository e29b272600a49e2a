package api

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
)

const (
	assetDir       = "assets"
	maxUploadBytes = 50 << 20 // 50 MB
)

var assetTypeRe = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// AssetHandler serves and accepts asset files, grouped by type
// (assets/<type>/<filename> under the data root).
type AssetHandler struct {
	dataRoot string
}

// NewAssetHandler creates a handler rooted at the data directory.
func NewAssetHandler(dataRoot string) *AssetHandler {
	return &AssetHandler{dataRoot: dataRoot}
}

func (h *AssetHandler) assetPath(typ string) string {
	return filepath.Join(h.dataRoot, assetDir, typ)
}

// safeName validates the type and filename (no path separators, no
// traversal) and returns the absolute path under the assets dir.
func (h *AssetHandler) safeName(typ, name string) (string, error) {
	if !assetTypeRe.MatchString(typ) {
		return "", fmt.Errorf("invalid asset type: %s", typ)
	}
	if name == "" {
		return "", fmt.Errorf("filename is required")
	}
	cleaned := filepath.Clean(name)
	if cleaned != filepath.Base(cleaned) || strings.Contains(cleaned, "..") {
		return "", fmt.Errorf("invalid filename: %s", name)
	}
	abs := filepath.Join(h.assetPath(typ), cleaned)
	if !strings.HasPrefix(abs, h.assetPath(typ)+string(os.PathSeparator)) {
		return "", fmt.Errorf("path escapes assets directory")
	}
	return abs, nil
}

// ServeFile handles GET /assets/{type}/{filename}. The Content-Type is
// inferred from the file extension.
func (h *AssetHandler) ServeFile(w http.ResponseWriter, r *http.Request) {
	typ := chi.URLParam(r, "type")
	filename := chi.URLParam(r, "filename")
	abs, err := h.safeName(typ, filename)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if _, statErr := os.Stat(abs); os.IsNotExist(statErr) {
		http.NotFound(w, r)
		return
	}
	if ct := mime.TypeByExtension(filepath.Ext(abs)); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	http.ServeFile(w, r, abs)
}

// Upload handles POST /api/assets/{type} (multipart/form-data, field "file").
func (h *AssetHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("file too large or invalid multipart"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("missing 'file' field in multipart form"))
		return
	}
	defer file.Close()

	typ := chi.URLParam(r, "type")
	abs, err := h.safeName(typ, header.Filename)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}

	if err := os.MkdirAll(h.assetPath(typ), 0o755); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to create assets dir"))
		return
	}

	dst, err := os.Create(abs)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to create file"))
		return
	}
	defer dst.Close()

	written, err := io.Copy(dst, file)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to write file"))
		return
	}

	writeJSON(w, http.StatusCreated, AssetUploadResponse{
		Filename: header.Filename,
		Type:     typ,
		Size:     written,
		URL:      "/assets/" + typ + "/" + header.Filename,
	})
}
