package asset

import (
	"encoding/json"
	"errors"
	"image"
	"io"
	"log/slog"
	"net/http"
)

const maxUploadSize = 10 << 20

var (
	errTooLarge    = errors.New("file too large (max 10MB)")
	errMissingFile = errors.New("missing file field")
)

// TextureInfo describes a stored texture.
type TextureInfo struct {
	ID           string `json:"id"`
	URL          string `json:"url"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	SourceFormat string `json:"sourceFormat"`
	Filename     string `json:"filename"`
}

// Handler serves texture upload, retrieval and removal.
type Handler struct {
	lib *Library
}

func NewHandler(lib *Library) *Handler {
	return &Handler{lib: lib}
}

// Upload handles POST /assets/upload, a multipart form with a "file" field.
// PNG and JPEG are accepted after sniffing the content; textures are stored
// as PNG.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	img, format, filename, err := decodeUpload(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := h.lib.Store(img)
	if err != nil {
		slog.Error("store texture", "error", err, "file", filename)
		writeError(w, http.StatusInternalServerError, "failed to save file")
		return
	}
	slog.Debug("texture stored", "asset", id, "format", format)

	b := img.Bounds()
	writeJSON(w, http.StatusCreated, TextureInfo{
		ID:           id,
		URL:          "/assets/" + id + ".png",
		Width:        b.Dx(),
		Height:       b.Dy(),
		SourceFormat: format,
		Filename:     filename,
	})
}

func decodeUpload(r *http.Request) (image.Image, string, string, error) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return nil, "", "", errTooLarge
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, "", "", errMissingFile
	}
	defer file.Close()

	format, err := Sniff(file)
	if err != nil {
		return nil, "", "", err
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, "", "", err
	}
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, "", "", errors.New("invalid image: " + err.Error())
	}
	return img, format, header.Filename, nil
}

// Serve returns a handler for GET /assets/{name}. Asset names are never
// reused, so responses are cached forever.
func (h *Handler) Serve() http.Handler {
	fs := http.FileServer(http.Dir(h.lib.dir))
	return http.StripPrefix("/assets/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		fs.ServeHTTP(w, r)
	}))
}

// Delete removes the texture assetID.
func (h *Handler) Delete(w http.ResponseWriter, _ *http.Request, assetID string) {
	switch err := h.lib.Remove(assetID); {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, ErrInvalidName):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error("remove texture", "error", err, "asset", assetID)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
