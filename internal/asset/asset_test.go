package asset

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 40, B: 10, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestTextureDownsamples(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bark.png"), pngBytes(t, 512, 256), 0o644))
	lib := NewLibrary(dir, 0)

	img, err := lib.Texture("/assets/bark.png")
	require.NoError(t, err)
	assert.Equal(t, 256, img.Bounds().Dx())
	assert.Equal(t, 128, img.Bounds().Dy())

	r, g, _, _ := img.At(10, 10).RGBA()
	assert.InDelta(t, 200, r>>8, 2)
	assert.InDelta(t, 40, g>>8, 2)
}

func TestTextureErrors(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.png"), []byte("plain text, not an image"), 0o644))
	lib := NewLibrary(dir, 64)

	_, err := lib.Texture("missing.png")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = lib.Texture("../etc/passwd")
	assert.ErrorIs(t, err, ErrInvalidName)

	_, err = lib.Texture("notes.png")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestDownsampleKeepsSmallImages(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 40))
	assert.Same(t, img, Downsample(img, 64))

	out := Downsample(img, 8)
	assert.Equal(t, image.Rect(0, 0, 2, 8), out.Bounds())
}

func upload(t *testing.T, h *Handler, name string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/assets/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.Upload(rec, req)
	return rec
}

func TestUploadAndServe(t *testing.T) {
	lib := NewLibrary(t.TempDir(), 0)
	h := NewHandler(lib)

	rec := upload(t, h, "leaf.png", pngBytes(t, 32, 16))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp TextureInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, strings.HasPrefix(resp.ID, "asset_"))
	assert.Equal(t, 32, resp.Width)
	assert.Equal(t, 16, resp.Height)
	assert.Equal(t, "leaf.png", resp.Filename)
	assert.Equal(t, "png", resp.SourceFormat)

	img, err := lib.Texture(resp.URL)
	require.NoError(t, err)
	assert.Equal(t, 32, img.Bounds().Dx())

	get := httptest.NewRecorder()
	h.Serve().ServeHTTP(get, httptest.NewRequest(http.MethodGet, resp.URL, nil))
	assert.Equal(t, http.StatusOK, get.Code)
	assert.Contains(t, get.Header().Get("Cache-Control"), "immutable")

	del := httptest.NewRecorder()
	h.Delete(del, httptest.NewRequest(http.MethodDelete, "/api/assets/"+resp.ID, nil), resp.ID)
	assert.Equal(t, http.StatusNoContent, del.Code)

	del = httptest.NewRecorder()
	h.Delete(del, httptest.NewRequest(http.MethodDelete, "/api/assets/"+resp.ID, nil), resp.ID)
	assert.Equal(t, http.StatusNotFound, del.Code)
	assert.ErrorIs(t, lib.Remove(resp.ID), ErrNotFound)
	assert.ErrorIs(t, lib.Remove("../etc/passwd"), ErrInvalidName)
}

func TestUploadRejectsNonImages(t *testing.T) {
	h := NewHandler(NewLibrary(t.TempDir(), 0))
	rec := upload(t, h, "fake.png", []byte("#!/bin/sh\necho hi\n"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "only PNG and JPEG")
}
