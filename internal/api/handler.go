package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/phytogl/phytogl/internal/auth"
	"github.com/phytogl/phytogl/internal/ctrlpoint"
	"github.com/phytogl/phytogl/internal/document"
	"github.com/phytogl/phytogl/internal/export"
	"github.com/phytogl/phytogl/internal/store"
	"github.com/phytogl/phytogl/internal/typeid"
)

const maxDocumentSize = 10 << 20 // 10MB

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxDocumentSize))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	sc, err := h.service.Create(r.Context(), data)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	slog.Info("scene created", "scene", sc.ID, "user", auth.SubjectFromContext(r.Context()))
	writeJSON(w, http.StatusCreated, sc)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	sc, err := h.service.Get(r.Context(), mux.Vars(r)["sceneId"])
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, sc)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	scenes, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, scenes)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), mux.Vars(r)["sceneId"]); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Reports(w http.ResponseWriter, r *http.Request) {
	reports, err := h.service.Reports(r.Context(), mux.Vars(r)["sceneId"])
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, reports)
}

func (h *Handler) Surface(w http.ResponseWriter, r *http.Request) {
	rep, err := h.service.Surface(r.Context(), mux.Vars(r)["sceneId"])
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, rep)
}

func (h *Handler) BoundingBox(w http.ResponseWriter, r *http.Request) {
	rep, err := h.service.BoundingBox(r.Context(), mux.Vars(r)["sceneId"])
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, rep)
}

func (h *Handler) Project(w http.ResponseWriter, r *http.Request) {
	_, rep, err := h.service.Project(r.Context(), mux.Vars(r)["sceneId"], nil)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, rep)
}

// ProjectionImage renders the projection as PNG. Query parameters: kind
// (color or depth) and thumb (longest edge in pixels).
func (h *Handler) ProjectionImage(w http.ResponseWriter, r *http.Request) {
	kind, err := export.ParseImageKind(r.URL.Query().Get("kind"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	thumb := 0
	if v := r.URL.Query().Get("thumb"); v != "" {
		thumb, err = strconv.Atoi(v)
		if err != nil || thumb < 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "thumb must be a positive integer"})
			return
		}
	}

	res, _, err := h.service.Project(r.Context(), mux.Vars(r)["sceneId"], nil)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WritePNG(&buf, export.ProjectionImage(res, kind), thumb); err != nil {
		handleServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(buf.Bytes())
}

// CtrlPoints draws the control polygons as SVG; the view query parameter
// picks the drawing plane.
func (h *Handler) CtrlPoints(w http.ResponseWriter, r *http.Request) {
	view, err := ctrlpoint.ParseView(r.URL.Query().Get("view"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	var buf bytes.Buffer
	if err := h.service.CtrlPoints(r.Context(), mux.Vars(r)["sceneId"], view, &buf); err != nil {
		handleServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write(buf.Bytes())
}

// Sample returns the bundled sample plant, in YAML when format=yaml.
func (h *Handler) Sample(w http.ResponseWriter, r *http.Request) {
	doc := document.NewSampleDocument(typeid.NewSceneID())
	if r.URL.Query().Get("format") != "yaml" {
		writeJSON(w, http.StatusOK, doc)
		return
	}
	data, err := doc.YAML()
	if err != nil {
		handleServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/yaml")
	w.Write(data)
}

func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.Is(err, ErrInvalidDocument):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "request cancelled"})
	default:
		slog.Error("service error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
