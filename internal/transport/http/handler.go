package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sandevgo/bioprep/internal/providers/metis"
	"github.com/sandevgo/bioprep/internal/record"
	"github.com/sandevgo/bioprep/internal/service/batch"
	"github.com/sandevgo/bioprep/internal/service/face"
	"github.com/sandevgo/bioprep/pkg/log"
)

const maxBodySize = 1 << 20

// Handler exposes biography and face description generation over HTTP.
// Either dependency may be nil when its bot is not configured.
type Handler struct {
	bio  batch.BiographyGenerator
	face batch.FaceDescriber
}

func NewHandler(bio batch.BiographyGenerator, face batch.FaceDescriber) *Handler {
	return &Handler{
		bio:  bio,
		face: face,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/healthz", h.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/biography", h.handleBiography)
		r.Post("/face", h.handleFace)
	})
}

type biographyResponse struct {
	Biography string `json:"biography"`
}

type faceRequest struct {
	Images []string `json:"images"`
}

type faceResponse struct {
	Description string `json:"description,omitempty"`
	Unclear     bool   `json:"unclear"`
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleBiography takes a person record as the request body.
func (h *Handler) handleBiography(w http.ResponseWriter, r *http.Request) {
	if h.bio == nil {
		writeError(w, http.StatusNotImplemented, "biography bot is not configured")
		return
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not read request body")
		return
	}
	p, err := record.ParsePerson(data)
	if err != nil {
		writeError(w, http.StatusBadRequest, "request body must be a person record object")
		return
	}

	text, err := h.bio.Generate(r.Context(), p)
	if err != nil {
		log.FromCtx(r.Context()).Error().Err(err).Str("person", p.Label()).Msg("biography request failed")
		writeError(w, statusFor(err), "could not generate biography")
		return
	}
	writeJSON(w, http.StatusOK, biographyResponse{Biography: text})
}

func (h *Handler) handleFace(w http.ResponseWriter, r *http.Request) {
	if h.face == nil {
		writeError(w, http.StatusNotImplemented, "face bot is not configured")
		return
	}

	var req faceRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodySize)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	d, err := h.face.Describe(r.Context(), req.Images)
	if err != nil {
		if errors.Is(err, face.ErrNoImages) {
			writeError(w, http.StatusBadRequest, "at least one image url is required")
			return
		}
		log.FromCtx(r.Context()).Error().Err(err).Msg("face request failed")
		writeError(w, statusFor(err), "could not describe face")
		return
	}
	writeJSON(w, http.StatusOK, faceResponse{Description: d.Text, Unclear: d.Unclear})
}

func statusFor(err error) int {
	if errors.Is(err, metis.ErrRequestFailed) || errors.Is(err, metis.ErrUnexpectedResponse) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if data != nil {
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		_ = enc.Encode(data)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
