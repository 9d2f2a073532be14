package httpapi

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/brandonbohn/adebackend/internal/service"

	"go.uber.org/zap"
)

// ContentHandler serves the marketing site's sections. Reads return the
// stored JSON unwrapped; the frontend consumes it directly.
type ContentHandler struct {
	contentService *service.ContentService
	logger         *zap.Logger
}

func NewContentHandler(contentService *service.ContentService, logger *zap.Logger) *ContentHandler {
	return &ContentHandler{contentService: contentService, logger: logger}
}

func (h *ContentHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	all, err := h.contentService.GetAll(r.Context())
	if err != nil {
		writeError(w, h.logger, "GetAllContent", err)
		return
	}
	writeJSON(w, http.StatusOK, all)
}

func (h *ContentHandler) ListSections(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, List(h.contentService.Sections()))
}

func (h *ContentHandler) GetSection(w http.ResponseWriter, r *http.Request) {
	data, err := h.contentService.GetSection(r.Context(), r.PathValue("section"))
	if err != nil {
		writeError(w, h.logger, "GetSection", err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

// UpdateSection PUT /api/content/{section} replaces the whole section.
func (h *ContentHandler) UpdateSection(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, h.logger, "UpdateSection", service.ValidationError("", "Unable to read request body"))
		return
	}
	data, err := h.contentService.UpdateSection(r.Context(), r.PathValue("section"), body)
	if err != nil {
		writeError(w, h.logger, "UpdateSection", err)
		return
	}
	writeJSON(w, http.StatusOK, Done[json.RawMessage]("Content updated", data))
}
