package httpapi

import (
	"net/http"
	"strings"

	"github.com/brandonbohn/adebackend/internal/repository"
	"github.com/brandonbohn/adebackend/internal/service"

	"go.uber.org/zap"
)

type DonorsHandler struct {
	donorService *service.DonorService
	logger       *zap.Logger
}

func NewDonorsHandler(donorService *service.DonorService, logger *zap.Logger) *DonorsHandler {
	return &DonorsHandler{donorService: donorService, logger: logger}
}

func (h *DonorsHandler) CreateDonor(w http.ResponseWriter, r *http.Request) {
	var req service.CreateDonorRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.logger, "CreateDonor", err)
		return
	}
	resp, err := h.donorService.CreateDonor(r.Context(), req)
	if err != nil {
		writeError(w, h.logger, "CreateDonor", err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *DonorsHandler) ListDonors(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	out, err := h.donorService.ListDonors(r.Context(), repository.DonorsFilter{
		Status: strings.TrimSpace(q.Get("status")),
		Source: strings.TrimSpace(q.Get("source")),
	})
	if err != nil {
		writeError(w, h.logger, "ListDonors", err)
		return
	}
	writeJSON(w, http.StatusOK, List(out))
}

func (h *DonorsHandler) GetDonor(w http.ResponseWriter, r *http.Request) {
	d, err := h.donorService.GetDonor(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, h.logger, "GetDonor", err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(d))
}

func (h *DonorsHandler) DeleteDonor(w http.ResponseWriter, r *http.Request) {
	if err := h.donorService.DeleteDonor(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, h.logger, "DeleteDonor", err)
		return
	}
	writeJSON(w, http.StatusOK, Done[any]("Donor deleted", nil))
}
