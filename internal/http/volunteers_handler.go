package httpapi

import (
	"net/http"
	"strings"

	"github.com/brandonbohn/adebackend/internal/repository"
	"github.com/brandonbohn/adebackend/internal/service"

	"go.uber.org/zap"
)

type VolunteersHandler struct {
	volunteerService *service.VolunteerService
	logger           *zap.Logger
}

func NewVolunteersHandler(volunteerService *service.VolunteerService, logger *zap.Logger) *VolunteersHandler {
	return &VolunteersHandler{volunteerService: volunteerService, logger: logger}
}

func (h *VolunteersHandler) CreateVolunteer(w http.ResponseWriter, r *http.Request) {
	var req service.CreateVolunteerRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.logger, "CreateVolunteer", err)
		return
	}
	resp, err := h.volunteerService.CreateVolunteer(r.Context(), req)
	if err != nil {
		writeError(w, h.logger, "CreateVolunteer", err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// ListVolunteers GET /api/volunteers?status=&basedIn=
func (h *VolunteersHandler) ListVolunteers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	out, err := h.volunteerService.ListVolunteers(r.Context(), repository.VolunteersFilter{
		Status:  strings.TrimSpace(q.Get("status")),
		BasedIn: strings.TrimSpace(q.Get("basedIn")),
	})
	if err != nil {
		writeError(w, h.logger, "ListVolunteers", err)
		return
	}
	writeJSON(w, http.StatusOK, List(out))
}

func (h *VolunteersHandler) GetVolunteer(w http.ResponseWriter, r *http.Request) {
	v, err := h.volunteerService.GetVolunteer(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, h.logger, "GetVolunteer", err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(v))
}

func (h *VolunteersHandler) UpdateVolunteerStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.logger, "UpdateVolunteerStatus", err)
		return
	}
	v, err := h.volunteerService.UpdateVolunteerStatus(r.Context(), r.PathValue("id"), req.Status)
	if err != nil {
		writeError(w, h.logger, "UpdateVolunteerStatus", err)
		return
	}
	writeJSON(w, http.StatusOK, Done("Volunteer status updated", v))
}

func (h *VolunteersHandler) DeleteVolunteer(w http.ResponseWriter, r *http.Request) {
	if err := h.volunteerService.DeleteVolunteer(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, h.logger, "DeleteVolunteer", err)
		return
	}
	writeJSON(w, http.StatusOK, Done[any]("Volunteer deleted", nil))
}
