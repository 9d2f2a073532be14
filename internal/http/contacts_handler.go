package httpapi

import (
	"net/http"
	"strings"

	"github.com/brandonbohn/adebackend/internal/repository"
	"github.com/brandonbohn/adebackend/internal/service"

	"go.uber.org/zap"
)

// ContactsHandler contact form intake and the admin inbox
type ContactsHandler struct {
	contactService *service.ContactService
	logger         *zap.Logger
}

func NewContactsHandler(contactService *service.ContactService, logger *zap.Logger) *ContactsHandler {
	return &ContactsHandler{contactService: contactService, logger: logger}
}

// CreateContact POST /api/contacts
func (h *ContactsHandler) CreateContact(w http.ResponseWriter, r *http.Request) {
	var req service.CreateContactRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.logger, "CreateContact", err)
		return
	}
	resp, err := h.contactService.CreateContact(r.Context(), req)
	if err != nil {
		writeError(w, h.logger, "CreateContact", err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// ListContacts GET /api/contacts?status=&reason=
func (h *ContactsHandler) ListContacts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repository.ContactsFilter{
		Status: strings.TrimSpace(q.Get("status")),
		Reason: strings.TrimSpace(q.Get("reason")),
	}
	out, err := h.contactService.ListContacts(r.Context(), filter)
	if err != nil {
		writeError(w, h.logger, "ListContacts", err)
		return
	}
	writeJSON(w, http.StatusOK, List(out))
}

func (h *ContactsHandler) GetContact(w http.ResponseWriter, r *http.Request) {
	c, err := h.contactService.GetContact(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, h.logger, "GetContact", err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(c))
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateContactStatus PATCH /api/contacts/{id}/status. The responding admin
// comes from the token, never from the body.
func (h *ContactsHandler) UpdateContactStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.logger, "UpdateContactStatus", err)
		return
	}
	respondedBy := ""
	if claims := adminFromContext(r.Context()); claims != nil {
		respondedBy = claims.Username
	}
	c, err := h.contactService.UpdateContactStatus(r.Context(), r.PathValue("id"), req.Status, respondedBy)
	if err != nil {
		writeError(w, h.logger, "UpdateContactStatus", err)
		return
	}
	writeJSON(w, http.StatusOK, Done("Contact status updated", c))
}

func (h *ContactsHandler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	if err := h.contactService.DeleteContact(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, h.logger, "DeleteContact", err)
		return
	}
	writeJSON(w, http.StatusOK, Done[any]("Contact deleted", nil))
}
