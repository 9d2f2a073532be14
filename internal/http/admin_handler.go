package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/brandonbohn/adebackend/internal/service"

	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// AdminHandler login, dashboard summary and exports
type AdminHandler struct {
	authService  *service.AuthService
	adminService *service.AdminService
	logger       *zap.Logger
}

func NewAdminHandler(authService *service.AuthService, adminService *service.AdminService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{authService: authService, adminService: adminService, logger: logger}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.logger, "AdminLogin", err)
		return
	}
	if req.Username == "" || req.Password == "" {
		writeError(w, h.logger, "AdminLogin", service.ValidationError("username", "username and password are required"))
		return
	}
	res, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		writeError(w, h.logger, "AdminLogin", err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(res))
}

type meResponse struct {
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (h *AdminHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims := adminFromContext(r.Context())
	if claims == nil {
		writeError(w, h.logger, "AdminMe", service.UnauthorizedError("Not authenticated"))
		return
	}
	resp := meResponse{Username: claims.Username, Role: claims.Role}
	if claims.ExpiresAt != nil {
		resp.ExpiresAt = claims.ExpiresAt.Time
	}
	writeJSON(w, http.StatusOK, Ok(resp))
}

func (h *AdminHandler) Summary(w http.ResponseWriter, r *http.Request) {
	s, err := h.adminService.Summary(r.Context())
	if err != nil {
		writeError(w, h.logger, "AdminSummary", err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(s))
}

func (h *AdminHandler) ExportDonations(w http.ResponseWriter, r *http.Request) {
	data, err := h.adminService.ExportDonations(r.Context())
	if err != nil {
		writeError(w, h.logger, "ExportDonations", err)
		return
	}
	writeXLSX(w, "donations", data)
}

func (h *AdminHandler) ExportDonors(w http.ResponseWriter, r *http.Request) {
	data, err := h.adminService.ExportDonors(r.Context())
	if err != nil {
		writeError(w, h.logger, "ExportDonors", err)
		return
	}
	writeXLSX(w, "donors", data)
}

func writeXLSX(w http.ResponseWriter, name string, data []byte) {
	filename := fmt.Sprintf("%s-%s.xlsx", name, time.Now().UTC().Format("20060102"))
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", fmt.Sprint(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
