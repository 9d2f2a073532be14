package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/brandonbohn/adebackend/internal/domain"
	"github.com/brandonbohn/adebackend/internal/repository"
	"github.com/brandonbohn/adebackend/internal/service"

	"go.uber.org/zap"
)

type DonationsHandler struct {
	donationService *service.DonationService
	logger          *zap.Logger
}

func NewDonationsHandler(donationService *service.DonationService, logger *zap.Logger) *DonationsHandler {
	return &DonationsHandler{donationService: donationService, logger: logger}
}

// createDonationBody amount arrives as a number or a numeric string.
type createDonationBody struct {
	DonorID      string          `json:"donorId"`
	Amount       json.RawMessage `json:"amount"`
	Currency     string          `json:"currency"`
	DonationType string          `json:"donationType"`
	Message      string          `json:"message"`
}

type createDonationResponse struct {
	Success  bool             `json:"success"`
	Message  string           `json:"message"`
	Donation *domain.Donation `json:"donation"`
}

func (h *DonationsHandler) CreateDonation(w http.ResponseWriter, r *http.Request) {
	var body createDonationBody
	if err := decodeBody(r, &body); err != nil {
		writeError(w, h.logger, "CreateDonation", err)
		return
	}
	amount, err := parseAmount(body.Amount)
	if err != nil {
		writeError(w, h.logger, "CreateDonation", err)
		return
	}
	d, err := h.donationService.RecordDonation(r.Context(), service.RecordDonationRequest{
		DonorID:      body.DonorID,
		Amount:       amount,
		Currency:     body.Currency,
		DonationType: body.DonationType,
		Message:      body.Message,
	})
	if err != nil {
		writeError(w, h.logger, "CreateDonation", err)
		return
	}
	writeJSON(w, http.StatusCreated, createDonationResponse{
		Success:  true,
		Message:  "Donation recorded successfully",
		Donation: d,
	})
}

// ListDonations GET /api/donations?donorId=&currency=
func (h *DonationsHandler) ListDonations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	out, err := h.donationService.ListDonations(r.Context(), repository.DonationsFilter{
		DonorID:  strings.TrimSpace(q.Get("donorId")),
		Currency: strings.ToUpper(strings.TrimSpace(q.Get("currency"))),
	})
	if err != nil {
		writeError(w, h.logger, "ListDonations", err)
		return
	}
	writeJSON(w, http.StatusOK, List(out))
}
