package httpapi

import (
	"net/http"

	"github.com/brandonbohn/adebackend/internal/service"

	"go.uber.org/zap"
)

type PaymentOptionsHandler struct {
	optionService *service.PaymentOptionService
	logger        *zap.Logger
}

func NewPaymentOptionsHandler(optionService *service.PaymentOptionService, logger *zap.Logger) *PaymentOptionsHandler {
	return &PaymentOptionsHandler{optionService: optionService, logger: logger}
}

func (h *PaymentOptionsHandler) ListPaymentOptions(w http.ResponseWriter, r *http.Request) {
	out, err := h.optionService.ListPaymentOptions(r.Context())
	if err != nil {
		writeError(w, h.logger, "ListPaymentOptions", err)
		return
	}
	writeJSON(w, http.StatusOK, List(out))
}

func (h *PaymentOptionsHandler) GetPaymentOption(w http.ResponseWriter, r *http.Request) {
	p, err := h.optionService.GetPaymentOption(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, h.logger, "GetPaymentOption", err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(p))
}

func (h *PaymentOptionsHandler) CreatePaymentOption(w http.ResponseWriter, r *http.Request) {
	var req service.PaymentOptionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.logger, "CreatePaymentOption", err)
		return
	}
	p, err := h.optionService.CreatePaymentOption(r.Context(), req)
	if err != nil {
		writeError(w, h.logger, "CreatePaymentOption", err)
		return
	}
	writeJSON(w, http.StatusCreated, Done("Payment option created", p))
}

func (h *PaymentOptionsHandler) UpdatePaymentOption(w http.ResponseWriter, r *http.Request) {
	var req service.PaymentOptionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.logger, "UpdatePaymentOption", err)
		return
	}
	p, err := h.optionService.UpdatePaymentOption(r.Context(), r.PathValue("id"), req)
	if err != nil {
		writeError(w, h.logger, "UpdatePaymentOption", err)
		return
	}
	writeJSON(w, http.StatusOK, Done("Payment option updated", p))
}

func (h *PaymentOptionsHandler) DeletePaymentOption(w http.ResponseWriter, r *http.Request) {
	if err := h.optionService.DeletePaymentOption(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, h.logger, "DeletePaymentOption", err)
		return
	}
	writeJSON(w, http.StatusOK, Done[any]("Payment option deleted", nil))
}
