package httpapi

import (
	"io"
	"net/http"

	"github.com/brandonbohn/adebackend/internal/service"

	"go.uber.org/zap"
)

// PaymentsHandler provider redirects, checkout bootstrap and webhooks.
type PaymentsHandler struct {
	paymentService *service.PaymentService
	logger         *zap.Logger
}

func NewPaymentsHandler(paymentService *service.PaymentService, logger *zap.Logger) *PaymentsHandler {
	return &PaymentsHandler{paymentService: paymentService, logger: logger}
}

// Checkout GET /api/payments/checkout redirects the donor to the provider.
func (h *PaymentsHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	target, err := h.paymentService.CheckoutURL(service.CheckoutRequest{
		Provider: q.Get("provider"),
		Amount:   q.Get("amount"),
		Currency: q.Get("currency"),
		DonorID:  q.Get("donorId"),
		Name:     q.Get("name"),
		Email:    q.Get("email"),
		Phone:    q.Get("phone"),
	})
	if err != nil {
		writeError(w, h.logger, "Checkout", err)
		return
	}
	http.Redirect(w, r, target, http.StatusFound)
}

func (h *PaymentsHandler) ProcessPayment(w http.ResponseWriter, r *http.Request) {
	var req service.ProcessPaymentRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.logger, "ProcessPayment", err)
		return
	}
	resp, err := h.paymentService.ProcessPayment(r.Context(), req)
	if err != nil {
		writeError(w, h.logger, "ProcessPayment", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *PaymentsHandler) Success(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, h.paymentService.SuccessRedirect(), http.StatusFound)
}

func (h *PaymentsHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, h.paymentService.CancelRedirect(), http.StatusFound)
}

func (h *PaymentsHandler) AvailableOptions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, List(h.paymentService.AvailableOptions()))
}

// PayPalWebhook IPN listener. PayPal expects a bare 200 "OK".
func (h *PaymentsHandler) PayPalWebhook(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		h.logger.Warn("Unreadable PayPal IPN", zap.Error(err))
	} else {
		h.paymentService.RecordCallback(r.Context(), service.ParsePayPalIPN(r.PostForm))
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (h *PaymentsHandler) FlutterwaveWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err == nil {
		var cb service.PaymentCallback
		if cb, err = service.ParseFlutterwave(body); err == nil {
			h.paymentService.RecordCallback(r.Context(), cb)
		}
	}
	if err != nil {
		h.logger.Warn("Unreadable Flutterwave webhook", zap.Error(err))
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type mpesaAck struct {
	ResultCode int    `json:"ResultCode"`
	ResultDesc string `json:"ResultDesc"`
}

func (h *PaymentsHandler) MpesaWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err == nil {
		var cb service.PaymentCallback
		if cb, err = service.ParseMpesa(body); err == nil {
			h.paymentService.RecordCallback(r.Context(), cb)
		}
	}
	if err != nil {
		h.logger.Warn("Unreadable M-Pesa callback", zap.Error(err))
	}
	writeJSON(w, http.StatusOK, mpesaAck{ResultCode: 0, ResultDesc: "Confirmation received"})
}
