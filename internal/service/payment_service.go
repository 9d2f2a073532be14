package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/brandonbohn/adebackend/internal/events"
	"github.com/brandonbohn/adebackend/internal/notify"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Supported providers
const (
	ProviderPayPal      = "paypal"
	ProviderFlutterwave = "flutterwave"
	ProviderMpesa       = "mpesa"
)

const (
	payPalCheckoutURL      = "https://www.paypal.com/cgi-bin/webscr"
	flutterwaveCheckoutURL = "https://checkout.flutterwave.com/pay/"
	defaultPayPalBusiness  = "adefoundation@example.com"
	defaultFlutterwaveKey  = "test_key"
)

// amountLimit inclusive donation bounds for one currency
type amountLimit struct{ min, max float64 }

var amountLimits = map[string]amountLimit{
	"USD": {min: 5, max: 100000},
	"KES": {min: 100, max: 10000000},
}

// impactLevels KES thresholds shown to local donors
var impactLevels = map[float64]string{
	100:   "Provides a nutritious meal for 1 girl",
	500:   "Buys school supplies for 1 girl",
	1000:  "Provides football training for 1 week",
	2500:  "Provides school uniform for 1 girl",
	5000:  "Covers school fees for 1 girl for 1 term",
	10000: "Supports 1 girl for a full school term (fees + meals + supplies)",
}

// PaymentSettings redirect targets and provider accounts
type PaymentSettings struct {
	FrontendURL          string
	APIURL               string
	PayPalEmail          string
	FlutterwavePublicKey string
	SuccessURL           string
	CancelURL            string
}

// PaymentService builds provider redirects and records provider callbacks.
// It never talks to a provider API and never confirms a donation.
type PaymentService struct {
	settings  PaymentSettings
	publisher events.Publisher
	alerts    notify.AlertPublisher
	logger    *zap.Logger
	now       func() time.Time
}

func NewPaymentService(settings PaymentSettings, publisher events.Publisher, alerts notify.AlertPublisher, logger *zap.Logger) *PaymentService {
	if settings.PayPalEmail == "" {
		settings.PayPalEmail = defaultPayPalBusiness
	}
	if settings.FlutterwavePublicKey == "" {
		settings.FlutterwavePublicKey = defaultFlutterwaveKey
	}
	return &PaymentService{
		settings:  settings,
		publisher: publisher,
		alerts:    alerts,
		logger:    logger,
		now:       time.Now,
	}
}

// CheckoutRequest query of GET /api/payments/checkout
type CheckoutRequest struct {
	Provider string
	Amount   string
	Currency string
	DonorID  string
	Name     string
	Email    string
	Phone    string
}

// CheckoutURL validates req and returns the provider URL to redirect to.
func (s *PaymentService) CheckoutURL(req CheckoutRequest) (string, error) {
	if req.Provider == "" || req.Amount == "" || req.Currency == "" {
		return "", ValidationError("provider", "Missing required parameters: provider, amount, currency")
	}
	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	amount, err := strconv.ParseFloat(strings.TrimSpace(req.Amount), 64)
	if err != nil {
		return "", ValidationError("amount", "Amount must be a number")
	}
	if err := checkAmount(amount, currency); err != nil {
		return "", err
	}

	successURL := s.settings.FrontendURL + "/donation-success?transactionId={transactionId}&donorId=" + req.DonorID
	cancelURL := s.settings.FrontendURL + "/donate?cancelled=true"
	amountStr := strings.TrimSpace(req.Amount)

	var target string
	switch req.Provider {
	case ProviderPayPal:
		target = s.payPalURL(amountStr, currency, req.Name, req.Email, req.DonorID, successURL, cancelURL)
	case ProviderFlutterwave:
		target = s.flutterwaveURL(amountStr, currency, req.Name, req.Email, req.DonorID, req.Phone, successURL)
	case ProviderMpesa:
		target = s.mpesaURL(amountStr, currency, req.Phone, req.DonorID, successURL)
	default:
		return "", ValidationError("provider", "Unsupported payment provider")
	}

	s.logger.Info("Generated checkout redirect",
		zap.String("provider", req.Provider),
		zap.String("donor_id", req.DonorID),
		zap.Float64("amount", amount),
		zap.String("currency", currency),
	)
	return target, nil
}

// checkAmount enforces per-currency bounds. Other currencies only need a positive amount.
func checkAmount(amount float64, currency string) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return ValidationError("amount", "Amount must be greater than 0")
	}
	limit, ok := amountLimits[currency]
	if !ok {
		return nil
	}
	if amount < limit.min {
		return ValidationError("amount", fmt.Sprintf("Minimum donation is %s %s", currency, formatAmount(limit.min)))
	}
	if amount > limit.max {
		return ValidationError("amount", fmt.Sprintf("Maximum donation is %s %s", currency, formatAmount(limit.max)))
	}
	return nil
}

func formatAmount(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func splitName(name string) (first, last string) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

func (s *PaymentService) payPalURL(amount, currency, name, email, donorID, successURL, cancelURL string) string {
	first, last := splitName(name)
	q := url.Values{}
	q.Set("cmd", "_xclick")
	q.Set("business", s.settings.PayPalEmail)
	q.Set("item_name", "ADE Donation - Support Girls in Kibera")
	q.Set("item_number", donorID)
	q.Set("amount", amount)
	q.Set("currency_code", currency)
	q.Set("first_name", first)
	q.Set("last_name", last)
	q.Set("payer_email", email)
	q.Set("notify_url", s.settings.APIURL+"/api/payments/webhook/paypal")
	q.Set("return", successURL)
	q.Set("cancel_return", cancelURL)
	q.Set("no_shipping", "2")
	q.Set("rm", "2")
	return payPalCheckoutURL + "?" + q.Encode()
}

func (s *PaymentService) flutterwaveURL(amount, currency, name, email, donorID, phone, successURL string) string {
	q := url.Values{}
	q.Set("public_key", s.settings.FlutterwavePublicKey)
	q.Set("tx_ref", s.flutterwaveTxRef(donorID))
	q.Set("amount", amount)
	q.Set("currency", currency)
	q.Set("customer_email", email)
	q.Set("customer_name", name)
	q.Set("customer_phone", phone)
	q.Set("title", "ADE Organization Donation")
	q.Set("description", "Support education for girls in Kibera")
	q.Set("redirect_url", successURL)
	q.Set("meta_donor_id", donorID)
	return flutterwaveCheckoutURL + url.PathEscape(s.settings.FlutterwavePublicKey) + "?" + q.Encode()
}

func (s *PaymentService) flutterwaveTxRef(donorID string) string {
	return fmt.Sprintf("adef-%s-%d", donorID, s.now().UnixMilli())
}

func (s *PaymentService) mpesaURL(amount, currency, phone, donorID, successURL string) string {
	q := url.Values{}
	q.Set("amount", amount)
	q.Set("phone_number", phone)
	q.Set("donor_id", donorID)
	q.Set("currency", currency)
	q.Set("callback_url", s.settings.APIURL+"/api/payments/webhook/mpesa")
	q.Set("return_url", successURL)
	return s.settings.APIURL + "/api/payments/mpesa-stk-push?" + q.Encode()
}

// SuccessRedirect target after the provider reports success.
func (s *PaymentService) SuccessRedirect() string { return s.settings.SuccessURL }

// CancelRedirect target after the donor abandons checkout.
func (s *PaymentService) CancelRedirect() string { return s.settings.CancelURL }

// ProcessPaymentRequest body of POST /api/payments/process-payment
type ProcessPaymentRequest struct {
	Amount            float64 `json:"amount"`
	Currency          string  `json:"currency"`
	PaymentOptionType string  `json:"paymentOptionType"`
	DonorID           string  `json:"donorId"`
	Name              string  `json:"name"`
	Email             string  `json:"email"`
	Phone             string  `json:"phone"`
}

// ProcessPaymentResponse payment is always pending until the provider calls back
type ProcessPaymentResponse struct {
	Status        string `json:"status"`
	Provider      string `json:"provider"`
	TransactionID string `json:"transactionId"`
	CheckoutURL   string `json:"checkoutUrl"`
	Message       string `json:"message"`
	Impact        string `json:"impact,omitempty"`
}

func (s *PaymentService) ProcessPayment(_ context.Context, req ProcessPaymentRequest) (*ProcessPaymentResponse, error) {
	provider := strings.ToLower(strings.TrimSpace(req.PaymentOptionType))
	checkoutURL, err := s.CheckoutURL(CheckoutRequest{
		Provider: provider,
		Amount:   formatAmount(req.Amount),
		Currency: req.Currency,
		DonorID:  req.DonorID,
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
	})
	if err != nil {
		return nil, err
	}
	resp := &ProcessPaymentResponse{
		Status:        "pending",
		Provider:      provider,
		TransactionID: uuid.NewString(),
		CheckoutURL:   checkoutURL,
		Message:       "Redirect the donor to the checkout URL to complete payment",
	}
	if strings.EqualFold(req.Currency, "KES") {
		resp.Impact = ImpactMessage(req.Amount)
	}
	return resp, nil
}

// ImpactMessage returns the message for the highest KES threshold not above amount.
func ImpactMessage(amountKES float64) string {
	thresholds := make([]float64, 0, len(impactLevels))
	for t := range impactLevels {
		thresholds = append(thresholds, t)
	}
	sort.Float64s(thresholds)
	msg := ""
	for _, t := range thresholds {
		if amountKES >= t {
			msg = impactLevels[t]
		}
	}
	return msg
}

// AvailablePaymentOption static provider entry
type AvailablePaymentOption struct {
	ID    int    `json:"id"`
	Type  string `json:"type"`
	Label string `json:"label"`
}

func (s *PaymentService) AvailableOptions() []AvailablePaymentOption {
	return []AvailablePaymentOption{
		{ID: 1, Type: ProviderPayPal, Label: "PayPal"},
		{ID: 2, Type: ProviderMpesa, Label: "M-Pesa"},
		{ID: 3, Type: ProviderFlutterwave, Label: "Flutterwave"},
	}
}

// PaymentCallback normalized provider notification
type PaymentCallback struct {
	Provider   string    `json:"provider"`
	Reference  string    `json:"reference"`
	DonorID    string    `json:"donorId,omitempty"`
	Amount     float64   `json:"amount"`
	Currency   string    `json:"currency,omitempty"`
	Status     string    `json:"status"`
	Phone      string    `json:"phone,omitempty"`
	ReceivedAt time.Time `json:"receivedAt"`
}

// ParsePayPalIPN reads the IPN form fields.
func ParsePayPalIPN(form url.Values) PaymentCallback {
	amount, _ := strconv.ParseFloat(form.Get("mc_gross"), 64)
	return PaymentCallback{
		Provider:  ProviderPayPal,
		Reference: form.Get("txn_id"),
		DonorID:   form.Get("item_number"),
		Amount:    amount,
		Currency:  form.Get("mc_currency"),
		Status:    form.Get("payment_status"),
	}
}

type flutterwaveWebhook struct {
	Data struct {
		Status        string  `json:"status"`
		TxRef         string  `json:"tx_ref"`
		Amount        float64 `json:"amount"`
		Currency      string  `json:"currency"`
		CustomerEmail string  `json:"customer_email"`
	} `json:"data"`
}

// ParseFlutterwave reads a Flutterwave webhook body.
func ParseFlutterwave(body []byte) (PaymentCallback, error) {
	var w flutterwaveWebhook
	if err := json.Unmarshal(body, &w); err != nil {
		return PaymentCallback{}, fmt.Errorf("invalid flutterwave payload: %w", err)
	}
	return PaymentCallback{
		Provider:  ProviderFlutterwave,
		Reference: w.Data.TxRef,
		DonorID:   donorFromTxRef(w.Data.TxRef),
		Amount:    w.Data.Amount,
		Currency:  w.Data.Currency,
		Status:    w.Data.Status,
	}, nil
}

// donorFromTxRef extracts the donor id from "adef-<donorId>-<unixms>".
func donorFromTxRef(ref string) string {
	rest, ok := strings.CutPrefix(ref, "adef-")
	if !ok {
		return ""
	}
	i := strings.LastIndex(rest, "-")
	if i <= 0 {
		return ""
	}
	return rest[:i]
}

type mpesaWebhook struct {
	Body struct {
		StkCallback struct {
			ResultCode       int    `json:"ResultCode"`
			ResultDesc       string `json:"ResultDesc"`
			CallbackMetadata struct {
				Item []struct {
					Name  string `json:"Name"`
					Value any    `json:"Value"`
				} `json:"Item"`
			} `json:"CallbackMetadata"`
		} `json:"stkCallback"`
	} `json:"Body"`
}

// ParseMpesa reads an M-Pesa STK callback.
func ParseMpesa(body []byte) (PaymentCallback, error) {
	var w mpesaWebhook
	if err := json.Unmarshal(body, &w); err != nil {
		return PaymentCallback{}, fmt.Errorf("invalid mpesa payload: %w", err)
	}
	cb := PaymentCallback{Provider: ProviderMpesa, Currency: "KES", Status: "failed"}
	for _, item := range w.Body.StkCallback.CallbackMetadata.Item {
		switch item.Name {
		case "Amount":
			if f, ok := item.Value.(float64); ok {
				cb.Amount = f
			}
		case "MpesaReceiptNumber":
			cb.Reference = valueString(item.Value)
		case "PhoneNumber":
			cb.Phone = valueString(item.Value)
		}
	}
	if cb.Reference != "" {
		cb.Status = "successful"
	}
	return cb, nil
}

func valueString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprint(x)
	}
}

// RecordCallback logs cb and publishes payment.callback plus an admin alert.
// Failures are logged only; the provider is always acknowledged.
func (s *PaymentService) RecordCallback(ctx context.Context, cb PaymentCallback) {
	if cb.ReceivedAt.IsZero() {
		cb.ReceivedAt = s.now().UTC()
	}
	s.logger.Info("Payment callback received",
		zap.String("provider", cb.Provider),
		zap.String("reference", cb.Reference),
		zap.String("donor_id", cb.DonorID),
		zap.Float64("amount", cb.Amount),
		zap.String("status", cb.Status),
	)
	if err := s.publisher.Publish(ctx, events.PaymentCallback, cb); err != nil {
		s.logger.Warn("Failed to publish payment callback", zap.String("provider", cb.Provider), zap.Error(err))
	}
	if err := s.alerts.PublishAlert(ctx, notify.Alert{
		Kind:      events.PaymentCallback,
		Title:     fmt.Sprintf("%s payment %s: %s", cb.Provider, cb.Status, formatAmount(cb.Amount)),
		Reference: cb.Reference,
	}); err != nil {
		s.logger.Warn("Failed to publish payment alert", zap.String("provider", cb.Provider), zap.Error(err))
	}
}
