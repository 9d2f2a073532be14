package httpapi

import (
	"net/http"

	"go.uber.org/zap"
)

// Router uses http.ServeMux method patterns ("POST /api/contacts", "{id}" wildcards).
type Router struct {
	mux     *http.ServeMux
	logger  *zap.Logger
	admin   Middleware
	limited Middleware
}

// NewRouter admin guards operator routes; limited throttles public submissions.
// A nil middleware leaves the route unwrapped.
func NewRouter(logger *zap.Logger, admin, limited Middleware) *Router {
	return &Router{
		mux:     http.NewServeMux(),
		logger:  logger,
		admin:   admin,
		limited: limited,
	}
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

func (r *Router) HandleHandler(pattern string, h http.Handler) {
	r.mux.Handle(pattern, h)
}

func (r *Router) handleAdmin(pattern string, h http.HandlerFunc) {
	r.mux.Handle(pattern, wrap(r.admin, h))
}

func (r *Router) handleLimited(pattern string, h http.HandlerFunc) {
	r.mux.Handle(pattern, wrap(r.limited, h))
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

func wrap(mw Middleware, h http.Handler) http.Handler {
	if mw == nil {
		return h
	}
	return mw(h)
}

func (r *Router) RegisterHealthRoutes(h *HealthHandler) {
	r.Handle("GET /health", h.Health)
	r.Handle("GET /{$}", h.Root)
}

func (r *Router) RegisterContactRoutes(h *ContactsHandler) {
	r.handleLimited("POST /api/contacts", h.CreateContact)
	r.handleAdmin("GET /api/contacts", h.ListContacts)
	r.handleAdmin("GET /api/contacts/{id}", h.GetContact)
	r.handleAdmin("PATCH /api/contacts/{id}/status", h.UpdateContactStatus)
	r.handleAdmin("DELETE /api/contacts/{id}", h.DeleteContact)
}

func (r *Router) RegisterDonorRoutes(h *DonorsHandler) {
	r.handleLimited("POST /api/donors", h.CreateDonor)
	r.handleAdmin("GET /api/donors", h.ListDonors)
	r.handleAdmin("GET /api/donors/{id}", h.GetDonor)
	r.handleAdmin("DELETE /api/donors/{id}", h.DeleteDonor)
}

func (r *Router) RegisterVolunteerRoutes(h *VolunteersHandler) {
	r.handleLimited("POST /api/volunteers", h.CreateVolunteer)
	r.handleAdmin("GET /api/volunteers", h.ListVolunteers)
	r.handleAdmin("GET /api/volunteers/{id}", h.GetVolunteer)
	r.handleAdmin("PATCH /api/volunteers/{id}/status", h.UpdateVolunteerStatus)
	r.handleAdmin("DELETE /api/volunteers/{id}", h.DeleteVolunteer)
}

func (r *Router) RegisterDonationRoutes(h *DonationsHandler) {
	r.handleLimited("POST /api/donations", h.CreateDonation)
	r.handleAdmin("GET /api/donations", h.ListDonations)
}

func (r *Router) RegisterContentRoutes(h *ContentHandler) {
	r.Handle("GET /api/content", h.GetAll)
	r.Handle("GET /api/content/sections", h.ListSections)
	r.Handle("GET /api/content/{section}", h.GetSection)
	r.handleAdmin("PUT /api/content/{section}", h.UpdateSection)
}

// RegisterPaymentRoutes provider redirects and webhooks. Webhooks are
// unauthenticated and always acknowledged.
func (r *Router) RegisterPaymentRoutes(h *PaymentsHandler) {
	r.Handle("GET /api/payments/checkout", h.Checkout)
	r.handleLimited("POST /api/payments/process-payment", h.ProcessPayment)
	r.Handle("GET /api/payments/success", h.Success)
	r.Handle("GET /api/payments/cancel", h.Cancel)
	r.Handle("GET /api/payments/options", h.AvailableOptions)
	r.Handle("POST /api/payments/webhook/paypal", h.PayPalWebhook)
	r.Handle("POST /api/payments/webhook/flutterwave", h.FlutterwaveWebhook)
	r.Handle("POST /api/payments/webhook/mpesa", h.MpesaWebhook)
}

func (r *Router) RegisterPaymentOptionRoutes(h *PaymentOptionsHandler) {
	r.Handle("GET /api/payment-options", h.ListPaymentOptions)
	r.Handle("GET /api/payment-options/{id}", h.GetPaymentOption)
	r.handleAdmin("POST /api/payment-options", h.CreatePaymentOption)
	r.handleAdmin("PUT /api/payment-options/{id}", h.UpdatePaymentOption)
	r.handleAdmin("DELETE /api/payment-options/{id}", h.DeletePaymentOption)
}

func (r *Router) RegisterCartRoutes(h *CartHandler) {
	r.handleLimited("POST /api/cart", h.CreateCart)
	r.Handle("GET /api/cart/{id}", h.GetCart)
	r.Handle("POST /api/cart/{id}/items", h.AddItem)
	r.Handle("DELETE /api/cart/{id}/items/{index}", h.RemoveItem)
}

func (r *Router) RegisterAdminRoutes(h *AdminHandler) {
	r.handleLimited("POST /api/admin/login", h.Login)
	r.handleAdmin("GET /api/admin/me", h.Me)
	r.handleAdmin("GET /api/admin/summary", h.Summary)
	r.handleAdmin("GET /api/admin/export/donations.xlsx", h.ExportDonations)
	r.handleAdmin("GET /api/admin/export/donors.xlsx", h.ExportDonors)
}
