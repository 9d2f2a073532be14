package httpapi

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/brandonbohn/adebackend/internal/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contactBody(reason string) map[string]any {
	return map[string]any{
		"name":         "Jane Doe",
		"email":        "Jane@Example.org ",
		"organization": "Kibera Youth Network",
		"reason":       reason,
		"subject":      "Helping out",
		"message":      "I would like to get involved this term.",
	}
}

func TestContacts_CreateVolunteeringReturnsLead(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/contacts", contactBody("volunteering"), false)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	body := decodeJSON(t, rec)
	assert.Equal(t, true, body["success"])
	contact := body["contact"].(map[string]any)
	assert.Equal(t, "jane@example.org", contact["email"])
	assert.NotEmpty(t, contact["_id"])
	lead := body["leadCreated"].(map[string]any)
	assert.Equal(t, "volunteer-lead", lead["type"])
	assert.NotEmpty(t, lead["id"])

	// second submission from the same identity does not produce another lead
	rec = api.do(t, http.MethodPost, "/api/contacts", contactBody("volunteering"), false)
	require.Equal(t, http.StatusCreated, rec.Code)
	_, hasLead := decodeJSON(t, rec)["leadCreated"]
	assert.False(t, hasLead)

	assert.Contains(t, api.publisher.published(), events.ContactCreated)
	assert.Contains(t, api.publisher.published(), events.LeadCreated)
}

func TestContacts_GeneralHasNoLead(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/contacts", contactBody("partnership"), false)
	require.Equal(t, http.StatusCreated, rec.Code)
	_, hasLead := decodeJSON(t, rec)["leadCreated"]
	assert.False(t, hasLead)
}

func TestContacts_ValidationError(t *testing.T) {
	api := newTestAPI(t)

	body := contactBody("general")
	body["message"] = "short"
	rec := api.do(t, http.MethodPost, "/api/contacts", body, false)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	e := errorOf(t, rec)
	assert.Equal(t, "VALIDATION_ERROR", e["code"])
	assert.Equal(t, "message", e["field"])
}

func TestContacts_MalformedJSON(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/contacts", `{"name":`, false)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorOf(t, rec)["code"])
}

func TestContacts_AdminRoutesRequireToken(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/api/contacts", nil, false)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "UNAUTHORIZED", errorOf(t, rec)["code"])

	rec = api.do(t, http.MethodGet, "/api/contacts", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeJSON(t, rec)
	assert.Equal(t, float64(0), body["count"])
	assert.Equal(t, []any{}, body["data"])
}

func TestContacts_StatusUpdateStampsAdmin(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/contacts", contactBody("general"), false)
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decodeJSON(t, rec)["contact"].(map[string]any)["_id"].(string)

	rec = api.do(t, http.MethodPatch, "/api/contacts/"+id+"/status", map[string]string{"status": "responded"}, true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	data := decodeJSON(t, rec)["data"].(map[string]any)
	assert.Equal(t, "responded", data["status"])
	assert.Equal(t, "admin", data["respondedBy"])

	rec = api.do(t, http.MethodPatch, "/api/contacts/"+id+"/status", map[string]string{"status": "archived"}, true)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "status", errorOf(t, rec)["field"])

	rec = api.do(t, http.MethodDelete, "/api/contacts/"+id, nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = api.do(t, http.MethodGet, "/api/contacts/"+id, nil, true)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", errorOf(t, rec)["code"])
}

func TestDonors_CreateAndList(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/donors", map[string]any{
		"firstName": "Amina",
		"lastName":  "Otieno",
		"email":     "amina@example.org",
		"phone":     "+254 712-345-678",
		"country":   "Kenya",
		"amount":    2500,
	}, false)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decodeJSON(t, rec)
	assert.Equal(t, "Thank you for supporting girls in Kibera!", body["message"])

	rec = api.do(t, http.MethodGet, "/api/donors?status=active", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), decodeJSON(t, rec)["count"])
}

func TestVolunteers_MissingInterests(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/volunteers", map[string]any{
		"firstName": "Brian",
		"lastName":  "Kamau",
		"email":     "brian@example.org",
		"phone":     "(0712) 345 678",
	}, false)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "interests", errorOf(t, rec)["field"])

	rec = api.do(t, http.MethodPost, "/api/volunteers", map[string]any{
		"firstName": "Brian",
		"lastName":  "Kamau",
		"email":     "brian@example.org",
		"phone":     "0712345678",
		"skills":    []string{"teaching"},
	}, false)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestDonations_AmountForms(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/donations", map[string]any{"amount": "50", "currency": "kes"}, false)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	donation := decodeJSON(t, rec)["donation"].(map[string]any)
	assert.Equal(t, float64(50), donation["amount"])
	assert.Equal(t, "KES", donation["currency"])
	assert.Equal(t, "general", donation["donationType"])

	rec = api.do(t, http.MethodPost, "/api/donations", map[string]any{"currency": "USD"}, false)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	e := errorOf(t, rec)
	assert.Equal(t, "amount", e["field"])
	assert.Equal(t, "Missing required field: amount", e["message"])

	rec = api.do(t, http.MethodPost, "/api/donations", map[string]any{"amount": "lots"}, false)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "amount", errorOf(t, rec)["field"])

	rec = api.do(t, http.MethodPost, "/api/donations", map[string]any{"amount": 10, "donationType": "annual"}, false)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "donationType", errorOf(t, rec)["field"])

	rec = api.do(t, http.MethodPost, "/api/donations", map[string]any{"amount": 10, "currency": "KSHS"}, false)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "currency", errorOf(t, rec)["field"])

	rec = api.do(t, http.MethodPost, "/api/donations", map[string]any{"amount": 0.004}, false)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "amount", errorOf(t, rec)["field"])

	assert.Contains(t, api.publisher.published(), events.DonationRecorded)
}

func TestContent_UpdateAndRead(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/api/content/hero", nil, false)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.do(t, http.MethodPut, "/api/content/hero", `{"title":"Education for every girl"}`, false)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = api.do(t, http.MethodPut, "/api/content/hero", `{"title":"Education for every girl"}`, true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = api.do(t, http.MethodGet, "/api/content/hero", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Education for every girl", decodeJSON(t, rec)["title"])

	rec = api.do(t, http.MethodGet, "/api/content", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	sections := decodeJSON(t, rec)["sectionsData"].(map[string]any)
	assert.Contains(t, sections, "hero")

	// an update clears every cached content key
	rec = api.do(t, http.MethodPut, "/api/content/hero", `{"title":"Updated"}`, true)
	require.Equal(t, http.StatusOK, rec.Code)
	keys, err := api.cache.ScanKeys(t.Context(), "content:*")
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestContent_RejectsUnknownFieldsAndSections(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPut, "/api/content/hero", `{"title":"x","banner":"y"}`, true)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "section", errorOf(t, rec)["field"])

	rec = api.do(t, http.MethodPut, "/api/content/footer", `{"title":"x"}`, true)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "section", errorOf(t, rec)["field"])
}

func TestPayments_CheckoutRedirects(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/api/payments/checkout?provider=paypal&amount=25&currency=USD&donorId=d1&name=Jane+Doe", nil, false)
	require.Equal(t, http.StatusFound, rec.Code, rec.Body.String())
	loc, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "www.paypal.com", loc.Host)
	assert.Equal(t, "_xclick", loc.Query().Get("cmd"))
	assert.Equal(t, "25", loc.Query().Get("amount"))

	rec = api.do(t, http.MethodGet, "/api/payments/checkout?provider=paypal&amount=2&currency=USD", nil, false)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorOf(t, rec)["code"])

	rec = api.do(t, http.MethodGet, "/api/payments/success", nil, false)
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "http://localhost:5173/donation-success", rec.Header().Get("Location"))
}

func TestPayments_CheckoutCallbacksReachWebhooks(t *testing.T) {
	api := newTestAPI(t)

	callbackPath := func(checkout, param string) string {
		t.Helper()
		rec := api.do(t, http.MethodGet, checkout, nil, false)
		require.Equal(t, http.StatusFound, rec.Code, rec.Body.String())
		loc, err := url.Parse(rec.Header().Get("Location"))
		require.NoError(t, err)
		cb, err := url.Parse(loc.Query().Get(param))
		require.NoError(t, err)
		require.Equal(t, "localhost:5000", cb.Host)
		return cb.Path
	}

	paypal := callbackPath("/api/payments/checkout?provider=paypal&amount=25&currency=USD&donorId=d1", "notify_url")
	form := url.Values{"txn_id": {"TX9"}, "mc_gross": {"25.00"}, "payment_status": {"Completed"}, "item_number": {"d1"}}
	rec := api.doForm(t, paypal, strings.NewReader(form.Encode()))
	require.Equal(t, http.StatusOK, rec.Code, "POST %s", paypal)
	assert.Equal(t, "OK", rec.Body.String())

	mpesa := callbackPath("/api/payments/checkout?provider=mpesa&amount=500&currency=KES&donorId=d1&phone=254700000000", "callback_url")
	rec = api.do(t, http.MethodPost, mpesa, `{"Body":{"stkCallback":{"CallbackMetadata":{"Item":[{"Name":"Amount","Value":500},{"Name":"MpesaReceiptNumber","Value":"QK1"}]}}}}`, false)
	require.Equal(t, http.StatusOK, rec.Code, "POST %s", mpesa)

	var callbacks int
	for _, typ := range api.publisher.published() {
		if typ == events.PaymentCallback {
			callbacks++
		}
	}
	assert.Equal(t, 2, callbacks)
}

func TestPayments_WebhookAcks(t *testing.T) {
	api := newTestAPI(t)

	form := url.Values{"txn_id": {"TX1"}, "mc_gross": {"20.00"}, "payment_status": {"Completed"}, "item_number": {"d1"}}
	req := strings.NewReader(form.Encode())
	rec := api.doForm(t, "/api/payments/webhook/paypal", req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())

	rec = api.do(t, http.MethodPost, "/api/payments/webhook/flutterwave", `{"data":{"status":"successful","tx_ref":"adef-d1-1700000000000","amount":1000}}`, false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeJSON(t, rec)["status"])

	rec = api.do(t, http.MethodPost, "/api/payments/webhook/mpesa", `not json`, false)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeJSON(t, rec)
	assert.Equal(t, float64(0), body["ResultCode"])
	assert.Equal(t, "Confirmation received", body["ResultDesc"])

	// the malformed M-Pesa body is acknowledged but not published
	var callbacks int
	for _, typ := range api.publisher.published() {
		if typ == events.PaymentCallback {
			callbacks++
		}
	}
	assert.Equal(t, 2, callbacks)
}

func TestPaymentOptions_CRUD(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/payment-options", map[string]string{"type": "mpesa", "label": "M-Pesa Paybill"}, true)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	id := decodeJSON(t, rec)["data"].(map[string]any)["_id"].(string)

	rec = api.do(t, http.MethodPut, "/api/payment-options/"+id, map[string]string{"type": "bitcoin", "label": "BTC"}, true)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "type", errorOf(t, rec)["field"])

	rec = api.do(t, http.MethodGet, "/api/payment-options", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), decodeJSON(t, rec)["count"])

	rec = api.do(t, http.MethodDelete, "/api/payment-options/"+id, nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = api.do(t, http.MethodGet, "/api/payment-options/"+id, nil, false)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCart_Flow(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/cart", map[string]string{"donorId": "d1"}, false)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	id := decodeJSON(t, rec)["data"].(map[string]any)["_id"].(string)

	rec = api.do(t, http.MethodPost, "/api/cart/"+id+"/items", map[string]any{"productId": "uniform", "quantity": 2, "amount": 1500}, false)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, float64(3000), decodeJSON(t, rec)["data"].(map[string]any)["total"])

	rec = api.do(t, http.MethodPost, "/api/cart/"+id+"/items", map[string]any{"productId": "uniform", "quantity": 0, "amount": 1500}, false)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "quantity", errorOf(t, rec)["field"])

	rec = api.do(t, http.MethodDelete, "/api/cart/"+id+"/items/5", nil, false)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "index", errorOf(t, rec)["field"])

	rec = api.do(t, http.MethodDelete, "/api/cart/"+id+"/items/0", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeJSON(t, rec)["data"].(map[string]any)["items"])

	rec = api.do(t, http.MethodGet, "/api/cart/missing", nil, false)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdmin_SummaryAndExport(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/donations", map[string]any{"amount": 40, "currency": "USD"}, false)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = api.do(t, http.MethodGet, "/api/admin/summary", nil, true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	totals := decodeJSON(t, rec)["data"].(map[string]any)["donationTotals"].([]any)
	require.Len(t, totals, 1)
	assert.Equal(t, "USD", totals[0].(map[string]any)["currency"])

	rec = api.do(t, http.MethodGet, "/api/admin/export/donations.xlsx", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "donations-")
	assert.True(t, strings.HasPrefix(rec.Body.String(), "PK"))

	rec = api.do(t, http.MethodGet, "/api/admin/me", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "admin", decodeJSON(t, rec)["data"].(map[string]any)["username"])
}

func TestAdmin_LoginDisabledWithoutHash(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/admin/login", map[string]string{"username": "admin", "password": "whatever"}, false)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "UNAUTHORIZED", errorOf(t, rec)["code"])
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/health", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeJSON(t, rec)["status"])
}
