package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/brandonbohn/adebackend/internal/events"
	"github.com/brandonbohn/adebackend/internal/notify"
	"github.com/brandonbohn/adebackend/internal/repository"
	"github.com/brandonbohn/adebackend/internal/service"
	"github.com/brandonbohn/adebackend/internal/store"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mapKV in-process stand-in for the Redis cache
type mapKV struct {
	mu   sync.Mutex
	data map[string]string
}

func newMapKV() *mapKV { return &mapKV{data: make(map[string]string)} }

func (m *mapKV) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return "", store.ErrMiss
	}
	return v, nil
}

func (m *mapKV) Set(_ context.Context, key, value string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *mapKV) Del(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func (m *mapKV) ScanKeys(_ context.Context, pattern string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	prefix := strings.TrimSuffix(pattern, "*")
	var out []string
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			out = append(out, k)
		}
	}
	return out, nil
}

type recordingPublisher struct {
	mu    sync.Mutex
	types []string
}

func (p *recordingPublisher) Publish(_ context.Context, eventType string, _ any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.types = append(p.types, eventType)
	return nil
}

func (p *recordingPublisher) published() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.types...)
}

type testAPI struct {
	handler   http.Handler
	store     *repository.Store
	cache     *mapKV
	publisher *recordingPublisher
	auth      *service.AuthService
	token     string
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	logger := zap.NewNop()
	st := repository.NewMemoryStore().Store()
	api := &testAPI{store: st, cache: newMapKV(), publisher: &recordingPublisher{}}

	var publisher events.Publisher = api.publisher
	mailer := notify.NewLogMailer(logger)
	alerts := notify.NopAlerts{}

	identity := service.NewIdentityService(st.Identity, logger)
	crossRef := service.NewCrossReferenceService(st.Leads, publisher, logger)
	contacts := service.NewContactService(service.ContactServiceDeps{
		Contacts:  st.Contacts,
		Identity:  identity,
		CrossRef:  crossRef,
		Mailer:    mailer,
		Publisher: publisher,
		Alerts:    alerts,
	}, logger)
	api.auth = service.NewAuthService(service.AuthSettings{
		JWTSecret: "test-secret",
		Username:  "admin",
		TokenTTL:  time.Hour,
	}, logger)
	token, _, err := api.auth.GenerateToken("admin")
	require.NoError(t, err)
	api.token = token

	router := NewRouter(logger, RequireAdmin(api.auth, logger), nil)
	router.RegisterHealthRoutes(NewHealthHandler(nil, logger))
	router.RegisterContactRoutes(NewContactsHandler(contacts, logger))
	router.RegisterDonorRoutes(NewDonorsHandler(service.NewDonorService(st.Donors, identity, publisher, logger), logger))
	router.RegisterVolunteerRoutes(NewVolunteersHandler(service.NewVolunteerService(st.Volunteers, identity, publisher, logger), logger))
	router.RegisterDonationRoutes(NewDonationsHandler(service.NewDonationService(st.Donations, st.Donors, mailer, publisher, logger), logger))
	router.RegisterContentRoutes(NewContentHandler(service.NewContentService(st.Content, api.cache, time.Minute, logger), logger))
	router.RegisterPaymentRoutes(NewPaymentsHandler(service.NewPaymentService(service.PaymentSettings{
		FrontendURL: "http://localhost:5173",
		APIURL:      "http://localhost:5000",
		SuccessURL:  "http://localhost:5173/donation-success",
		CancelURL:   "http://localhost:5173/donate?cancelled=true",
	}, publisher, alerts, logger), logger))
	router.RegisterPaymentOptionRoutes(NewPaymentOptionsHandler(service.NewPaymentOptionService(st.PaymentOptions, logger), logger))
	router.RegisterCartRoutes(NewCartHandler(service.NewCartService(store.NewMemoryCartStore(24*time.Hour), logger), logger))
	router.RegisterAdminRoutes(NewAdminHandler(api.auth, service.NewAdminService(st, logger), logger))

	api.handler = Chain(router, Recover(logger), CORS([]string{"http://localhost:5173"}))
	return api
}

// do sends body (a string is sent as-is, anything else as JSON). admin adds the bearer token.
func (a *testAPI) do(t *testing.T, method, path string, body any, admin bool) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rd = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if admin {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func errorOf(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	body := decodeJSON(t, rec)
	require.Equal(t, false, body["success"])
	e, ok := body["error"].(map[string]any)
	require.True(t, ok, rec.Body.String())
	return e
}

func (a *testAPI) doForm(t *testing.T, path string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}
