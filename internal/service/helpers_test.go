package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/brandonbohn/adebackend/internal/domain"
	"github.com/brandonbohn/adebackend/internal/notify"
	"github.com/brandonbohn/adebackend/internal/repository"

	"go.uber.org/zap"
)

type fakeMailer struct {
	mu   sync.Mutex
	sent []notify.Message
	ok   bool
}

func newFakeMailer() *fakeMailer { return &fakeMailer{ok: true} }

func (m *fakeMailer) Send(_ context.Context, msg notify.Message) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return m.ok
}

func (m *fakeMailer) subjects() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.sent))
	for _, msg := range m.sent {
		out = append(out, msg.Subject)
	}
	return out
}

type publishedEvent struct {
	eventType string
	payload   any
}

type fakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	err    error
}

func (p *fakePublisher) Publish(_ context.Context, eventType string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{eventType: eventType, payload: payload})
	return p.err
}

func (p *fakePublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.eventType)
	}
	return out
}

type fakeAlerts struct {
	mu     sync.Mutex
	alerts []notify.Alert
	err    error
}

func (a *fakeAlerts) PublishAlert(_ context.Context, alert notify.Alert) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.alerts = append(a.alerts, alert)
	return a.err
}

// failingLeads always errors, to exercise the best-effort path.
type failingLeads struct{}

func (failingLeads) CreateDonorLead(context.Context, *domain.Donor) (bool, error) {
	return false, errors.New("lead store down")
}

func (failingLeads) CreateVolunteerLead(context.Context, *domain.Volunteer) (bool, error) {
	return false, errors.New("lead store down")
}

// testEnv wires every service over one memory store.
type testEnv struct {
	store      *repository.Store
	mailer     *fakeMailer
	publisher  *fakePublisher
	alerts     *fakeAlerts
	identity   *IdentityService
	crossRef   *CrossReferenceService
	contacts   *ContactService
	donors     *DonorService
	volunteers *VolunteerService
	donations  *DonationService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := zap.NewNop()
	st := repository.NewMemoryStore().Store()
	env := &testEnv{
		store:     st,
		mailer:    newFakeMailer(),
		publisher: &fakePublisher{},
		alerts:    &fakeAlerts{},
	}
	env.identity = NewIdentityService(st.Identity, logger)
	env.crossRef = NewCrossReferenceService(st.Leads, env.publisher, logger)
	env.contacts = NewContactService(ContactServiceDeps{
		Contacts:   st.Contacts,
		Identity:   env.identity,
		CrossRef:   env.crossRef,
		Mailer:     env.mailer,
		Publisher:  env.publisher,
		Alerts:     env.alerts,
		AdminEmail: "staff@ade.org",
	}, logger)
	env.donors = NewDonorService(st.Donors, env.identity, env.publisher, logger)
	env.volunteers = NewVolunteerService(st.Volunteers, env.identity, env.publisher, logger)
	env.donations = NewDonationService(st.Donations, st.Donors, env.mailer, env.publisher, logger)
	return env
}

func requireCode(t *testing.T, err error, code, field string) {
	t.Helper()
	se := AsError(err)
	if se == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	if se.Code != code {
		t.Fatalf("expected code %s, got %s (%v)", code, se.Code, err)
	}
	if field != "" && se.Field != field {
		t.Fatalf("expected field %s, got %s", field, se.Field)
	}
}

func floatPtr(f float64) *float64 { return &f }
