package service

import (
	"context"
	"errors"
	"testing"

	"github.com/brandonbohn/adebackend/internal/domain"
	"github.com/brandonbohn/adebackend/internal/events"
	"github.com/brandonbohn/adebackend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func contactRequest(reason string) CreateContactRequest {
	return CreateContactRequest{
		Name:    "Jane Doe",
		Email:   "jane@example.com",
		Reason:  reason,
		Subject: "Getting involved",
		Message: "I would like to help the girls in Kibera.",
	}
}

func TestCreateContact_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		mut   func(r *CreateContactRequest)
		field string
	}{
		{"short name", func(r *CreateContactRequest) { r.Name = "J" }, "name"},
		{"bad email", func(r *CreateContactRequest) { r.Email = "jane@example" }, "email"},
		{"bad reason", func(r *CreateContactRequest) { r.Reason = "sponsorship" }, "reason"},
		{"short subject", func(r *CreateContactRequest) { r.Subject = "Hi" }, "subject"},
		{"short message", func(r *CreateContactRequest) { r.Message = "Too short" }, "message"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := contactRequest("general")
			tc.mut(&req)
			_, err := env.contacts.CreateContact(ctx, req)
			requireCode(t, err, CodeValidation, tc.field)
		})
	}

	contacts, err := env.store.Contacts.ListContacts(ctx, repository.ContactsFilter{})
	require.NoError(t, err)
	assert.Empty(t, contacts)
}

func TestCreateContact_DefaultReasonGeneral(t *testing.T) {
	env := newTestEnv(t)
	resp, err := env.contacts.CreateContact(context.Background(), contactRequest(""))
	require.NoError(t, err)
	assert.Equal(t, "general", resp.Contact.Reason)
	assert.Nil(t, resp.LeadCreated)
}

func TestCreateContact_DonationCreatesOneLeadPerIdentity(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, err := env.contacts.CreateContact(ctx, contactRequest("donation"))
	require.NoError(t, err)
	require.NotNil(t, first.LeadCreated)
	assert.Equal(t, "donor-lead", first.LeadCreated.Type)

	lead, err := env.store.Donors.GetDonor(ctx, first.LeadCreated.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, lead.Amount)
	assert.Equal(t, domain.DonorStatusPotential, lead.Status)
	assert.Equal(t, domain.SourceContactForm, lead.Source)
	assert.Equal(t, first.Contact.ID, lead.ContactID)
	assert.Equal(t, "Interested in donation. Subject: Getting involved", lead.Notes)

	req := contactRequest("donation")
	req.Email = "JANE@example.com "
	second, err := env.contacts.CreateContact(ctx, req)
	require.NoError(t, err)
	assert.Nil(t, second.LeadCreated)
	assert.NotEqual(t, first.Contact.ID, second.Contact.ID)

	donors, err := env.store.Donors.ListDonors(ctx, repository.DonorsFilter{})
	require.NoError(t, err)
	assert.Len(t, donors, 1)
}

func TestCreateContact_VolunteeringScenario(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	req := contactRequest("volunteering")
	req.Organization = "Kibera Youth FC"
	first, err := env.contacts.CreateContact(ctx, req)
	require.NoError(t, err)
	require.NotNil(t, first.LeadCreated)
	assert.Equal(t, "volunteer-lead", first.LeadCreated.Type)

	v, err := env.store.Volunteers.GetVolunteer(ctx, first.LeadCreated.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.VolunteerStatusInterested, v.Status)
	assert.Equal(t, "Kibera Youth FC", v.Location)
	assert.Equal(t, "remote", v.BasedIn)
	assert.Equal(t, "To be determined", v.Availability)
	assert.Empty(t, v.Interests)

	second, err := env.contacts.CreateContact(ctx, contactRequest("volunteering"))
	require.NoError(t, err)
	assert.Nil(t, second.LeadCreated)

	contacts, err := env.store.Contacts.ListContacts(ctx, repository.ContactsFilter{})
	require.NoError(t, err)
	assert.Len(t, contacts, 2)
	assert.Equal(t, contacts[0].ContactInfoID, contacts[1].ContactInfoID)

	volunteers, err := env.store.Volunteers.ListVolunteers(ctx, repository.VolunteersFilter{})
	require.NoError(t, err)
	assert.Len(t, volunteers, 1)
}

func TestCreateContact_VolunteerLeadLocationDefault(t *testing.T) {
	env := newTestEnv(t)
	resp, err := env.contacts.CreateContact(context.Background(), contactRequest("volunteering"))
	require.NoError(t, err)
	v, err := env.store.Volunteers.GetVolunteer(context.Background(), resp.LeadCreated.ID)
	require.NoError(t, err)
	assert.Equal(t, "Not specified", v.Location)
}

func TestCreateContact_PartnershipCreatesNoLead(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	resp, err := env.contacts.CreateContact(ctx, contactRequest("partnership"))
	require.NoError(t, err)
	assert.Nil(t, resp.LeadCreated)

	donors, _ := env.store.Donors.ListDonors(ctx, repository.DonorsFilter{})
	volunteers, _ := env.store.Volunteers.ListVolunteers(ctx, repository.VolunteersFilter{})
	assert.Empty(t, donors)
	assert.Empty(t, volunteers)
}

func TestCreateContact_DirectDonorDoesNotBlockLead(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.donors.CreateDonor(ctx, CreateDonorRequest{FirstName: "Jane", LastName: "Doe", Email: "jane@example.com"})
	require.NoError(t, err)

	resp, err := env.contacts.CreateContact(ctx, contactRequest("donation"))
	require.NoError(t, err)
	require.NotNil(t, resp.LeadCreated)

	donors, err := env.store.Donors.ListDonors(ctx, repository.DonorsFilter{})
	require.NoError(t, err)
	assert.Len(t, donors, 2)
	assert.Equal(t, donors[0].ContactInfoID, donors[1].ContactInfoID)
}

func TestCreateContact_SideEffects(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.contacts.CreateContact(context.Background(), contactRequest("donation"))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"We Received Your Message - ADE Organization",
		"New Contact Form: DONATION - Jane Doe",
	}, env.mailer.subjects())
	assert.Equal(t, []string{events.LeadCreated, events.ContactCreated}, env.publisher.types())
	require.Len(t, env.alerts.alerts, 1)
	assert.Equal(t, events.ContactCreated, env.alerts.alerts[0].Kind)
}

func TestCreateContact_SecondaryFailuresAreSwallowed(t *testing.T) {
	env := newTestEnv(t)
	logger := zap.NewNop()
	env.mailer.ok = false
	env.publisher.err = errors.New("redis down")
	env.alerts.err = errors.New("broker down")
	svc := NewContactService(ContactServiceDeps{
		Contacts:  env.store.Contacts,
		Identity:  env.identity,
		CrossRef:  NewCrossReferenceService(failingLeads{}, env.publisher, logger),
		Mailer:    env.mailer,
		Publisher: env.publisher,
		Alerts:    env.alerts,
	}, logger)

	resp, err := svc.CreateContact(context.Background(), contactRequest("donation"))
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Nil(t, resp.LeadCreated)
	assert.Len(t, env.mailer.sent, 1)
}

func TestUpdateContactStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	resp, err := env.contacts.CreateContact(ctx, contactRequest("general"))
	require.NoError(t, err)

	_, err = env.contacts.UpdateContactStatus(ctx, resp.Contact.ID, "open", "admin")
	requireCode(t, err, CodeValidation, "status")

	c, err := env.contacts.UpdateContactStatus(ctx, resp.Contact.ID, "responded", "admin")
	require.NoError(t, err)
	assert.Equal(t, "responded", c.Status)
	require.NotNil(t, c.RespondedAt)
	assert.Equal(t, "admin", c.RespondedBy)

	_, err = env.contacts.UpdateContactStatus(ctx, "missing", "closed", "")
	requireCode(t, err, CodeNotFound, "")
}

func TestListGetDeleteContact(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a, err := env.contacts.CreateContact(ctx, contactRequest("general"))
	require.NoError(t, err)
	_, err = env.contacts.CreateContact(ctx, contactRequest("partnership"))
	require.NoError(t, err)

	list, err := env.contacts.ListContacts(ctx, repository.ContactsFilter{Reason: "partnership"})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = env.contacts.ListContacts(ctx, repository.ContactsFilter{Status: "bogus"})
	requireCode(t, err, CodeValidation, "status")

	got, err := env.contacts.GetContact(ctx, a.Contact.ID)
	require.NoError(t, err)
	assert.Equal(t, "Getting involved", got.Subject)

	require.NoError(t, env.contacts.DeleteContact(ctx, a.Contact.ID))
	_, err = env.contacts.GetContact(ctx, a.Contact.ID)
	requireCode(t, err, CodeNotFound, "")
	requireCode(t, env.contacts.DeleteContact(ctx, a.Contact.ID), CodeNotFound, "")
}
