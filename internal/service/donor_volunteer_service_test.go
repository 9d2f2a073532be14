package service

import (
	"context"
	"testing"

	"github.com/brandonbohn/adebackend/internal/domain"
	"github.com/brandonbohn/adebackend/internal/events"
	"github.com/brandonbohn/adebackend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateDonor(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	resp, err := env.donors.CreateDonor(ctx, CreateDonorRequest{
		FirstName:         "Jane",
		LastName:          "Doe",
		Email:             "Jane@Example.com",
		Phone:             "+254 (700) 000-001",
		Country:           "Kenya",
		AnonymousDonation: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Thank you for supporting girls in Kibera!", resp.Message)
	assert.Equal(t, "Jane Doe", resp.Donor.Name)
	assert.Equal(t, "jane@example.com", resp.Donor.Email)
	assert.Equal(t, domain.DonorStatusActive, resp.Donor.Status)
	assert.Equal(t, domain.SourceDonationForm, resp.Donor.Source)
	assert.True(t, resp.Donor.Anonymous)
	assert.NotEmpty(t, resp.Donor.ContactInfoID)
	assert.Equal(t, []string{events.DonorCreated}, env.publisher.types())

	ci, err := env.identity.GetContactInfo(ctx, resp.Donor.ContactInfoID)
	require.NoError(t, err)
	assert.Equal(t, "Kenya", ci.Country)
}

func TestCreateDonor_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.donors.CreateDonor(ctx, CreateDonorRequest{FirstName: "J", Email: "j@x.com"})
	requireCode(t, err, CodeValidation, "name")
	_, err = env.donors.CreateDonor(ctx, CreateDonorRequest{Name: "Jane", Email: "nope"})
	requireCode(t, err, CodeValidation, "email")
	_, err = env.donors.CreateDonor(ctx, CreateDonorRequest{Name: "Jane", Email: "j@x.com", Phone: "12345"})
	requireCode(t, err, CodeValidation, "phone")
}

func TestDonorCRUD(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	resp, err := env.donors.CreateDonor(ctx, CreateDonorRequest{Name: "Jane Doe", Email: "jane@x.com"})
	require.NoError(t, err)

	got, err := env.donors.GetDonor(ctx, resp.Donor.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", got.Name)

	list, err := env.donors.ListDonors(ctx, repository.DonorsFilter{Status: domain.DonorStatusActive})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, env.donors.DeleteDonor(ctx, resp.Donor.ID))
	_, err = env.donors.GetDonor(ctx, resp.Donor.ID)
	requireCode(t, err, CodeNotFound, "")
}

func volunteerRequest() CreateVolunteerRequest {
	return CreateVolunteerRequest{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
		Phone:     "+254 700-000-001",
		Location:  "Nairobi",
		Skills:    []string{"coaching", "tutoring"},
	}
}

func TestCreateVolunteer_MapsFrontendFields(t *testing.T) {
	env := newTestEnv(t)
	resp, err := env.volunteers.CreateVolunteer(context.Background(), volunteerRequest())
	require.NoError(t, err)

	v := resp.Volunteer
	assert.Equal(t, "Jane Doe", v.Name)
	assert.Equal(t, []string{"coaching", "tutoring"}, v.Interests)
	assert.Equal(t, "remote", v.BasedIn)
	assert.Equal(t, domain.VolunteerStatusPending, v.Status)
	assert.Equal(t, domain.SourceVolunteerForm, v.Source)
	assert.NotNil(t, v.LanguagesSpoken)
	assert.Equal(t, []string{events.VolunteerCreated}, env.publisher.types())
}

func TestCreateVolunteer_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	req := volunteerRequest()
	req.Skills = nil
	_, err := env.volunteers.CreateVolunteer(ctx, req)
	requireCode(t, err, CodeValidation, "interests")

	req = volunteerRequest()
	req.Phone = "0700"
	_, err = env.volunteers.CreateVolunteer(ctx, req)
	requireCode(t, err, CodeValidation, "phone")

	req = volunteerRequest()
	req.BasedIn = "mombasa"
	_, err = env.volunteers.CreateVolunteer(ctx, req)
	requireCode(t, err, CodeValidation, "basedIn")

	req = volunteerRequest()
	req.FirstName, req.LastName = "", ""
	_, err = env.volunteers.CreateVolunteer(ctx, req)
	requireCode(t, err, CodeValidation, "name")
}

func TestCreateVolunteer_SharesIdentityWithContact(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	vResp, err := env.volunteers.CreateVolunteer(ctx, volunteerRequest())
	require.NoError(t, err)
	cResp, err := env.contacts.CreateContact(ctx, contactRequest("volunteering"))
	require.NoError(t, err)

	c, err := env.contacts.GetContact(ctx, cResp.Contact.ID)
	require.NoError(t, err)
	assert.Equal(t, vResp.Volunteer.ContactInfoID, c.ContactInfoID)
	// a direct volunteer record does not count as a lead
	assert.NotNil(t, cResp.LeadCreated)
}

func TestUpdateVolunteerStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	resp, err := env.volunteers.CreateVolunteer(ctx, volunteerRequest())
	require.NoError(t, err)

	v, err := env.volunteers.UpdateVolunteerStatus(ctx, resp.Volunteer.ID, "active")
	require.NoError(t, err)
	assert.Equal(t, "active", v.Status)

	_, err = env.volunteers.UpdateVolunteerStatus(ctx, resp.Volunteer.ID, "retired")
	requireCode(t, err, CodeValidation, "status")
	_, err = env.volunteers.UpdateVolunteerStatus(ctx, "missing", "active")
	requireCode(t, err, CodeNotFound, "")

	require.NoError(t, env.volunteers.DeleteVolunteer(ctx, resp.Volunteer.ID))
	requireCode(t, env.volunteers.DeleteVolunteer(ctx, resp.Volunteer.ID), CodeNotFound, "")
}
