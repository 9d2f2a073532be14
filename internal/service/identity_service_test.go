package service

import (
	"context"
	"testing"

	"github.com/brandonbohn/adebackend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveIdentity_IdempotentByEmail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, err := env.identity.ResolveIdentity(ctx, domain.IdentityFields{Name: "Jane Doe", Email: "Jane@Example.com"})
	require.NoError(t, err)
	second, err := env.identity.ResolveIdentity(ctx, domain.IdentityFields{Name: "Jane D.", Email: "  jane@example.com "})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "jane@example.com", second.Email)
	assert.Equal(t, "Jane Doe", second.Name)
}

func TestResolveIdentity_FirstWriteWins(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.identity.ResolveIdentity(ctx, domain.IdentityFields{Name: "Jane", Email: "jane@x.com", Country: "Kenya"})
	require.NoError(t, err)
	ci, err := env.identity.ResolveIdentity(ctx, domain.IdentityFields{Name: "Jane", Email: "jane@x.com", Country: "Uganda", Phone: "+254700000001"})
	require.NoError(t, err)

	assert.Equal(t, "Kenya", ci.Country)
	assert.Equal(t, "+254700000001", ci.Phone)

	got, err := env.identity.GetContactInfo(ctx, ci.ID)
	require.NoError(t, err)
	assert.Equal(t, "Kenya", got.Country)
}

func TestResolveIdentity_FallbackKeys(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a, err := env.identity.ResolveIdentity(ctx, domain.IdentityFields{Name: "Amina", Phone: " 0712345678 "})
	require.NoError(t, err)
	b, err := env.identity.ResolveIdentity(ctx, domain.IdentityFields{Name: "Amina W.", Phone: "0712345678"})
	require.NoError(t, err)
	assert.Equal(t, a.ID, b.ID)

	c, err := env.identity.ResolveIdentity(ctx, domain.IdentityFields{Name: "Walk-in Donor"})
	require.NoError(t, err)
	d, err := env.identity.ResolveIdentity(ctx, domain.IdentityFields{Name: "Walk-in Donor", Country: "Kenya"})
	require.NoError(t, err)
	assert.Equal(t, c.ID, d.ID)
	assert.Equal(t, "Kenya", d.Country)
	assert.NotEqual(t, a.ID, c.ID)
}

func TestResolveIdentity_EmptyName(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.identity.ResolveIdentity(context.Background(), domain.IdentityFields{Name: "   ", Email: "x@y.com"})
	requireCode(t, err, CodeValidation, "name")
}

func TestGetContactInfo_NotFound(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.identity.GetContactInfo(context.Background(), "missing")
	requireCode(t, err, CodeNotFound, "")
}
