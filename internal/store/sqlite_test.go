package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/lead-ingest/internal/model"
)

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.Migrate(context.Background()))
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLite_CompanyRoundTrip(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	id, err := s.CreateCompany(ctx, model.CompanyDraft{
		Name:         "Acme",
		Domain:       "acme.com",
		Website:      "https://acme.com",
		Technologies: []string{"Go", "Postgres"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	found, err := s.FindCompanyByDomain(ctx, "acme.com")
	require.NoError(t, err)
	assert.Equal(t, id, found)

	found, err = s.FindCompanyByName(ctx, "ACME")
	require.NoError(t, err)
	assert.Equal(t, id, found)

	missing, err := s.FindCompanyByDomain(ctx, "other.com")
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestSQLite_CreateCompanyDomainRace(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	first, err := s.CreateCompany(ctx, model.CompanyDraft{Name: "Acme", Domain: "acme.com"})
	require.NoError(t, err)

	// Second create for the same domain must return the existing id, not error.
	second, err := s.CreateCompany(ctx, model.CompanyDraft{Name: "Acme Again", Domain: "acme.com"})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSQLite_CompaniesWithoutDomainCoexist(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	a, err := s.CreateCompany(ctx, model.CompanyDraft{Name: "Alpha"})
	require.NoError(t, err)
	b, err := s.CreateCompany(ctx, model.CompanyDraft{Name: "Beta"})
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestSQLite_ContactLookups(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	companyID, err := s.CreateCompany(ctx, model.CompanyDraft{Name: "Acme", Domain: "acme.com"})
	require.NoError(t, err)

	contactID, err := s.CreateContact(ctx, model.ContactDraft{
		FirstName:   "Jane",
		LastName:    "Doe",
		Email:       "jane@acme.com",
		LinkedInURL: "https://linkedin.com/in/janedoe",
	}, companyID)
	require.NoError(t, err)

	byEmail, err := s.FindContactByEmail(ctx, "jane@acme.com")
	require.NoError(t, err)
	assert.Equal(t, contactID, byEmail)

	byLI, err := s.FindContactByLinkedInURL(ctx, "https://linkedin.com/in/janedoe")
	require.NoError(t, err)
	assert.Equal(t, contactID, byLI)

	byName, err := s.FindContactByNameAndCompanyDomain(ctx, "jane", "DOE", "acme.com")
	require.NoError(t, err)
	assert.Equal(t, contactID, byName)

	missing, err := s.FindContactByNameAndCompanyDomain(ctx, "Jane", "Doe", "other.com")
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestSQLite_ContactWithoutCompany(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	id, err := s.CreateContact(ctx, model.ContactDraft{Email: "solo@acme.com"}, "")
	require.NoError(t, err)
	assert.NotEmpty(t, id)
}

func TestSQLite_LeadUpsert(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	first, err := s.CreateOrUpdateLeadByEmail(ctx, model.LeadRecord{Email: "jane@acme.com", JobTitle: "VP Sales"})
	require.NoError(t, err)
	require.NotEmpty(t, first)

	// Same email upserts in place and keeps the id.
	second, err := s.CreateOrUpdateLeadByEmail(ctx, model.LeadRecord{Email: "jane@acme.com", JobTitle: "SVP Sales"})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
