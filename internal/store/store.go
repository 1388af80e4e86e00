// Package store provides persistence for resolved companies, contacts, and
// public leads behind a single interface with SQLite, Postgres, and in-memory
// implementations.
package store

import (
	"context"

	"github.com/sells-group/lead-ingest/internal/model"
)

// Store is the persistence contract the identity resolver depends on. Lookup
// methods return "" (not an error) when nothing matches.
type Store interface {
	// Company identity. CreateCompany re-checks domain uniqueness immediately
	// before insert and returns the existing id when it loses the race.
	FindCompanyByDomain(ctx context.Context, domain string) (string, error)
	FindCompanyByName(ctx context.Context, name string) (string, error)
	CreateCompany(ctx context.Context, draft model.CompanyDraft) (string, error)

	// Contact identity strategies, in resolver priority order.
	FindContactByEmail(ctx context.Context, email string) (string, error)
	FindContactByLinkedInURL(ctx context.Context, url string) (string, error)
	FindContactByNameAndCompanyDomain(ctx context.Context, firstName, lastName, domain string) (string, error)
	CreateContact(ctx context.Context, draft model.ContactDraft, companyID string) (string, error)

	// Public leads: upsert keyed on email.
	CreateOrUpdateLeadByEmail(ctx context.Context, lead model.LeadRecord) (string, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
