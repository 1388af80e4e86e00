package store

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/sells-group/lead-ingest/internal/model"
)

// MemoryStore is an in-memory Store used for dry runs and tests. Safe for
// concurrent use.
type MemoryStore struct {
	mu        sync.Mutex
	companies map[string]model.CompanyDraft // id -> draft
	contacts  map[string]contactRow
	leads     map[string]leadRow // keyed by email
}

type contactRow struct {
	draft     model.ContactDraft
	companyID string
}

type leadRow struct {
	id     string
	record model.LeadRecord
}

// NewMemory creates an empty MemoryStore.
func NewMemory() *MemoryStore {
	return &MemoryStore{
		companies: make(map[string]model.CompanyDraft),
		contacts:  make(map[string]contactRow),
		leads:     make(map[string]leadRow),
	}
}

func (m *MemoryStore) FindCompanyByDomain(_ context.Context, domain string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.companyByDomainLocked(domain), nil
}

func (m *MemoryStore) companyByDomainLocked(domain string) string {
	if domain == "" {
		return ""
	}
	for id, c := range m.companies {
		if c.Domain == domain {
			return id
		}
	}
	return ""
}

func (m *MemoryStore) FindCompanyByName(_ context.Context, name string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if name == "" {
		return "", nil
	}
	for id, c := range m.companies {
		if strings.EqualFold(c.Name, name) {
			return id, nil
		}
	}
	return "", nil
}

func (m *MemoryStore) CreateCompany(_ context.Context, draft model.CompanyDraft) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if id := m.companyByDomainLocked(draft.Domain); id != "" {
		return id, nil
	}
	id := uuid.New().String()
	m.companies[id] = draft
	return id, nil
}

func (m *MemoryStore) FindContactByEmail(_ context.Context, email string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if email == "" {
		return "", nil
	}
	for id, c := range m.contacts {
		if c.draft.Email == email {
			return id, nil
		}
	}
	return "", nil
}

func (m *MemoryStore) FindContactByLinkedInURL(_ context.Context, url string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if url == "" {
		return "", nil
	}
	for id, c := range m.contacts {
		if c.draft.LinkedInURL == url {
			return id, nil
		}
	}
	return "", nil
}

func (m *MemoryStore) FindContactByNameAndCompanyDomain(_ context.Context, firstName, lastName, domain string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if firstName == "" || lastName == "" || domain == "" {
		return "", nil
	}
	for id, c := range m.contacts {
		if !strings.EqualFold(c.draft.FirstName, firstName) || !strings.EqualFold(c.draft.LastName, lastName) {
			continue
		}
		if company, ok := m.companies[c.companyID]; ok && company.Domain == domain {
			return id, nil
		}
	}
	return "", nil
}

func (m *MemoryStore) CreateContact(_ context.Context, draft model.ContactDraft, companyID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := uuid.New().String()
	m.contacts[id] = contactRow{draft: draft, companyID: companyID}
	return id, nil
}

func (m *MemoryStore) CreateOrUpdateLeadByEmail(_ context.Context, lead model.LeadRecord) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.leads[lead.Email]
	if !ok {
		row.id = uuid.New().String()
	}
	// Last write wins, matching the SQL upsert.
	row.record = lead
	m.leads[lead.Email] = row
	return row.id, nil
}

// LeadByEmail returns the stored lead record for an email, if any.
func (m *MemoryStore) LeadByEmail(email string) (model.LeadRecord, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.leads[email]
	return row.record, ok
}

func (m *MemoryStore) Migrate(context.Context) error { return nil }

func (m *MemoryStore) Close() error { return nil }

// Counts reports stored row counts, used by dry-run summaries and tests.
func (m *MemoryStore) Counts() (companies, contacts, leads int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.companies), len(m.contacts), len(m.leads)
}
