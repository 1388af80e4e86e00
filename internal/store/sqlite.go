package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/lead-ingest/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS companies (
	id           TEXT PRIMARY KEY,
	name         TEXT NOT NULL DEFAULT '',
	domain       TEXT NOT NULL DEFAULT '',
	website      TEXT NOT NULL DEFAULT '',
	linkedin_url TEXT NOT NULL DEFAULT '',
	industry     TEXT NOT NULL DEFAULT '',
	company_size INTEGER NOT NULL DEFAULT 0,
	phone        TEXT NOT NULL DEFAULT '',
	technologies TEXT NOT NULL DEFAULT '[]',
	country      TEXT NOT NULL DEFAULT '',
	state        TEXT NOT NULL DEFAULT '',
	city         TEXT NOT NULL DEFAULT '',
	created_at   DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_companies_domain
	ON companies(domain) WHERE domain != '';
CREATE INDEX IF NOT EXISTS idx_companies_name ON companies(name);

CREATE TABLE IF NOT EXISTS contacts (
	id             TEXT PRIMARY KEY,
	company_id     TEXT REFERENCES companies(id),
	first_name     TEXT NOT NULL DEFAULT '',
	last_name      TEXT NOT NULL DEFAULT '',
	email          TEXT NOT NULL,
	mobile_phone   TEXT NOT NULL DEFAULT '',
	linkedin_url   TEXT NOT NULL DEFAULT '',
	job_title      TEXT NOT NULL DEFAULT '',
	seniority      TEXT NOT NULL DEFAULT '',
	function_group TEXT NOT NULL DEFAULT '',
	country        TEXT NOT NULL DEFAULT '',
	state          TEXT NOT NULL DEFAULT '',
	city           TEXT NOT NULL DEFAULT '',
	created_at     DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_contacts_email ON contacts(email);
CREATE INDEX IF NOT EXISTS idx_contacts_linkedin ON contacts(linkedin_url);
CREATE INDEX IF NOT EXISTS idx_contacts_company ON contacts(company_id);

CREATE TABLE IF NOT EXISTS leads (
	id             TEXT PRIMARY KEY,
	email          TEXT NOT NULL UNIQUE,
	payload        TEXT NOT NULL,
	created_at     DATETIME NOT NULL DEFAULT (datetime('now')),
	updated_at     DATETIME NOT NULL DEFAULT (datetime('now'))
);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) FindCompanyByDomain(ctx context.Context, domain string) (string, error) {
	if domain == "" {
		return "", nil
	}
	return s.scanID(ctx, `SELECT id FROM companies WHERE domain = ?`, domain)
}

func (s *SQLiteStore) FindCompanyByName(ctx context.Context, name string) (string, error) {
	if name == "" {
		return "", nil
	}
	return s.scanID(ctx, `SELECT id FROM companies WHERE name = ? COLLATE NOCASE`, name)
}

func (s *SQLiteStore) CreateCompany(ctx context.Context, draft model.CompanyDraft) (string, error) {
	// Final uniqueness check before insert; the unique index backstops the
	// remaining window.
	if draft.Domain != "" {
		if id, err := s.FindCompanyByDomain(ctx, draft.Domain); err != nil || id != "" {
			return id, err
		}
	}

	id := uuid.New().String()
	techJSON, err := json.Marshal(draft.Technologies)
	if err != nil {
		return "", eris.Wrap(err, "sqlite: marshal technologies")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO companies (id, name, domain, website, linkedin_url, industry, company_size, phone, technologies, country, state, city)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, draft.Name, draft.Domain, draft.Website, draft.LinkedInURL, draft.ScrapedIndustry,
		draft.CompanySize, draft.CompanyPhone, string(techJSON), draft.Country, draft.State, draft.City,
	)
	if err != nil {
		if isUniqueViolation(err) && draft.Domain != "" {
			// Lost the race after the check; return the winner.
			return s.FindCompanyByDomain(ctx, draft.Domain)
		}
		return "", eris.Wrap(err, "sqlite: insert company")
	}
	return id, nil
}

func (s *SQLiteStore) FindContactByEmail(ctx context.Context, email string) (string, error) {
	if email == "" {
		return "", nil
	}
	return s.scanID(ctx, `SELECT id FROM contacts WHERE email = ?`, email)
}

func (s *SQLiteStore) FindContactByLinkedInURL(ctx context.Context, url string) (string, error) {
	if url == "" {
		return "", nil
	}
	return s.scanID(ctx, `SELECT id FROM contacts WHERE linkedin_url = ?`, url)
}

func (s *SQLiteStore) FindContactByNameAndCompanyDomain(ctx context.Context, firstName, lastName, domain string) (string, error) {
	if firstName == "" || lastName == "" || domain == "" {
		return "", nil
	}
	return s.scanID(ctx,
		`SELECT c.id FROM contacts c
		 JOIN companies co ON co.id = c.company_id
		 WHERE c.first_name = ? COLLATE NOCASE AND c.last_name = ? COLLATE NOCASE AND co.domain = ?`,
		firstName, lastName, domain,
	)
}

func (s *SQLiteStore) CreateContact(ctx context.Context, draft model.ContactDraft, companyID string) (string, error) {
	id := uuid.New().String()

	var company sql.NullString
	if companyID != "" {
		company = sql.NullString{String: companyID, Valid: true}
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO contacts (id, company_id, first_name, last_name, email, mobile_phone, linkedin_url, job_title, seniority, function_group, country, state, city)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, company, draft.FirstName, draft.LastName, draft.Email, draft.MobilePhone,
		draft.LinkedInURL, draft.JobTitle, draft.Seniority, string(draft.FunctionGroup),
		draft.Country, draft.State, draft.City,
	)
	if err != nil {
		return "", eris.Wrap(err, "sqlite: insert contact")
	}
	return id, nil
}

func (s *SQLiteStore) CreateOrUpdateLeadByEmail(ctx context.Context, lead model.LeadRecord) (string, error) {
	payload, err := json.Marshal(lead)
	if err != nil {
		return "", eris.Wrap(err, "sqlite: marshal lead")
	}

	id := uuid.New().String()
	now := time.Now().UTC()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO leads (id, email, payload, created_at, updated_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(email) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		id, lead.Email, string(payload), now, now,
	)
	if err != nil {
		return "", eris.Wrap(err, "sqlite: upsert lead")
	}
	return s.scanID(ctx, `SELECT id FROM leads WHERE email = ?`, lead.Email)
}

func (s *SQLiteStore) scanID(ctx context.Context, query string, args ...any) (string, error) {
	var id string
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&id)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", eris.Wrap(err, "sqlite: query id")
	}
	return id, nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
