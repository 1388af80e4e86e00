package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/lead-ingest/internal/model"
)

// Pool is the subset of pgxpool.Pool the store uses; pgxmock satisfies it.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool Pool
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}

	return &PostgresStore{pool: pool}, nil
}

// NewPostgresWithPool wraps an existing pool; used by tests.
func NewPostgresWithPool(pool Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS companies (
	id           UUID PRIMARY KEY,
	name         TEXT NOT NULL DEFAULT '',
	domain       TEXT NOT NULL DEFAULT '',
	website      TEXT NOT NULL DEFAULT '',
	linkedin_url TEXT NOT NULL DEFAULT '',
	industry     TEXT NOT NULL DEFAULT '',
	company_size INT NOT NULL DEFAULT 0,
	phone        TEXT NOT NULL DEFAULT '',
	technologies JSONB NOT NULL DEFAULT '[]',
	country      TEXT NOT NULL DEFAULT '',
	state        TEXT NOT NULL DEFAULT '',
	city         TEXT NOT NULL DEFAULT '',
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_companies_domain
	ON companies(domain) WHERE domain <> '';
CREATE INDEX IF NOT EXISTS idx_companies_name ON companies(lower(name));

CREATE TABLE IF NOT EXISTS contacts (
	id             UUID PRIMARY KEY,
	company_id     UUID REFERENCES companies(id),
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
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_contacts_email ON contacts(email);
CREATE INDEX IF NOT EXISTS idx_contacts_linkedin ON contacts(linkedin_url);
CREATE INDEX IF NOT EXISTS idx_contacts_company ON contacts(company_id);

CREATE TABLE IF NOT EXISTS leads (
	id         UUID PRIMARY KEY,
	email      TEXT NOT NULL UNIQUE,
	payload    JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) FindCompanyByDomain(ctx context.Context, domain string) (string, error) {
	if domain == "" {
		return "", nil
	}
	return s.scanID(ctx, `SELECT id FROM companies WHERE domain = $1`, domain)
}

func (s *PostgresStore) FindCompanyByName(ctx context.Context, name string) (string, error) {
	if name == "" {
		return "", nil
	}
	return s.scanID(ctx, `SELECT id FROM companies WHERE lower(name) = lower($1) LIMIT 1`, name)
}

func (s *PostgresStore) CreateCompany(ctx context.Context, draft model.CompanyDraft) (string, error) {
	techJSON, err := json.Marshal(draft.Technologies)
	if err != nil {
		return "", eris.Wrap(err, "postgres: marshal technologies")
	}

	id := uuid.New().String()
	if draft.Domain != "" {
		// ON CONFLICT DO NOTHING plus the partial unique index closes the
		// lookup/insert race; an empty scan means we lost and re-select.
		var got string
		err := s.pool.QueryRow(ctx,
			`INSERT INTO companies (id, name, domain, website, linkedin_url, industry, company_size, phone, technologies, country, state, city)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			 ON CONFLICT (domain) WHERE domain <> '' DO NOTHING
			 RETURNING id`,
			id, draft.Name, draft.Domain, draft.Website, draft.LinkedInURL, draft.ScrapedIndustry,
			draft.CompanySize, draft.CompanyPhone, techJSON, draft.Country, draft.State, draft.City,
		).Scan(&got)
		if errors.Is(err, pgx.ErrNoRows) {
			return s.FindCompanyByDomain(ctx, draft.Domain)
		}
		if err != nil {
			return "", eris.Wrap(err, "postgres: insert company")
		}
		return got, nil
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO companies (id, name, domain, website, linkedin_url, industry, company_size, phone, technologies, country, state, city)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		id, draft.Name, draft.Domain, draft.Website, draft.LinkedInURL, draft.ScrapedIndustry,
		draft.CompanySize, draft.CompanyPhone, techJSON, draft.Country, draft.State, draft.City,
	)
	if err != nil {
		return "", eris.Wrap(err, "postgres: insert company")
	}
	return id, nil
}

func (s *PostgresStore) FindContactByEmail(ctx context.Context, email string) (string, error) {
	if email == "" {
		return "", nil
	}
	return s.scanID(ctx, `SELECT id FROM contacts WHERE email = $1`, email)
}

func (s *PostgresStore) FindContactByLinkedInURL(ctx context.Context, url string) (string, error) {
	if url == "" {
		return "", nil
	}
	return s.scanID(ctx, `SELECT id FROM contacts WHERE linkedin_url = $1 LIMIT 1`, url)
}

func (s *PostgresStore) FindContactByNameAndCompanyDomain(ctx context.Context, firstName, lastName, domain string) (string, error) {
	if firstName == "" || lastName == "" || domain == "" {
		return "", nil
	}
	return s.scanID(ctx,
		`SELECT c.id FROM contacts c
		 JOIN companies co ON co.id = c.company_id
		 WHERE lower(c.first_name) = lower($1) AND lower(c.last_name) = lower($2) AND co.domain = $3
		 LIMIT 1`,
		firstName, lastName, domain,
	)
}

func (s *PostgresStore) CreateContact(ctx context.Context, draft model.ContactDraft, companyID string) (string, error) {
	id := uuid.New().String()

	var company any
	if companyID != "" {
		company = companyID
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO contacts (id, company_id, first_name, last_name, email, mobile_phone, linkedin_url, job_title, seniority, function_group, country, state, city)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		id, company, draft.FirstName, draft.LastName, draft.Email, draft.MobilePhone,
		draft.LinkedInURL, draft.JobTitle, draft.Seniority, string(draft.FunctionGroup),
		draft.Country, draft.State, draft.City,
	)
	if err != nil {
		return "", eris.Wrap(err, "postgres: insert contact")
	}
	return id, nil
}

func (s *PostgresStore) CreateOrUpdateLeadByEmail(ctx context.Context, lead model.LeadRecord) (string, error) {
	payload, err := json.Marshal(lead)
	if err != nil {
		return "", eris.Wrap(err, "postgres: marshal lead")
	}

	var id string
	err = s.pool.QueryRow(ctx,
		`INSERT INTO leads (id, email, payload) VALUES ($1, $2, $3)
		 ON CONFLICT (email) DO UPDATE SET payload = excluded.payload, updated_at = now()
		 RETURNING id`,
		uuid.New().String(), lead.Email, payload,
	).Scan(&id)
	if err != nil {
		return "", eris.Wrap(err, "postgres: upsert lead")
	}
	return id, nil
}

func (s *PostgresStore) scanID(ctx context.Context, query string, args ...any) (string, error) {
	var id string
	err := s.pool.QueryRow(ctx, query, args...).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", eris.Wrap(err, "postgres: query id")
	}
	return id, nil
}
