package salesforce

import (
	"context"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/lead-ingest/internal/model"
)

// Lead is the subset of the Salesforce Lead object the sink reads back.
type Lead struct {
	ID        string `json:"Id" salesforce:"Id"`
	Email     string `json:"Email" salesforce:"Email"`
	FirstName string `json:"FirstName" salesforce:"FirstName"`
	LastName  string `json:"LastName" salesforce:"LastName"`
	Company   string `json:"Company" salesforce:"Company"`
}

// FindLeadByEmail queries Salesforce for a Lead matching the given email.
// Returns nil if no lead is found.
func FindLeadByEmail(ctx context.Context, c Client, email string) (*Lead, error) {
	soql := fmt.Sprintf(
		"SELECT Id, Email, FirstName, LastName, Company FROM Lead WHERE Email = '%s' LIMIT 1",
		escapeSoql(email),
	)

	var leads []Lead
	if err := c.Query(ctx, soql, &leads); err != nil {
		return nil, eris.Wrap(err, fmt.Sprintf("sf: find lead by email %s", email))
	}
	if len(leads) == 0 {
		return nil, nil
	}
	return &leads[0], nil
}

// UpsertLeadByEmail creates the Lead, or updates the existing one when the
// email is already present. Returns the Salesforce Lead ID either way.
func UpsertLeadByEmail(ctx context.Context, c Client, lead model.LeadRecord) (string, error) {
	if lead.Email == "" {
		return "", eris.New("sf: lead email is required")
	}

	fields := leadFields(lead)

	existing, err := FindLeadByEmail(ctx, c, lead.Email)
	if err != nil {
		return "", err
	}
	if existing != nil {
		if err := c.UpdateOne(ctx, "Lead", existing.ID, fields); err != nil {
			return "", eris.Wrap(err, fmt.Sprintf("sf: update lead %s", existing.ID))
		}
		return existing.ID, nil
	}

	id, err := c.InsertOne(ctx, "Lead", fields)
	if err != nil {
		return "", eris.Wrap(err, "sf: create lead")
	}
	return id, nil
}

// leadFields maps a lead record onto Salesforce Lead fields, skipping blanks.
// Company is required by Salesforce; the domain stands in when the name is
// unknown.
func leadFields(lead model.LeadRecord) map[string]any {
	company := lead.CompanyName
	if company == "" {
		company = lead.CompanyDomain
	}
	if company == "" {
		company = "Unknown"
	}

	fields := map[string]any{
		"Email":   lead.Email,
		"Company": company,
	}
	for k, v := range map[string]string{
		"FirstName": lead.FirstName,
		"LastName":  lead.LastName,
		"Title":     lead.JobTitle,
		"Website":   lead.CompanyDomain,
	} {
		if v != "" {
			fields[k] = v
		}
	}
	if lead.FunctionGroup != "" {
		fields["Function_Group__c"] = string(lead.FunctionGroup)
	}
	return fields
}

// Sink adapts the client to the lead-sink contract the store layer consumes.
type Sink struct {
	c Client
}

// NewSink wraps a client as a lead sink.
func NewSink(c Client) *Sink {
	return &Sink{c: c}
}

// UpsertLeadByEmail implements store.LeadSink.
func (s *Sink) UpsertLeadByEmail(ctx context.Context, lead model.LeadRecord) (string, error) {
	return UpsertLeadByEmail(ctx, s.c, lead)
}

// escapeSoql escapes single quotes in SOQL string literals to prevent injection.
func escapeSoql(s string) string {
	return strings.ReplaceAll(s, "'", "\\'")
}
