// Package resolve decides whether an incoming record matches an existing
// contact or company and creates the missing entities. Everything up to the
// persistence calls is pure; lookups and inserts go through the store
// contract, and identity strategies run in a fixed priority order.
package resolve

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sells-group/lead-ingest/internal/classify"
	"github.com/sells-group/lead-ingest/internal/enrich"
	"github.com/sells-group/lead-ingest/internal/model"
	"github.com/sells-group/lead-ingest/internal/normalize"
	"github.com/sells-group/lead-ingest/internal/store"
	"github.com/sells-group/lead-ingest/internal/validate"
)

// WebsiteChecker gates company websites; implemented by validate.WebsiteScorer.
type WebsiteChecker interface {
	Check(ctx context.Context, url string) (validate.WebsiteResult, error)
}

// Options tunes resolver behavior.
type Options struct {
	// SynthesizeWebsite builds https://<domain> when a record has a derivable
	// business domain but no website string, so the entry can still pass the
	// quality gate instead of being dropped as no_website.
	SynthesizeWebsite bool

	// Gazetteer overrides the default location alias tables; nil uses them.
	Gazetteer *normalize.Gazetteer

	// PhoneCountryCode is assumed for national-format phone numbers; empty
	// falls back to normalize.DefaultCountryCode.
	PhoneCountryCode string
}

// Resolver runs the per-entry identity state machine.
type Resolver struct {
	store   store.Store
	checker WebsiteChecker
	enrich  enrich.Trigger
	opts    Options
}

// NewResolver creates a resolver. The enrichment trigger may be nil.
func NewResolver(st store.Store, checker WebsiteChecker, trigger enrich.Trigger, opts Options) *Resolver {
	return &Resolver{store: st, checker: checker, enrich: trigger, opts: opts}
}

var labelCaser = cases.Title(language.English)

// Process takes one raw record to a terminal outcome: created, duplicate, or
// skipped. Errors are returned only for transient store/network failures, so
// the orchestrator can retry the entry.
func (r *Resolver) Process(ctx context.Context, rec model.RawRecord) (model.EntryOutcome, error) {
	drafts := BuildDrafts(rec, r.opts.Gazetteer, r.opts.PhoneCountryCode)
	contact, company := drafts.Contact, drafts.Company

	// Email gate. Malformed and disposable addresses are rejected outright;
	// free-mail addresses remain valid contacts but never derive company
	// identity below.
	if contact.Email == "" {
		return skipped(model.SkipNoEmail), nil
	}
	ok, rejection := validate.BusinessEmail(contact.Email)
	freeMail := rejection == validate.RejectionFreeMail
	if !ok && !freeMail {
		return skipped(model.SkipInvalidEmail), nil
	}

	emailDomain := normalize.Domain(contact.Email)

	// Company name and domain fallbacks.
	if company.Name == "" && emailDomain != "" && !freeMail {
		company.Name = nameFromDomain(emailDomain)
	}
	if company.Domain == "" && emailDomain != "" && !freeMail {
		company.Domain = emailDomain
	}

	// Website gate.
	if company.Website == "" && r.opts.SynthesizeWebsite && company.Domain != "" && !validate.IsFreeMailDomain(company.Domain) {
		company.Website = "https://" + company.Domain
	}
	if company.Website == "" {
		return skipped(model.SkipNoWebsite), nil
	}
	if r.checker != nil {
		res, err := r.checker.Check(ctx, company.Website)
		if err != nil {
			return model.EntryOutcome{}, eris.Wrap(err, "resolve: website check")
		}
		if !res.Valid {
			zap.L().Debug("resolve: website rejected",
				zap.String("website", company.Website),
				zap.Int("score", res.Score),
			)
			return skipped(model.SkipInvalidWebsite), nil
		}
	}

	// Duplicate detection, first strategy wins.
	if outcome, found, err := r.findDuplicate(ctx, contact, company); err != nil {
		return model.EntryOutcome{}, err
	} else if found {
		return outcome, nil
	}

	// Company resolution.
	companyID, companyNew, err := r.resolveCompany(ctx, company, emailDomain, freeMail)
	if err != nil {
		return model.EntryOutcome{}, err
	}
	if companyNew && r.enrich != nil {
		r.enrich.TriggerCompanyEnrichment(ctx, companyID, company.Domain)
	}

	contact.FunctionGroup = classify.FunctionGroup(contact.JobTitle)

	contactID, err := r.store.CreateContact(ctx, contact, companyID)
	if err != nil {
		return model.EntryOutcome{}, eris.Wrap(err, "resolve: create contact")
	}

	// Public lead record: best effort, keyed on email.
	if _, err := r.store.CreateOrUpdateLeadByEmail(ctx, model.LeadRecord{
		Email:         contact.Email,
		FirstName:     contact.FirstName,
		LastName:      contact.LastName,
		JobTitle:      contact.JobTitle,
		FunctionGroup: contact.FunctionGroup,
		CompanyName:   company.Name,
		CompanyDomain: company.Domain,
		ContactID:     contactID,
		CompanyID:     companyID,
	}); err != nil {
		zap.L().Warn("resolve: lead upsert failed",
			zap.String("email", contact.Email),
			zap.Error(err),
		)
	}

	zap.L().Info("resolve: contact created",
		zap.String("email", contact.Email),
		zap.String("contact_id", contactID),
		zap.String("company_id", companyID),
		zap.Bool("company_new", companyNew),
	)

	return model.EntryOutcome{
		Status:     model.OutcomeCreated,
		ContactID:  contactID,
		CompanyID:  companyID,
		CompanyNew: companyNew,
	}, nil
}

// findDuplicate tries the identity strategies in priority order: email,
// LinkedIn URL, then first+last name with company domain.
func (r *Resolver) findDuplicate(ctx context.Context, contact model.ContactDraft, company model.CompanyDraft) (model.EntryOutcome, bool, error) {
	id, err := r.store.FindContactByEmail(ctx, contact.Email)
	if err != nil {
		return model.EntryOutcome{}, false, eris.Wrap(err, "resolve: find by email")
	}
	if id != "" {
		return duplicate(id, model.MatchByEmail), true, nil
	}

	if contact.LinkedInURL != "" {
		id, err = r.store.FindContactByLinkedInURL(ctx, contact.LinkedInURL)
		if err != nil {
			return model.EntryOutcome{}, false, eris.Wrap(err, "resolve: find by linkedin")
		}
		if id != "" {
			return duplicate(id, model.MatchByLinkedIn), true, nil
		}
	}

	if contact.FirstName != "" && contact.LastName != "" && company.Domain != "" {
		id, err = r.store.FindContactByNameAndCompanyDomain(ctx, contact.FirstName, contact.LastName, company.Domain)
		if err != nil {
			return model.EntryOutcome{}, false, eris.Wrap(err, "resolve: find by name+domain")
		}
		if id != "" {
			return duplicate(id, model.MatchByNameAndDomain), true, nil
		}
	}

	return model.EntryOutcome{}, false, nil
}

// resolveCompany finds or creates the company in decreasing confidence order:
// email domain, scraped domain, then bare name. Returns ("", false, nil) when
// nothing identifies a company; the contact is then created unlinked.
func (r *Resolver) resolveCompany(ctx context.Context, company model.CompanyDraft, emailDomain string, freeMail bool) (string, bool, error) {
	if emailDomain != "" && !freeMail {
		draft := company
		draft.Domain = emailDomain
		return r.findOrCreateByDomain(ctx, draft)
	}

	if company.Domain != "" && company.Domain != emailDomain && !validate.IsFreeMailDomain(company.Domain) {
		return r.findOrCreateByDomain(ctx, company)
	}

	if company.Name != "" {
		id, err := r.store.FindCompanyByName(ctx, company.Name)
		if err != nil {
			return "", false, eris.Wrap(err, "resolve: find company by name")
		}
		if id != "" {
			return id, false, nil
		}
		draft := company
		draft.Domain = ""
		id, err = r.store.CreateCompany(ctx, draft)
		if err != nil {
			return "", false, eris.Wrap(err, "resolve: create company by name")
		}
		zap.L().Debug("resolve: company created without domain",
			zap.String("name", draft.Name),
			zap.String("company_id", id),
		)
		return id, true, nil
	}

	return "", false, nil
}

func (r *Resolver) findOrCreateByDomain(ctx context.Context, draft model.CompanyDraft) (string, bool, error) {
	id, err := r.store.FindCompanyByDomain(ctx, draft.Domain)
	if err != nil {
		return "", false, eris.Wrap(err, "resolve: find company by domain")
	}
	if id != "" {
		return id, false, nil
	}

	// CreateCompany re-checks domain uniqueness before insert; a race loser
	// still gets the winner's id back.
	id, err = r.store.CreateCompany(ctx, draft)
	if err != nil {
		return "", false, eris.Wrap(err, "resolve: create company")
	}
	return id, true, nil
}

// nameFromDomain derives a display name from a domain's first label.
func nameFromDomain(domain string) string {
	label, _, _ := strings.Cut(domain, ".")
	if label == "" {
		return ""
	}
	return labelCaser.String(label)
}

func skipped(reason model.SkipReason) model.EntryOutcome {
	return model.EntryOutcome{Status: model.OutcomeSkipped, SkipReason: reason}
}

func duplicate(id string, method model.MatchMethod) model.EntryOutcome {
	return model.EntryOutcome{Status: model.OutcomeDuplicate, ContactID: id, MatchMethod: method}
}
