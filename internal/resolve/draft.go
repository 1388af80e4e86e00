package resolve

import (
	"strings"

	"github.com/sells-group/lead-ingest/internal/extract"
	"github.com/sells-group/lead-ingest/internal/model"
	"github.com/sells-group/lead-ingest/internal/normalize"
)

// Drafts pairs the normalized person and organization candidates built from
// one raw record.
type Drafts struct {
	Contact model.ContactDraft
	Company model.CompanyDraft
}

// BuildDrafts turns a raw record into normalized drafts. Pure: extraction and
// normalization only, no lookups. The gazetteer may be nil to use the default
// alias tables; an empty country code falls back to the package default.
func BuildDrafts(rec model.RawRecord, gaz *normalize.Gazetteer, countryCode string) Drafts {
	if countryCode == "" {
		countryCode = normalize.DefaultCountryCode
	}

	loc := func(v string, kind normalize.LocationKind) string {
		if gaz != nil {
			return gaz.Normalize(v, kind)
		}
		return normalize.Location(v, kind)
	}

	field := func(f extract.Field) string {
		return normalize.SanitizeString(extract.Extract(rec, f))
	}

	contact := model.ContactDraft{
		FirstName:   field(extract.FieldFirstName),
		LastName:    field(extract.FieldLastName),
		Email:       strings.ToLower(field(extract.FieldEmail)),
		MobilePhone: normalize.PhoneWithCountry(field(extract.FieldMobilePhone), countryCode),
		LinkedInURL: field(extract.FieldLinkedInURL),
		JobTitle:    field(extract.FieldJobTitle),
		Seniority:   field(extract.FieldSeniority),
		Country:     loc(field(extract.FieldCountry), normalize.KindCountry),
		State:       loc(field(extract.FieldState), normalize.KindState),
		City:        loc(field(extract.FieldCity), normalize.KindCity),
	}

	company := model.CompanyDraft{
		Name:            normalize.CompanyName(field(extract.FieldCompanyName)),
		Domain:          normalize.Domain(field(extract.FieldDomain)),
		Website:         field(extract.FieldWebsite),
		LinkedInURL:     field(extract.FieldCompanyLI),
		ScrapedIndustry: field(extract.FieldIndustry),
		CompanyPhone:    normalize.PhoneWithCountry(field(extract.FieldCompanyPhone), countryCode),
		Technologies:    normalize.Technologies(extract.ExtractRaw(rec, extract.FieldTechnologies)),
		Country:         contact.Country,
		State:           contact.State,
		City:            contact.City,
	}

	if size, ok := normalize.Number(field(extract.FieldCompanySize)); ok {
		company.CompanySize = size
	}

	// A website string is another route to the company domain.
	if company.Domain == "" && company.Website != "" {
		company.Domain = normalize.Domain(company.Website)
	}

	return Drafts{Contact: contact, Company: company}
}
