package model

// ContactDraft is a normalized candidate person, not yet matched or persisted.
// Email, when set, is lower-cased and trimmed. FunctionGroup is only assigned
// after classification.
type ContactDraft struct {
	FirstName     string        `json:"first_name,omitempty"`
	LastName      string        `json:"last_name,omitempty"`
	Email         string        `json:"email,omitempty"`
	MobilePhone   string        `json:"mobile_phone,omitempty"`
	LinkedInURL   string        `json:"linkedin_url,omitempty"`
	JobTitle      string        `json:"job_title,omitempty"`
	Seniority     string        `json:"seniority,omitempty"`
	FunctionGroup FunctionGroup `json:"function_group,omitempty"`
	Country       string        `json:"country,omitempty"`
	State         string        `json:"state,omitempty"`
	City          string        `json:"city,omitempty"`
}

// FullName joins first and last name with a single space.
func (c ContactDraft) FullName() string {
	switch {
	case c.FirstName == "":
		return c.LastName
	case c.LastName == "":
		return c.FirstName
	default:
		return c.FirstName + " " + c.LastName
	}
}

// CompanyDraft is a normalized candidate organization. Domain, when set, is
// lower-case with no scheme, www prefix, or path; it is the primary identity
// key for companies.
type CompanyDraft struct {
	Name            string   `json:"name,omitempty"`
	Domain          string   `json:"domain,omitempty"`
	Website         string   `json:"website,omitempty"`
	LinkedInURL     string   `json:"linkedin_url,omitempty"`
	ScrapedIndustry string   `json:"scraped_industry,omitempty"`
	CompanySize     int      `json:"company_size,omitempty"`
	CompanyPhone    string   `json:"company_phone,omitempty"`
	Technologies    []string `json:"technologies,omitempty"`
	Country         string   `json:"country,omitempty"`
	State           string   `json:"state,omitempty"`
	City            string   `json:"city,omitempty"`
}

// LeadRecord is the public lead payload, keyed uniquely by email.
type LeadRecord struct {
	Email         string        `json:"email"`
	FirstName     string        `json:"first_name,omitempty"`
	LastName      string        `json:"last_name,omitempty"`
	JobTitle      string        `json:"job_title,omitempty"`
	FunctionGroup FunctionGroup `json:"function_group,omitempty"`
	CompanyName   string        `json:"company_name,omitempty"`
	CompanyDomain string        `json:"company_domain,omitempty"`
	ContactID     string        `json:"contact_id,omitempty"`
	CompanyID     string        `json:"company_id,omitempty"`
}
