package extract

// Field is a canonical field name resolved from provider-specific keys.
type Field string

// Canonical fields the pipeline extracts from raw records.
const (
	FieldEmail        Field = "email"
	FieldFirstName    Field = "firstName"
	FieldLastName     Field = "lastName"
	FieldJobTitle     Field = "jobTitle"
	FieldSeniority    Field = "seniority"
	FieldMobilePhone  Field = "mobilePhone"
	FieldLinkedInURL  Field = "linkedinUrl"
	FieldCompanyName  Field = "companyName"
	FieldDomain       Field = "domain"
	FieldWebsite      Field = "website"
	FieldCompanyLI    Field = "companyLinkedinUrl"
	FieldIndustry     Field = "industry"
	FieldCompanySize  Field = "companySize"
	FieldCompanyPhone Field = "companyPhone"
	FieldTechnologies Field = "technologies"
	FieldCountry      Field = "country"
	FieldState        Field = "state"
	FieldCity         Field = "city"
)

// synonyms maps each canonical field to its ordered list of provider keys.
// Dotted entries are nested paths (e.g. "organization.name"). Order matters:
// the first key yielding a non-empty value wins, and downstream identity
// resolution depends on that choice being deterministic, so treat these lists
// as append-only.
var synonyms = map[Field][]string{
	FieldEmail: {
		"email", "email_address", "emailAddress", "work_email", "workEmail",
		"contact_email", "person.email", "properties.email",
	},
	FieldFirstName: {
		"first_name", "firstName", "firstname", "given_name", "fname",
		"person.first_name", "properties.firstname",
	},
	FieldLastName: {
		"last_name", "lastName", "lastname", "family_name", "surname", "lname",
		"person.last_name", "properties.lastname",
	},
	FieldJobTitle: {
		"title", "job_title", "jobTitle", "jobtitle", "position", "role",
		"headline", "person.title", "properties.jobtitle",
	},
	FieldSeniority: {
		"seniority", "seniority_level", "seniorityLevel", "level",
		"person.seniority",
	},
	FieldMobilePhone: {
		"mobile_phone", "mobilePhone", "mobile", "cell_phone", "phone_number",
		"phoneNumber", "phone", "direct_phone", "person.phone",
	},
	FieldLinkedInURL: {
		"linkedin_url", "linkedinUrl", "linkedin", "li_url", "linkedin_profile",
		"person.linkedin_url", "properties.linkedin_url",
	},
	FieldCompanyName: {
		"company_name", "companyName", "company", "organization_name",
		"organization.name", "org.company_name", "org.name", "account_name",
		"employer", "properties.company",
	},
	FieldDomain: {
		"company_domain", "companyDomain", "domain", "organization.domain",
		"org.domain", "email_domain", "properties.domain",
	},
	FieldWebsite: {
		"website", "website_url", "websiteUrl", "company_website", "web",
		"url", "organization.website_url", "org.website", "properties.website",
	},
	FieldCompanyLI: {
		"company_linkedin_url", "companyLinkedinUrl", "organization.linkedin_url",
		"org.linkedin_url", "company_linkedin",
	},
	FieldIndustry: {
		"industry", "company_industry", "organization.industry", "org.industry",
		"sector", "properties.industry",
	},
	FieldCompanySize: {
		"company_size", "companySize", "employees", "employee_count",
		"employeeCount", "headcount", "organization.estimated_num_employees",
		"org.size", "size",
	},
	FieldCompanyPhone: {
		"company_phone", "companyPhone", "organization.phone", "org.phone",
		"main_phone",
	},
	FieldTechnologies: {
		"technologies", "tech_stack", "techStack", "organization.technologies",
		"org.technologies", "tech",
	},
	FieldCountry: {
		"country", "country_name", "person.country", "organization.country",
		"location.country", "properties.country",
	},
	FieldState: {
		"state", "region", "province", "person.state", "organization.state",
		"location.state",
	},
	FieldCity: {
		"city", "town", "locality", "person.city", "organization.city",
		"location.city",
	},
}

// Synonyms returns the ordered key list for a canonical field.
func Synonyms(f Field) []string {
	return synonyms[f]
}
