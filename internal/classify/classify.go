// Package classify maps free-text job titles onto the fixed function-group
// taxonomy using ordered keyword rules.
package classify

import (
	"strings"

	"github.com/sells-group/lead-ingest/internal/model"
)

// keywordGroup pairs a function group with the substrings that select it.
// tokens match whole words only, for abbreviations like "hr" that would
// otherwise fire inside unrelated words.
type keywordGroup struct {
	group    model.FunctionGroup
	keywords []string
	tokens   []string
}

// keywordGroups is evaluated top to bottom; the first group with a keyword
// present in the lower-cased title wins. The order is part of the contract:
// "founder & cmo" classifies as Owner/Founder, not Marketing. Do not reorder.
var keywordGroups = []keywordGroup{
	{group: model.FunctionGroupOwner, keywords: []string{
		"owner", "founder", "oprichter", "eigenaar", "ceo", "chief executive",
		"managing director", "directeur", "dga", "partner", "president",
	}},
	{group: model.FunctionGroupMarketing, keywords: []string{
		"marketing", "cmo", "brand", "growth", "seo", "content", "communicat",
		"demand gen",
	}},
	{group: model.FunctionGroupSales, keywords: []string{
		"sales", "account executive", "account manager", "business development",
		"commercial", "cro", "revenue", "verkoop", "bdr", "sdr",
	}},
	{group: model.FunctionGroupTechnical, keywords: []string{
		"cto", "engineer", "developer", "software", "technical", "technology",
		"it manager", "architect", "devops", "data scien", "infrastructure",
	}},
	{group: model.FunctionGroupFinance, keywords: []string{
		"cfo", "finance", "financial", "controller", "accounting", "accountant",
		"treasurer", "boekhoud",
	}},
	{group: model.FunctionGroupHR, keywords: []string{
		"human resources", "people", "talent", "recruit", "chro",
		"personeel",
	}, tokens: []string{"hr"}},
	{group: model.FunctionGroupOperations, keywords: []string{
		"operations", "coo", "logistics", "supply chain", "procurement",
		"operationeel", "facility",
	}},
	{group: model.FunctionGroupProduct, keywords: []string{
		"product", "cpo", "ux", "design",
	}},
	{group: model.FunctionGroupCustomer, keywords: []string{
		"customer success", "customer service", "support", "klantenservice",
		"client service",
	}},
}

// FunctionGroup classifies a job title. An empty title yields
// FunctionGroupUnknown; a title matching no keyword group yields
// FunctionGroupOther.
func FunctionGroup(jobTitle string) model.FunctionGroup {
	title := strings.ToLower(strings.TrimSpace(jobTitle))
	if title == "" {
		return model.FunctionGroupUnknown
	}

	words := strings.FieldsFunc(title, func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	})

	for _, kg := range keywordGroups {
		for _, kw := range kg.keywords {
			if strings.Contains(title, kw) {
				return kg.group
			}
		}
		for _, tok := range kg.tokens {
			for _, w := range words {
				if w == tok {
					return kg.group
				}
			}
		}
	}
	return model.FunctionGroupOther
}
