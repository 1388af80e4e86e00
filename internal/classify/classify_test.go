package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/lead-ingest/internal/model"
)

func TestFunctionGroup_Basics(t *testing.T) {
	tests := []struct {
		title string
		want  model.FunctionGroup
	}{
		{"CEO", model.FunctionGroupOwner},
		{"Founder & CEO", model.FunctionGroupOwner},
		{"Eigenaar", model.FunctionGroupOwner},
		{"Head of Marketing", model.FunctionGroupMarketing},
		{"SEO Specialist", model.FunctionGroupMarketing},
		{"VP Sales", model.FunctionGroupSales},
		{"Account Executive", model.FunctionGroupSales},
		{"Senior Software Engineer", model.FunctionGroupTechnical},
		{"CTO", model.FunctionGroupTechnical},
		{"CFO", model.FunctionGroupFinance},
		{"Financial Controller", model.FunctionGroupFinance},
		{"HR Manager", model.FunctionGroupHR},
		{"Head of People", model.FunctionGroupHR},
		{"COO", model.FunctionGroupOperations},
		{"Supply Chain Lead", model.FunctionGroupOperations},
		{"Product Manager", model.FunctionGroupProduct},
		{"Customer Success Manager", model.FunctionGroupCustomer},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FunctionGroup(tt.title), "title %q", tt.title)
	}
}

func TestFunctionGroup_FirstGroupWins(t *testing.T) {
	// Owner/Founder precedes Marketing in the rule order.
	assert.Equal(t, model.FunctionGroupOwner, FunctionGroup("Founder & CMO"))
	// Marketing precedes Sales.
	assert.Equal(t, model.FunctionGroupMarketing, FunctionGroup("Marketing & Sales Manager"))
}

func TestFunctionGroup_NoTitle(t *testing.T) {
	assert.Equal(t, model.FunctionGroupUnknown, FunctionGroup(""))
	assert.Equal(t, model.FunctionGroupUnknown, FunctionGroup("   "))
}

func TestFunctionGroup_NoMatch(t *testing.T) {
	assert.Equal(t, model.FunctionGroupOther, FunctionGroup("Beekeeper"))
}

func TestFunctionGroup_HRMatchesWholeWord(t *testing.T) {
	// "hr" must match as a word wherever it sits in the title.
	assert.Equal(t, model.FunctionGroupHR, FunctionGroup("Head of HR"))
	assert.Equal(t, model.FunctionGroupHR, FunctionGroup("HR"))
	assert.Equal(t, model.FunctionGroupHR, FunctionGroup("HR Director"))
	// ...but not inside unrelated words.
	assert.Equal(t, model.FunctionGroupOther, FunctionGroup("Threshold Analyst"))
}

func TestFunctionGroup_CaseInsensitive(t *testing.T) {
	assert.Equal(t, model.FunctionGroupSales, FunctionGroup("vp SALES benelux"))
}
