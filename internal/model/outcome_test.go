package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBatchSummary_Tally(t *testing.T) {
	var s BatchSummary
	s.Tally(EntryOutcome{Status: OutcomeCreated, CompanyNew: true})
	s.Tally(EntryOutcome{Status: OutcomeCreated})
	s.Tally(EntryOutcome{Status: OutcomeDuplicate, MatchMethod: MatchByEmail})
	s.Tally(EntryOutcome{Status: OutcomeSkipped, SkipReason: SkipNoEmail})
	s.Tally(EntryOutcome{Status: OutcomeFailed, Err: "boom"})

	assert.Equal(t, 5, s.Processed)
	assert.Equal(t, 2, s.ContactsCreated)
	assert.Equal(t, 1, s.CompaniesCreated)
	assert.Equal(t, 1, s.DuplicatesSkipped)
	assert.Equal(t, 1, s.FilteredOut)
	assert.Equal(t, 1, s.PermanentlyFailed)
	assert.Len(t, s.Outcomes, 5)
}

func TestBatchSummary_Summarize(t *testing.T) {
	s := BatchSummary{Processed: 3, ContactsCreated: 2, CompaniesCreated: 1, DuplicatesSkipped: 1}
	s.Summarize()
	assert.Contains(t, s.Message, "processed 3 entries")
	assert.Contains(t, s.Message, "2 contacts created")
}

func TestContactDraft_FullName(t *testing.T) {
	assert.Equal(t, "Jane Doe", ContactDraft{FirstName: "Jane", LastName: "Doe"}.FullName())
	assert.Equal(t, "Jane", ContactDraft{FirstName: "Jane"}.FullName())
	assert.Equal(t, "Doe", ContactDraft{LastName: "Doe"}.FullName())
	assert.Equal(t, "", ContactDraft{}.FullName())
}
