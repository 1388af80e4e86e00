package model

import "fmt"

// OutcomeStatus is the terminal state of one processed entry.
type OutcomeStatus string

// Terminal entry states.
const (
	OutcomeCreated   OutcomeStatus = "created"
	OutcomeDuplicate OutcomeStatus = "duplicate"
	OutcomeSkipped   OutcomeStatus = "skipped"
	OutcomeFailed    OutcomeStatus = "failed"
)

// SkipReason explains why an entry was filtered out rather than created.
type SkipReason string

// Skip reasons, reported in aggregate counts.
const (
	SkipNoEmail        SkipReason = "no_email"
	SkipInvalidEmail   SkipReason = "invalid_email"
	SkipNoWebsite      SkipReason = "no_website"
	SkipInvalidWebsite SkipReason = "invalid_website"
)

// MatchMethod is the identity strategy that detected a duplicate.
type MatchMethod string

// Identity strategies, in detection priority order.
const (
	MatchByEmail         MatchMethod = "email"
	MatchByLinkedIn      MatchMethod = "linkedin"
	MatchByNameAndDomain MatchMethod = "name_domain"
)

// EntryOutcome is the per-entry result of the identity resolver.
type EntryOutcome struct {
	Status      OutcomeStatus `json:"status"`
	SkipReason  SkipReason    `json:"skip_reason,omitempty"`
	MatchMethod MatchMethod   `json:"match_method,omitempty"`
	ContactID   string        `json:"contact_id,omitempty"`
	CompanyID   string        `json:"company_id,omitempty"`
	CompanyNew  bool          `json:"company_new,omitempty"`
	Err         string        `json:"error,omitempty"`
}

// BatchSummary aggregates the outcomes of one ingestion run.
type BatchSummary struct {
	Processed         int    `json:"processed"`
	ContactsCreated   int    `json:"contacts_created"`
	CompaniesCreated  int    `json:"companies_created"`
	DuplicatesSkipped int    `json:"duplicates_skipped"`
	FilteredOut       int    `json:"filtered_out"`
	PermanentlyFailed int    `json:"permanently_failed"`
	DroppedLines      int    `json:"dropped_lines"`
	Message           string `json:"message"`

	Outcomes []EntryOutcome `json:"outcomes,omitempty"`
}

// Summarize fills in the human-readable message from the counters.
func (s *BatchSummary) Summarize() {
	s.Message = fmt.Sprintf(
		"processed %d entries: %d contacts created (%d new companies), %d duplicates, %d filtered, %d failed",
		s.Processed, s.ContactsCreated, s.CompaniesCreated, s.DuplicatesSkipped, s.FilteredOut, s.PermanentlyFailed,
	)
}

// Tally folds one entry outcome into the counters.
func (s *BatchSummary) Tally(o EntryOutcome) {
	s.Processed++
	s.Outcomes = append(s.Outcomes, o)
	switch o.Status {
	case OutcomeCreated:
		s.ContactsCreated++
		if o.CompanyNew {
			s.CompaniesCreated++
		}
	case OutcomeDuplicate:
		s.DuplicatesSkipped++
	case OutcomeSkipped:
		s.FilteredOut++
	case OutcomeFailed:
		s.PermanentlyFailed++
	}
}
