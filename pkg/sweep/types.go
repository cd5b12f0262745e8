package sweep

import (
	"sweeparr/pkg/jellyfin"
)

// Rules are the retention thresholds for one run, snapshotted at scan
// start so settings edits never affect an in-flight scan.
type Rules struct {
	MovieRetentionDays  int `json:"movieRetentionDays"`
	SeasonRetentionDays int `json:"seasonRetentionDays"`
}

// Reason names the retention rule that made an item a candidate.
type Reason string

const (
	ReasonMovieRetention  Reason = "movie retention exceeded"
	ReasonSeasonRetention Reason = "season retention exceeded"
)

// Candidate is a library item that passed age and exclusion filtering and
// awaits confirmation. It exists only for one scan-to-delete cycle.
type Candidate struct {
	Item     jellyfin.Item `json:"item"`
	AgeDays  float64       `json:"ageDays"`
	Reason   Reason        `json:"reason"`
	Selected bool          `json:"selected"`
}

// ScanResult is the outcome of one scan pass.
type ScanResult struct {
	Candidates      []Candidate `json:"candidates"`
	TotalScanned    int         `json:"totalScanned"`
	SkippedRecent   int         `json:"skippedRecent"`
	SkippedExcluded int         `json:"skippedExcluded"`
}

// OutcomeStatus classifies the result of one attempted deletion.
type OutcomeStatus string

const (
	StatusSuccess              OutcomeStatus = "success"
	StatusSkippedNotConfigured OutcomeStatus = "skipped_not_configured"
	StatusSkippedNoProviderID  OutcomeStatus = "skipped_no_provider_id"
	StatusSkippedNotFound      OutcomeStatus = "skipped_not_found_downstream"
	StatusFailed               OutcomeStatus = "failed"
)

// Outcome records what happened to a single candidate. Never persisted
// beyond the run.
type Outcome struct {
	CandidateID string        `json:"candidateId"`
	Title       string        `json:"title"`
	Status      OutcomeStatus `json:"status"`
	Detail      string        `json:"detail,omitempty"`
	BytesFreed  int64         `json:"bytesFreed,omitempty"`
}

// RunSummary is the final tally of one delete batch.
type RunSummary struct {
	Attempted  int   `json:"attempted"`
	Succeeded  int   `json:"succeeded"`
	BytesFreed int64 `json:"bytesFreed"`
}
