package store

import "time"

// Batch statuses as reported by the OpenAI Batch API.
const (
	StatusValidating = "validating"
	StatusInProgress = "in_progress"
	StatusFinalizing = "finalizing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
	StatusExpired    = "expired"
	StatusCancelled  = "cancelled"
)

// IsTerminalStatus reports whether no further remote progress is expected.
func IsTerminalStatus(status string) bool {
	switch status {
	case StatusCompleted, StatusFailed, StatusExpired, StatusCancelled:
		return true
	}
	return false
}

// IsProcessingStatus reports whether the batch is still being worked on.
func IsProcessingStatus(status string) bool {
	switch status {
	case StatusValidating, StatusInProgress, StatusFinalizing:
		return true
	}
	return false
}

// Usage holds token counts from a Responses API usage object.
type Usage struct {
	InputTokens  int64 `json:"input_tokens"`
	OutputTokens int64 `json:"output_tokens"`
	TotalTokens  int64 `json:"total_tokens,omitempty"`
}

// Record is one submitted batch request tracked locally.
//
// RequestID is the locally generated custom_id embedded in the batch
// payload; BatchID is assigned by the API at submission. Either one
// resolves the record.
type Record struct {
	// Immutable submission data
	RequestID    string    `json:"request_id"`
	BatchID      string    `json:"job_id"`
	InputFileID  string    `json:"input_file_id"`
	Prompt       string    `json:"prompt"`
	SystemPrompt string    `json:"system_prompt"`
	Model        string    `json:"model"`
	MaxTokens    int       `json:"max_tokens"`
	CreatedAt    time.Time `json:"created_at"`

	// Volatile fields, overwritten by status reconciliation.
	// StartedAt/CompletedAt are unix seconds from the API; zero means
	// the API has not reported them yet. Once set they are never
	// cleared, even if a later API summary omits them.
	Status       string `json:"status"`
	StartedAt    int64  `json:"started_at,omitempty"`
	CompletedAt  int64  `json:"completed_at,omitempty"`
	OutputFileID string `json:"output_file_id,omitempty"`

	// Response is the cached extracted answer, written at most once.
	// A record with a non-empty Response never fetches again.
	Response string `json:"response,omitempty"`
	Usage    *Usage `json:"usage,omitempty"`
}

// Matches reports whether key identifies this record, by either the
// local request id or the remote batch id.
func (r *Record) Matches(key string) bool {
	return r.RequestID == key || r.BatchID == key
}

// Find returns the index of the first record matching key in store
// order. The caller passes one opaque identifier; it does not matter
// which kind it is.
func Find(records []Record, key string) (int, bool) {
	for i := range records {
		if records[i].Matches(key) {
			return i, true
		}
	}
	return -1, false
}
