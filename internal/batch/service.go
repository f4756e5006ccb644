// Package batch manages the lifecycle of locally tracked batch
// requests: submission, status reconciliation against the OpenAI Batch
// API, and response extraction from batch output files.
package batch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/regismesquita/oaibatch/internal/openai"
	"github.com/regismesquita/oaibatch/internal/store"
)

// API is the slice of the OpenAI client this service consumes.
type API interface {
	UploadFile(ctx context.Context, filename string, data []byte) (*openai.File, error)
	CreateBatch(ctx context.Context, inputFileID string) (*openai.Batch, error)
	ListBatches(ctx context.Context, limit int) ([]openai.Batch, error)
	RetrieveBatch(ctx context.Context, batchID string) (*openai.Batch, error)
	FileContent(ctx context.Context, fileID string) (string, error)
}

// listLimit bounds the bulk status listing. Matches the remote API's
// maximum page size.
const listLimit = 100

// Service owns all mutations of the record store. Every operation is
// read-modify-write over the whole store.
type Service struct {
	store *store.Store
	api   API
}

// NewService creates a batch service over the given store and API
// client.
func NewService(st *store.Store, api API) *Service {
	return &Service{store: st, api: api}
}

// CreateParams are the submission parameters for a new batch request.
type CreateParams struct {
	Prompt          string
	SystemPrompt    string
	Model           string
	MaxTokens       int
	ReasoningEffort string
}

// Create uploads a single-request batch input file, submits the batch
// job, and appends a new record to the store.
func (s *Service) Create(ctx context.Context, p CreateParams) (*store.Record, error) {
	customID := newRequestID()

	line, err := buildRequestLine(customID, p)
	if err != nil {
		return nil, err
	}

	file, err := s.api.UploadFile(ctx, customID+".jsonl", line)
	if err != nil {
		return nil, &RemoteError{Op: "upload batch file", Err: err}
	}

	created, err := s.api.CreateBatch(ctx, file.ID)
	if err != nil {
		return nil, &RemoteError{Op: "create batch", Err: err}
	}

	rec := store.Record{
		RequestID:    customID,
		BatchID:      created.ID,
		InputFileID:  file.ID,
		Prompt:       p.Prompt,
		SystemPrompt: p.SystemPrompt,
		Model:        p.Model,
		MaxTokens:    p.MaxTokens,
		Status:       created.Status,
		CreatedAt:    time.Now(),
		OutputFileID: created.OutputFileID,
	}

	records := s.store.Load()
	records = append(records, rec)
	if err := s.store.Save(records); err != nil {
		return nil, err
	}
	return &rec, nil
}

// newRequestID generates a short human-referenceable correlation key.
func newRequestID() string {
	hex := strings.ReplaceAll(uuid.New().String(), "-", "")
	return "req-" + hex[:8]
}

// merge brings a record's volatile fields up to date with a remote
// batch summary. Status is overwritten unconditionally; the output file
// handle and timestamps are monotonic, a remote summary lacking them
// never clears a previously observed value.
func merge(rec *store.Record, b *openai.Batch) {
	rec.Status = b.Status
	if b.OutputFileID != "" {
		rec.OutputFileID = b.OutputFileID
	}
	if b.CompletedAt != 0 {
		rec.CompletedAt = b.CompletedAt
	}
	if b.InProgressAt != 0 {
		rec.StartedAt = b.InProgressAt
	}
}

// RefreshAll reconciles every local record against one bulk listing and
// persists the result. The records are always returned; a non-nil error
// means reconciliation was skipped or incomplete and should be shown as
// a warning, with the (possibly stale) local view still usable.
func (s *Service) RefreshAll(ctx context.Context) ([]store.Record, error) {
	records := s.store.Load()
	if len(records) == 0 {
		return records, nil
	}

	batches, err := s.api.ListBatches(ctx, listLimit)
	if err != nil {
		return records, &RemoteError{Op: "fetch batch statuses", Err: err}
	}

	byID := make(map[string]*openai.Batch, len(batches))
	for i := range batches {
		byID[batches[i].ID] = &batches[i]
	}
	for i := range records {
		if b, ok := byID[records[i].BatchID]; ok {
			merge(&records[i], b)
		}
	}

	if err := s.store.Save(records); err != nil {
		return records, fmt.Errorf("save refreshed records: %w", err)
	}
	return records, nil
}

// Find resolves a record by request id or batch id without touching the
// network.
func (s *Service) Find(key string) (store.Record, error) {
	records := s.store.Load()
	i, ok := store.Find(records, key)
	if !ok {
		return store.Record{}, ErrNotFound
	}
	return records[i], nil
}

// Refresh reconciles one record against a single batch retrieval and
// persists the result. On a remote failure the stored record is
// returned unchanged alongside the error, so the caller can still
// display cached state.
func (s *Service) Refresh(ctx context.Context, key string) (store.Record, error) {
	records := s.store.Load()
	i, ok := store.Find(records, key)
	if !ok {
		return store.Record{}, ErrNotFound
	}

	b, err := s.api.RetrieveBatch(ctx, records[i].BatchID)
	if err != nil {
		return records[i], &RemoteError{Op: "fetch batch status", Err: err}
	}
	merge(&records[i], b)

	if err := s.store.Save(records); err != nil {
		return records[i], err
	}
	return records[i], nil
}

// Response is an extracted (or cached) answer.
type Response struct {
	Text   string
	Usage  *store.Usage
	Note   string
	Cached bool
}

// FetchResponse returns the answer for the record matching key,
// fetching and scanning the batch output file at most once per record.
// A cached response is returned without any remote I/O. Failure modes,
// in precondition order: ErrNotFound, NotReadyError (not completed),
// ErrMissingOutput (completed but no output handle), RemoteError
// (download failed, nothing mutated), ErrExtractionMiss (payload has no
// line for this correlation key).
func (s *Service) FetchResponse(ctx context.Context, key string) (store.Record, Response, error) {
	records := s.store.Load()
	i, ok := store.Find(records, key)
	if !ok {
		return store.Record{}, Response{}, ErrNotFound
	}
	rec := records[i]

	if rec.Response != "" {
		return rec, Response{Text: rec.Response, Usage: rec.Usage, Cached: true}, nil
	}
	if rec.Status != store.StatusCompleted {
		return rec, Response{}, &NotReadyError{Status: rec.Status}
	}
	if rec.OutputFileID == "" {
		return rec, Response{}, ErrMissingOutput
	}

	payload, err := s.api.FileContent(ctx, rec.OutputFileID)
	if err != nil {
		return rec, Response{}, &RemoteError{Op: "fetch batch output", Err: err}
	}

	ex, err := extractFromPayload(payload, rec.RequestID)
	if err != nil {
		return rec, Response{}, err
	}

	records[i].Response = ex.Text
	if ex.Usage != nil {
		records[i].Usage = ex.Usage
	}
	if err := s.store.Save(records); err != nil {
		return records[i], Response{}, err
	}
	return records[i], Response{Text: ex.Text, Usage: ex.Usage, Note: ex.Note}, nil
}
