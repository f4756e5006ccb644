package batch

import (
	"errors"
	"fmt"
)

// Lookup errors
var (
	// ErrNotFound indicates no record matches the given key
	ErrNotFound = errors.New("request not found")
)

// Extraction errors
var (
	// ErrMissingOutput indicates a completed batch with no output file,
	// a remote-side inconsistency
	ErrMissingOutput = errors.New("batch completed but no output file was provided")

	// ErrExtractionMiss indicates the output file exists but contains no
	// line for this request's correlation key
	ErrExtractionMiss = errors.New("could not locate this request's response in the output file")
)

// NotReadyError indicates the batch has not reached "completed" yet. It
// carries the current status so front-ends can show progress instead of
// an error.
type NotReadyError struct {
	Status string
}

func (e *NotReadyError) Error() string {
	return fmt.Sprintf("batch not completed (status: %s)", e.Status)
}

// RemoteError wraps a failed call to the OpenAI API. Local state is
// untouched when one is returned; callers decide whether it is fatal
// (single read) or a warning (bulk refresh).
type RemoteError struct {
	Op  string
	Err error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}
