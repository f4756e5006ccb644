// Package openai is a minimal client for the OpenAI Files and Batch
// APIs, covering exactly the calls this tool makes.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// DefaultBaseURL is the production API endpoint.
const DefaultBaseURL = "https://api.openai.com"

// File is an uploaded file handle.
type File struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	Purpose  string `json:"purpose"`
	Bytes    int64  `json:"bytes"`
}

// Batch is a batch job summary as returned by create, list and
// retrieve. Timestamps are unix seconds; zero means the API has not
// reported the field.
type Batch struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	InputFileID  string `json:"input_file_id"`
	OutputFileID string `json:"output_file_id"`
	ErrorFileID  string `json:"error_file_id"`
	CreatedAt    int64  `json:"created_at"`
	InProgressAt int64  `json:"in_progress_at"`
	CompletedAt  int64  `json:"completed_at"`
}

type batchList struct {
	Data    []Batch `json:"data"`
	HasMore bool    `json:"has_more"`
}

type apiErrorEnvelope struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}

// Client talks to the OpenAI API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client authenticated with apiKey. An empty
// baseURL selects the production endpoint.
func NewClient(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
		var envelope apiErrorEnvelope
		if json.Unmarshal(body, &envelope) == nil && envelope.Error.Message != "" {
			return fmt.Errorf("API error (%s): %s", resp.Status, envelope.Error.Message)
		}
		return fmt.Errorf("API returned %s", resp.Status)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response body: %w", err)
	}
	return nil
}

// UploadFile uploads data as a batch input file (purpose=batch).
func (c *Client) UploadFile(ctx context.Context, filename string, data []byte) (*File, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("purpose", "batch"); err != nil {
		return nil, fmt.Errorf("write purpose field: %w", err)
	}
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("write file data: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/files", &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var file File
	if err := c.do(req, &file); err != nil {
		return nil, err
	}
	return &file, nil
}

// CreateBatch submits a batch job over the uploaded input file against
// the Responses API endpoint with a 24h completion window.
func (c *Client) CreateBatch(ctx context.Context, inputFileID string) (*Batch, error) {
	payload, err := json.Marshal(map[string]string{
		"input_file_id":     inputFileID,
		"endpoint":          "/v1/responses",
		"completion_window": "24h",
	})
	if err != nil {
		return nil, fmt.Errorf("encode batch request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/batches", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var batch Batch
	if err := c.do(req, &batch); err != nil {
		return nil, err
	}
	return &batch, nil
}

// ListBatches returns up to limit batch summaries, most recent first.
func (c *Client) ListBatches(ctx context.Context, limit int) ([]Batch, error) {
	u := c.baseURL + "/v1/batches"
	if limit > 0 {
		u += "?limit=" + strconv.Itoa(limit)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	var list batchList
	if err := c.do(req, &list); err != nil {
		return nil, err
	}
	return list.Data, nil
}

// RetrieveBatch fetches the current state of one batch job.
func (c *Client) RetrieveBatch(ctx context.Context, batchID string) (*Batch, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/batches/"+url.PathEscape(batchID), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	var batch Batch
	if err := c.do(req, &batch); err != nil {
		return nil, err
	}
	return &batch, nil
}

// FileContent downloads the raw content of a file, typically the JSONL
// output of a completed batch.
func (c *Client) FileContent(ctx context.Context, fileID string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/files/"+url.PathEscape(fileID)+"/content", nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
		var envelope apiErrorEnvelope
		if json.Unmarshal(body, &envelope) == nil && envelope.Error.Message != "" {
			return "", fmt.Errorf("API error (%s): %s", resp.Status, envelope.Error.Message)
		}
		return "", fmt.Errorf("API returned %s", resp.Status)
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read file content: %w", err)
	}
	return string(content), nil
}
