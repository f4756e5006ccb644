package openai

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestUploadFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/files" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Errorf("Authorization = %q", got)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if purpose := r.FormValue("purpose"); purpose != "batch" {
			t.Errorf("purpose = %q, want %q", purpose, "batch")
		}
		w.Write([]byte(`{"id":"file-abc","filename":"batch.jsonl","purpose":"batch","bytes":42}`))
	}))
	defer server.Close()

	client := NewClient("sk-test", server.URL)
	file, err := client.UploadFile(context.Background(), "batch.jsonl", []byte(`{"custom_id":"req-1"}`))
	if err != nil {
		t.Fatalf("UploadFile: %v", err)
	}
	if file.ID != "file-abc" {
		t.Errorf("file.ID = %q, want %q", file.ID, "file-abc")
	}
}

func TestCreateBatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/batches" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Fatalf("read body: %v", err)
		}
		for _, want := range []string{`"input_file_id":"file-abc"`, `"endpoint":"/v1/responses"`, `"completion_window":"24h"`} {
			if !strings.Contains(string(body), want) {
				t.Errorf("request body missing %s: %s", want, body)
			}
		}
		w.Write([]byte(`{"id":"batch_xyz","status":"validating","input_file_id":"file-abc"}`))
	}))
	defer server.Close()

	client := NewClient("sk-test", server.URL)
	batch, err := client.CreateBatch(context.Background(), "file-abc")
	if err != nil {
		t.Fatalf("CreateBatch: %v", err)
	}
	if batch.ID != "batch_xyz" || batch.Status != "validating" {
		t.Errorf("batch = %+v", batch)
	}
}

func TestListBatches(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/batches" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("limit"); got != "100" {
			t.Errorf("limit = %q, want 100", got)
		}
		w.Write([]byte(`{"data":[
			{"id":"batch_1","status":"completed","output_file_id":"file-out","completed_at":1760000000,"in_progress_at":1759990000},
			{"id":"batch_2","status":"in_progress"}
		],"has_more":false}`))
	}))
	defer server.Close()

	client := NewClient("sk-test", server.URL)
	batches, err := client.ListBatches(context.Background(), 100)
	if err != nil {
		t.Fatalf("ListBatches: %v", err)
	}
	if len(batches) != 2 {
		t.Fatalf("expected 2 batches, got %d", len(batches))
	}
	if batches[0].OutputFileID != "file-out" || batches[0].CompletedAt != 1760000000 {
		t.Errorf("batch[0] = %+v", batches[0])
	}
	if batches[1].OutputFileID != "" {
		t.Errorf("batch[1].OutputFileID = %q, want empty", batches[1].OutputFileID)
	}
}

func TestRetrieveBatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/batches/batch_xyz" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte(`{"id":"batch_xyz","status":"finalizing","in_progress_at":1759990000}`))
	}))
	defer server.Close()

	client := NewClient("sk-test", server.URL)
	batch, err := client.RetrieveBatch(context.Background(), "batch_xyz")
	if err != nil {
		t.Fatalf("RetrieveBatch: %v", err)
	}
	if batch.Status != "finalizing" || batch.InProgressAt != 1759990000 {
		t.Errorf("batch = %+v", batch)
	}
}

func TestFileContent(t *testing.T) {
	payload := `{"custom_id":"req-1","response":{"body":{}}}` + "\n"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/files/file-out/content" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte(payload))
	}))
	defer server.Close()

	client := NewClient("sk-test", server.URL)
	content, err := client.FileContent(context.Background(), "file-out")
	if err != nil {
		t.Fatalf("FileContent: %v", err)
	}
	if content != payload {
		t.Errorf("content = %q, want %q", content, payload)
	}
}

func TestAPIErrorEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`))
	}))
	defer server.Close()

	client := NewClient("sk-bad", server.URL)
	_, err := client.ListBatches(context.Background(), 10)
	if err == nil {
		t.Fatal("expected error for 401 response")
	}
	if !strings.Contains(err.Error(), "Incorrect API key provided") {
		t.Errorf("error %q does not carry the API message", err)
	}
}

func TestAPIErrorWithoutEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream down"))
	}))
	defer server.Close()

	client := NewClient("sk-test", server.URL)
	_, err := client.RetrieveBatch(context.Background(), "batch_1")
	if err == nil {
		t.Fatal("expected error for 502 response")
	}
	if !strings.Contains(err.Error(), "502") {
		t.Errorf("error %q does not mention the status", err)
	}
}
