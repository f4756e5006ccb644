package batch

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/regismesquita/oaibatch/internal/store"
)

// Output item and content tags used by the Responses API. Anything
// else is skipped during extraction.
const (
	itemTypeMessage       = "message"
	contentTypeOutputText = "output_text"
)

// resultLine is one record of the batch output JSONL file.
type resultLine struct {
	CustomID string `json:"custom_id"`
	Response struct {
		Body json.RawMessage `json:"body"`
	} `json:"response"`
	Error json.RawMessage `json:"error"`
}

type responseBody struct {
	Output     []outputItem    `json:"output"`
	OutputText json.RawMessage `json:"output_text"`
	Usage      *store.Usage    `json:"usage"`
}

type outputItem struct {
	Type    string         `json:"type"`
	Content []contentEntry `json:"content"`
}

type contentEntry struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Extraction is the answer recovered from a batch output file.
type Extraction struct {
	Text  string
	Usage *store.Usage
	// Note carries the line's error object, if the API attached one to
	// the matched result. It annotates the text, it does not reject it.
	Note string
}

// extractFromPayload scans the newline-delimited payload for the line
// whose custom_id equals customID and recovers its answer text. The
// scan stops at the first match; output order is not guaranteed to be
// submission order, so matching is by correlation key, never position.
func extractFromPayload(payload, customID string) (*Extraction, error) {
	for _, line := range strings.Split(payload, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var result resultLine
		if err := json.Unmarshal([]byte(line), &result); err != nil {
			// One malformed line must not hide a valid result elsewhere.
			continue
		}
		if result.CustomID != customID {
			continue
		}

		body := result.Response.Body
		var decoded responseBody
		if len(body) > 0 {
			// Decode errors leave the zero value; all tiers below then
			// fall through to the raw dump.
			json.Unmarshal(body, &decoded)
		}

		ex := &Extraction{
			Text:  extractText(body, decoded),
			Usage: decoded.Usage,
		}
		if len(result.Error) > 0 && string(result.Error) != "null" {
			ex.Note = string(result.Error)
		}
		return ex, nil
	}
	return nil, ErrExtractionMiss
}

// extractText recovers the answer text from a Responses API body using
// a three-tier fallback:
//
//  1. output items list -> item tagged "message" -> content entry
//     tagged "output_text"; the first non-empty text wins.
//  2. top-level "output_text" field, when it is a plain string.
//  3. an indented dump of the whole body, so the caller still gets
//     something printable out of an unrecognized shape.
func extractText(raw json.RawMessage, body responseBody) string {
	for _, item := range body.Output {
		if item.Type != itemTypeMessage {
			continue
		}
		for _, c := range item.Content {
			if c.Type == contentTypeOutputText && c.Text != "" {
				return c.Text
			}
		}
	}

	if len(body.OutputText) > 0 {
		var s string
		if err := json.Unmarshal(body.OutputText, &s); err == nil && s != "" {
			return s
		}
	}

	return dumpBody(raw)
}

func dumpBody(raw json.RawMessage) string {
	if len(raw) == 0 {
		return "{}"
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	pretty, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return string(raw)
	}
	return string(pretty)
}

// buildRequestLine serializes the single JSONL request line submitted
// as the batch input file.
func buildRequestLine(customID string, p CreateParams) ([]byte, error) {
	type reasoning struct {
		Effort string `json:"effort"`
	}
	type requestBody struct {
		Model           string     `json:"model"`
		Instructions    string     `json:"instructions"`
		Input           string     `json:"input"`
		MaxOutputTokens int        `json:"max_output_tokens"`
		Reasoning       *reasoning `json:"reasoning,omitempty"`
	}
	type requestLine struct {
		CustomID string      `json:"custom_id"`
		Method   string      `json:"method"`
		URL      string      `json:"url"`
		Body     requestBody `json:"body"`
	}

	line := requestLine{
		CustomID: customID,
		Method:   "POST",
		URL:      "/v1/responses",
		Body: requestBody{
			Model:           p.Model,
			Instructions:    p.SystemPrompt,
			Input:           p.Prompt,
			MaxOutputTokens: p.MaxTokens,
		},
	}
	if p.ReasoningEffort != "" {
		line.Body.Reasoning = &reasoning{Effort: p.ReasoningEffort}
	}

	data, err := json.Marshal(line)
	if err != nil {
		return nil, fmt.Errorf("encode request line: %w", err)
	}
	return append(data, '\n'), nil
}
