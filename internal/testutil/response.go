package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"
)

// Envelope is the decoded response body shape
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   *struct {
		Code    string              `json:"code"`
		Message string              `json:"message"`
		Details map[string][]string `json:"details"`
	} `json:"error"`
}

// AssertStatus fails the test when the response has an unexpected status code
func AssertStatus(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	if resp.StatusCode != expected {
		body, _ := io.ReadAll(resp.Body)
		t.Errorf("Expected status %d, got %d. Body: %s", expected, resp.StatusCode, string(body))
	}
}

// ParseJSON decodes the response body into target
func ParseJSON(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read response body: %v", err)
	}
	defer resp.Body.Close()

	if err := json.Unmarshal(body, target); err != nil {
		t.Fatalf("Failed to decode JSON: %v. Body: %s", err, string(body))
	}
}

// ParseEnvelope decodes the envelope and, when target is not nil, its data member
func ParseEnvelope(t *testing.T, resp *http.Response, target interface{}) Envelope {
	t.Helper()
	var env Envelope
	ParseJSON(t, resp, &env)
	if target != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, target); err != nil {
			t.Fatalf("Failed to decode data: %v. Data: %s", err, string(env.Data))
		}
	}
	return env
}

// ErrorCode returns the error code of a failed envelope, or an empty string
func (e Envelope) ErrorCode() string {
	if e.Error == nil {
		return ""
	}
	return e.Error.Code
}
