// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package faq

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func geminiTestServer(statusCode int, body string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		fmt.Fprint(w, body)
	}))
}

func testBackend(ts *httptest.Server) *GeminiBackend {
	return &GeminiBackend{
		APIKey: "test-key",
		Model:  "gemini-2.0-flash",
		Client: ts.Client(),
		Facts:  DefaultFacts(),
	}
}

func TestAnswerReturnsCandidateTextVerbatim(t *testing.T) {
	const answer = "The library is open 8:00 AM to midnight on weekdays."
	resp := fmt.Sprintf(`{"candidates":[{"content":{"parts":[{"text":%q}]}}]}`, answer)

	ts := geminiTestServer(http.StatusOK, resp)
	defer ts.Close()

	old := geminiAPIBase
	geminiAPIBase = ts.URL
	defer func() { geminiAPIBase = old }()

	got := testBackend(ts).Answer(context.Background(), "library timings?")
	if got != answer {
		t.Errorf("Answer = %q, want candidate text verbatim", got)
	}
}

func TestAnswerRequestShape(t *testing.T) {
	var gotPath, gotKey string
	var gotBody geminiRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("X-goog-api-key")
		json.NewDecoder(r.Body).Decode(&gotBody)
		fmt.Fprint(w, `{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`)
	}))
	defer ts.Close()

	old := geminiAPIBase
	geminiAPIBase = ts.URL
	defer func() { geminiAPIBase = old }()

	testBackend(ts).Answer(context.Background(), "where is the drop box?")

	if gotPath != "/gemini-2.0-flash:generateContent" {
		t.Errorf("path = %q, want model generateContent path", gotPath)
	}
	if gotKey != "test-key" {
		t.Errorf("X-goog-api-key = %q", gotKey)
	}
	if len(gotBody.Contents) != 1 || len(gotBody.Contents[0].Parts) != 1 {
		t.Fatalf("body = %+v, want one content with one part", gotBody)
	}

	prompt := gotBody.Contents[0].Parts[0].Text
	// Single turn: the prompt carries the preamble plus only this question.
	if !strings.Contains(prompt, "You are Ashu") {
		t.Errorf("prompt missing preamble:\n%s", prompt)
	}
	if !strings.Contains(prompt, "User question: where is the drop box?") {
		t.Errorf("prompt missing user question:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Drop Box issues") {
		t.Errorf("prompt missing FAQ facts:\n%s", prompt)
	}
}

func TestAnswerMissingKey(t *testing.T) {
	b := &GeminiBackend{Facts: DefaultFacts()}
	got := b.Answer(context.Background(), "anything")
	if got != msgMissingKey {
		t.Errorf("Answer = %q, want missing-key sentence", got)
	}
}

func TestAnswerNon200(t *testing.T) {
	ts := geminiTestServer(http.StatusTooManyRequests, `{"error":"quota"}`)
	defer ts.Close()

	old := geminiAPIBase
	geminiAPIBase = ts.URL
	defer func() { geminiAPIBase = old }()

	got := testBackend(ts).Answer(context.Background(), "q")
	want := `Connection error: 429 - {"error":"quota"}`
	if got != want {
		t.Errorf("Answer = %q, want %q", got, want)
	}
}

func TestAnswerNetworkError(t *testing.T) {
	ts := geminiTestServer(http.StatusOK, "")
	ts.Close() // closed server → transport error

	old := geminiAPIBase
	geminiAPIBase = ts.URL
	defer func() { geminiAPIBase = old }()

	b := &GeminiBackend{APIKey: "k", Client: &http.Client{}, Facts: DefaultFacts()}
	got := b.Answer(context.Background(), "q")
	if got != msgNetworkError {
		t.Errorf("Answer = %q, want network-error sentence", got)
	}
}

func TestAnswerNoCandidates(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty candidates", `{"candidates":[]}`},
		{"no parts", `{"candidates":[{"content":{"parts":[]}}]}`},
		{"empty text", `{"candidates":[{"content":{"parts":[{"text":""}]}}]}`},
		{"malformed json", `{not json`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := geminiTestServer(http.StatusOK, tt.body)
			defer ts.Close()

			old := geminiAPIBase
			geminiAPIBase = ts.URL
			defer func() { geminiAPIBase = old }()

			got := testBackend(ts).Answer(context.Background(), "q")
			if got != noAnswer {
				t.Errorf("Answer = %q, want %q", got, noAnswer)
			}
		})
	}
}

// --- facts loading ---

func TestLoadFactsEmptyPath(t *testing.T) {
	facts, err := LoadFacts("")
	if err != nil {
		t.Fatalf("LoadFacts: %v", err)
	}
	if facts.AssistantName != "Ashu" || facts.Institution != "Bennett University Library" {
		t.Errorf("defaults not returned: %+v", facts)
	}
	if len(facts.FAQ) == 0 {
		t.Error("default FAQ entries missing")
	}
}

func TestLoadFactsPartialOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "facts.yaml")
	content := "assistant_name: Custom\nweekday_hours: 9 to 5\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	facts, err := LoadFacts(path)
	if err != nil {
		t.Fatalf("LoadFacts: %v", err)
	}
	if facts.AssistantName != "Custom" {
		t.Errorf("AssistantName = %q, want override", facts.AssistantName)
	}
	if facts.WeekdayHours != "9 to 5" {
		t.Errorf("WeekdayHours = %q, want override", facts.WeekdayHours)
	}
	// Untouched fields keep their defaults.
	if facts.Institution != "Bennett University Library" {
		t.Errorf("Institution = %q, want default", facts.Institution)
	}
	if len(facts.FAQ) == 0 {
		t.Error("FAQ should keep the defaults when the file omits it")
	}
}

func TestLoadFactsMissingFile(t *testing.T) {
	_, err := LoadFacts("/nonexistent/facts.yaml")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadFactsMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "facts.yaml")
	if err := os.WriteFile(path, []byte("assistant_name: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFacts(path); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}
