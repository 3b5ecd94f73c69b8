// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package faq

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"text/template"
)

// geminiAPIBase is the generative-language endpoint root. Declared as a var
// so tests can substitute an httptest server.
var geminiAPIBase = "https://generativelanguage.googleapis.com/v1beta/models"

// Failure sentences surfaced verbatim to the end user. These are the only
// errors the assistant ever shows; everything else degrades silently.
const (
	msgMissingKey   = "Gemini API key is missing. Please add it to the assistant configuration."
	msgNetworkError = "A network error occurred. Please try again later."
	noAnswer        = "No answer found."
)

// promptTmpl renders the instructional preamble around the user question.
// It carries the library facts inline so the model can answer without tools.
var promptTmpl = template.Must(template.New("faq").Parse(`You are {{.Facts.AssistantName}}, an AI assistant for {{.Facts.Institution}}. Provide accurate and concise answers based on the following FAQ and library information. Key information:
- Library website: {{.Facts.Website}}.
- Library timings: Weekdays {{.Facts.WeekdayHours}}, Weekends & Holidays {{.Facts.WeekendHours}}, check {{.Facts.HoursURL}}.
- Physical book search: Use {{.Facts.OPACURL}} to search for physical books. For specific searches (e.g., by title or topic), guide users to enter terms in the catalog's title field. Automatic searches are not possible.
- e-Resources: Access digital books and journal articles at {{.Facts.EResourcesURL}}, available 24/7 remotely.
- Group Discussion Rooms: Book at {{.Facts.GDRoomURL}}.
- Helpdesk: {{.Facts.HelpdeskEmail}}.
FAQ:
{{- range .Facts.FAQ}}
- {{.Topic}}: {{.Answer}}
{{- end}}
If the question is unrelated, politely redirect to library-related topics.
User question: {{.Question}}`))

// GeminiBackend calls the generative-language API for general queries when
// no search intent applies. Single-turn: no conversation history is sent.
type GeminiBackend struct {
	APIKey string
	Model  string
	Client *http.Client
	Facts  LibraryFacts
}

// Answer wraps the question in the preamble and returns the first
// candidate's text verbatim. It never returns an error: each failure mode
// maps to a fixed human-readable sentence instead.
func (g *GeminiBackend) Answer(ctx context.Context, question string) string {
	if g.APIKey == "" {
		return msgMissingKey
	}

	prompt, err := g.renderPrompt(question)
	if err != nil {
		return msgNetworkError
	}

	reqBody := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: prompt}}},
		},
	}
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return msgNetworkError
	}

	model := g.Model
	if model == "" {
		model = "gemini-2.0-flash"
	}
	url := fmt.Sprintf("%s/%s:generateContent", geminiAPIBase, model)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return msgNetworkError
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-goog-api-key", g.APIKey)

	client := g.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return msgNetworkError
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return msgNetworkError
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Sprintf("Connection error: %d - %s", resp.StatusCode, string(body))
	}

	var gResp geminiResponse
	if err := json.Unmarshal(body, &gResp); err != nil {
		return noAnswer
	}
	if len(gResp.Candidates) == 0 || len(gResp.Candidates[0].Content.Parts) == 0 {
		return noAnswer
	}
	text := gResp.Candidates[0].Content.Parts[0].Text
	if text == "" {
		return noAnswer
	}
	return text
}

// renderPrompt executes the preamble template with the facts and question.
func (g *GeminiBackend) renderPrompt(question string) (string, error) {
	var buf bytes.Buffer
	err := promptTmpl.Execute(&buf, struct {
		Facts    LibraryFacts
		Question string
	}{Facts: g.Facts, Question: question})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Generative-language API JSON structures.
type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
}

type geminiCandidate struct {
	Content geminiCandidateContent `json:"content"`
}

type geminiCandidateContent struct {
	Parts []geminiPart `json:"parts"`
}
