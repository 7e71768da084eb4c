package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"main/config"
	"main/model"
)

// ResourceAnalyzer turns a bounded batch of notes into a structured set of
// wellness resources. Implementations talk to an external provider: calls
// are slow, fallible, and the output shape is not contractually guaranteed,
// so callers must normalize results before persisting them.
type ResourceAnalyzer interface {
	Analyze(ctx context.Context, notes []*model.Note) (*model.ResourceSet, error)
}

// Ensure OpenAIAnalyzer implements the interface.
var _ ResourceAnalyzer = (*OpenAIAnalyzer)(nil)

// OpenAIAnalyzer calls an OpenAI-compatible /chat/completions endpoint.
type OpenAIAnalyzer struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
}

// chatCompletionRequest is the /chat/completions request format.
type chatCompletionRequest struct {
	Model       string              `json:"model"`
	Messages    []chatCompletionMsg `json:"messages"`
	Temperature float64             `json:"temperature,omitempty"`
}

type chatCompletionMsg struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatCompletionResponse is the /chat/completions response format.
type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

func NewOpenAIAnalyzer(cfg config.AnalyzerConfig) (*OpenAIAnalyzer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("analyzer: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 120 * time.Second
	}

	return &OpenAIAnalyzer{
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
	}, nil
}

const analysisSystemPrompt = `You are a supportive mental-wellness assistant.
You read a user's journal entries and respond with helpful, non-clinical
wellness resources. Respond with ONLY a JSON object, no prose, matching:
{
  "analysis": "short free-text summary of themes in the entries",
  "resources": [
    {"title": "...", "description": "...", "type": "article|exercise|technique|tool|analysis", "url": "https://... or null"}
  ],
  "recommendations": "free-text suggestions for the user"
}`

// Analyze sends the batch to the provider and parses the structured result.
// Any transport, API, or parse failure is reported as a model.AnalyzerError.
func (a *OpenAIAnalyzer) Analyze(ctx context.Context, notes []*model.Note) (*model.ResourceSet, error) {
	reqBody := chatCompletionRequest{
		Model: a.model,
		Messages: []chatCompletionMsg{
			{Role: "system", Content: analysisSystemPrompt},
			{Role: "user", Content: buildBatchPrompt(notes)},
		},
		Temperature: 0.3,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, &model.AnalyzerError{Op: "marshal request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		a.baseURL+"/chat/completions", bytes.NewReader(jsonBody))
	if err != nil {
		return nil, &model.AnalyzerError{Op: "create request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.apiKey)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, &model.AnalyzerError{Op: "send request", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &model.AnalyzerError{Op: "read response", Err: err}
	}

	var chatResp chatCompletionResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return nil, &model.AnalyzerError{Op: "decode response", Err: err}
	}
	if chatResp.Error != nil {
		return nil, &model.AnalyzerError{Op: "api call",
			Err: fmt.Errorf("%s: %s", chatResp.Error.Type, chatResp.Error.Message)}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &model.AnalyzerError{Op: "api call",
			Err: fmt.Errorf("status %d: %s", resp.StatusCode, string(body))}
	}
	if len(chatResp.Choices) == 0 {
		return nil, &model.AnalyzerError{Op: "api call",
			Err: fmt.Errorf("no response choices returned")}
	}

	result, err := parseResourceSet(chatResp.Choices[0].Message.Content)
	if err != nil {
		return nil, &model.AnalyzerError{Op: "parse result", Err: err}
	}
	return result, nil
}

// buildBatchPrompt formats the batch newest-first, the same order the
// orchestrator selected it in.
func buildBatchPrompt(notes []*model.Note) string {
	var b strings.Builder
	b.WriteString("Journal entries, most recent first:\n\n")
	for i, note := range notes {
		fmt.Fprintf(&b, "Entry %d (%s)\nTitle: %s\n%s\n\n",
			i+1, note.LastUpdated.Format(time.RFC3339), note.Title, note.Content)
	}
	return b.String()
}

// parseResourceSet decodes the model output, tolerating a ```json fence
// around the object. Providers are inconsistent about this.
func parseResourceSet(content string) (*model.ResourceSet, error) {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(strings.TrimSpace(content), "```")
		content = strings.TrimSpace(content)
	}

	var result model.ResourceSet
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return nil, fmt.Errorf("unusable analyzer output: %w", err)
	}
	return &result, nil
}
