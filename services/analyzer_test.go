package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"main/config"
	"main/model"
)

func testNotes() []*model.Note {
	return []*model.Note{
		{ID: 2, UserID: "u", Title: "Today", Content: "Felt better after a walk.", LastUpdated: time.Now()},
		{ID: 1, UserID: "u", Title: "Yesterday", Content: "Hard day at work.", LastUpdated: time.Now().Add(-24 * time.Hour)},
	}
}

func newTestAnalyzer(t *testing.T, handlerFn http.HandlerFunc) *OpenAIAnalyzer {
	t.Helper()

	server := httptest.NewServer(handlerFn)
	t.Cleanup(server.Close)

	analyzer, err := NewOpenAIAnalyzer(config.AnalyzerConfig{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Model:   "test-model",
		Timeout: 5 * time.Second,
	})
	if err != nil {
		t.Fatalf("failed to build analyzer: %v", err)
	}
	return analyzer
}

func completionBody(content string) string {
	body, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	})
	return string(body)
}

func TestOpenAIAnalyzer(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		analyzer := newTestAnalyzer(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/chat/completions" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
				t.Errorf("unexpected auth header %q", got)
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(completionBody(`{"analysis":"ok","resources":[{"title":"t","description":"d","type":"article","url":null}],"recommendations":"rest"}`)))
		})

		result, err := analyzer.Analyze(context.Background(), testNotes())
		if err != nil {
			t.Fatal("analyze failed", err)
		}
		if result.Analysis != "ok" || len(result.Resources) != 1 || result.Recommendations != "rest" {
			t.Errorf("unexpected result: %+v", result)
		}
	})

	t.Run("FencedJSONTolerated", func(t *testing.T) {
		analyzer := newTestAnalyzer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(completionBody("```json\n{\"analysis\":\"fenced\",\"resources\":[],\"recommendations\":\"r\"}\n```")))
		})

		result, err := analyzer.Analyze(context.Background(), testNotes())
		if err != nil {
			t.Fatal("analyze failed", err)
		}
		if result.Analysis != "fenced" {
			t.Errorf("unexpected result: %+v", result)
		}
	})

	t.Run("APIError", func(t *testing.T) {
		analyzer := newTestAnalyzer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error":{"message":"rate limited","type":"rate_limit"}}`))
		})

		_, err := analyzer.Analyze(context.Background(), testNotes())
		var analyzerErr *model.AnalyzerError
		if !errors.As(err, &analyzerErr) {
			t.Fatalf("expected AnalyzerError, got %v", err)
		}
	})

	t.Run("UnusableOutput", func(t *testing.T) {
		analyzer := newTestAnalyzer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(completionBody("Sorry, I cannot help with that.")))
		})

		_, err := analyzer.Analyze(context.Background(), testNotes())
		var analyzerErr *model.AnalyzerError
		if !errors.As(err, &analyzerErr) {
			t.Fatalf("expected AnalyzerError for non-JSON output, got %v", err)
		}
	})

	t.Run("ContextTimeout", func(t *testing.T) {
		analyzer := newTestAnalyzer(t, func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
			w.Write([]byte(completionBody(`{"analysis":"late","resources":[],"recommendations":""}`)))
		})

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		_, err := analyzer.Analyze(ctx, testNotes())
		var analyzerErr *model.AnalyzerError
		if !errors.As(err, &analyzerErr) {
			t.Fatalf("expected AnalyzerError on timeout, got %v", err)
		}
	})

	t.Run("MissingAPIKey", func(t *testing.T) {
		if _, err := NewOpenAIAnalyzer(config.AnalyzerConfig{}); err == nil {
			t.Fatal("expected error for missing API key")
		}
	})
}
