package websearch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearchSuccess(t *testing.T) {
	var gotAuth string
	var gotReq chatRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotReq)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"model": "sonar-test",
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": "RAG combines retrieval with generation."}},
			},
			"citations": []string{"https://example.com/rag"},
		})
	}))
	defer server.Close()

	client := NewPerplexityClient("test-key", "sonar-test", server.URL)
	result, err := client.Search(context.Background(), "what is RAG", FocusAcademic)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if gotAuth != "Bearer test-key" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if len(gotReq.Messages) != 2 || gotReq.Messages[0].Role != "system" {
		t.Errorf("request messages = %+v, want system + user", gotReq.Messages)
	}
	if gotReq.Messages[0].Content != focusPrompts[FocusAcademic] {
		t.Errorf("system prompt does not match academic focus")
	}
	if result.Answer != "RAG combines retrieval with generation." {
		t.Errorf("Answer = %q", result.Answer)
	}
	if len(result.Citations) != 1 || result.Citations[0] != "https://example.com/rag" {
		t.Errorf("Citations = %v", result.Citations)
	}
	if result.Model != "sonar-test" {
		t.Errorf("Model = %q", result.Model)
	}
}

func TestSearchUnknownFocusFallsBackToGeneral(t *testing.T) {
	var gotReq chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotReq)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"model":   "sonar-test",
			"choices": []map[string]interface{}{{"message": map[string]string{"content": "ok"}}},
		})
	}))
	defer server.Close()

	client := NewPerplexityClient("test-key", "sonar-test", server.URL)
	if _, err := client.Search(context.Background(), "q", "bogus"); err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if gotReq.Messages[0].Content != focusPrompts[FocusGeneral] {
		t.Errorf("unknown focus should fall back to general prompt")
	}
}

func TestSearchMissingAPIKey(t *testing.T) {
	client := NewPerplexityClient("", "sonar-test", "http://localhost:0")
	if _, err := client.Search(context.Background(), "q", FocusGeneral); err == nil {
		t.Error("expected error when api key missing")
	}
}

func TestSearchAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"rate limited"}}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewPerplexityClient("test-key", "sonar-test", server.URL)
	if _, err := client.Search(context.Background(), "q", FocusGeneral); err == nil {
		t.Error("expected error for non-200 response")
	}
}

func TestSearchEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"model": "sonar-test", "choices": []interface{}{}})
	}))
	defer server.Close()

	client := NewPerplexityClient("test-key", "sonar-test", server.URL)
	if _, err := client.Search(context.Background(), "q", FocusGeneral); err == nil {
		t.Error("expected error for empty choices")
	}
}
