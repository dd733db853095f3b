package websearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Result carries the answer of a web search with its cited URLs.
type Result struct {
	Answer    string   `json:"answer"`
	Citations []string `json:"citations"`
	Model     string   `json:"model"`
}

// Focus selects the system prompt used for a search.
const (
	FocusAcademic = "academic"
	FocusInternet = "internet"
	FocusGeneral  = "general"
)

var focusPrompts = map[string]string{
	FocusAcademic: "You are a research assistant. Focus on academic and scholarly sources. Provide factual, well-cited information with an emphasis on peer-reviewed material.",
	FocusInternet: "You are a helpful search assistant. Provide current, accurate information from reliable web sources. Include relevant facts and figures.",
	FocusGeneral:  "You are a knowledgeable assistant. Provide a balanced, factual answer drawing on reliable sources.",
}

type PerplexityClient struct {
	ApiKey  string
	Model   string
	BaseURL string

	client *http.Client
}

func NewPerplexityClient(apiKey, model, baseURL string) *PerplexityClient {
	if model == "" {
		model = "llama-3.1-sonar-small-128k-online"
	}
	if baseURL == "" {
		baseURL = "https://api.perplexity.ai"
	}
	return &PerplexityClient{
		ApiKey:  apiKey,
		Model:   model,
		BaseURL: baseURL,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

// --- Request/Response structs (Internal to this package) ---

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Citations []string `json:"citations"`
	Error     *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Search runs a web search through the Perplexity chat-completions API.
func (p *PerplexityClient) Search(ctx context.Context, query, focus string) (*Result, error) {
	if p.ApiKey == "" {
		return nil, fmt.Errorf("perplexity api key not configured")
	}

	systemPrompt, ok := focusPrompts[focus]
	if !ok {
		systemPrompt = focusPrompts[FocusGeneral]
	}

	reqBody := chatRequest{
		Model: p.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: query},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/chat/completions", p.BaseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", p.ApiKey))

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("perplexity api error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var searchResp chatResponse
	if err := json.Unmarshal(bodyBytes, &searchResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if searchResp.Error != nil {
		return nil, fmt.Errorf("perplexity api returned error: %s", searchResp.Error.Message)
	}

	if len(searchResp.Choices) == 0 {
		return nil, fmt.Errorf("empty choices from perplexity api")
	}

	return &Result{
		Answer:    searchResp.Choices[0].Message.Content,
		Citations: searchResp.Citations,
		Model:     searchResp.Model,
	}, nil
}
