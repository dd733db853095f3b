package integration

import (
	"context"
	"log"
	"math"
	"os"
	"testing"
	"time"

	"research-assistant-be/pkg/embedding"
	"research-assistant-be/pkg/llm"
	"research-assistant-be/pkg/llm/ollama"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ollamaBaseURL(t *testing.T) string {
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}
	baseURL := os.Getenv("OLLAMA_BASE_URL")
	if baseURL == "" {
		t.Skip("Skipping integration test: OLLAMA_BASE_URL not set")
	}
	return baseURL
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestOllamaLLMProvider(t *testing.T) {
	baseURL := ollamaBaseURL(t)
	provider := ollama.NewOllamaProvider(baseURL, envOr("LLM_MODEL", "llama3.2"))

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	t.Run("Generate", func(t *testing.T) {
		answer, err := provider.Generate(ctx, "Reply with the single word: pong", llm.WithTemperature(0))
		require.NoError(t, err)
		assert.NotEmpty(t, answer)
	})

	t.Run("Chat with history", func(t *testing.T) {
		history := []llm.Message{
			{Role: "system", Content: "You are a terse assistant."},
			{Role: "user", Content: "My name is Ada."},
			{Role: "assistant", Content: "Noted."},
			{Role: "user", Content: "What is my name?"},
		}
		answer, err := provider.Chat(ctx, history, llm.WithTemperature(0))
		require.NoError(t, err)
		assert.Contains(t, answer, "Ada")
	})
}

func TestOllamaEmbeddingProvider(t *testing.T) {
	baseURL := ollamaBaseURL(t)
	provider := embedding.NewOllamaProvider(baseURL, envOr("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"))

	res, err := provider.Generate("pgvector stores embeddings", "RETRIEVAL_DOCUMENT")
	require.NoError(t, err)
	require.NotEmpty(t, res.Embedding.Values)

	// The provider normalizes vectors for cosine search
	var magnitude float64
	for _, v := range res.Embedding.Values {
		magnitude += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, math.Sqrt(magnitude), 0.01)
}
