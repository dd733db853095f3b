package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Keys     APIKeys
	Ai       AIConfig
	Research ResearchConfig
	Upload   UploadConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	LocalUserName      string
}

type DatabaseConfig struct {
	Connection string
}

type APIKeys struct {
	GoogleGemini string
	Perplexity   string
	Jina         string
	ProcessTopic string // Document processing topic
}

type AIConfig struct {
	EmbeddingProvider string // "gemini", "ollama" or "jina"
	EmbeddingModel    string
	OllamaBaseURL     string
	OllamaModel       string
	LLMProvider       string // "gemini", "ollama", "huggingface"
	LLMModel          string // e.g. "gemini-2.0-flash-exp", "llama3"
}

type ResearchConfig struct {
	ArxivMaxResults   int
	ArxivRatePerSec   float64
	HistoryLimit      int
	SearchLimit       int
	ScoreThreshold    float64
	PerplexityModel   string
	PerplexityBaseURL string
}

type UploadConfig struct {
	Dir             string
	MaxUploadSizeMB int
	ChunkSize       int
	ChunkOverlap    int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:8000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:8501"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log.csv"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			LocalUserName:      getEnv("LOCAL_USER_NAME", "local_user"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
			Perplexity:   getEnv("PERPLEXITY_API_KEY", ""),
			Jina:         getEnv("JINA_API_KEY", ""),
			ProcessTopic: getEnv("PROCESS_DOCUMENT_TOPIC_NAME", "PROCESS_DOCUMENT"),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "gemini"),
			EmbeddingModel:    getEnv("EMBEDDING_MODEL", "text-embedding-004"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:       getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			LLMProvider:       getEnv("LLM_PROVIDER", "gemini"),
			LLMModel:          getEnv("LLM_MODEL", "gemini-2.0-flash-exp"),
		},
		Research: ResearchConfig{
			ArxivMaxResults:   getEnvAsInt("ARXIV_MAX_RESULTS", 5),
			ArxivRatePerSec:   getEnvAsFloat("ARXIV_RATE_PER_SEC", 0.5),
			HistoryLimit:      getEnvAsInt("HISTORY_LIMIT", 10),
			SearchLimit:       getEnvAsInt("SEMANTIC_SEARCH_LIMIT", 5),
			ScoreThreshold:    getEnvAsFloat("SEMANTIC_SCORE_THRESHOLD", 0.5),
			PerplexityModel:   getEnv("PERPLEXITY_MODEL", "llama-3.1-sonar-small-128k-online"),
			PerplexityBaseURL: getEnv("PERPLEXITY_BASE_URL", "https://api.perplexity.ai"),
		},
		Upload: UploadConfig{
			Dir:             getEnv("UPLOAD_DIR", "uploads"),
			MaxUploadSizeMB: getEnvAsInt("MAX_UPLOAD_SIZE_MB", 10),
			ChunkSize:       getEnvAsInt("CHUNK_SIZE", 1000),
			ChunkOverlap:    getEnvAsInt("CHUNK_OVERLAP", 200),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}
