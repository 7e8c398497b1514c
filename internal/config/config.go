package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Ai        AIConfig
	Retrieval RetrievalConfig
	Session   SessionConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	RedisURL           string
	RateLimitPerMinute int
}

type DatabaseConfig struct {
	Connection string
}

type AIConfig struct {
	EmbeddingProvider string // "ollama" or "openai"
	EmbeddingModel    string
	EmbeddingBaseURL  string // for openai-compatible embedding endpoints
	EmbeddingAPIKey   string
	OllamaBaseURL     string
	LLMProvider       string // "groq" or "ollama"
	LLMModel          string // e.g. "llama3-70b-8192"
	GroqAPIKey        string
	GroqBaseURL       string
}

type RetrievalConfig struct {
	TopK             int
	MaxQueryChars    int // query is truncated before embedding
	PerSectionLimit  int // cap on documents per exact section lookup
	MaxContextLength int // prompt context budget in characters
}

type SessionConfig struct {
	MaxHistoryLength int
	TTLHours         int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			RateLimitPerMinute: getEnvAsInt("RATE_LIMIT_PER_MINUTE", 30),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "ollama"),
			EmbeddingModel:    getEnv("EMBEDDING_MODEL", "nomic-embed-text"),
			EmbeddingBaseURL:  getEnv("EMBEDDING_BASE_URL", ""),
			EmbeddingAPIKey:   getEnv("EMBEDDING_API_KEY", ""),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			LLMProvider:       getEnv("LLM_PROVIDER", "groq"),
			LLMModel:          getEnv("LLM_MODEL", "llama3-70b-8192"),
			GroqAPIKey:        getEnv("GROQ_API_KEY", ""),
			GroqBaseURL:       getEnv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
		},
		Retrieval: RetrievalConfig{
			TopK:             getEnvAsInt("DEFAULT_TOP_K", 5),
			MaxQueryChars:    getEnvAsInt("MAX_QUERY_CHARS", 1000),
			PerSectionLimit:  getEnvAsInt("PER_SECTION_LIMIT", 5),
			MaxContextLength: getEnvAsInt("MAX_CONTEXT_LENGTH", 4000),
		},
		Session: SessionConfig{
			MaxHistoryLength: getEnvAsInt("MAX_HISTORY_LENGTH", 10),
			TTLHours:         getEnvAsInt("SESSION_TTL_HOURS", 24),
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
