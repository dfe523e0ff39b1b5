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
	Data      DataConfig
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
	JWTSecret          string
	TurnLogPath        string
}

type DatabaseConfig struct {
	Connection string
}

type AIConfig struct {
	LLMProvider   string // "ollama" or "openai"
	LLMModel      string
	OllamaBaseURL string
	OpenAIBaseURL string
	OpenAIAPIKey  string
}

type RetrievalConfig struct {
	SimilarityThreshold float64
	MaxVocabulary       int
	CardCount           int
	DocumentCount       int
	ResourceCount       int
}

type DataConfig struct {
	DocumentsDir string
	CardsPath    string
	HotlinesPath string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log.csv"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			JWTSecret:          getEnv("JWT_SECRET", ""),
			TurnLogPath:        getEnv("TURN_LOG_PATH", "turns.log.jsonl"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Ai: AIConfig{
			LLMProvider:   getEnv("LLM_PROVIDER", "openai"),
			LLMModel:      getEnv("LLM_MODEL", "gpt-4o-mini"),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OpenAIBaseURL: getEnv("OPENAI_BASE_URL", ""),
			OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		},
		Retrieval: RetrievalConfig{
			SimilarityThreshold: getEnvAsFloat("RETRIEVAL_SIMILARITY_THRESHOLD", 0.03),
			MaxVocabulary:       getEnvAsInt("RETRIEVAL_MAX_VOCABULARY", 1000),
			CardCount:           getEnvAsInt("RETRIEVAL_CARD_COUNT", 2),
			DocumentCount:       getEnvAsInt("RETRIEVAL_DOCUMENT_COUNT", 2),
			ResourceCount:       getEnvAsInt("RETRIEVAL_RESOURCE_COUNT", 5),
		},
		Data: DataConfig{
			DocumentsDir: getEnv("DOCUMENTS_DIR", "data/docs"),
			CardsPath:    getEnv("CARDS_PATH", "data/skill_cards.json"),
			HotlinesPath: getEnv("HOTLINES_PATH", "data/hotlines.json"),
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
