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
	PubMed   PubMedConfig
	Keys     APIKeys
	Ai       AIConfig
	Media    MediaConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type PubMedConfig struct {
	Email      string // NCBI requires a contact email on every request
	MaxResults int
}

type APIKeys struct {
	GoogleGemini    string
	OpenAI          string
	Tavily          string
	ExtractionTopic string // Triplet extraction topic
}

type AIConfig struct {
	TextProvider      string // "gemini", "openai" or "ollama"
	TextModel         string // e.g. "gemini-2.0-flash", "gpt-4o"
	ImageProvider     string // "gemini" or "openai"
	ImageModel        string // e.g. "gemini-2.5-flash-image", "dall-e-3"
	ImageSize         string // default canvas, "WxH"
	EmbeddingProvider string // "gemini" or "ollama"
	EmbeddingModel    string // ollama only
	OllamaBaseURL     string
}

type MediaConfig struct {
	Dir string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("PORT", "7860"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:7860"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DATABASE_URL", "./medical_mcq.db"),
		},
		PubMed: PubMedConfig{
			Email:      getEnv("NCBI_EMAIL", "your-email@example.com"),
			MaxResults: getEnvAsInt("PUBMED_MAX_RESULTS", 10),
		},
		Keys: APIKeys{
			GoogleGemini:    getEnv("GOOGLE_API_KEY", ""),
			OpenAI:          getEnv("OPENAI_API_KEY", ""),
			Tavily:          getEnv("TAVILY_API_KEY", ""),
			ExtractionTopic: getEnv("EXTRACT_TRIPLETS_TOPIC_NAME", "EXTRACT_TRIPLETS"),
		},
		Ai: AIConfig{
			TextProvider:      getEnv("LLM_PROVIDER", "gemini"),
			TextModel:         getEnv("LLM_MODEL", "gemini-2.0-flash"),
			ImageProvider:     getEnv("IMAGE_PROVIDER", "gemini"),
			ImageModel:        getEnv("IMAGE_MODEL", "gemini-2.5-flash-image"),
			ImageSize:         getEnv("IMAGE_DEFAULT_SIZE", "512x512"),
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "gemini"),
			EmbeddingModel:    getEnv("EMBEDDING_MODEL", "nomic-embed-text"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
		},
		Media: MediaConfig{
			Dir: getEnv("MEDIA_DIR", "media"),
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
