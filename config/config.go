package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the CLI needs. It is loaded once at startup and
// passed explicitly to each component, never read as ambient global state.
type Config struct {
	OpenAIAPIKey        string
	AzureOpenAIEndpoint string
	EmbeddingModel      string
	EmbeddingDimension  int
	QdrantAddr          string
	QdrantCollection    string
	BlogURL             string
	SearchTopK          int
	RenderDelay         time.Duration
}

// Load reads configuration from a .env file (if present) and the environment.
// It returns an error if the embedding API key is missing or a numeric
// variable cannot be parsed.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{
		OpenAIAPIKey:        os.Getenv("OPENAI_API_KEY"),
		AzureOpenAIEndpoint: os.Getenv("AZURE_OPENAI_ENDPOINT"),
		EmbeddingModel:      getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),
		QdrantAddr:          getEnv("QDRANT_ADDR", "localhost:6334"),
		QdrantCollection:    getEnv("QDRANT_COLLECTION_NAME", "blog_posts"),
		BlogURL:             os.Getenv("BLOG_URL"),
	}

	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is not set")
	}

	var err error
	if cfg.EmbeddingDimension, err = getEnvInt("EMBEDDING_DIMENSION", 1536); err != nil {
		return nil, err
	}
	if cfg.SearchTopK, err = getEnvInt("SEARCH_TOP_K", 5); err != nil {
		return nil, err
	}
	delaySeconds, err := getEnvInt("RENDER_DELAY_SECONDS", 5)
	if err != nil {
		return nil, err
	}
	cfg.RenderDelay = time.Duration(delaySeconds) * time.Second

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, v)
	}
	return n, nil
}
