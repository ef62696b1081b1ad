package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Auth
	APIKey string

	// Embedding
	OllamaURL  string
	EmbedModel string
	EmbedRPS   float64
	VectorDim  int

	// Storage
	DatabaseURL string
	ChunkTable  string

	// Worker pool
	WorkerCount        int
	MaxQueueSize       int
	MaxConcurrentEmbed int

	// Upload limits
	MaxUploadBytes int64

	// Chunking defaults
	TargetWords  int
	OverlapWords int

	// Job state
	JobTTL time.Duration
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8091"),

		APIKey: os.Getenv("PROCHUNK_API_KEY"),

		OllamaURL:  envOr("OLLAMA_URL", "http://localhost:11434"),
		EmbedModel: envOr("EMBED_MODEL", "nomic-embed-text"),
		EmbedRPS:   envFloat("EMBED_RPS", 4),
		VectorDim:  envInt("VECTOR_DIM", 768),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		ChunkTable:  envOr("CHUNK_TABLE", "procedure_chunks"),

		WorkerCount:        envInt("WORKER_COUNT", 4),
		MaxQueueSize:       envInt("MAX_QUEUE_SIZE", 100),
		MaxConcurrentEmbed: envInt("MAX_CONCURRENT_EMBED", 4),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		TargetWords:  envInt("TARGET_WORDS", 400),
		OverlapWords: envInt("OVERLAP_WORDS", 50),

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxConcurrentEmbed <= 0 {
		cfg.MaxConcurrentEmbed = 4
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.TargetWords <= 0 {
		cfg.TargetWords = 400
	}
	if cfg.OverlapWords < 0 {
		cfg.OverlapWords = 50
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("PROCHUNK_API_KEY is required")
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
