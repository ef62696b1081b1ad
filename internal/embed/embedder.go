// Package embed turns chunk text into embedding vectors via a local
// Ollama server, with request pacing so batch ingestion does not starve
// interactive traffic.
package embed

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms/ollama"
	"golang.org/x/time/rate"
)

// RetryableError wraps transient failures (network, server overload) that
// the pipeline may retry with backoff.
type RetryableError struct {
	Err error
}

func (e *RetryableError) Error() string {
	return fmt.Sprintf("retryable: %s", e.Err)
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

// Config for the embedding client.
type Config struct {
	BaseURL           string
	Model             string
	RequestsPerSecond float64
}

// Client embeds texts through an Ollama model.
type Client struct {
	llm     *ollama.LLM
	limiter *rate.Limiter
	model   string
}

// New creates an embedding client. Zero-value config fields fall back to
// a local Ollama with the nomic-embed-text model.
func New(cfg Config) (*Client, error) {
	if cfg.Model == "" {
		cfg.Model = "nomic-embed-text"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:11434"
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 4
	}

	llm, err := ollama.New(
		ollama.WithModel(cfg.Model),
		ollama.WithServerURL(cfg.BaseURL),
	)
	if err != nil {
		return nil, fmt.Errorf("init ollama client: %w", err)
	}

	return &Client{
		llm:     llm,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		model:   cfg.Model,
	}, nil
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}

// Embed returns one vector per input text, in order. Transport failures
// come back as RetryableError; a response with the wrong cardinality does
// not (retrying will not fix a model mismatch).
func (c *Client) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	vectors, err := c.llm.CreateEmbedding(ctx, texts)
	if err != nil {
		return nil, &RetryableError{Err: fmt.Errorf("create embedding: %w", err)}
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("embedding count mismatch: %d texts, %d vectors", len(texts), len(vectors))
	}
	return vectors, nil
}
