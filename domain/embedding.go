package domain

import "context"

// Embedding represents a numerical vector representation of text.
type Embedding []float32

// EmbeddingClient defines the interface for generating embeddings from text.
type EmbeddingClient interface {
	// GenerateEmbedding generates an embedding for the given text.
	GenerateEmbedding(ctx context.Context, text string) (Embedding, error)
}
