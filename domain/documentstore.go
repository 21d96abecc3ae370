package domain

import "context"

// DocumentStore defines the interface for interacting with the vector-capable
// document store.
type DocumentStore interface {
	// Exists reports whether a record keyed by the given URL is already stored.
	Exists(ctx context.Context, url string) (bool, error)
	// Upsert adds or replaces the record keyed by its URL.
	Upsert(ctx context.Context, record BlogPostRecord) error
	// Search returns the k stored posts closest to the embedding, best first.
	Search(ctx context.Context, embedding Embedding, k int) ([]SearchHit, error)
}
