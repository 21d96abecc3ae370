package application

import (
	"context"
	"strings"

	"blog-vector-search/domain"
)

// DefaultTopK is the number of results returned when no limit is configured.
const DefaultTopK = 5

// SearchService answers free-text similarity queries against stored posts.
type SearchService struct {
	embedder domain.EmbeddingClient
	store    domain.DocumentStore
	topK     int
}

// NewSearchService creates a new SearchService returning at most topK hits
// per query.
func NewSearchService(embedder domain.EmbeddingClient, store domain.DocumentStore, topK int) *SearchService {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &SearchService{
		embedder: embedder,
		store:    store,
		topK:     topK,
	}
}

// Search embeds the query and returns the closest stored posts ordered by
// descending similarity score. An empty query is rejected before any network
// call; an embedding or store failure is fatal and yields no partial results.
func (s *SearchService) Search(ctx context.Context, query string) ([]domain.SearchHit, error) {
	if strings.TrimSpace(query) == "" {
		return nil, &domain.ValidationError{Msg: "search query must not be empty"}
	}

	embedding, err := s.embedder.GenerateEmbedding(ctx, query)
	if err != nil {
		return nil, err
	}

	hits, err := s.store.Search(ctx, embedding, s.topK)
	if err != nil {
		return nil, err
	}
	return hits, nil
}
