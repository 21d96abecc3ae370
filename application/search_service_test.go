package application

import (
	"context"
	"errors"
	"testing"

	"blog-vector-search/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchRejectsEmptyQuery(t *testing.T) {
	for _, query := range []string{"", "   ", "\t\n"} {
		embedder := newFakeEmbedder()
		store := newFakeStore()

		_, err := NewSearchService(embedder, store, 5).Search(context.Background(), query)
		require.Error(t, err)

		var ve *domain.ValidationError
		assert.ErrorAs(t, err, &ve)
		assert.Empty(t, embedder.calls, "no network call for query %q", query)
		assert.Zero(t, store.searchCalls)
	}
}

func TestSearchReturnsRankedHits(t *testing.T) {
	embedder := newFakeEmbedder()
	embedder.vectors["database tutorials"] = domain.Embedding{0.9, 0.1, 0.0}
	store := newFakeStore()
	require.NoError(t, store.Upsert(context.Background(), domain.BlogPostRecord{
		Type: domain.DocTypeBlogPost, URL: "https://blog.example.com/post/db",
		Title: "Intro to Databases", Embedding: domain.Embedding{0.88, 0.12, 0.01},
	}))
	require.NoError(t, store.Upsert(context.Background(), domain.BlogPostRecord{
		Type: domain.DocTypeBlogPost, URL: "https://blog.example.com/post/cats",
		Title: "My Cat Photos", Embedding: domain.Embedding{0.0, 0.2, 0.95},
	}))

	hits, err := NewSearchService(embedder, store, 5).Search(context.Background(), "database tutorials")
	require.NoError(t, err)
	require.NotEmpty(t, hits)

	assert.Equal(t, "Intro to Databases", hits[0].Title)
	assert.Equal(t, "https://blog.example.com/post/db", hits[0].URL)
	assert.Greater(t, hits[0].Score, float32(0.9))
	for i := 1; i < len(hits); i++ {
		assert.LessOrEqual(t, hits[i].Score, hits[i-1].Score, "hits must be ordered by descending score")
	}
}

func TestSearchRoundTripTopMatch(t *testing.T) {
	embedder := newFakeEmbedder()
	embedder.vectors["stored title"] = domain.Embedding{0.1, 0.2, 0.3}
	store := newFakeStore()
	require.NoError(t, store.Upsert(context.Background(), domain.BlogPostRecord{
		Type: domain.DocTypeBlogPost, URL: "https://blog.example.com/post/x",
		Title: "stored title", Embedding: domain.Embedding{0.1, 0.2, 0.3},
	}))
	require.NoError(t, store.Upsert(context.Background(), domain.BlogPostRecord{
		Type: domain.DocTypeBlogPost, URL: "https://blog.example.com/post/y",
		Title: "something else", Embedding: domain.Embedding{0.3, -0.2, 0.1},
	}))

	// Query embedding identical to a stored vector must rank it first with
	// maximal cosine score.
	hits, err := NewSearchService(embedder, store, 5).Search(context.Background(), "stored title")
	require.NoError(t, err)
	require.NotEmpty(t, hits)
	assert.Equal(t, "https://blog.example.com/post/x", hits[0].URL)
	assert.InDelta(t, 1.0, float64(hits[0].Score), 1e-6)
}

func TestSearchLimitsToTopK(t *testing.T) {
	embedder := newFakeEmbedder()
	store := newFakeStore()
	for _, record := range []domain.BlogPostRecord{
		{URL: "u1", Title: "a", Embedding: domain.Embedding{1, 0, 0}},
		{URL: "u2", Title: "b", Embedding: domain.Embedding{0.9, 0.1, 0}},
		{URL: "u3", Title: "c", Embedding: domain.Embedding{0.8, 0.2, 0}},
	} {
		require.NoError(t, store.Upsert(context.Background(), record))
	}

	hits, err := NewSearchService(embedder, store, 2).Search(context.Background(), "anything")
	require.NoError(t, err)
	assert.Len(t, hits, 2)
}

func TestSearchEmbeddingFailureIsFatal(t *testing.T) {
	embedder := newFakeEmbedder()
	embedder.failOn["broken"] = true
	store := newFakeStore()

	hits, err := NewSearchService(embedder, store, 5).Search(context.Background(), "broken")
	require.Error(t, err)

	var ee *domain.EmbedError
	assert.ErrorAs(t, err, &ee)
	assert.Nil(t, hits, "no partial results on failure")
	assert.Zero(t, store.searchCalls)
}

func TestSearchStoreFailureIsFatal(t *testing.T) {
	embedder := newFakeEmbedder()
	store := newFakeStore()
	store.searchErr = &domain.StoreError{Op: "search", Err: errors.New("index not found")}

	hits, err := NewSearchService(embedder, store, 5).Search(context.Background(), "anything")
	require.Error(t, err)

	var se *domain.StoreError
	assert.ErrorAs(t, err, &se)
	assert.Nil(t, hits)
}
