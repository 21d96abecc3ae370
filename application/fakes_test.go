package application

import (
	"context"
	"math"
	"sort"

	"blog-vector-search/domain"
)

type fakeScraper struct {
	posts []domain.BlogPost
	err   error
	calls int
}

func (f *fakeScraper) FetchPosts(ctx context.Context, pageURL string) ([]domain.BlogPost, error) {
	f.calls++
	if f.err != nil {
		return []domain.BlogPost{}, f.err
	}
	return f.posts, nil
}

type fakeEmbedder struct {
	vectors map[string]domain.Embedding
	failOn  map[string]bool
	calls   []string
}

func newFakeEmbedder() *fakeEmbedder {
	return &fakeEmbedder{
		vectors: make(map[string]domain.Embedding),
		failOn:  make(map[string]bool),
	}
}

func (f *fakeEmbedder) GenerateEmbedding(ctx context.Context, text string) (domain.Embedding, error) {
	f.calls = append(f.calls, text)
	if f.failOn[text] {
		return nil, &domain.EmbedError{Text: text, Err: context.DeadlineExceeded}
	}
	if v, ok := f.vectors[text]; ok {
		return v, nil
	}
	return domain.Embedding{0.1, 0.2, 0.3}, nil
}

type fakeStore struct {
	records map[string]domain.BlogPostRecord
	order   []string

	existsErr error
	upsertErr error
	searchErr error

	existsCalls int
	searchCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{records: make(map[string]domain.BlogPostRecord)}
}

func (f *fakeStore) Exists(ctx context.Context, url string) (bool, error) {
	f.existsCalls++
	if f.existsErr != nil {
		return false, f.existsErr
	}
	_, ok := f.records[url]
	return ok, nil
}

func (f *fakeStore) Upsert(ctx context.Context, record domain.BlogPostRecord) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	if _, ok := f.records[record.URL]; !ok {
		f.order = append(f.order, record.URL)
	}
	f.records[record.URL] = record
	return nil
}

// Search ranks stored records by cosine similarity to the query embedding.
func (f *fakeStore) Search(ctx context.Context, embedding domain.Embedding, k int) ([]domain.SearchHit, error) {
	f.searchCalls++
	if f.searchErr != nil {
		return nil, f.searchErr
	}

	hits := make([]domain.SearchHit, 0, len(f.records))
	for _, url := range f.order {
		record := f.records[url]
		hits = append(hits, domain.SearchHit{
			Title: record.Title,
			URL:   record.URL,
			Score: cosine(embedding, record.Embedding),
		})
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	if len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

func cosine(a, b domain.Embedding) float32 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
