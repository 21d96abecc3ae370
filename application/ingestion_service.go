package application

import (
	"context"
	"log"

	"blog-vector-search/domain"
)

// IngestionService runs the scrape → filter-new → embed → store pipeline.
// Posts are processed strictly one at a time; a failure on one post is logged
// and counted, and the rest of the batch continues.
type IngestionService struct {
	scraper  domain.PostScraper
	embedder domain.EmbeddingClient
	store    domain.DocumentStore
	blogURL  string
}

// Summary reports what a single ingestion run did.
type Summary struct {
	Scraped        int
	AlreadyPresent int
	NewlyStored    int
	Failed         int
}

// NewIngestionService creates a new IngestionService targeting blogURL.
func NewIngestionService(scraper domain.PostScraper, embedder domain.EmbeddingClient, store domain.DocumentStore, blogURL string) *IngestionService {
	return &IngestionService{
		scraper:  scraper,
		embedder: embedder,
		store:    store,
		blogURL:  blogURL,
	}
}

// Run scrapes the configured blog page and stores an embedding for every post
// not already present in the store. A URL already stored, or seen earlier in
// the same run, is never embedded again: at most one embedding call is made
// per distinct URL across the lifetime of the store.
func (s *IngestionService) Run(ctx context.Context) (Summary, error) {
	log.Printf("Starting blog scrape: %s\n", s.blogURL)

	posts, err := s.scraper.FetchPosts(ctx, s.blogURL)
	if err != nil {
		return Summary{}, err
	}
	log.Printf("Found %d blog post links\n", len(posts))

	summary := Summary{Scraped: len(posts)}
	seen := make(map[string]bool, len(posts))

	for i, post := range posts {
		if ctx.Err() != nil {
			return summary, ctx.Err()
		}

		// First occurrence of a URL within the run wins.
		if seen[post.URL] {
			continue
		}
		seen[post.URL] = true

		log.Printf("%d/%d: Checking %s\n", i+1, len(posts), post.Title)

		exists, err := s.store.Exists(ctx, post.URL)
		if err != nil {
			log.Printf("Error checking %s: %v\n", post.URL, err)
			summary.Failed++
			continue
		}
		if exists {
			log.Printf("Skipping (already stored): %s\n", post.Title)
			summary.AlreadyPresent++
			continue
		}

		embedding, err := s.embedder.GenerateEmbedding(ctx, post.Title)
		if err != nil {
			log.Printf("Error embedding %s: %v\n", post.URL, err)
			summary.Failed++
			continue
		}

		if err := s.store.Upsert(ctx, domain.NewBlogPostRecord(post, embedding)); err != nil {
			log.Printf("Error storing %s: %v\n", post.URL, err)
			summary.Failed++
			continue
		}

		log.Printf("Stored embedding for: %s\n", post.Title)
		summary.NewlyStored++
	}

	log.Printf("Ingestion complete: %d scraped, %d already present, %d newly stored, %d failed\n",
		summary.Scraped, summary.AlreadyPresent, summary.NewlyStored, summary.Failed)
	return summary, nil
}
