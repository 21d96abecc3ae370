package domain

import "context"

// PostScraper defines the interface for extracting blog post links from a
// rendered page.
type PostScraper interface {
	// FetchPosts returns the deduplicated, order-preserving posts found on
	// the page at pageURL, including posts inside embedded frames.
	FetchPosts(ctx context.Context, pageURL string) ([]BlogPost, error)
}
