package domain

// DocTypeBlogPost is the document type stored with every blog post record.
const DocTypeBlogPost = "blog_post"

// BlogPost is a single (title, url) pair extracted from a blog listing page.
type BlogPost struct {
	Title string
	URL   string
}

// BlogPostRecord is the document persisted for each ingested post. The URL is
// the store's unique key; the record is written once and never updated.
type BlogPostRecord struct {
	Type      string    `json:"type"`
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	Embedding Embedding `json:"embedding"`
}

// NewBlogPostRecord builds the record stored for a scraped post.
func NewBlogPostRecord(post BlogPost, embedding Embedding) BlogPostRecord {
	return BlogPostRecord{
		Type:      DocTypeBlogPost,
		URL:       post.URL,
		Title:     post.Title,
		Embedding: embedding,
	}
}

// SearchHit is one ranked result of a similarity search, best first.
type SearchHit struct {
	Title string
	URL   string
	Score float32
}
