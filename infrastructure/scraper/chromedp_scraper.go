package scraper

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"blog-vector-search/domain"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"
)

// minTitleLen filters out navigation anchors like "Next" or "...".
const minTitleLen = 5

// ChromedpScraper implements the domain.PostScraper interface by rendering the
// target page in a headless Chrome instance and extracting blog post links
// from the rendered HTML.
type ChromedpScraper struct {
	renderDelay time.Duration
}

// NewChromedpScraper creates a scraper that waits renderDelay after navigation
// for dynamic content to appear.
func NewChromedpScraper(renderDelay time.Duration) *ChromedpScraper {
	if renderDelay <= 0 {
		renderDelay = 5 * time.Second
	}
	return &ChromedpScraper{renderDelay: renderDelay}
}

// FetchPosts renders pageURL, waits for dynamic content, and returns the
// deduplicated, order-preserving blog post links found in the page and its
// embedded frames. The browser instance is launched per invocation and torn
// down before this returns, on every path.
func (s *ChromedpScraper) FetchPosts(ctx context.Context, pageURL string) ([]domain.BlogPost, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:], chromedp.NoSandbox)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	log.Printf("Accessing blog URL: %s\n", pageURL)
	html, err := s.renderPage(browserCtx, pageURL)
	if err != nil {
		return []domain.BlogPost{}, &domain.RenderError{URL: pageURL, Err: err}
	}

	posts, frameURLs, err := extractPosts(html, pageURL)
	if err != nil {
		return []domain.BlogPost{}, &domain.RenderError{URL: pageURL, Err: err}
	}

	// Frame content is a separate document, so each frame is rendered and
	// parsed on its own. A broken frame is skipped, not fatal.
	for _, frameURL := range frameURLs {
		frameHTML, err := s.renderPage(browserCtx, frameURL)
		if err != nil {
			log.Printf("Skipping frame %s: %v\n", frameURL, err)
			continue
		}
		framePosts, _, err := extractPosts(frameHTML, frameURL)
		if err != nil {
			log.Printf("Skipping frame %s: %v\n", frameURL, err)
			continue
		}
		posts = append(posts, framePosts...)
	}

	posts = dedupeByURL(posts)
	if len(posts) == 0 {
		return []domain.BlogPost{}, &domain.RenderError{URL: pageURL, Err: errors.New("no blog post links found")}
	}
	return posts, nil
}

func (s *ChromedpScraper) renderPage(ctx context.Context, pageURL string) (string, error) {
	var html string
	err := chromedp.Run(ctx,
		chromedp.Navigate(pageURL),
		chromedp.Sleep(s.renderDelay),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", err
	}
	return html, nil
}

// extractPosts pulls blog post anchors and embedded frame URLs out of rendered
// HTML. Anchors without usable text, fragment/javascript hrefs, and URLs that
// don't look like individual posts are skipped. Relative links are resolved
// against pageURL.
func extractPosts(html, pageURL string) ([]domain.BlogPost, []string, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid page URL %q: %w", pageURL, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, nil, fmt.Errorf("parsing rendered page: %w", err)
	}

	var posts []domain.BlogPost
	doc.Find("a").Each(func(_ int, anchor *goquery.Selection) {
		href, ok := anchor.Attr("href")
		if !ok || href == "" {
			return
		}
		if strings.HasPrefix(href, "#") || strings.HasPrefix(href, "javascript:") {
			return
		}

		title := strings.TrimSpace(anchor.Text())
		if len(title) < minTitleLen {
			return
		}

		absURL := resolveURL(base, href)
		if absURL == "" || !looksLikeBlogPost(absURL) {
			return
		}

		posts = append(posts, domain.BlogPost{Title: title, URL: absURL})
	})

	var frames []string
	doc.Find("iframe[src]").Each(func(_ int, frame *goquery.Selection) {
		src, _ := frame.Attr("src")
		if absURL := resolveURL(base, src); absURL != "" {
			frames = append(frames, absURL)
		}
	})

	return posts, frames, nil
}

func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

// looksLikeBlogPost keeps only URLs that plausibly point at an individual
// post rather than navigation or category pages.
func looksLikeBlogPost(u string) bool {
	lower := strings.ToLower(u)
	if !strings.Contains(lower, "blog") {
		return false
	}
	return strings.Contains(lower, "post") ||
		strings.Contains(lower, "entry") ||
		strings.Contains(lower, "article")
}

// dedupeByURL drops repeated URLs, keeping the first occurrence in order.
func dedupeByURL(posts []domain.BlogPost) []domain.BlogPost {
	seen := make(map[string]bool, len(posts))
	deduped := make([]domain.BlogPost, 0, len(posts))
	for _, post := range posts {
		if seen[post.URL] {
			continue
		}
		seen[post.URL] = true
		deduped = append(deduped, post)
	}
	return deduped
}
