package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"blog-vector-search/application"
	"blog-vector-search/config"
	"blog-vector-search/domain"
	"blog-vector-search/infrastructure/embedding"
	"blog-vector-search/infrastructure/scraper"
	"blog-vector-search/infrastructure/vectorstore"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	scrapeFlag  bool
	searchQuery string
)

var rootCmd = &cobra.Command{
	Use:   "blog-vector-search",
	Short: "Scrape blog posts and search them by meaning",
	Long: `blog-vector-search scrapes post listings from a JavaScript-rendered blog
page, stores an embedding of every new post title in a vector index, and
answers free-text similarity queries against it.`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().BoolVar(&scrapeFlag, "scrape", false, "Scrape the blog and store new embeddings")
	rootCmd.Flags().StringVar(&searchQuery, "search", "", "Search stored posts using a query string")
	rootCmd.MarkFlagsMutuallyExclusive("scrape", "search")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	switch {
	case scrapeFlag:
		return runScrape(cmd.Context())
	case cmd.Flags().Changed("search"):
		// Rejected here, before any client is constructed or network call made.
		if strings.TrimSpace(searchQuery) == "" {
			return &domain.ValidationError{Msg: "search query must not be empty"}
		}
		return runSearch(cmd.Context(), searchQuery)
	default:
		_ = cmd.Usage()
		return &domain.ValidationError{Msg: "either --scrape or --search must be given"}
	}
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	urlStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	scoreStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

func runScrape(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.BlogURL == "" {
		return &domain.ValidationError{Msg: "BLOG_URL is not set"}
	}

	embedder, err := embedding.NewOpenAIEmbeddingClient(cfg)
	if err != nil {
		return err
	}
	store, err := vectorstore.NewQdrantClient(cfg)
	if err != nil {
		return err
	}

	service := application.NewIngestionService(scraper.NewChromedpScraper(cfg.RenderDelay), embedder, store, cfg.BlogURL)
	summary, err := service.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("\n%s\n", headerStyle.Render("INGESTION SUMMARY"))
	fmt.Printf("  Scraped:         %d\n", summary.Scraped)
	fmt.Printf("  Already present: %d\n", summary.AlreadyPresent)
	fmt.Printf("  Newly stored:    %d\n", summary.NewlyStored)
	fmt.Printf("  Failed:          %d\n", summary.Failed)
	return nil
}

func runSearch(ctx context.Context, query string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	embedder, err := embedding.NewOpenAIEmbeddingClient(cfg)
	if err != nil {
		return err
	}
	store, err := vectorstore.NewQdrantClient(cfg)
	if err != nil {
		return err
	}

	service := application.NewSearchService(embedder, store, cfg.SearchTopK)
	hits, err := service.Search(ctx, query)
	if err != nil {
		return err
	}

	if len(hits) == 0 {
		fmt.Printf("No results found for '%s'\n", query)
		return nil
	}

	fmt.Printf("\n%s '%s' (%d results)\n\n", headerStyle.Render("SEARCH:"), query, len(hits))
	for i, hit := range hits {
		fmt.Printf("%d. %s\n", i+1, hit.Title)
		fmt.Printf("   %s %s\n", urlStyle.Render(hit.URL), scoreStyle.Render(fmt.Sprintf("score: %.2f", hit.Score)))
	}
	return nil
}
