package embedding

import (
	"context"
	"errors"

	"blog-vector-search/config"
	"blog-vector-search/domain"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIEmbeddingClient implements the domain.EmbeddingClient interface using
// the OpenAI embeddings API, against either Azure OpenAI or the public
// endpoint depending on configuration.
type OpenAIEmbeddingClient struct {
	client *openai.Client
	model  openai.EmbeddingModel // e.g., text-embedding-3-small
}

// NewOpenAIEmbeddingClient creates a new OpenAIEmbeddingClient from the given
// configuration. When an Azure endpoint is configured the Azure API shape is
// used; otherwise the public OpenAI endpoint.
func NewOpenAIEmbeddingClient(cfg *config.Config) (*OpenAIEmbeddingClient, error) {
	if cfg.OpenAIAPIKey == "" {
		return nil, errors.New("embedding API key is not set")
	}

	var client *openai.Client
	if cfg.AzureOpenAIEndpoint != "" {
		client = openai.NewClientWithConfig(openai.DefaultAzureConfig(cfg.OpenAIAPIKey, cfg.AzureOpenAIEndpoint))
	} else {
		client = openai.NewClient(cfg.OpenAIAPIKey)
	}

	return &OpenAIEmbeddingClient{client: client, model: openai.EmbeddingModel(cfg.EmbeddingModel)}, nil
}

// GenerateEmbedding generates an embedding for the given text using the
// configured model. One remote call is made per invocation.
func (c *OpenAIEmbeddingClient) GenerateEmbedding(ctx context.Context, text string) (domain.Embedding, error) {
	req := openai.EmbeddingRequest{
		Input: []string{text},
		Model: c.model,
	}

	resp, err := c.client.CreateEmbeddings(ctx, req)
	if err != nil {
		return nil, &domain.EmbedError{Text: text, Err: err}
	}
	if len(resp.Data) == 0 {
		return nil, &domain.EmbedError{Text: text, Err: errors.New("no embedding in response")}
	}

	return domain.Embedding(resp.Data[0].Embedding), nil
}
