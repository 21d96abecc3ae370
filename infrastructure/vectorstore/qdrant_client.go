package vectorstore

import (
	"context"
	"fmt"
	"log"

	"blog-vector-search/config"
	"blog-vector-search/domain"

	"github.com/google/uuid"
	qdrant "github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/proto"
)

// QdrantClient implements the domain.DocumentStore interface using a Qdrant
// collection. Each blog post is one point whose ID is derived from its URL,
// so the same URL always maps to the same point.
type QdrantClient struct {
	points         qdrant.PointsClient
	collectionName string
	dimension      int
}

// NewQdrantClient connects to Qdrant and ensures the collection exists with
// the configured vector dimensionality.
func NewQdrantClient(cfg *config.Config) (*QdrantClient, error) {
	conn, err := grpc.NewClient(cfg.QdrantAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("could not connect to Qdrant: %w", err)
	}

	client := &QdrantClient{
		points:         qdrant.NewPointsClient(conn),
		collectionName: cfg.QdrantCollection,
		dimension:      cfg.EmbeddingDimension,
	}

	if err := client.ensureCollectionExists(context.Background(), qdrant.NewCollectionsClient(conn)); err != nil {
		return nil, fmt.Errorf("failed to ensure collection exists: %w", err)
	}

	return client, nil
}

// ensureCollectionExists checks if the collection exists and creates it if it
// doesn't, sized for the configured embedding dimensionality.
func (c *QdrantClient) ensureCollectionExists(ctx context.Context, collections qdrant.CollectionsClient) error {
	_, err := collections.Get(ctx, &qdrant.GetCollectionInfoRequest{
		CollectionName: c.collectionName,
	})
	if err == nil {
		return nil
	}

	log.Printf("Collection %s does not exist, creating...\n", c.collectionName)

	_, err = collections.Create(ctx, &qdrant.CreateCollection{
		CollectionName: c.collectionName,
		VectorsConfig: &qdrant.VectorsConfig{
			Config: &qdrant.VectorsConfig_Params{
				Params: &qdrant.VectorParams{
					Size:     uint64(c.dimension),
					Distance: qdrant.Distance_Cosine,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	log.Printf("Collection %s created successfully\n", c.collectionName)
	return nil
}

// PointID returns the deterministic point ID for a post URL. The same URL
// always yields the same ID, which is what keeps ingestion idempotent across
// runs.
func PointID(url string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(url)).String()
}

func pointIDFor(url string) *qdrant.PointId {
	return &qdrant.PointId{PointIdOptions: &qdrant.PointId_Uuid{Uuid: PointID(url)}}
}

func payloadFor(record domain.BlogPostRecord) map[string]*qdrant.Value {
	return map[string]*qdrant.Value{
		"type":  {Kind: &qdrant.Value_StringValue{StringValue: record.Type}},
		"url":   {Kind: &qdrant.Value_StringValue{StringValue: record.URL}},
		"title": {Kind: &qdrant.Value_StringValue{StringValue: record.Title}},
	}
}

// Exists reports whether a point for the given URL is already stored.
func (c *QdrantClient) Exists(ctx context.Context, url string) (bool, error) {
	resp, err := c.points.Get(ctx, &qdrant.GetPoints{
		CollectionName: c.collectionName,
		Ids:            []*qdrant.PointId{pointIDFor(url)},
	})
	if err != nil {
		return false, &domain.StoreError{Op: "get", Key: url, Err: err}
	}
	return len(resp.GetResult()) > 0, nil
}

// Upsert stores the record as a single point keyed by its URL. The embedding
// length must match the collection's configured dimensionality.
func (c *QdrantClient) Upsert(ctx context.Context, record domain.BlogPostRecord) error {
	if len(record.Embedding) != c.dimension {
		return &domain.StoreError{
			Op:  "upsert",
			Key: record.URL,
			Err: fmt.Errorf("embedding has %d dimensions, index expects %d", len(record.Embedding), c.dimension),
		}
	}

	point := &qdrant.PointStruct{
		Id:      pointIDFor(record.URL),
		Vectors: &qdrant.Vectors{VectorsOptions: &qdrant.Vectors_Vector{Vector: &qdrant.Vector{Data: record.Embedding}}},
		Payload: payloadFor(record),
	}

	_, err := c.points.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: c.collectionName,
		Points:         []*qdrant.PointStruct{point},
		Wait:           proto.Bool(true), // ensure the write is acknowledged before Exists can race it
	})
	if err != nil {
		return &domain.StoreError{Op: "upsert", Key: record.URL, Err: err}
	}
	return nil
}

// Search returns the k stored posts closest to the embedding, best first.
func (c *QdrantClient) Search(ctx context.Context, embedding domain.Embedding, k int) ([]domain.SearchHit, error) {
	resp, err := c.points.Search(ctx, &qdrant.SearchPoints{
		CollectionName: c.collectionName,
		Vector:         embedding,
		Limit:          uint64(k),
		WithPayload:    &qdrant.WithPayloadSelector{SelectorOptions: &qdrant.WithPayloadSelector_Enable{Enable: true}},
	})
	if err != nil {
		return nil, &domain.StoreError{Op: "search", Err: err}
	}

	hits := make([]domain.SearchHit, 0, len(resp.GetResult()))
	for _, scored := range resp.GetResult() {
		payload := scored.GetPayload()
		if payload == nil {
			continue
		}
		hits = append(hits, domain.SearchHit{
			Title: payload["title"].GetStringValue(),
			URL:   payload["url"].GetStringValue(),
			Score: scored.GetScore(),
		})
	}
	return hits, nil
}
