package service

import (
	"context"
	"fmt"
	"time"

	"retail-insight/internal/model"

	"github.com/pgvector/pgvector-go"
)

// ChunkStore persists embedded row chunks and answers nearest-neighbor
// lookups over them.
type ChunkStore interface {
	ReplaceChunks(ctx context.Context, datasetID string, chunks []model.RowChunk) error
	CountChunks(ctx context.Context, datasetID string) (int, error)
	NearestNeighbors(ctx context.Context, datasetID string, embedding []float32, k int) ([]model.ChunkMatch, error)
}

// Embedder turns text into vectors. Implemented by OpenAIClient.
type Embedder interface {
	EmbedText(ctx context.Context, text string) ([]float32, error)
	CreateEmbeddings(ctx context.Context, texts []string) ([][]float32, error)
}

// Indexer builds and queries the per-dataset vector index of rendered
// rows.
type Indexer struct {
	store    ChunkStore
	embedder Embedder
}

func NewIndexer(store ChunkStore, embedder Embedder) *Indexer {
	return &Indexer{store: store, embedder: embedder}
}

// IndexDataset renders every row, embeds the chunks and replaces the
// dataset's stored index. With rebuild false an existing non-empty
// index is left untouched.
func (ix *Indexer) IndexDataset(ctx context.Context, ds *model.Dataset, rebuild bool) (*model.IndexResponse, error) {
	start := time.Now()

	if !rebuild {
		count, err := ix.store.CountChunks(ctx, ds.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check existing index: %w", err)
		}
		if count > 0 {
			return &model.IndexResponse{
				DatasetID: ds.ID,
				Chunks:    count,
				Took:      time.Since(start).Milliseconds(),
			}, nil
		}
	}

	chunks := ChunkRows(ds)
	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}

	embeddings, err := ix.embedder.CreateEmbeddings(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("failed to embed dataset rows: %w", err)
	}
	if len(embeddings) != len(chunks) {
		return nil, fmt.Errorf("embedding count mismatch: got %d for %d chunks", len(embeddings), len(chunks))
	}
	for i := range chunks {
		chunks[i].Embedding = pgvector.NewVector(embeddings[i])
	}

	if err := ix.store.ReplaceChunks(ctx, ds.ID, chunks); err != nil {
		return nil, fmt.Errorf("failed to store chunks: %w", err)
	}

	return &model.IndexResponse{
		DatasetID: ds.ID,
		Chunks:    len(chunks),
		Took:      time.Since(start).Milliseconds(),
	}, nil
}

// SimilarRows embeds the query text and returns the k closest indexed
// rows by cosine distance. k defaults to 3.
func (ix *Indexer) SimilarRows(ctx context.Context, datasetID, query string, k int) (*model.SimilarResponse, error) {
	start := time.Now()

	if k <= 0 {
		k = 3
	}

	embedding, err := ix.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	matches, err := ix.store.NearestNeighbors(ctx, datasetID, embedding, k)
	if err != nil {
		return nil, fmt.Errorf("failed to search chunks: %w", err)
	}

	return &model.SimilarResponse{
		Results: matches,
		Took:    time.Since(start).Milliseconds(),
	}, nil
}
