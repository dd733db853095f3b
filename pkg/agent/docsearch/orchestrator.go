package docsearch

import (
	"context"
	"fmt"
	"log"

	"research-assistant-be/internal/constant"
	"research-assistant-be/internal/repository/contract"
	"research-assistant-be/internal/repository/specification"
	"research-assistant-be/internal/repository/unitofwork"
	"research-assistant-be/pkg/embedding"
	"research-assistant-be/pkg/store"

	"github.com/google/uuid"
)

// Orchestrator handles vector search over uploaded document chunks
type Orchestrator struct {
	embeddingProvider embedding.EmbeddingProvider
	logger            *log.Logger
}

// NewOrchestrator creates a new document search orchestrator
func NewOrchestrator(embeddingProvider embedding.EmbeddingProvider, logger *log.Logger) *Orchestrator {
	return &Orchestrator{
		embeddingProvider: embeddingProvider,
		logger:            logger,
	}
}

// Config encapsulates search parameters
type Config struct {
	ScoreThreshold float64
	TopK           int
}

// DefaultConfig returns default search configuration
func DefaultConfig() Config {
	return Config{
		ScoreThreshold: 0.5,
		TopK:           5,
	}
}

// Execute embeds the query and returns the best matching chunk per document,
// ordered by similarity. Chunks below the threshold are dropped.
func (o *Orchestrator) Execute(
	ctx context.Context,
	uow unitofwork.UnitOfWork,
	userId uuid.UUID,
	query string,
	config Config,
) ([]store.Document, error) {

	embeddingRes, err := o.embeddingProvider.Generate(query, constant.EmbeddingTaskQuery)
	if err != nil {
		return nil, fmt.Errorf("embedding generation failed: %w", err)
	}

	scoredResults, err := uow.DocumentEmbeddingRepository().SearchSimilarWithScore(
		ctx,
		embeddingRes.Embedding.Values,
		config.TopK,
		userId,
		config.ScoreThreshold,
	)
	if err != nil {
		o.logger.Printf("[ERROR] Vector search failed: %v", err)
		return nil, err
	}

	o.logger.Printf("[DEBUG] Raw search results: %d chunks", len(scoredResults))

	candidates := o.deduplicateByDocument(scoredResults)

	if err := o.hydrateFileNames(ctx, uow, candidates); err != nil {
		o.logger.Printf("[WARN] Failed to hydrate file names: %v", err)
	}

	return candidates, nil
}

// deduplicateByDocument keeps only the highest-scoring chunk of each
// document. Results from the repository are already ordered by similarity.
func (o *Orchestrator) deduplicateByDocument(results []*contract.ScoredDocumentEmbedding) []store.Document {
	var candidates []store.Document
	seen := make(map[string]bool)

	for i, res := range results {
		documentId := res.Embedding.DocumentId.String()
		if seen[documentId] {
			o.logger.Printf("[DEBUG] Chunk %d: Score=%.4f [DUPLICATE]", i+1, res.Similarity)
			continue
		}

		candidates = append(candidates, store.Document{
			ID:      documentId,
			Content: res.Embedding.ChunkText,
			Score:   float32(res.Similarity),
			Metadata: map[string]interface{}{
				"chunk_index": res.Embedding.ChunkIndex,
			},
		})
		seen[documentId] = true

		o.logger.Printf("[DEBUG] Chunk %d: Score=%.4f [KEEP]", i+1, res.Similarity)
	}

	return candidates
}

func (o *Orchestrator) hydrateFileNames(
	ctx context.Context,
	uow unitofwork.UnitOfWork,
	candidates []store.Document,
) error {

	if len(candidates) == 0 {
		return nil
	}

	documentIds := make([]uuid.UUID, len(candidates))
	for i, c := range candidates {
		documentIds[i] = uuid.MustParse(c.ID)
	}

	documents, err := uow.DocumentRepository().FindAll(ctx, specification.ByIDs{IDs: documentIds})
	if err != nil {
		return err
	}

	nameMap := make(map[string]string)
	for _, d := range documents {
		nameMap[d.Id.String()] = d.FileName
	}

	for i := range candidates {
		if name, ok := nameMap[candidates[i].ID]; ok {
			candidates[i].Title = name
		} else {
			candidates[i].Title = "Untitled Document"
		}
	}

	return nil
}
