package core

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"sahay.app/support-backend/internal/store"
	"sahay.app/support-backend/internal/vectormath"
)

// SimilarityThreshold is the minimum cosine score for a chunk to be
// considered relevant at all.
const SimilarityThreshold = 0.7

// Retriever supplies grounding context for a user query. An empty
// string means "nothing relevant" and is not an error.
type Retriever interface {
	RelevantContext(ctx context.Context, query string) (string, error)
}

// RAGService scores the ingested knowledge chunks against the query
// embedding and returns the top matches joined into one context block.
// Chunks are cached in memory at startup, same as they were ingested.
type RAGService struct {
	embedder Embedder
	chunks   []store.KnowledgeChunk
	topK     int
}

func NewRAGService(db *store.SQLiteStore, embedder Embedder, topK int) (*RAGService, error) {
	chunks, err := db.GetAllKnowledgeChunks()
	if err != nil {
		return nil, fmt.Errorf("failed to load knowledge chunks: %w", err)
	}
	if len(chunks) == 0 {
		log.Println("Warning: RAGService initialized with no knowledge chunks. Run with -ingest to load the knowledge base.")
	} else {
		log.Printf("RAGService initialized with %d knowledge chunks.", len(chunks))
	}

	return &RAGService{embedder: embedder, chunks: chunks, topK: topK}, nil
}

type scoredChunk struct {
	chunk      store.KnowledgeChunk
	similarity float32
}

func (s *RAGService) RelevantContext(ctx context.Context, query string) (string, error) {
	if len(s.chunks) == 0 {
		return "", nil
	}

	queryEmbedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return "", fmt.Errorf("failed to get query embedding: %w", err)
	}

	scored := make([]scoredChunk, 0, len(s.chunks))
	for _, chunk := range s.chunks {
		if len(chunk.Embedding) == 0 {
			continue
		}
		similarity, err := vectormath.CosineSimilarity(queryEmbedding, chunk.Embedding)
		if err != nil {
			log.Printf("Error scoring chunk %d: %v. Skipping.", chunk.ID, err)
			continue
		}
		if similarity >= SimilarityThreshold {
			scored = append(scored, scoredChunk{chunk: chunk, similarity: similarity})
		}
	}

	sort.Slice(scored, func(i, j int) bool {
		return scored[i].similarity > scored[j].similarity
	})

	var contextBuilder strings.Builder
	for i := 0; i < len(scored) && i < s.topK; i++ {
		contextBuilder.WriteString(scored[i].chunk.Content)
		contextBuilder.WriteString("\n\n")
	}

	return strings.TrimSpace(contextBuilder.String()), nil
}
