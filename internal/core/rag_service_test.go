package core

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sahay.app/support-backend/internal/store"
)

// seedChunks ingests a knowledge base where each row's embedding comes
// from the given lookup table.
func seedChunks(t *testing.T, db *store.SQLiteStore, vectors map[string][]float32, rows ...string) {
	t.Helper()
	var b strings.Builder
	b.WriteString("| text |\n|------|\n")
	for _, row := range rows {
		b.WriteString("| " + row + " |\n")
	}
	dataFile := filepath.Join(t.TempDir(), "data.md")
	if err := os.WriteFile(dataFile, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("writing data file: %v", err)
	}
	_, err := db.IngestKnowledgeFromFile(dataFile, func(text string) ([]float32, error) {
		return vectors[text], nil
	})
	if err != nil {
		t.Fatalf("IngestKnowledgeFromFile: %v", err)
	}
}

func TestRelevantContextThresholdAndOrder(t *testing.T) {
	db := newTestStore(t)
	seedChunks(t, db, map[string][]float32{
		"Exact match.": {1, 0, 0},
		"Near match.":  {0.9, 0.1, 0},
		"Unrelated.":   {0, 1, 0},
	}, "Exact match.", "Near match.", "Unrelated.")

	rag, err := NewRAGService(db, &fakeEmbedder{vector: []float32{1, 0, 0}}, 3)
	if err != nil {
		t.Fatalf("NewRAGService: %v", err)
	}

	got, err := rag.RelevantContext(context.Background(), "query")
	if err != nil {
		t.Fatalf("RelevantContext: %v", err)
	}
	if strings.Contains(got, "Unrelated.") {
		t.Errorf("below-threshold chunk leaked into context: %q", got)
	}
	exact := strings.Index(got, "Exact match.")
	near := strings.Index(got, "Near match.")
	if exact == -1 || near == -1 {
		t.Fatalf("expected both relevant chunks in context: %q", got)
	}
	if exact > near {
		t.Errorf("chunks must be ordered by similarity descending: %q", got)
	}
}

func TestRelevantContextHonorsTopK(t *testing.T) {
	db := newTestStore(t)
	seedChunks(t, db, map[string][]float32{
		"One.":   {1, 0, 0},
		"Two.":   {0.95, 0.05, 0},
		"Three.": {0.9, 0.1, 0},
	}, "One.", "Two.", "Three.")

	rag, err := NewRAGService(db, &fakeEmbedder{vector: []float32{1, 0, 0}}, 2)
	if err != nil {
		t.Fatalf("NewRAGService: %v", err)
	}

	got, err := rag.RelevantContext(context.Background(), "query")
	if err != nil {
		t.Fatalf("RelevantContext: %v", err)
	}
	if strings.Contains(got, "Three.") {
		t.Errorf("topK=2 must drop the third chunk: %q", got)
	}
}

func TestRelevantContextEmptyKnowledgeBase(t *testing.T) {
	db := newTestStore(t)
	embedder := &fakeEmbedder{err: errCollaboratorDown} // must not even be called

	rag, err := NewRAGService(db, embedder, 3)
	if err != nil {
		t.Fatalf("NewRAGService: %v", err)
	}

	got, err := rag.RelevantContext(context.Background(), "query")
	if err != nil {
		t.Fatalf("empty knowledge base must not error: %v", err)
	}
	if got != "" {
		t.Errorf("expected empty context, got %q", got)
	}
}

func TestRelevantContextEmbeddingFailure(t *testing.T) {
	db := newTestStore(t)
	seedChunks(t, db, map[string][]float32{"Something.": {1, 0, 0}}, "Something.")

	rag, err := NewRAGService(db, &fakeEmbedder{err: errCollaboratorDown}, 3)
	if err != nil {
		t.Fatalf("NewRAGService: %v", err)
	}

	if _, err := rag.RelevantContext(context.Background(), "query"); err == nil {
		t.Fatal("embedding failure must propagate")
	}
}
