package store

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func TestParseMarkdownTable(t *testing.T) {
	content := `| text |
|------|
| Deep breathing helps with acute anxiety. |
| Journaling before bed improves sleep. |

not a table row
|  |
`
	chunks := parseMarkdownTable(content)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d: %v", len(chunks), chunks)
	}
	if chunks[0] != "Deep breathing helps with acute anxiety." {
		t.Errorf("unexpected first chunk: %q", chunks[0])
	}
}

func TestIngestKnowledgeFromFile(t *testing.T) {
	s := newTestStore(t)

	dataFile := filepath.Join(t.TempDir(), "data.md")
	content := "| text |\n|------|\n| Chunk one. |\n| Chunk two. |\n| Chunk three. |\n"
	if err := os.WriteFile(dataFile, []byte(content), 0o644); err != nil {
		t.Fatalf("writing data file: %v", err)
	}

	calls := 0
	embedder := func(text string) ([]float32, error) {
		calls++
		if text == "Chunk two." {
			return nil, fmt.Errorf("embedding quota exceeded")
		}
		return []float32{1, 0}, nil
	}

	count, err := s.IngestKnowledgeFromFile(dataFile, embedder)
	if err != nil {
		t.Fatalf("IngestKnowledgeFromFile: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 ingested chunks (one embedding failed), got %d", count)
	}
	if calls != 3 {
		t.Errorf("expected 3 embedding calls, got %d", calls)
	}

	chunks, err := s.GetAllKnowledgeChunks()
	if err != nil {
		t.Fatalf("GetAllKnowledgeChunks: %v", err)
	}
	if len(chunks) != 2 {
		t.Errorf("expected 2 stored chunks, got %d", len(chunks))
	}
}

func TestIngestReplacesExistingChunks(t *testing.T) {
	s := newTestStore(t)

	if err := s.createKnowledgeChunk(&KnowledgeChunk{Content: "stale", Embedding: []float32{1}}); err != nil {
		t.Fatalf("createKnowledgeChunk: %v", err)
	}

	dataFile := filepath.Join(t.TempDir(), "data.md")
	if err := os.WriteFile(dataFile, []byte("| text |\n|------|\n| Fresh. |\n"), 0o644); err != nil {
		t.Fatalf("writing data file: %v", err)
	}

	if _, err := s.IngestKnowledgeFromFile(dataFile, func(string) ([]float32, error) {
		return []float32{1}, nil
	}); err != nil {
		t.Fatalf("IngestKnowledgeFromFile: %v", err)
	}

	chunks, err := s.GetAllKnowledgeChunks()
	if err != nil {
		t.Fatalf("GetAllKnowledgeChunks: %v", err)
	}
	if len(chunks) != 1 || chunks[0].Content != "Fresh." {
		t.Errorf("ingestion did not replace existing chunks: %+v", chunks)
	}
}
