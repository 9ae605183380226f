package store

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"
)

func (s *SQLiteStore) createKnowledgeChunk(chunk *KnowledgeChunk) error {
	embeddingBytes, err := json.Marshal(chunk.Embedding)
	if err != nil {
		return fmt.Errorf("failed to marshal embedding: %w", err)
	}

	stmt, err := s.db.Prepare("INSERT INTO knowledge_chunks (content, embedding_json) VALUES (?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare knowledge_chunk insert: %w", err)
	}
	defer stmt.Close()

	res, err := stmt.Exec(chunk.Content, string(embeddingBytes))
	if err != nil {
		return fmt.Errorf("failed to execute knowledge_chunk insert: %w", err)
	}
	chunk.ID, _ = res.LastInsertId()
	return nil
}

func (s *SQLiteStore) GetAllKnowledgeChunks() ([]KnowledgeChunk, error) {
	rows, err := s.db.Query("SELECT id, content, embedding_json FROM knowledge_chunks")
	if err != nil {
		return nil, fmt.Errorf("failed to query knowledge_chunks: %w", err)
	}
	defer rows.Close()

	var chunks []KnowledgeChunk
	for rows.Next() {
		var chunk KnowledgeChunk
		var embeddingJSON string
		if err := rows.Scan(&chunk.ID, &chunk.Content, &embeddingJSON); err != nil {
			return nil, fmt.Errorf("failed to scan knowledge_chunk row: %w", err)
		}
		if embeddingJSON != "" {
			if err := json.Unmarshal([]byte(embeddingJSON), &chunk.Embedding); err != nil {
				log.Printf("Warning: failed to unmarshal embedding for chunk %d: %v. Embedding will be empty.", chunk.ID, err)
				chunk.Embedding = nil
			}
		}
		chunks = append(chunks, chunk)
	}
	return chunks, rows.Err()
}

func (s *SQLiteStore) ClearKnowledgeChunks() error {
	if _, err := s.db.Exec("DELETE FROM knowledge_chunks"); err != nil {
		return fmt.Errorf("failed to delete knowledge_chunks: %w", err)
	}
	_, err := s.db.Exec("DELETE FROM sqlite_sequence WHERE name='knowledge_chunks'")
	if err != nil && !strings.Contains(err.Error(), "no such table") {
		log.Printf("Warning: could not reset sequence for knowledge_chunks: %v", err)
	}
	return nil
}

// parseMarkdownTable extracts the cell content of a single-column
// Markdown table, skipping the header and separator rows.
func parseMarkdownTable(fileContent string) []string {
	var chunks []string
	for i, line := range strings.Split(fileContent, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || !strings.HasPrefix(trimmed, "|") || !strings.HasSuffix(trimmed, "|") {
			continue
		}
		if i <= 1 && (strings.Contains(trimmed, "---") || strings.Contains(strings.ToLower(trimmed), "text")) {
			continue // header / separator
		}
		parts := strings.Split(trimmed, "|")
		if len(parts) < 3 {
			log.Printf("Skipping malformed table row: %s", trimmed)
			continue
		}
		if cell := strings.TrimSpace(parts[1]); cell != "" {
			chunks = append(chunks, cell)
		}
	}
	return chunks
}

// IngestKnowledgeFromFile reads the knowledge-base Markdown table,
// embeds every row and replaces the stored chunk set. Rows whose
// embedding or write fails are skipped, not fatal.
func (s *SQLiteStore) IngestKnowledgeFromFile(filePath string, embedder func(string) ([]float32, error)) (int, error) {
	contentBytes, err := os.ReadFile(filePath)
	if err != nil {
		return 0, fmt.Errorf("failed to read data file %s: %w", filePath, err)
	}

	rawChunks := parseMarkdownTable(string(contentBytes))
	if len(rawChunks) == 0 {
		log.Println("No chunks found in data file. Ensure it's a Markdown table with a 'text' column.")
		return 0, nil
	}

	log.Printf("Parsed %d chunks. Now embedding (this may take a while)...", len(rawChunks))

	if err := s.ClearKnowledgeChunks(); err != nil {
		return 0, fmt.Errorf("failed to clear existing knowledge chunks: %w", err)
	}

	count := 0

	ticker := time.NewTicker(40 * time.Millisecond) // stay under the embedding rate limit
	defer ticker.Stop()

	for i, raw := range rawChunks {
		<-ticker.C

		embedding, err := embedder(raw)
		if err != nil {
			log.Printf("Failed to embed chunk %d (%.50q): %v. Skipping.", i+1, raw, err)
			continue
		}

		chunk := KnowledgeChunk{Content: raw, Embedding: embedding}
		if err := s.createKnowledgeChunk(&chunk); err != nil {
			log.Printf("Failed to store chunk %d: %v. Skipping.", i+1, err)
			continue
		}
		count++
		if count%10 == 0 || count == len(rawChunks) {
			log.Printf("Ingested %d/%d chunks...", count, len(rawChunks))
		}
	}
	return count, nil
}
