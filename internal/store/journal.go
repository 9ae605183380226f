package store

import (
	"encoding/json"
	"fmt"
	"log"
)

// UpsertJournalEntry writes one immutable journal entry with its
// embedding. Failures propagate; there is no silent drop on the write
// path.
func (s *SQLiteStore) UpsertJournalEntry(entry *JournalEntry) error {
	embeddingBytes, err := json.Marshal(entry.Embedding)
	if err != nil {
		return fmt.Errorf("failed to marshal journal embedding: %w", err)
	}

	stmt, err := s.db.Prepare("INSERT OR REPLACE INTO journal_entries (id, username, text, date, embedding_json) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare journal insert: %w", err)
	}
	defer stmt.Close()

	if _, err := stmt.Exec(entry.ID, entry.Username, entry.Text, entry.Date, string(embeddingBytes)); err != nil {
		return fmt.Errorf("failed to execute journal insert: %w", err)
	}
	return nil
}

// QueryJournalEntries returns up to topK candidate entries for a
// username, in insertion order. This mirrors the vector-store contract
// the journal sits on (top-K plus an equality filter on the owner):
// candidates are not date-ordered and the cap is not a recency
// guarantee, so a user with more than topK entries can have recent ones
// missing from the candidate set. Callers apply their own window filter
// and sort.
func (s *SQLiteStore) QueryJournalEntries(username string, topK int) ([]JournalEntry, error) {
	rows, err := s.db.Query(
		"SELECT id, username, text, date, embedding_json FROM journal_entries WHERE username = ? LIMIT ?",
		username, topK,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal entries: %w", err)
	}
	defer rows.Close()

	var entries []JournalEntry
	for rows.Next() {
		var entry JournalEntry
		var embeddingJSON string
		if err := rows.Scan(&entry.ID, &entry.Username, &entry.Text, &entry.Date, &embeddingJSON); err != nil {
			return nil, fmt.Errorf("failed to scan journal row: %w", err)
		}
		if embeddingJSON != "" {
			if err := json.Unmarshal([]byte(embeddingJSON), &entry.Embedding); err != nil {
				log.Printf("Warning: failed to unmarshal embedding for journal entry %s: %v", entry.ID, err)
				entry.Embedding = nil
			}
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
