package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"
)

// LoadConversation returns the full message sequence for a raw identity
// (sanitized internally). An unseen identity yields an empty slice. A
// record that exists but does not decode is treated as absent; the
// corruption is logged, never surfaced to the caller.
func (s *SQLiteStore) LoadConversation(identity string) ([]Message, error) {
	key := SanitizeIdentity(identity)

	var messagesJSON string
	err := s.db.QueryRow("SELECT messages_json FROM conversations WHERE identity = ?", key).Scan(&messagesJSON)
	if err != nil {
		if err == sql.ErrNoRows {
			return []Message{}, nil
		}
		return nil, fmt.Errorf("failed to query conversation for %q: %w", key, err)
	}

	var messages []Message
	if err := json.Unmarshal([]byte(messagesJSON), &messages); err != nil {
		log.Printf("Warning: corrupt conversation record for %q, treating as empty: %v", key, err)
		return []Message{}, nil
	}
	if messages == nil {
		messages = []Message{}
	}
	return messages, nil
}

// SaveConversation overwrites the whole persisted record for an identity
// with the given sequence, assigning a current UTC timestamp to any
// message missing one. The replacement runs in a transaction so a
// concurrent load sees either the old record or the new one, never a
// partial write.
func (s *SQLiteStore) SaveConversation(identity string, messages []Message) error {
	key := SanitizeIdentity(identity)

	now := time.Now().UTC().Format(TimeLayout)
	normalized := make([]Message, len(messages))
	for i, m := range messages {
		if m.Timestamp == "" {
			m.Timestamp = now
		}
		normalized[i] = m
	}

	messagesJSON, err := json.Marshal(normalized)
	if err != nil {
		return fmt.Errorf("failed to marshal conversation for %q: %w", key, err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin conversation save: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"INSERT INTO conversations (identity, messages_json, updated_at) VALUES (?, ?, ?) "+
			"ON CONFLICT(identity) DO UPDATE SET messages_json = excluded.messages_json, updated_at = excluded.updated_at",
		key, string(messagesJSON), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to write conversation for %q: %w", key, err)
	}

	return tx.Commit()
}

// ClearConversation removes all history for an identity. Clearing an
// identity that has no record is a no-op.
func (s *SQLiteStore) ClearConversation(identity string) error {
	key := SanitizeIdentity(identity)
	if _, err := s.db.Exec("DELETE FROM conversations WHERE identity = ?", key); err != nil {
		return fmt.Errorf("failed to clear conversation for %q: %w", key, err)
	}
	return nil
}
