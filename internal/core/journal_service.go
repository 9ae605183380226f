package core

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"
	"sahay.app/support-backend/internal/store"
)

// JournalService owns the journal write and read paths. Entries are
// embedded at write time and immutable afterwards; reads filter a broad
// candidate set down to a trailing window.
type JournalService struct {
	dbStore    *store.SQLiteStore
	embedder   Embedder
	analyzer   *SentimentAnalyzer
	candidates int

	// now is swappable for tests; defaults to time.Now.
	now func() time.Time
}

func NewJournalService(db *store.SQLiteStore, embedder Embedder, analyzer *SentimentAnalyzer, candidateCap int) *JournalService {
	return &JournalService{
		dbStore:    db,
		embedder:   embedder,
		analyzer:   analyzer,
		candidates: candidateCap,
		now:        time.Now,
	}
}

// AppendEntry embeds the text and writes one journal entry stamped with
// the current UTC time. Embedding or storage failure propagates.
func (s *JournalService) AppendEntry(ctx context.Context, username, text string) (string, error) {
	embedding, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return "", fmt.Errorf("failed to embed journal entry: %w", err)
	}

	entry := store.JournalEntry{
		ID:        fmt.Sprintf("%s-%s", username, uuid.NewString()),
		Username:  username,
		Text:      text,
		Date:      s.now().UTC().Format(store.TimeLayout),
		Embedding: embedding,
	}
	if err := s.dbStore.UpsertJournalEntry(&entry); err != nil {
		return "", fmt.Errorf("failed to store journal entry: %w", err)
	}
	return entry.ID, nil
}

// RecentEntries returns a user's entries newest first, stable among
// equal dates, filtered to the last windowDays days when windowDays is
// positive (zero means no window). Candidates come from a broad capped
// query that is not date-ordered, so a user with more entries than the
// cap can have recent ones missing, a known limitation of querying a
// similarity store for recency. Entries whose date does not
// parse are skipped as corrupt.
func (s *JournalService) RecentEntries(username string, windowDays int) ([]store.JournalEntry, error) {
	candidates, err := s.dbStore.QueryJournalEntries(username, s.candidates)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal entries: %w", err)
	}

	var cutoff time.Time
	if windowDays > 0 {
		cutoff = s.now().UTC().AddDate(0, 0, -windowDays)
	}

	type dated struct {
		entry store.JournalEntry
		at    time.Time
	}
	var recent []dated
	for _, entry := range candidates {
		at, err := time.Parse(store.TimeLayout, entry.Date)
		if err != nil {
			log.Printf("Warning: journal entry %s has unparseable date %q, skipping", entry.ID, entry.Date)
			continue
		}
		if windowDays > 0 && at.Before(cutoff) {
			continue
		}
		recent = append(recent, dated{entry: entry, at: at})
	}

	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].at.After(recent[j].at)
	})

	entries := make([]store.JournalEntry, len(recent))
	for i, d := range recent {
		entries[i] = d.entry
	}
	return entries, nil
}

// WindowSentiment summarizes the emotional tone of a user's entries
// over the trailing window.
func (s *JournalService) WindowSentiment(ctx context.Context, username string, windowDays int) (SentimentSummary, error) {
	entries, err := s.RecentEntries(username, windowDays)
	if err != nil {
		return SentimentSummary{}, err
	}

	texts := make([]string, len(entries))
	for i, entry := range entries {
		texts[i] = entry.Text
	}
	return s.analyzer.Summarize(ctx, texts)
}
