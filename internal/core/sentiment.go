package core

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

const sentimentSystemInstruction = "You are analyzing a user's journal entries from the past week. " +
	"Return strictly JSON of the form {\"score\": <number between 0 and 1>, \"summary\": \"<short text>\"} " +
	"where score is 0 for very negative and 1 for very positive, and summary is a 2-3 sentence " +
	"description of the emotional state. Return nothing but the JSON object."

// NoEntriesSummary is returned when a user has no journal entries in
// the requested window. No analysis call is made in that case.
const NoEntriesSummary = "No journal entries this week."

// SentimentSummary is derived on demand and never persisted. A nil
// Score means the analysis produced no usable number: either there was
// nothing to analyze, or the model's reply was not the expected JSON
// (in which case Summary carries the raw reply).
type SentimentSummary struct {
	Score   *float64 `json:"score"`
	Summary string   `json:"summary"`
}

// SentimentAnalyzer condenses a set of journal entries into one
// emotional-state summary via a single delegated generation call.
type SentimentAnalyzer struct {
	generator Generator
}

func NewSentimentAnalyzer(generator Generator) *SentimentAnalyzer {
	return &SentimentAnalyzer{generator: generator}
}

func (a *SentimentAnalyzer) Summarize(ctx context.Context, entries []string) (SentimentSummary, error) {
	if len(entries) == 0 {
		return SentimentSummary{Score: nil, Summary: NoEntriesSummary}, nil
	}

	combined := strings.Join(entries, "\n")
	raw, err := a.generator.Generate(ctx, sentimentSystemInstruction, "Journals:\n"+combined)
	if err != nil {
		return SentimentSummary{}, fmt.Errorf("sentiment analysis request failed: %w", err)
	}

	return parseSentiment(raw), nil
}

// parseSentiment decodes the model reply. Anything that is not
// well-formed (bad JSON, a missing score, a score outside [0,1])
// degrades to a nil score with the raw reply as the summary.
func parseSentiment(raw string) SentimentSummary {
	var parsed SentimentSummary
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return SentimentSummary{Score: nil, Summary: raw}
	}
	if parsed.Score == nil || *parsed.Score < 0 || *parsed.Score > 1 {
		return SentimentSummary{Score: nil, Summary: raw}
	}
	return parsed
}
