package store

// TimeLayout is the second-precision format used for every persisted
// timestamp. Journal dates that do not parse with it are treated as
// corrupt and skipped.
const TimeLayout = "2006-01-02 15:04:05"

// Message roles. Anything else in persisted data is passed through
// untouched; the store does not police roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one conversational turn half. Timestamp is stored as a
// formatted string so the persisted record is self-describing; an empty
// Timestamp means "not yet assigned" and is filled in on save.
type Message struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// JournalEntry is immutable once written. Date is UTC in TimeLayout.
type JournalEntry struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Text      string    `json:"text"`
	Date      string    `json:"date"`
	Embedding []float32 `json:"-"` // stored as JSON text in the DB, never serialized out
}

// KnowledgeChunk is one row of the ingested support knowledge base.
type KnowledgeChunk struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	Embedding []float32 `json:"-"`
}
