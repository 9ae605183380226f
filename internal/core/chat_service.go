package core

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"sahay.app/support-backend/internal/store"
)

// ChatService drives a full chat turn: load history, compose the
// prompt, retrieve grounding context, generate, then commit both new
// messages. All state lives in the store; the service itself is
// stateless across requests apart from the per-identity locks.
type ChatService struct {
	dbStore   *store.SQLiteStore
	retriever Retriever
	generator Generator

	// historyWindow caps how many stored messages are serialized into
	// the prompt. The full history is still persisted.
	historyWindow int

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewChatService(db *store.SQLiteStore, retriever Retriever, generator Generator, historyWindow int) *ChatService {
	return &ChatService{
		dbStore:       db,
		retriever:     retriever,
		generator:     generator,
		historyWindow: historyWindow,
		locks:         make(map[string]*sync.Mutex),
	}
}

// identityLock returns the mutex serializing the load-modify-save cycle
// for one identity. Without it, two concurrent turns for the same user
// could race and the second save would drop the first turn.
func (s *ChatService) identityLock(identity string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[identity]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[identity] = lock
	}
	return lock
}

// Respond runs one chat turn and returns the assistant's answer. If
// retrieval or generation fails, nothing is persisted: history grows
// by exactly two messages per successful turn, or not at all.
func (s *ChatService) Respond(ctx context.Context, identity, mode, message string) (string, error) {
	key := store.SanitizeIdentity(identity)

	lock := s.identityLock(key)
	lock.Lock()
	defer lock.Unlock()

	history, err := s.dbStore.LoadConversation(key)
	if err != nil {
		return "", fmt.Errorf("failed to load conversation: %w", err)
	}

	windowed := history
	if s.historyWindow > 0 && len(windowed) > s.historyWindow {
		windowed = windowed[len(windowed)-s.historyWindow:]
	}

	system, user := ComposePrompt(SelectPersona(mode), SerializeHistory(windowed), message)

	relevantContext, err := s.retriever.RelevantContext(ctx, message)
	if err != nil {
		return "", fmt.Errorf("failed to retrieve context: %w", err)
	}
	system = strings.Replace(system, ContextPlaceholder, relevantContext, 1)

	answer, err := s.generator.Generate(ctx, system, user)
	if err != nil {
		return "", fmt.Errorf("failed to generate response: %w", err)
	}

	history = append(history,
		store.Message{Role: store.RoleUser, Content: message},
		store.Message{Role: store.RoleAssistant, Content: answer},
	)
	if err := s.dbStore.SaveConversation(key, history); err != nil {
		return "", fmt.Errorf("failed to save conversation: %w", err)
	}

	return answer, nil
}

// ClearHistory drops all stored conversation for an identity.
func (s *ChatService) ClearHistory(identity string) error {
	key := store.SanitizeIdentity(identity)

	lock := s.identityLock(key)
	lock.Lock()
	defer lock.Unlock()

	return s.dbStore.ClearConversation(key)
}
