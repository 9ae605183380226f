package core

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"sahay.app/support-backend/internal/store"
)

func newTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()
	s, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

type fakeEmbedder struct {
	vector []float32
	err    error
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.vector != nil {
		return f.vector, nil
	}
	return []float32{1, 0, 0}, nil
}

// fakeGenerator records the last instructions it saw and replies with a
// fixed string or error.
type fakeGenerator struct {
	reply      string
	err        error
	lastSystem string
	lastUser   string
	calls      int
}

func (f *fakeGenerator) Generate(ctx context.Context, system, user string) (string, error) {
	f.calls++
	f.lastSystem = system
	f.lastUser = user
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

type fakeRetriever struct {
	context string
	err     error
}

func (f *fakeRetriever) RelevantContext(ctx context.Context, query string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.context, nil
}

var errCollaboratorDown = fmt.Errorf("collaborator unavailable")
