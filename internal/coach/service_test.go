package coach

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/jfenske89/stride/internal/storage"
	"github.com/jfenske89/stride/internal/testutil"
)

func newTestService(t *testing.T) (*Service, storage.Provider) {
	t.Helper()
	_, store := testutil.TestDataRoot(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(store, testutil.TestDB(t), logger), store
}

func ctx() context.Context { return context.Background() }
