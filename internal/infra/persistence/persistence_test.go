package persistence

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"pizzeria/config"
	"pizzeria/internal/domain/entity"
	"pizzeria/internal/domain/event"
	"pizzeria/internal/infra/record"
)

var storeSeq atomic.Int64

// recordingDispatcher captures dispatched event names in order. Setting fail
// makes every Dispatch return that error.
type recordingDispatcher struct {
	mu    sync.Mutex
	names []string
	fail  error
}

func (d *recordingDispatcher) Dispatch(_ context.Context, evt event.DomainEvent) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.names = append(d.names, evt.Name())

	return d.fail
}

func (d *recordingDispatcher) dispatched() []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	return append([]string(nil), d.names...)
}

// newTestFactory provisions an isolated in-memory store with the six tables
// created. A keeper connection stays open so the shared-cache database
// survives between operations.
func newTestFactory(t *testing.T) (*OperationFactory, *recordingDispatcher) {
	t.Helper()

	cfg := &config.Config{}
	cfg.Store = config.StoreConfig{
		Driver: "sqlite",
		DSN:    fmt.Sprintf("file:persistencetest%d?mode=memory&cache=shared", storeSeq.Add(1)),
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := record.NewStore(cfg, logger)
	require.NoError(t, err)

	keeper, err := store.Conn(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() {
		keeper.Close()
		store.Close()
	})

	require.NoError(t, EnsureSchema(context.Background(), store))

	dispatcher := &recordingDispatcher{}

	return NewOperationFactory(store, dispatcher, logger), dispatcher
}

func testAddress(t *testing.T) entity.Address {
	t.Helper()

	address, err := entity.NewAddress("Calle Mayor 1", "Madrid", "Madrid", "28001", "Spain")
	require.NoError(t, err)

	return address
}
