// Package record implements the call-level interface to the legacy
// record-oriented store: parameterized text statements with positional
// placeholders, one transaction handle per connection, and reflection-driven
// mapping between flat rows and typed values.
package record

import (
	"database/sql"
	"log/slog"
	"sync"

	"github.com/pkg/errors"

	// Pure-Go driver for the backing store used in development and tests.
	_ "modernc.org/sqlite"

	"pizzeria/config"
)

// Store is the process-wide handle to the backing store. It opens lazily on
// first use; business operations borrow dedicated connections from it and
// never share them.
type Store struct {
	cfg    config.StoreConfig
	logger *slog.Logger

	once sync.Once
	db   *sql.DB
	err  error
}

// NewStore creates the store handle without touching the backing store yet.
func NewStore(cfg *config.Config, logger *slog.Logger) (*Store, error) {
	if cfg.Store.Driver == "" {
		return nil, errors.New("store driver is not configured")
	}
	if cfg.Store.DSN == "" {
		return nil, errors.New("store DSN is not configured")
	}

	return &Store{cfg: cfg.Store, logger: logger}, nil
}

func (s *Store) open() (*sql.DB, error) {
	s.once.Do(func() {
		db, err := sql.Open(s.cfg.Driver, s.cfg.DSN)
		if err != nil {
			s.err = errors.Wrapf(err, "open store with driver %s", s.cfg.Driver)

			return
		}
		s.db = db
		s.logger.Debug("store opened", slog.String("driver", s.cfg.Driver))
	})

	return s.db, s.err
}

// Close releases the underlying pool. Connections handed out earlier become
// unusable.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}

	return errors.WithStack(s.db.Close())
}

// Schema returns the configured namespace prefix for table names, possibly
// empty.
func (s *Store) Schema() string {
	return s.cfg.Schema
}
