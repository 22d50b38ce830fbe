package record

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/pkg/errors"
)

// Transaction state errors. At most one transaction may be open per
// connection at a time.
var (
	// ErrTransactionActive is returned by Begin when a transaction is already
	// open on this connection.
	ErrTransactionActive = errors.New("transaction is already in progress")
	// ErrNoTransaction is returned by Commit and Rollback when no transaction
	// is open.
	ErrNoTransaction = errors.New("no transaction in progress")
)

// Connection executes statements for a single business operation. It wraps one
// dedicated session with the backing store and holds at most one open
// transaction. Connections must not be shared across concurrent operations.
type Connection struct {
	conn   *sql.Conn
	tx     *sql.Tx
	logger *slog.Logger
}

// Conn borrows a dedicated connection from the store for the lifetime of one
// business operation. The caller must Close it.
func (s *Store) Conn(ctx context.Context) (*Connection, error) {
	db, err := s.open()
	if err != nil {
		return nil, err
	}

	conn, err := db.Conn(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "acquire store connection")
	}

	return &Connection{conn: conn, logger: s.logger}, nil
}

// Execute runs a write statement (insert, update, delete) and returns the
// affected row count. params is a parameter bag whose exported fields are
// bound positionally in declaration order.
func (c *Connection) Execute(ctx context.Context, stmt string, params any) (int64, error) {
	args, err := bindArgs(params)
	if err != nil {
		return 0, err
	}

	c.logger.Debug("executing statement", slog.String("stmt", stmt))

	var result sql.Result
	if c.tx != nil {
		result, err = c.tx.ExecContext(ctx, stmt, args...)
	} else {
		result, err = c.conn.ExecContext(ctx, stmt, args...)
	}
	if err != nil {
		return 0, errors.Wrapf(err, "execute statement failed: %s", stmt)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, errors.Wrapf(err, "affected rows unavailable: %s", stmt)
	}

	return affected, nil
}

func (c *Connection) query(ctx context.Context, stmt string, params any) (*sql.Rows, error) {
	args, err := bindArgs(params)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("executing query", slog.String("stmt", stmt))

	var rows *sql.Rows
	if c.tx != nil {
		rows, err = c.tx.QueryContext(ctx, stmt, args...)
	} else {
		rows, err = c.conn.QueryContext(ctx, stmt, args...)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "execute query failed: %s", stmt)
	}

	return rows, nil
}

// Begin opens the connection's transaction. A second Begin without an
// intervening Commit or Rollback fails with ErrTransactionActive.
func (c *Connection) Begin(ctx context.Context) error {
	if c.tx != nil {
		return errors.WithStack(ErrTransactionActive)
	}

	tx, err := c.conn.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin transaction")
	}
	c.tx = tx
	c.logger.Debug("transaction started")

	return nil
}

// Commit commits the open transaction.
func (c *Connection) Commit() error {
	if c.tx == nil {
		return errors.WithStack(ErrNoTransaction)
	}

	err := c.tx.Commit()
	c.tx = nil
	if err != nil {
		return errors.Wrap(err, "commit transaction")
	}
	c.logger.Debug("transaction committed")

	return nil
}

// Rollback aborts the open transaction.
func (c *Connection) Rollback() error {
	if c.tx == nil {
		return errors.WithStack(ErrNoTransaction)
	}

	err := c.tx.Rollback()
	c.tx = nil
	if err != nil {
		return errors.Wrap(err, "rollback transaction")
	}
	c.logger.Debug("transaction rolled back")

	return nil
}

// InTransaction reports whether a transaction is currently open.
func (c *Connection) InTransaction() bool {
	return c.tx != nil
}

// Close rolls back any open transaction and returns the session to the store.
func (c *Connection) Close() error {
	if c.tx != nil {
		if err := c.tx.Rollback(); err != nil {
			c.logger.Warn("rollback on close failed", slog.Any("error", err))
		}
		c.tx = nil
	}

	return errors.WithStack(c.conn.Close())
}
