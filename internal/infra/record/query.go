package record

import (
	"context"
	"database/sql"
	"reflect"

	"github.com/pkg/errors"
)

// The query helpers are package functions because methods cannot carry type
// parameters. They all route through the connection's open transaction when
// one exists.

// QueryMany executes a read statement and maps every row to T. Result order is
// whatever the store returns; callers that need determinism must put an ORDER
// BY in the statement.
func QueryMany[T any](ctx context.Context, c *Connection, stmt string, params any) ([]T, error) {
	rows, err := c.query(ctx, stmt, params)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, errors.Wrapf(err, "read columns: %s", stmt)
	}

	var results []T
	for rows.Next() {
		values, err := scanRaw(rows, len(columns))
		if err != nil {
			return nil, errors.Wrapf(err, "scan row: %s", stmt)
		}

		var item T
		if err := mapRow(c.logger, columns, values, reflect.ValueOf(&item)); err != nil {
			return nil, err
		}
		results = append(results, item)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "iterate rows: %s", stmt)
	}

	return results, nil
}

// QueryOne executes a read statement and maps the first row to T, returning
// nil when the statement yields no rows.
func QueryOne[T any](ctx context.Context, c *Connection, stmt string, params any) (*T, error) {
	rows, err := c.query(ctx, stmt, params)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, errors.Wrapf(err, "read columns: %s", stmt)
	}

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, errors.Wrapf(err, "iterate rows: %s", stmt)
		}

		return nil, nil
	}

	values, err := scanRaw(rows, len(columns))
	if err != nil {
		return nil, errors.Wrapf(err, "scan row: %s", stmt)
	}

	var item T
	if err := mapRow(c.logger, columns, values, reflect.ValueOf(&item)); err != nil {
		return nil, err
	}

	return &item, nil
}

// ExecuteScalar executes a read statement expected to yield a single column of
// a single row, converted to T. Absent rows and null values return nil.
func ExecuteScalar[T any](ctx context.Context, c *Connection, stmt string, params any) (*T, error) {
	rows, err := c.query(ctx, stmt, params)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, errors.Wrapf(err, "iterate rows: %s", stmt)
		}

		return nil, nil
	}

	var raw any
	if err := rows.Scan(&raw); err != nil {
		return nil, errors.Wrapf(err, "scan scalar: %s", stmt)
	}
	if raw == nil {
		return nil, nil
	}

	var result T
	converted, err := convertValue(raw, reflect.TypeOf(result))
	if err != nil {
		return nil, errors.Wrapf(err, "convert scalar: %s", stmt)
	}
	reflect.ValueOf(&result).Elem().Set(converted)

	return &result, nil
}

func scanRaw(rows *sql.Rows, n int) ([]any, error) {
	values := make([]any, n)
	targets := make([]any, n)
	for i := range values {
		targets[i] = &values[i]
	}
	if err := rows.Scan(targets...); err != nil {
		return nil, err
	}

	return values, nil
}
