package db

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"github.com/georgysavva/scany/sqlscan"
)

// DB is the query surface the repositories depend on. Both backends are
// served by the same implementation, so row access looks identical no matter
// which engine is configured.
type DB interface {
	Get(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	Select(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	Exec(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	ExecQueryRow(ctx context.Context, query string, args ...interface{}) *sql.Row
	BeginTx(ctx context.Context) (Tx, error)
}

type Tx interface {
	Commit() error
	Rollback() error
	Exec(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	ExecQueryRow(ctx context.Context, query string, args ...interface{}) *sql.Row
	Get(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	Select(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

// Database wraps a *sql.DB together with the backend it talks to. Queries are
// written with ? placeholders; they are rewritten to $1..$n when the backend
// is Postgres.
type Database struct {
	db      *sql.DB
	backend Backend
}

func NewDatabase(db *sql.DB, backend Backend) *Database {
	return &Database{db: db, backend: backend}
}

func (d *Database) Backend() Backend {
	return d.backend
}

func (d *Database) Close() error {
	return d.db.Close()
}

func (d *Database) Get(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	return sqlscan.Get(ctx, d.db, dest, d.rewrite(query), args...)
}

func (d *Database) Select(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	return sqlscan.Select(ctx, d.db, dest, d.rewrite(query), args...)
}

func (d *Database) Exec(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return d.db.ExecContext(ctx, d.rewrite(query), args...)
}

func (d *Database) ExecQueryRow(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return d.db.QueryRowContext(ctx, d.rewrite(query), args...)
}

func (d *Database) BeginTx(ctx context.Context) (Tx, error) {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &Transaction{tx: tx, backend: d.backend}, nil
}

func (d *Database) rewrite(query string) string {
	return rewritePlaceholders(query, d.backend)
}

type Transaction struct {
	tx      *sql.Tx
	backend Backend
}

func (t *Transaction) Commit() error {
	return t.tx.Commit()
}

func (t *Transaction) Rollback() error {
	return t.tx.Rollback()
}

func (t *Transaction) Exec(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return t.tx.ExecContext(ctx, rewritePlaceholders(query, t.backend), args...)
}

func (t *Transaction) ExecQueryRow(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return t.tx.QueryRowContext(ctx, rewritePlaceholders(query, t.backend), args...)
}

func (t *Transaction) Get(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	return sqlscan.Get(ctx, t.tx, dest, rewritePlaceholders(query, t.backend), args...)
}

func (t *Transaction) Select(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	return sqlscan.Select(ctx, t.tx, dest, rewritePlaceholders(query, t.backend), args...)
}

// rewritePlaceholders translates ? placeholders into the numbered $n form
// Postgres expects. SQLite takes ? natively, so the query passes through.
// Queries never embed a literal question mark, so no quoting pass is needed.
func rewritePlaceholders(query string, backend Backend) string {
	if backend != Postgres || !strings.Contains(query, "?") {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}
