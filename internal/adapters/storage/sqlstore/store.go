// Package sqlstore implementa los repositorios sobre database/sql. El mismo
// código sirve para Postgres (pgx) y SQLite (modernc); sólo cambia el
// formato de placeholders de squirrel.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

func ParseDialect(s string) (Dialect, error) {
	switch Dialect(s) {
	case Postgres, SQLite:
		return Dialect(s), nil
	default:
		return "", fmt.Errorf("sqlstore: unknown dialect %q", s)
	}
}

func (d Dialect) placeholder() sq.PlaceholderFormat {
	if d == Postgres {
		return sq.Dollar
	}
	return sq.Question
}

// Store agrupa el pool y el builder de queries.
type Store struct {
	db      *sql.DB
	sb      sq.StatementBuilderType
	dialect Dialect
}

func New(db *sql.DB, d Dialect) *Store {
	return &Store{
		db:      db,
		sb:      sq.StatementBuilder.PlaceholderFormat(d.placeholder()),
		dialect: d,
	}
}

func (s *Store) DB() *sql.DB { return s.db }
func (s *Store) Dialect() Dialect { return s.dialect }
func (s *Store) Close() error { return s.db.Close() }
func (s *Store) Vets() *VetRepo { return &VetRepo{s: s} }
func (s *Store) Owners() *OwnerRepo { return &OwnerRepo{s: s} }
func (s *Store) Visits() *VisitRepo { return &VisitRepo{s: s} }
func (s *Store) Catalog() *CatalogRepo { return &CatalogRepo{s: s} }

// querier lo cumplen *sql.DB y *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// withTx ejecuta fn en una transacción; cualquier error hace rollback.
func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func exec(ctx context.Context, q querier, b sq.Sqlizer) (int64, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// insertReturningID requiere RETURNING (Postgres y SQLite >= 3.35).
func insertReturningID(ctx context.Context, q querier, b sq.InsertBuilder) (int64, error) {
	query, args, err := b.Suffix("RETURNING id").ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert: %w", err)
	}
	var id int64
	if err := q.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func queryRows(ctx context.Context, q querier, b sq.Sqlizer) (*sql.Rows, error) {
	sqlStr, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	return q.QueryContext(ctx, sqlStr, args...)
}

func queryOne(ctx context.Context, q querier, b sq.Sqlizer) (*sql.Row, error) {
	sqlStr, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	return q.QueryRowContext(ctx, sqlStr, args...), nil
}
