package baseline

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/roach88/idxstore/internal/record"
	"github.com/roach88/idxstore/internal/store"
)

//go:embed schema.sql
var schemaSQL string

// SQLite is a reference collection backed by an unindexed table in a
// private in-memory SQLite database. Nothing is written to disk.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite creates a fresh in-memory database with the records table.
func OpenSQLite(ctx context.Context) (*SQLite, error) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}

	// Every connection to :memory: is a separate database, so pin the pool
	// to a single connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Close releases the database. The data is gone afterwards.
func (s *SQLite) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Insert appends one record.
func (s *SQLite) Insert(ctx context.Context, rec record.Record) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO records (id, text_a, number, text_b) VALUES (?, ?, ?, ?)`,
		int64(rec.ID), rec.TextA, rec.Number, rec.TextB)
	if err != nil {
		return fmt.Errorf("insert record %d: %w", rec.ID, err)
	}
	return nil
}

// Load bulk-inserts recs in a single transaction.
func (s *SQLite) Load(ctx context.Context, recs []record.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("load: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO records (id, text_a, number, text_b) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("load: prepare: %w", err)
	}
	defer stmt.Close()

	for _, rec := range recs {
		if _, err := stmt.ExecContext(ctx, int64(rec.ID), rec.TextA, rec.Number, rec.TextB); err != nil {
			return fmt.Errorf("load: insert record %d: %w", rec.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("load: commit: %w", err)
	}
	return nil
}

// DeleteByID removes every row with the given ID and reports whether any
// row was removed.
func (s *SQLite) DeleteByID(ctx context.Context, id uint32) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM records WHERE id = ?`, int64(id))
	if err != nil {
		return false, fmt.Errorf("delete record %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete record %d: rows affected: %w", id, err)
	}
	return n > 0, nil
}

// Size returns the number of rows.
func (s *SQLite) Size(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM records`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return n, nil
}

// Filter runs the column query as a full table scan. Text columns match
// with instr, so an empty value matches every row, as strings.Contains does.
// ID and Number values are validated with the store's parsers first.
func (s *SQLite) Filter(ctx context.Context, col record.Column, value string) ([]record.Record, error) {
	var (
		query string
		arg   any
	)
	switch col {
	case record.ColumnID:
		id, err := store.ParseID(value)
		if err != nil {
			return nil, err
		}
		query, arg = `SELECT id, text_a, number, text_b FROM records WHERE id = ? ORDER BY rowid`, int64(id)
	case record.ColumnNumber:
		n, err := store.ParseNumber(value)
		if err != nil {
			return nil, err
		}
		query, arg = `SELECT id, text_a, number, text_b FROM records WHERE number = ? ORDER BY rowid`, n
	case record.ColumnTextA:
		query, arg = `SELECT id, text_a, number, text_b FROM records WHERE instr(text_a, ?) > 0 ORDER BY rowid`, value
	case record.ColumnTextB:
		query, arg = `SELECT id, text_a, number, text_b FROM records WHERE instr(text_b, ?) > 0 ORDER BY rowid`, value
	default:
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("filter %s: %w", col, err)
	}
	defer rows.Close()

	var out []record.Record
	for rows.Next() {
		var (
			id  int64
			rec record.Record
		)
		if err := rows.Scan(&id, &rec.TextA, &rec.Number, &rec.TextB); err != nil {
			return nil, fmt.Errorf("filter %s: scan: %w", col, err)
		}
		rec.ID = uint32(id)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("filter %s: %w", col, err)
	}
	return out, nil
}
