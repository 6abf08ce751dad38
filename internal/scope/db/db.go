package db

import (
	"context"
	"fmt"

	"github.com/dsjohal14/stockroom/internal/scope/inventory"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore keeps inventory lines in Postgres, ordered by a serial id
type PGStore struct {
	pool *pgxpool.Pool
}

// NewPGStore connects to Postgres and makes sure the lines table exists
func NewPGStore(ctx context.Context, connString string) (*PGStore, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Test connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &PGStore{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func (s *PGStore) migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS inventory_lines (
			id   BIGSERIAL PRIMARY KEY,
			line TEXT NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create inventory_lines: %w", err)
	}
	return nil
}

// Lines returns every stored line ordered by id
func (s *PGStore) Lines(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT line FROM inventory_lines ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines: %w", err)
	}
	defer rows.Close()

	lines := make([]string, 0)
	for rows.Next() {
		var line string
		if err := rows.Scan(&line); err != nil {
			return nil, fmt.Errorf("failed to scan line: %w", err)
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

// Records returns the well-formed records ordered by id
func (s *PGStore) Records(ctx context.Context) ([]inventory.Record, error) {
	lines, err := s.Lines(ctx)
	if err != nil {
		return nil, err
	}
	return parseRecords(lines), nil
}

// Count returns the number of stored lines
func (s *PGStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM inventory_lines`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count lines: %w", err)
	}
	return n, nil
}

// Add appends a record
func (s *PGStore) Add(ctx context.Context, rec inventory.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	_, err := s.pool.Exec(ctx, `INSERT INTO inventory_lines (line) VALUES ($1)`, rec.Line())
	if err != nil {
		return fmt.Errorf("failed to insert line: %w", err)
	}
	return nil
}

// Delete removes the first line keyed by particulars.
// split_part returns the whole line when it has no comma, matching inventory.KeyOf.
func (s *PGStore) Delete(ctx context.Context, particulars string) error {
	result, err := s.pool.Exec(ctx, `
		DELETE FROM inventory_lines
		WHERE id = (
			SELECT id FROM inventory_lines
			WHERE split_part(line, ',', 1) = $1
			ORDER BY id ASC
			LIMIT 1
		)
	`, particulars)
	if err != nil {
		return fmt.Errorf("failed to delete line: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Update sets the quantity of the first line keyed by particulars
func (s *PGStore) Update(ctx context.Context, particulars, quantity string) error {
	rec := inventory.Record{Particulars: particulars, Quantity: quantity}
	if err := rec.Validate(); err != nil {
		return err
	}
	result, err := s.pool.Exec(ctx, `
		UPDATE inventory_lines SET line = $2
		WHERE id = (
			SELECT id FROM inventory_lines
			WHERE split_part(line, ',', 1) = $1
			ORDER BY id ASC
			LIMIT 1
		)
	`, particulars, rec.Line())
	if err != nil {
		return fmt.Errorf("failed to update line: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Close closes the connection pool
func (s *PGStore) Close() error {
	s.pool.Close()
	return nil
}
