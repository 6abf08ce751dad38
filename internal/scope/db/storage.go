package db

import (
	"context"
	"errors"

	"github.com/dsjohal14/stockroom/internal/scope/inventory"
)

var (
	// ErrNotFound is returned when no line has the requested particulars
	ErrNotFound = errors.New("item not found in inventory")

	// ErrUnavailable is returned when the inventory cannot be opened for reading
	ErrUnavailable = errors.New("unable to open inventory")
)

// Storage is the interface for inventory persistence.
// FileStore, BoltStore and PGStore implement it.
type Storage interface {
	// Lines returns every stored line, in file order, without line terminators
	Lines(ctx context.Context) ([]string, error)

	// Records returns the well-formed lines parsed as records
	Records(ctx context.Context) ([]inventory.Record, error)

	// Add appends a record
	Add(ctx context.Context, rec inventory.Record) error

	// Delete removes the first line whose particulars equal the argument
	Delete(ctx context.Context, particulars string) error

	// Update replaces the quantity of the first line whose particulars equal the argument
	Update(ctx context.Context, particulars, quantity string) error

	// Count returns the number of stored lines
	Count(ctx context.Context) (int, error)

	// Close releases the underlying resources
	Close() error
}

var (
	_ Storage = (*FileStore)(nil)
	_ Storage = (*BoltStore)(nil)
	_ Storage = (*PGStore)(nil)
)

// parseRecords keeps the lines that split into a record
func parseRecords(lines []string) []inventory.Record {
	records := make([]inventory.Record, 0, len(lines))
	for _, line := range lines {
		if rec, ok := inventory.ParseLine(line); ok {
			records = append(records, rec)
		}
	}
	return records
}

// indexOfKey returns the index of the first line keyed by particulars, or -1
func indexOfKey(lines []string, particulars string) int {
	for i, line := range lines {
		if inventory.KeyOf(line) == particulars {
			return i
		}
	}
	return -1
}
