// Package db provides inventory persistence: a flat text file by default,
// with bbolt and Postgres backends behind the same Storage interface.
package db

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dsjohal14/stockroom/internal/scope/inventory"
)

// FileStore keeps the inventory as newline-terminated "particulars,quantity"
// lines. Every read loads the whole file and every write rewrites it.
type FileStore struct {
	path string
	mu   sync.RWMutex
}

// NewFileStore creates a store for the file at path. The file is not
// created until the first write.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the inventory file path
func (s *FileStore) Path() string {
	return s.path
}

// Lines reads every line of the inventory file
func (s *FileStore) Lines(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.readLines()
}

// Records returns the well-formed records in file order
func (s *FileStore) Records(ctx context.Context) ([]inventory.Record, error) {
	lines, err := s.Lines(ctx)
	if err != nil {
		return nil, err
	}
	return parseRecords(lines), nil
}

// Count returns the number of lines in the file
func (s *FileStore) Count(ctx context.Context) (int, error) {
	lines, err := s.Lines(ctx)
	if err != nil {
		return 0, err
	}
	return len(lines), nil
}

// Add appends a record. A missing file is treated as an empty inventory.
func (s *FileStore) Add(_ context.Context, rec inventory.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lines, err := s.readLines()
	if err != nil && !errors.Is(err, ErrUnavailable) {
		return err
	}
	return s.writeLines(append(lines, rec.Line()))
}

// Delete removes the first line keyed by particulars
func (s *FileStore) Delete(_ context.Context, particulars string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines, err := s.readLines()
	if err != nil {
		return err
	}

	i := indexOfKey(lines, particulars)
	if i < 0 {
		return ErrNotFound
	}
	return s.writeLines(append(lines[:i], lines[i+1:]...))
}

// Update sets the quantity of the first line keyed by particulars
func (s *FileStore) Update(_ context.Context, particulars, quantity string) error {
	rec := inventory.Record{Particulars: particulars, Quantity: quantity}
	if err := rec.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lines, err := s.readLines()
	if err != nil {
		return err
	}

	i := indexOfKey(lines, particulars)
	if i < 0 {
		return ErrNotFound
	}
	lines[i] = rec.Line()
	return s.writeLines(lines)
}

// Close is a no-op; every write is already on disk
func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) readLines() ([]string, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnavailable, s.path, err)
	}
	defer func() { _ = f.Close() }()

	lines := make([]string, 0)
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, strings.TrimSuffix(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read inventory %s: %w", s.path, err)
	}
	return lines, nil
}

// writeLines replaces the file through a temp file in the same directory
func (s *FileStore) writeLines(lines []string) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create inventory directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp inventory file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if err := tmp.Chmod(0644); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to set inventory file mode: %w", err)
	}

	w := bufio.NewWriter(tmp)
	for _, line := range lines {
		if _, err := w.WriteString(line + "\n"); err != nil {
			_ = tmp.Close()
			return fmt.Errorf("failed to write inventory: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write inventory: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp inventory file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace inventory file: %w", err)
	}
	return nil
}
