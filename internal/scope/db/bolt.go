package db

import (
	"context"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/dsjohal14/stockroom/internal/scope/inventory"
	bolt "go.etcd.io/bbolt"
)

var bucketLines = []byte("inventory_lines")

// BoltStore keeps inventory lines in a bbolt bucket. Keys are big-endian
// sequence numbers so cursor order is insertion order.
type BoltStore struct {
	db *bolt.DB
}

// NewBoltStore opens (or creates) a bbolt database at path
func NewBoltStore(path string) (*BoltStore, error) {
	bdb, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}

	err = bdb.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketLines)
		return err
	})
	if err != nil {
		_ = bdb.Close()
		return nil, fmt.Errorf("bbolt init bucket: %w", err)
	}

	return &BoltStore{db: bdb}, nil
}

// ImportLines appends raw lines as-is, for seeding from a flat file
func (s *BoltStore) ImportLines(_ context.Context, lines []string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketLines)
		for _, line := range lines {
			if err := putNext(b, line); err != nil {
				return err
			}
		}
		return nil
	})
}

// Lines returns every stored line in insertion order
func (s *BoltStore) Lines(_ context.Context) ([]string, error) {
	lines := make([]string, 0)
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketLines).ForEach(func(_, v []byte) error {
			lines = append(lines, string(v))
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("bbolt read lines: %w", err)
	}
	return lines, nil
}

// Records returns the well-formed records in insertion order
func (s *BoltStore) Records(ctx context.Context) ([]inventory.Record, error) {
	lines, err := s.Lines(ctx)
	if err != nil {
		return nil, err
	}
	return parseRecords(lines), nil
}

// Count returns the number of stored lines
func (s *BoltStore) Count(_ context.Context) (int, error) {
	var n int
	err := s.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket(bucketLines).Stats().KeyN
		return nil
	})
	return n, err
}

// Add appends a record
func (s *BoltStore) Add(_ context.Context, rec inventory.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return putNext(tx.Bucket(bucketLines), rec.Line())
	})
}

// Delete removes the first line keyed by particulars
func (s *BoltStore) Delete(_ context.Context, particulars string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketLines)
		k := firstKey(b, particulars)
		if k == nil {
			return ErrNotFound
		}
		return b.Delete(k)
	})
}

// Update sets the quantity of the first line keyed by particulars
func (s *BoltStore) Update(_ context.Context, particulars, quantity string) error {
	rec := inventory.Record{Particulars: particulars, Quantity: quantity}
	if err := rec.Validate(); err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketLines)
		k := firstKey(b, particulars)
		if k == nil {
			return ErrNotFound
		}
		return b.Put(k, []byte(rec.Line()))
	})
}

// Close closes the underlying bbolt database
func (s *BoltStore) Close() error {
	return s.db.Close()
}

func putNext(b *bolt.Bucket, line string) error {
	seq, err := b.NextSequence()
	if err != nil {
		return err
	}
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, seq)
	return b.Put(key, []byte(line))
}

// firstKey returns a copy of the key of the first line keyed by particulars
func firstKey(b *bolt.Bucket, particulars string) []byte {
	c := b.Cursor()
	for k, v := c.First(); k != nil; k, v = c.Next() {
		if inventory.KeyOf(string(v)) == particulars {
			return append([]byte(nil), k...)
		}
	}
	return nil
}
