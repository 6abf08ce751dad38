package db

import (
	"context"
	"fmt"
)

// Backend names accepted by Open
const (
	BackendFile     = "file"
	BackendBolt     = "bolt"
	BackendPostgres = "postgres"
)

// Options selects and configures a storage backend
type Options struct {
	Backend     string
	File        string // flat file path
	BoltPath    string
	DatabaseURL string
}

// Open creates the storage backend named by opts.Backend
func Open(ctx context.Context, opts Options) (Storage, error) {
	switch opts.Backend {
	case "", BackendFile:
		return NewFileStore(opts.File), nil
	case BackendBolt:
		return NewBoltStore(opts.BoltPath)
	case BackendPostgres:
		if opts.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for the postgres backend")
		}
		return NewPGStore(ctx, opts.DatabaseURL)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", opts.Backend)
	}
}
