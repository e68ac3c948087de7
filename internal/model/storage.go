package model

import (
	"context"
	"io"
)

// Storage keeps uploaded files.
type Storage interface {
	Upload(ctx context.Context, key string, reader io.Reader, size int64) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	// Location returns where key is stored, as recorded in the user row.
	Location(key string) string
}
