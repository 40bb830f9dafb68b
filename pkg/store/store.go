package store

import (
	"context"
	"errors"

	"github.com/showsync/showsync/pkg/show"
)

var (
	// ErrConflict means the expected version token no longer matches what is stored
	ErrConflict = errors.New("version conflict")
	// ErrNotFound means no collection has been stored yet
	ErrNotFound = errors.New("collection not found")
)

// VersionToken is an opaque value identifying one stored version of the
// collection. Put only succeeds when the token still matches.
type VersionToken string

// Store persists the collection as a single unit with optimistic concurrency
type Store interface {
	// Get returns the current collection and its version token
	Get(ctx context.Context) (*show.Collection, VersionToken, error)
	// Put replaces the collection if expected still identifies the stored
	// version, returning the new token. A mismatch returns ErrConflict.
	Put(ctx context.Context, collection *show.Collection, expected VersionToken) (VersionToken, error)
}
