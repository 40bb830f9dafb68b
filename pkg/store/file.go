package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/showsync/showsync/pkg/show"
)

const lockRetryDelay = 50 * time.Millisecond

// File stores the collection in a local YAML file. The version token is the
// SHA-256 of the file bytes; a flock around read-modify-write keeps
// concurrent local invocations from clobbering each other.
type File struct {
	path string
	lock *flock.Flock
}

func NewFile(path string) *File {
	return &File{
		path: path,
		lock: flock.New(path + ".lock"),
	}
}

func hashToken(b []byte) VersionToken {
	sum := sha256.Sum256(b)
	return VersionToken(hex.EncodeToString(sum[:]))
}

func (f *File) Get(ctx context.Context) (*show.Collection, VersionToken, error) {
	locked, err := f.lock.TryRLockContext(ctx, lockRetryDelay)
	if err != nil {
		return nil, "", fmt.Errorf("failed to lock collection file: %w", err)
	}
	if !locked {
		return nil, "", fmt.Errorf("collection file is locked")
	}
	defer f.lock.Unlock()

	b, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, "", ErrNotFound
		}
		return nil, "", fmt.Errorf("failed to read collection file: %w", err)
	}

	collection, err := show.DecodeCollection(b)
	if err != nil {
		return nil, "", err
	}

	return collection, hashToken(b), nil
}

func (f *File) Put(ctx context.Context, collection *show.Collection, expected VersionToken) (VersionToken, error) {
	locked, err := f.lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return "", fmt.Errorf("failed to lock collection file: %w", err)
	}
	if !locked {
		return "", fmt.Errorf("collection file is locked")
	}
	defer f.lock.Unlock()

	current, err := os.ReadFile(f.path)
	switch {
	case err == nil:
		if hashToken(current) != expected {
			return "", ErrConflict
		}
	case errors.Is(err, os.ErrNotExist):
		if expected != "" {
			return "", ErrConflict
		}
	default:
		return "", fmt.Errorf("failed to read collection file: %w", err)
	}

	b, err := collection.Encode()
	if err != nil {
		return "", err
	}

	// write-then-rename so a crash never leaves a half-written collection
	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".showsync-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write collection: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), f.path); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to replace collection file: %w", err)
	}

	return hashToken(b), nil
}
