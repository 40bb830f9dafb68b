package store

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/showsync/showsync/pkg/show"
)

// Memory is an in-process store used by tests and dry runs. It honors the
// same conflict semantics as the real backends.
type Memory struct {
	mu     sync.Mutex
	data   []byte
	token  VersionToken
	seeded bool
}

func NewMemory() *Memory {
	return &Memory{}
}

// Seed stores an initial collection without conflict checking
func (m *Memory) Seed(collection *show.Collection) error {
	b, err := collection.Encode()
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = b
	m.token = VersionToken(uuid.NewString())
	m.seeded = true
	return nil
}

func (m *Memory) Get(ctx context.Context) (*show.Collection, VersionToken, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.seeded {
		return nil, "", ErrNotFound
	}

	collection, err := show.DecodeCollection(m.data)
	if err != nil {
		return nil, "", err
	}

	return collection, m.token, nil
}

func (m *Memory) Put(ctx context.Context, collection *show.Collection, expected VersionToken) (VersionToken, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	b, err := collection.Encode()
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.seeded && m.token != expected {
		return "", ErrConflict
	}

	m.data = b
	m.token = VersionToken(uuid.NewString())
	m.seeded = true
	return m.token, nil
}
