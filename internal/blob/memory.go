package blob

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
)

// Memory keeps objects in process memory. It backs "mem://" locations.
type Memory struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

func NewMemory() *Memory { return &Memory{objects: make(map[string][]byte)} }

func (m *Memory) Driver() Driver { return DriverMemory }

func (m *Memory) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.objects[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

func (m *Memory) Put(ctx context.Context, key string, r io.Reader, _ PutOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.mu.Lock()
	if m.objects == nil {
		m.objects = make(map[string][]byte)
	}
	m.objects[key] = b
	m.mu.Unlock()
	return nil
}

// Bytes returns a copy of the object at key.
func (m *Memory) Bytes(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.objects[key]
	return bytes.Clone(b), ok
}
