package store

import (
	"context"
	"log/slog"
	"sync"
)

// MemBlob is an in-process blob backend. Intended for tests; it shares the
// exact codec and mutation logic of the durable backends, so behavior under
// test matches production.
type MemBlob struct {
	mu   sync.Mutex
	data []byte
	set  bool
}

// NewMemStore returns a Store backed by an in-process MemBlob.
func NewMemStore(log *slog.Logger) Store {
	return newBlobStore(&MemBlob{}, log)
}

// NewMemStoreWithBlob returns a memory-backed Store together with its
// underlying blob so tests can inspect or corrupt the raw bytes.
func NewMemStoreWithBlob(log *slog.Logger) (Store, *MemBlob) {
	b := &MemBlob{}
	return newBlobStore(b, log), b
}

func (m *MemBlob) read(_ context.Context) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.set {
		return nil, false, nil
	}
	out := make([]byte, len(m.data))
	copy(out, m.data)
	return out, true, nil
}

func (m *MemBlob) write(_ context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make([]byte, len(data))
	copy(m.data, data)
	m.set = true
	return nil
}

// SetRaw overwrites the stored blob with arbitrary bytes. Test hook for the
// corrupt-blob start-fresh recovery path.
func (m *MemBlob) SetRaw(data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = data
	m.set = true
}
