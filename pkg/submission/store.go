package submission

import (
	"container/list"
	"context"
	"sync"
)

// Store keeps submissions by ID.
type Store interface {
	Save(ctx context.Context, s Submission) error
	Get(ctx context.Context, id string) (Submission, error)
}

// MemoryStore is a bounded in-memory Store. Once full, saving a new
// submission evicts the least recently used one. Safe for concurrent use.
type MemoryStore struct {
	mu       sync.Mutex
	capacity int
	items    map[string]*list.Element
	order    *list.List
}

// NewMemoryStore panics when capacity is not positive.
func NewMemoryStore(capacity int) *MemoryStore {
	if capacity <= 0 {
		panic("submission store capacity must be positive")
	}
	return &MemoryStore{
		capacity: capacity,
		items:    make(map[string]*list.Element),
		order:    list.New(),
	}
}

func (m *MemoryStore) Save(_ context.Context, s Submission) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if elem, ok := m.items[s.ID]; ok {
		elem.Value = s
		m.order.MoveToFront(elem)
		return nil
	}

	m.items[s.ID] = m.order.PushFront(s)
	if m.order.Len() > m.capacity {
		oldest := m.order.Back()
		m.order.Remove(oldest)
		delete(m.items, oldest.Value.(Submission).ID)
	}
	return nil
}

// Get returns ErrNotFound for unknown or evicted IDs.
func (m *MemoryStore) Get(_ context.Context, id string) (Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	elem, ok := m.items[id]
	if !ok {
		return Submission{}, ErrNotFound
	}
	m.order.MoveToFront(elem)
	return elem.Value.(Submission), nil
}

func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.order.Len()
}
