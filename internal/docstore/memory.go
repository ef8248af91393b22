package docstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/ymatsui/kijun/internal/userdata"
)

// MemoryStore is an in-memory Client for tests. It supports failure
// injection so sync behavior under an unreachable store can be
// exercised without a database.
type MemoryStore struct {
	mu        sync.Mutex
	docs      map[string]userdata.Data
	listeners map[string]map[string]func(userdata.Data)

	// FailLoads / FailWrites make the corresponding operations return
	// a connectivity error while set.
	FailLoads  bool
	FailWrites bool

	Writes int // number of successful Write calls
}

var _ Client = (*MemoryStore)(nil)

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		docs:      make(map[string]userdata.Data),
		listeners: make(map[string]map[string]func(userdata.Data)),
	}
}

func (m *MemoryStore) Load(_ context.Context, accountID string) (userdata.Data, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailLoads {
		return userdata.Data{}, fmt.Errorf("%w: injected load failure", ErrUnavailable)
	}
	d, ok := m.docs[accountID]
	if !ok {
		return userdata.Data{}, ErrNotFound
	}
	return d.Clone(), nil
}

func (m *MemoryStore) Write(_ context.Context, accountID string, d userdata.Data) error {
	m.mu.Lock()
	if m.FailWrites {
		m.mu.Unlock()
		return fmt.Errorf("%w: injected write failure", ErrUnavailable)
	}
	d = userdata.Coerce(d).Clone()
	m.docs[accountID] = d
	m.Writes++
	fns := make([]func(userdata.Data), 0, len(m.listeners[accountID]))
	for _, fn := range m.listeners[accountID] {
		fns = append(fns, fn)
	}
	m.mu.Unlock()

	for _, fn := range fns {
		fn(d.Clone())
	}
	return nil
}

func (m *MemoryStore) Subscribe(accountID string, onChange func(userdata.Data)) (func(), error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.listeners[accountID] == nil {
		m.listeners[accountID] = make(map[string]func(userdata.Data))
	}
	id := uuid.NewString()
	m.listeners[accountID][id] = onChange

	return func() {
		m.mu.Lock()
		delete(m.listeners[accountID], id)
		m.mu.Unlock()
	}, nil
}

// Doc returns the stored document for an account, for assertions.
func (m *MemoryStore) Doc(accountID string) (userdata.Data, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.docs[accountID]
	if !ok {
		return userdata.Data{}, false
	}
	return d.Clone(), true
}

// Push simulates a document change arriving from elsewhere (another
// device writing to the same account).
func (m *MemoryStore) Push(accountID string, d userdata.Data) {
	m.mu.Lock()
	d = userdata.Coerce(d).Clone()
	m.docs[accountID] = d
	fns := make([]func(userdata.Data), 0, len(m.listeners[accountID]))
	for _, fn := range m.listeners[accountID] {
		fns = append(fns, fn)
	}
	m.mu.Unlock()

	for _, fn := range fns {
		fn(d.Clone())
	}
}

// ListenerCount reports the active subscriptions for an account.
func (m *MemoryStore) ListenerCount(accountID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.listeners[accountID])
}
