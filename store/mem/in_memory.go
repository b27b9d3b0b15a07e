package mem

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/warriorguo/flowedit/store"
)

var (
	_ store.Store = &memStore{}
)

func NewMemStore() store.Store {
	return &memStore{
		m: make(map[string][]byte),
		// setup no error as default
		mockErrHandler: defaultNoErr,
	}
}

/**
 * NewMemStoreWithErrHandler lets tests simulate an unavailable or full
 * storage: when errHandler returns an error, the operation fails and
 * Set leaves the stored value untouched.
 */
func NewMemStoreWithErrHandler(errHandler func() error) store.Store {
	return &memStore{
		m:              make(map[string][]byte),
		mockErrHandler: errHandler,
	}
}

func defaultNoErr() error {
	return nil
}

/**
 * memStore is store implementation based on pure memory, it aims to provide a method for debug & testing
 * NEVER use it in the Production!
 */
type memStore struct {
	mu sync.Mutex

	mockErrHandler func() error

	m map[string][]byte
}

func (m *memStore) String() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	keys := make([]string, 0, len(m.m))
	for key := range m.m {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	s := "\n----------\n"
	for _, key := range keys {
		s += fmt.Sprintf("%s: %s\n", key, string(m.m[key]))
	}
	s += "----------\n"
	return s
}

func (m *memStore) Get(ctx context.Context, prefix, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.mockErrHandler(); err != nil {
		return nil, err
	}
	return m.m[prefix+"|"+key], nil
}

func (m *memStore) Set(ctx context.Context, prefix, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.mockErrHandler(); err != nil {
		return err
	}
	m.m[prefix+"|"+key] = value
	return nil
}

func (m *memStore) Remove(ctx context.Context, prefix, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.mockErrHandler(); err != nil {
		return err
	}
	delete(m.m, prefix+"|"+key)
	return nil
}
