package cache

import (
	"container/list"
	"sync"
)

const defaultMemoCapacity = 256

// Memo is a small identity-keyed LRU used to memoize pure derivations per
// input object. Keys are compared by Go equality, so pointer keys give the
// reference-identity semantics selectors rely on: a refetched season is a new
// pointer and naturally misses. The bounded capacity keeps replaced seasons
// from pinning their derived views forever.
type Memo struct {
	mu       sync.Mutex
	capacity int
	order    *list.List
	entries  map[any]*list.Element
}

type memoEntry struct {
	key   any
	value any
}

// NewMemo constructs a Memo. A capacity <= 0 uses the default.
func NewMemo(capacity int) *Memo {
	if capacity <= 0 {
		capacity = defaultMemoCapacity
	}
	return &Memo{
		capacity: capacity,
		order:    list.New(),
		entries:  make(map[any]*list.Element),
	}
}

// Get returns the memoized value for key and marks it recently used.
func (m *Memo) Get(key any) (any, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	el, ok := m.entries[key]
	if !ok {
		return nil, false
	}
	m.order.MoveToFront(el)
	return el.Value.(*memoEntry).value, true
}

// Set stores a value for key, evicting the least recently used entry when
// the capacity is exceeded.
func (m *Memo) Set(key, value any) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if el, ok := m.entries[key]; ok {
		el.Value.(*memoEntry).value = value
		m.order.MoveToFront(el)
		return
	}

	el := m.order.PushFront(&memoEntry{key: key, value: value})
	m.entries[key] = el

	if m.order.Len() > m.capacity {
		oldest := m.order.Back()
		if oldest != nil {
			m.order.Remove(oldest)
			delete(m.entries, oldest.Value.(*memoEntry).key)
		}
	}
}

// Len reports the number of memoized entries.
func (m *Memo) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.order.Len()
}
