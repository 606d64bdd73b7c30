// Package history keeps the bounded, deduplicated record of submitted
// command lines and its recall cursor.
package history

import (
	"encoding/json"
	"sync"
)

const (
	// Capacity is the maximum number of retained entries.
	Capacity = 200
	// StorageKey is the key under which the JSON array is persisted.
	StorageKey = "info-daemon.term.history"
)

// Storage is a durable string key-value store.
type Storage interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// Logger receives persistence faults. They are never surfaced to the user.
type Logger interface {
	Printf(format string, args ...any)
}

// History is the command history buffer. Cursor is in [0, Len()]; Len()
// means "past the newest entry".
type History struct {
	entries []string
	cursor  int
	store   Storage
	logger  Logger
}

// New creates a history backed by store and loads any persisted entries.
// A nil store keeps history in memory only.
func New(store Storage, logger Logger) *History {
	h := &History{store: store, logger: logger}
	h.load()
	return h
}

func (h *History) load() {
	if h.store == nil {
		return
	}
	raw, ok, err := h.store.Get(StorageKey)
	if err != nil {
		h.logf("history: load: %v", err)
		return
	}
	if !ok || raw == "" {
		return
	}
	var entries []string
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		h.logf("history: decode stored history: %v", err)
		return
	}
	h.entries = tail(entries)
	h.cursor = len(h.entries)
}

// Push records line. Empty lines are ignored and a line equal to the newest
// entry is not stored twice; either way the cursor returns to the end.
func (h *History) Push(line string) {
	if line == "" {
		return
	}
	if n := len(h.entries); n > 0 && h.entries[n-1] == line {
		h.cursor = n
		return
	}
	h.entries = append(h.entries, line)
	if len(h.entries) > Capacity {
		h.entries = append([]string(nil), h.entries[len(h.entries)-Capacity:]...)
	}
	h.cursor = len(h.entries)
	h.persist()
}

func (h *History) persist() {
	if h.store == nil {
		return
	}
	data, err := json.Marshal(tail(h.entries))
	if err != nil {
		h.logf("history: encode: %v", err)
		return
	}
	if err := h.store.Set(StorageKey, string(data)); err != nil {
		h.logf("history: persist failed, continuing in memory: %v", err)
	}
}

// Previous moves the cursor one step toward the oldest entry and returns the
// entry under it. ok is false when the history is empty.
func (h *History) Previous() (line string, ok bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	if h.cursor > 0 {
		h.cursor--
	}
	return h.at(h.cursor), true
}

// Next moves the cursor one step toward the end. At the end it returns "".
// ok is false when the history is empty.
func (h *History) Next() (line string, ok bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	if h.cursor < len(h.entries) {
		h.cursor++
	}
	return h.at(h.cursor), true
}

func (h *History) at(i int) string {
	if i < 0 || i >= len(h.entries) {
		return ""
	}
	return h.entries[i]
}

// Entries returns a copy of the stored lines, oldest first.
func (h *History) Entries() []string {
	return append([]string(nil), h.entries...)
}

// Len returns the number of stored entries.
func (h *History) Len() int { return len(h.entries) }

// Cursor returns the recall cursor.
func (h *History) Cursor() int { return h.cursor }

func (h *History) logf(format string, args ...any) {
	if h.logger != nil {
		h.logger.Printf(format, args...)
	}
}

func tail(entries []string) []string {
	if len(entries) > Capacity {
		return entries[len(entries)-Capacity:]
	}
	return entries
}

// MemoryStorage is a Storage that lives only as long as the process.
type MemoryStorage struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryStorage returns an empty in-memory store.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string]string)}
}

// Get implements Storage.
func (m *MemoryStorage) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

// Set implements Storage.
func (m *MemoryStorage) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}
