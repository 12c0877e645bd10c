package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// maxEntries caps the history file; the oldest entries are dropped first.
const maxEntries = 1000

// Entry records one successful checkout.
type Entry struct {
	Repo         string    `json:"repo"`
	Branch       string    `json:"branch"`
	From         string    `json:"from,omitempty"`
	CheckedOutAt time.Time `json:"checked_out_at"`
}

// HistoryStore implements checkout history storage using a local JSON file.
type HistoryStore struct {
	mu  sync.Mutex
	dir string
	now func() time.Time
}

// NewHistoryStore creates a history store at the given directory.
func NewHistoryStore(dir string) *HistoryStore {
	return &HistoryStore{dir: dir, now: time.Now}
}

func (s *HistoryStore) filePath() string {
	return filepath.Join(s.dir, "history.json")
}

// Append adds an entry to the history, stamping it with the current time.
func (s *HistoryStore) Append(e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.readUnsafe()
	if err != nil {
		entries = nil // Start fresh if file is corrupted
	}

	e.CheckedOutAt = s.now()
	entries = append(entries, e)
	if len(entries) > maxEntries {
		entries = entries[len(entries)-maxEntries:]
	}

	return s.writeUnsafe(entries)
}

// List returns all entries, oldest first.
func (s *HistoryStore) List() ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.readUnsafe()
}

// Recent returns up to n entries, newest first. An empty repo matches every
// repository; n <= 0 returns them all.
func (s *HistoryStore) Recent(repo string, n int) ([]Entry, error) {
	entries, err := s.List()
	if err != nil {
		return nil, err
	}

	var out []Entry
	for _, e := range entries {
		if repo == "" || e.Repo == repo {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CheckedOutAt.After(out[j].CheckedOutAt)
	})

	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out, nil
}

// Clear removes all entries.
func (s *HistoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.writeUnsafe(nil)
}

func (s *HistoryStore) readUnsafe() ([]Entry, error) {
	data, err := os.ReadFile(s.filePath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse history: %w", err)
	}
	return entries, nil
}

func (s *HistoryStore) writeUnsafe(entries []Entry) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}

	return os.WriteFile(s.filePath(), data, 0o644)
}
