package metrics

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gobblet/game"
)

// Sink accepts finished game records for persistence.
type Sink interface {
	Save(records ...GameRecord) error
}

// JSONStore keeps every saved record in memory and mirrors the full list to a
// single JSON array file on each save.
type JSONStore struct {
	mu    sync.Mutex
	path  string
	games []GameRecord
}

// NewJSONStore opens the store at path, loading any records already there.
func NewJSONStore(path string) (*JSONStore, error) {
	s := &JSONStore{path: path}
	if _, err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *JSONStore) Path() string {
	return s.path
}

// Load replaces the in-memory records with the file contents. A missing file
// is an empty store.
func (s *JSONStore) Load() ([]GameRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		s.games = nil
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}
	var games []GameRecord
	if err := json.Unmarshal(data, &games); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", s.path, err)
	}
	s.games = games
	return append([]GameRecord(nil), games...), nil
}

func (s *JSONStore) Save(records ...GameRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.games = append(s.games, records...)
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", s.path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s.games); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.path, err)
	}
	return nil
}

func (s *JSONStore) Games() []GameRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]GameRecord(nil), s.games...)
}

// ByWinner filters on the winning color; nil selects draws.
func (s *JSONStore) ByWinner(winner *game.Color) []GameRecord {
	return s.filter(func(r GameRecord) bool {
		if winner == nil {
			return r.Winner == nil
		}
		return r.WonBy(*winner)
	})
}

// ByStrategy selects games where color was played by strategy.
func (s *JSONStore) ByStrategy(color game.Color, strategy string) []GameRecord {
	return s.filter(func(r GameRecord) bool {
		name, ok := r.PlayerStrategies[color]
		return ok && name == strategy
	})
}

func (s *JSONStore) filter(keep func(GameRecord) bool) []GameRecord {
	var matched []GameRecord
	for _, r := range s.Games() {
		if keep(r) {
			matched = append(matched, r)
		}
	}
	return matched
}

// Statistics folds every stored record the same way a batch is summarized.
func (s *JSONStore) Statistics() BatchSummary {
	return SummarizeRecords(s.Games())
}
