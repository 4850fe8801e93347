package scores

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
)

// Store is a Board backed by a JSON file. It is safe for concurrent use.
type Store struct {
	mu     sync.Mutex
	path   string
	board  *Board
	logger *log.Logger
}

// Open loads the board at path. A missing file yields an empty board; an
// unreadable one is logged and also treated as empty.
func Open(path string, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	entries, err := Load(path)
	if err != nil {
		logger.Warn("ignoring unreadable score file", "path", path, "err", err)
		entries = nil
	}
	return &Store{
		path:   path,
		board:  NewBoard(entries),
		logger: logger,
	}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Entries returns the current board, best first.
func (s *Store) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.Entries()
}

// Qualifies reports whether score would enter the board.
func (s *Store) Qualifies(score int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.Qualifies(score)
}

// Record inserts the score if it still qualifies and rewrites the file.
// It reports whether the score made the board. The board in memory only
// changes once the file is written.
func (s *Store) Record(name string, score int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.board.Clone()
	if !next.Insert(name, score) {
		return false, nil
	}
	if err := Save(s.path, next.Entries()); err != nil {
		return false, err
	}
	s.board = next
	s.logger.Info("score recorded", "name", name, "score", score)
	return true, nil
}

// Load reads entries from path. A missing file is not an error.
func Load(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read scores: %w", err)
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode scores: %w", err)
	}
	return NewBoard(entries).Entries(), nil
}

// Save writes entries to path through a temporary file in the same directory.
func Save(path string, entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode scores: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".scores-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod scores: %w", err)
	}
	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("write scores: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close scores: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace scores: %w", err)
	}
	return nil
}
