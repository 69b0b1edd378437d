package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ZaydAbdullayev/bubbles/internal/bubble"
	"github.com/ZaydAbdullayev/bubbles/internal/field"
)

const priorFile = "bubbles.json"

// Store keeps the bubbles a field left behind so the next visit can resume
// them.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Path() string {
	return filepath.Join(s.baseDir, priorFile)
}

// LoadPrior returns the previous session's bubbles. Missing, unreadable or
// malformed state yields an empty collection; individual records without a
// key, with a duplicate key, or with an out-of-range position are dropped.
func (s *Store) LoadPrior() []bubble.Bubble {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("store: reading prior state: %v", err)
		}
		return []bubble.Bubble{}
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		log.Printf("store: ignoring malformed prior state: %v", err)
		return []bubble.Bubble{}
	}

	out := make([]bubble.Bubble, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for i, msg := range raw {
		var b bubble.Bubble
		if err := json.Unmarshal(msg, &b); err != nil {
			log.Printf("store: skipping record %d: %v", i, err)
			continue
		}
		if b.Key == "" || !b.InBounds() {
			continue
		}
		if _, dup := seen[b.Key]; dup {
			continue
		}
		seen[b.Key] = struct{}{}
		out = append(out, b)
	}
	return field.Trim(out, field.DefaultMaxBubbles)
}

// SavePrior writes the collection, capped to the most recent bubbles.
func (s *Store) SavePrior(bubbles []bubble.Bubble) error {
	if err := s.Init(); err != nil {
		return fmt.Errorf("store: creating %s: %w", s.baseDir, err)
	}
	data, err := json.MarshalIndent(field.Trim(bubbles, field.DefaultMaxBubbles), "", "  ")
	if err != nil {
		return fmt.Errorf("store: encoding bubbles: %w", err)
	}

	tmp := s.Path() + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("store: writing prior state: %w", err)
	}
	if err := os.Rename(tmp, s.Path()); err != nil {
		return fmt.Errorf("store: replacing prior state: %w", err)
	}
	return nil
}

// Reset removes any saved state.
func (s *Store) Reset() error {
	if err := os.Remove(s.Path()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("store: removing prior state: %w", err)
	}
	return nil
}
