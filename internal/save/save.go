package save

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vraelian/experimental-sub000/internal/game"
)

// ErrNoSave is returned when the named slot has never been written.
var ErrNoSave = errors.New("no save in that slot")

// Store persists full state snapshots by slot name. The route table is not
// part of a snapshot; the engine regenerates it on restore.
type Store interface {
	Save(slot string, snap game.Snapshot) error
	Load(slot string) (game.Snapshot, error)
	Delete(slot string) error
	List() ([]string, error)
}

// FileStore keeps one JSON file per slot under a data directory.
type FileStore struct {
	mu  sync.RWMutex
	dir string
}

func NewFileStore(dataDir string) (*FileStore, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dataDir}, nil
}

func (s *FileStore) path(slot string) string {
	return filepath.Join(s.dir, slot+".json")
}

func (s *FileStore) Save(slot string, snap game.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode save: %w", err)
	}

	// Write-then-rename keeps a crash from truncating the previous save.
	tmp := s.path(slot) + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path(slot))
}

func (s *FileStore) Load(slot string) (game.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, err := os.ReadFile(s.path(slot))
	if err != nil {
		if os.IsNotExist(err) {
			return game.Snapshot{}, ErrNoSave
		}
		return game.Snapshot{}, err
	}
	var snap game.Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return game.Snapshot{}, fmt.Errorf("decode save: %w", err)
	}
	return snap, nil
}

func (s *FileStore) Delete(slot string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(slot)); err != nil {
		if os.IsNotExist(err) {
			return ErrNoSave
		}
		return err
	}
	return nil
}

func (s *FileStore) List() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	var slots []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		slots = append(slots, e.Name()[:len(e.Name())-len(".json")])
	}
	return slots, nil
}

// MemoryStore is the in-memory Store used by tests.
type MemoryStore struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{slots: map[string][]byte{}}
}

func (s *MemoryStore) Save(slot string, snap game.Snapshot) error {
	b, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[slot] = b
	return nil
}

func (s *MemoryStore) Load(slot string) (game.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.slots[slot]
	if !ok {
		return game.Snapshot{}, ErrNoSave
	}
	var snap game.Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return game.Snapshot{}, err
	}
	return snap, nil
}

func (s *MemoryStore) Delete(slot string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.slots[slot]; !ok {
		return ErrNoSave
	}
	delete(s.slots, slot)
	return nil
}

func (s *MemoryStore) List() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var slots []string
	for slot := range s.slots {
		slots = append(slots, slot)
	}
	return slots, nil
}
