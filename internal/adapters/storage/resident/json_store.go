package resident

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	domain "societydesk/internal/domain/resident"
)

// JSONStore implements Store over a flat JSON file holding an array of
// resident records. The whole collection is cached in memory at load and the
// file is rewritten wholesale on every Save.
type JSONStore struct {
	path string

	mu    sync.RWMutex
	index map[string]domain.Resident
	order []string // resident IDs in file order; preserved across rewrites
}

// NewJSONStore loads the resident file and builds the in-memory index.
// PRE: path points to a readable JSON array of resident records
// POST: Returns a ready store, or an error if the file is missing or malformed
func NewJSONStore(path string) (*JSONStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read resident file %s: %w", path, err)
	}
	var records []domain.Resident
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse resident file %s: %w", path, err)
	}

	s := &JSONStore{
		path:  path,
		index: make(map[string]domain.Resident, len(records)),
	}
	for _, r := range records {
		if _, seen := s.index[r.ResidentID]; !seen {
			s.order = append(s.order, r.ResidentID)
		}
		s.index[r.ResidentID] = r
	}
	return s, nil
}

// GetByID retrieves a Resident by its ID.
// PRE: id is non-empty
// POST: Returns the record or ErrNotFound
func (s *JSONStore) GetByID(_ context.Context, id string) (domain.Resident, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.index[id]
	if !ok {
		return domain.Resident{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return r, nil
}

// List returns all residents in file order.
// INVARIANT: Order matches the order records were first loaded or added
func (s *JSONStore) List(_ context.Context) ([]domain.Resident, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Resident, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.index[id])
	}
	return out, nil
}

// Save upserts a resident and rewrites the whole file.
// PRE: value has been validated
// POST: In-memory index and the backing file both hold the new record
func (s *JSONStore) Save(_ context.Context, value domain.Resident) error {
	if err := value.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.index[value.ResidentID]; !exists {
		s.order = append(s.order, value.ResidentID)
	}
	s.index[value.ResidentID] = value
	return s.persistLocked()
}

// persistLocked serializes all records, human-readably indented, to a temp
// file in the same directory and renames it over the original so a crash
// mid-write cannot leave a truncated file.
// PRE: s.mu is held for writing
func (s *JSONStore) persistLocked() error {
	records := make([]domain.Resident, 0, len(s.order))
	for _, id := range s.order {
		records = append(records, s.index[id])
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode resident file: %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("write resident file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write resident file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write resident file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace resident file: %w", err)
	}
	return nil
}
