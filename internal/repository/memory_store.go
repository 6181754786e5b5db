package repository

import (
	"context"
	"fmt"
	"slices"
	"sync"
)

type memorySheet struct {
	header []string
	rows   [][]string
}

// MemoryStore is a process-local RowStore. It backs DB_DRIVER=memory and the unit tests.
type MemoryStore struct {
	mu     sync.RWMutex
	sheets map[string]*memorySheet
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sheets: make(map[string]*memorySheet)}
}

func (s *MemoryStore) EnsureSheet(_ context.Context, sheet string, header []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sheets[sheet]; !ok {
		s.sheets[sheet] = &memorySheet{header: slices.Clone(header)}
	}
	return nil
}

func (s *MemoryStore) FetchAll(_ context.Context, sheet string) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sh, err := s.sheet(sheet)
	if err != nil {
		return nil, err
	}
	out := make([]Record, 0, len(sh.rows))
	for _, row := range sh.rows {
		out = append(out, toRecord(sh.header, row))
	}
	return out, nil
}

func (s *MemoryStore) Header(_ context.Context, sheet string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sh, err := s.sheet(sheet)
	if err != nil {
		return nil, err
	}
	return slices.Clone(sh.header), nil
}

func (s *MemoryStore) AppendRow(_ context.Context, sheet string, values []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sh, err := s.sheet(sheet)
	if err != nil {
		return err
	}
	sh.rows = append(sh.rows, slices.Clone(values))
	return nil
}

func (s *MemoryStore) UpdateCell(_ context.Context, sheet string, row, col int, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sh, err := s.sheet(sheet)
	if err != nil {
		return err
	}
	if row < 2 || row-2 >= len(sh.rows) || col < 1 || col > len(sh.header) {
		return fmt.Errorf("%s!R%dC%d: %w", sheet, row, col, ErrCellOutOfRange)
	}
	cells := sh.rows[row-2]
	for len(cells) < col {
		cells = append(cells, "")
	}
	cells[col-1] = value
	sh.rows[row-2] = cells
	return nil
}

func (s *MemoryStore) sheet(name string) (*memorySheet, error) {
	sh, ok := s.sheets[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrSheetNotFound)
	}
	return sh, nil
}
