package backup

import (
	"context"
	"fmt"
	"time"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Build captures every table in one read transaction.
func (s *Service) Build(ctx context.Context) (*Snapshot, error) {
	snapshot := &Snapshot{
		Version:    Version,
		ExportedAt: s.now().UTC().Format(time.RFC3339),
		Data:       make(map[string][]Row, len(InsertOrder)),
	}

	err := s.repo.Transaction(ctx, func(tx Repository) error {
		for _, table := range InsertOrder {
			rows, err := tx.DumpTable(ctx, table.Name)
			if err != nil {
				return fmt.Errorf("dump %s: %w", table.Name, err)
			}
			if rows == nil {
				rows = []Row{}
			}
			snapshot.Data[table.Key] = rows
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

// Restore replaces all data with the snapshot contents. Tables are cleared
// child first, their autoincrement counters are reset, and rows are inserted
// parent first with their original primary keys. An optional table whose key
// is absent from the snapshot keeps its rows. Any failure rolls the whole
// operation back.
func (s *Service) Restore(ctx context.Context, snapshot *Snapshot) (Counts, error) {
	if snapshot == nil {
		return nil, invalid("Payload is not an object")
	}
	if snapshot.Version != Version {
		return nil, invalid("Unsupported backup version: %d", snapshot.Version)
	}

	included := func(table Table) bool {
		if !table.Optional {
			return true
		}
		_, ok := snapshot.Data[table.Key]
		return ok
	}

	counts := make(Counts, len(InsertOrder))
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		cleared := make([]string, 0, len(DeleteOrder))
		for _, table := range DeleteOrder {
			if !included(table) {
				continue
			}
			if err := tx.ClearTable(ctx, table.Name); err != nil {
				return fmt.Errorf("clear %s: %w", table.Name, err)
			}
			cleared = append(cleared, table.Name)
		}
		if err := tx.ResetSequences(ctx, cleared); err != nil {
			return fmt.Errorf("reset sequences: %w", err)
		}
		for _, table := range InsertOrder {
			if !included(table) {
				continue
			}
			rows := snapshot.Data[table.Key]
			if len(rows) > 0 {
				if err := tx.InsertRows(ctx, table.Name, rows); err != nil {
					return fmt.Errorf("insert %s: %w", table.Name, err)
				}
			}
			counts[table.Key] = len(rows)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return counts, nil
}

// RestoreJSON decodes, validates and restores a raw payload.
func (s *Service) RestoreJSON(ctx context.Context, raw []byte) (Counts, error) {
	snapshot, err := Decode(raw)
	if err != nil {
		return nil, err
	}
	return s.Restore(ctx, snapshot)
}

// Filename names a snapshot taken now.
func (s *Service) Filename() string {
	return Filename(s.now())
}
