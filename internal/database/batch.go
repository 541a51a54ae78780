package database

import (
	"context"
	"fmt"
)

// maxParams keeps every statement below the smallest bind limit of the
// supported drivers.
const maxParams = 900

// Batch accumulates rows for one table.
type Batch struct {
	Table   string
	Columns []string
	Rows    [][]any
}

func NewBatch(table string, columns ...string) *Batch {
	return &Batch{Table: table, Columns: columns}
}

func (b *Batch) Add(values ...any) {
	b.Rows = append(b.Rows, values)
}

func (b *Batch) Len() int {
	if b == nil {
		return 0
	}
	return len(b.Rows)
}

func (b *Batch) validate() error {
	if !validIdentifier.MatchString(b.Table) {
		return fmt.Errorf("invalid table name: %s", b.Table)
	}
	if len(b.Columns) == 0 {
		return fmt.Errorf("batch for %s has no columns", b.Table)
	}
	for _, col := range b.Columns {
		if !validIdentifier.MatchString(col) {
			return fmt.Errorf("invalid column name in table %s: %s", b.Table, col)
		}
	}
	for i, row := range b.Rows {
		if len(row) != len(b.Columns) {
			return fmt.Errorf("batch for %s: row %d has %d values, want %d", b.Table, i, len(row), len(b.Columns))
		}
	}
	return nil
}

// Flush inserts every row of every batch, in order, inside one transaction.
// Nothing is kept when any insert fails.
func (s *Store) Flush(ctx context.Context, batches ...*Batch) error {
	total := 0
	for _, b := range batches {
		if b.Len() == 0 {
			continue
		}
		if err := b.validate(); err != nil {
			return err
		}
		total += b.Len()
	}
	if total == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, b := range batches {
		if b.Len() == 0 {
			continue
		}
		chunk := maxParams / len(b.Columns)
		if chunk < 1 {
			chunk = 1
		}
		for start := 0; start < len(b.Rows); start += chunk {
			end := min(start+chunk, len(b.Rows))

			insert := s.qb.Insert(b.Table).Columns(b.Columns...)
			for _, row := range b.Rows[start:end] {
				insert = insert.Values(row...)
			}
			query, args, err := insert.ToSql()
			if err != nil {
				return fmt.Errorf("failed to build insert for %s: %w", b.Table, err)
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("failed to insert into %s: %w", b.Table, err)
			}
		}
		s.log.Debug("batch inserted", "table", b.Table, "rows", b.Len())
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
