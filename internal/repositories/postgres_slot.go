package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
)

// PostgresSlot stores the payload in one row of the storage_slots table.
// The caller opens db with the "postgres" driver (github.com/lib/pq).
type PostgresSlot struct {
	db   *sql.DB
	name string

	schemaMu    sync.Mutex
	schemaReady bool
}

func NewPostgresSlot(db *sql.DB, name string) *PostgresSlot {
	if name == "" {
		name = DefaultSlotName
	}
	return &PostgresSlot{db: db, name: name}
}

// EnsureSchema creates the storage_slots table if it does not exist. Read
// and Write call it until it has succeeded once, so a database that was down
// at startup is picked up later.
func (s *PostgresSlot) EnsureSchema(ctx context.Context) error {
	s.schemaMu.Lock()
	defer s.schemaMu.Unlock()
	if s.schemaReady {
		return nil
	}

	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS storage_slots (
			name       TEXT PRIMARY KEY,
			payload    TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		return fmt.Errorf("create storage_slots: %w", err)
	}
	s.schemaReady = true
	return nil
}

func (s *PostgresSlot) Name() string { return s.name }

func (s *PostgresSlot) Read(ctx context.Context) ([]byte, error) {
	if err := s.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("read slot %s: %w", s.name, err)
	}
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM storage_slots WHERE name = $1`, s.name).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSlotEmpty
		}
		return nil, fmt.Errorf("read slot %s: %w", s.name, err)
	}
	return []byte(payload), nil
}

func (s *PostgresSlot) Write(ctx context.Context, data []byte) error {
	if err := s.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("write slot %s: %w", s.name, err)
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO storage_slots (name, payload, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (name) DO UPDATE SET payload = EXCLUDED.payload, updated_at = NOW()`,
		s.name, string(data))
	if err != nil {
		return fmt.Errorf("write slot %s: %w", s.name, err)
	}
	return nil
}
