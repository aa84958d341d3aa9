package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Store defines the interface for item catalog operations.
type Store interface {
	GetOrCreate(ctx context.Context, workspaceID, rawName string) (*Item, bool, error)
	GetByID(ctx context.Context, id string) (*Item, error)
}

// PostgresStore implements Store for PostgreSQL.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore creates a new PostgresStore and ensures the items table
// exists. The partial schema here depends on the workspaces table, so wire
// stores in dependency order.
func NewPostgresStore(db *sqlx.DB) (*PostgresStore, error) {
	schema := `
	CREATE TABLE IF NOT EXISTS items (
		id UUID PRIMARY KEY,
		workspace_id UUID NOT NULL REFERENCES workspaces(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		normalized_name TEXT NOT NULL,
		icon_key TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (workspace_id, normalized_name)
	);
	`
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create items table: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

// GetOrCreate resolves a raw item name to a catalog row, creating it on
// first reference. The raw name is preserved for display; the normalized
// form is the uniqueness key. When two callers race on the same name, the
// (workspace_id, normalized_name) constraint rejects the second insert and
// we retry as a lookup.
func (s *PostgresStore) GetOrCreate(ctx context.Context, workspaceID, rawName string) (*Item, bool, error) {
	normalized := NormalizeName(rawName)
	if normalized == "" {
		return nil, false, fmt.Errorf("item name is empty after normalization")
	}

	item, err := s.getByNormalizedName(ctx, workspaceID, normalized)
	if err != nil {
		return nil, false, err
	}
	if item != nil {
		return item, false, nil
	}

	created := &Item{
		ID:             uuid.NewString(),
		WorkspaceID:    workspaceID,
		Name:           rawName,
		NormalizedName: normalized,
		IconKey:        GuessIconKey(rawName),
	}
	err = s.db.QueryRowContext(ctx,
		`INSERT INTO items (id, workspace_id, name, normalized_name, icon_key)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at, updated_at`,
		created.ID, created.WorkspaceID, created.Name, created.NormalizedName, created.IconKey,
	).Scan(&created.CreatedAt, &created.UpdatedAt)
	if err == nil {
		return created, true, nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		// Lost the race; the row exists now.
		item, lookupErr := s.getByNormalizedName(ctx, workspaceID, normalized)
		if lookupErr != nil {
			return nil, false, lookupErr
		}
		if item != nil {
			return item, false, nil
		}
	}
	return nil, false, fmt.Errorf("failed to insert item: %w", err)
}

// GetByID retrieves an item by id. Returns nil when not found.
func (s *PostgresStore) GetByID(ctx context.Context, id string) (*Item, error) {
	var item Item
	err := s.db.GetContext(ctx, &item,
		`SELECT id, workspace_id, name, normalized_name, icon_key, created_at, updated_at
		 FROM items WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return &item, nil
}

func (s *PostgresStore) getByNormalizedName(ctx context.Context, workspaceID, normalized string) (*Item, error) {
	var item Item
	err := s.db.GetContext(ctx, &item,
		`SELECT id, workspace_id, name, normalized_name, icon_key, created_at, updated_at
		 FROM items WHERE workspace_id = $1 AND normalized_name = $2`,
		workspaceID, normalized)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up item by normalized name: %w", err)
	}
	return &item, nil
}
