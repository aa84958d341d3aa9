package workspace

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Store defines the interface for workspace and membership operations.
type Store interface {
	Create(ctx context.Context, name, ownerID string) (*Workspace, error)
	Get(ctx context.Context, id string) (*Workspace, error)
	ListForUser(ctx context.Context, userID string) ([]*Workspace, error)
	RoleOf(ctx context.Context, workspaceID, userID string) (Role, bool, error)
}

// PostgresStore implements Store for PostgreSQL.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore creates a new PostgresStore and ensures the workspace
// tables exist.
func NewPostgresStore(db *sqlx.DB) (*PostgresStore, error) {
	schema := `
	CREATE TABLE IF NOT EXISTS workspaces (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		owner_id UUID NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create workspaces table: %w", err)
	}

	schema = `
	CREATE TABLE IF NOT EXISTS workspace_members (
		id UUID PRIMARY KEY,
		workspace_id UUID NOT NULL REFERENCES workspaces(id) ON DELETE CASCADE,
		user_id UUID NOT NULL,
		role TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (workspace_id, user_id)
	);
	`
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create workspace_members table: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

// Create inserts a workspace and its owner membership in one transaction,
// so a workspace can never exist without its owner as member.
func (s *PostgresStore) Create(ctx context.Context, name, ownerID string) (*Workspace, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	ws := &Workspace{
		ID:      uuid.NewString(),
		Name:    name,
		OwnerID: ownerID,
	}
	err = tx.QueryRowContext(ctx,
		`INSERT INTO workspaces (id, name, owner_id) VALUES ($1, $2, $3)
		 RETURNING created_at, updated_at`,
		ws.ID, ws.Name, ws.OwnerID,
	).Scan(&ws.CreatedAt, &ws.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert workspace: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO workspace_members (id, workspace_id, user_id, role) VALUES ($1, $2, $3, $4)`,
		uuid.NewString(), ws.ID, ownerID, RoleOwner)
	if err != nil {
		return nil, fmt.Errorf("failed to insert owner membership: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit workspace creation: %w", err)
	}
	return ws, nil
}

// Get retrieves a workspace by id. Returns nil when not found.
func (s *PostgresStore) Get(ctx context.Context, id string) (*Workspace, error) {
	var ws Workspace
	err := s.db.GetContext(ctx, &ws,
		`SELECT id, name, owner_id, created_at, updated_at FROM workspaces WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}
	return &ws, nil
}

// ListForUser returns all workspaces the user is a member of, most recently
// updated first.
func (s *PostgresStore) ListForUser(ctx context.Context, userID string) ([]*Workspace, error) {
	var workspaces []*Workspace
	err := s.db.SelectContext(ctx, &workspaces,
		`SELECT w.id, w.name, w.owner_id, w.created_at, w.updated_at
		 FROM workspaces w
		 JOIN workspace_members m ON m.workspace_id = w.id
		 WHERE m.user_id = $1
		 ORDER BY w.updated_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list workspaces: %w", err)
	}
	return workspaces, nil
}

// RoleOf returns the user's role in the workspace and whether they are a
// member at all.
func (s *PostgresStore) RoleOf(ctx context.Context, workspaceID, userID string) (Role, bool, error) {
	var role Role
	err := s.db.GetContext(ctx, &role,
		`SELECT role FROM workspace_members WHERE workspace_id = $1 AND user_id = $2`,
		workspaceID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get membership: %w", err)
	}
	return role, true, nil
}
