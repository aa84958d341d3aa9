package list

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"bringer/internal/catalog"
)

// ErrDuplicateEntry is returned when a single add targets an item already
// present in the list. Bulk merges skip duplicates silently instead.
var ErrDuplicateEntry = errors.New("item is already in the list")

// Store defines the interface for shopping list operations.
type Store interface {
	Create(ctx context.Context, workspaceID, name, createdBy string) (*ShoppingList, error)
	Get(ctx context.Context, id string) (*ShoppingList, error)
	ListByWorkspace(ctx context.Context, workspaceID string) ([]*ShoppingList, error)
	Delete(ctx context.Context, id string) error
	Entries(ctx context.Context, listID string) ([]*Entry, error)
	AddEntry(ctx context.Context, listID string, entry NewEntry) (*Entry, error)
	AppendEntries(ctx context.Context, listID string, entries []NewEntry) (int, error)
	UpdateEntry(ctx context.Context, entryID string, patch EntryPatch) error
	DeleteEntry(ctx context.Context, entryID string) error
	GetEntry(ctx context.Context, entryID string) (*Entry, error)
}

// PostgresStore implements Store for PostgreSQL.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore creates a new PostgresStore and ensures the shopping
// list tables exist.
func NewPostgresStore(db *sqlx.DB) (*PostgresStore, error) {
	schema := `
	CREATE TABLE IF NOT EXISTS shopping_lists (
		id UUID PRIMARY KEY,
		workspace_id UUID NOT NULL REFERENCES workspaces(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		created_by UUID NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create shopping_lists table: %w", err)
	}

	schema = `
	CREATE TABLE IF NOT EXISTS shopping_list_entries (
		id UUID PRIMARY KEY,
		list_id UUID NOT NULL REFERENCES shopping_lists(id) ON DELETE CASCADE,
		item_id UUID NOT NULL REFERENCES items(id),
		note TEXT NOT NULL DEFAULT '',
		checked BOOLEAN NOT NULL DEFAULT false,
		position INTEGER NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (list_id, item_id)
	);
	`
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create shopping_list_entries table: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

// Create inserts a new shopping list.
func (s *PostgresStore) Create(ctx context.Context, workspaceID, name, createdBy string) (*ShoppingList, error) {
	l := &ShoppingList{
		ID:          uuid.NewString(),
		WorkspaceID: workspaceID,
		Name:        name,
		CreatedBy:   createdBy,
	}
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO shopping_lists (id, workspace_id, name, created_by)
		 VALUES ($1, $2, $3, $4) RETURNING created_at, updated_at`,
		l.ID, l.WorkspaceID, l.Name, l.CreatedBy,
	).Scan(&l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert shopping list: %w", err)
	}
	return l, nil
}

// Get retrieves a shopping list by id. Returns nil when not found.
func (s *PostgresStore) Get(ctx context.Context, id string) (*ShoppingList, error) {
	var l ShoppingList
	err := s.db.GetContext(ctx, &l,
		`SELECT id, workspace_id, name, created_by, created_at, updated_at
		 FROM shopping_lists WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get shopping list: %w", err)
	}
	return &l, nil
}

// ListByWorkspace returns a workspace's lists, most recently updated first.
func (s *PostgresStore) ListByWorkspace(ctx context.Context, workspaceID string) ([]*ShoppingList, error) {
	var lists []*ShoppingList
	err := s.db.SelectContext(ctx, &lists,
		`SELECT id, workspace_id, name, created_by, created_at, updated_at
		 FROM shopping_lists WHERE workspace_id = $1 ORDER BY updated_at DESC`,
		workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shopping lists: %w", err)
	}
	return lists, nil
}

// Delete removes a list; entries cascade.
func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM shopping_lists WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete shopping list: %w", err)
	}
	return nil
}

// Entries returns a list's entries with their items, ordered by position
// then insertion order.
func (s *PostgresStore) Entries(ctx context.Context, listID string) ([]*Entry, error) {
	rows, err := s.db.QueryxContext(ctx,
		`SELECT e.id, e.list_id, e.item_id, e.note, e.checked, e.position, e.created_at, e.updated_at,
		        i.id, i.workspace_id, i.name, i.normalized_name, i.icon_key, i.created_at, i.updated_at
		 FROM shopping_list_entries e
		 JOIN items i ON i.id = e.item_id
		 WHERE e.list_id = $1
		 ORDER BY e.position ASC, e.created_at ASC`, listID)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		var e Entry
		var item catalog.Item
		err := rows.Scan(
			&e.ID, &e.ListID, &e.ItemID, &e.Note, &e.Checked, &e.Position, &e.CreatedAt, &e.UpdatedAt,
			&item.ID, &item.WorkspaceID, &item.Name, &item.NormalizedName, &item.IconKey, &item.CreatedAt, &item.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry row: %w", err)
		}
		e.Item = &item
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return entries, nil
}

// AddEntry appends a single item after the current maximum position.
// Returns ErrDuplicateEntry when the item is already on the list.
func (s *PostgresStore) AddEntry(ctx context.Context, listID string, entry NewEntry) (*Entry, error) {
	max, err := s.maxPosition(ctx, listID)
	if err != nil {
		return nil, err
	}

	e := &Entry{
		ID:       uuid.NewString(),
		ListID:   listID,
		ItemID:   entry.ItemID,
		Note:     entry.Note,
		Position: max + 1,
	}
	err = s.db.QueryRowContext(ctx,
		`INSERT INTO shopping_list_entries (id, list_id, item_id, note, position)
		 VALUES ($1, $2, $3, $4, $5) RETURNING created_at, updated_at`,
		e.ID, e.ListID, e.ItemID, e.Note, e.Position,
	).Scan(&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrDuplicateEntry
		}
		return nil, fmt.Errorf("failed to insert entry: %w", err)
	}
	return e, nil
}

// AppendEntries merge-inserts a batch of items after the current maximum
// position, in input order. Items already on the list are skipped without
// touching the existing entry's note, checked state or position. The
// returned count is the number of items submitted, not inserted; callers
// report a single aggregate success.
func (s *PostgresStore) AppendEntries(ctx context.Context, listID string, entries []NewEntry) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	max, err := s.maxPosition(ctx, listID)
	if err != nil {
		return 0, err
	}
	positions := NextPositions(max, len(entries))

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for i, entry := range entries {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO shopping_list_entries (id, list_id, item_id, note, position)
			 VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT (list_id, item_id) DO NOTHING`,
			uuid.NewString(), listID, entry.ItemID, entry.Note, positions[i])
		if err != nil {
			return 0, fmt.Errorf("failed to merge entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit merge: %w", err)
	}
	return len(entries), nil
}

// UpdateEntry applies a partial update to an entry's note and checked state.
func (s *PostgresStore) UpdateEntry(ctx context.Context, entryID string, patch EntryPatch) error {
	if patch.Note == nil && patch.Checked == nil {
		return nil
	}
	_, err := s.db.ExecContext(ctx,
		`UPDATE shopping_list_entries
		 SET note = COALESCE($2, note), checked = COALESCE($3, checked), updated_at = now()
		 WHERE id = $1`,
		entryID, patch.Note, patch.Checked)
	if err != nil {
		return fmt.Errorf("failed to update entry: %w", err)
	}
	return nil
}

// DeleteEntry removes a single entry.
func (s *PostgresStore) DeleteEntry(ctx context.Context, entryID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM shopping_list_entries WHERE id = $1`, entryID); err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	return nil
}

// GetEntry retrieves an entry by id. Returns nil when not found.
func (s *PostgresStore) GetEntry(ctx context.Context, entryID string) (*Entry, error) {
	var e Entry
	err := s.db.GetContext(ctx, &e,
		`SELECT id, list_id, item_id, note, checked, position, created_at, updated_at
		 FROM shopping_list_entries WHERE id = $1`, entryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}
	return &e, nil
}

func (s *PostgresStore) maxPosition(ctx context.Context, listID string) (int, error) {
	var max int
	err := s.db.GetContext(ctx, &max,
		`SELECT COALESCE(MAX(position), -1) FROM shopping_list_entries WHERE list_id = $1`, listID)
	if err != nil {
		return 0, fmt.Errorf("failed to read max position: %w", err)
	}
	return max, nil
}
