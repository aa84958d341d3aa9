package recipe

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"bringer/internal/catalog"
)

// Store defines the interface for recipe data operations.
type Store interface {
	Create(ctx context.Context, workspaceID, createdBy string, input RecipeInput) (*Recipe, error)
	Get(ctx context.Context, id string) (*Recipe, error)
	ListByWorkspace(ctx context.Context, workspaceID string) ([]*Recipe, error)
	Update(ctx context.Context, id string, input RecipeInput) (*Recipe, error)
	Delete(ctx context.Context, id string) error
}

// PostgresStore implements Store for PostgreSQL.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore creates a new PostgresStore and ensures the recipe
// tables exist.
func NewPostgresStore(db *sqlx.DB) (*PostgresStore, error) {
	schema := `
	CREATE TABLE IF NOT EXISTS recipes (
		id UUID PRIMARY KEY,
		workspace_id UUID NOT NULL REFERENCES workspaces(id) ON DELETE CASCADE,
		title TEXT NOT NULL,
		instructions TEXT NOT NULL DEFAULT '',
		image_url TEXT NOT NULL DEFAULT '',
		external_link TEXT NOT NULL DEFAULT '',
		created_by UUID NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create recipes table: %w", err)
	}

	schema = `
	CREATE TABLE IF NOT EXISTS recipe_ingredients (
		id UUID PRIMARY KEY,
		recipe_id UUID NOT NULL REFERENCES recipes(id) ON DELETE CASCADE,
		item_id UUID NOT NULL REFERENCES items(id),
		note TEXT NOT NULL DEFAULT '',
		position INTEGER NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create recipe_ingredients table: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

// Create inserts a recipe and its ingredients in one transaction.
// Ingredient positions come from input order, 0..n-1.
func (s *PostgresStore) Create(ctx context.Context, workspaceID, createdBy string, input RecipeInput) (*Recipe, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	r := &Recipe{
		ID:           uuid.NewString(),
		WorkspaceID:  workspaceID,
		Title:        input.Title,
		Instructions: input.Instructions,
		ImageURL:     input.ImageURL,
		ExternalLink: input.ExternalLink,
		CreatedBy:    createdBy,
	}
	err = tx.QueryRowContext(ctx,
		`INSERT INTO recipes (id, workspace_id, title, instructions, image_url, external_link, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING created_at, updated_at`,
		r.ID, r.WorkspaceID, r.Title, r.Instructions, r.ImageURL, r.ExternalLink, r.CreatedBy,
	).Scan(&r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert recipe: %w", err)
	}

	if err := insertIngredients(ctx, tx, r.ID, input.Ingredients); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit recipe: %w", err)
	}
	return s.Get(ctx, r.ID)
}

// Get retrieves a recipe with its ingredients joined to catalog items.
// Returns nil when not found.
func (s *PostgresStore) Get(ctx context.Context, id string) (*Recipe, error) {
	var r Recipe
	err := s.db.GetContext(ctx, &r,
		`SELECT id, workspace_id, title, instructions, image_url, external_link, created_by, created_at, updated_at
		 FROM recipes WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}

	rows, err := s.db.QueryxContext(ctx,
		`SELECT ri.id, ri.recipe_id, ri.item_id, ri.note, ri.position,
		        i.id, i.workspace_id, i.name, i.normalized_name, i.icon_key, i.created_at, i.updated_at
		 FROM recipe_ingredients ri
		 JOIN items i ON i.id = ri.item_id
		 WHERE ri.recipe_id = $1
		 ORDER BY ri.position ASC, ri.created_at ASC`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query ingredients: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ing Ingredient
		var item catalog.Item
		err := rows.Scan(
			&ing.ID, &ing.RecipeID, &ing.ItemID, &ing.Note, &ing.Position,
			&item.ID, &item.WorkspaceID, &item.Name, &item.NormalizedName, &item.IconKey, &item.CreatedAt, &item.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ingredient row: %w", err)
		}
		ing.Item = &item
		r.Ingredients = append(r.Ingredients, &ing)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return &r, nil
}

// ListByWorkspace returns a workspace's recipes without ingredients, most
// recently updated first.
func (s *PostgresStore) ListByWorkspace(ctx context.Context, workspaceID string) ([]*Recipe, error) {
	var recipes []*Recipe
	err := s.db.SelectContext(ctx, &recipes,
		`SELECT id, workspace_id, title, instructions, image_url, external_link, created_by, created_at, updated_at
		 FROM recipes WHERE workspace_id = $1 ORDER BY updated_at DESC`, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return recipes, nil
}

// Update rewrites a recipe: the row is updated and the stored ingredient
// list is dropped and reinserted from the input, renumbered 0..n-1.
func (s *PostgresStore) Update(ctx context.Context, id string, input RecipeInput) (*Recipe, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE recipes
		 SET title = $2, instructions = $3, image_url = $4, external_link = $5, updated_at = now()
		 WHERE id = $1`,
		id, input.Title, input.Instructions, input.ImageURL, input.ExternalLink)
	if err != nil {
		return nil, fmt.Errorf("failed to update recipe: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, nil
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM recipe_ingredients WHERE recipe_id = $1`, id); err != nil {
		return nil, fmt.Errorf("failed to clear ingredients: %w", err)
	}
	if err := insertIngredients(ctx, tx, id, input.Ingredients); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit recipe update: %w", err)
	}
	return s.Get(ctx, id)
}

// Delete removes a recipe; ingredients cascade.
func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM recipes WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}
	return nil
}

func insertIngredients(ctx context.Context, tx *sqlx.Tx, recipeID string, ingredients []NewIngredient) error {
	for i, ing := range ingredients {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO recipe_ingredients (id, recipe_id, item_id, note, position)
			 VALUES ($1, $2, $3, $4, $5)`,
			uuid.NewString(), recipeID, ing.ItemID, ing.Note, i)
		if err != nil {
			return fmt.Errorf("failed to insert ingredient: %w", err)
		}
	}
	return nil
}
