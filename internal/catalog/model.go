package catalog

import "time"

// Item is a canonical, workspace-scoped catalog entry. List entries and
// recipe ingredients reference items instead of carrying free-text names.
type Item struct {
	ID             string    `json:"id" db:"id"`
	WorkspaceID    string    `json:"workspace_id" db:"workspace_id"`
	Name           string    `json:"name" db:"name"`
	NormalizedName string    `json:"normalized_name" db:"normalized_name"`
	IconKey        string    `json:"icon_key" db:"icon_key"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}
