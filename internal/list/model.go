package list

import (
	"time"

	"bringer/internal/catalog"
)

// ShoppingList owns an ordered collection of entries.
type ShoppingList struct {
	ID          string    `json:"id" db:"id"`
	WorkspaceID string    `json:"workspace_id" db:"workspace_id"`
	Name        string    `json:"name" db:"name"`
	CreatedBy   string    `json:"created_by" db:"created_by"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Entry is one checkable line of a shopping list. At most one entry per
// (list, item) pair exists; display order is ascending position, then
// insertion order.
type Entry struct {
	ID        string        `json:"id" db:"id"`
	ListID    string        `json:"list_id" db:"list_id"`
	ItemID    string        `json:"item_id" db:"item_id"`
	Note      string        `json:"note" db:"note"`
	Checked   bool          `json:"checked" db:"checked"`
	Position  int           `json:"position" db:"position"`
	CreatedAt time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt time.Time     `json:"updated_at" db:"updated_at"`
	Item      *catalog.Item `json:"item,omitempty" db:"-"`
}

// NewEntry is the input for appending items to a list.
type NewEntry struct {
	ItemID string `json:"item_id"`
	Note   string `json:"note"`
}

// EntryPatch carries optional field updates for an entry.
type EntryPatch struct {
	Note    *string `json:"note"`
	Checked *bool   `json:"checked"`
}
