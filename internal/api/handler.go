package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bringer/internal/catalog"
	"bringer/internal/ingest"
	"bringer/internal/list"
	"bringer/internal/recipe"
	"bringer/internal/workspace"
)

// WorkspaceStore defines the workspace operations handlers need.
type WorkspaceStore interface {
	Create(ctx context.Context, name, ownerID string) (*workspace.Workspace, error)
	Get(ctx context.Context, id string) (*workspace.Workspace, error)
	ListForUser(ctx context.Context, userID string) ([]*workspace.Workspace, error)
	RoleOf(ctx context.Context, workspaceID, userID string) (workspace.Role, bool, error)
}

// ItemStore defines the catalog operations handlers need.
type ItemStore interface {
	GetOrCreate(ctx context.Context, workspaceID, rawName string) (*catalog.Item, bool, error)
}

// ListStore defines the shopping list operations handlers need.
type ListStore interface {
	Create(ctx context.Context, workspaceID, name, createdBy string) (*list.ShoppingList, error)
	Get(ctx context.Context, id string) (*list.ShoppingList, error)
	ListByWorkspace(ctx context.Context, workspaceID string) ([]*list.ShoppingList, error)
	Delete(ctx context.Context, id string) error
	Entries(ctx context.Context, listID string) ([]*list.Entry, error)
	AddEntry(ctx context.Context, listID string, entry list.NewEntry) (*list.Entry, error)
	AppendEntries(ctx context.Context, listID string, entries []list.NewEntry) (int, error)
	UpdateEntry(ctx context.Context, entryID string, patch list.EntryPatch) error
	DeleteEntry(ctx context.Context, entryID string) error
	GetEntry(ctx context.Context, entryID string) (*list.Entry, error)
}

// RecipeStore defines the recipe operations handlers need.
type RecipeStore interface {
	Create(ctx context.Context, workspaceID, createdBy string, input recipe.RecipeInput) (*recipe.Recipe, error)
	Get(ctx context.Context, id string) (*recipe.Recipe, error)
	ListByWorkspace(ctx context.Context, workspaceID string) ([]*recipe.Recipe, error)
	Update(ctx context.Context, id string, input recipe.RecipeInput) (*recipe.Recipe, error)
	Delete(ctx context.Context, id string) error
}

// Ingestor defines the AI ingestion operation handlers need.
type Ingestor interface {
	Ingest(ctx context.Context, input string, kind ingest.Kind) (*recipe.Parsed, error)
}

// Handler handles HTTP requests.
type Handler struct {
	Workspaces WorkspaceStore
	Items      ItemStore
	Lists      ListStore
	Recipes    RecipeStore
	Ingest     Ingestor
	Logger     *zap.Logger
}

// NewHandler creates a new Handler.
func NewHandler(workspaces WorkspaceStore, items ItemStore, lists ListStore, recipes RecipeStore, ingestor Ingestor, logger *zap.Logger) *Handler {
	return &Handler{
		Workspaces: workspaces,
		Items:      items,
		Lists:      lists,
		Recipes:    recipes,
		Ingest:     ingestor,
		Logger:     logger,
	}
}

// requireMember resolves the caller's role in a workspace, writing 403 (or
// 500 on store failure) when access is denied. Checked before any side
// effect or external-model call.
func (h *Handler) requireMember(c *gin.Context, workspaceID string) (*User, workspace.Role, bool) {
	user, ok := UserFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return nil, "", false
	}

	role, member, err := h.Workspaces.RoleOf(c.Request.Context(), workspaceID, user.ID)
	if err != nil {
		h.Logger.Error("membership lookup failed", zap.String("workspace_id", workspaceID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return nil, "", false
	}
	if !member {
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied to workspace"})
		return nil, "", false
	}
	return user, role, true
}

// requireOwner is requireMember plus the owner-role check used by deletes.
func (h *Handler) requireOwner(c *gin.Context, workspaceID string) (*User, bool) {
	user, role, ok := h.requireMember(c, workspaceID)
	if !ok {
		return nil, false
	}
	if role != workspace.RoleOwner {
		c.JSON(http.StatusForbidden, gin.H{"error": "owner privileges required"})
		return nil, false
	}
	return user, true
}
