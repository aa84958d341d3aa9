package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bringer/internal/list"
)

// CreateList handles POST /api/workspaces/:workspaceId/lists.
func (h *Handler) CreateList(c *gin.Context) {
	workspaceID := c.Param("workspaceId")
	user, _, ok := h.requireMember(c, workspaceID)
	if !ok {
		return
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "list name is required"})
		return
	}

	l, err := h.Lists.Create(c.Request.Context(), workspaceID, strings.TrimSpace(req.Name), user.ID)
	if err != nil {
		h.Logger.Error("list creation failed", zap.String("workspace_id", workspaceID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create list"})
		return
	}
	c.JSON(http.StatusCreated, l)
}

// ListLists handles GET /api/workspaces/:workspaceId/lists.
func (h *Handler) ListLists(c *gin.Context) {
	workspaceID := c.Param("workspaceId")
	if _, _, ok := h.requireMember(c, workspaceID); !ok {
		return
	}

	lists, err := h.Lists.ListByWorkspace(c.Request.Context(), workspaceID)
	if err != nil {
		h.Logger.Error("list listing failed", zap.String("workspace_id", workspaceID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list shopping lists"})
		return
	}
	if lists == nil {
		lists = []*list.ShoppingList{}
	}
	c.JSON(http.StatusOK, lists)
}

// GetList handles GET /api/workspaces/:workspaceId/lists/:listId and
// returns the list with its entries in display order.
func (h *Handler) GetList(c *gin.Context) {
	workspaceID := c.Param("workspaceId")
	if _, _, ok := h.requireMember(c, workspaceID); !ok {
		return
	}

	l, ok := h.listInWorkspace(c, workspaceID)
	if !ok {
		return
	}

	entries, err := h.Lists.Entries(c.Request.Context(), l.ID)
	if err != nil {
		h.Logger.Error("entry listing failed", zap.String("list_id", l.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load entries"})
		return
	}
	if entries == nil {
		entries = []*list.Entry{}
	}
	c.JSON(http.StatusOK, gin.H{"list": l, "entries": entries})
}

// DeleteList handles DELETE /api/workspaces/:workspaceId/lists/:listId.
// Owner only; entries cascade.
func (h *Handler) DeleteList(c *gin.Context) {
	workspaceID := c.Param("workspaceId")
	if _, ok := h.requireOwner(c, workspaceID); !ok {
		return
	}

	l, ok := h.listInWorkspace(c, workspaceID)
	if !ok {
		return
	}

	if err := h.Lists.Delete(c.Request.Context(), l.ID); err != nil {
		h.Logger.Error("list deletion failed", zap.String("list_id", l.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete list"})
		return
	}
	c.Status(http.StatusNoContent)
}

// AddListEntry handles POST /api/workspaces/:workspaceId/lists/:listId/entries.
// The item name is resolved against the catalog, then appended after the
// current maximum position.
func (h *Handler) AddListEntry(c *gin.Context) {
	workspaceID := c.Param("workspaceId")
	if _, _, ok := h.requireMember(c, workspaceID); !ok {
		return
	}

	l, ok := h.listInWorkspace(c, workspaceID)
	if !ok {
		return
	}

	var req struct {
		Name string `json:"name"`
		Note string `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "item name is required"})
		return
	}

	item, _, err := h.Items.GetOrCreate(c.Request.Context(), workspaceID, strings.TrimSpace(req.Name))
	if err != nil {
		h.Logger.Error("item resolution failed", zap.String("workspace_id", workspaceID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve item"})
		return
	}

	entry, err := h.Lists.AddEntry(c.Request.Context(), l.ID, list.NewEntry{ItemID: item.ID, Note: strings.TrimSpace(req.Note)})
	if err != nil {
		if errors.Is(err, list.ErrDuplicateEntry) {
			c.JSON(http.StatusConflict, gin.H{"error": "this item is already in the list"})
			return
		}
		h.Logger.Error("entry insert failed", zap.String("list_id", l.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add item"})
		return
	}
	entry.Item = item
	c.JSON(http.StatusCreated, entry)
}

// AppendListEntries handles POST /api/workspaces/:workspaceId/lists/:listId/entries/bulk.
// Merge-insert: items already on the list are skipped untouched, the rest
// append after the current maximum position. The response reports the
// submitted count; callers show one aggregate success message.
func (h *Handler) AppendListEntries(c *gin.Context) {
	workspaceID := c.Param("workspaceId")
	if _, _, ok := h.requireMember(c, workspaceID); !ok {
		return
	}

	l, ok := h.listInWorkspace(c, workspaceID)
	if !ok {
		return
	}

	var req struct {
		Items []list.NewEntry `json:"items"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "items are required"})
		return
	}
	for _, it := range req.Items {
		if it.ItemID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "every item needs an item_id"})
			return
		}
	}

	added, err := h.Lists.AppendEntries(c.Request.Context(), l.ID, req.Items)
	if err != nil {
		h.Logger.Error("entry merge failed", zap.String("list_id", l.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add items"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"added": added})
}

// UpdateListEntry handles PATCH /api/workspaces/:workspaceId/lists/:listId/entries/:entryId
// for note edits and checkbox toggles.
func (h *Handler) UpdateListEntry(c *gin.Context) {
	workspaceID := c.Param("workspaceId")
	if _, _, ok := h.requireMember(c, workspaceID); !ok {
		return
	}

	l, ok := h.listInWorkspace(c, workspaceID)
	if !ok {
		return
	}

	entry, ok := h.entryInList(c, l.ID)
	if !ok {
		return
	}

	var patch list.EntryPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.Lists.UpdateEntry(c.Request.Context(), entry.ID, patch); err != nil {
		h.Logger.Error("entry update failed", zap.String("entry_id", entry.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update item"})
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteListEntry handles DELETE /api/workspaces/:workspaceId/lists/:listId/entries/:entryId.
func (h *Handler) DeleteListEntry(c *gin.Context) {
	workspaceID := c.Param("workspaceId")
	if _, _, ok := h.requireMember(c, workspaceID); !ok {
		return
	}

	l, ok := h.listInWorkspace(c, workspaceID)
	if !ok {
		return
	}

	entry, ok := h.entryInList(c, l.ID)
	if !ok {
		return
	}

	if err := h.Lists.DeleteEntry(c.Request.Context(), entry.ID); err != nil {
		h.Logger.Error("entry deletion failed", zap.String("entry_id", entry.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove item"})
		return
	}
	c.Status(http.StatusNoContent)
}

// listInWorkspace loads the :listId list and verifies it belongs to the
// workspace in the path, writing 404 otherwise.
func (h *Handler) listInWorkspace(c *gin.Context, workspaceID string) (*list.ShoppingList, bool) {
	l, err := h.Lists.Get(c.Request.Context(), c.Param("listId"))
	if err != nil {
		h.Logger.Error("list lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return nil, false
	}
	if l == nil || l.WorkspaceID != workspaceID {
		c.JSON(http.StatusNotFound, gin.H{"error": "list not found"})
		return nil, false
	}
	return l, true
}

func (h *Handler) entryInList(c *gin.Context, listID string) (*list.Entry, bool) {
	entry, err := h.Lists.GetEntry(c.Request.Context(), c.Param("entryId"))
	if err != nil {
		h.Logger.Error("entry lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return nil, false
	}
	if entry == nil || entry.ListID != listID {
		c.JSON(http.StatusNotFound, gin.H{"error": "entry not found"})
		return nil, false
	}
	return entry, true
}
