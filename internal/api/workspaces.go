package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bringer/internal/workspace"
)

// CreateWorkspace handles POST /api/workspaces. The store inserts the
// workspace and the caller's owner membership atomically.
func (h *Handler) CreateWorkspace(c *gin.Context) {
	user, ok := UserFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "workspace name is required"})
		return
	}

	ws, err := h.Workspaces.Create(c.Request.Context(), name, user.ID)
	if err != nil {
		h.Logger.Error("workspace creation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create workspace"})
		return
	}
	c.JSON(http.StatusCreated, ws)
}

// ListWorkspaces handles GET /api/workspaces.
func (h *Handler) ListWorkspaces(c *gin.Context) {
	user, ok := UserFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	workspaces, err := h.Workspaces.ListForUser(c.Request.Context(), user.ID)
	if err != nil {
		h.Logger.Error("workspace listing failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list workspaces"})
		return
	}
	if workspaces == nil {
		workspaces = []*workspace.Workspace{}
	}
	c.JSON(http.StatusOK, workspaces)
}

// ResolveItem handles POST /api/workspaces/:workspaceId/items/resolve.
// Names differing only in case, whitespace or diacritics resolve to the
// same catalog row.
func (h *Handler) ResolveItem(c *gin.Context) {
	workspaceID := c.Param("workspaceId")
	if _, _, ok := h.requireMember(c, workspaceID); !ok {
		return
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "item name is required"})
		return
	}

	item, created, err := h.Items.GetOrCreate(c.Request.Context(), workspaceID, strings.TrimSpace(req.Name))
	if err != nil {
		h.Logger.Error("item resolution failed", zap.String("workspace_id", workspaceID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve item"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item, "created": created})
}
