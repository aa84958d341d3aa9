package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bringer/internal/list"
	"bringer/internal/recipe"
)

// CreateRecipe handles POST /api/workspaces/:workspaceId/recipes.
func (h *Handler) CreateRecipe(c *gin.Context) {
	workspaceID := c.Param("workspaceId")
	user, _, ok := h.requireMember(c, workspaceID)
	if !ok {
		return
	}

	input, ok := bindRecipeInput(c)
	if !ok {
		return
	}

	r, err := h.Recipes.Create(c.Request.Context(), workspaceID, user.ID, input)
	if err != nil {
		h.Logger.Error("recipe creation failed", zap.String("workspace_id", workspaceID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create recipe"})
		return
	}
	c.JSON(http.StatusCreated, r)
}

// ListRecipes handles GET /api/workspaces/:workspaceId/recipes.
func (h *Handler) ListRecipes(c *gin.Context) {
	workspaceID := c.Param("workspaceId")
	if _, _, ok := h.requireMember(c, workspaceID); !ok {
		return
	}

	recipes, err := h.Recipes.ListByWorkspace(c.Request.Context(), workspaceID)
	if err != nil {
		h.Logger.Error("recipe listing failed", zap.String("workspace_id", workspaceID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list recipes"})
		return
	}
	if recipes == nil {
		recipes = []*recipe.Recipe{}
	}
	c.JSON(http.StatusOK, recipes)
}

// GetRecipe handles GET /api/workspaces/:workspaceId/recipes/:recipeId.
func (h *Handler) GetRecipe(c *gin.Context) {
	workspaceID := c.Param("workspaceId")
	if _, _, ok := h.requireMember(c, workspaceID); !ok {
		return
	}

	r, ok := h.recipeInWorkspace(c, workspaceID)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, r)
}

// UpdateRecipe handles PUT /api/workspaces/:workspaceId/recipes/:recipeId.
// A save is a full rewrite; the stored ingredient list is replaced and
// renumbered from input order.
func (h *Handler) UpdateRecipe(c *gin.Context) {
	workspaceID := c.Param("workspaceId")
	if _, _, ok := h.requireMember(c, workspaceID); !ok {
		return
	}

	r, ok := h.recipeInWorkspace(c, workspaceID)
	if !ok {
		return
	}

	input, ok := bindRecipeInput(c)
	if !ok {
		return
	}

	updated, err := h.Recipes.Update(c.Request.Context(), r.ID, input)
	if err != nil {
		h.Logger.Error("recipe update failed", zap.String("recipe_id", r.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update recipe"})
		return
	}
	if updated == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteRecipe handles DELETE /api/workspaces/:workspaceId/recipes/:recipeId.
// Owner only; ingredients cascade.
func (h *Handler) DeleteRecipe(c *gin.Context) {
	workspaceID := c.Param("workspaceId")
	if _, ok := h.requireOwner(c, workspaceID); !ok {
		return
	}

	r, ok := h.recipeInWorkspace(c, workspaceID)
	if !ok {
		return
	}

	if err := h.Recipes.Delete(c.Request.Context(), r.ID); err != nil {
		h.Logger.Error("recipe deletion failed", zap.String("recipe_id", r.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete recipe"})
		return
	}
	c.Status(http.StatusNoContent)
}

// AddRecipeToList handles POST /api/workspaces/:workspaceId/recipes/:recipeId/add-to-list.
// All of the recipe's ingredients merge into an existing list, or into a
// freshly created one when new_list_name is given instead of list_id.
func (h *Handler) AddRecipeToList(c *gin.Context) {
	workspaceID := c.Param("workspaceId")
	user, _, ok := h.requireMember(c, workspaceID)
	if !ok {
		return
	}

	r, ok := h.recipeInWorkspace(c, workspaceID)
	if !ok {
		return
	}
	if len(r.Ingredients) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recipe has no ingredients to add"})
		return
	}

	var req struct {
		ListID      string `json:"list_id"`
		NewListName string `json:"new_list_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	var targetID string
	switch {
	case req.ListID != "":
		l, err := h.Lists.Get(c.Request.Context(), req.ListID)
		if err != nil {
			h.Logger.Error("list lookup failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		if l == nil || l.WorkspaceID != workspaceID {
			c.JSON(http.StatusNotFound, gin.H{"error": "list not found"})
			return
		}
		targetID = l.ID
	case strings.TrimSpace(req.NewListName) != "":
		l, err := h.Lists.Create(c.Request.Context(), workspaceID, strings.TrimSpace(req.NewListName), user.ID)
		if err != nil {
			h.Logger.Error("list creation failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create list"})
			return
		}
		targetID = l.ID
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "list_id or new_list_name is required"})
		return
	}

	entries := make([]list.NewEntry, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		entries = append(entries, list.NewEntry{ItemID: ing.ItemID, Note: ing.Note})
	}

	added, err := h.Lists.AppendEntries(c.Request.Context(), targetID, entries)
	if err != nil {
		h.Logger.Error("ingredient merge failed", zap.String("recipe_id", r.ID), zap.String("list_id", targetID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add ingredients to list"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"list_id": targetID, "added": added})
}

func (h *Handler) recipeInWorkspace(c *gin.Context, workspaceID string) (*recipe.Recipe, bool) {
	r, err := h.Recipes.Get(c.Request.Context(), c.Param("recipeId"))
	if err != nil {
		h.Logger.Error("recipe lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return nil, false
	}
	if r == nil || r.WorkspaceID != workspaceID {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return nil, false
	}
	return r, true
}

func bindRecipeInput(c *gin.Context) (recipe.RecipeInput, bool) {
	var input recipe.RecipeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return input, false
	}
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recipe title is required"})
		return input, false
	}
	for _, ing := range input.Ingredients {
		if ing.ItemID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "every ingredient needs an item_id"})
			return input, false
		}
	}
	return input, true
}
