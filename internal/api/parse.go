package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bringer/internal/ingest"
)

// parseTimeout bounds the two chained model hops of one ingestion call.
const parseTimeout = 45 * time.Second

// ParseRecipe handles POST /api/recipes/parse. Membership is verified
// before any external-model call is made. The parsed recipe is returned
// transiently; nothing is persisted until the user saves it.
func (h *Handler) ParseRecipe(c *gin.Context) {
	var req struct {
		Input       string `json:"input"`
		Type        string `json:"type"`
		WorkspaceID string `json:"workspace_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Input == "" || req.Type == "" || req.WorkspaceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required fields: input, type, workspace_id"})
		return
	}

	kind := ingest.Kind(req.Type)
	if !ingest.ValidKind(kind) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid type, must be url, text or image"})
		return
	}

	if _, _, ok := h.requireMember(c, req.WorkspaceID); !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), parseTimeout)
	defer cancel()

	parsed, err := h.Ingest.Ingest(ctx, req.Input, kind)
	if err != nil {
		switch {
		case errors.Is(err, ingest.ErrFetch):
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to fetch URL"})
		case errors.Is(err, ingest.ErrExtraction):
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to extract text from image"})
		default:
			h.Logger.Error("recipe ingestion failed", zap.String("type", req.Type), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to parse recipe"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipe": parsed})
}
