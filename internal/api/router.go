package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter assembles the gin engine: CORS and request-id middleware on
// everything, JWT auth on the /api group only. The health probe stays
// unauthenticated for load balancers.
func NewRouter(h *Handler, jwtSecret string, corsOrigins []string, logger *zap.Logger) *gin.Engine {
	r := gin.New()

	r.Use(requestid.New())
	r.Use(RequestLogger(logger))
	r.Use(Recovery(logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.Use(Auth(jwtSecret))

	api.POST("/workspaces", h.CreateWorkspace)
	api.GET("/workspaces", h.ListWorkspaces)

	ws := api.Group("/workspaces/:workspaceId")
	{
		ws.POST("/items/resolve", h.ResolveItem)

		ws.POST("/lists", h.CreateList)
		ws.GET("/lists", h.ListLists)
		ws.GET("/lists/:listId", h.GetList)
		ws.DELETE("/lists/:listId", h.DeleteList)
		ws.POST("/lists/:listId/entries", h.AddListEntry)
		ws.POST("/lists/:listId/entries/bulk", h.AppendListEntries)
		ws.PATCH("/lists/:listId/entries/:entryId", h.UpdateListEntry)
		ws.DELETE("/lists/:listId/entries/:entryId", h.DeleteListEntry)

		ws.POST("/recipes", h.CreateRecipe)
		ws.GET("/recipes", h.ListRecipes)
		ws.GET("/recipes/:recipeId", h.GetRecipe)
		ws.PUT("/recipes/:recipeId", h.UpdateRecipe)
		ws.DELETE("/recipes/:recipeId", h.DeleteRecipe)
		ws.POST("/recipes/:recipeId/add-to-list", h.AddRecipeToList)
	}

	api.POST("/recipes/parse", h.ParseRecipe)

	return r
}
