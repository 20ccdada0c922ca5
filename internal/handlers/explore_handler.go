package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Asna-Zulfiqar/spotify-clone/internal/services"
)

type ExploreHandler struct {
	exploreService services.ExploreService
	searchService  services.SearchService
}

func NewExploreHandler(exploreService services.ExploreService, searchService services.SearchService) *ExploreHandler {
	return &ExploreHandler{
		exploreService: exploreService,
		searchService:  searchService,
	}
}

func (h *ExploreHandler) GetExplore(c *gin.Context) {
	userID := c.GetString("user_id")

	result, err := h.exploreService.BuildExplore(userID, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to build explore feed",
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *ExploreHandler) GetRecentlyPlayed(c *gin.Context) {
	userID := c.GetString("user_id")

	result, err := h.exploreService.RecentlyPlayed(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to fetch recently played",
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *ExploreHandler) Search(c *gin.Context) {
	query := c.Query("query")
	facet := c.Query("type")

	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Search query parameter is required",
		})
		return
	}

	results, err := h.searchService.Search(query, facet)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Search failed",
		})
		return
	}

	c.JSON(http.StatusOK, results)
}
