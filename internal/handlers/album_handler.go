package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Asna-Zulfiqar/spotify-clone/internal/models"
	"github.com/Asna-Zulfiqar/spotify-clone/internal/repository"
)

type AlbumHandler struct {
	albumRepo repository.AlbumRepository
}

func NewAlbumHandler(albumRepo repository.AlbumRepository) *AlbumHandler {
	return &AlbumHandler{albumRepo: albumRepo}
}

func (h *AlbumHandler) GetAllAlbums(c *gin.Context) {
	albums, err := h.albumRepo.GetAllAlbums()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to fetch albums",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Albums fetched successfully",
		"data":    albums,
	})
}

func (h *AlbumHandler) GetAlbumByID(c *gin.Context) {
	albumID := c.Param("id")

	if _, err := uuid.Parse(albumID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid album ID format",
		})
		return
	}

	album, err := h.albumRepo.GetAlbumByID(albumID)
	if err != nil {
		if errors.Is(err, repository.ErrAlbumNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "Album not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to fetch album",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Album fetched successfully",
		"data":    album,
	})
}

func (h *AlbumHandler) CreateAlbum(c *gin.Context) {
	userID := c.GetString("user_id")

	var req models.AlbumCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body",
			"error":   err.Error(),
		})
		return
	}

	album := &models.Album{
		Title:       req.Title,
		ArtistID:    userID,
		Description: req.Description,
		ReleaseDate: req.ReleaseDate,
		CoverURL:    req.CoverURL,
	}

	if err := h.albumRepo.CreateAlbum(album); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to create album",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Album created successfully",
		"data":    album,
	})
}

func (h *AlbumHandler) UpdateAlbum(c *gin.Context) {
	userID := c.GetString("user_id")
	albumID := c.Param("id")

	album, err := h.albumRepo.GetAlbumByID(albumID)
	if err != nil {
		if errors.Is(err, repository.ErrAlbumNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "Album not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to fetch album",
		})
		return
	}

	if album.ArtistID != userID {
		c.JSON(http.StatusForbidden, gin.H{
			"status":  "error",
			"message": "You can only update your own albums",
		})
		return
	}

	var req models.AlbumCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body",
		})
		return
	}

	album.Title = req.Title
	album.Description = req.Description
	album.ReleaseDate = req.ReleaseDate
	album.CoverURL = req.CoverURL

	if err := h.albumRepo.UpdateAlbum(album); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to update album",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Album updated successfully",
		"data":    album,
	})
}
