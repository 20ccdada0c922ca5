package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Asna-Zulfiqar/spotify-clone/internal/models"
	"github.com/Asna-Zulfiqar/spotify-clone/internal/repository"
)

type PlaylistHandler struct {
	playlistRepo repository.PlaylistRepository
	songRepo     repository.SongRepository
	recentRepo   repository.RecentRepository
}

func NewPlaylistHandler(
	playlistRepo repository.PlaylistRepository,
	songRepo repository.SongRepository,
	recentRepo repository.RecentRepository,
) *PlaylistHandler {
	return &PlaylistHandler{
		playlistRepo: playlistRepo,
		songRepo:     songRepo,
		recentRepo:   recentRepo,
	}
}

func (h *PlaylistHandler) GetPublicPlaylists(c *gin.Context) {
	playlists, err := h.playlistRepo.GetPublicPlaylists()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to fetch playlists",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Playlists fetched successfully",
		"data":    playlists,
	})
}

func (h *PlaylistHandler) GetMyPlaylists(c *gin.Context) {
	userID := c.GetString("user_id")

	playlists, err := h.playlistRepo.GetPlaylistsByUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to fetch playlists",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Playlists fetched successfully",
		"data":    playlists,
	})
}

// GetPlaylistByID is the playlist-view trigger: it records the playlist
// into the caller's recently-played ring.
func (h *PlaylistHandler) GetPlaylistByID(c *gin.Context) {
	userID := c.GetString("user_id")
	playlistID := c.Param("id")

	if _, err := uuid.Parse(playlistID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid playlist ID format",
		})
		return
	}

	playlist, err := h.playlistRepo.GetPlaylistByID(playlistID)
	if err != nil {
		if errors.Is(err, repository.ErrPlaylistNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "Playlist not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to fetch playlist",
		})
		return
	}

	// Private playlists are visible to their owner only; to anyone else
	// they do not exist.
	if playlist.Privacy != models.PrivacyPublic && playlist.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Playlist not found",
		})
		return
	}

	if err := h.recentRepo.RecordPlay(userID, nil, &playlistID, time.Now()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to record play",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Playlist fetched successfully",
		"data":    playlist,
	})
}

func (h *PlaylistHandler) CreatePlaylist(c *gin.Context) {
	userID := c.GetString("user_id")

	var req models.PlaylistCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body",
			"error":   err.Error(),
		})
		return
	}

	privacy := req.Privacy
	if privacy == "" {
		privacy = models.PrivacyPublic
	}

	playlist := &models.Playlist{
		UserID:  userID,
		Name:    req.Name,
		Privacy: privacy,
	}

	if err := h.playlistRepo.CreatePlaylist(playlist); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to create playlist",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Playlist created successfully",
		"data":    playlist,
	})
}

// ToggleSong adds the song to the playlist when absent and removes it when
// present, mirroring the single add-or-remove endpoint of the API.
func (h *PlaylistHandler) ToggleSong(c *gin.Context) {
	userID := c.GetString("user_id")

	var req models.PlaylistSongToggle
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Missing playlist_id or song_id",
		})
		return
	}

	playlist, err := h.playlistRepo.GetPlaylistByID(req.PlaylistID)
	if err != nil || playlist.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Playlist not found",
		})
		return
	}

	song, err := h.songRepo.GetSongByID(req.SongID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Song not found",
		})
		return
	}

	added, err := h.playlistRepo.ToggleSong(playlist, song)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to update playlist",
		})
		return
	}

	if added {
		c.JSON(http.StatusCreated, gin.H{
			"status":  "success",
			"message": "Song added successfully to playlist",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Song removed from playlist",
	})
}

func (h *PlaylistHandler) DeletePlaylist(c *gin.Context) {
	userID := c.GetString("user_id")
	playlistID := c.Param("id")

	playlist, err := h.playlistRepo.GetPlaylistByID(playlistID)
	if err != nil {
		if errors.Is(err, repository.ErrPlaylistNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "Playlist not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to fetch playlist",
		})
		return
	}

	if playlist.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{
			"status":  "error",
			"message": "You can only delete your own playlists",
		})
		return
	}

	if err := h.playlistRepo.DeletePlaylist(playlist); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to delete playlist",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Playlist deleted successfully",
	})
}
