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

type SongHandler struct {
	songRepo       repository.SongRepository
	engagementRepo repository.EngagementRepository
	recentRepo     repository.RecentRepository
}

func NewSongHandler(
	songRepo repository.SongRepository,
	engagementRepo repository.EngagementRepository,
	recentRepo repository.RecentRepository,
) *SongHandler {
	return &SongHandler{
		songRepo:       songRepo,
		engagementRepo: engagementRepo,
		recentRepo:     recentRepo,
	}
}

func (h *SongHandler) GetAllSongs(c *gin.Context) {
	userID := c.GetString("user_id")

	songs, err := h.songRepo.GetAllSongs()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to fetch songs",
		})
		return
	}

	if userID != "" {
		h.setLikeStatus(songs, userID)
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Songs fetched successfully",
		"data": gin.H{
			"songs": songs,
			"metadata": gin.H{
				"total": len(songs),
			},
		},
	})
}

// GetSongByID is the playback trigger: it bumps the play counter atomically
// and records the song into the caller's recently-played ring.
func (h *SongHandler) GetSongByID(c *gin.Context) {
	songID := c.Param("id")
	userID := c.GetString("user_id")

	if _, err := uuid.Parse(songID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid song ID format",
		})
		return
	}

	song, err := h.songRepo.GetSongByID(songID)
	if err != nil {
		if errors.Is(err, repository.ErrSongNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "Song not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to fetch song",
		})
		return
	}

	if err := h.songRepo.IncrementPlays(songID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to record play",
		})
		return
	}
	song.PlaysCount++

	if err := h.recentRepo.RecordPlay(userID, &songID, nil, time.Now()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to record play",
		})
		return
	}

	isLiked, _ := h.engagementRepo.IsSongLikedByUser(userID, songID)
	song.IsLiked = isLiked

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Song fetched successfully",
		"data":    song,
	})
}

func (h *SongHandler) CreateSong(c *gin.Context) {
	var req models.SongCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body",
			"error":   err.Error(),
		})
		return
	}

	song := &models.Song{
		Title:           req.Title,
		AlbumID:         req.AlbumID,
		DurationSeconds: req.DurationSeconds,
		Lyrics:          req.Lyrics,
		Description:     req.Description,
		AudioURL:        req.AudioURL,
		CoverURL:        req.CoverURL,
		ReleasedDate:    req.ReleasedDate,
	}

	if err := h.songRepo.CreateSong(song, req.GenreIDs, req.FeaturedArtists); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to create song",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Song created successfully",
		"data":    song,
	})
}

func (h *SongHandler) UpdateSong(c *gin.Context) {
	songID := c.Param("id")

	song, err := h.songRepo.GetSongByID(songID)
	if err != nil {
		if errors.Is(err, repository.ErrSongNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "Song not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to fetch song",
		})
		return
	}

	var req models.SongCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body",
		})
		return
	}

	song.Title = req.Title
	song.Lyrics = req.Lyrics
	song.Description = req.Description
	song.CoverURL = req.CoverURL
	song.ReleasedDate = req.ReleasedDate
	if req.AudioURL != "" {
		song.AudioURL = req.AudioURL
	}

	if err := h.songRepo.UpdateSong(song); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to update song",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Song updated successfully",
		"data":    song,
	})
}

func (h *SongHandler) DeleteSong(c *gin.Context) {
	songID := c.Param("id")

	song, err := h.songRepo.GetSongByID(songID)
	if err != nil {
		if errors.Is(err, repository.ErrSongNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "Song not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to fetch song",
		})
		return
	}

	if err := h.songRepo.DeleteSong(song); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to delete song",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Song deleted successfully",
	})
}

func (h *SongHandler) LikeSong(c *gin.Context) {
	userID := c.GetString("user_id")
	songID := c.Param("song_id")

	if _, err := uuid.Parse(songID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid song ID format",
		})
		return
	}

	if _, err := h.songRepo.GetSongByID(songID); err != nil {
		if errors.Is(err, repository.ErrSongNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "Song not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to fetch song",
		})
		return
	}

	if err := h.engagementRepo.LikeSong(userID, songID); err != nil {
		if errors.Is(err, repository.ErrAlreadyLiked) {
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "You have already liked this song",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to like song",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "You have successfully liked this song",
	})
}

func (h *SongHandler) UnlikeSong(c *gin.Context) {
	userID := c.GetString("user_id")
	songID := c.Param("song_id")

	if _, err := uuid.Parse(songID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid song ID format",
		})
		return
	}

	if _, err := h.songRepo.GetSongByID(songID); err != nil {
		if errors.Is(err, repository.ErrSongNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "Song not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to fetch song",
		})
		return
	}

	if err := h.engagementRepo.UnlikeSong(userID, songID); err != nil {
		if errors.Is(err, repository.ErrAlreadyUnliked) {
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "You have already unliked this song",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to unlike song",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "You have successfully unliked this song",
	})
}

func (h *SongHandler) GetUserLikes(c *gin.Context) {
	userID := c.GetString("user_id")

	likes, err := h.engagementRepo.LikedSongs(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to fetch liked songs",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Liked songs fetched successfully",
		"data":    likes,
	})
}

func (h *SongHandler) setLikeStatus(songs []models.Song, userID string) {
	likedIDs, err := h.engagementRepo.LikedSongIDs(userID)
	if err != nil {
		return
	}

	likedMap := make(map[string]bool, len(likedIDs))
	for _, id := range likedIDs {
		likedMap[id] = true
	}
	for i := range songs {
		songs[i].IsLiked = likedMap[songs[i].ID]
	}
}
