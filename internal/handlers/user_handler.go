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

type UserHandler struct {
	userRepo       repository.UserRepository
	engagementRepo repository.EngagementRepository
}

func NewUserHandler(userRepo repository.UserRepository, engagementRepo repository.EngagementRepository) *UserHandler {
	return &UserHandler{
		userRepo:       userRepo,
		engagementRepo: engagementRepo,
	}
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	userID := c.GetString("user_id")

	user, err := h.userRepo.FindUserByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "User not found",
		})
		return
	}
	user.Password = ""

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Profile fetched successfully",
		"data":    user,
	})
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID := c.GetString("user_id")

	var req models.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body",
		})
		return
	}

	user, err := h.userRepo.FindUserByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "User not found",
		})
		return
	}

	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.DisplayName = req.DisplayName
	user.Bio = req.Bio
	user.DateOfBirth = req.DateOfBirth
	user.ProfileURL = req.ProfileURL

	if err := h.userRepo.UpdateUser(user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to update profile",
		})
		return
	}
	user.Password = ""

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Profile updated successfully",
		"data":    user,
	})
}

func (h *UserHandler) UpdatePassword(c *gin.Context) {
	userID := c.GetString("user_id")

	var req models.UpdatePassword
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body",
		})
		return
	}

	user, err := h.userRepo.FindUserByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "User not found",
		})
		return
	}

	if err := h.userRepo.VerifyPassword(user.Password, req.OldPassword); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "Old password is incorrect",
		})
		return
	}

	hashed, err := h.userRepo.HashPassword(req.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to process password",
		})
		return
	}

	user.Password = hashed
	if err := h.userRepo.UpdateUser(user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to update password",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Password updated successfully",
	})
}

func (h *UserHandler) FollowUser(c *gin.Context) {
	userID := c.GetString("user_id")
	targetID := c.Param("user_id")

	if _, err := uuid.Parse(targetID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid user ID format",
		})
		return
	}

	if _, err := h.userRepo.FindUserByID(targetID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "User not found",
		})
		return
	}

	if err := h.engagementRepo.FollowUser(userID, targetID); err != nil {
		switch {
		case errors.Is(err, repository.ErrSelfFollow):
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "You cannot follow yourself",
			})
		case errors.Is(err, repository.ErrAlreadyFollowed):
			c.JSON(http.StatusConflict, gin.H{
				"status":  "error",
				"message": "You are already following this user",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"status":  "error",
				"message": "Failed to follow user",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "User followed successfully",
	})
}

func (h *UserHandler) UnfollowUser(c *gin.Context) {
	userID := c.GetString("user_id")
	targetID := c.Param("user_id")

	if _, err := uuid.Parse(targetID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid user ID format",
		})
		return
	}

	if err := h.engagementRepo.UnfollowUser(userID, targetID); err != nil {
		if errors.Is(err, repository.ErrNotFollowing) {
			c.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "You are not following this user",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to unfollow user",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "User unfollowed successfully",
	})
}

func (h *UserHandler) GetFollowers(c *gin.Context) {
	userID := c.GetString("user_id")

	followers, err := h.engagementRepo.Followers(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to fetch followers",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Followers fetched successfully",
		"data":    followers,
	})
}

func (h *UserHandler) GetFollowing(c *gin.Context) {
	userID := c.GetString("user_id")

	following, err := h.engagementRepo.Following(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to fetch following",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Following fetched successfully",
		"data":    following,
	})
}

func (h *UserHandler) CreateArtistRequest(c *gin.Context) {
	userID := c.GetString("user_id")

	var req struct {
		Description string `json:"description"`
	}
	_ = c.ShouldBindJSON(&req)

	pending, err := h.userRepo.HasPendingArtistRequest(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to check existing requests",
		})
		return
	}
	if pending {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "You already have a pending request",
		})
		return
	}

	artistRequest := &models.ArtistRequest{
		UserID:      userID,
		Description: req.Description,
		Status:      models.ArtistRequestPending,
	}
	if err := h.userRepo.CreateArtistRequest(artistRequest); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to create artist request",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Artist request created successfully",
		"data":    artistRequest,
	})
}

// UpdateArtistRequestStatus approves or rejects a pending request; approval
// promotes the requester to the artist role.
func (h *UserHandler) UpdateArtistRequestStatus(c *gin.Context) {
	requestID := c.Param("id")

	var req struct {
		Status string `json:"status" binding:"required,oneof=Approved Rejected"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid status. Use 'Approved' or 'Rejected'",
		})
		return
	}

	artistRequest, err := h.userRepo.FindArtistRequestByID(requestID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Artist request not found",
		})
		return
	}
	if artistRequest.Status != models.ArtistRequestPending {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "This request has already been processed",
		})
		return
	}

	if req.Status == models.ArtistRequestApproved {
		if err := h.userRepo.SetRole(artistRequest.UserID, models.RoleArtist); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"status":  "error",
				"message": "Failed to promote user",
			})
			return
		}
		now := time.Now()
		artistRequest.ApprovedAt = &now
	}
	artistRequest.Status = req.Status

	if err := h.userRepo.UpdateArtistRequest(artistRequest); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to update artist request",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Artist request updated successfully",
		"data":    artistRequest,
	})
}
