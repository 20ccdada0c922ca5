package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Asna-Zulfiqar/spotify-clone/internal/repository"
)

// RequireRole guards a route group behind a user role. It runs after
// JWTMiddleware, which has already put user_id in the context.
func RequireRole(userRepo repository.UserRepository, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "Authentication required",
			})
			c.Abort()
			return
		}

		user, err := userRepo.FindUserByID(userID)
		if err != nil || user.Role != role {
			c.JSON(http.StatusForbidden, gin.H{
				"status":  "error",
				"message": role + " access required",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
