package routes

import (
	"log"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Asna-Zulfiqar/spotify-clone/internal/config"
	"github.com/Asna-Zulfiqar/spotify-clone/internal/handlers"
	"github.com/Asna-Zulfiqar/spotify-clone/internal/middleware"
	"github.com/Asna-Zulfiqar/spotify-clone/internal/models"
	"github.com/Asna-Zulfiqar/spotify-clone/internal/repository"
)

func SetupRoutes(
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	songHandler *handlers.SongHandler,
	albumHandler *handlers.AlbumHandler,
	playlistHandler *handlers.PlaylistHandler,
	exploreHandler *handlers.ExploreHandler,
	paymentHandler *handlers.PaymentHandler,
	userRepo repository.UserRepository,
) *gin.Engine {

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	env := config.GlobalConfig.Env
	frontendURL := config.GlobalConfig.CORSOrigin

	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	if env == "production" {
		if frontendURL == "" {
			log.Fatal("❌ CORS_ORIGIN environment variable is not set in production")
		}
		corsConfig.AllowOrigins = []string{frontendURL}
	} else {
		allowedOrigins := []string{
			"http://localhost:3000",
			"http://localhost:5173",
			"http://127.0.0.1:3000",
			"http://127.0.0.1:5173",
		}
		if frontendURL != "" {
			allowedOrigins = append(allowedOrigins, frontendURL)
		}

		corsConfig.AllowOriginFunc = func(origin string) bool {
			for _, allowed := range allowedOrigins {
				if origin == allowed {
					return true
				}
			}
			return strings.HasPrefix(origin, "http://192.168.") || strings.HasPrefix(origin, "http://10.")
		}
	}

	router.Use(cors.New(corsConfig))

	router.Use(func(c *gin.Context) {
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Content-Security-Policy", "default-src 'self'")
		c.Next()
	})

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)

			authProtected := auth.Group("/")
			authProtected.Use(middleware.JWTMiddleware())
			{
				authProtected.GET("/me", authHandler.Me)
			}
		}

		// Public search; like status on the song list appears when a valid
		// token is supplied.
		api.GET("/search", exploreHandler.Search)

		songs := api.Group("/songs")
		songs.Use(middleware.OptionalJWTMiddleware())
		{
			songs.GET("", songHandler.GetAllSongs)
		}

		albums := api.Group("/albums")
		{
			albums.GET("", albumHandler.GetAllAlbums)
			albums.GET("/:id", albumHandler.GetAlbumByID)
		}

		protected := api.Group("/")
		protected.Use(middleware.JWTMiddleware())
		{
			// Retrieval counts as playback and feeds the recently-played
			// ring, so it requires an authenticated user.
			protected.GET("/songs/:id", songHandler.GetSongByID)
			protected.POST("/songs/:song_id/like", songHandler.LikeSong)
			protected.POST("/songs/:song_id/unlike", songHandler.UnlikeSong)

			user := protected.Group("/users")
			{
				user.GET("/profile", userHandler.GetProfile)
				user.PUT("/profile", userHandler.UpdateProfile)
				user.POST("/password", userHandler.UpdatePassword)
				user.GET("/likes", songHandler.GetUserLikes)
				user.POST("/follow/:user_id", userHandler.FollowUser)
				user.DELETE("/follow/:user_id", userHandler.UnfollowUser)
				user.GET("/followers", userHandler.GetFollowers)
				user.GET("/following", userHandler.GetFollowing)
				user.POST("/artist-request", userHandler.CreateArtistRequest)
			}

			admin := protected.Group("/admin")
			admin.Use(middleware.RequireRole(userRepo, models.RoleAdmin))
			{
				admin.POST("/artist-request/:id/status", userHandler.UpdateArtistRequestStatus)
			}

			playlists := protected.Group("/playlists")
			{
				playlists.GET("", playlistHandler.GetPublicPlaylists)
				playlists.GET("/my", playlistHandler.GetMyPlaylists)
				playlists.GET("/:id", playlistHandler.GetPlaylistByID)
				playlists.POST("", playlistHandler.CreatePlaylist)
				playlists.POST("/songs", playlistHandler.ToggleSong)
				playlists.DELETE("/:id", playlistHandler.DeletePlaylist)
			}

			protected.GET("/explore", exploreHandler.GetExplore)
			protected.GET("/recently_played", exploreHandler.GetRecentlyPlayed)

			payments := protected.Group("/payments")
			{
				payments.POST("/account", paymentHandler.CreateBillingAccount)
				payments.POST("/methods", paymentHandler.AddPaymentMethod)
				payments.GET("/methods", paymentHandler.ListPaymentMethods)
				payments.POST("/subscriptions", paymentHandler.Subscribe)
				payments.DELETE("/subscriptions/:id", paymentHandler.Unsubscribe)
				payments.GET("/subscriptions", paymentHandler.ListSubscriptions)
			}

			artist := protected.Group("/")
			artist.Use(middleware.RequireRole(userRepo, models.RoleArtist))
			{
				artist.POST("/songs", songHandler.CreateSong)
				artist.PUT("/songs/:id", songHandler.UpdateSong)
				artist.DELETE("/songs/:id", songHandler.DeleteSong)
				artist.POST("/albums", albumHandler.CreateAlbum)
				artist.PUT("/albums/:id", albumHandler.UpdateAlbum)
			}
		}
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "success",
			"message": "Server is running",
		})
	})

	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "success",
			"message": "Spotify Clone API",
			"version": "1.0.0",
		})
	})

	return router
}
