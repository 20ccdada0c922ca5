package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Asna-Zulfiqar/spotify-clone/internal/config"
	"github.com/Asna-Zulfiqar/spotify-clone/internal/database"
	"github.com/Asna-Zulfiqar/spotify-clone/internal/handlers"
	"github.com/Asna-Zulfiqar/spotify-clone/internal/repository"
	"github.com/Asna-Zulfiqar/spotify-clone/internal/routes"
	"github.com/Asna-Zulfiqar/spotify-clone/internal/services"
)

func main() {
	if err := config.LoadConfig(); err != nil {
		log.Println("⚠️ Config load warning:", err)
		log.Println("⚠️ Using environment variables only")
	}

	if err := database.ConnectDB(); err != nil {
		log.Fatal("❌ Database connection failed: ", err)
	}
	database.RunMigrations()

	// Keep the pooled connections alive behind aggressive cloud proxies.
	go func() {
		sqlDB, err := database.DB.DB()
		if err != nil {
			return
		}
		for {
			sqlDB.Ping()
			time.Sleep(5 * time.Minute)
		}
	}()

	userRepo := repository.NewUserRepository(database.DB)
	songRepo := repository.NewSongRepository(database.DB)
	albumRepo := repository.NewAlbumRepository(database.DB)
	playlistRepo := repository.NewPlaylistRepository(database.DB)
	engagementRepo := repository.NewEngagementRepository(database.DB)
	recentRepo := repository.NewRecentRepository(database.DB)

	exploreService := services.NewExploreService(
		userRepo,
		songRepo,
		albumRepo,
		playlistRepo,
		engagementRepo,
		recentRepo,
	)
	searchService := services.NewSearchService(songRepo, albumRepo, userRepo, playlistRepo)
	billingService := services.NewBillingService(userRepo, database.DB)

	authHandler := handlers.NewAuthHandler(userRepo)
	userHandler := handlers.NewUserHandler(userRepo, engagementRepo)
	songHandler := handlers.NewSongHandler(songRepo, engagementRepo, recentRepo)
	albumHandler := handlers.NewAlbumHandler(albumRepo)
	playlistHandler := handlers.NewPlaylistHandler(playlistRepo, songRepo, recentRepo)
	exploreHandler := handlers.NewExploreHandler(exploreService, searchService)
	paymentHandler := handlers.NewPaymentHandler(billingService, userRepo)

	router := routes.SetupRoutes(
		authHandler,
		userHandler,
		songHandler,
		albumHandler,
		playlistHandler,
		exploreHandler,
		paymentHandler,
		userRepo,
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = config.GlobalConfig.ServerPort
	}
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr:         "0.0.0.0:" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Println("🎵 =======================================")
		log.Println("🎵   SPOTIFY CLONE API SERVER")
		log.Println("🎵 =======================================")
		log.Printf("🎵   Running on: %s", server.Addr)
		log.Printf("🎵   Environment: %s", config.GlobalConfig.Env)
		log.Println("🎵 =======================================")
		log.Println("🚀 Server started")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Println("❌ Server error:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Println("❌ Forced shutdown:", err)
	}

	log.Println("✅ Server exited properly")
}
