package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"Posts/internal/api/middleware"
	"Posts/internal/api/routes"
	"Posts/internal/auth"
	"Posts/internal/config"
	"Posts/internal/core/following"
	"Posts/internal/core/images"
	"Posts/internal/core/posts"
	"Posts/internal/db/migrations"
	postgresRepo "Posts/internal/db/postgres"
)

func main() {
	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Warning: failed to load .env: %v", err)
	}

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlx.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer func() { _ = db.Close() }()

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		log.Fatal("Failed to ping database:", err)
	}
	log.Println("Connected to posts database")

	if err := migrations.Up(db.DB); err != nil {
		log.Fatal(err)
	}
	log.Println("Migrations completed successfully")

	// Token verifier: HS256 shared secret, plus JWKS keys when configured
	var keyFetcher auth.KeyFetcher
	if cfg.JWKSURL != "" {
		fetcher, err := auth.NewJWKSFetcher(ctx, cfg.JWKSURL, 15*time.Minute)
		if err != nil {
			log.Fatal("Failed to set up JWKS fetcher: ", err)
		}
		keyFetcher = fetcher
		log.Printf("Asymmetric token verification enabled (JWKS: %s)", cfg.JWKSURL)
	}
	verifier := auth.NewJWTVerifier([]byte(cfg.SecretKey), keyFetcher)

	// Image storage
	var store images.Store
	var uploadDir string
	switch cfg.StorageBackend {
	case config.StorageGCS:
		gcsStore, err := images.NewGCSStore(ctx, cfg.BucketName, cfg.CredentialsFile)
		if err != nil {
			log.Fatal("Failed to set up GCS storage: ", err)
		}
		defer func() { _ = gcsStore.Close() }()
		store = gcsStore
		log.Printf("Storing images in GCS bucket %s", cfg.BucketName)
	default:
		localStore, err := images.NewLocalStore(cfg.UploadDir, cfg.PublicBaseURL)
		if err != nil {
			log.Fatal("Failed to set up local storage: ", err)
		}
		store = localStore
		uploadDir = localStore.Dir()
		log.Printf("Storing images in %s", uploadDir)
	}
	uploader := images.NewUploadService(store, slog.Default())

	// Following lookup (optional)
	var followingLookup following.Lookup
	if cfg.FollowingServiceURL != "" {
		client, err := following.NewClient(cfg.FollowingServiceURL, following.WithTimeout(cfg.FollowingTimeout))
		if err != nil {
			log.Fatal("Failed to set up following client: ", err)
		}
		followingLookup = client
	} else {
		log.Println("Warning: FOLLOWING_SERVICE_URL not set, /posts/following/all is disabled")
	}

	// Initialize repositories and services
	postRepo := postgresRepo.NewPostRepository(db)
	likeRepo := postgresRepo.NewLikeRepository(db)
	postService := posts.NewPostService(
		postRepo,
		likeRepo,
		verifier,
		uploader,
		followingLookup,
		posts.ServiceConfig{
			UploadTimeout:    cfg.UploadTimeout,
			FollowingTimeout: cfg.FollowingTimeout,
		},
		slog.Default(),
	)

	r := chi.NewRouter()

	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
		},
		MaxAge: 300,
	}))

	routes.RegisterHealthRoutes(r, db)

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)
	defer rateLimiter.Stop()
	r.Group(func(r chi.Router) {
		r.Use(rateLimiter.Middleware)
		routes.RegisterWebRoutes(r, uploadDir)
		routes.RegisterPostRoutes(r, postService)
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		fmt.Printf("Posts service starting on port %s\n", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed: ", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Graceful shutdown failed: %v", err)
	}
}
