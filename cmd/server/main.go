package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"mediavault/internal/auth"
	"mediavault/internal/config"
	"mediavault/internal/handler"
	"mediavault/internal/mediatype"
	"mediavault/internal/middleware"
	"mediavault/internal/repository/postgres"
	"mediavault/internal/service"
	"mediavault/internal/storage"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	var logOutput io.Writer = os.Stdout
	if cfg.LogDir != "" {
		logFile, err := config.SetupLogFile(cfg.LogDir, 10)
		if err != nil {
			log.Fatalf("Failed to set up log file: %v", err)
		}
		defer logFile.Close()
		logOutput = io.MultiWriter(os.Stdout, logFile)
	}

	logger := slog.New(slog.NewJSONHandler(logOutput, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger) // Set as default logger

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Create JWT verifier for Supabase authentication
	jwtVerifier, err := auth.NewJWTVerifier(cfg.AuthJWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected",
		"max_conns", 25,
		"min_conns", 5,
	)

	// Create repositories
	tables := postgres.NewTableNames(cfg.TablePrefix)
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	folderRepo := postgres.NewFolderRepository(repoConfig)
	resourceRepo := postgres.NewResourceRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	// Connect object storage
	store, err := storage.NewMinioStore(ctx, cfg.Storage, logger)
	if err != nil {
		log.Fatalf("Failed to connect object storage: %v", err)
	}
	logger.Info("object storage connected",
		"endpoint", cfg.Storage.Endpoint,
		"bucket", cfg.Storage.Bucket,
	)

	// Initialize media type registry
	typeRegistry, err := mediatype.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to initialize media type registry: %v", err)
	}

	// Create services
	folderService := service.NewFolderService(folderRepo, resourceRepo, logger)
	resourceService := service.NewResourceService(resourceRepo, store, logger)
	treeService := service.NewTreeService(folderRepo, logger)
	uploadService := service.NewUploadService(resourceRepo, folderRepo, store, typeRegistry, txManager, logger)

	// Create handlers
	folderHandler := handler.NewFolderHandler(folderService, logger)
	treeHandler := handler.NewTreeHandler(treeService, logger)
	resourceHandler := handler.NewResourceHandler(resourceService, logger)
	uploadHandler := handler.NewUploadHandler(uploadService, logger)
	authHandler := handler.NewAuthHandler(auth.NewAdminClient(cfg.SupabaseURL, cfg.SupabaseKey), logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", handler.HealthCheck)

	// Folder routes
	mux.HandleFunc("GET /api/folders", folderHandler.ListFolders)
	mux.HandleFunc("POST /api/folders", folderHandler.CreateFolder)
	mux.HandleFunc("GET /api/folders/tree", treeHandler.GetFolderTree)
	mux.HandleFunc("PATCH /api/folders/{id}", folderHandler.UpdateFolder)
	mux.HandleFunc("DELETE /api/folders/{id}", folderHandler.DeleteFolder)
	mux.HandleFunc("GET /api/folders/{id}/breadcrumb", treeHandler.GetBreadcrumb)

	// Resource routes
	mux.HandleFunc("GET /api/resources", resourceHandler.ListResources)
	mux.HandleFunc("POST /api/resources/{id}/favorite", resourceHandler.ToggleFavorite)
	mux.HandleFunc("DELETE /api/resources/{id}", resourceHandler.SoftDelete)
	mux.HandleFunc("POST /api/resources/{id}/restore", resourceHandler.Restore)
	mux.HandleFunc("DELETE /api/resources/{id}/permanent", resourceHandler.PermanentlyDelete)
	mux.HandleFunc("GET /api/resources/{id}/download", resourceHandler.Download)

	// Resource-folder membership routes
	mux.HandleFunc("POST /api/resources/{id}/folders/{folderID}", folderHandler.AssignResource)
	mux.HandleFunc("DELETE /api/resources/{id}/folders/{folderID}", folderHandler.UnassignResource)

	// Upload routes
	mux.HandleFunc("POST /api/uploads", uploadHandler.Upload)

	// Session routes
	mux.HandleFunc("POST /api/auth/signout", authHandler.SignOut)

	// Build middleware chain
	var httpHandler http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Auth → Routes
	httpHandler = middleware.AuthMiddleware(jwtVerifier, logger)(httpHandler)
	httpHandler = middleware.Recovery(logger)(httpHandler)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	httpHandler = corsHandler.Handler(httpHandler)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      httpHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // Disabled to allow large download streams
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
