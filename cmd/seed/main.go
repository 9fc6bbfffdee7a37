package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"mediavault/internal/auth"
	"mediavault/internal/config"
	"mediavault/internal/repository/postgres"
	"mediavault/internal/seed"
	"mediavault/internal/storage"

	"mediavault/internal/domain/services"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	// Parse command-line flags
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed demo data")
	clearData := flag.Bool("clear-data", false, "Clear all resources and folders (keep schema)")
	demoEmail := flag.String("demo-email", "", "Also create this demo user via the Supabase admin API")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && (*dropTables || *clearData) {
		log.Fatalf("BLOCKED: Cannot run destructive operations (--drop-tables or --clear-data) in production environment")
	}

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	switch {
	case *clearData:
		log.Printf("Clearing data only (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	case *schemaOnly:
		log.Printf("Setting up schema only (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	default:
		log.Printf("Seeding database (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	}

	// Create database connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Create table names
	tables := postgres.NewTableNames(cfg.TablePrefix)

	// Drop tables if requested
	if *dropTables {
		log.Println("Dropping all tables...")
		if err := dropAllTables(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		log.Println("Tables dropped")
	}

	// Run schema to ensure tables exist
	log.Println("Ensuring database schema is up to date...")
	if err := runSchema(ctx, pool, tables, cfg.TablePrefix); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	log.Println("Schema ready")

	// Exit early if schema-only mode
	if *schemaOnly {
		log.Println("Schema setup complete (schema-only mode)")
		return
	}

	// Exit early if clear-data mode
	if *clearData {
		log.Println("Clearing existing resources and folders...")
		if err := clearUserData(ctx, pool, tables, cfg.DemoUserID); err != nil {
			log.Fatalf("Failed to clear data: %v", err)
		}
		log.Println("Data cleared successfully")
		return
	}

	// Optionally create a demo auth user so the seeded data has a real
	// identity behind it
	userID := cfg.DemoUserID
	if *demoEmail != "" {
		if cfg.SupabaseURL == "" || cfg.SupabaseKey == "" {
			log.Fatalf("--demo-email requires SUPABASE_URL and SUPABASE_KEY")
		}
		adminClient := auth.NewAdminClient(cfg.SupabaseURL, cfg.SupabaseKey)
		user, err := adminClient.CreateUser(&auth.CreateUserRequest{
			Email:        *demoEmail,
			Password:     "demo-password-change-me",
			EmailConfirm: true,
		})
		if err != nil {
			log.Fatalf("Failed to create demo user: %v", err)
		}
		userID = user.ID
		log.Printf("Demo user created: %s (ID: %s)", user.Email, user.ID)
	}

	// Connect object storage for placeholder bytes; seeding still works
	// without it, downloads just 404
	var store services.ObjectStore
	if s, err := storage.NewMinioStore(ctx, cfg.Storage, logger); err != nil {
		log.Printf("Warning: object storage unavailable, skipping placeholder objects: %v", err)
	} else {
		store = s
	}

	// Clear existing data before re-seeding
	log.Println("Clearing existing resources and folders...")
	if err := clearUserData(ctx, pool, tables, userID); err != nil {
		log.Printf("Warning: Could not clear data: %v", err)
	}

	// Seed demo hierarchy
	log.Println("Seeding demo folders and resources...")
	seeder := seed.NewDemoSeeder(pool, tables, store, logger)
	if err := seeder.Seed(ctx, userID); err != nil {
		log.Fatalf("Failed to seed demo data: %v", err)
	}

	log.Println("Seeding complete!")
}

// runSchema creates tables if they don't exist
func runSchema(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames, tablePrefix string) error {
	// Enable UUID extension
	_, err := pool.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"")
	if err != nil {
		return err
	}

	// Create folders table
	createFolders := `
		CREATE TABLE IF NOT EXISTS ` + tables.Folders + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			user_id UUID NOT NULL,
			parent_folder_id UUID REFERENCES ` + tables.Folders + `(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW(),
			UNIQUE(user_id, parent_folder_id, name)
		)
	`
	if _, err := pool.Exec(ctx, createFolders); err != nil {
		return err
	}

	// Create resources table
	createResources := `
		CREATE TABLE IF NOT EXISTS ` + tables.Resources + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			user_id UUID NOT NULL,
			name TEXT NOT NULL,
			original_name TEXT NOT NULL,
			file_type TEXT NOT NULL,
			mime_type TEXT NOT NULL,
			file_size BIGINT NOT NULL DEFAULT 0,
			storage_path TEXT NOT NULL,
			thumbnail_path TEXT,
			is_favorite BOOLEAN NOT NULL DEFAULT FALSE,
			is_deleted BOOLEAN NOT NULL DEFAULT FALSE,
			deleted_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createResources); err != nil {
		return err
	}

	// Create resource-folder membership table
	createMemberships := `
		CREATE TABLE IF NOT EXISTS ` + tables.ResourceFolders + ` (
			resource_id UUID NOT NULL REFERENCES ` + tables.Resources + `(id) ON DELETE CASCADE,
			folder_id UUID NOT NULL REFERENCES ` + tables.Folders + `(id) ON DELETE CASCADE,
			PRIMARY KEY (resource_id, folder_id)
		)
	`
	if _, err := pool.Exec(ctx, createMemberships); err != nil {
		return err
	}

	// Create indexes
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `folders_user_parent ON ` + tables.Folders + `(user_id, parent_folder_id)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_` + tablePrefix + `folders_root_unique ON ` + tables.Folders + `(user_id, name) WHERE parent_folder_id IS NULL`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `resources_user_created ON ` + tables.Resources + `(user_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `resources_user_deleted ON ` + tables.Resources + `(user_id, is_deleted)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `resource_folders_folder ON ` + tables.ResourceFolders + `(folder_id)`,
	}

	for _, indexSQL := range indexes {
		if _, err := pool.Exec(ctx, indexSQL); err != nil {
			return err
		}
	}

	return nil
}

// dropAllTables drops all tables in reverse order (to respect foreign keys)
func dropAllTables(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	tableNames := []string{
		tables.ResourceFolders,
		tables.Resources,
		tables.Folders,
	}

	for _, table := range tableNames {
		dropSQL := "DROP TABLE IF EXISTS " + table + " CASCADE"
		if _, err := pool.Exec(ctx, dropSQL); err != nil {
			return err
		}
		log.Printf("  Dropped %s", table)
	}

	return nil
}

// clearUserData clears all resources and folders for a user
func clearUserData(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames, userID string) error {
	// Memberships cascade from resources, but delete explicitly so a
	// partial failure never strands rows
	_, err := pool.Exec(ctx, "DELETE FROM "+tables.ResourceFolders+" WHERE resource_id IN (SELECT id FROM "+tables.Resources+" WHERE user_id = $1)", userID)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, "DELETE FROM "+tables.Resources+" WHERE user_id = $1", userID)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, "DELETE FROM "+tables.Folders+" WHERE user_id = $1", userID)
	if err != nil {
		return err
	}

	return nil
}
