package seed

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"mediavault/internal/domain/services"
	"mediavault/internal/repository/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DemoSeeder populates a user's library with a small demo hierarchy:
// a few folders, filed and unfiled resources, a favorite, and one
// trashed record.
type DemoSeeder struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
	store  services.ObjectStore // nil = skip placeholder object bytes
	logger *slog.Logger
}

// NewDemoSeeder creates a new demo seeder
func NewDemoSeeder(pool *pgxpool.Pool, tables *postgres.TableNames, store services.ObjectStore, logger *slog.Logger) *DemoSeeder {
	return &DemoSeeder{
		pool:   pool,
		tables: tables,
		store:  store,
		logger: logger,
	}
}

type seedFolder struct {
	id       string
	parentID *string
	name     string
}

type seedResource struct {
	id          string
	name        string
	original    string
	fileType    string
	mimeType    string
	size        int64
	folderIDs   []string
	isFavorite  bool
	isDeleted   bool
	placeholder string // object bytes written when a store is configured
}

var demoFolders = []seedFolder{
	{id: "aaaaaaaa-0000-0000-0000-000000000001", name: "Trips"},
	{id: "aaaaaaaa-0000-0000-0000-000000000002", parentID: strPtr("aaaaaaaa-0000-0000-0000-000000000001"), name: "Japan"},
	{id: "aaaaaaaa-0000-0000-0000-000000000003", parentID: strPtr("aaaaaaaa-0000-0000-0000-000000000001"), name: "Italy"},
	{id: "aaaaaaaa-0000-0000-0000-000000000004", name: "Work Documents"},
}

var demoResources = []seedResource{
	{
		id:          "bbbbbbbb-0000-0000-0000-000000000001",
		name:        "tokyo-skyline",
		original:    "tokyo-skyline.jpg",
		fileType:    "image",
		mimeType:    "image/jpeg",
		size:        2457600,
		folderIDs:   []string{"aaaaaaaa-0000-0000-0000-000000000002"},
		isFavorite:  true,
		placeholder: "placeholder jpeg bytes",
	},
	{
		id:          "bbbbbbbb-0000-0000-0000-000000000002",
		name:        "shibuya-crossing",
		original:    "shibuya-crossing.mp4",
		fileType:    "video",
		mimeType:    "video/mp4",
		size:        52428800,
		folderIDs:   []string{"aaaaaaaa-0000-0000-0000-000000000002"},
		placeholder: "placeholder mp4 bytes",
	},
	{
		id:          "bbbbbbbb-0000-0000-0000-000000000003",
		name:        "colosseum",
		original:    "colosseum.jpg",
		fileType:    "image",
		mimeType:    "image/jpeg",
		size:        3145728,
		folderIDs:   []string{"aaaaaaaa-0000-0000-0000-000000000003"},
		placeholder: "placeholder jpeg bytes",
	},
	{
		id:          "bbbbbbbb-0000-0000-0000-000000000004",
		name:        "quarterly-report",
		original:    "quarterly-report.pdf",
		fileType:    "document",
		mimeType:    "application/pdf",
		size:        524288,
		folderIDs:   []string{"aaaaaaaa-0000-0000-0000-000000000004"},
		placeholder: "placeholder pdf bytes",
	},
	{
		// Unfiled: lives at the root, no membership rows
		id:          "bbbbbbbb-0000-0000-0000-000000000005",
		name:        "screenshot",
		original:    "screenshot.png",
		fileType:    "image",
		mimeType:    "image/png",
		size:        1048576,
		placeholder: "placeholder png bytes",
	},
	{
		id:          "bbbbbbbb-0000-0000-0000-000000000006",
		name:        "old-recording",
		original:    "old-recording.mov",
		fileType:    "video",
		mimeType:    "video/quicktime",
		size:        104857600,
		isDeleted:   true,
		placeholder: "placeholder mov bytes",
	},
}

// Seed inserts the demo folders and resources for the given user.
// Inserts are idempotent via ON CONFLICT DO NOTHING on fixed IDs.
func (s *DemoSeeder) Seed(ctx context.Context, userID string) error {
	now := time.Now()

	for _, folder := range demoFolders {
		query := `INSERT INTO ` + s.tables.Folders + ` (id, user_id, parent_folder_id, name, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (id) DO NOTHING`
		if _, err := s.pool.Exec(ctx, query, folder.id, userID, folder.parentID, folder.name, now, now); err != nil {
			return err
		}
	}
	s.logger.Info("demo folders seeded", "count", len(demoFolders))

	for i, res := range demoResources {
		storagePath := userID + "/" + res.original
		createdAt := now.Add(time.Duration(i) * time.Second)

		var deletedAt *time.Time
		if res.isDeleted {
			deletedAt = &createdAt
		}

		query := `INSERT INTO ` + s.tables.Resources + ` (id, user_id, name, original_name, file_type, mime_type, file_size, storage_path, thumbnail_path, is_favorite, is_deleted, deleted_at, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
			ON CONFLICT (id) DO NOTHING`
		if _, err := s.pool.Exec(ctx, query,
			res.id, userID, res.name, res.original, res.fileType, res.mimeType,
			res.size, storagePath, nil, res.isFavorite, res.isDeleted, deletedAt,
			createdAt, createdAt,
		); err != nil {
			return err
		}

		for _, folderID := range res.folderIDs {
			memberQuery := `INSERT INTO ` + s.tables.ResourceFolders + ` (resource_id, folder_id)
				VALUES ($1, $2)
				ON CONFLICT DO NOTHING`
			if _, err := s.pool.Exec(ctx, memberQuery, res.id, folderID); err != nil {
				return err
			}
		}

		if s.store != nil && res.placeholder != "" {
			reader := strings.NewReader(res.placeholder)
			if err := s.store.Put(ctx, storagePath, reader, int64(len(res.placeholder)), res.mimeType); err != nil {
				s.logger.Warn("failed to write placeholder object",
					"path", storagePath,
					"error", err,
				)
			}
		}
	}
	s.logger.Info("demo resources seeded", "count", len(demoResources))

	return nil
}

func strPtr(s string) *string { return &s }
