package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"mediavault/internal/domain"
	"mediavault/internal/domain/models"
	"mediavault/internal/domain/repositories"
)

const resourceColumns = `id, user_id, name, original_name, file_type, mime_type, file_size,
		storage_path, thumbnail_path, is_favorite, is_deleted, deleted_at, created_at, updated_at`

// PostgresResourceRepository implements the ResourceRepository interface
type PostgresResourceRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewResourceRepository creates a new resource repository
func NewResourceRepository(config *RepositoryConfig) repositories.ResourceRepository {
	return &PostgresResourceRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create inserts a new resource record
func (r *PostgresResourceRepository) Create(ctx context.Context, resource *models.Resource) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, name, original_name, file_type, mime_type, file_size,
			storage_path, thumbnail_path, is_favorite, is_deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at
	`, r.tables.Resources)

	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		resource.UserID,
		resource.Name,
		resource.OriginalName,
		resource.FileType,
		resource.MimeType,
		resource.FileSize,
		resource.StoragePath,
		resource.ThumbnailPath,
		resource.IsFavorite,
		resource.IsDeleted,
		resource.CreatedAt,
		resource.UpdatedAt,
	).Scan(&resource.ID, &resource.CreatedAt, &resource.UpdatedAt)

	if err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("resource '%s': %w", resource.Name, domain.ErrConflict)
		}
		return fmt.Errorf("create resource: %w", err)
	}

	return nil
}

// GetByID retrieves a resource by ID
func (r *PostgresResourceRepository) GetByID(ctx context.Context, id, userID string) (*models.Resource, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1 AND user_id = $2
	`, resourceColumns, r.tables.Resources)

	resource, err := scanResourceRow(GetExecutor(ctx, r.pool).QueryRow(ctx, query, id, userID))
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("resource %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get resource: %w", err)
	}

	return resource, nil
}

// ListByFolder lists resources that are members of the given folder,
// restricted to the deleted flag, newest-created first
func (r *PostgresResourceRepository) ListByFolder(ctx context.Context, userID, folderID string, deleted bool) ([]models.Resource, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s res
		WHERE res.user_id = $1
		  AND res.is_deleted = $2
		  AND EXISTS (
			SELECT 1 FROM %s rf
			WHERE rf.resource_id = res.id AND rf.folder_id = $3
		  )
		ORDER BY res.created_at DESC
	`, qualifyColumns("res"), r.tables.Resources, r.tables.ResourceFolders)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, userID, deleted, folderID)
	if err != nil {
		return nil, fmt.Errorf("list resources by folder: %w", err)
	}
	defer rows.Close()

	return scanResources(rows)
}

// ListUnfiled lists resources with no folder membership at all. The root
// scope is unfiled resources only, never "all resources regardless of folder".
func (r *PostgresResourceRepository) ListUnfiled(ctx context.Context, userID string, deleted bool) ([]models.Resource, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s res
		WHERE res.user_id = $1
		  AND res.is_deleted = $2
		  AND NOT EXISTS (
			SELECT 1 FROM %s rf
			WHERE rf.resource_id = res.id
		  )
		ORDER BY res.created_at DESC
	`, qualifyColumns("res"), r.tables.Resources, r.tables.ResourceFolders)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, userID, deleted)
	if err != nil {
		return nil, fmt.Errorf("list unfiled resources: %w", err)
	}
	defer rows.Close()

	return scanResources(rows)
}

// SetFavorite sets the favorite flag and returns the updated record
func (r *PostgresResourceRepository) SetFavorite(ctx context.Context, id, userID string, favorite bool) (*models.Resource, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET is_favorite = $1, updated_at = $2
		WHERE id = $3 AND user_id = $4
		RETURNING %s
	`, r.tables.Resources, resourceColumns)

	resource, err := scanResourceRow(GetExecutor(ctx, r.pool).QueryRow(ctx, query, favorite, time.Now(), id, userID))
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("resource %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("set favorite: %w", err)
	}

	return resource, nil
}

// SetDeleted sets the soft-delete flag and timestamp and returns the updated record
func (r *PostgresResourceRepository) SetDeleted(ctx context.Context, id, userID string, deleted bool, deletedAt *time.Time) (*models.Resource, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET is_deleted = $1, deleted_at = $2, updated_at = $3
		WHERE id = $4 AND user_id = $5
		RETURNING %s
	`, r.tables.Resources, resourceColumns)

	resource, err := scanResourceRow(GetExecutor(ctx, r.pool).QueryRow(ctx, query, deleted, deletedAt, time.Now(), id, userID))
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("resource %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("set deleted: %w", err)
	}

	return resource, nil
}

// Delete permanently removes the record and its folder memberships
func (r *PostgresResourceRepository) Delete(ctx context.Context, id, userID string) error {
	membershipQuery := fmt.Sprintf(`
		DELETE FROM %s WHERE resource_id = $1
	`, r.tables.ResourceFolders)

	if _, err := GetExecutor(ctx, r.pool).Exec(ctx, membershipQuery, id); err != nil {
		return fmt.Errorf("delete resource memberships: %w", err)
	}

	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1 AND user_id = $2
	`, r.tables.Resources)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete resource: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("resource %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// AddToFolder inserts a membership pair
func (r *PostgresResourceRepository) AddToFolder(ctx context.Context, resourceID, folderID string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (resource_id, folder_id)
		VALUES ($1, $2)
	`, r.tables.ResourceFolders)

	_, err := GetExecutor(ctx, r.pool).Exec(ctx, query, resourceID, folderID)
	if err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("resource already in folder: %w", domain.ErrConflict)
		}
		if isPgForeignKeyError(err) {
			return fmt.Errorf("resource or folder: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("add resource to folder: %w", err)
	}

	return nil
}

// RemoveFromFolder deletes a membership pair
func (r *PostgresResourceRepository) RemoveFromFolder(ctx context.Context, resourceID, folderID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE resource_id = $1 AND folder_id = $2
	`, r.tables.ResourceFolders)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, resourceID, folderID)
	if err != nil {
		return fmt.Errorf("remove resource from folder: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("membership: %w", domain.ErrNotFound)
	}

	return nil
}

// qualifyColumns prefixes the resource column list with a table alias
func qualifyColumns(alias string) string {
	return fmt.Sprintf(`%s.id, %s.user_id, %s.name, %s.original_name, %s.file_type, %s.mime_type,
		%s.file_size, %s.storage_path, %s.thumbnail_path, %s.is_favorite, %s.is_deleted,
		%s.deleted_at, %s.created_at, %s.updated_at`,
		alias, alias, alias, alias, alias, alias, alias,
		alias, alias, alias, alias, alias, alias, alias)
}

// scanResourceRow scans a single resource row
func scanResourceRow(row pgx.Row) (*models.Resource, error) {
	var resource models.Resource
	err := row.Scan(
		&resource.ID,
		&resource.UserID,
		&resource.Name,
		&resource.OriginalName,
		&resource.FileType,
		&resource.MimeType,
		&resource.FileSize,
		&resource.StoragePath,
		&resource.ThumbnailPath,
		&resource.IsFavorite,
		&resource.IsDeleted,
		&resource.DeletedAt,
		&resource.CreatedAt,
		&resource.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &resource, nil
}

// scanResources drains a resource result set
func scanResources(rows pgx.Rows) ([]models.Resource, error) {
	var resources []models.Resource
	for rows.Next() {
		resource, err := scanResourceRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan resource: %w", err)
		}
		resources = append(resources, *resource)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate resources: %w", err)
	}

	return resources, nil
}
