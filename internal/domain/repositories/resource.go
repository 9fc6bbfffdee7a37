package repositories

import (
	"context"
	"time"

	"mediavault/internal/domain/models"
)

// ResourceRepository defines data access operations for resource records and
// their folder memberships. Memberships are a many-to-many join: a resource
// can live in several folders, and "unfiled" means no membership at all.
type ResourceRepository interface {
	// Create inserts a new resource record
	Create(ctx context.Context, resource *models.Resource) error

	// GetByID retrieves a resource by ID
	GetByID(ctx context.Context, id, userID string) (*models.Resource, error)

	// ListByFolder lists resources that are members of the given folder,
	// restricted to the deleted flag, newest-created first
	ListByFolder(ctx context.Context, userID, folderID string, deleted bool) ([]models.Resource, error)

	// ListUnfiled lists resources with no folder membership at all,
	// restricted to the deleted flag, newest-created first
	ListUnfiled(ctx context.Context, userID string, deleted bool) ([]models.Resource, error)

	// SetFavorite sets the favorite flag and returns the updated record
	SetFavorite(ctx context.Context, id, userID string, favorite bool) (*models.Resource, error)

	// SetDeleted sets the soft-delete flag and timestamp (nil clears it)
	// and returns the updated record
	SetDeleted(ctx context.Context, id, userID string, deleted bool, deletedAt *time.Time) (*models.Resource, error)

	// Delete permanently removes the record and its folder memberships
	Delete(ctx context.Context, id, userID string) error

	// AddToFolder inserts a membership pair; inserting an existing pair
	// returns domain.ErrConflict
	AddToFolder(ctx context.Context, resourceID, folderID string) error

	// RemoveFromFolder deletes a membership pair; a missing pair returns
	// domain.ErrNotFound
	RemoveFromFolder(ctx context.Context, resourceID, folderID string) error
}
