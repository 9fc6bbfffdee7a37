package repositories

import (
	"context"

	"mediavault/internal/domain/models"
)

// FolderRepository defines data access operations for folders.
// Every operation is scoped to the owning user.
type FolderRepository interface {
	// Create creates a new folder
	Create(ctx context.Context, folder *models.Folder) error

	// GetByID retrieves a folder by ID
	GetByID(ctx context.Context, id, userID string) (*models.Folder, error)

	// Update updates a folder (rename or move)
	Update(ctx context.Context, folder *models.Folder) error

	// Delete deletes a folder record. Child folders and resource
	// memberships are not touched here.
	Delete(ctx context.Context, id, userID string) error

	// ListByUser retrieves the user's full flat folder list, ordered by name
	ListByUser(ctx context.Context, userID string) ([]models.Folder, error)

	// ListChildren lists immediate child folders of parentID (nil = root level)
	ListChildren(ctx context.Context, parentID *string, userID string) ([]models.Folder, error)
}
