package services

import (
	"context"

	"mediavault/internal/domain/models"
)

// TreeService builds renderable folder hierarchies for a user
type TreeService interface {
	// GetFolderTree returns the nested folder forest built from the
	// user's flat folder list
	GetFolderTree(ctx context.Context, userID string) (*models.FolderTree, error)

	// GetBreadcrumb returns the ordered root-to-target folder path.
	// An unknown target yields an empty path, not an error.
	GetBreadcrumb(ctx context.Context, userID, folderID string) ([]models.Folder, error)
}
