package services

import (
	"context"
	"io"

	"mediavault/internal/domain/models"
)

// ResourceService handles resource listing and trash/favorite bookkeeping
type ResourceService interface {
	// ListResources fetches the scope (a folder, the unfiled root, or trash)
	// and returns the raw records, newest-created first
	ListResources(ctx context.Context, userID string, scope ResourceScope) ([]models.Resource, error)

	// ListResourceView fetches the scope and composes the display-ready,
	// category- and search-filtered list
	ListResourceView(ctx context.Context, userID string, scope ResourceScope, category models.Category, search string) ([]models.DisplayResource, error)

	// ToggleFavorite flips the favorite flag and returns the updated record
	ToggleFavorite(ctx context.Context, userID, resourceID string) (*models.Resource, error)

	// SoftDelete moves a resource to trash. A missing record is treated
	// as already satisfied.
	SoftDelete(ctx context.Context, userID, resourceID string) error

	// Restore moves a resource out of trash. A missing record is treated
	// as already satisfied.
	Restore(ctx context.Context, userID, resourceID string) error

	// PermanentlyDelete irreversibly removes a trashed resource, its
	// memberships, and its stored objects
	PermanentlyDelete(ctx context.Context, userID, resourceID string) error

	// Download opens the stored bytes for a resource
	Download(ctx context.Context, userID, resourceID string) (*models.Resource, io.ReadCloser, error)
}

// ResourceScope selects which resource records are fetched: a folder's
// members or the unfiled root, with or without trashed records.
// The root scope is unfiled resources only, not "all resources".
type ResourceScope struct {
	FolderID    *string
	ShowDeleted bool
}
