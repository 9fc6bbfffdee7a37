package services

import (
	"context"

	"mediavault/internal/domain/models"
	"mediavault/internal/httputil"
)

// FolderService handles folder business logic
type FolderService interface {
	// ListFolders returns the user's full flat folder list, ordered by name
	ListFolders(ctx context.Context, userID string) ([]models.Folder, error)

	// CreateFolder creates a new folder, optionally nested under a parent
	CreateFolder(ctx context.Context, userID string, req *CreateFolderRequest) (*models.Folder, error)

	// UpdateFolder renames and/or moves a folder
	UpdateFolder(ctx context.Context, userID, folderID string, req *UpdateFolderRequest) (*models.Folder, error)

	// DeleteFolder deletes a folder record. Children are not reassigned
	// or deleted by this layer.
	DeleteFolder(ctx context.Context, userID, folderID string) error

	// AssignResource adds a resource to a folder. Idempotent: assigning an
	// already-assigned pair is not an error.
	AssignResource(ctx context.Context, userID, resourceID, folderID string) error

	// UnassignResource removes a resource from a folder. Idempotent: a
	// missing pair is not an error.
	UnassignResource(ctx context.Context, userID, resourceID, folderID string) error
}

// CreateFolderRequest represents a folder creation request
type CreateFolderRequest struct {
	Name           string  `json:"name"`
	ParentFolderID *string `json:"parent_folder_id,omitempty"` // null for root
}

// UpdateFolderRequest represents a folder update request.
// ParentFolderID is tri-state: absent = don't move, null = move to root,
// value = move under that folder.
type UpdateFolderRequest struct {
	Name           *string                 `json:"name,omitempty"`
	ParentFolderID httputil.OptionalString `json:"parent_folder_id"`
}
