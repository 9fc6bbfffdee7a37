package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"mediavault/internal/config"
	"mediavault/internal/domain"
	"mediavault/internal/domain/models"
	"mediavault/internal/domain/repositories"
	"mediavault/internal/domain/services"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var folderNamePattern = regexp.MustCompile(`^[^/]+$`)

type folderService struct {
	folderRepo   repositories.FolderRepository
	resourceRepo repositories.ResourceRepository
	logger       *slog.Logger
}

// NewFolderService creates a new folder service
func NewFolderService(
	folderRepo repositories.FolderRepository,
	resourceRepo repositories.ResourceRepository,
	logger *slog.Logger,
) services.FolderService {
	return &folderService{
		folderRepo:   folderRepo,
		resourceRepo: resourceRepo,
		logger:       logger,
	}
}

// ListFolders returns the user's full flat folder list, ordered by name
func (s *folderService) ListFolders(ctx context.Context, userID string) ([]models.Folder, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	return s.folderRepo.ListByUser(ctx, userID)
}

// CreateFolder creates a new folder, optionally nested under a parent
func (s *folderService) CreateFolder(ctx context.Context, userID string, req *services.CreateFolderRequest) (*models.Folder, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}

	// Normalize empty string to nil for root-level folders
	if req.ParentFolderID != nil && *req.ParentFolderID == "" {
		req.ParentFolderID = nil
	}
	req.Name = strings.TrimSpace(req.Name)

	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	// Parent must exist and belong to the same user
	if req.ParentFolderID != nil {
		if _, err := s.folderRepo.GetByID(ctx, *req.ParentFolderID, userID); err != nil {
			return nil, fmt.Errorf("parent folder: %w", err)
		}
	}

	now := time.Now()
	folder := &models.Folder{
		UserID:         userID,
		ParentFolderID: req.ParentFolderID,
		Name:           req.Name,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.folderRepo.Create(ctx, folder); err != nil {
		return nil, err
	}

	s.logger.Info("folder created",
		"id", folder.ID,
		"name", folder.Name,
		"user_id", userID,
		"parent_folder_id", folder.ParentFolderID,
	)

	return folder, nil
}

// UpdateFolder renames and/or moves a folder
func (s *folderService) UpdateFolder(ctx context.Context, userID, folderID string, req *services.UpdateFolderRequest) (*models.Folder, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}

	if err := s.validateUpdateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	folder, err := s.folderRepo.GetByID(ctx, folderID, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		folder.Name = strings.TrimSpace(*req.Name)
	}

	// Tri-state: only move if the field was present in the request
	if req.ParentFolderID.Present {
		if req.ParentFolderID.Value != nil && *req.ParentFolderID.Value != "" {
			parent, err := s.folderRepo.GetByID(ctx, *req.ParentFolderID.Value, userID)
			if err != nil {
				return nil, fmt.Errorf("parent folder: %w", err)
			}

			// Moving under itself or a descendant would create a cycle
			if err := s.validateNoCircularReference(ctx, userID, folderID, parent.ID); err != nil {
				return nil, err
			}

			folder.ParentFolderID = &parent.ID
			s.logger.Debug("moving folder", "folder_id", folderID, "new_parent_id", parent.ID)
		} else {
			// null = move to root
			folder.ParentFolderID = nil
			s.logger.Debug("moving folder to root", "folder_id", folderID)
		}
	}

	// Check for duplicate name among the target siblings
	siblings, err := s.folderRepo.ListChildren(ctx, folder.ParentFolderID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check for duplicate names: %w", err)
	}
	for _, sibling := range siblings {
		if sibling.ID != folder.ID && sibling.Name == folder.Name {
			return nil, &domain.ConflictError{
				Message:      fmt.Sprintf("a folder named %q already exists in this location", folder.Name),
				ResourceType: "folder",
				ResourceID:   sibling.ID,
			}
		}
	}

	folder.UpdatedAt = time.Now()

	if err := s.folderRepo.Update(ctx, folder); err != nil {
		return nil, err
	}

	s.logger.Info("folder updated",
		"id", folder.ID,
		"name", folder.Name,
		"parent_folder_id", folder.ParentFolderID,
	)

	return folder, nil
}

// DeleteFolder deletes a folder record. Child folders and resources are not
// reassigned or deleted by this layer.
func (s *folderService) DeleteFolder(ctx context.Context, userID, folderID string) error {
	if userID == "" {
		return domain.ErrUnauthorized
	}

	if err := s.folderRepo.Delete(ctx, folderID, userID); err != nil {
		// Deleting a record that is already gone is already satisfied
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}

	s.logger.Info("folder deleted", "id", folderID, "user_id", userID)

	return nil
}

// AssignResource adds a resource to a folder. Idempotent: assigning an
// already-assigned pair is not an error.
func (s *folderService) AssignResource(ctx context.Context, userID, resourceID, folderID string) error {
	if userID == "" {
		return domain.ErrUnauthorized
	}

	// Both ends must exist and belong to the user
	if _, err := s.resourceRepo.GetByID(ctx, resourceID, userID); err != nil {
		return err
	}
	if _, err := s.folderRepo.GetByID(ctx, folderID, userID); err != nil {
		return err
	}

	if err := s.resourceRepo.AddToFolder(ctx, resourceID, folderID); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil
		}
		return err
	}

	s.logger.Info("resource assigned to folder",
		"resource_id", resourceID,
		"folder_id", folderID,
	)

	return nil
}

// UnassignResource removes a resource from a folder. Idempotent: a missing
// pair is not an error.
func (s *folderService) UnassignResource(ctx context.Context, userID, resourceID, folderID string) error {
	if userID == "" {
		return domain.ErrUnauthorized
	}

	if _, err := s.resourceRepo.GetByID(ctx, resourceID, userID); err != nil {
		return err
	}

	if err := s.resourceRepo.RemoveFromFolder(ctx, resourceID, folderID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}

	s.logger.Info("resource removed from folder",
		"resource_id", resourceID,
		"folder_id", folderID,
	)

	return nil
}

// validateCreateRequest validates a folder creation request
func (s *folderService) validateCreateRequest(req *services.CreateFolderRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxFolderNameLength),
			validation.Match(folderNamePattern).Error("folder name cannot contain slashes"),
		),
	)
}

// validateUpdateRequest validates a folder update request
func (s *folderService) validateUpdateRequest(req *services.UpdateFolderRequest) error {
	// At least one field must be provided
	if req.Name == nil && !req.ParentFolderID.Present {
		return fmt.Errorf("at least one field must be provided")
	}

	if req.Name != nil {
		return validation.ValidateStruct(req,
			validation.Field(&req.Name,
				validation.Required,
				validation.Length(1, config.MaxFolderNameLength),
				validation.Match(folderNamePattern).Error("folder name cannot contain slashes"),
			),
		)
	}

	return nil
}

// validateNoCircularReference ensures moving a folder won't create a cycle
func (s *folderService) validateNoCircularReference(ctx context.Context, userID, folderID, newParentID string) error {
	// Can't move a folder under itself
	if folderID == newParentID {
		return fmt.Errorf("%w: cannot move folder to be its own parent", domain.ErrValidation)
	}

	// Walk from the new parent to the root; hitting the moved folder on the
	// way means the target is one of its descendants
	currentID := newParentID
	for {
		parent, err := s.folderRepo.GetByID(ctx, currentID, userID)
		if err != nil {
			return err
		}

		if parent.ParentFolderID == nil {
			return nil
		}

		if *parent.ParentFolderID == folderID {
			return fmt.Errorf("%w: cannot move folder under its own descendant", domain.ErrValidation)
		}

		currentID = *parent.ParentFolderID
	}
}
