package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"mediavault/internal/domain"
	"mediavault/internal/domain/models"
	"mediavault/internal/domain/repositories"
	"mediavault/internal/domain/services"
)

type resourceService struct {
	resourceRepo repositories.ResourceRepository
	store        services.ObjectStore
	logger       *slog.Logger
}

// NewResourceService creates a new resource service
func NewResourceService(
	resourceRepo repositories.ResourceRepository,
	store services.ObjectStore,
	logger *slog.Logger,
) services.ResourceService {
	return &resourceService{
		resourceRepo: resourceRepo,
		store:        store,
		logger:       logger,
	}
}

// ListResources fetches the scope and returns raw records, newest-created first
func (s *resourceService) ListResources(ctx context.Context, userID string, scope services.ResourceScope) ([]models.Resource, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}

	if scope.FolderID != nil && *scope.FolderID != "" {
		return s.resourceRepo.ListByFolder(ctx, userID, *scope.FolderID, scope.ShowDeleted)
	}
	return s.resourceRepo.ListUnfiled(ctx, userID, scope.ShowDeleted)
}

// ListResourceView fetches the scope and composes the display-ready list
func (s *resourceService) ListResourceView(ctx context.Context, userID string, scope services.ResourceScope, category models.Category, search string) ([]models.DisplayResource, error) {
	resources, err := s.ListResources(ctx, userID, scope)
	if err != nil {
		return nil, err
	}

	return ComposeResourceView(resources, category, search, s.store), nil
}

// ToggleFavorite flips the favorite flag and returns the updated record.
// A missing record is an error here, unlike the trash operations.
func (s *resourceService) ToggleFavorite(ctx context.Context, userID, resourceID string) (*models.Resource, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}

	resource, err := s.resourceRepo.GetByID(ctx, resourceID, userID)
	if err != nil {
		return nil, err
	}

	updated, err := s.resourceRepo.SetFavorite(ctx, resourceID, userID, !resource.IsFavorite)
	if err != nil {
		return nil, err
	}

	s.logger.Info("favorite toggled",
		"resource_id", resourceID,
		"is_favorite", updated.IsFavorite,
	)

	return updated, nil
}

// SoftDelete moves a resource to trash. A missing record is treated as
// already satisfied.
func (s *resourceService) SoftDelete(ctx context.Context, userID, resourceID string) error {
	if userID == "" {
		return domain.ErrUnauthorized
	}

	now := time.Now()
	if _, err := s.resourceRepo.SetDeleted(ctx, resourceID, userID, true, &now); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}

	s.logger.Info("resource moved to trash", "resource_id", resourceID)

	return nil
}

// Restore moves a resource out of trash and clears its deletion timestamp.
// A missing record is treated as already satisfied.
func (s *resourceService) Restore(ctx context.Context, userID, resourceID string) error {
	if userID == "" {
		return domain.ErrUnauthorized
	}

	if _, err := s.resourceRepo.SetDeleted(ctx, resourceID, userID, false, nil); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}

	s.logger.Info("resource restored from trash", "resource_id", resourceID)

	return nil
}

// PermanentlyDelete irreversibly removes a trashed resource, its memberships,
// and its stored objects. Only trashed resources can be removed this way.
func (s *resourceService) PermanentlyDelete(ctx context.Context, userID, resourceID string) error {
	if userID == "" {
		return domain.ErrUnauthorized
	}

	resource, err := s.resourceRepo.GetByID(ctx, resourceID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}

	if !resource.IsDeleted {
		return fmt.Errorf("%w: resource must be in trash before permanent deletion", domain.ErrValidation)
	}

	if err := s.resourceRepo.Delete(ctx, resourceID, userID); err != nil {
		return err
	}

	// Best-effort object cleanup; the record is already gone, so a failure
	// here only leaves an orphaned object behind
	if err := s.store.Remove(ctx, resource.StoragePath); err != nil {
		s.logger.Warn("failed to remove stored object",
			"resource_id", resourceID,
			"path", resource.StoragePath,
			"error", err,
		)
	}
	if resource.ThumbnailPath != nil && *resource.ThumbnailPath != "" {
		if err := s.store.Remove(ctx, *resource.ThumbnailPath); err != nil {
			s.logger.Warn("failed to remove thumbnail object",
				"resource_id", resourceID,
				"path", *resource.ThumbnailPath,
				"error", err,
			)
		}
	}

	s.logger.Info("resource permanently deleted", "resource_id", resourceID)

	return nil
}

// Download opens the stored bytes for a resource
func (s *resourceService) Download(ctx context.Context, userID, resourceID string) (*models.Resource, io.ReadCloser, error) {
	if userID == "" {
		return nil, nil, domain.ErrUnauthorized
	}

	resource, err := s.resourceRepo.GetByID(ctx, resourceID, userID)
	if err != nil {
		return nil, nil, err
	}

	reader, err := s.store.Get(ctx, resource.StoragePath)
	if err != nil {
		return nil, nil, err
	}

	return resource, reader, nil
}
