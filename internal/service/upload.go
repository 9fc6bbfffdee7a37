package service

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"mediavault/internal/domain"
	"mediavault/internal/domain/models"
	"mediavault/internal/domain/repositories"
	"mediavault/internal/domain/services"
	"mediavault/internal/mediatype"
)

type uploadService struct {
	resourceRepo repositories.ResourceRepository
	folderRepo   repositories.FolderRepository
	store        services.ObjectStore
	types        *mediatype.Registry
	txManager    repositories.TransactionManager
	logger       *slog.Logger
}

// NewUploadService creates a new upload service
func NewUploadService(
	resourceRepo repositories.ResourceRepository,
	folderRepo repositories.FolderRepository,
	store services.ObjectStore,
	types *mediatype.Registry,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.UploadService {
	return &uploadService{
		resourceRepo: resourceRepo,
		folderRepo:   folderRepo,
		store:        store,
		types:        types,
		txManager:    txManager,
		logger:       logger,
	}
}

// Upload persists each file to object storage and inserts the matching
// metadata record (plus a folder membership when a target folder is given).
// Files are processed independently: one failing never stops the rest. The
// result carries the created records and requested vs. succeeded counts.
func (s *uploadService) Upload(ctx context.Context, userID string, folderID *string, files []services.UploadFile) (*services.UploadResult, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no files provided", domain.ErrValidation)
	}

	// Normalize and verify the target folder up front
	if folderID != nil && *folderID == "" {
		folderID = nil
	}
	if folderID != nil {
		if _, err := s.folderRepo.GetByID(ctx, *folderID, userID); err != nil {
			return nil, fmt.Errorf("target folder: %w", err)
		}
	}

	result := &services.UploadResult{
		Requested: len(files),
		Resources: make([]models.Resource, 0, len(files)),
	}

	for _, file := range files {
		resource, err := s.uploadOne(ctx, userID, folderID, file)
		if err != nil {
			s.logger.Warn("file upload failed",
				"user_id", userID,
				"name", file.Name,
				"error", err,
			)
			result.Failures = append(result.Failures, services.UploadFailure{
				Name:   file.Name,
				Reason: err.Error(),
			})
			continue
		}
		result.Resources = append(result.Resources, *resource)
	}

	result.Succeeded = len(result.Resources)

	s.logger.Info("upload batch finished",
		"user_id", userID,
		"requested", result.Requested,
		"succeeded", result.Succeeded,
	)

	return result, nil
}

// uploadOne stores one file's bytes and inserts its metadata record. The
// record and its folder membership are inserted in one transaction; if that
// fails, the stored object is removed again.
func (s *uploadService) uploadOne(ctx context.Context, userID string, folderID *string, file services.UploadFile) (*models.Resource, error) {
	ext := filepath.Ext(file.Name)
	objectPath := fmt.Sprintf("%s/%d_%s%s", userID, time.Now().UnixMilli(), uuid.NewString(), ext)

	if err := s.store.Put(ctx, objectPath, file.Reader, file.Size, file.ContentType); err != nil {
		return nil, fmt.Errorf("store file: %w", err)
	}

	now := time.Now()
	resource := &models.Resource{
		UserID:       userID,
		Name:         strings.TrimSuffix(file.Name, ext),
		OriginalName: file.Name,
		FileType:     s.types.TypeFor(file.ContentType),
		MimeType:     file.ContentType,
		FileSize:     file.Size,
		StoragePath:  objectPath,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.resourceRepo.Create(txCtx, resource); err != nil {
			return err
		}
		if folderID != nil {
			if err := s.resourceRepo.AddToFolder(txCtx, resource.ID, *folderID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		// The metadata insert failed, so the stored bytes are unreachable
		if removeErr := s.store.Remove(ctx, objectPath); removeErr != nil {
			s.logger.Warn("failed to clean up stored object after insert failure",
				"path", objectPath,
				"error", removeErr,
			)
		}
		return nil, fmt.Errorf("insert resource record: %w", err)
	}

	return resource, nil
}
