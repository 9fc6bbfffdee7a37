package services

import (
	"context"
	"io"

	"mediavault/internal/domain/models"
)

// UploadService persists a batch of files to object storage and inserts the
// matching metadata records. One file failing never stops the rest.
type UploadService interface {
	Upload(ctx context.Context, userID string, folderID *string, files []UploadFile) (*UploadResult, error)
}

// UploadFile is one local file in an upload batch
type UploadFile struct {
	Name        string // Original filename, extension included
	ContentType string
	Size        int64
	Reader      io.Reader
}

// UploadFailure records why a single file in a batch failed
type UploadFailure struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// UploadResult aggregates a batch: the created records (partial on partial
// failure) plus requested vs. succeeded counts
type UploadResult struct {
	Requested int               `json:"requested"`
	Succeeded int               `json:"succeeded"`
	Resources []models.Resource `json:"resources"`
	Failures  []UploadFailure   `json:"failures,omitempty"`
}
