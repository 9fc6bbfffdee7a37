package models

import (
	"time"
)

// FileType is the coarse classification of an uploaded resource,
// derived from the MIME type at upload time.
type FileType string

const (
	FileTypeImage    FileType = "image"
	FileTypeVideo    FileType = "video"
	FileTypeDocument FileType = "document"
)

type Resource struct {
	ID            string     `json:"id" db:"id"`
	UserID        string     `json:"user_id" db:"user_id"`
	Name          string     `json:"name" db:"name"` // Display name, extension stripped
	OriginalName  string     `json:"original_name" db:"original_name"`
	FileType      FileType   `json:"file_type" db:"file_type"`
	MimeType      string     `json:"mime_type" db:"mime_type"`
	FileSize      int64      `json:"file_size" db:"file_size"` // Bytes
	StoragePath   string     `json:"storage_path" db:"storage_path"`
	ThumbnailPath *string    `json:"thumbnail_path,omitempty" db:"thumbnail_path"`
	IsFavorite    bool       `json:"is_favorite" db:"is_favorite"`
	IsDeleted     bool       `json:"is_deleted" db:"is_deleted"`
	DeletedAt     *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}
