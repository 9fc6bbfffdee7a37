package models

import (
	"time"
)

type Folder struct {
	ID             string    `json:"id" db:"id"`
	UserID         string    `json:"user_id" db:"user_id"`
	ParentFolderID *string   `json:"parent_folder_id,omitempty" db:"parent_folder_id"` // NULL = root level
	Name           string    `json:"name" db:"name"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}
