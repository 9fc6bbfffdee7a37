package mediatype

import "mediavault/internal/domain/models"

// TypeSpec describes one coarse file type and how MIME types map onto it.
type TypeSpec struct {
	ID           models.FileType `yaml:"id" json:"id"`
	DisplayName  string          `yaml:"display_name" json:"display_name"`
	MimePrefixes []string        `yaml:"mime_prefixes" json:"mime_prefixes"`
	Extensions   []string        `yaml:"extensions" json:"extensions"`

	// Previewable marks types the UI can render inline (preview overlay)
	Previewable bool `yaml:"previewable" json:"previewable"`

	// Thumbnailable marks types a thumbnail can be derived for
	Thumbnailable bool `yaml:"thumbnailable" json:"thumbnailable"`
}

// Catalog is the root of the embedded YAML file
type Catalog struct {
	Types    []TypeSpec      `yaml:"types"`
	Fallback models.FileType `yaml:"fallback"`
}
