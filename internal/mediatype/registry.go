package mediatype

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"mediavault/internal/domain/models"
)

//go:embed config/*.yaml
var configFiles embed.FS

// Registry maps MIME types and extensions to the coarse file types the
// rest of the system works with (image, video, document).
type Registry struct {
	catalog *Catalog
	mu      sync.RWMutex
}

// NewRegistry creates a new registry and loads the embedded YAML catalog
func NewRegistry() (*Registry, error) {
	r := &Registry{}

	if err := r.loadCatalog("filetypes"); err != nil {
		return nil, fmt.Errorf("failed to load file type catalog: %w", err)
	}

	return r, nil
}

// loadCatalog loads a catalog YAML file
func (r *Registry) loadCatalog(name string) error {
	filename := fmt.Sprintf("config/%s.yaml", name)
	data, err := configFiles.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filename, err)
	}

	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", filename, err)
	}
	if catalog.Fallback == "" {
		catalog.Fallback = models.FileTypeDocument
	}

	r.mu.Lock()
	r.catalog = &catalog
	r.mu.Unlock()

	return nil
}

// TypeFor classifies a MIME type. image/* and video/* map to image and
// video; everything else (including an empty MIME type) falls back to
// document.
func (r *Registry) TypeFor(mimeType string) models.FileType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	mime := strings.ToLower(mimeType)
	for i := range r.catalog.Types {
		for _, prefix := range r.catalog.Types[i].MimePrefixes {
			if strings.HasPrefix(mime, prefix) {
				return r.catalog.Types[i].ID
			}
		}
	}

	return r.catalog.Fallback
}

// Previewable reports whether the UI can render this file type inline
func (r *Registry) Previewable(ft models.FileType) bool {
	if spec := r.specFor(ft); spec != nil {
		return spec.Previewable
	}
	return false
}

// Thumbnailable reports whether a thumbnail can be derived for this file type
func (r *Registry) Thumbnailable(ft models.FileType) bool {
	if spec := r.specFor(ft); spec != nil {
		return spec.Thumbnailable
	}
	return false
}

// ListTypes returns all known type specs (ordered as defined in YAML)
func (r *Registry) ListTypes() []TypeSpec {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.catalog.Types
}

func (r *Registry) specFor(ft models.FileType) *TypeSpec {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.catalog.Types {
		if r.catalog.Types[i].ID == ft {
			return &r.catalog.Types[i]
		}
	}
	return nil
}
