package service

import (
	"fmt"
	"strings"

	"mediavault/internal/domain/models"
)

// PublicURLResolver resolves a storage path to a publicly reachable URL.
// Satisfied by the object store; tests substitute a stub.
type PublicURLResolver interface {
	PublicURL(path string) string
}

// FilterResources narrows a scope-fetched resource list by search string and
// display category. The search is a case-insensitive substring match on the
// display name; category predicates are photos→image, videos→video,
// favorites→is_favorite, all/recent→no-op. The input order is preserved (the
// repository returns newest-created first; filtering never re-sorts), which
// makes the filter idempotent.
func FilterResources(resources []models.Resource, category models.Category, search string) []models.Resource {
	needle := strings.ToLower(search)

	filtered := make([]models.Resource, 0, len(resources))
	for _, res := range resources {
		if needle != "" && !strings.Contains(strings.ToLower(res.Name), needle) {
			continue
		}
		if !matchesCategory(res, category) {
			continue
		}
		filtered = append(filtered, res)
	}

	return filtered
}

func matchesCategory(res models.Resource, category models.Category) bool {
	switch category {
	case models.CategoryPhotos:
		return res.FileType == models.FileTypeImage
	case models.CategoryVideos:
		return res.FileType == models.FileTypeVideo
	case models.CategoryFavorites:
		return res.IsFavorite
	default:
		// all and recent apply no predicate
		return true
	}
}

// ComposeResourceView filters a scope-fetched list and maps each surviving
// resource to its display-ready form.
func ComposeResourceView(resources []models.Resource, category models.Category, search string, urls PublicURLResolver) []models.DisplayResource {
	filtered := FilterResources(resources, category, search)

	view := make([]models.DisplayResource, 0, len(filtered))
	for _, res := range filtered {
		view = append(view, models.DisplayResource{
			ID:         res.ID,
			Name:       res.Name,
			Type:       res.FileType,
			Size:       FormatFileSize(res.FileSize),
			Date:       res.CreatedAt.Format("1/2/2006"),
			Thumbnail:  thumbnailURL(res, urls),
			IsFavorite: res.IsFavorite,
			IsDeleted:  res.IsDeleted,
		})
	}

	return view
}

// FormatFileSize renders a byte count as megabytes with two decimals
func FormatFileSize(bytes int64) string {
	return fmt.Sprintf("%.2f MB", float64(bytes)/(1024*1024))
}

// thumbnailURL resolves the public thumbnail URL: the dedicated thumbnail
// path when one exists, the stored object itself otherwise, empty when
// neither is present.
func thumbnailURL(res models.Resource, urls PublicURLResolver) string {
	path := res.StoragePath
	if res.ThumbnailPath != nil && *res.ThumbnailPath != "" {
		path = *res.ThumbnailPath
	}
	if path == "" {
		return ""
	}
	return urls.PublicURL(path)
}
