package models

// Category is the sidebar selection that narrows a resource view.
// "all" and "recent" apply no predicate; the trash scope is expressed
// separately because it changes which records are fetched, not how the
// fetched records are filtered.
type Category string

const (
	CategoryAll       Category = "all"
	CategoryPhotos    Category = "photos"
	CategoryVideos    Category = "videos"
	CategoryFavorites Category = "favorites"
	CategoryRecent    Category = "recent"
)

// ParseCategory normalizes a raw query value; anything unrecognized
// (including empty) falls back to "all".
func ParseCategory(raw string) Category {
	switch Category(raw) {
	case CategoryPhotos, CategoryVideos, CategoryFavorites, CategoryRecent:
		return Category(raw)
	default:
		return CategoryAll
	}
}

// DisplayResource is a resource mapped to its display-ready form: formatted
// size and date, and a resolved public thumbnail URL.
type DisplayResource struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Type       FileType `json:"type"`
	Size       string   `json:"size"`
	Date       string   `json:"date"`
	Thumbnail  string   `json:"thumbnail"`
	IsFavorite bool     `json:"is_favorite"`
	IsDeleted  bool     `json:"is_deleted"`
}
