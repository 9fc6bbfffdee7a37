package service

import (
	"testing"
	"time"

	"mediavault/internal/domain/models"
)

func sampleResources() []models.Resource {
	return []models.Resource{
		{ID: "r1", Name: "beach-sunset", FileType: models.FileTypeImage, IsFavorite: true},
		{ID: "r2", Name: "birthday-video", FileType: models.FileTypeVideo},
		{ID: "r3", Name: "tax-return", FileType: models.FileTypeDocument},
		{ID: "r4", Name: "Beach-House", FileType: models.FileTypeImage},
	}
}

func TestFilterResources(t *testing.T) {
	tests := []struct {
		name     string
		category models.Category
		search   string
		wantIDs  []string
	}{
		{
			name:     "all with no search returns everything",
			category: models.CategoryAll,
			wantIDs:  []string{"r1", "r2", "r3", "r4"},
		},
		{
			name:     "photos keeps only images",
			category: models.CategoryPhotos,
			wantIDs:  []string{"r1", "r4"},
		},
		{
			name:     "videos keeps only videos",
			category: models.CategoryVideos,
			wantIDs:  []string{"r2"},
		},
		{
			name:     "favorites keeps flagged records",
			category: models.CategoryFavorites,
			wantIDs:  []string{"r1"},
		},
		{
			name:     "recent applies no predicate",
			category: models.CategoryRecent,
			wantIDs:  []string{"r1", "r2", "r3", "r4"},
		},
		{
			name:     "search is case-insensitive substring",
			category: models.CategoryAll,
			search:   "BEACH",
			wantIDs:  []string{"r1", "r4"},
		},
		{
			name:     "search and category combine",
			category: models.CategoryFavorites,
			search:   "beach",
			wantIDs:  []string{"r1"},
		},
		{
			name:     "no match yields empty list",
			category: models.CategoryAll,
			search:   "nothing-here",
			wantIDs:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterResources(sampleResources(), tt.category, tt.search)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("result count = %d, want %d", len(got), len(tt.wantIDs))
			}
			for i, res := range got {
				if res.ID != tt.wantIDs[i] {
					t.Errorf("result[%d].ID = %q, want %q", i, res.ID, tt.wantIDs[i])
				}
			}
		})
	}
}

func TestFilterResourcesIdempotent(t *testing.T) {
	once := FilterResources(sampleResources(), models.CategoryPhotos, "beach")
	twice := FilterResources(once, models.CategoryPhotos, "beach")

	if len(once) != len(twice) {
		t.Fatalf("second pass count = %d, want %d", len(twice), len(once))
	}
	for i := range once {
		if once[i].ID != twice[i].ID {
			t.Errorf("second pass [%d] = %q, want %q", i, twice[i].ID, once[i].ID)
		}
	}
}

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0.00 MB"},
		{1024, "0.00 MB"},
		{1048576, "1.00 MB"},
		{1572864, "1.50 MB"},
		{104857600, "100.00 MB"},
	}

	for _, tt := range tests {
		if got := FormatFileSize(tt.bytes); got != tt.want {
			t.Errorf("FormatFileSize(%d) = %q, want %q", tt.bytes, got, tt.want)
		}
	}
}

func TestComposeResourceView(t *testing.T) {
	thumb := "user-1/thumb.jpg"
	created := time.Date(2026, time.March, 5, 10, 0, 0, 0, time.UTC)

	resources := []models.Resource{
		{
			ID:          "r1",
			Name:        "sunset",
			FileType:    models.FileTypeImage,
			FileSize:    1572864,
			StoragePath: "user-1/sunset.jpg",
			ThumbnailPath: &thumb,
			IsFavorite:  true,
			CreatedAt:   created,
		},
		{
			ID:          "r2",
			Name:        "notes",
			FileType:    models.FileTypeDocument,
			FileSize:    2048,
			StoragePath: "user-1/notes.pdf",
			CreatedAt:   created,
		},
	}

	view := ComposeResourceView(resources, models.CategoryAll, "", newFakeObjectStore())
	if len(view) != 2 {
		t.Fatalf("view count = %d, want 2", len(view))
	}

	first := view[0]
	if first.ID != "r1" {
		t.Errorf("ID = %q, want r1", first.ID)
	}
	if first.Size != "1.50 MB" {
		t.Errorf("Size = %q, want 1.50 MB", first.Size)
	}
	if first.Date != "3/5/2026" {
		t.Errorf("Date = %q, want 3/5/2026", first.Date)
	}
	if first.Thumbnail != "https://storage.test/media/user-1/thumb.jpg" {
		t.Errorf("Thumbnail = %q, want dedicated thumbnail URL", first.Thumbnail)
	}
	if !first.IsFavorite {
		t.Error("IsFavorite = false, want true")
	}

	// No dedicated thumbnail: the stored object itself is used
	second := view[1]
	if second.Thumbnail != "https://storage.test/media/user-1/notes.pdf" {
		t.Errorf("Thumbnail = %q, want storage path URL", second.Thumbnail)
	}
}

func TestComposeResourceViewEmptyPaths(t *testing.T) {
	resources := []models.Resource{
		{ID: "r1", Name: "pending", FileType: models.FileTypeDocument},
	}

	view := ComposeResourceView(resources, models.CategoryAll, "", newFakeObjectStore())
	if len(view) != 1 {
		t.Fatalf("view count = %d, want 1", len(view))
	}
	if view[0].Thumbnail != "" {
		t.Errorf("Thumbnail = %q, want empty for missing paths", view[0].Thumbnail)
	}
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input string
		want  models.Category
	}{
		{"all", models.CategoryAll},
		{"photos", models.CategoryPhotos},
		{"videos", models.CategoryVideos},
		{"favorites", models.CategoryFavorites},
		{"recent", models.CategoryRecent},
		{"", models.CategoryAll},
		{"bogus", models.CategoryAll},
	}

	for _, tt := range tests {
		if got := models.ParseCategory(tt.input); got != tt.want {
			t.Errorf("ParseCategory(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
