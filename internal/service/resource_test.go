package service

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"mediavault/internal/domain"
	"mediavault/internal/domain/models"
	"mediavault/internal/domain/services"
)

func TestResourceServiceListResources(t *testing.T) {
	repo := newFakeResourceRepo()
	filed := repo.add(models.Resource{UserID: "user-1", Name: "filed", FileType: models.FileTypeImage})
	repo.add(models.Resource{UserID: "user-1", Name: "loose", FileType: models.FileTypeImage})
	repo.add(models.Resource{UserID: "user-1", Name: "trashed", FileType: models.FileTypeImage, IsDeleted: true})
	repo.memberships[filed.ID] = map[string]bool{"folder-1": true}

	svc := NewResourceService(repo, newFakeObjectStore(), testLogger())

	folderID := "folder-1"
	tests := []struct {
		name      string
		scope     services.ResourceScope
		wantNames []string
	}{
		{
			name:      "folder scope returns members only",
			scope:     services.ResourceScope{FolderID: &folderID},
			wantNames: []string{"filed"},
		},
		{
			name:      "root scope returns unfiled only",
			scope:     services.ResourceScope{},
			wantNames: []string{"loose"},
		},
		{
			name:      "trash scope returns deleted unfiled records",
			scope:     services.ResourceScope{ShowDeleted: true},
			wantNames: []string{"trashed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.ListResources(context.Background(), "user-1", tt.scope)
			if err != nil {
				t.Fatalf("ListResources() error = %v", err)
			}
			if len(got) != len(tt.wantNames) {
				t.Fatalf("result count = %d, want %d", len(got), len(tt.wantNames))
			}
			for i, res := range got {
				if res.Name != tt.wantNames[i] {
					t.Errorf("result[%d].Name = %q, want %q", i, res.Name, tt.wantNames[i])
				}
			}
		})
	}
}

func TestResourceServiceListResourcesUnauthorized(t *testing.T) {
	svc := NewResourceService(newFakeResourceRepo(), newFakeObjectStore(), testLogger())

	_, err := svc.ListResources(context.Background(), "", services.ResourceScope{})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("error = %v, want ErrUnauthorized", err)
	}
}

func TestResourceServiceListResourceView(t *testing.T) {
	repo := newFakeResourceRepo()
	repo.add(models.Resource{
		UserID:      "user-1",
		Name:        "sunset",
		FileType:    models.FileTypeImage,
		FileSize:    1048576,
		StoragePath: "user-1/sunset.jpg",
		CreatedAt:   time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC),
	})
	repo.add(models.Resource{UserID: "user-1", Name: "report", FileType: models.FileTypeDocument})

	svc := NewResourceService(repo, newFakeObjectStore(), testLogger())

	view, err := svc.ListResourceView(context.Background(), "user-1", services.ResourceScope{}, models.CategoryPhotos, "")
	if err != nil {
		t.Fatalf("ListResourceView() error = %v", err)
	}
	if len(view) != 1 {
		t.Fatalf("view count = %d, want 1", len(view))
	}
	if view[0].Name != "sunset" {
		t.Errorf("Name = %q, want sunset", view[0].Name)
	}
	if view[0].Size != "1.00 MB" {
		t.Errorf("Size = %q, want 1.00 MB", view[0].Size)
	}
	if view[0].Date != "1/15/2026" {
		t.Errorf("Date = %q, want 1/15/2026", view[0].Date)
	}
}

func TestResourceServiceToggleFavorite(t *testing.T) {
	repo := newFakeResourceRepo()
	res := repo.add(models.Resource{UserID: "user-1", Name: "pic"})

	svc := NewResourceService(repo, newFakeObjectStore(), testLogger())
	ctx := context.Background()

	updated, err := svc.ToggleFavorite(ctx, "user-1", res.ID)
	if err != nil {
		t.Fatalf("ToggleFavorite() error = %v", err)
	}
	if !updated.IsFavorite {
		t.Error("first toggle: IsFavorite = false, want true")
	}

	// Toggling twice restores the original state
	updated, err = svc.ToggleFavorite(ctx, "user-1", res.ID)
	if err != nil {
		t.Fatalf("ToggleFavorite() second call error = %v", err)
	}
	if updated.IsFavorite {
		t.Error("second toggle: IsFavorite = true, want false")
	}
}

func TestResourceServiceToggleFavoriteNotFound(t *testing.T) {
	svc := NewResourceService(newFakeResourceRepo(), newFakeObjectStore(), testLogger())

	_, err := svc.ToggleFavorite(context.Background(), "user-1", "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestResourceServiceSoftDeleteAndRestore(t *testing.T) {
	repo := newFakeResourceRepo()
	res := repo.add(models.Resource{UserID: "user-1", Name: "pic"})

	svc := NewResourceService(repo, newFakeObjectStore(), testLogger())
	ctx := context.Background()

	if err := svc.SoftDelete(ctx, "user-1", res.ID); err != nil {
		t.Fatalf("SoftDelete() error = %v", err)
	}
	stored := repo.resources[res.ID]
	if !stored.IsDeleted {
		t.Error("IsDeleted = false after soft delete, want true")
	}
	if stored.DeletedAt == nil {
		t.Error("DeletedAt = nil after soft delete, want timestamp")
	}

	if err := svc.Restore(ctx, "user-1", res.ID); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	stored = repo.resources[res.ID]
	if stored.IsDeleted {
		t.Error("IsDeleted = true after restore, want false")
	}
	if stored.DeletedAt != nil {
		t.Error("DeletedAt not cleared by restore")
	}
}

func TestResourceServiceTrashMissingRecordSatisfied(t *testing.T) {
	svc := NewResourceService(newFakeResourceRepo(), newFakeObjectStore(), testLogger())
	ctx := context.Background()

	if err := svc.SoftDelete(ctx, "user-1", "missing"); err != nil {
		t.Errorf("SoftDelete() on missing record = %v, want nil", err)
	}
	if err := svc.Restore(ctx, "user-1", "missing"); err != nil {
		t.Errorf("Restore() on missing record = %v, want nil", err)
	}
	if err := svc.PermanentlyDelete(ctx, "user-1", "missing"); err != nil {
		t.Errorf("PermanentlyDelete() on missing record = %v, want nil", err)
	}
}

func TestResourceServicePermanentlyDelete(t *testing.T) {
	repo := newFakeResourceRepo()
	store := newFakeObjectStore()
	thumb := "user-1/pic_thumb.jpg"
	res := repo.add(models.Resource{
		UserID:        "user-1",
		Name:          "pic",
		StoragePath:   "user-1/pic.jpg",
		ThumbnailPath: &thumb,
		IsDeleted:     true,
	})
	repo.memberships[res.ID] = map[string]bool{"folder-1": true}
	store.objects["user-1/pic.jpg"] = []byte("bytes")
	store.objects[thumb] = []byte("thumb")

	svc := NewResourceService(repo, store, testLogger())

	if err := svc.PermanentlyDelete(context.Background(), "user-1", res.ID); err != nil {
		t.Fatalf("PermanentlyDelete() error = %v", err)
	}
	if _, ok := repo.resources[res.ID]; ok {
		t.Error("record still present after permanent delete")
	}
	if _, ok := repo.memberships[res.ID]; ok {
		t.Error("memberships still present after permanent delete")
	}
	if _, ok := store.objects["user-1/pic.jpg"]; ok {
		t.Error("stored object not removed")
	}
	if _, ok := store.objects[thumb]; ok {
		t.Error("thumbnail object not removed")
	}
}

func TestResourceServicePermanentlyDeleteRequiresTrash(t *testing.T) {
	repo := newFakeResourceRepo()
	res := repo.add(models.Resource{UserID: "user-1", Name: "pic", StoragePath: "user-1/pic.jpg"})

	svc := NewResourceService(repo, newFakeObjectStore(), testLogger())

	err := svc.PermanentlyDelete(context.Background(), "user-1", res.ID)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("error = %v, want ErrValidation", err)
	}
	if _, ok := repo.resources[res.ID]; !ok {
		t.Error("record removed despite not being in trash")
	}
}

func TestResourceServiceDownload(t *testing.T) {
	repo := newFakeResourceRepo()
	store := newFakeObjectStore()
	res := repo.add(models.Resource{UserID: "user-1", Name: "pic", StoragePath: "user-1/pic.jpg", MimeType: "image/jpeg"})
	store.objects["user-1/pic.jpg"] = []byte("jpeg bytes")

	svc := NewResourceService(repo, store, testLogger())

	got, reader, err := svc.Download(context.Background(), "user-1", res.ID)
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	defer reader.Close()

	if got.MimeType != "image/jpeg" {
		t.Errorf("MimeType = %q, want image/jpeg", got.MimeType)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "jpeg bytes" {
		t.Errorf("body = %q, want %q", data, "jpeg bytes")
	}
}

func TestResourceServiceOwnershipScoping(t *testing.T) {
	repo := newFakeResourceRepo()
	res := repo.add(models.Resource{UserID: "user-1", Name: "private"})

	svc := NewResourceService(repo, newFakeObjectStore(), testLogger())

	if _, err := svc.ToggleFavorite(context.Background(), "user-2", res.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("other user's toggle = %v, want ErrNotFound", err)
	}
	if _, _, err := svc.Download(context.Background(), "user-2", res.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("other user's download = %v, want ErrNotFound", err)
	}
}
