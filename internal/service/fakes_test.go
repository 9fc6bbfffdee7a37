package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	"mediavault/internal/domain"
	"mediavault/internal/domain/models"
	"mediavault/internal/domain/repositories"
)

// In-memory fakes backing the service tests. They implement the repository
// and store interfaces with maps and enforce the same error contracts as the
// postgres implementations.

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeFolderRepo struct {
	folders map[string]*models.Folder
	nextID  int
	listErr error
}

func newFakeFolderRepo() *fakeFolderRepo {
	return &fakeFolderRepo{folders: make(map[string]*models.Folder)}
}

func (r *fakeFolderRepo) Create(ctx context.Context, folder *models.Folder) error {
	for _, existing := range r.folders {
		if existing.UserID == folder.UserID &&
			existing.Name == folder.Name &&
			sameParent(existing.ParentFolderID, folder.ParentFolderID) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("a folder named %q already exists in this location", folder.Name),
				ResourceType: "folder",
				ResourceID:   existing.ID,
			}
		}
	}
	r.nextID++
	folder.ID = fmt.Sprintf("folder-%d", r.nextID)
	copied := *folder
	r.folders[folder.ID] = &copied
	return nil
}

func (r *fakeFolderRepo) GetByID(ctx context.Context, id, userID string) (*models.Folder, error) {
	folder, ok := r.folders[id]
	if !ok || folder.UserID != userID {
		return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}
	copied := *folder
	return &copied, nil
}

func (r *fakeFolderRepo) Update(ctx context.Context, folder *models.Folder) error {
	existing, ok := r.folders[folder.ID]
	if !ok || existing.UserID != folder.UserID {
		return fmt.Errorf("folder %s: %w", folder.ID, domain.ErrNotFound)
	}
	copied := *folder
	r.folders[folder.ID] = &copied
	return nil
}

func (r *fakeFolderRepo) Delete(ctx context.Context, id, userID string) error {
	folder, ok := r.folders[id]
	if !ok || folder.UserID != userID {
		return fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}
	delete(r.folders, id)
	return nil
}

func (r *fakeFolderRepo) ListByUser(ctx context.Context, userID string) ([]models.Folder, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	list := make([]models.Folder, 0)
	for _, folder := range r.folders {
		if folder.UserID == userID {
			list = append(list, *folder)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *fakeFolderRepo) ListChildren(ctx context.Context, parentID *string, userID string) ([]models.Folder, error) {
	list := make([]models.Folder, 0)
	for _, folder := range r.folders {
		if folder.UserID == userID && sameParent(folder.ParentFolderID, parentID) {
			list = append(list, *folder)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

// add seeds a folder directly, bypassing the duplicate check
func (r *fakeFolderRepo) add(folder models.Folder) models.Folder {
	if folder.ID == "" {
		r.nextID++
		folder.ID = fmt.Sprintf("folder-%d", r.nextID)
	}
	copied := folder
	r.folders[folder.ID] = &copied
	return folder
}

type fakeResourceRepo struct {
	resources   map[string]*models.Resource
	memberships map[string]map[string]bool // resourceID -> set of folderIDs
	order       []string                   // insertion order, oldest first
	nextID      int
	createErr   error
}

func newFakeResourceRepo() *fakeResourceRepo {
	return &fakeResourceRepo{
		resources:   make(map[string]*models.Resource),
		memberships: make(map[string]map[string]bool),
	}
}

func (r *fakeResourceRepo) Create(ctx context.Context, resource *models.Resource) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	resource.ID = fmt.Sprintf("resource-%d", r.nextID)
	copied := *resource
	r.resources[resource.ID] = &copied
	r.order = append(r.order, resource.ID)
	return nil
}

func (r *fakeResourceRepo) GetByID(ctx context.Context, id, userID string) (*models.Resource, error) {
	resource, ok := r.resources[id]
	if !ok || resource.UserID != userID {
		return nil, fmt.Errorf("resource %s: %w", id, domain.ErrNotFound)
	}
	copied := *resource
	return &copied, nil
}

func (r *fakeResourceRepo) ListByFolder(ctx context.Context, userID, folderID string, deleted bool) ([]models.Resource, error) {
	list := make([]models.Resource, 0)
	for i := len(r.order) - 1; i >= 0; i-- {
		resource := r.resources[r.order[i]]
		if resource == nil || resource.UserID != userID || resource.IsDeleted != deleted {
			continue
		}
		if r.memberships[resource.ID][folderID] {
			list = append(list, *resource)
		}
	}
	return list, nil
}

func (r *fakeResourceRepo) ListUnfiled(ctx context.Context, userID string, deleted bool) ([]models.Resource, error) {
	list := make([]models.Resource, 0)
	for i := len(r.order) - 1; i >= 0; i-- {
		resource := r.resources[r.order[i]]
		if resource == nil || resource.UserID != userID || resource.IsDeleted != deleted {
			continue
		}
		if len(r.memberships[resource.ID]) == 0 {
			list = append(list, *resource)
		}
	}
	return list, nil
}

func (r *fakeResourceRepo) SetFavorite(ctx context.Context, id, userID string, favorite bool) (*models.Resource, error) {
	resource, ok := r.resources[id]
	if !ok || resource.UserID != userID {
		return nil, fmt.Errorf("resource %s: %w", id, domain.ErrNotFound)
	}
	resource.IsFavorite = favorite
	resource.UpdatedAt = time.Now()
	copied := *resource
	return &copied, nil
}

func (r *fakeResourceRepo) SetDeleted(ctx context.Context, id, userID string, deleted bool, deletedAt *time.Time) (*models.Resource, error) {
	resource, ok := r.resources[id]
	if !ok || resource.UserID != userID {
		return nil, fmt.Errorf("resource %s: %w", id, domain.ErrNotFound)
	}
	resource.IsDeleted = deleted
	resource.DeletedAt = deletedAt
	resource.UpdatedAt = time.Now()
	copied := *resource
	return &copied, nil
}

func (r *fakeResourceRepo) Delete(ctx context.Context, id, userID string) error {
	resource, ok := r.resources[id]
	if !ok || resource.UserID != userID {
		return fmt.Errorf("resource %s: %w", id, domain.ErrNotFound)
	}
	delete(r.resources, id)
	delete(r.memberships, id)
	return nil
}

func (r *fakeResourceRepo) AddToFolder(ctx context.Context, resourceID, folderID string) error {
	if r.memberships[resourceID][folderID] {
		return &domain.ConflictError{
			Message:      "resource is already in this folder",
			ResourceType: "resource_folder",
			ResourceID:   resourceID,
		}
	}
	if r.memberships[resourceID] == nil {
		r.memberships[resourceID] = make(map[string]bool)
	}
	r.memberships[resourceID][folderID] = true
	return nil
}

func (r *fakeResourceRepo) RemoveFromFolder(ctx context.Context, resourceID, folderID string) error {
	if !r.memberships[resourceID][folderID] {
		return fmt.Errorf("membership: %w", domain.ErrNotFound)
	}
	delete(r.memberships[resourceID], folderID)
	return nil
}

// add seeds a resource directly
func (r *fakeResourceRepo) add(resource models.Resource) models.Resource {
	if resource.ID == "" {
		r.nextID++
		resource.ID = fmt.Sprintf("resource-%d", r.nextID)
	}
	copied := resource
	r.resources[resource.ID] = &copied
	r.order = append(r.order, resource.ID)
	return resource
}

type fakeObjectStore struct {
	objects map[string][]byte
	putErr  map[string]error // keyed by content type, for per-file failure injection
	removed []string
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{objects: make(map[string][]byte)}
}

func (s *fakeObjectStore) Put(ctx context.Context, path string, r io.Reader, size int64, contentType string) error {
	if err := s.putErr[contentType]; err != nil {
		return err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.objects[path] = data
	return nil
}

func (s *fakeObjectStore) Get(ctx context.Context, path string) (io.ReadCloser, error) {
	data, ok := s.objects[path]
	if !ok {
		return nil, fmt.Errorf("object %s not found", path)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *fakeObjectStore) Remove(ctx context.Context, path string) error {
	delete(s.objects, path)
	s.removed = append(s.removed, path)
	return nil
}

func (s *fakeObjectStore) PublicURL(path string) string {
	if path == "" {
		return ""
	}
	return "https://storage.test/media/" + path
}

// fakeTxManager runs the function directly with no transaction
type fakeTxManager struct{}

func (m *fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}
