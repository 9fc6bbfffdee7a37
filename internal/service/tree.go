package service

import (
	"context"
	"log/slog"
	"sort"

	"mediavault/internal/domain/models"
	"mediavault/internal/domain/repositories"
	"mediavault/internal/domain/services"
)

// BuildFolderTree builds the nested forest from a user's flat folder list.
// Children of a node are exactly the folders whose parent id equals the
// node's id; siblings are ordered alphabetically by name, with insertion
// order breaking ties. A visited set bounds the recursion, so the build
// terminates even if the stored data contains a parent cycle (the cyclic
// branch is simply cut).
func BuildFolderTree(folders []models.Folder) []*models.FolderTreeNode {
	return buildSubtree(folders, nil, 0, make(map[string]bool, len(folders)))
}

func buildSubtree(folders []models.Folder, parentID *string, depth int, visited map[string]bool) []*models.FolderTreeNode {
	nodes := make([]*models.FolderTreeNode, 0)

	for _, folder := range folders {
		if !sameParent(folder.ParentFolderID, parentID) {
			continue
		}
		if visited[folder.ID] {
			continue
		}
		visited[folder.ID] = true

		id := folder.ID
		nodes = append(nodes, &models.FolderTreeNode{
			Folder:   folder,
			Depth:    depth,
			Children: buildSubtree(folders, &id, depth+1, visited),
		})
	}

	// Stable sort keeps insertion order for equal names
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].Folder.Name < nodes[j].Folder.Name
	})

	return nodes
}

func sameParent(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// FolderBreadcrumb returns the ordered root-to-target folder path, built by
// following parent ids from the target upward and reversing. An unknown
// target yields an empty path. A parent cycle terminates the walk instead of
// looping.
func FolderBreadcrumb(folders []models.Folder, targetID string) []models.Folder {
	byID := make(map[string]models.Folder, len(folders))
	for _, folder := range folders {
		byID[folder.ID] = folder
	}

	path := make([]models.Folder, 0)
	seen := make(map[string]bool)

	current, ok := byID[targetID]
	for ok && !seen[current.ID] {
		seen[current.ID] = true
		path = append(path, current)
		if current.ParentFolderID == nil {
			break
		}
		current, ok = byID[*current.ParentFolderID]
	}

	// Unknown target: no breadcrumb
	if len(path) == 0 {
		return path
	}

	// Reverse into root-first order
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path
}

// treeService implements the TreeService interface
type treeService struct {
	folderRepo repositories.FolderRepository
	logger     *slog.Logger
}

// NewTreeService creates a new tree service
func NewTreeService(folderRepo repositories.FolderRepository, logger *slog.Logger) services.TreeService {
	return &treeService{
		folderRepo: folderRepo,
		logger:     logger,
	}
}

// GetFolderTree returns the nested folder forest built from the user's flat list
func (s *treeService) GetFolderTree(ctx context.Context, userID string) (*models.FolderTree, error) {
	folders, err := s.folderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	tree := &models.FolderTree{
		Folders:     BuildFolderTree(folders),
		FolderCount: len(folders),
	}

	s.logger.Debug("folder tree built",
		"user_id", userID,
		"folder_count", len(folders),
	)

	return tree, nil
}

// GetBreadcrumb returns the ordered root-to-target folder path
func (s *treeService) GetBreadcrumb(ctx context.Context, userID, folderID string) ([]models.Folder, error) {
	folders, err := s.folderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return FolderBreadcrumb(folders, folderID), nil
}
