package service

import (
	"context"
	"testing"

	"mediavault/internal/domain/models"
)

func strPtr(s string) *string { return &s }

func TestBuildFolderTree(t *testing.T) {
	tests := []struct {
		name       string
		folders    []models.Folder
		wantRoots  []string
		wantNested map[string][]string // folder name -> ordered child names
	}{
		{
			name:      "empty list",
			folders:   nil,
			wantRoots: []string{},
		},
		{
			name: "flat roots sorted by name",
			folders: []models.Folder{
				{ID: "b", Name: "Work"},
				{ID: "a", Name: "Archive"},
				{ID: "c", Name: "Music"},
			},
			wantRoots: []string{"Archive", "Music", "Work"},
		},
		{
			name: "nested hierarchy",
			folders: []models.Folder{
				{ID: "trips", Name: "Trips"},
				{ID: "japan", Name: "Japan", ParentFolderID: strPtr("trips")},
				{ID: "italy", Name: "Italy", ParentFolderID: strPtr("trips")},
				{ID: "tokyo", Name: "Tokyo", ParentFolderID: strPtr("japan")},
				{ID: "docs", Name: "Documents"},
			},
			wantRoots: []string{"Documents", "Trips"},
			wantNested: map[string][]string{
				"Trips": {"Italy", "Japan"},
				"Japan": {"Tokyo"},
			},
		},
		{
			name: "orphaned parent id yields no node",
			folders: []models.Folder{
				{ID: "a", Name: "Kept"},
				{ID: "b", Name: "Orphan", ParentFolderID: strPtr("missing")},
			},
			wantRoots: []string{"Kept"},
		},
		{
			name: "parent cycle terminates",
			folders: []models.Folder{
				{ID: "a", Name: "Alpha", ParentFolderID: strPtr("b")},
				{ID: "b", Name: "Beta", ParentFolderID: strPtr("a")},
				{ID: "c", Name: "Clean"},
			},
			wantRoots: []string{"Clean"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roots := BuildFolderTree(tt.folders)

			gotRoots := make([]string, len(roots))
			for i, node := range roots {
				gotRoots[i] = node.Folder.Name
			}
			if len(gotRoots) != len(tt.wantRoots) {
				t.Fatalf("root count = %d (%v), want %d (%v)", len(gotRoots), gotRoots, len(tt.wantRoots), tt.wantRoots)
			}
			for i := range gotRoots {
				if gotRoots[i] != tt.wantRoots[i] {
					t.Errorf("root[%d] = %q, want %q", i, gotRoots[i], tt.wantRoots[i])
				}
			}

			byName := make(map[string]*models.FolderTreeNode)
			var collect func(nodes []*models.FolderTreeNode)
			collect = func(nodes []*models.FolderTreeNode) {
				for _, node := range nodes {
					byName[node.Folder.Name] = node
					collect(node.Children)
				}
			}
			collect(roots)

			for parent, wantChildren := range tt.wantNested {
				node, ok := byName[parent]
				if !ok {
					t.Fatalf("folder %q missing from tree", parent)
				}
				if len(node.Children) != len(wantChildren) {
					t.Fatalf("%q child count = %d, want %d", parent, len(node.Children), len(wantChildren))
				}
				for i, child := range node.Children {
					if child.Folder.Name != wantChildren[i] {
						t.Errorf("%q child[%d] = %q, want %q", parent, i, child.Folder.Name, wantChildren[i])
					}
				}
			}
		})
	}
}

func TestBuildFolderTreeDepth(t *testing.T) {
	folders := []models.Folder{
		{ID: "root", Name: "Root"},
		{ID: "mid", Name: "Mid", ParentFolderID: strPtr("root")},
		{ID: "leaf", Name: "Leaf", ParentFolderID: strPtr("mid")},
	}

	roots := BuildFolderTree(folders)
	if len(roots) != 1 {
		t.Fatalf("root count = %d, want 1", len(roots))
	}

	node := roots[0]
	wantDepth := 0
	for node != nil {
		if node.Depth != wantDepth {
			t.Errorf("%s depth = %d, want %d", node.Folder.Name, node.Depth, wantDepth)
		}
		if len(node.Children) == 0 {
			break
		}
		node = node.Children[0]
		wantDepth++
	}
	if wantDepth != 2 {
		t.Errorf("deepest level reached = %d, want 2", wantDepth)
	}
}

func TestFolderBreadcrumb(t *testing.T) {
	folders := []models.Folder{
		{ID: "trips", Name: "Trips"},
		{ID: "japan", Name: "Japan", ParentFolderID: strPtr("trips")},
		{ID: "tokyo", Name: "Tokyo", ParentFolderID: strPtr("japan")},
		{ID: "docs", Name: "Documents"},
	}

	tests := []struct {
		name     string
		targetID string
		want     []string
	}{
		{
			name:     "deep target yields root-first path",
			targetID: "tokyo",
			want:     []string{"Trips", "Japan", "Tokyo"},
		},
		{
			name:     "root target yields single element",
			targetID: "docs",
			want:     []string{"Documents"},
		},
		{
			name:     "unknown target yields empty path",
			targetID: "missing",
			want:     []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := FolderBreadcrumb(folders, tt.targetID)
			if len(path) != len(tt.want) {
				t.Fatalf("path length = %d, want %d", len(path), len(tt.want))
			}
			for i := range path {
				if path[i].Name != tt.want[i] {
					t.Errorf("path[%d] = %q, want %q", i, path[i].Name, tt.want[i])
				}
			}
		})
	}
}

func TestFolderBreadcrumbCycle(t *testing.T) {
	folders := []models.Folder{
		{ID: "a", Name: "Alpha", ParentFolderID: strPtr("b")},
		{ID: "b", Name: "Beta", ParentFolderID: strPtr("a")},
	}

	path := FolderBreadcrumb(folders, "a")
	if len(path) != 2 {
		t.Fatalf("path length = %d, want 2 (each folder visited once)", len(path))
	}
}

func TestTreeServiceGetFolderTree(t *testing.T) {
	repo := newFakeFolderRepo()
	repo.add(models.Folder{ID: "trips", UserID: "user-1", Name: "Trips"})
	repo.add(models.Folder{ID: "japan", UserID: "user-1", Name: "Japan", ParentFolderID: strPtr("trips")})
	repo.add(models.Folder{ID: "other", UserID: "user-2", Name: "NotMine"})

	svc := NewTreeService(repo, testLogger())

	tree, err := svc.GetFolderTree(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("GetFolderTree() error = %v", err)
	}
	if tree.FolderCount != 2 {
		t.Errorf("FolderCount = %d, want 2", tree.FolderCount)
	}
	if len(tree.Folders) != 1 {
		t.Fatalf("root count = %d, want 1", len(tree.Folders))
	}
	if tree.Folders[0].Folder.Name != "Trips" {
		t.Errorf("root name = %q, want Trips", tree.Folders[0].Folder.Name)
	}
	if len(tree.Folders[0].Children) != 1 || tree.Folders[0].Children[0].Folder.Name != "Japan" {
		t.Errorf("Trips children = %v, want [Japan]", tree.Folders[0].Children)
	}
}

func TestTreeServiceGetBreadcrumb(t *testing.T) {
	repo := newFakeFolderRepo()
	repo.add(models.Folder{ID: "trips", UserID: "user-1", Name: "Trips"})
	repo.add(models.Folder{ID: "japan", UserID: "user-1", Name: "Japan", ParentFolderID: strPtr("trips")})

	svc := NewTreeService(repo, testLogger())

	path, err := svc.GetBreadcrumb(context.Background(), "user-1", "japan")
	if err != nil {
		t.Fatalf("GetBreadcrumb() error = %v", err)
	}
	if len(path) != 2 || path[0].Name != "Trips" || path[1].Name != "Japan" {
		t.Errorf("breadcrumb = %v, want [Trips Japan]", path)
	}
}
