package models

// FolderTreeNode is a folder placed in the nested hierarchy built from the
// user's flat folder list. Depth is 0 for root-level folders.
type FolderTreeNode struct {
	Folder   Folder            `json:"folder"`
	Depth    int               `json:"depth"`
	Children []*FolderTreeNode `json:"children"` // Pointers for proper nesting
}

// FolderTree is the full forest for a user, with flat counts alongside.
type FolderTree struct {
	Folders     []*FolderTreeNode `json:"folders"`
	FolderCount int               `json:"folder_count"`
}
